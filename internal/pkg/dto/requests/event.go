package requests

import "time"

type AssessmentSubmittedEvent struct {
	DraftID      string    `json:"draft_id"`
	SubmissionID string    `json:"submission_id,omitempty"`
	ArchivePath  string    `json:"archive_path,omitempty"`
	Sections     []string  `json:"sections"`
	SubmittedAt  time.Time `json:"submitted_at"`
}
