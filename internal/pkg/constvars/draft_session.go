package constvars

const (
	DraftSessionDraftIDClaimKey = "draft_id"
	DraftSessionIssuer          = "homecare-service/intake"
)
