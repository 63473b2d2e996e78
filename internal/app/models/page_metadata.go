package models

import "time"

type PageMetadata struct {
	Slug        string    `bson:"slug"`
	Title       string    `bson:"title"`
	Description string    `bson:"description"`
	UpdatedAt   time.Time `bson:"updated_at,omitempty"`
}
