package model

import "time"

type ChangelogEntry struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Category       string    `json:"category"`
	ReleaseDate    time.Time `json:"releaseDate"`
	RelatedPostIDs []string  `json:"relatedPostIds"`
}

type CreateChangelogEntry struct {
	Title          string
	Description    string
	Category       string
	RelatedPostIDs []string
}

type ChangelogEntryPatch struct {
	Title          *string
	Description    *string
	Category       *string
	ReleaseDate    *time.Time
	RelatedPostIDs *[]string
}
