package dto

import (
	"time"

	"upvote.app/relay/internal/model"
)

type CreateChangelogRequest struct {
	Title          string   `json:"title" binding:"required,min=1,max=255"`
	Description    string   `json:"description" binding:"max=10000"`
	Category       string   `json:"category" binding:"required,max=100"`
	RelatedPostIDs []string `json:"relatedPostIds" binding:"dive,numeric"`
}

func (r CreateChangelogRequest) ToModel() model.CreateChangelogEntry {
	return model.CreateChangelogEntry{
		Title:          r.Title,
		Description:    r.Description,
		Category:       r.Category,
		RelatedPostIDs: r.RelatedPostIDs,
	}
}

type UpdateChangelogRequest struct {
	Title          *string    `json:"title,omitempty" binding:"omitempty,min=1,max=255"`
	Description    *string    `json:"description,omitempty" binding:"omitempty,max=10000"`
	Category       *string    `json:"category,omitempty" binding:"omitempty,max=100"`
	ReleaseDate    *time.Time `json:"releaseDate,omitempty"`
	RelatedPostIDs *[]string  `json:"relatedPostIds,omitempty" binding:"omitempty,dive,numeric"`
}

func (r UpdateChangelogRequest) ToPatch() model.ChangelogEntryPatch {
	return model.ChangelogEntryPatch{
		Title:          r.Title,
		Description:    r.Description,
		Category:       r.Category,
		ReleaseDate:    r.ReleaseDate,
		RelatedPostIDs: r.RelatedPostIDs,
	}
}

type ChangelogResponse struct {
	ID             int64     `json:"id,string"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Category       string    `json:"category"`
	ReleaseDate    time.Time `json:"releaseDate"`
	RelatedPostIDs []string  `json:"relatedPostIds"`
}

func ToChangelogResponse(e *model.ChangelogEntry) *ChangelogResponse {
	related := e.RelatedPostIDs
	if related == nil {
		related = []string{}
	}
	return &ChangelogResponse{
		ID:             e.ID,
		Title:          e.Title,
		Description:    e.Description,
		Category:       e.Category,
		ReleaseDate:    e.ReleaseDate,
		RelatedPostIDs: related,
	}
}

func ToChangelogResponses(entries []model.ChangelogEntry) []*ChangelogResponse {
	out := make([]*ChangelogResponse, len(entries))
	for i := range entries {
		out[i] = ToChangelogResponse(&entries[i])
	}
	return out
}
