package dto

import (
	"time"

	"upvote.app/relay/internal/model"
)

type ListPostsQuery struct {
	Categories []string `form:"category"`
	Statuses   []string `form:"status" binding:"dive,oneof=under-review planned in-progress completed"`
	Search     string   `form:"search" binding:"max=255"`
	Sort       string   `form:"sort" binding:"omitempty,oneof=votes newest oldest trending"`
}

func (q ListPostsQuery) ToFilters() model.FeedbackFilters {
	return model.FeedbackFilters{
		Categories: q.Categories,
		Statuses:   q.Statuses,
		Search:     q.Search,
		SortBy:     model.SortMode(q.Sort),
	}
}

type CreatePostRequest struct {
	Title       string   `json:"title" binding:"required,min=1,max=255"`
	Description string   `json:"description" binding:"max=10000"`
	Category    string   `json:"category" binding:"required,max=100"`
	AuthorName  string   `json:"authorName" binding:"max=255"`
	IsAnonymous bool     `json:"isAnonymous"`
	Images      []string `json:"images" binding:"max=10"`
}

func (r CreatePostRequest) ToModel() model.CreateFeedbackPost {
	return model.CreateFeedbackPost{
		Title:       r.Title,
		Description: r.Description,
		Category:    r.Category,
		AuthorName:  r.AuthorName,
		IsAnonymous: r.IsAnonymous,
		Images:      r.Images,
	}
}

type UpdatePostRequest struct {
	Title        *string   `json:"title,omitempty" binding:"omitempty,min=1,max=255"`
	Description  *string   `json:"description,omitempty" binding:"omitempty,max=10000"`
	Category     *string   `json:"category,omitempty" binding:"omitempty,max=100"`
	Status       *string   `json:"status,omitempty" binding:"omitempty,oneof=under-review planned in-progress completed"`
	VoteCount    *int      `json:"voteCount,omitempty" binding:"omitempty,min=0"`
	CommentCount *int      `json:"commentCount,omitempty" binding:"omitempty,min=0"`
	Images       *[]string `json:"images,omitempty" binding:"omitempty,max=10"`
}

func (r UpdatePostRequest) ToPatch() model.FeedbackPostPatch {
	patch := model.FeedbackPostPatch{
		Title:        r.Title,
		Description:  r.Description,
		Category:     r.Category,
		VoteCount:    r.VoteCount,
		CommentCount: r.CommentCount,
		Images:       r.Images,
	}
	if r.Status != nil {
		status := model.PostStatus(*r.Status)
		patch.Status = &status
	}
	return patch
}

type PostResponse struct {
	ID           int64     `json:"id,string"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	Status       string    `json:"status"`
	VoteCount    int       `json:"voteCount"`
	CommentCount int       `json:"commentCount"`
	AuthorName   string    `json:"authorName"`
	IsAnonymous  bool      `json:"isAnonymous"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	Images       []string  `json:"images"`
}

func ToPostResponse(p *model.FeedbackPost) *PostResponse {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return &PostResponse{
		ID:           p.ID,
		Title:        p.Title,
		Description:  p.Description,
		Category:     p.Category,
		Status:       string(p.Status),
		VoteCount:    p.VoteCount,
		CommentCount: p.CommentCount,
		AuthorName:   p.AuthorName,
		IsAnonymous:  p.IsAnonymous,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
		Images:       images,
	}
}

func ToPostResponses(posts []model.FeedbackPost) []*PostResponse {
	out := make([]*PostResponse, len(posts))
	for i := range posts {
		out[i] = ToPostResponse(&posts[i])
	}
	return out
}
