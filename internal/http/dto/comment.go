package dto

import (
	"time"

	"upvote.app/relay/internal/model"
)

type CreateCommentRequest struct {
	AuthorName    string   `json:"authorName" binding:"max=255"`
	Content       string   `json:"content" binding:"required,min=1,max=5000"`
	IsAnonymous   bool     `json:"isAnonymous"`
	ParentID      *string  `json:"parentId,omitempty" binding:"omitempty,numeric"`
	PostID        string   `json:"postId" binding:"omitempty,numeric"`
	RoadmapItemID *string  `json:"roadmapItemId,omitempty" binding:"omitempty,numeric"`
	Images        []string `json:"images" binding:"max=10"`
}

func (r CreateCommentRequest) ToModel() model.CreateComment {
	return model.CreateComment{
		AuthorName:    r.AuthorName,
		Content:       r.Content,
		IsAnonymous:   r.IsAnonymous,
		ParentID:      r.ParentID,
		PostID:        r.PostID,
		RoadmapItemID: r.RoadmapItemID,
		Images:        r.Images,
	}
}

type UpdateCommentRequest struct {
	Content *string   `json:"content,omitempty" binding:"omitempty,min=1,max=5000"`
	Images  *[]string `json:"images,omitempty" binding:"omitempty,max=10"`
}

func (r UpdateCommentRequest) ToPatch() model.CommentPatch {
	return model.CommentPatch{Content: r.Content, Images: r.Images}
}

type CommentResponse struct {
	ID            int64     `json:"id,string"`
	AuthorName    string    `json:"authorName"`
	Content       string    `json:"content"`
	CreatedAt     time.Time `json:"createdAt"`
	IsAnonymous   bool      `json:"isAnonymous"`
	ParentID      *string   `json:"parentId"`
	PostID        string    `json:"postId"`
	RoadmapItemID *string   `json:"roadmapItemId"`
	Images        []string  `json:"images"`
}

// CommentThreadResponse is a comment with its nested replies. Replies is
// always present, empty for a comment nobody answered.
type CommentThreadResponse struct {
	*CommentResponse
	Replies []*CommentThreadResponse `json:"replies"`
}

func ToCommentResponse(c *model.Comment) *CommentResponse {
	images := c.Images
	if images == nil {
		images = []string{}
	}
	resp := &CommentResponse{
		ID:            c.ID,
		AuthorName:    c.AuthorName,
		Content:       c.Content,
		CreatedAt:     c.CreatedAt,
		IsAnonymous:   c.IsAnonymous,
		ParentID:      c.ParentID,
		PostID:        c.PostID,
		RoadmapItemID: c.RoadmapItemID,
		Images:        images,
	}
	return resp
}

func ToCommentResponses(comments []model.Comment) []*CommentResponse {
	out := make([]*CommentResponse, len(comments))
	for i := range comments {
		out[i] = ToCommentResponse(&comments[i])
	}
	return out
}

func ToCommentThreadResponse(c *model.Comment) *CommentThreadResponse {
	replies := make([]*CommentThreadResponse, len(c.Replies))
	for i := range c.Replies {
		replies[i] = ToCommentThreadResponse(&c.Replies[i])
	}
	return &CommentThreadResponse{CommentResponse: ToCommentResponse(c), Replies: replies}
}

func ToCommentThreadResponses(threads []model.Comment) []*CommentThreadResponse {
	out := make([]*CommentThreadResponse, len(threads))
	for i := range threads {
		out[i] = ToCommentThreadResponse(&threads[i])
	}
	return out
}
