package model

import "time"

type Comment struct {
	ID            int64     `json:"id"`
	AuthorName    string    `json:"authorName"`
	Content       string    `json:"content"`
	CreatedAt     time.Time `json:"createdAt"`
	IsAnonymous   bool      `json:"isAnonymous"`
	ParentID      *string   `json:"parentId"`
	PostID        string    `json:"postId"`
	RoadmapItemID *string   `json:"roadmapItemId"`
	Images        []string  `json:"images"`
	Replies       []Comment `json:"replies,omitempty"`
}

func (c *Comment) IsTopLevel() bool {
	return c.ParentID == nil
}

type CreateComment struct {
	AuthorName    string
	Content       string
	IsAnonymous   bool
	ParentID      *string
	PostID        string
	RoadmapItemID *string
	Images        []string
}

type CommentPatch struct {
	Content *string
	Images  *[]string
}
