package model

import "time"

type PostStatus string

const (
	PostStatusUnderReview PostStatus = "under-review"
	PostStatusPlanned     PostStatus = "planned"
	PostStatusInProgress  PostStatus = "in-progress"
	PostStatusCompleted   PostStatus = "completed"
)

func (s PostStatus) IsValid() bool {
	switch s {
	case PostStatusUnderReview, PostStatusPlanned, PostStatusInProgress, PostStatusCompleted:
		return true
	}
	return false
}

const DefaultAuthorName = "Anonymous"

type FeedbackPost struct {
	ID           int64      `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Category     string     `json:"category"`
	Status       PostStatus `json:"status"`
	VoteCount    int        `json:"voteCount"`
	CommentCount int        `json:"commentCount"`
	AuthorName   string     `json:"authorName"`
	IsAnonymous  bool       `json:"isAnonymous"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
	Images       []string   `json:"images"`
}

// TrendingScore weighs a comment twice as much as a vote.
func (p *FeedbackPost) TrendingScore() int {
	return p.VoteCount + 2*p.CommentCount
}

type SortMode string

const (
	SortVotes    SortMode = "votes"
	SortNewest   SortMode = "newest"
	SortOldest   SortMode = "oldest"
	SortTrending SortMode = "trending"
)

type FeedbackFilters struct {
	Categories []string
	Statuses   []string
	Search     string
	SortBy     SortMode
}

type CreateFeedbackPost struct {
	Title       string
	Description string
	Category    string
	AuthorName  string
	IsAnonymous bool
	Images      []string
}

type FeedbackPostPatch struct {
	Title        *string
	Description  *string
	Category     *string
	Status       *PostStatus
	VoteCount    *int
	CommentCount *int
	Images       *[]string
}
