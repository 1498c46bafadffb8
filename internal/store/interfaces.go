package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"upvote.app/relay/internal/model"
)

// ErrNotFound is returned when a requested record does not exist or could not be read
var ErrNotFound = errors.New("not found")

// OperationError is a write the backend refused or could not complete.
type OperationError struct {
	Table   string
	Op      string
	Message string
	Err     error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Op, e.Table, e.Message)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// FeedbackStore defines the contract for feedback post data access
type FeedbackStore interface {
	List(ctx context.Context, filters model.FeedbackFilters) ([]model.FeedbackPost, error)
	GetByID(ctx context.Context, id int64) (*model.FeedbackPost, error)
	Create(ctx context.Context, in model.CreateFeedbackPost) (*model.FeedbackPost, error)
	Update(ctx context.Context, id int64, patch model.FeedbackPostPatch) (*model.FeedbackPost, error)
	Delete(ctx context.Context, id int64) error
}

// CommentStore defines the contract for comment data access
type CommentStore interface {
	List(ctx context.Context) ([]model.Comment, error)
	ListByPost(ctx context.Context, postID string) ([]model.Comment, error)
	ListByRoadmapItem(ctx context.Context, roadmapItemID string) ([]model.Comment, error)
	GetByID(ctx context.Context, id int64) (*model.Comment, error)
	Create(ctx context.Context, in model.CreateComment) (*model.Comment, error)
	Update(ctx context.Context, id int64, patch model.CommentPatch) (*model.Comment, error)
	Delete(ctx context.Context, id int64) error
}

// RoadmapStore defines the contract for roadmap item data access
type RoadmapStore interface {
	List(ctx context.Context) ([]model.RoadmapItem, error)
	ListByFeedbackPost(ctx context.Context, feedbackPostID int64) ([]model.RoadmapItem, error)
	GetByID(ctx context.Context, id int64) (*model.RoadmapItem, error)
	Create(ctx context.Context, feedbackPostID int64, stage model.Stage, position int, estimatedDate *time.Time) (*model.RoadmapItem, error)
	Update(ctx context.Context, id int64, patch model.RoadmapItemPatch) (*model.RoadmapItem, error)
	Delete(ctx context.Context, id int64) error
}

// ChangelogStore defines the contract for changelog entry data access
type ChangelogStore interface {
	List(ctx context.Context) ([]model.ChangelogEntry, error)
	GetByID(ctx context.Context, id int64) (*model.ChangelogEntry, error)
	Create(ctx context.Context, in model.CreateChangelogEntry) (*model.ChangelogEntry, error)
	Update(ctx context.Context, id int64, patch model.ChangelogEntryPatch) (*model.ChangelogEntry, error)
	Delete(ctx context.Context, id int64) error
}
