package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"upvote.app/relay/common/logger"
	"upvote.app/relay/internal/model"
	"upvote.app/relay/internal/store"
)

type FeedbackService interface {
	// List never fails; backend errors are logged and yield an empty list.
	List(ctx context.Context, filters model.FeedbackFilters) []model.FeedbackPost
	GetByID(ctx context.Context, id int64) (*model.FeedbackPost, error)
	Create(ctx context.Context, in model.CreateFeedbackPost) (*model.FeedbackPost, error)
	Update(ctx context.Context, id int64, patch model.FeedbackPostPatch) (*model.FeedbackPost, error)
	Delete(ctx context.Context, id int64) error
	Vote(ctx context.Context, id int64) (*model.FeedbackPost, error)
}

type feedbackService struct {
	posts store.FeedbackStore
}

func NewFeedbackService(posts store.FeedbackStore) FeedbackService {
	return &feedbackService{posts: posts}
}

func (s *feedbackService) List(ctx context.Context, filters model.FeedbackFilters) []model.FeedbackPost {
	ctx = logger.WithLogFields(ctx, logger.LogFields{Component: "relay.service.feedback"})

	posts, err := s.posts.List(ctx, filters)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list feedback posts", "error", err)
		return []model.FeedbackPost{}
	}

	if filters.SortBy == model.SortTrending {
		SortTrending(posts)
	}
	return posts
}

// SortTrending orders posts by trending score, highest first, keeping backend order for ties.
func SortTrending(posts []model.FeedbackPost) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].TrendingScore() > posts[j].TrendingScore()
	})
}

func (s *feedbackService) GetByID(ctx context.Context, id int64) (*model.FeedbackPost, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{Component: "relay.service.feedback", RecordID: logger.Ptr(id)})

	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		slog.ErrorContext(ctx, "failed to get feedback post", "error", err)
		return nil, err
	}
	return post, nil
}

func (s *feedbackService) Create(ctx context.Context, in model.CreateFeedbackPost) (*model.FeedbackPost, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{Component: "relay.service.feedback"})

	post, err := s.posts.Create(ctx, in)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create feedback post", "error", err)
		return nil, fmt.Errorf("creating feedback post: %w", err)
	}

	slog.InfoContext(ctx, "feedback post created", "post_id", post.ID, "category", post.Category)
	return post, nil
}

func (s *feedbackService) Update(ctx context.Context, id int64, patch model.FeedbackPostPatch) (*model.FeedbackPost, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{Component: "relay.service.feedback", RecordID: logger.Ptr(id)})

	if patch.Status != nil && !patch.Status.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *patch.Status)
	}
	if (patch.VoteCount != nil && *patch.VoteCount < 0) || (patch.CommentCount != nil && *patch.CommentCount < 0) {
		return nil, fmt.Errorf("%w: counts cannot be negative", ErrInvalidInput)
	}

	post, err := s.posts.Update(ctx, id, patch)
	if err != nil {
		slog.ErrorContext(ctx, "failed to update feedback post", "error", err)
		return nil, fmt.Errorf("updating feedback post %d: %w", id, err)
	}
	return post, nil
}

func (s *feedbackService) Delete(ctx context.Context, id int64) error {
	ctx = logger.WithLogFields(ctx, logger.LogFields{Component: "relay.service.feedback", RecordID: logger.Ptr(id)})

	if err := s.posts.Delete(ctx, id); err != nil {
		slog.ErrorContext(ctx, "failed to delete feedback post", "error", err)
		return fmt.Errorf("deleting feedback post %d: %w", id, err)
	}

	slog.InfoContext(ctx, "feedback post deleted")
	return nil
}

// Vote adds one vote. The read and the write are separate calls, so concurrent votes can be lost.
func (s *feedbackService) Vote(ctx context.Context, id int64) (*model.FeedbackPost, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{Component: "relay.service.feedback", RecordID: logger.Ptr(id)})

	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		slog.ErrorContext(ctx, "failed to get feedback post for vote", "error", err)
		return nil, err
	}

	votes := post.VoteCount + 1
	updated, err := s.posts.Update(ctx, id, model.FeedbackPostPatch{VoteCount: &votes})
	if err != nil {
		slog.ErrorContext(ctx, "failed to record vote", "error", err)
		return nil, fmt.Errorf("voting on feedback post %d: %w", id, err)
	}
	return updated, nil
}
