package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"upvote.app/relay/common/logger"
	"upvote.app/relay/internal/model"
	"upvote.app/relay/internal/store"
)

type CommentService interface {
	List(ctx context.Context) []model.Comment
	// ListByPost and ListByRoadmapItem return threads: top-level comments with their replies attached.
	ListByPost(ctx context.Context, postID string) []model.Comment
	ListByRoadmapItem(ctx context.Context, roadmapItemID string) []model.Comment
	GetByID(ctx context.Context, id int64) (*model.Comment, error)
	Create(ctx context.Context, in model.CreateComment) (*model.Comment, error)
	Update(ctx context.Context, id int64, patch model.CommentPatch) (*model.Comment, error)
	Delete(ctx context.Context, id int64) error
}

type commentService struct {
	comments store.CommentStore
	posts    store.FeedbackStore
}

func NewCommentService(comments store.CommentStore, posts store.FeedbackStore) CommentService {
	return &commentService{comments: comments, posts: posts}
}

func (s *commentService) List(ctx context.Context) []model.Comment {
	ctx = logger.WithLogFields(ctx, logger.LogFields{Component: "relay.service.comment"})

	comments, err := s.comments.List(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list comments", "error", err)
		return []model.Comment{}
	}
	return comments
}

func (s *commentService) ListByPost(ctx context.Context, postID string) []model.Comment {
	ctx = logger.WithLogFields(ctx, logger.LogFields{Component: "relay.service.comment"})

	comments, err := s.comments.ListByPost(ctx, postID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list comments for post", "post_id", postID, "error", err)
		return []model.Comment{}
	}
	return BuildCommentTree(comments)
}

func (s *commentService) ListByRoadmapItem(ctx context.Context, roadmapItemID string) []model.Comment {
	ctx = logger.WithLogFields(ctx, logger.LogFields{Component: "relay.service.comment"})

	comments, err := s.comments.ListByRoadmapItem(ctx, roadmapItemID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list comments for roadmap item", "roadmap_item_id", roadmapItemID, "error", err)
		return []model.Comment{}
	}
	return BuildCommentTree(comments)
}

// BuildCommentTree attaches replies to their top-level parent, one level deep.
// Replies whose parent is not a top-level comment in the input are dropped.
func BuildCommentTree(comments []model.Comment) []model.Comment {
	repliesByParent := make(map[string][]model.Comment)
	var topLevel []model.Comment
	for _, c := range comments {
		if c.IsTopLevel() {
			topLevel = append(topLevel, c)
			continue
		}
		repliesByParent[*c.ParentID] = append(repliesByParent[*c.ParentID], c)
	}

	tree := make([]model.Comment, 0, len(topLevel))
	for _, c := range topLevel {
		replies := repliesByParent[strconv.FormatInt(c.ID, 10)]
		if replies == nil {
			replies = []model.Comment{}
		}
		c.Replies = replies
		tree = append(tree, c)
	}
	return tree
}

func (s *commentService) GetByID(ctx context.Context, id int64) (*model.Comment, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{Component: "relay.service.comment", RecordID: logger.Ptr(id)})

	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		slog.ErrorContext(ctx, "failed to get comment", "error", err)
		return nil, err
	}
	return comment, nil
}

func (s *commentService) Create(ctx context.Context, in model.CreateComment) (*model.Comment, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{Component: "relay.service.comment"})

	if err := s.validate(ctx, in); err != nil {
		return nil, err
	}

	comment, err := s.comments.Create(ctx, in)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create comment", "error", err)
		return nil, fmt.Errorf("creating comment: %w", err)
	}

	s.adjustCommentCount(ctx, comment.PostID, 1)

	slog.InfoContext(ctx, "comment created", "comment_id", comment.ID, "post_id", comment.PostID)
	return comment, nil
}

// validate enforces that a comment belongs to exactly one post or roadmap item,
// and that a reply targets a top-level comment in the same thread.
func (s *commentService) validate(ctx context.Context, in model.CreateComment) error {
	onPost := in.PostID != ""
	onRoadmap := in.RoadmapItemID != nil && *in.RoadmapItemID != ""
	if onPost == onRoadmap {
		return fmt.Errorf("%w: exactly one of postId and roadmapItemId is required", ErrInvalidComment)
	}
	if strings.TrimSpace(in.Content) == "" {
		return fmt.Errorf("%w: content is required", ErrInvalidComment)
	}
	if in.ParentID == nil {
		return nil
	}

	parentID, err := strconv.ParseInt(*in.ParentID, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: parentId %q is not a comment id", ErrInvalidComment, *in.ParentID)
	}
	parent, err := s.comments.GetByID(ctx, parentID)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%w: parent comment %d not found", ErrInvalidComment, parentID)
	}
	if err != nil {
		return fmt.Errorf("loading parent comment %d: %w", parentID, err)
	}
	if !parent.IsTopLevel() {
		return fmt.Errorf("%w: replies can only target top-level comments", ErrInvalidComment)
	}
	if parent.PostID != in.PostID || !sameRef(parent.RoadmapItemID, in.RoadmapItemID) {
		return fmt.Errorf("%w: parent comment %d belongs to another thread", ErrInvalidComment, parentID)
	}
	return nil
}

func sameRef(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// adjustCommentCount keeps the post's comment count in step. Failures are logged and do not fail the comment.
func (s *commentService) adjustCommentCount(ctx context.Context, postID string, delta int) {
	if postID == "" {
		return
	}
	id, err := strconv.ParseInt(postID, 10, 64)
	if err != nil {
		return
	}

	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		slog.WarnContext(ctx, "comment count not updated", "post_id", postID, "error", err)
		return
	}
	count := max(post.CommentCount+delta, 0)
	if _, err := s.posts.Update(ctx, id, model.FeedbackPostPatch{CommentCount: &count}); err != nil {
		slog.WarnContext(ctx, "comment count not updated", "post_id", postID, "error", err)
	}
}

func (s *commentService) Update(ctx context.Context, id int64, patch model.CommentPatch) (*model.Comment, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{Component: "relay.service.comment", RecordID: logger.Ptr(id)})

	if patch.Content != nil && strings.TrimSpace(*patch.Content) == "" {
		return nil, fmt.Errorf("%w: content cannot be empty", ErrInvalidComment)
	}

	comment, err := s.comments.Update(ctx, id, patch)
	if err != nil {
		slog.ErrorContext(ctx, "failed to update comment", "error", err)
		return nil, fmt.Errorf("updating comment %d: %w", id, err)
	}
	return comment, nil
}

func (s *commentService) Delete(ctx context.Context, id int64) error {
	ctx = logger.WithLogFields(ctx, logger.LogFields{Component: "relay.service.comment", RecordID: logger.Ptr(id)})

	var postID string
	if existing, err := s.comments.GetByID(ctx, id); err == nil {
		postID = existing.PostID
	}

	if err := s.comments.Delete(ctx, id); err != nil {
		slog.ErrorContext(ctx, "failed to delete comment", "error", err)
		return fmt.Errorf("deleting comment %d: %w", id, err)
	}

	s.adjustCommentCount(ctx, postID, -1)
	return nil
}
