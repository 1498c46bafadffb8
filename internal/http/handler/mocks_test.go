package handler_test

import (
	"context"

	"upvote.app/relay/internal/model"
)

type mockFeedbackService struct {
	listFn    func(ctx context.Context, filters model.FeedbackFilters) []model.FeedbackPost
	getByIDFn func(ctx context.Context, id int64) (*model.FeedbackPost, error)
	createFn  func(ctx context.Context, in model.CreateFeedbackPost) (*model.FeedbackPost, error)
	updateFn  func(ctx context.Context, id int64, patch model.FeedbackPostPatch) (*model.FeedbackPost, error)
	deleteFn  func(ctx context.Context, id int64) error
	voteFn    func(ctx context.Context, id int64) (*model.FeedbackPost, error)
}

func (m *mockFeedbackService) List(ctx context.Context, filters model.FeedbackFilters) []model.FeedbackPost {
	if m.listFn != nil {
		return m.listFn(ctx, filters)
	}
	return []model.FeedbackPost{}
}

func (m *mockFeedbackService) GetByID(ctx context.Context, id int64) (*model.FeedbackPost, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockFeedbackService) Create(ctx context.Context, in model.CreateFeedbackPost) (*model.FeedbackPost, error) {
	if m.createFn != nil {
		return m.createFn(ctx, in)
	}
	return nil, nil
}

func (m *mockFeedbackService) Update(ctx context.Context, id int64, patch model.FeedbackPostPatch) (*model.FeedbackPost, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, patch)
	}
	return nil, nil
}

func (m *mockFeedbackService) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockFeedbackService) Vote(ctx context.Context, id int64) (*model.FeedbackPost, error) {
	if m.voteFn != nil {
		return m.voteFn(ctx, id)
	}
	return nil, nil
}

type mockCommentService struct {
	listFn              func(ctx context.Context) []model.Comment
	listByPostFn        func(ctx context.Context, postID string) []model.Comment
	listByRoadmapItemFn func(ctx context.Context, roadmapItemID string) []model.Comment
	getByIDFn           func(ctx context.Context, id int64) (*model.Comment, error)
	createFn            func(ctx context.Context, in model.CreateComment) (*model.Comment, error)
	updateFn            func(ctx context.Context, id int64, patch model.CommentPatch) (*model.Comment, error)
	deleteFn            func(ctx context.Context, id int64) error
}

func (m *mockCommentService) List(ctx context.Context) []model.Comment {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return []model.Comment{}
}

func (m *mockCommentService) ListByPost(ctx context.Context, postID string) []model.Comment {
	if m.listByPostFn != nil {
		return m.listByPostFn(ctx, postID)
	}
	return []model.Comment{}
}

func (m *mockCommentService) ListByRoadmapItem(ctx context.Context, roadmapItemID string) []model.Comment {
	if m.listByRoadmapItemFn != nil {
		return m.listByRoadmapItemFn(ctx, roadmapItemID)
	}
	return []model.Comment{}
}

func (m *mockCommentService) GetByID(ctx context.Context, id int64) (*model.Comment, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockCommentService) Create(ctx context.Context, in model.CreateComment) (*model.Comment, error) {
	if m.createFn != nil {
		return m.createFn(ctx, in)
	}
	return nil, nil
}

func (m *mockCommentService) Update(ctx context.Context, id int64, patch model.CommentPatch) (*model.Comment, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, patch)
	}
	return nil, nil
}

func (m *mockCommentService) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

type mockRoadmapService struct {
	getAllFn         func(ctx context.Context) model.Roadmap
	getByIDFn        func(ctx context.Context, id int64) (*model.RoadmapItem, error)
	updateStageFn    func(ctx context.Context, feedbackPostID int64, stage model.Stage, position int) (*model.RoadmapItem, error)
	updatePositionFn func(ctx context.Context, id int64, position int) (*model.RoadmapItem, error)
	deleteFn         func(ctx context.Context, id int64) error
}

func (m *mockRoadmapService) GetAll(ctx context.Context) model.Roadmap {
	if m.getAllFn != nil {
		return m.getAllFn(ctx)
	}
	return model.NewRoadmap()
}

func (m *mockRoadmapService) GetByID(ctx context.Context, id int64) (*model.RoadmapItem, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockRoadmapService) UpdateStage(ctx context.Context, feedbackPostID int64, stage model.Stage, position int) (*model.RoadmapItem, error) {
	if m.updateStageFn != nil {
		return m.updateStageFn(ctx, feedbackPostID, stage, position)
	}
	return nil, nil
}

func (m *mockRoadmapService) UpdatePosition(ctx context.Context, id int64, position int) (*model.RoadmapItem, error) {
	if m.updatePositionFn != nil {
		return m.updatePositionFn(ctx, id, position)
	}
	return nil, nil
}

func (m *mockRoadmapService) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

type mockChangelogService struct {
	listFn    func(ctx context.Context) []model.ChangelogEntry
	getByIDFn func(ctx context.Context, id int64) (*model.ChangelogEntry, error)
	createFn  func(ctx context.Context, in model.CreateChangelogEntry) (*model.ChangelogEntry, error)
	updateFn  func(ctx context.Context, id int64, patch model.ChangelogEntryPatch) (*model.ChangelogEntry, error)
	deleteFn  func(ctx context.Context, id int64) error
}

func (m *mockChangelogService) List(ctx context.Context) []model.ChangelogEntry {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return []model.ChangelogEntry{}
}

func (m *mockChangelogService) GetByID(ctx context.Context, id int64) (*model.ChangelogEntry, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockChangelogService) Create(ctx context.Context, in model.CreateChangelogEntry) (*model.ChangelogEntry, error) {
	if m.createFn != nil {
		return m.createFn(ctx, in)
	}
	return nil, nil
}

func (m *mockChangelogService) Update(ctx context.Context, id int64, patch model.ChangelogEntryPatch) (*model.ChangelogEntry, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, patch)
	}
	return nil, nil
}

func (m *mockChangelogService) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}
