package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"upvote.app/relay/common/logger"
	"upvote.app/relay/internal/model"
	"upvote.app/relay/internal/store"
)

const (
	plannedLeadDays    = 90
	inProgressLeadDays = 30

	DefaultJoinConcurrency = 8
)

type RoadmapService interface {
	// GetAll never fails. Items whose post cannot be loaded are left out.
	GetAll(ctx context.Context) model.Roadmap
	GetByID(ctx context.Context, id int64) (*model.RoadmapItem, error)
	// UpdateStage creates or moves the single roadmap item tracking a feedback post.
	UpdateStage(ctx context.Context, feedbackPostID int64, stage model.Stage, position int) (*model.RoadmapItem, error)
	UpdatePosition(ctx context.Context, id int64, position int) (*model.RoadmapItem, error)
	Delete(ctx context.Context, id int64) error
}

type RoadmapOption func(*roadmapService)

// WithRoadmapClock overrides the clock used for estimated dates.
func WithRoadmapClock(now func() time.Time) RoadmapOption {
	return func(s *roadmapService) {
		s.now = now
	}
}

type roadmapService struct {
	items       store.RoadmapStore
	posts       store.FeedbackStore
	concurrency int
	now         func() time.Time

	// stageMu serializes lookup-then-create so one process never creates two items for a post.
	stageMu sync.Mutex
}

func NewRoadmapService(items store.RoadmapStore, posts store.FeedbackStore, concurrency int, opts ...RoadmapOption) RoadmapService {
	if concurrency < 1 {
		concurrency = DefaultJoinConcurrency
	}
	s := &roadmapService{
		items:       items,
		posts:       posts,
		concurrency: concurrency,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// EstimatedDate projects a delivery date from the stage: 90 days out when planned,
// 30 days when in progress, today when completed, and none for anything else.
func EstimatedDate(stage model.Stage, now time.Time) *time.Time {
	now = now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var date time.Time
	switch stage {
	case model.StagePlanned:
		date = today.AddDate(0, 0, plannedLeadDays)
	case model.StageInProgress:
		date = today.AddDate(0, 0, inProgressLeadDays)
	case model.StageCompleted:
		date = today
	default:
		return nil
	}
	return &date
}

func (s *roadmapService) GetAll(ctx context.Context) model.Roadmap {
	span := logger.StartSpan(ctx, "roadmap.get_all")
	defer span.End()
	ctx = logger.WithLogFields(span.Context(), logger.LogFields{Component: "relay.service.roadmap"})

	items, err := s.items.List(ctx)
	if err != nil {
		span.Fail(err)
		slog.ErrorContext(ctx, "failed to list roadmap items", "error", err)
		return model.NewRoadmap()
	}

	start := time.Now()
	joined, joinErrs := s.joinPosts(ctx, items)
	if len(joinErrs) > 0 {
		slog.WarnContext(ctx, "roadmap items dropped without a readable feedback post",
			"dropped", len(joinErrs),
			"total", len(items),
			"error", errors.Join(joinErrs...))
	}

	span.Set(
		attribute.Int("roadmap.items", len(items)),
		attribute.Int("roadmap.dropped", len(joinErrs)),
	)
	slog.DebugContext(ctx, "roadmap joined",
		"items", len(joined),
		"duration_ms", time.Since(start).Milliseconds())

	return GroupRoadmap(joined)
}

// joinPosts loads each item's feedback post with at most s.concurrency lookups in flight.
// Items that fail to join are omitted from the result and reported in the error slice.
func (s *roadmapService) joinPosts(ctx context.Context, items []model.RoadmapItem) ([]model.RoadmapItem, []error) {
	results := make([]*model.RoadmapItem, len(items))
	errs := make([]error, len(items))
	var wg sync.WaitGroup

	sem := make(chan struct{}, s.concurrency)

	for i, item := range items {
		wg.Add(1)
		go func(idx int, item model.RoadmapItem) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			post, err := s.lookupPost(ctx, item.FeedbackPostID)
			if err != nil {
				errs[idx] = fmt.Errorf("roadmap item %d: %w", item.ID, err)
				return
			}
			item.Post = post
			results[idx] = &item
		}(i, item)
	}

	wg.Wait()

	joined := make([]model.RoadmapItem, 0, len(items))
	var failed []error
	for i := range items {
		if errs[i] != nil {
			failed = append(failed, errs[i])
			continue
		}
		joined = append(joined, *results[i])
	}
	return joined, failed
}

func (s *roadmapService) lookupPost(ctx context.Context, feedbackPostID string) (*model.FeedbackPost, error) {
	postID, err := strconv.ParseInt(feedbackPostID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("feedback post id %q: %w", feedbackPostID, store.ErrNotFound)
	}
	return s.posts.GetByID(ctx, postID)
}

// GroupRoadmap buckets items by stage. Planned and in-progress read by ascending position,
// completed by descending position. Items with any other stage are left out.
func GroupRoadmap(items []model.RoadmapItem) model.Roadmap {
	roadmap := model.NewRoadmap()
	for _, item := range items {
		switch item.Stage {
		case model.StagePlanned:
			roadmap.Planned = append(roadmap.Planned, item)
		case model.StageInProgress:
			roadmap.InProgress = append(roadmap.InProgress, item)
		case model.StageCompleted:
			roadmap.Completed = append(roadmap.Completed, item)
		}
	}

	sort.SliceStable(roadmap.Planned, func(i, j int) bool {
		return roadmap.Planned[i].Position < roadmap.Planned[j].Position
	})
	sort.SliceStable(roadmap.InProgress, func(i, j int) bool {
		return roadmap.InProgress[i].Position < roadmap.InProgress[j].Position
	})
	sort.SliceStable(roadmap.Completed, func(i, j int) bool {
		return roadmap.Completed[i].Position > roadmap.Completed[j].Position
	})
	return roadmap
}

// GetByID fails when the item's post cannot be loaded, unlike GetAll which drops such items.
func (s *roadmapService) GetByID(ctx context.Context, id int64) (*model.RoadmapItem, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{Component: "relay.service.roadmap", RecordID: logger.Ptr(id)})

	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		slog.ErrorContext(ctx, "failed to get roadmap item", "error", err)
		return nil, err
	}

	post, err := s.lookupPost(ctx, item.FeedbackPostID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load feedback post for roadmap item",
			"feedback_post_id", item.FeedbackPostID,
			"error", err)
		return nil, fmt.Errorf("%w (ID: %s) for roadmap item %d: %w", ErrAssociatedPostNotFound, item.FeedbackPostID, id, err)
	}
	item.Post = post
	return item, nil
}

func (s *roadmapService) UpdateStage(ctx context.Context, feedbackPostID int64, stage model.Stage, position int) (*model.RoadmapItem, error) {
	span := logger.StartSpan(ctx, "roadmap.update_stage",
		attribute.Int64("roadmap.feedback_post_id", feedbackPostID),
		attribute.String("roadmap.stage", string(stage)),
	)
	defer span.End()
	ctx = logger.WithLogFields(span.Context(), logger.LogFields{Component: "relay.service.roadmap"})

	s.stageMu.Lock()
	defer s.stageMu.Unlock()

	existing, err := s.items.ListByFeedbackPost(ctx, feedbackPostID)
	if err != nil {
		span.Fail(err)
		slog.ErrorContext(ctx, "failed to look up roadmap item", "feedback_post_id", feedbackPostID, "error", err)
		return nil, fmt.Errorf("looking up roadmap item for post %d: %w", feedbackPostID, err)
	}

	estimated := EstimatedDate(stage, s.now())

	if len(existing) == 0 {
		item, err := s.items.Create(ctx, feedbackPostID, stage, position, estimated)
		if err != nil {
			span.Fail(err)
			slog.ErrorContext(ctx, "failed to create roadmap item", "feedback_post_id", feedbackPostID, "error", err)
			return nil, fmt.Errorf("creating roadmap item for post %d: %w", feedbackPostID, err)
		}
		slog.InfoContext(ctx, "roadmap item created",
			"roadmap_item_id", item.ID,
			"feedback_post_id", feedbackPostID,
			"stage", stage)
		return item, nil
	}

	itemID := existing[0].ID
	item, err := s.items.Update(ctx, itemID, model.RoadmapItemPatch{
		Stage:            &stage,
		Position:         &position,
		SetEstimatedDate: true,
		EstimatedDate:    estimated,
	})
	if err != nil {
		span.Fail(err)
		slog.ErrorContext(ctx, "failed to update roadmap item", "roadmap_item_id", itemID, "error", err)
		return nil, fmt.Errorf("updating roadmap item %d: %w", itemID, err)
	}

	slog.InfoContext(ctx, "roadmap item moved",
		"roadmap_item_id", item.ID,
		"feedback_post_id", feedbackPostID,
		"stage", stage)
	return item, nil
}

func (s *roadmapService) UpdatePosition(ctx context.Context, id int64, position int) (*model.RoadmapItem, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{Component: "relay.service.roadmap", RecordID: logger.Ptr(id)})

	item, err := s.items.Update(ctx, id, model.RoadmapItemPatch{Position: &position})
	if err != nil {
		slog.ErrorContext(ctx, "failed to update roadmap position", "error", err)
		return nil, fmt.Errorf("updating roadmap item %d position: %w", id, err)
	}
	return item, nil
}

func (s *roadmapService) Delete(ctx context.Context, id int64) error {
	ctx = logger.WithLogFields(ctx, logger.LogFields{Component: "relay.service.roadmap", RecordID: logger.Ptr(id)})

	if err := s.items.Delete(ctx, id); err != nil {
		slog.ErrorContext(ctx, "failed to delete roadmap item", "error", err)
		return fmt.Errorf("deleting roadmap item %d: %w", id, err)
	}
	return nil
}
