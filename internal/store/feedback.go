package store

import (
	"context"
	"time"

	"upvote.app/relay/internal/mapper"
	"upvote.app/relay/internal/model"
	"upvote.app/relay/internal/records"
)

const feedbackPageSize = 100

type feedbackStore struct {
	table table
	now   func() time.Time
}

func newFeedbackStore(client records.Client, now func() time.Time) FeedbackStore {
	return &feedbackStore{
		table: table{client: client, name: mapper.FeedbackPostTable, entity: "feedback post"},
		now:   now,
	}
}

// List applies category, status and search filters at the backend. Trending order is left to the caller.
func (s *feedbackStore) List(ctx context.Context, filters model.FeedbackFilters) ([]model.FeedbackPost, error) {
	q := records.Query{
		Fields:  mapper.FeedbackPostFields,
		OrderBy: feedbackOrder(filters.SortBy),
		Paging:  records.Paging{Limit: feedbackPageSize},
	}
	if len(filters.Categories) > 0 {
		q.Where = append(q.Where, records.ExactMatch(mapper.FeedbackCategory, true, filters.Categories...))
	}
	if len(filters.Statuses) > 0 {
		q.Where = append(q.Where, records.ExactMatch(mapper.FeedbackStatus, true, filters.Statuses...))
	}
	if filters.Search != "" {
		q.WhereGroups = append(q.WhereGroups, records.WhereGroup{
			Operator: records.LogicOr,
			SubGroups: []records.SubGroup{{
				Operator: records.LogicOr,
				Conditions: []records.Condition{
					records.Contains(mapper.FeedbackTitle, filters.Search),
					records.Contains(mapper.FeedbackDescription, filters.Search),
				},
			}},
		})
	}

	rows, err := s.table.fetch(ctx, q)
	if err != nil {
		return nil, err
	}

	posts := make([]model.FeedbackPost, 0, len(rows))
	for _, r := range rows {
		posts = append(posts, mapper.FeedbackPostFromRecord(r))
	}
	return posts, nil
}

func feedbackOrder(sort model.SortMode) []records.OrderBy {
	switch sort {
	case model.SortVotes:
		return []records.OrderBy{{Field: mapper.FeedbackVoteCount, SortType: records.SortDesc}}
	case model.SortNewest:
		return []records.OrderBy{{Field: mapper.FeedbackCreatedAt, SortType: records.SortDesc}}
	case model.SortOldest:
		return []records.OrderBy{{Field: mapper.FeedbackCreatedAt, SortType: records.SortAsc}}
	default:
		return nil
	}
}

func (s *feedbackStore) GetByID(ctx context.Context, id int64) (*model.FeedbackPost, error) {
	r, err := s.table.get(ctx, id, mapper.FeedbackPostFields)
	if err != nil {
		return nil, err
	}
	post := mapper.FeedbackPostFromRecord(r)
	return &post, nil
}

func (s *feedbackStore) Create(ctx context.Context, in model.CreateFeedbackPost) (*model.FeedbackPost, error) {
	r, err := s.table.create(ctx, mapper.NewFeedbackPostRecord(in, s.now()))
	if err != nil {
		return nil, err
	}
	post := mapper.FeedbackPostFromRecord(r)
	return &post, nil
}

func (s *feedbackStore) Update(ctx context.Context, id int64, patch model.FeedbackPostPatch) (*model.FeedbackPost, error) {
	r, err := s.table.update(ctx, mapper.FeedbackPostPatchRecord(id, patch, s.now()))
	if err != nil {
		return nil, err
	}
	post := mapper.FeedbackPostFromRecord(r)
	return &post, nil
}

func (s *feedbackStore) Delete(ctx context.Context, id int64) error {
	return s.table.delete(ctx, id)
}
