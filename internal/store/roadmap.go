package store

import (
	"context"
	"strconv"
	"time"

	"upvote.app/relay/internal/mapper"
	"upvote.app/relay/internal/model"
	"upvote.app/relay/internal/records"
)

const roadmapPageSize = 100

type roadmapStore struct {
	table table
}

func newRoadmapStore(client records.Client) RoadmapStore {
	return &roadmapStore{
		table: table{client: client, name: mapper.RoadmapItemTable, entity: "roadmap item"},
	}
}

func (s *roadmapStore) List(ctx context.Context) ([]model.RoadmapItem, error) {
	return s.list(ctx, records.Query{
		Fields: mapper.RoadmapItemFields,
		Paging: records.Paging{Limit: roadmapPageSize},
	})
}

func (s *roadmapStore) ListByFeedbackPost(ctx context.Context, feedbackPostID int64) ([]model.RoadmapItem, error) {
	return s.list(ctx, records.Query{
		Fields: []string{records.FieldID, mapper.RoadmapFeedbackPostID},
		Where: []records.Condition{
			records.EqualTo(mapper.RoadmapFeedbackPostID, strconv.FormatInt(feedbackPostID, 10)),
		},
	})
}

func (s *roadmapStore) list(ctx context.Context, q records.Query) ([]model.RoadmapItem, error) {
	rows, err := s.table.fetch(ctx, q)
	if err != nil {
		return nil, err
	}

	items := make([]model.RoadmapItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, mapper.RoadmapItemFromRecord(r))
	}
	return items, nil
}

func (s *roadmapStore) GetByID(ctx context.Context, id int64) (*model.RoadmapItem, error) {
	r, err := s.table.get(ctx, id, mapper.RoadmapItemFields)
	if err != nil {
		return nil, err
	}
	item := mapper.RoadmapItemFromRecord(r)
	return &item, nil
}

func (s *roadmapStore) Create(ctx context.Context, feedbackPostID int64, stage model.Stage, position int, estimatedDate *time.Time) (*model.RoadmapItem, error) {
	r, err := s.table.create(ctx, mapper.NewRoadmapItemRecord(feedbackPostID, stage, position, estimatedDate))
	if err != nil {
		return nil, err
	}
	item := mapper.RoadmapItemFromRecord(r)
	return &item, nil
}

func (s *roadmapStore) Update(ctx context.Context, id int64, patch model.RoadmapItemPatch) (*model.RoadmapItem, error) {
	r, err := s.table.update(ctx, mapper.RoadmapItemPatchRecord(id, patch))
	if err != nil {
		return nil, err
	}
	item := mapper.RoadmapItemFromRecord(r)
	return &item, nil
}

func (s *roadmapStore) Delete(ctx context.Context, id int64) error {
	return s.table.delete(ctx, id)
}
