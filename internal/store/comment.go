package store

import (
	"context"
	"time"

	"upvote.app/relay/internal/mapper"
	"upvote.app/relay/internal/model"
	"upvote.app/relay/internal/records"
)

const (
	commentThreadPageSize = 200
	commentPageSize       = 500
)

type commentStore struct {
	table table
	now   func() time.Time
}

func newCommentStore(client records.Client, now func() time.Time) CommentStore {
	return &commentStore{
		table: table{client: client, name: mapper.CommentTable, entity: "comment"},
		now:   now,
	}
}

func (s *commentStore) List(ctx context.Context) ([]model.Comment, error) {
	return s.list(ctx, records.Query{
		Fields: mapper.CommentFields,
		Paging: records.Paging{Limit: commentPageSize},
	})
}

func (s *commentStore) ListByPost(ctx context.Context, postID string) ([]model.Comment, error) {
	return s.list(ctx, threadQuery(mapper.CommentPostID, postID))
}

func (s *commentStore) ListByRoadmapItem(ctx context.Context, roadmapItemID string) ([]model.Comment, error) {
	return s.list(ctx, threadQuery(mapper.CommentRoadmapItemID, roadmapItemID))
}

// threadQuery returns a thread oldest first.
func threadQuery(field, value string) records.Query {
	return records.Query{
		Fields:  mapper.CommentFields,
		Where:   []records.Condition{records.EqualTo(field, value)},
		OrderBy: []records.OrderBy{{Field: mapper.CommentCreatedAt, SortType: records.SortAsc}},
		Paging:  records.Paging{Limit: commentThreadPageSize},
	}
}

func (s *commentStore) list(ctx context.Context, q records.Query) ([]model.Comment, error) {
	rows, err := s.table.fetch(ctx, q)
	if err != nil {
		return nil, err
	}

	comments := make([]model.Comment, 0, len(rows))
	for _, r := range rows {
		comments = append(comments, mapper.CommentFromRecord(r))
	}
	return comments, nil
}

func (s *commentStore) GetByID(ctx context.Context, id int64) (*model.Comment, error) {
	r, err := s.table.get(ctx, id, mapper.CommentFields)
	if err != nil {
		return nil, err
	}
	comment := mapper.CommentFromRecord(r)
	return &comment, nil
}

func (s *commentStore) Create(ctx context.Context, in model.CreateComment) (*model.Comment, error) {
	r, err := s.table.create(ctx, mapper.NewCommentRecord(in, s.now()))
	if err != nil {
		return nil, err
	}
	comment := mapper.CommentFromRecord(r)
	return &comment, nil
}

func (s *commentStore) Update(ctx context.Context, id int64, patch model.CommentPatch) (*model.Comment, error) {
	r, err := s.table.update(ctx, mapper.CommentPatchRecord(id, patch))
	if err != nil {
		return nil, err
	}
	comment := mapper.CommentFromRecord(r)
	return &comment, nil
}

func (s *commentStore) Delete(ctx context.Context, id int64) error {
	return s.table.delete(ctx, id)
}
