package store

import (
	"context"
	"time"

	"upvote.app/relay/internal/mapper"
	"upvote.app/relay/internal/model"
	"upvote.app/relay/internal/records"
)

const changelogPageSize = 100

type changelogStore struct {
	table table
	now   func() time.Time
}

func newChangelogStore(client records.Client, now func() time.Time) ChangelogStore {
	return &changelogStore{
		table: table{client: client, name: mapper.ChangelogEntryTable, entity: "changelog entry"},
		now:   now,
	}
}

// List returns the latest releases first.
func (s *changelogStore) List(ctx context.Context) ([]model.ChangelogEntry, error) {
	rows, err := s.table.fetch(ctx, records.Query{
		Fields:  mapper.ChangelogEntryFields,
		OrderBy: []records.OrderBy{{Field: mapper.ChangelogReleaseDate, SortType: records.SortDesc}},
		Paging:  records.Paging{Limit: changelogPageSize},
	})
	if err != nil {
		return nil, err
	}

	entries := make([]model.ChangelogEntry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, mapper.ChangelogEntryFromRecord(r))
	}
	return entries, nil
}

func (s *changelogStore) GetByID(ctx context.Context, id int64) (*model.ChangelogEntry, error) {
	r, err := s.table.get(ctx, id, mapper.ChangelogEntryFields)
	if err != nil {
		return nil, err
	}
	entry := mapper.ChangelogEntryFromRecord(r)
	return &entry, nil
}

func (s *changelogStore) Create(ctx context.Context, in model.CreateChangelogEntry) (*model.ChangelogEntry, error) {
	r, err := s.table.create(ctx, mapper.NewChangelogEntryRecord(in, s.now()))
	if err != nil {
		return nil, err
	}
	entry := mapper.ChangelogEntryFromRecord(r)
	return &entry, nil
}

func (s *changelogStore) Update(ctx context.Context, id int64, patch model.ChangelogEntryPatch) (*model.ChangelogEntry, error) {
	r, err := s.table.update(ctx, mapper.ChangelogEntryPatchRecord(id, patch))
	if err != nil {
		return nil, err
	}
	entry := mapper.ChangelogEntryFromRecord(r)
	return &entry, nil
}

func (s *changelogStore) Delete(ctx context.Context, id int64) error {
	return s.table.delete(ctx, id)
}
