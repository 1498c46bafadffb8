package service

import (
	"context"
	"fmt"
	"log/slog"

	"upvote.app/relay/common/logger"
	"upvote.app/relay/internal/model"
	"upvote.app/relay/internal/store"
)

type ChangelogService interface {
	List(ctx context.Context) []model.ChangelogEntry
	GetByID(ctx context.Context, id int64) (*model.ChangelogEntry, error)
	Create(ctx context.Context, in model.CreateChangelogEntry) (*model.ChangelogEntry, error)
	Update(ctx context.Context, id int64, patch model.ChangelogEntryPatch) (*model.ChangelogEntry, error)
	Delete(ctx context.Context, id int64) error
}

type changelogService struct {
	entries store.ChangelogStore
}

func NewChangelogService(entries store.ChangelogStore) ChangelogService {
	return &changelogService{entries: entries}
}

func (s *changelogService) List(ctx context.Context) []model.ChangelogEntry {
	ctx = logger.WithLogFields(ctx, logger.LogFields{Component: "relay.service.changelog"})

	entries, err := s.entries.List(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list changelog entries", "error", err)
		return []model.ChangelogEntry{}
	}
	return entries
}

func (s *changelogService) GetByID(ctx context.Context, id int64) (*model.ChangelogEntry, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{Component: "relay.service.changelog", RecordID: logger.Ptr(id)})

	entry, err := s.entries.GetByID(ctx, id)
	if err != nil {
		slog.ErrorContext(ctx, "failed to get changelog entry", "error", err)
		return nil, err
	}
	return entry, nil
}

func (s *changelogService) Create(ctx context.Context, in model.CreateChangelogEntry) (*model.ChangelogEntry, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{Component: "relay.service.changelog"})

	entry, err := s.entries.Create(ctx, in)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create changelog entry", "error", err)
		return nil, fmt.Errorf("creating changelog entry: %w", err)
	}

	slog.InfoContext(ctx, "changelog entry published", "changelog_entry_id", entry.ID, "related_posts", len(entry.RelatedPostIDs))
	return entry, nil
}

func (s *changelogService) Update(ctx context.Context, id int64, patch model.ChangelogEntryPatch) (*model.ChangelogEntry, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{Component: "relay.service.changelog", RecordID: logger.Ptr(id)})

	entry, err := s.entries.Update(ctx, id, patch)
	if err != nil {
		slog.ErrorContext(ctx, "failed to update changelog entry", "error", err)
		return nil, fmt.Errorf("updating changelog entry %d: %w", id, err)
	}
	return entry, nil
}

func (s *changelogService) Delete(ctx context.Context, id int64) error {
	ctx = logger.WithLogFields(ctx, logger.LogFields{Component: "relay.service.changelog", RecordID: logger.Ptr(id)})

	if err := s.entries.Delete(ctx, id); err != nil {
		slog.ErrorContext(ctx, "failed to delete changelog entry", "error", err)
		return fmt.Errorf("deleting changelog entry %d: %w", id, err)
	}
	return nil
}
