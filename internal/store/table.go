package store

import (
	"context"
	"fmt"
	"log/slog"

	"upvote.app/relay/common/logger"
	"upvote.app/relay/internal/records"
)

const maxLoggedMessage = 200

// table turns record envelopes into Go errors for one backend table.
type table struct {
	client records.Client
	name   string
	entity string
}

func (t table) logContext(ctx context.Context) context.Context {
	return logger.WithLogFields(ctx, logger.LogFields{Table: logger.Ptr(t.name)})
}

func (t table) fetch(ctx context.Context, q records.Query) ([]records.Record, error) {
	if t.client == nil {
		return nil, records.ErrClientUnavailable
	}

	ctx = t.logContext(ctx)
	resp, err := t.client.FetchRecords(ctx, t.name, q)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", t.name, err)
	}
	if !resp.Success {
		return nil, t.refused(ctx, "fetch", resp.Message)
	}
	return resp.Data, nil
}

func (t table) get(ctx context.Context, id int64, fields []string) (records.Record, error) {
	if t.client == nil {
		return nil, records.ErrClientUnavailable
	}

	ctx = t.logContext(ctx)
	resp, err := t.client.GetRecordByID(ctx, t.name, id, fields)
	if err != nil {
		return nil, fmt.Errorf("%s with id %d %w (%w)", t.entity, id, ErrNotFound, err)
	}
	if !resp.Success || resp.Data == nil {
		return nil, fmt.Errorf("%s with id %d %w", t.entity, id, ErrNotFound)
	}
	return resp.Data, nil
}

func (t table) create(ctx context.Context, r records.Record) (records.Record, error) {
	if t.client == nil {
		return nil, records.ErrClientUnavailable
	}

	ctx = t.logContext(ctx)
	resp, err := t.client.CreateRecord(ctx, t.name, []records.Record{r})
	if err != nil {
		return nil, t.failed(ctx, "create", err)
	}
	return t.single(ctx, "create", resp)
}

func (t table) update(ctx context.Context, r records.Record) (records.Record, error) {
	if t.client == nil {
		return nil, records.ErrClientUnavailable
	}

	ctx = t.logContext(ctx)
	resp, err := t.client.UpdateRecord(ctx, t.name, []records.Record{r})
	if err != nil {
		return nil, t.failed(ctx, "update", err)
	}
	return t.single(ctx, "update", resp)
}

func (t table) delete(ctx context.Context, id int64) error {
	if t.client == nil {
		return records.ErrClientUnavailable
	}

	ctx = t.logContext(ctx)
	resp, err := t.client.DeleteRecord(ctx, t.name, []int64{id})
	if err != nil {
		return t.failed(ctx, "delete", err)
	}
	if !resp.Success {
		return t.refused(ctx, "delete", resp.Message)
	}
	return nil
}

// single unwraps the one-record result of a create or update.
func (t table) single(ctx context.Context, op string, resp *records.MutationResponse) (records.Record, error) {
	if !resp.Success {
		return nil, t.refused(ctx, op, resp.Message)
	}
	if len(resp.Results) == 0 {
		return nil, t.refused(ctx, op, "")
	}
	result := resp.Results[0]
	if !result.Success || result.Data == nil {
		return nil, t.refused(ctx, op, result.Message)
	}
	return result.Data, nil
}

func (t table) refused(ctx context.Context, op, message string) *OperationError {
	if message == "" {
		message = fmt.Sprintf("failed to %s %s", op, t.entity)
	}
	slog.WarnContext(ctx, "backend refused record operation",
		"op", op,
		"message", logger.Truncate(message, maxLoggedMessage))
	return &OperationError{Table: t.name, Op: op, Message: message}
}

func (t table) failed(ctx context.Context, op string, err error) *OperationError {
	slog.ErrorContext(ctx, "record operation failed", "op", op, "error", err)
	return &OperationError{Table: t.name, Op: op, Message: err.Error(), Err: err}
}
