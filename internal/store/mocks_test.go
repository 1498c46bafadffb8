package store_test

import (
	"context"

	"upvote.app/relay/internal/records"
)

type mockRecordClient struct {
	fetchFn  func(ctx context.Context, table string, q records.Query) (*records.FetchResponse, error)
	getFn    func(ctx context.Context, table string, id int64, fields []string) (*records.GetResponse, error)
	createFn func(ctx context.Context, table string, rows []records.Record) (*records.MutationResponse, error)
	updateFn func(ctx context.Context, table string, rows []records.Record) (*records.MutationResponse, error)
	deleteFn func(ctx context.Context, table string, ids []int64) (*records.DeleteResponse, error)

	lastQuery records.Query
}

func (m *mockRecordClient) FetchRecords(ctx context.Context, table string, q records.Query) (*records.FetchResponse, error) {
	m.lastQuery = q
	if m.fetchFn != nil {
		return m.fetchFn(ctx, table, q)
	}
	return &records.FetchResponse{Success: true}, nil
}

func (m *mockRecordClient) GetRecordByID(ctx context.Context, table string, id int64, fields []string) (*records.GetResponse, error) {
	if m.getFn != nil {
		return m.getFn(ctx, table, id, fields)
	}
	return &records.GetResponse{Success: true}, nil
}

func (m *mockRecordClient) CreateRecord(ctx context.Context, table string, rows []records.Record) (*records.MutationResponse, error) {
	if m.createFn != nil {
		return m.createFn(ctx, table, rows)
	}
	return &records.MutationResponse{Success: true}, nil
}

func (m *mockRecordClient) UpdateRecord(ctx context.Context, table string, rows []records.Record) (*records.MutationResponse, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, table, rows)
	}
	return &records.MutationResponse{Success: true}, nil
}

func (m *mockRecordClient) DeleteRecord(ctx context.Context, table string, ids []int64) (*records.DeleteResponse, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, table, ids)
	}
	return &records.DeleteResponse{Success: true}, nil
}
