package records

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"upvote.app/relay/common/id"
)

// MemoryClient keeps tables in process. Used for local development and tests.
type MemoryClient struct {
	mu     sync.RWMutex
	ids    id.Source
	tables map[string]*memoryTable
}

type memoryTable struct {
	rows  map[int64]Record
	order []int64
}

func NewMemoryClient(ids id.Source) *MemoryClient {
	if ids == nil {
		ids = &id.Sequence{}
	}
	return &MemoryClient{
		ids:    ids,
		tables: make(map[string]*memoryTable),
	}
}

func (c *MemoryClient) table(name string) *memoryTable {
	t, ok := c.tables[name]
	if !ok {
		t = &memoryTable{rows: make(map[int64]Record)}
		c.tables[name] = t
	}
	return t
}

func (c *MemoryClient) FetchRecords(ctx context.Context, table string, q Query) (*FetchResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	var matched []Record
	if t, ok := c.tables[table]; ok {
		for _, recordID := range t.order {
			row, ok := t.rows[recordID]
			if ok && q.Matches(row) {
				matched = append(matched, row)
			}
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return q.Less(matched[i], matched[j])
	})

	page := q.Paging.Page(matched)
	data := make([]Record, 0, len(page))
	for _, row := range page {
		data = append(data, row.Project(q.Fields))
	}
	return &FetchResponse{Success: true, Data: data}, nil
}

func (c *MemoryClient) GetRecordByID(ctx context.Context, table string, recordID int64, fields []string) (*GetResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	t, ok := c.tables[table]
	if !ok {
		return &GetResponse{Success: true}, nil
	}
	row, ok := t.rows[recordID]
	if !ok {
		return &GetResponse{Success: true}, nil
	}
	return &GetResponse{Success: true, Data: row.Project(fields)}, nil
}

func (c *MemoryClient) CreateRecord(ctx context.Context, table string, rows []Record) (*MutationResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	t := c.table(table)
	results := make([]RecordResult, 0, len(rows))
	for _, row := range rows {
		stored := row.Clone()
		recordID := c.ids.NextID()
		stored[FieldID] = recordID
		t.rows[recordID] = stored
		t.order = append(t.order, recordID)
		results = append(results, RecordResult{Success: true, Data: stored.Clone()})
	}
	return &MutationResponse{Success: true, Results: results}, nil
}

func (c *MemoryClient) UpdateRecord(ctx context.Context, table string, rows []Record) (*MutationResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	t := c.table(table)
	results := make([]RecordResult, 0, len(rows))
	for _, patch := range rows {
		recordID := patch.ID()
		stored, ok := t.rows[recordID]
		if !ok {
			results = append(results, RecordResult{Message: notFoundMessage(table, recordID)})
			continue
		}
		for k, v := range patch {
			if k == FieldID {
				continue
			}
			stored[k] = v
		}
		results = append(results, RecordResult{Success: true, Data: stored.Clone()})
	}
	return &MutationResponse{Success: true, Results: results}, nil
}

// DeleteRecord removes every id that exists and reports failure if any did not.
func (c *MemoryClient) DeleteRecord(ctx context.Context, table string, ids []int64) (*DeleteResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	t := c.table(table)
	var missing []int64
	for _, recordID := range ids {
		if _, ok := t.rows[recordID]; !ok {
			missing = append(missing, recordID)
			continue
		}
		delete(t.rows, recordID)
		t.order = removeID(t.order, recordID)
	}
	if len(missing) > 0 {
		return &DeleteResponse{Message: missingMessage(table, missing)}, nil
	}
	return &DeleteResponse{Success: true}, nil
}

func removeID(order []int64, recordID int64) []int64 {
	for i, v := range order {
		if v == recordID {
			return append(order[:i], order[i+1:]...)
		}
	}
	return order
}

func notFoundMessage(table string, recordID int64) string {
	return fmt.Sprintf("Record with Id %d does not exist in %s", recordID, table)
}

func missingMessage(table string, ids []int64) string {
	parts := make([]string, len(ids))
	for i, v := range ids {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return fmt.Sprintf("Records %s do not exist in %s", strings.Join(parts, ", "), table)
}
