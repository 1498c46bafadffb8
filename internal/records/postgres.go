package records

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"upvote.app/relay/common/id"
)

// Querier is the subset of *pgxpool.Pool the postgres backend needs.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresClient stores every table as rows of a single JSONB table keyed by (table_name, id).
type PostgresClient struct {
	db  Querier
	ids id.Source
}

func NewPostgresClient(db Querier, ids id.Source) *PostgresClient {
	return &PostgresClient{db: db, ids: ids}
}

func (c *PostgresClient) FetchRecords(ctx context.Context, table string, q Query) (*FetchResponse, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	sql, args := buildSelect(table, q)
	rows, err := c.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", table, err)
	}
	defer rows.Close()

	data := []Record{}
	for rows.Next() {
		var recordID int64
		var raw []byte
		if err := rows.Scan(&recordID, &raw); err != nil {
			return nil, fmt.Errorf("scanning %s row: %w", table, err)
		}
		row, err := decodeRow(recordID, raw)
		if err != nil {
			return nil, err
		}
		data = append(data, row.Project(q.Fields))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s rows: %w", table, err)
	}

	return &FetchResponse{Success: true, Data: data}, nil
}

func (c *PostgresClient) GetRecordByID(ctx context.Context, table string, recordID int64, fields []string) (*GetResponse, error) {
	var raw []byte
	err := c.db.QueryRow(ctx,
		`SELECT data FROM records WHERE table_name = $1 AND id = $2`,
		table, recordID,
	).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return &GetResponse{Success: true}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting %s %d: %w", table, recordID, err)
	}

	row, err := decodeRow(recordID, raw)
	if err != nil {
		return nil, err
	}
	return &GetResponse{Success: true, Data: row.Project(fields)}, nil
}

func (c *PostgresClient) CreateRecord(ctx context.Context, table string, rows []Record) (*MutationResponse, error) {
	results := make([]RecordResult, 0, len(rows))
	for _, row := range rows {
		doc := row.Clone()
		recordID := c.ids.NextID()
		doc[FieldID] = recordID

		payload, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("encoding %s record: %w", table, err)
		}

		if _, err := c.db.Exec(ctx,
			`INSERT INTO records (table_name, id, data) VALUES ($1, $2, $3::jsonb)`,
			table, recordID, string(payload),
		); err != nil {
			return nil, fmt.Errorf("inserting into %s: %w", table, err)
		}
		results = append(results, RecordResult{Success: true, Data: doc})
	}
	return &MutationResponse{Success: true, Results: results}, nil
}

func (c *PostgresClient) UpdateRecord(ctx context.Context, table string, rows []Record) (*MutationResponse, error) {
	results := make([]RecordResult, 0, len(rows))
	for _, row := range rows {
		recordID := row.ID()
		patch := row.Clone()
		delete(patch, FieldID)

		payload, err := json.Marshal(patch)
		if err != nil {
			return nil, fmt.Errorf("encoding %s patch: %w", table, err)
		}

		var raw []byte
		err = c.db.QueryRow(ctx,
			`UPDATE records SET data = data || $3::jsonb
			 WHERE table_name = $1 AND id = $2
			 RETURNING data`,
			table, recordID, string(payload),
		).Scan(&raw)
		if errors.Is(err, pgx.ErrNoRows) {
			results = append(results, RecordResult{Message: notFoundMessage(table, recordID)})
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("updating %s %d: %w", table, recordID, err)
		}

		updated, err := decodeRow(recordID, raw)
		if err != nil {
			return nil, err
		}
		results = append(results, RecordResult{Success: true, Data: updated})
	}
	return &MutationResponse{Success: true, Results: results}, nil
}

func (c *PostgresClient) DeleteRecord(ctx context.Context, table string, ids []int64) (*DeleteResponse, error) {
	rows, err := c.db.Query(ctx,
		`DELETE FROM records WHERE table_name = $1 AND id = ANY($2) RETURNING id`,
		table, ids,
	)
	if err != nil {
		return nil, fmt.Errorf("deleting from %s: %w", table, err)
	}
	defer rows.Close()

	deleted := make(map[int64]bool, len(ids))
	for rows.Next() {
		var recordID int64
		if err := rows.Scan(&recordID); err != nil {
			return nil, fmt.Errorf("scanning deleted id: %w", err)
		}
		deleted[recordID] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("deleting from %s: %w", table, err)
	}

	var missing []int64
	for _, recordID := range ids {
		if !deleted[recordID] {
			missing = append(missing, recordID)
		}
	}
	if len(missing) > 0 {
		return &DeleteResponse{Message: missingMessage(table, missing)}, nil
	}
	return &DeleteResponse{Success: true}, nil
}

// decodeRow keeps numbers as json.Number so snowflake ids survive, and trusts the id column over the payload.
func decodeRow(recordID int64, raw []byte) (Record, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var row Record
	if err := dec.Decode(&row); err != nil {
		return nil, fmt.Errorf("decoding record %d: %w", recordID, err)
	}
	if row == nil {
		row = Record{}
	}
	row[FieldID] = recordID
	return row, nil
}

type pgArgs struct {
	values []any
}

func (a *pgArgs) add(v any) string {
	a.values = append(a.values, v)
	return "$" + strconv.Itoa(len(a.values))
}

func buildSelect(table string, q Query) (string, []any) {
	args := &pgArgs{}
	var sb strings.Builder

	sb.WriteString("SELECT id, data FROM records WHERE table_name = ")
	sb.WriteString(args.add(table))

	for _, cond := range q.Where {
		sb.WriteString(" AND ")
		sb.WriteString(pgCondition(cond, args))
	}
	for _, g := range q.WhereGroups {
		if len(g.SubGroups) == 0 {
			continue
		}
		parts := make([]string, 0, len(g.SubGroups))
		for _, sg := range g.SubGroups {
			if len(sg.Conditions) == 0 {
				parts = append(parts, "TRUE")
				continue
			}
			conds := make([]string, 0, len(sg.Conditions))
			for _, cond := range sg.Conditions {
				conds = append(conds, pgCondition(cond, args))
			}
			parts = append(parts, "("+strings.Join(conds, " "+string(sg.Operator)+" ")+")")
		}
		sb.WriteString(" AND (")
		sb.WriteString(strings.Join(parts, " "+string(g.Operator)+" "))
		sb.WriteString(")")
	}

	sb.WriteString(" ORDER BY ")
	for _, o := range q.OrderBy {
		key := args.add(o.Field)
		if o.SortType == SortDesc {
			sb.WriteString("data->" + key + " DESC NULLS LAST, ")
		} else {
			sb.WriteString("data->" + key + " ASC NULLS FIRST, ")
		}
	}
	sb.WriteString("created_at ASC, id ASC")

	if q.Paging.Limit > 0 {
		sb.WriteString(" LIMIT ")
		sb.WriteString(args.add(q.Paging.Limit))
	}
	if q.Paging.Offset > 0 {
		sb.WriteString(" OFFSET ")
		sb.WriteString(args.add(q.Paging.Offset))
	}

	return sb.String(), args.values
}

func pgCondition(c Condition, args *pgArgs) string {
	field := "COALESCE(data->>" + args.add(c.Field) + ", '')"
	switch c.Operator {
	case OpContains:
		return field + " ILIKE " + args.add("%"+escapeLike(c.Values[0])+"%")
	case OpExactMatch:
		if !c.Include {
			return "NOT (" + field + " = ANY(" + args.add(values(c)) + "))"
		}
		return field + " = ANY(" + args.add(values(c)) + ")"
	default:
		return field + " = ANY(" + args.add(values(c)) + ")"
	}
}

func values(c Condition) []string {
	if c.Values == nil {
		return []string{}
	}
	return c.Values
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
