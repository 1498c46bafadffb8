package records

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/arangodb/go-driver/v2/arangodb"
	"github.com/arangodb/go-driver/v2/connection"

	"upvote.app/relay/common/id"
)

type ArangoConfig struct {
	URL      string
	Username string
	Password string
	Database string
}

func (c ArangoConfig) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("arangodb URL is required")
	}
	if c.Username == "" {
		return fmt.Errorf("arangodb username is required")
	}
	if c.Database == "" {
		return fmt.Errorf("arangodb database name is required")
	}
	return nil
}

// ArangoClient stores each table as a document collection. The document _key is the record id.
type ArangoClient struct {
	arangoClient arangodb.Client
	db           arangodb.Database
	cfg          ArangoConfig
	ids          id.Source
}

func NewArangoClient(cfg ArangoConfig, ids id.Source) (*ArangoClient, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("arangodb config: %w", err)
	}

	endpoint := connection.NewRoundRobinEndpoints([]string{cfg.URL})
	conn := connection.NewHttp2Connection(connection.DefaultHTTP2ConfigurationWrapper(endpoint, true))

	auth := connection.NewBasicAuth(cfg.Username, cfg.Password)
	if err := conn.SetAuthentication(auth); err != nil {
		return nil, fmt.Errorf("arangodb auth: %w", err)
	}

	return &ArangoClient{
		arangoClient: arangodb.NewClient(conn),
		cfg:          cfg,
		ids:          ids,
	}, nil
}

func (c *ArangoClient) EnsureDatabase(ctx context.Context) error {
	start := time.Now()

	exists, err := c.arangoClient.DatabaseExists(ctx, c.cfg.Database)
	if err != nil {
		return fmt.Errorf("check database exists: %w", err)
	}

	if !exists {
		if _, err := c.arangoClient.CreateDatabase(ctx, c.cfg.Database, nil); err != nil {
			return fmt.Errorf("create database: %w", err)
		}
		slog.InfoContext(ctx, "arangodb database created",
			"database", c.cfg.Database,
			"duration_ms", time.Since(start).Milliseconds())
	}

	db, err := c.arangoClient.GetDatabase(ctx, c.cfg.Database, nil)
	if err != nil {
		return fmt.Errorf("get database: %w", err)
	}
	c.db = db

	return nil
}

// EnsureCollections creates a document collection per table.
func (c *ArangoClient) EnsureCollections(ctx context.Context, tables ...string) error {
	if c.db == nil {
		return fmt.Errorf("database not initialized, call EnsureDatabase first")
	}

	for _, name := range tables {
		exists, err := c.db.CollectionExists(ctx, name)
		if err != nil {
			return fmt.Errorf("check collection %s exists: %w", name, err)
		}
		if exists {
			continue
		}

		colType := arangodb.CollectionTypeDocument
		if _, err := c.db.CreateCollectionV2(ctx, name, &arangodb.CreateCollectionPropertiesV2{Type: &colType}); err != nil {
			return fmt.Errorf("create collection %s: %w", name, err)
		}
		slog.InfoContext(ctx, "arangodb collection created", "collection", name)
	}

	return nil
}

func (c *ArangoClient) FetchRecords(ctx context.Context, table string, q Query) (*FetchResponse, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	query, bindVars := buildAQL(table, q)
	docs, err := c.query(ctx, query, bindVars)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", table, err)
	}

	data := make([]Record, 0, len(docs))
	for _, doc := range docs {
		data = append(data, doc.Project(q.Fields))
	}
	return &FetchResponse{Success: true, Data: data}, nil
}

func (c *ArangoClient) GetRecordByID(ctx context.Context, table string, recordID int64, fields []string) (*GetResponse, error) {
	docs, err := c.query(ctx,
		`FOR d IN @@col FILTER d._key == @key RETURN d`,
		map[string]any{"@col": table, "key": strconv.FormatInt(recordID, 10)},
	)
	if err != nil {
		return nil, fmt.Errorf("getting %s %d: %w", table, recordID, err)
	}
	if len(docs) == 0 {
		return &GetResponse{Success: true}, nil
	}
	return &GetResponse{Success: true, Data: docs[0].Project(fields)}, nil
}

func (c *ArangoClient) CreateRecord(ctx context.Context, table string, rows []Record) (*MutationResponse, error) {
	results := make([]RecordResult, 0, len(rows))
	for _, row := range rows {
		recordID := c.ids.NextID()
		doc := stripSystem(row)
		doc[FieldID] = recordID
		doc["_key"] = strconv.FormatInt(recordID, 10)

		docs, err := c.query(ctx,
			`INSERT @doc INTO @@col RETURN NEW`,
			map[string]any{"@col": table, "doc": doc},
		)
		if err != nil {
			return nil, fmt.Errorf("inserting into %s: %w", table, err)
		}
		if len(docs) == 0 {
			results = append(results, RecordResult{Message: fmt.Sprintf("insert into %s returned no document", table)})
			continue
		}
		results = append(results, RecordResult{Success: true, Data: docs[0]})
	}
	return &MutationResponse{Success: true, Results: results}, nil
}

func (c *ArangoClient) UpdateRecord(ctx context.Context, table string, rows []Record) (*MutationResponse, error) {
	results := make([]RecordResult, 0, len(rows))
	for _, row := range rows {
		recordID := row.ID()
		patch := stripSystem(row)
		delete(patch, FieldID)

		docs, err := c.query(ctx,
			`FOR d IN @@col FILTER d._key == @key UPDATE d WITH @patch IN @@col RETURN NEW`,
			map[string]any{"@col": table, "key": strconv.FormatInt(recordID, 10), "patch": patch},
		)
		if err != nil {
			return nil, fmt.Errorf("updating %s %d: %w", table, recordID, err)
		}
		if len(docs) == 0 {
			results = append(results, RecordResult{Message: notFoundMessage(table, recordID)})
			continue
		}
		results = append(results, RecordResult{Success: true, Data: docs[0]})
	}
	return &MutationResponse{Success: true, Results: results}, nil
}

func (c *ArangoClient) DeleteRecord(ctx context.Context, table string, ids []int64) (*DeleteResponse, error) {
	if c.db == nil {
		return nil, fmt.Errorf("database not initialized, call EnsureDatabase first")
	}

	keys := make([]string, len(ids))
	for i, recordID := range ids {
		keys[i] = strconv.FormatInt(recordID, 10)
	}

	cursor, err := c.db.Query(ctx,
		`FOR d IN @@col FILTER d._key IN @keys REMOVE d IN @@col RETURN OLD._key`,
		&arangodb.QueryOptions{BindVars: map[string]any{"@col": table, "keys": keys}},
	)
	if err != nil {
		return nil, fmt.Errorf("deleting from %s: %w", table, err)
	}
	defer cursor.Close()

	deleted := make(map[string]bool, len(keys))
	for cursor.HasMore() {
		var key string
		if _, err := cursor.ReadDocument(ctx, &key); err != nil {
			return nil, fmt.Errorf("reading deleted key: %w", err)
		}
		deleted[key] = true
	}

	var missing []int64
	for i, key := range keys {
		if !deleted[key] {
			missing = append(missing, ids[i])
		}
	}
	if len(missing) > 0 {
		return &DeleteResponse{Message: missingMessage(table, missing)}, nil
	}
	return &DeleteResponse{Success: true}, nil
}

func (c *ArangoClient) query(ctx context.Context, query string, bindVars map[string]any) ([]Record, error) {
	if c.db == nil {
		return nil, fmt.Errorf("database not initialized, call EnsureDatabase first")
	}

	cursor, err := c.db.Query(ctx, query, &arangodb.QueryOptions{BindVars: bindVars})
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	var docs []Record
	for cursor.HasMore() {
		var doc map[string]any
		if _, err := cursor.ReadDocument(ctx, &doc); err != nil {
			return nil, fmt.Errorf("read document: %w", err)
		}
		docs = append(docs, fromDocument(doc))
	}
	return docs, nil
}

// fromDocument drops system attributes and restores the id from _key, which holds it without float rounding.
func fromDocument(doc map[string]any) Record {
	row := Record{}
	for k, v := range doc {
		if strings.HasPrefix(k, "_") {
			continue
		}
		row[k] = v
	}
	if key, ok := doc["_key"].(string); ok {
		if recordID, err := strconv.ParseInt(key, 10, 64); err == nil {
			row[FieldID] = recordID
		}
	}
	return row
}

func stripSystem(r Record) Record {
	out := make(Record, len(r))
	for k, v := range r {
		if strings.HasPrefix(k, "_") {
			continue
		}
		out[k] = v
	}
	return out
}

type aqlVars struct {
	vars map[string]any
	n    int
}

func (a *aqlVars) add(prefix string, v any) string {
	name := prefix + strconv.Itoa(a.n)
	a.n++
	a.vars[name] = v
	return "@" + name
}

func buildAQL(table string, q Query) (string, map[string]any) {
	args := &aqlVars{vars: map[string]any{"@col": table}}
	var sb strings.Builder

	sb.WriteString("FOR d IN @@col")

	for _, cond := range q.Where {
		sb.WriteString(" FILTER ")
		sb.WriteString(aqlCondition(cond, args))
	}
	for _, g := range q.WhereGroups {
		if len(g.SubGroups) == 0 {
			continue
		}
		parts := make([]string, 0, len(g.SubGroups))
		for _, sg := range g.SubGroups {
			if len(sg.Conditions) == 0 {
				parts = append(parts, "true")
				continue
			}
			conds := make([]string, 0, len(sg.Conditions))
			for _, cond := range sg.Conditions {
				conds = append(conds, aqlCondition(cond, args))
			}
			parts = append(parts, "("+strings.Join(conds, " "+string(sg.Operator)+" ")+")")
		}
		sb.WriteString(" FILTER (")
		sb.WriteString(strings.Join(parts, " "+string(g.Operator)+" "))
		sb.WriteString(")")
	}

	if len(q.OrderBy) > 0 {
		sorts := make([]string, 0, len(q.OrderBy))
		for _, o := range q.OrderBy {
			sorts = append(sorts, "d."+args.add("s", o.Field)+" "+string(o.SortType))
		}
		sb.WriteString(" SORT ")
		sb.WriteString(strings.Join(sorts, ", "))
	}

	if q.Paging.Limit > 0 || q.Paging.Offset > 0 {
		limit := q.Paging.Limit
		if limit == 0 {
			limit = math.MaxInt32
		}
		sb.WriteString(" LIMIT ")
		sb.WriteString(args.add("p", q.Paging.Offset))
		sb.WriteString(", ")
		sb.WriteString(args.add("p", limit))
	}

	sb.WriteString(" RETURN d")
	return sb.String(), args.vars
}

func aqlCondition(c Condition, args *aqlVars) string {
	field := "TO_STRING(d." + args.add("f", c.Field) + ")"
	switch c.Operator {
	case OpContains:
		return "CONTAINS(LOWER(" + field + "), LOWER(" + args.add("v", c.Values[0]) + "))"
	case OpExactMatch:
		if !c.Include {
			return field + " NOT IN " + args.add("v", values(c))
		}
		return field + " IN " + args.add("v", values(c))
	default:
		return field + " IN " + args.add("v", values(c))
	}
}
