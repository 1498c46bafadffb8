// Package records is the record-storage contract the entity stores talk to: named tables
// of loosely typed rows, a small query vocabulary, and {success, data, message} envelopes.
//
// A returned error means the call itself failed (connection, invalid query, cancelled
// context). A response with Success=false means the backend processed the call and refused.
package records

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

// FieldID is the primary key column every table carries.
const FieldID = "Id"

// FieldName is the backend's display column.
const FieldName = "Name"

var (
	ErrClientUnavailable = errors.New("record client not initialized")
	ErrInvalidQuery      = errors.New("invalid record query")
)

type Client interface {
	FetchRecords(ctx context.Context, table string, q Query) (*FetchResponse, error)
	GetRecordByID(ctx context.Context, table string, id int64, fields []string) (*GetResponse, error)
	CreateRecord(ctx context.Context, table string, records []Record) (*MutationResponse, error)
	UpdateRecord(ctx context.Context, table string, records []Record) (*MutationResponse, error)
	DeleteRecord(ctx context.Context, table string, ids []int64) (*DeleteResponse, error)
}

type FetchResponse struct {
	Success bool
	Data    []Record
	Message string
}

// GetResponse carries a nil Data when the row does not exist.
type GetResponse struct {
	Success bool
	Data    Record
	Message string
}

type RecordResult struct {
	Success bool
	Data    Record
	Message string
}

type MutationResponse struct {
	Success bool
	Results []RecordResult
	Message string
}

type DeleteResponse struct {
	Success bool
	Message string
}

// Record is one row keyed by backend field name.
type Record map[string]any

func (r Record) ID() int64 {
	return toInt64(r[FieldID])
}

// Has reports whether field is present with a non-null value.
func (r Record) Has(field string) bool {
	v, ok := r[field]
	return ok && v != nil
}

// String returns the field in string form; absent or null fields yield "".
func (r Record) String(field string) string {
	return toString(r[field])
}

func (r Record) Int(field string) int {
	return int(toInt64(r[field]))
}

func (r Record) Bool(field string) bool {
	switch v := r[field].(type) {
	case bool:
		return v
	case string:
		b, _ := strconv.ParseBool(v)
		return b
	default:
		return false
	}
}

// Clone returns a shallow copy.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Project keeps only the requested fields plus Id. An empty field list keeps everything.
func (r Record) Project(fields []string) Record {
	if len(fields) == 0 {
		return r.Clone()
	}
	out := make(Record, len(fields)+1)
	if v, ok := r[FieldID]; ok {
		out[FieldID] = v
	}
	for _, f := range fields {
		if v, ok := r[f]; ok {
			out[f] = v
		}
	}
	return out
}

func toString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return toString(float64(t))
	case int:
		return strconv.Itoa(t)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

func toInt64(v any) int64 {
	switch t := v.(type) {
	case int:
		return int64(t)
	case int32:
		return int64(t)
	case int64:
		return t
	case float64:
		return int64(t)
	case float32:
		return int64(t)
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return int64(f)
		}
		return 0
	case string:
		i, _ := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		return i
	default:
		return 0
	}
}

// toFloat reports whether v is numeric and returns its value.
func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
