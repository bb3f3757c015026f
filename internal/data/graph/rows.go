package graph

import (
	"fmt"

	kuzu "github.com/kuzudb/go-kuzu"

	"github.com/yungbote/docgraph-backend/internal/domain"
)

// execute runs a statement on conn, preparing it when named parameters are
// present. Callers own the returned result and must Close it.
func execute(conn *kuzu.Connection, query string, params map[string]any) (*kuzu.QueryResult, error) {
	if len(params) == 0 {
		return conn.Query(query)
	}
	stmt, err := conn.Prepare(query)
	if err != nil {
		return nil, fmt.Errorf("graph: prepare: %w", err)
	}
	defer stmt.Close()
	res, err := conn.Execute(stmt, params)
	if err != nil {
		return nil, fmt.Errorf("graph: execute: %w", err)
	}
	return res, nil
}

// firstScalar returns the first column of the first row, or nil when the
// result is empty.
func firstScalar(res *kuzu.QueryResult) (any, error) {
	if !res.HasNext() {
		return nil, nil
	}
	tuple, err := res.Next()
	if err != nil {
		return nil, err
	}
	defer tuple.Close()
	return tuple.GetValue(0)
}

// singleInt executes a query expected to project one integer value.
func singleInt(conn *kuzu.Connection, query string, params map[string]any) (int64, error) {
	res, err := execute(conn, query, params)
	if err != nil {
		return 0, err
	}
	defer res.Close()
	v, err := firstScalar(res)
	if err != nil {
		return 0, err
	}
	if v == nil {
		return 0, nil
	}
	n, ok := toInt64(v)
	if !ok {
		return 0, fmt.Errorf("graph: expected integer result, got %T", v)
	}
	return n, nil
}

// rowMap normalizes one cursor row into a column-name keyed map, falling
// back to positional access with the given projection order. This is the
// single row-shape boundary; nothing outside this file touches tuples.
func rowMap(tuple *kuzu.FlatTuple, columns []string) (map[string]any, error) {
	if m, err := tuple.GetAsMap(); err == nil && len(m) > 0 {
		return m, nil
	}
	out := make(map[string]any, len(columns))
	for i, col := range columns {
		v, err := tuple.GetValue(uint64(i))
		if err != nil {
			return nil, fmt.Errorf("graph: read column %d (%s): %w", i, col, err)
		}
		out[col] = v
	}
	return out, nil
}

// collectRows drains a result through rowMap.
func collectRows(res *kuzu.QueryResult, columns []string) ([]map[string]any, error) {
	var out []map[string]any
	for res.HasNext() {
		tuple, err := res.Next()
		if err != nil {
			return nil, err
		}
		m, err := rowMap(tuple, columns)
		tuple.Close()
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

var chunkHitColumns = []string{
	"document_id", "document", "section_id", "section",
	"chunk_id", "chunk_ord", "text",
}

func decodeChunkHit(m map[string]any) domain.ChunkHit {
	docID, _ := toInt64(m["document_id"])
	secID, _ := toInt64(m["section_id"])
	chunkID, _ := toInt64(m["chunk_id"])
	ord, _ := toInt64(m["chunk_ord"])
	return domain.ChunkHit{
		DocumentID: docID,
		Document:   toString(m["document"]),
		SectionID:  secID,
		Section:    toString(m["section"]),
		ChunkID:    chunkID,
		ChunkOrd:   int32(ord),
		Text:       toString(m["text"]),
	}
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int32:
		return int64(n), true
	case int:
		return int64(n), true
	case uint64:
		return int64(n), true
	case uint32:
		return int64(n), true
	case float64:
		return int64(n), true
	case float32:
		return int64(n), true
	}
	return 0, false
}

func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	}
	return 0, false
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

func toBool(v any) bool {
	b, _ := v.(bool)
	return b
}

func toStringSlice(v any) []string {
	switch vals := v.(type) {
	case []string:
		return vals
	case []any:
		out := make([]string, 0, len(vals))
		for _, item := range vals {
			out = append(out, toString(item))
		}
		return out
	case nil:
		return nil
	}
	return []string{toString(v)}
}
