package graph

import (
	"context"
	"fmt"

	kuzu "github.com/kuzudb/go-kuzu"

	"github.com/yungbote/docgraph-backend/internal/platform/kuzudb"
)

// DocumentExists reports whether at least one Document carries the exact
// title. Titles are unique only by convention: callers check before they
// create, there is no schema-level constraint.
func DocumentExists(ctx context.Context, client *kuzudb.Client, title string) (bool, error) {
	_, span := tracer.Start(ctx, "graph.DocumentExists")
	defer span.End()

	conn, err := client.Conn()
	if err != nil {
		return false, err
	}
	defer conn.Close()

	cnt, err := singleInt(conn,
		"MATCH (d:Document {title: $t}) RETURN COUNT(d) AS cnt",
		map[string]any{"t": title})
	if err != nil {
		return false, err
	}
	return cnt > 0, nil
}

// CreateDocument creates a Document node and returns its engine-assigned id.
func CreateDocument(ctx context.Context, client *kuzudb.Client, title string) (int64, error) {
	_, span := tracer.Start(ctx, "graph.CreateDocument")
	defer span.End()

	conn, err := client.Conn()
	if err != nil {
		return 0, err
	}
	defer conn.Close()

	return createReturningID(conn,
		"CREATE (d:Document {title: $t}) RETURN d.id AS id",
		map[string]any{"t": title},
		fmt.Sprintf("create document %q", title))
}

// CreateSection creates a Section under the given document and links it
// with a ContainsDocSection edge. A documentID that matches nothing makes
// the MATCH-then-CREATE produce zero rows, which surfaces as an error.
func CreateSection(ctx context.Context, client *kuzudb.Client, documentID int64, title string, ord int) (int64, error) {
	_, span := tracer.Start(ctx, "graph.CreateSection")
	defer span.End()

	conn, err := client.Conn()
	if err != nil {
		return 0, err
	}
	defer conn.Close()

	query := `
	MATCH (d:Document {id: $doc})
	CREATE (s:Section {title: $title, ord: $ord}),
	       (d)-[:ContainsDocSection]->(s)
	RETURN s.id AS id`
	return createReturningID(conn, query,
		map[string]any{"doc": documentID, "title": title, "ord": int32(ord)},
		fmt.Sprintf("create section %q under document %d", title, documentID))
}

// CreateChunk creates a Chunk under the given section, one level below
// CreateSection and symmetric to it.
func CreateChunk(ctx context.Context, client *kuzudb.Client, sectionID int64, text string, ord int) (int64, error) {
	_, span := tracer.Start(ctx, "graph.CreateChunk")
	defer span.End()

	conn, err := client.Conn()
	if err != nil {
		return 0, err
	}
	defer conn.Close()

	query := `
	MATCH (s:Section {id: $sid})
	CREATE (c:Chunk {text: $text, ord: $ord}),
	       (s)-[:ContainsSectionChunk]->(c)
	RETURN c.id AS id`
	return createReturningID(conn, query,
		map[string]any{"sid": sectionID, "text": text, "ord": int32(ord)},
		fmt.Sprintf("create chunk under section %d", sectionID))
}

// createReturningID runs a create-and-return-identity statement. An empty
// result means the statement's preconditions did not hold (e.g. missing
// parent node), which is an invariant violation rather than a recoverable
// condition.
func createReturningID(conn *kuzu.Connection, query string, params map[string]any, op string) (int64, error) {
	res, err := execute(conn, query, params)
	if err != nil {
		return 0, fmt.Errorf("graph: %s: %w", op, err)
	}
	defer res.Close()

	v, err := firstScalar(res)
	if err != nil {
		return 0, fmt.Errorf("graph: %s: %w", op, err)
	}
	if v == nil {
		return 0, fmt.Errorf("graph: %s returned no id", op)
	}
	id, ok := toInt64(v)
	if !ok {
		return 0, fmt.Errorf("graph: %s returned non-integer id %T", op, v)
	}
	return id, nil
}
