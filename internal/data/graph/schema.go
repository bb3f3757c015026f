package graph

import (
	"context"
	"fmt"
	"strings"

	kuzu "github.com/kuzudb/go-kuzu"
	"go.opentelemetry.io/otel"

	"github.com/yungbote/docgraph-backend/internal/domain"
	"github.com/yungbote/docgraph-backend/internal/platform/kuzudb"
	"github.com/yungbote/docgraph-backend/internal/platform/logger"
)

// EmbeddingDim is the fixed width of Chunk.embedding. The schema DDL and
// the semantic-search validation both derive from it.
const EmbeddingDim = 384

const (
	vectorIndexTable = "Chunk"
	vectorIndexName  = "chunk_embedding_idx"
)

var tracer = otel.Tracer("docgraph/graph")

var nodeAndRelDDL = []string{
	`CREATE NODE TABLE IF NOT EXISTS Document(
		id SERIAL PRIMARY KEY,
		title STRING
	);`,
	`CREATE NODE TABLE IF NOT EXISTS Section(
		id SERIAL PRIMARY KEY,
		title STRING,
		ord INT32
	);`,
	fmt.Sprintf(`CREATE NODE TABLE IF NOT EXISTS Chunk(
		id SERIAL PRIMARY KEY,
		text STRING,
		ord INT32,
		embedding FLOAT[%d]
	);`, EmbeddingDim),
	"CREATE REL TABLE IF NOT EXISTS ContainsDocSection(FROM Document TO Section, ONE_MANY);",
	"CREATE REL TABLE IF NOT EXISTS ContainsSectionChunk(FROM Section TO Chunk, ONE_MANY);",
	// Reserved for chunk sequencing; nothing populates it yet.
	"CREATE REL TABLE IF NOT EXISTS NextChunk(FROM Chunk TO Chunk, MANY_ONE);",
}

// EnsureSchema brings the node tables, relationship tables and the chunk
// embedding index into existence. Idempotent; safe on every startup. Any
// DDL failure that is not an "already exists/installed/loaded" condition
// propagates.
func EnsureSchema(ctx context.Context, client *kuzudb.Client, log *logger.Logger) error {
	ctx, span := tracer.Start(ctx, "graph.EnsureSchema")
	defer span.End()

	conn, err := client.Conn()
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := ensureVectorLoaded(conn); err != nil {
		return err
	}

	for _, stmt := range nodeAndRelDDL {
		if err := runDDL(conn, stmt); err != nil {
			return err
		}
	}

	return ensureVectorIndex(ctx, conn, log)
}

// EnsureVectorSchema additively evolves databases created before vector
// support: it adds the embedding column when missing and creates the index
// only if the index listing shows none. It never relies on error-message
// sniffing for the index path.
func EnsureVectorSchema(ctx context.Context, client *kuzudb.Client, log *logger.Logger) error {
	ctx, span := tracer.Start(ctx, "graph.EnsureVectorSchema")
	defer span.End()

	conn, err := client.Conn()
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := ensureVectorLoaded(conn); err != nil {
		return err
	}

	alter := fmt.Sprintf("ALTER TABLE Chunk ADD embedding FLOAT[%d];", EmbeddingDim)
	if err := runDDL(conn, alter); err != nil {
		return err
	}

	return ensureVectorIndex(ctx, conn, log)
}

// ListIndexes reports the engine's view of existing indexes.
func ListIndexes(ctx context.Context, client *kuzudb.Client) ([]domain.IndexInfo, error) {
	_, span := tracer.Start(ctx, "graph.ListIndexes")
	defer span.End()

	conn, err := client.Conn()
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	return listIndexes(conn)
}

func listIndexes(conn *kuzu.Connection) ([]domain.IndexInfo, error) {
	res, err := execute(conn, "CALL SHOW_INDEXES() RETURN *;", nil)
	if err != nil {
		return nil, fmt.Errorf("graph: list indexes: %w", err)
	}
	defer res.Close()

	columns := []string{
		"table name", "index name", "index type",
		"property names", "extension loaded", "index definition",
	}
	rows, err := collectRows(res, columns)
	if err != nil {
		return nil, err
	}

	out := make([]domain.IndexInfo, 0, len(rows))
	for _, m := range rows {
		out = append(out, domain.IndexInfo{
			TableName:       toString(m["table name"]),
			IndexName:       toString(m["index name"]),
			IndexType:       toString(m["index type"]),
			PropertyNames:   toStringSlice(m["property names"]),
			ExtensionLoaded: toBool(m["extension loaded"]),
			IndexDefinition: toString(m["index definition"]),
		})
	}
	return out, nil
}

func hasVectorIndex(conn *kuzu.Connection) (bool, error) {
	indexes, err := listIndexes(conn)
	if err != nil {
		return false, err
	}
	for _, idx := range indexes {
		if strings.EqualFold(idx.TableName, vectorIndexTable) &&
			strings.EqualFold(idx.IndexName, vectorIndexName) {
			return true, nil
		}
	}
	return false, nil
}

// ensureVectorIndex uses the list-then-create pattern so the common path
// never depends on parsing "already exists" out of an engine error.
func ensureVectorIndex(_ context.Context, conn *kuzu.Connection, log *logger.Logger) error {
	exists, err := hasVectorIndex(conn)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	if err := createVectorIndex(conn); err != nil {
		return err
	}
	if log != nil {
		log.Info("vector index created", "table", vectorIndexTable, "index", vectorIndexName)
	}
	return nil
}

func createVectorIndex(conn *kuzu.Connection) error {
	stmt := fmt.Sprintf(
		"CALL CREATE_VECTOR_INDEX('%s', '%s', 'embedding', metric := 'cosine');",
		vectorIndexTable, vectorIndexName,
	)
	res, err := execute(conn, stmt, nil)
	if err != nil {
		return fmt.Errorf("graph: create vector index: %w", err)
	}
	res.Close()
	return nil
}

func dropVectorIndexIfExists(conn *kuzu.Connection) error {
	exists, err := hasVectorIndex(conn)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}
	stmt := fmt.Sprintf("CALL DROP_VECTOR_INDEX('%s', '%s');", vectorIndexTable, vectorIndexName)
	res, err := execute(conn, stmt, nil)
	if err != nil {
		return fmt.Errorf("graph: drop vector index: %w", err)
	}
	res.Close()
	return nil
}

func ensureVectorLoaded(conn *kuzu.Connection) error {
	for _, stmt := range []string{"INSTALL VECTOR;", "LOAD VECTOR;"} {
		if err := runDDL(conn, stmt); err != nil {
			return err
		}
	}
	return nil
}

// runDDL executes a DDL statement, swallowing only pre-existing/duplicate
// conditions. Everything else is fatal to the caller.
func runDDL(conn *kuzu.Connection, stmt string) error {
	res, err := execute(conn, stmt, nil)
	if err != nil {
		if isAlreadyErr(err) {
			return nil
		}
		return fmt.Errorf("graph: ddl failed: %w", err)
	}
	res.Close()
	return nil
}

func isAlreadyErr(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "already exists") ||
		strings.Contains(msg, "already installed") ||
		strings.Contains(msg, "already loaded")
}
