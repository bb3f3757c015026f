package graph

import (
	"context"
	"errors"
	"fmt"

	"github.com/yungbote/docgraph-backend/internal/domain"
	"github.com/yungbote/docgraph-backend/internal/platform/kuzudb"
	"github.com/yungbote/docgraph-backend/internal/platform/logger"
)

// ErrVectorDimension marks a query vector whose length is not EmbeddingDim.
// It is raised before any engine call.
var ErrVectorDimension = errors.New("graph: bad query vector dimension")

const (
	defaultSemanticK = 5
	defaultSearchEfs = 200
)

// OneHot builds the deterministic placeholder embedding: 1.0 at i mod
// EmbeddingDim, 0.0 elsewhere.
func OneHot(i int) []float32 {
	v := make([]float32, EmbeddingDim)
	idx := i % EmbeddingDim
	if idx < 0 {
		idx += EmbeddingDim
	}
	v[idx] = 1.0
	return v
}

// SemanticSearch runs an approximate nearest-neighbor query over chunk
// embeddings and joins matches back to their section and document. efs is
// the index's candidate-breadth knob, passed through unmodified. Results
// come back closest first, at most k of them.
func SemanticSearch(ctx context.Context, client *kuzudb.Client, vector []float32, k, efs int, docTitle string) ([]domain.SemanticHit, error) {
	_, span := tracer.Start(ctx, "graph.SemanticSearch")
	defer span.End()

	if len(vector) != EmbeddingDim {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrVectorDimension, len(vector), EmbeddingDim)
	}
	if k <= 0 {
		k = defaultSemanticK
	}
	if efs <= 0 {
		efs = defaultSearchEfs
	}

	params := map[string]any{
		"vec": vector,
		"k":   int64(k),
		"efs": int64(efs),
	}
	where := ""
	if docTitle != "" {
		where = "WHERE d.title = $t"
		params["t"] = docTitle
	}

	query := fmt.Sprintf(`
	CALL QUERY_VECTOR_INDEX('%s', '%s', CAST($vec AS FLOAT[%d]), $k, efs := $efs)
	WITH node AS c, distance
	MATCH (d:Document)-[:ContainsDocSection]->(s:Section)-[:ContainsSectionChunk]->(c)
	%s
	RETURN
		d.id     AS document_id,
		d.title  AS document,
		s.id     AS section_id,
		s.title  AS section,
		c.id     AS chunk_id,
		c.ord    AS chunk_ord,
		c.text   AS text,
		distance AS distance
	ORDER BY distance
	LIMIT $k`, vectorIndexTable, vectorIndexName, EmbeddingDim, where)

	conn, err := client.Conn()
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	res, err := execute(conn, query, params)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	columns := append(append([]string{}, chunkHitColumns...), "distance")
	rows, err := collectRows(res, columns)
	if err != nil {
		return nil, err
	}

	out := make([]domain.SemanticHit, 0, len(rows))
	for _, m := range rows {
		dist, _ := toFloat64(m["distance"])
		out = append(out, domain.SemanticHit{
			ChunkHit: decodeChunkHit(m),
			Distance: dist,
		})
	}
	return out, nil
}

// AssignPlaceholderEmbeddings overwrites every chunk's embedding with the
// one-hot vector for its ord. The engine requires the vector index to be
// rebuilt after bulk vector mutation, so the index is dropped first and
// recreated once all chunks are updated. Returns the number of chunks
// touched.
func AssignPlaceholderEmbeddings(ctx context.Context, client *kuzudb.Client, log *logger.Logger) (int, error) {
	_, span := tracer.Start(ctx, "graph.AssignPlaceholderEmbeddings")
	defer span.End()

	conn, err := client.Conn()
	if err != nil {
		return 0, err
	}
	defer conn.Close()

	if err := dropVectorIndexIfExists(conn); err != nil {
		return 0, err
	}

	res, err := execute(conn, `
	MATCH (d:Document)-[:ContainsDocSection]->(s:Section)-[:ContainsSectionChunk]->(c:Chunk)
	RETURN c.id AS id, c.ord AS ord
	ORDER BY id`, nil)
	if err != nil {
		return 0, err
	}
	rows, err := collectRows(res, []string{"id", "ord"})
	res.Close()
	if err != nil {
		return 0, err
	}

	set := fmt.Sprintf(`
	MATCH (c:Chunk) WHERE c.id = $id
	SET c.embedding = CAST($vec AS FLOAT[%d])`, EmbeddingDim)

	updated := 0
	for _, m := range rows {
		id, ok := toInt64(m["id"])
		if !ok {
			return updated, fmt.Errorf("graph: chunk id of unexpected type %T", m["id"])
		}
		ord, _ := toInt64(m["ord"])
		setRes, err := execute(conn, set, map[string]any{"id": id, "vec": OneHot(int(ord))})
		if err != nil {
			return updated, fmt.Errorf("graph: set embedding for chunk %d: %w", id, err)
		}
		setRes.Close()
		updated++
	}

	if err := createVectorIndex(conn); err != nil {
		return updated, err
	}
	if log != nil {
		log.Info("placeholder embeddings assigned", "chunks", updated)
	}
	return updated, nil
}
