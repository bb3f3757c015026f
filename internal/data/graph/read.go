package graph

import (
	"context"

	"github.com/yungbote/docgraph-backend/internal/domain"
	"github.com/yungbote/docgraph-backend/internal/platform/kuzudb"
)

const defaultListLimit = 100

// ListChunks returns chunk rows with their section and document context,
// optionally filtered to one document title. Safe on an empty database.
func ListChunks(ctx context.Context, client *kuzudb.Client, limit int, docTitle string) ([]domain.ChunkHit, error) {
	_, span := tracer.Start(ctx, "graph.ListChunks")
	defer span.End()

	if limit <= 0 {
		limit = defaultListLimit
	}

	params := map[string]any{"lim": int64(limit)}
	where := ""
	if docTitle != "" {
		where = "WHERE d.title = $t"
		params["t"] = docTitle
	}

	query := `
	MATCH (d:Document)-[:ContainsDocSection]->(s:Section)-[:ContainsSectionChunk]->(c:Chunk)
	` + where + `
	RETURN
		d.id    AS document_id,
		d.title AS document,
		s.id    AS section_id,
		s.title AS section,
		c.id    AS chunk_id,
		c.ord   AS chunk_ord,
		c.text  AS text
	ORDER BY d.id, s.ord, c.ord
	LIMIT $lim`

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

	rows, err := collectRows(res, chunkHitColumns)
	if err != nil {
		return nil, err
	}
	out := make([]domain.ChunkHit, 0, len(rows))
	for _, m := range rows {
		out = append(out, decodeChunkHit(m))
	}
	return out, nil
}
