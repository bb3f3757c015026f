package graph

import (
	"context"
	"regexp"

	"github.com/yungbote/docgraph-backend/internal/domain"
	"github.com/yungbote/docgraph-backend/internal/platform/kuzudb"
)

const defaultSearchLimit = 20

// substringPattern builds a pure substring regex: metacharacters in q are
// matched literally, never interpreted.
func substringPattern(q string, caseInsensitive bool) string {
	core := regexp.QuoteMeta(q)
	if caseInsensitive {
		return "(?i).*" + core + ".*"
	}
	return ".*" + core + ".*"
}

// SearchChunks runs a substring match over Chunk.text, optionally scoped
// to one document title. A non-positive limit falls back to the default.
// Results are ordered by document id, section order, chunk order.
func SearchChunks(ctx context.Context, client *kuzudb.Client, q, docTitle string, limit int, caseInsensitive bool) ([]domain.ChunkHit, error) {
	_, span := tracer.Start(ctx, "graph.SearchChunks")
	defer span.End()

	if limit <= 0 {
		limit = defaultSearchLimit
	}

	params := map[string]any{
		"pat": substringPattern(q, caseInsensitive),
		"lim": int64(limit),
	}
	where := "WHERE c.text =~ $pat"
	if docTitle != "" {
		where += " AND d.title = $t"
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
