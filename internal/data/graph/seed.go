package graph

import (
	"context"
	"fmt"

	kuzu "github.com/kuzudb/go-kuzu"

	"github.com/yungbote/docgraph-backend/internal/domain"
	"github.com/yungbote/docgraph-backend/internal/platform/kuzudb"
	"github.com/yungbote/docgraph-backend/internal/platform/logger"
)

// SampleDocTitle names the fixed seed document. The exact seed shape
// (1 document, 2 sections, 3 chunks) doubles as the smoke-test fixture.
const SampleDocTitle = "Sample Doc"

// Seed populates the sample graph and reports verification counts. With
// reset, every node and edge is deleted first. When the sample document
// already exists nothing is written and created is false; totals and the
// sample listing are returned either way.
func Seed(ctx context.Context, client *kuzudb.Client, log *logger.Logger, reset bool) (*domain.SeedResult, error) {
	_, span := tracer.Start(ctx, "graph.Seed")
	defer span.End()

	conn, err := client.Conn()
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	if reset {
		res, err := execute(conn, "MATCH (n) DETACH DELETE n;", nil)
		if err != nil {
			return nil, fmt.Errorf("graph: reset graph: %w", err)
		}
		res.Close()
		if log != nil {
			log.Warn("graph reset: all nodes and edges deleted")
		}
	}

	exists, err := singleInt(conn,
		"MATCH (d:Document {title: $t}) RETURN COUNT(d)",
		map[string]any{"t": SampleDocTitle})
	if err != nil {
		return nil, err
	}

	created := false
	if exists == 0 {
		created = true
		if err := createSampleGraph(conn); err != nil {
			return nil, err
		}
		if log != nil {
			log.Info("sample graph seeded", "document", SampleDocTitle)
		}
	}

	totals, err := countTotals(conn)
	if err != nil {
		return nil, err
	}
	sample, err := sampleListing(conn)
	if err != nil {
		return nil, err
	}

	return &domain.SeedResult{Created: created, Totals: totals, Sample: sample}, nil
}

func createSampleGraph(conn *kuzu.Connection) error {
	res, err := execute(conn,
		"CREATE (d:Document {title: $t});",
		map[string]any{"t": SampleDocTitle})
	if err != nil {
		return fmt.Errorf("graph: seed document: %w", err)
	}
	res.Close()

	res, err = execute(conn, `
	MATCH (d:Document {title: $t})
	CREATE (s1:Section {title: $s1, ord: 0}),
	       (s2:Section {title: $s2, ord: 1}),
	       (d)-[:ContainsDocSection]->(s1),
	       (d)-[:ContainsDocSection]->(s2),
	       (s1)-[:ContainsSectionChunk]->(:Chunk {text: $c1, ord: 0}),
	       (s2)-[:ContainsSectionChunk]->(:Chunk {text: $c2, ord: 0}),
	       (s2)-[:ContainsSectionChunk]->(:Chunk {text: $c3, ord: 1});`,
		map[string]any{
			"t":  SampleDocTitle,
			"s1": "Intro",
			"s2": "Body",
			"c1": "Hello world",
			"c2": "Second chunk",
			"c3": "Third chunk",
		})
	if err != nil {
		return fmt.Errorf("graph: seed sections and chunks: %w", err)
	}
	res.Close()
	return nil
}

func countTotals(conn *kuzu.Connection) (domain.SeedTotals, error) {
	var totals domain.SeedTotals
	counts := []struct {
		dst   *int64
		query string
	}{
		{&totals.Documents, "MATCH (d:Document) RETURN COUNT(d)"},
		{&totals.Sections, "MATCH (s:Section) RETURN COUNT(s)"},
		{&totals.Chunks, "MATCH (c:Chunk) RETURN COUNT(c)"},
		{&totals.DocToSectionEdges, "MATCH (:Document)-[:ContainsDocSection]->(:Section) RETURN COUNT(*)"},
		{&totals.SectionToChunkEdges, "MATCH (:Section)-[:ContainsSectionChunk]->(:Chunk) RETURN COUNT(*)"},
	}
	for _, c := range counts {
		n, err := singleInt(conn, c.query, nil)
		if err != nil {
			return totals, err
		}
		*c.dst = n
	}
	return totals, nil
}

func sampleListing(conn *kuzu.Connection) ([]domain.SeedSampleRow, error) {
	res, err := execute(conn, `
	MATCH (d:Document {title: $t})-[:ContainsDocSection]->(s:Section)
	      -[:ContainsSectionChunk]->(c:Chunk)
	RETURN d.title AS document, s.title AS section, c.ord AS chunk_ord, c.text AS text
	ORDER BY s.ord, c.ord`,
		map[string]any{"t": SampleDocTitle})
	if err != nil {
		return nil, err
	}
	defer res.Close()

	rows, err := collectRows(res, []string{"document", "section", "chunk_ord", "text"})
	if err != nil {
		return nil, err
	}
	out := make([]domain.SeedSampleRow, 0, len(rows))
	for _, m := range rows {
		ord, _ := toInt64(m["chunk_ord"])
		out = append(out, domain.SeedSampleRow{
			Document: toString(m["document"]),
			Section:  toString(m["section"]),
			ChunkOrd: int32(ord),
			Text:     toString(m["text"]),
		})
	}
	return out, nil
}
