package graph

import (
	"context"
	"strings"
	"testing"

	"github.com/yungbote/docgraph-backend/internal/platform/kuzudb"
	"github.com/yungbote/docgraph-backend/internal/platform/kuzudb/kuzutest"
	"github.com/yungbote/docgraph-backend/internal/platform/logger"
)

func setupSchema(t *testing.T) *kuzudb.Client {
	t.Helper()
	client := kuzutest.Client(t)
	ctx := context.Background()
	log := logger.NewNop()
	if err := EnsureSchema(ctx, client, log); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
	if err := EnsureVectorSchema(ctx, client, log); err != nil {
		t.Fatalf("EnsureVectorSchema: %v", err)
	}
	return client
}

func TestEnsureSchemaIdempotent(t *testing.T) {
	client := setupSchema(t)
	ctx := context.Background()
	log := logger.NewNop()

	// Second pass over both entry points must not error or duplicate.
	if err := EnsureSchema(ctx, client, log); err != nil {
		t.Fatalf("EnsureSchema second call: %v", err)
	}
	if err := EnsureVectorSchema(ctx, client, log); err != nil {
		t.Fatalf("EnsureVectorSchema second call: %v", err)
	}

	indexes, err := ListIndexes(ctx, client)
	if err != nil {
		t.Fatalf("ListIndexes: %v", err)
	}
	matches := 0
	for _, idx := range indexes {
		if strings.EqualFold(idx.TableName, "Chunk") && strings.EqualFold(idx.IndexName, "chunk_embedding_idx") {
			matches++
		}
	}
	if matches != 1 {
		t.Fatalf("expected exactly one chunk_embedding_idx entry, got %d (indexes: %+v)", matches, indexes)
	}
}

func TestSeedIdempotence(t *testing.T) {
	client := setupSchema(t)
	ctx := context.Background()
	log := logger.NewNop()

	first, err := Seed(ctx, client, log, true)
	if err != nil {
		t.Fatalf("Seed(reset=true): %v", err)
	}
	if !first.Created {
		t.Fatalf("first seed: expected created=true")
	}

	second, err := Seed(ctx, client, log, false)
	if err != nil {
		t.Fatalf("Seed(reset=false): %v", err)
	}
	if second.Created {
		t.Fatalf("second seed: expected created=false")
	}
	if second.Totals != first.Totals {
		t.Fatalf("totals changed between seeds: %+v vs %+v", first.Totals, second.Totals)
	}

	totals := second.Totals
	if totals.Documents != 1 || totals.Sections != 2 || totals.Chunks != 3 ||
		totals.DocToSectionEdges != 2 || totals.SectionToChunkEdges != 3 {
		t.Fatalf("unexpected totals: %+v", totals)
	}
	if len(second.Sample) != 3 {
		t.Fatalf("expected 3 sample rows, got %d", len(second.Sample))
	}

	wantSections := []string{"Intro", "Body", "Body"}
	wantOrds := []int32{0, 0, 1}
	for i, row := range second.Sample {
		if row.Section != wantSections[i] || row.ChunkOrd != wantOrds[i] {
			t.Fatalf("sample row %d: got (%s, %d), want (%s, %d)",
				i, row.Section, row.ChunkOrd, wantSections[i], wantOrds[i])
		}
	}
}

func TestCreateSectionRequiresParent(t *testing.T) {
	client := setupSchema(t)
	ctx := context.Background()

	if _, err := CreateSection(ctx, client, 999999, "Orphan", 0); err == nil {
		t.Fatalf("CreateSection with missing document: expected error, got nil")
	}
	if _, err := CreateChunk(ctx, client, 999999, "orphan text", 0); err == nil {
		t.Fatalf("CreateChunk with missing section: expected error, got nil")
	}
}

func TestSearchChunksCaseSensitivity(t *testing.T) {
	client := setupSchema(t)
	ctx := context.Background()

	docID, err := CreateDocument(ctx, client, "Case Doc")
	if err != nil {
		t.Fatalf("CreateDocument: %v", err)
	}
	secID, err := CreateSection(ctx, client, docID, "Only", 0)
	if err != nil {
		t.Fatalf("CreateSection: %v", err)
	}
	for i, text := range []string{"HeLLo", "AGENDA", "Topic A", "topic b"} {
		if _, err := CreateChunk(ctx, client, secID, text, i); err != nil {
			t.Fatalf("CreateChunk %d: %v", i, err)
		}
	}

	hits, err := SearchChunks(ctx, client, "TOPIC", "Case Doc", 0, true)
	if err != nil {
		t.Fatalf("SearchChunks insensitive: %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("case-insensitive search: expected 2 hits, got %d", len(hits))
	}
	for _, h := range hits {
		if !strings.Contains(strings.ToLower(h.Text), "topic") {
			t.Fatalf("unexpected hit %q", h.Text)
		}
	}

	hits, err = SearchChunks(ctx, client, "TOPIC", "Case Doc", 0, false)
	if err != nil {
		t.Fatalf("SearchChunks sensitive: %v", err)
	}
	if len(hits) != 0 {
		t.Fatalf("case-sensitive search: expected 0 hits, got %d", len(hits))
	}
}

func TestSearchChunksEscapesMetacharacters(t *testing.T) {
	client := setupSchema(t)
	ctx := context.Background()

	docID, err := CreateDocument(ctx, client, "Meta Doc")
	if err != nil {
		t.Fatalf("CreateDocument: %v", err)
	}
	secID, err := CreateSection(ctx, client, docID, "Only", 0)
	if err != nil {
		t.Fatalf("CreateSection: %v", err)
	}
	for i, text := range []string{"agenda (draft)", "agenda final"} {
		if _, err := CreateChunk(ctx, client, secID, text, i); err != nil {
			t.Fatalf("CreateChunk %d: %v", i, err)
		}
	}

	hits, err := SearchChunks(ctx, client, "(draft)", "Meta Doc", 0, true)
	if err != nil {
		t.Fatalf("SearchChunks: %v", err)
	}
	if len(hits) != 1 || hits[0].Text != "agenda (draft)" {
		t.Fatalf("metacharacter query: expected the literal match only, got %+v", hits)
	}
}

func TestPlaceholderEmbeddingRoundTrip(t *testing.T) {
	client := setupSchema(t)
	ctx := context.Background()
	log := logger.NewNop()

	if _, err := Seed(ctx, client, log, true); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	updated, err := AssignPlaceholderEmbeddings(ctx, client, log)
	if err != nil {
		t.Fatalf("AssignPlaceholderEmbeddings: %v", err)
	}
	if updated != 3 {
		t.Fatalf("expected 3 chunks updated, got %d", updated)
	}

	// The seeded graph has chunks with ords 0, 0, 1; the one-hot for ord=1
	// must come back closest, at distance ~0.
	hits, err := SemanticSearch(ctx, client, OneHot(1), 3, 200, "")
	if err != nil {
		t.Fatalf("SemanticSearch: %v", err)
	}
	if len(hits) == 0 {
		t.Fatalf("expected hits, got none")
	}
	if hits[0].ChunkOrd != 1 {
		t.Fatalf("closest hit has ord %d, want 1 (hits: %+v)", hits[0].ChunkOrd, hits)
	}
	if hits[0].Distance > 1e-5 {
		t.Fatalf("closest hit distance %v, want ~0", hits[0].Distance)
	}
	for i := 1; i < len(hits); i++ {
		if hits[i].Distance < hits[i-1].Distance {
			t.Fatalf("hits not ordered by distance: %+v", hits)
		}
	}
}
