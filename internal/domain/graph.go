package domain

// ChunkHit is one chunk row joined with its section and document context.
// The same shape is returned by listing, lexical search and (embedded in
// SemanticHit) semantic search.
type ChunkHit struct {
	DocumentID int64  `json:"document_id"`
	Document   string `json:"document"`
	SectionID  int64  `json:"section_id"`
	Section    string `json:"section"`
	ChunkID    int64  `json:"chunk_id"`
	ChunkOrd   int32  `json:"chunk_ord"`
	Text       string `json:"text"`
}

type SemanticHit struct {
	ChunkHit
	Distance float64 `json:"distance"`
}

type IngestSection struct {
	Title  string   `json:"title"`
	Chunks []string `json:"chunks"`
}

type IngestRequest struct {
	Title    string          `json:"title"`
	Sections []IngestSection `json:"sections"`
}

type IngestResult struct {
	DocumentID      int64   `json:"document_id"`
	SectionIDs      []int64 `json:"section_ids"`
	ChunkIDs        []int64 `json:"chunk_ids"`
	SectionsCreated int     `json:"sections_created"`
	ChunksCreated   int     `json:"chunks_created"`
}

type SeedTotals struct {
	Documents           int64 `json:"documents"`
	Sections            int64 `json:"sections"`
	Chunks              int64 `json:"chunks"`
	DocToSectionEdges   int64 `json:"doc_to_section_edges"`
	SectionToChunkEdges int64 `json:"section_to_chunk_edges"`
}

type SeedSampleRow struct {
	Document string `json:"document"`
	Section  string `json:"section"`
	ChunkOrd int32  `json:"chunk_ord"`
	Text     string `json:"text"`
}

type SeedResult struct {
	Created bool            `json:"created"`
	Totals  SeedTotals      `json:"totals"`
	Sample  []SeedSampleRow `json:"sample"`
}

// IndexInfo mirrors one row of the engine's SHOW_INDEXES call.
type IndexInfo struct {
	TableName       string   `json:"table_name"`
	IndexName       string   `json:"index_name"`
	IndexType       string   `json:"index_type"`
	PropertyNames   []string `json:"property_names"`
	ExtensionLoaded bool     `json:"extension_loaded"`
	IndexDefinition string   `json:"index_definition"`
}
