package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/yungbote/docgraph-backend/internal/data/graph"
	"github.com/yungbote/docgraph-backend/internal/domain"
	"github.com/yungbote/docgraph-backend/internal/platform/apierr"
	"github.com/yungbote/docgraph-backend/internal/platform/kuzudb"
	"github.com/yungbote/docgraph-backend/internal/platform/logger"
)

type DocumentService interface {
	Ingest(ctx context.Context, req domain.IngestRequest) (*domain.IngestResult, error)
	ListChunks(ctx context.Context, limit int, docTitle string) ([]domain.ChunkHit, error)
	Seed(ctx context.Context, reset bool) (*domain.SeedResult, error)
}

type documentService struct {
	db  *kuzudb.Client
	log *logger.Logger
}

func NewDocumentService(db *kuzudb.Client, log *logger.Logger) DocumentService {
	return &documentService{
		db:  db,
		log: log.With("service", "DocumentService"),
	}
}

// Ingest creates a Document with its Sections and Chunks, taking ord from
// input list positions. The title conflict check runs before any write.
// The steps after the check are not wrapped in one transaction: a failure
// partway leaves partial nodes behind, and two concurrent ingests of the
// same title can both pass the check.
func (s *documentService) Ingest(ctx context.Context, req domain.IngestRequest) (*domain.IngestResult, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apierr.New(http.StatusBadRequest, "title_required",
			fmt.Errorf("document title is required"))
	}

	exists, err := graph.DocumentExists(ctx, s.db, title)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apierr.New(http.StatusConflict, "document_exists",
			fmt.Errorf("document with title %q already exists", title))
	}

	docID, err := graph.CreateDocument(ctx, s.db, title)
	if err != nil {
		return nil, err
	}

	sectionIDs := make([]int64, 0, len(req.Sections))
	var chunkIDs []int64
	for i, sec := range req.Sections {
		sid, err := graph.CreateSection(ctx, s.db, docID, sec.Title, i)
		if err != nil {
			return nil, fmt.Errorf("ingest %q: section %d: %w", title, i, err)
		}
		sectionIDs = append(sectionIDs, sid)
		for j, text := range sec.Chunks {
			cid, err := graph.CreateChunk(ctx, s.db, sid, text, j)
			if err != nil {
				return nil, fmt.Errorf("ingest %q: section %d chunk %d: %w", title, i, j, err)
			}
			chunkIDs = append(chunkIDs, cid)
		}
	}

	s.log.Info("document ingested",
		"title", title,
		"document_id", docID,
		"sections", len(sectionIDs),
		"chunks", len(chunkIDs),
	)
	return &domain.IngestResult{
		DocumentID:      docID,
		SectionIDs:      sectionIDs,
		ChunkIDs:        chunkIDs,
		SectionsCreated: len(sectionIDs),
		ChunksCreated:   len(chunkIDs),
	}, nil
}

func (s *documentService) ListChunks(ctx context.Context, limit int, docTitle string) ([]domain.ChunkHit, error) {
	return graph.ListChunks(ctx, s.db, limit, docTitle)
}

func (s *documentService) Seed(ctx context.Context, reset bool) (*domain.SeedResult, error) {
	return graph.Seed(ctx, s.db, s.log, reset)
}
