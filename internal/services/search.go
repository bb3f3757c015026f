package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/yungbote/docgraph-backend/internal/data/graph"
	"github.com/yungbote/docgraph-backend/internal/domain"
	"github.com/yungbote/docgraph-backend/internal/platform/apierr"
	"github.com/yungbote/docgraph-backend/internal/platform/kuzudb"
	"github.com/yungbote/docgraph-backend/internal/platform/logger"
)

type SearchService interface {
	Search(ctx context.Context, q, docTitle string, limit int, caseInsensitive bool) ([]domain.ChunkHit, error)
	Semantic(ctx context.Context, vector []float32, k, efs int, docTitle string) ([]domain.SemanticHit, error)
	AssignPlaceholderEmbeddings(ctx context.Context) (int, error)
	ListIndexes(ctx context.Context) ([]domain.IndexInfo, error)
}

type searchService struct {
	db  *kuzudb.Client
	log *logger.Logger
}

func NewSearchService(db *kuzudb.Client, log *logger.Logger) SearchService {
	return &searchService{
		db:  db,
		log: log.With("service", "SearchService"),
	}
}

func (s *searchService) Search(ctx context.Context, q, docTitle string, limit int, caseInsensitive bool) ([]domain.ChunkHit, error) {
	if strings.TrimSpace(q) == "" {
		return nil, apierr.New(http.StatusBadRequest, "query_required",
			fmt.Errorf("search query is required"))
	}
	return graph.SearchChunks(ctx, s.db, q, docTitle, limit, caseInsensitive)
}

func (s *searchService) Semantic(ctx context.Context, vector []float32, k, efs int, docTitle string) ([]domain.SemanticHit, error) {
	hits, err := graph.SemanticSearch(ctx, s.db, vector, k, efs, docTitle)
	if err != nil {
		if errors.Is(err, graph.ErrVectorDimension) {
			return nil, apierr.New(http.StatusBadRequest, "bad_vector_dimension", err)
		}
		return nil, err
	}
	return hits, nil
}

func (s *searchService) AssignPlaceholderEmbeddings(ctx context.Context) (int, error) {
	return graph.AssignPlaceholderEmbeddings(ctx, s.db, s.log)
}

func (s *searchService) ListIndexes(ctx context.Context) ([]domain.IndexInfo, error) {
	return graph.ListIndexes(ctx, s.db)
}
