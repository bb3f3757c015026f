package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/yungbote/docgraph-backend/internal/data/graph"
	"github.com/yungbote/docgraph-backend/internal/platform/apierr"
	"github.com/yungbote/docgraph-backend/internal/platform/kuzudb"
	"github.com/yungbote/docgraph-backend/internal/platform/logger"
)

func TestSearchRequiresQuery(t *testing.T) {
	svc := NewSearchService(&kuzudb.Client{}, logger.NewNop())
	_, err := svc.Search(context.Background(), "  ", "", 20, true)
	ae := apierr.From(err)
	if ae == nil || ae.Status != http.StatusBadRequest || ae.Code != "query_required" {
		t.Fatalf("expected query_required bad request, got %v", err)
	}
}

func TestSemanticMapsDimensionError(t *testing.T) {
	svc := NewSearchService(&kuzudb.Client{}, logger.NewNop())
	_, err := svc.Semantic(context.Background(), make([]float32, graph.EmbeddingDim-1), 5, 200, "")
	ae := apierr.From(err)
	if ae == nil || ae.Status != http.StatusBadRequest || ae.Code != "bad_vector_dimension" {
		t.Fatalf("expected bad_vector_dimension bad request, got %v", err)
	}
}
