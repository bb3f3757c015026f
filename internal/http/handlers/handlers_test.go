package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/docgraph-backend/internal/domain"
	"github.com/yungbote/docgraph-backend/internal/platform/apierr"
	"github.com/yungbote/docgraph-backend/internal/platform/logger"
)

type stubDocumentService struct {
	ingestErr  error
	ingestRes  *domain.IngestResult
	seedRes    *domain.SeedResult
	listRes    []domain.ChunkHit
	seenReset  *bool
}

func (s *stubDocumentService) Ingest(ctx context.Context, req domain.IngestRequest) (*domain.IngestResult, error) {
	if s.ingestErr != nil {
		return nil, s.ingestErr
	}
	return s.ingestRes, nil
}

func (s *stubDocumentService) ListChunks(ctx context.Context, limit int, docTitle string) ([]domain.ChunkHit, error) {
	return s.listRes, nil
}

func (s *stubDocumentService) Seed(ctx context.Context, reset bool) (*domain.SeedResult, error) {
	s.seenReset = &reset
	return s.seedRes, nil
}

type stubSearchService struct {
	searchErr   error
	searchRes   []domain.ChunkHit
	semanticErr error
	semanticRes []domain.SemanticHit
}

func (s *stubSearchService) Search(ctx context.Context, q, docTitle string, limit int, ci bool) ([]domain.ChunkHit, error) {
	if s.searchErr != nil {
		return nil, s.searchErr
	}
	return s.searchRes, nil
}

func (s *stubSearchService) Semantic(ctx context.Context, vector []float32, k, efs int, docTitle string) ([]domain.SemanticHit, error) {
	if s.semanticErr != nil {
		return nil, s.semanticErr
	}
	return s.semanticRes, nil
}

func (s *stubSearchService) AssignPlaceholderEmbeddings(ctx context.Context) (int, error) {
	return len(s.semanticRes), nil
}

func (s *stubSearchService) ListIndexes(ctx context.Context) ([]domain.IndexInfo, error) {
	return nil, nil
}

func perform(t *testing.T, register func(*gin.Engine), method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	register(r)
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIngestConflictMapsTo409(t *testing.T) {
	doc := &stubDocumentService{
		ingestErr: apierr.New(http.StatusConflict, "document_exists",
			fmt.Errorf("document with title %q already exists", "Dup")),
	}
	h := NewDocumentHandler(logger.NewNop(), doc)

	w := perform(t, func(r *gin.Engine) { r.POST("/ingest", h.Ingest) },
		http.MethodPost, "/ingest", `{"title":"Dup","sections":[]}`)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", w.Code, w.Body.String())
	}
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}
	if envelope.Error.Code != "document_exists" {
		t.Fatalf("expected document_exists code, got %q", envelope.Error.Code)
	}
}

func TestIngestRejectsMalformedBody(t *testing.T) {
	h := NewDocumentHandler(logger.NewNop(), &stubDocumentService{})
	w := perform(t, func(r *gin.Engine) { r.POST("/ingest", h.Ingest) },
		http.MethodPost, "/ingest", `{"title":`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestSeedResetFlag(t *testing.T) {
	doc := &stubDocumentService{seedRes: &domain.SeedResult{Created: true}}
	h := NewDocumentHandler(logger.NewNop(), doc)

	w := perform(t, func(r *gin.Engine) { r.POST("/seed", h.Seed) },
		http.MethodPost, "/seed?reset=false", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if doc.seenReset == nil || *doc.seenReset != false {
		t.Fatalf("expected reset=false passed through, got %v", doc.seenReset)
	}

	w = perform(t, func(r *gin.Engine) { r.POST("/seed", h.Seed) },
		http.MethodPost, "/seed", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if doc.seenReset == nil || *doc.seenReset != true {
		t.Fatalf("expected reset default true, got %v", doc.seenReset)
	}

	w = perform(t, func(r *gin.Engine) { r.POST("/seed", h.Seed) },
		http.MethodPost, "/seed?reset=banana", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad reset flag, got %d", w.Code)
	}
}

func TestSearchErrorPassthrough(t *testing.T) {
	search := &stubSearchService{
		searchErr: apierr.New(http.StatusBadRequest, "query_required",
			fmt.Errorf("search query is required")),
	}
	h := NewSearchHandler(logger.NewNop(), search)

	w := perform(t, func(r *gin.Engine) { r.GET("/search", h.Search) },
		http.MethodGet, "/search", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestSemanticResponseShape(t *testing.T) {
	search := &stubSearchService{
		semanticRes: []domain.SemanticHit{
			{ChunkHit: domain.ChunkHit{ChunkID: 7, Text: "hello"}, Distance: 0.25},
		},
	}
	h := NewSearchHandler(logger.NewNop(), search)

	body := `{"vector":[],"k":5,"efs":200}`
	w := perform(t, func(r *gin.Engine) { r.POST("/search/semantic", h.Semantic) },
		http.MethodPost, "/search/semantic", body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var payload struct {
		Count int `json:"count"`
		Items []struct {
			ChunkID  int64   `json:"chunk_id"`
			Distance float64 `json:"distance"`
		} `json:"items"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload.Count != 1 || len(payload.Items) != 1 {
		t.Fatalf("unexpected payload: %s", w.Body.String())
	}
	if payload.Items[0].ChunkID != 7 || payload.Items[0].Distance != 0.25 {
		t.Fatalf("row fields lost in serialization: %s", w.Body.String())
	}
}
