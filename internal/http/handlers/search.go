package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/docgraph-backend/internal/http/response"
	"github.com/yungbote/docgraph-backend/internal/platform/logger"
	"github.com/yungbote/docgraph-backend/internal/services"
)

type SearchHandler struct {
	log           *logger.Logger
	searchService services.SearchService
}

func NewSearchHandler(log *logger.Logger, searchService services.SearchService) *SearchHandler {
	return &SearchHandler{
		log:           log.With("handler", "SearchHandler"),
		searchService: searchService,
	}
}

// Search does a substring match in Chunk.text, case-insensitive unless
// ?ci=false. Optional ?doc= restricts to one document.
func (h *SearchHandler) Search(c *gin.Context) {
	q := c.Query("q")
	docTitle := c.Query("doc")
	limit, _ := strconv.Atoi(c.Query("limit"))

	caseInsensitive := true
	if raw := strings.TrimSpace(c.Query("ci")); raw != "" {
		if parsed, err := strconv.ParseBool(raw); err == nil {
			caseInsensitive = parsed
		}
	}

	items, err := h.searchService.Search(c.Request.Context(), q, docTitle, limit, caseInsensitive)
	if err != nil {
		h.log.Warn("Search failed", "error", err, "doc", docTitle)
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"count": len(items), "items": items})
}

type semanticQuery struct {
	Vector []float32 `json:"vector"`
	K      int       `json:"k"`
	Efs    int       `json:"efs"`
	Doc    string    `json:"doc"`
}

// Semantic runs a vector-similarity search over chunk embeddings.
func (h *SearchHandler) Semantic(c *gin.Context) {
	var body semanticQuery
	if err := c.ShouldBindJSON(&body); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	items, err := h.searchService.Semantic(c.Request.Context(), body.Vector, body.K, body.Efs, body.Doc)
	if err != nil {
		h.log.Warn("Semantic search failed", "error", err, "doc", body.Doc)
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"count": len(items), "items": items})
}
