package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/docgraph-backend/internal/domain"
	"github.com/yungbote/docgraph-backend/internal/http/response"
	"github.com/yungbote/docgraph-backend/internal/platform/logger"
	"github.com/yungbote/docgraph-backend/internal/services"
)

type DocumentHandler struct {
	log             *logger.Logger
	documentService services.DocumentService
}

func NewDocumentHandler(log *logger.Logger, documentService services.DocumentService) *DocumentHandler {
	return &DocumentHandler{
		log:             log.With("handler", "DocumentHandler"),
		documentService: documentService,
	}
}

// Seed populates the sample graph and returns verification counts.
// ?reset=false keeps existing data.
func (h *DocumentHandler) Seed(c *gin.Context) {
	reset := true
	if raw := strings.TrimSpace(c.Query("reset")); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "bad_reset_flag", err)
			return
		}
		reset = parsed
	}

	result, err := h.documentService.Seed(c.Request.Context(), reset)
	if err != nil {
		h.log.Error("Seed failed", "error", err, "reset", reset)
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, result)
}

// ListChunks lists chunks with their section and document context.
// Optional: ?doc=Sample%20Doc and ?limit=.
func (h *DocumentHandler) ListChunks(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	docTitle := c.Query("doc")

	items, err := h.documentService.ListChunks(c.Request.Context(), limit, docTitle)
	if err != nil {
		h.log.Error("ListChunks failed", "error", err, "doc", docTitle)
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"count": len(items), "items": items})
}

// Ingest creates a Document with Sections and Chunks; section and chunk
// order is taken from input list order. A duplicate title is a conflict
// with no side effects.
func (h *DocumentHandler) Ingest(c *gin.Context) {
	var req domain.IngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	result, err := h.documentService.Ingest(c.Request.Context(), req)
	if err != nil {
		h.log.Warn("Ingest rejected", "error", err, "title", req.Title)
		response.RespondAppError(c, err)
		return
	}
	response.RespondCreated(c, result)
}
