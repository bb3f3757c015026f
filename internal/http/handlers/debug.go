package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/docgraph-backend/internal/http/response"
	"github.com/yungbote/docgraph-backend/internal/platform/logger"
	"github.com/yungbote/docgraph-backend/internal/services"
)

type DebugHandler struct {
	log           *logger.Logger
	searchService services.SearchService
}

func NewDebugHandler(log *logger.Logger, searchService services.SearchService) *DebugHandler {
	return &DebugHandler{
		log:           log.With("handler", "DebugHandler"),
		searchService: searchService,
	}
}

// Indexes shows the engine's index listing.
func (h *DebugHandler) Indexes(c *gin.Context) {
	indexes, err := h.searchService.ListIndexes(c.Request.Context())
	if err != nil {
		h.log.Error("ListIndexes failed", "error", err)
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"indexes": indexes})
}

// SetDummyEmbeddings assigns a one-hot embedding to every chunk, keyed on
// chunk ord. Proves the vector index end-to-end without an embedding model.
func (h *DebugHandler) SetDummyEmbeddings(c *gin.Context) {
	updated, err := h.searchService.AssignPlaceholderEmbeddings(c.Request.Context())
	if err != nil {
		h.log.Error("AssignPlaceholderEmbeddings failed", "error", err, "updated", updated)
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"updated": updated})
}
