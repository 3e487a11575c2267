package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fantalega/asta/internal/catalog"
	"github.com/fantalega/asta/internal/domain"
)

// CatalogHandler serves read-only candidate-player lookups.
type CatalogHandler struct {
	cat *catalog.Catalog
}

// NewCatalogHandler creates a CatalogHandler.
func NewCatalogHandler(cat *catalog.Catalog) *CatalogHandler {
	return &CatalogHandler{cat: cat}
}

// Search godoc
// GET /api/catalog?q=maignan&position=P&limit=10
func (h *CatalogHandler) Search(c *gin.Context) {
	var pos domain.Position
	if raw := c.Query("position"); raw != "" {
		p, err := domain.ParsePosition(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "ERR_INVALID_POSITION", err.Error())
			return
		}
		pos = p
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	entries := h.cat.Search(c.Query("q"), pos, limit)
	respondSuccess(c, http.StatusOK, gin.H{
		"total":   h.cat.Len(),
		"entries": entries,
	})
}
