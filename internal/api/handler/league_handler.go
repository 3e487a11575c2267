package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fantalega/asta/internal/domain"
	"github.com/fantalega/asta/internal/service"
)

// LeagueHandler serves the league overview, the purchase log, and the
// followed-team selector.
type LeagueHandler struct {
	ledgerSvc *service.LedgerService
}

// NewLeagueHandler creates a LeagueHandler.
func NewLeagueHandler(ledgerSvc *service.LedgerService) *LeagueHandler {
	return &LeagueHandler{ledgerSvc: ledgerSvc}
}

// GetOverview godoc
// GET /api/league
func (h *LeagueHandler) GetOverview(c *gin.Context) {
	respondSuccess(c, http.StatusOK, h.ledgerSvc.GetOverview(c.Request.Context()))
}

// GetHistory godoc
// GET /api/league/history?page=1&limit=20
func (h *LeagueHandler) GetHistory(c *gin.Context) {
	page, limit := parsePagination(c)
	offset := (page - 1) * limit

	records, total := h.ledgerSvc.GetHistory(c.Request.Context(), limit, offset)
	respondList(c, records, total, page, limit)
}

// SetFollowedTeam godoc
// PUT /api/league/followed-team
// Body: {"index": 3}
func (h *LeagueHandler) SetFollowedTeam(c *gin.Context) {
	var body struct {
		Index *int `json:"index" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, "ERR_VALIDATION", err.Error())
		return
	}

	if err := h.ledgerSvc.SetFollowedTeam(c.Request.Context(), *body.Index); err != nil {
		switch err {
		case domain.ErrFollowedTeamOutOfRange:
			respondError(c, http.StatusBadRequest, "ERR_INDEX_OUT_OF_RANGE", err.Error())
		default:
			respondError(c, http.StatusInternalServerError, "ERR_INTERNAL", "could not update followed team")
		}
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"followed_team": *body.Index})
}
