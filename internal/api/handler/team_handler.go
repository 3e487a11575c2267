package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fantalega/asta/internal/domain"
	"github.com/fantalega/asta/internal/service"
)

// TeamHandler serves per-team roster state and the three ledger mutations:
// acquire, remove, rename.
type TeamHandler struct {
	ledgerSvc *service.LedgerService
}

// NewTeamHandler creates a TeamHandler.
func NewTeamHandler(ledgerSvc *service.LedgerService) *TeamHandler {
	return &TeamHandler{ledgerSvc: ledgerSvc}
}

// ListTeams godoc
// GET /api/teams
func (h *TeamHandler) ListTeams(c *gin.Context) {
	ov := h.ledgerSvc.GetOverview(c.Request.Context())
	respondSuccess(c, http.StatusOK, ov.Teams)
}

// GetTeam godoc
// GET /api/teams/:name
func (h *TeamHandler) GetTeam(c *gin.Context) {
	summary, err := h.ledgerSvc.GetTeam(c.Request.Context(), c.Param("name"))
	if err != nil {
		respondError(c, http.StatusNotFound, "ERR_TEAM_NOT_FOUND", err.Error())
		return
	}
	respondSuccess(c, http.StatusOK, summary)
}

// GetTargets godoc
// GET /api/teams/:name/targets
func (h *TeamHandler) GetTargets(c *gin.Context) {
	targets, err := h.ledgerSvc.GetTargets(c.Request.Context(), c.Param("name"))
	if err != nil {
		respondError(c, http.StatusNotFound, "ERR_TEAM_NOT_FOUND", err.Error())
		return
	}
	respondSuccess(c, http.StatusOK, targets)
}

// Acquire godoc
// POST /api/teams/:name/roster
// Body: {"player":"Maignan","position":"P","price":25}
func (h *TeamHandler) Acquire(c *gin.Context) {
	var body struct {
		Player   string `json:"player"   binding:"required"`
		Position string `json:"position" binding:"required"`
		Price    *int   `json:"price"    binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, "ERR_VALIDATION", err.Error())
		return
	}

	// The raw role code goes straight to the engine: position validity is
	// part of the documented validation chain, not transport plumbing.
	rec, err := h.ledgerSvc.Acquire(c.Request.Context(),
		c.Param("name"), body.Player, domain.Position(body.Position), *body.Price)
	if err != nil {
		switch err {
		case domain.ErrEmptyPlayerName:
			respondError(c, http.StatusBadRequest, "ERR_EMPTY_NAME", err.Error())
		case domain.ErrInvalidPosition:
			respondError(c, http.StatusBadRequest, "ERR_INVALID_POSITION", err.Error())
		case domain.ErrNegativePrice:
			respondError(c, http.StatusBadRequest, "ERR_NEGATIVE_PRICE", err.Error())
		case domain.ErrDuplicatePlayer:
			respondError(c, http.StatusConflict, "ERR_DUPLICATE_PLAYER", err.Error())
		case domain.ErrQuotaFull:
			respondError(c, http.StatusConflict, "ERR_QUOTA_FULL", err.Error())
		case domain.ErrInsufficientCredits:
			respondError(c, http.StatusPaymentRequired, "ERR_INSUFFICIENT_CREDITS", err.Error())
		case domain.ErrTeamNotFound:
			respondError(c, http.StatusNotFound, "ERR_TEAM_NOT_FOUND", err.Error())
		default:
			respondError(c, http.StatusInternalServerError, "ERR_INTERNAL", "could not acquire player")
		}
		return
	}
	respondSuccess(c, http.StatusCreated, rec)
}

// Remove godoc
// DELETE /api/teams/:name/roster/:position/:player
func (h *TeamHandler) Remove(c *gin.Context) {
	pos, err := domain.ParsePosition(c.Param("position"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "ERR_INVALID_POSITION", err.Error())
		return
	}

	err = h.ledgerSvc.Remove(c.Request.Context(), c.Param("name"), pos, c.Param("player"))
	if err != nil {
		switch err {
		case domain.ErrTeamNotFound:
			respondError(c, http.StatusNotFound, "ERR_TEAM_NOT_FOUND", err.Error())
		case domain.ErrPlayerNotFound:
			respondError(c, http.StatusNotFound, "ERR_PLAYER_NOT_FOUND", err.Error())
		default:
			respondError(c, http.StatusInternalServerError, "ERR_INTERNAL", "could not remove player")
		}
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"removed": c.Param("player")})
}

// Rename godoc
// PATCH /api/teams/:name
// Body: {"new_name":"Real Scampia"}
func (h *TeamHandler) Rename(c *gin.Context) {
	var body struct {
		NewName string `json:"new_name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, "ERR_VALIDATION", err.Error())
		return
	}

	err := h.ledgerSvc.Rename(c.Request.Context(), c.Param("name"), body.NewName)
	if err != nil {
		switch err {
		case domain.ErrTeamNotFound:
			respondError(c, http.StatusNotFound, "ERR_TEAM_NOT_FOUND", err.Error())
		case domain.ErrTeamNameTaken:
			respondError(c, http.StatusConflict, "ERR_NAME_TAKEN", err.Error())
		default:
			respondError(c, http.StatusInternalServerError, "ERR_INTERNAL", "could not rename team")
		}
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"name": body.NewName})
}
