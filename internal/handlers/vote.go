package handlers

import (
	"net/http"
	"strconv"

	"github.com/selimdilsadercan/ne-yapsak-sub000/internal/metrics"
	"github.com/selimdilsadercan/ne-yapsak-sub000/internal/models"
	"github.com/selimdilsadercan/ne-yapsak-sub000/internal/services"
	"github.com/selimdilsadercan/ne-yapsak-sub000/internal/ws"

	"github.com/gin-gonic/gin"
)

type VoteHandler struct {
	voteService    *services.VoteService
	sessionService *services.SessionService
	hub            *ws.Hub
}

func NewVoteHandler(voteService *services.VoteService, sessionService *services.SessionService, hub *ws.Hub) *VoteHandler {
	return &VoteHandler{
		voteService:    voteService,
		sessionService: sessionService,
		hub:            hub,
	}
}

type CastVoteRequest struct {
	ItemKind  string `json:"item_kind" binding:"required,oneof=list session" example:"list"`
	ItemID    uint   `json:"item_id" binding:"required" example:"3"`
	Direction string `json:"direction" binding:"required" example:"right"`
}

// CastVote godoc
// @Summary      Cast a swipe vote
// @Description  Appends a ledger entry and bumps the caller's vote count. No idempotency: every swipe counts.
// @Tags         votes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Session ID"
// @Param        request body CastVoteRequest true "Vote"
// @Success      200 {object} MessageResponse
// @Failure      403 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /api/v1/sessions/{id}/votes [post]
func (h *VoteHandler) CastVote(c *gin.Context) {
	userID := c.GetUint("user_id")
	sessionID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid session id"})
		return
	}

	var req CastVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	ref := models.ItemRef{Kind: req.ItemKind, ID: req.ItemID}
	completed, err := h.voteService.CastVote(uint(sessionID), userID, ref, req.Direction)
	if err != nil {
		c.JSON(statusForError(err), ErrorResponse{Error: err.Error()})
		return
	}

	metrics.Collectors.VotesTotal.WithLabelValues(req.Direction).Inc()

	view, viewErr := h.sessionService.GetSession(uint(sessionID))
	if viewErr == nil {
		h.hub.Broadcast(uint(sessionID), ws.Message{Type: ws.EventVoteCast, Data: view})
		if completed {
			h.hub.Broadcast(uint(sessionID), ws.Message{Type: ws.EventSessionCompleted, Data: view})
		}
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "vote accepted"})
}

// GetVotes godoc
// @Summary      Get per-item vote counts
// @Description  Aggregated {up,right,left} counts keyed by item; ad-hoc items use "session_<id>" keys
// @Tags         votes
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Session ID"
// @Success      200 {object} map[string]services.DirectionCounts
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/sessions/{id}/votes [get]
func (h *VoteHandler) GetVotes(c *gin.Context) {
	sessionID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid session id"})
		return
	}

	counts, err := h.voteService.GetVotes(uint(sessionID))
	if err != nil {
		c.JSON(statusForError(err), ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, counts)
}
