package handlers

import (
	"net/http"
	"strconv"

	"github.com/selimdilsadercan/ne-yapsak-sub000/internal/metrics"
	"github.com/selimdilsadercan/ne-yapsak-sub000/internal/services"
	"github.com/selimdilsadercan/ne-yapsak-sub000/internal/ws"

	"github.com/gin-gonic/gin"
)

type MemberHandler struct {
	membershipService *services.MembershipService
	sessionService    *services.SessionService
	hub               *ws.Hub
}

func NewMemberHandler(membershipService *services.MembershipService, sessionService *services.SessionService, hub *ws.Hub) *MemberHandler {
	return &MemberHandler{
		membershipService: membershipService,
		sessionService:    sessionService,
		hub:               hub,
	}
}

type SetReadyRequest struct {
	IsReady *bool `json:"is_ready" binding:"required" example:"true"`
}

// broadcastView pushes the fresh session aggregate to every observer. This is
// what keeps all clients folding the same member/vote snapshot.
func (h *MemberHandler) broadcastView(sessionID uint, event string) {
	view, err := h.sessionService.GetSession(sessionID)
	if err != nil {
		return
	}
	h.hub.Broadcast(sessionID, ws.Message{Type: event, Data: view})
}

// Join godoc
// @Summary      Join a session
// @Tags         members
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Session ID"
// @Success      200 {object} services.SessionView
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /api/v1/sessions/{id}/join [post]
func (h *MemberHandler) Join(c *gin.Context) {
	userID := c.GetUint("user_id")
	sessionID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid session id"})
		return
	}

	if _, err := h.membershipService.Join(uint(sessionID), userID); err != nil {
		c.JSON(statusForError(err), ErrorResponse{Error: err.Error()})
		return
	}

	metrics.Collectors.MembersJoined.Inc()
	h.broadcastView(uint(sessionID), ws.EventMemberJoined)

	view, err := h.sessionService.GetSession(uint(sessionID))
	if err != nil {
		c.JSON(statusForError(err), ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, view)
}

// SetReady godoc
// @Summary      Set the caller's readiness flag
// @Tags         members
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Session ID"
// @Param        request body SetReadyRequest true "Readiness"
// @Success      200 {object} MessageResponse
// @Failure      403 {object} ErrorResponse
// @Router       /api/v1/sessions/{id}/ready [put]
func (h *MemberHandler) SetReady(c *gin.Context) {
	userID := c.GetUint("user_id")
	sessionID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid session id"})
		return
	}

	var req SetReadyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.membershipService.SetReady(uint(sessionID), userID, *req.IsReady); err != nil {
		c.JSON(statusForError(err), ErrorResponse{Error: err.Error()})
		return
	}

	h.broadcastView(uint(sessionID), ws.EventReadyChanged)
	c.JSON(http.StatusOK, MessageResponse{Message: "readiness updated"})
}

// Heartbeat godoc
// @Summary      Refresh the caller's liveness
// @Description  Called on an interval while the session view is open; display-only signal
// @Tags         members
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Session ID"
// @Success      200 {object} MessageResponse
// @Failure      403 {object} ErrorResponse
// @Router       /api/v1/sessions/{id}/heartbeat [post]
func (h *MemberHandler) Heartbeat(c *gin.Context) {
	userID := c.GetUint("user_id")
	sessionID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid session id"})
		return
	}

	if err := h.membershipService.Heartbeat(uint(sessionID), userID); err != nil {
		c.JSON(statusForError(err), ErrorResponse{Error: err.Error()})
		return
	}

	// No broadcast: liveness is read off the next view, heartbeats would
	// otherwise drown the channel.
	c.JSON(http.StatusOK, MessageResponse{Message: "ok"})
}

// Leave godoc
// @Summary      Leave a session
// @Description  Leaving as the last member deletes the session and its votes
// @Tags         members
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Session ID"
// @Success      200 {object} MessageResponse
// @Failure      403 {object} ErrorResponse
// @Router       /api/v1/sessions/{id}/leave [post]
func (h *MemberHandler) Leave(c *gin.Context) {
	userID := c.GetUint("user_id")
	sessionID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid session id"})
		return
	}

	deleted, err := h.membershipService.Leave(uint(sessionID), userID)
	if err != nil {
		c.JSON(statusForError(err), ErrorResponse{Error: err.Error()})
		return
	}

	if deleted {
		metrics.Collectors.SessionsDeleted.Inc()
		h.hub.Broadcast(uint(sessionID), ws.Message{
			Type: ws.EventSessionDeleted,
			Data: gin.H{"session_id": sessionID},
		})
	} else {
		h.broadcastView(uint(sessionID), ws.EventMemberLeft)
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "left session"})
}
