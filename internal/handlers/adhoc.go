package handlers

import (
	"net/http"
	"strconv"

	"github.com/selimdilsadercan/ne-yapsak-sub000/internal/metrics"
	"github.com/selimdilsadercan/ne-yapsak-sub000/internal/services"
	"github.com/selimdilsadercan/ne-yapsak-sub000/internal/ws"

	"github.com/gin-gonic/gin"
)

type AdhocHandler struct {
	adhocService   *services.AdhocService
	sessionService *services.SessionService
	hub            *ws.Hub
}

func NewAdhocHandler(adhocService *services.AdhocService, sessionService *services.SessionService, hub *ws.Hub) *AdhocHandler {
	return &AdhocHandler{
		adhocService:   adhocService,
		sessionService: sessionService,
		hub:            hub,
	}
}

type AddSessionItemRequest struct {
	ItemType       string `json:"item_type" binding:"required" example:"movie"`
	ExternalItemID string `json:"external_item_id" example:"tmdb:949"`
	Name           string `json:"name" binding:"required,min=1,max=255" example:"Heat"`
	ImageURL       string `json:"image_url" example:"https://image.tmdb.org/t/p/w500/heat.jpg"`
}

// AddItem godoc
// @Summary      Inject an ad-hoc candidate into a session
// @Description  Allowed in any phase; the candidate set is never locked. The item is not written to the list.
// @Tags         session-items
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Session ID"
// @Param        request body AddSessionItemRequest true "Item data"
// @Success      201 {object} models.SessionItem
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/sessions/{id}/items [post]
func (h *AdhocHandler) AddItem(c *gin.Context) {
	userID := c.GetUint("user_id")
	sessionID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid session id"})
		return
	}

	var req AddSessionItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	item, err := h.adhocService.AddItem(uint(sessionID), userID, req.ItemType, req.ExternalItemID, req.Name, req.ImageURL)
	if err != nil {
		c.JSON(statusForError(err), ErrorResponse{Error: err.Error()})
		return
	}

	metrics.Collectors.AdhocItemsAdded.Inc()

	if view, viewErr := h.sessionService.GetSession(uint(sessionID)); viewErr == nil {
		h.hub.Broadcast(uint(sessionID), ws.Message{Type: ws.EventItemAdded, Data: view})
	}

	c.JSON(http.StatusCreated, item)
}

// ListItems godoc
// @Summary      List a session's ad-hoc items
// @Tags         session-items
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Session ID"
// @Success      200 {array} models.SessionItem
// @Router       /api/v1/sessions/{id}/items [get]
func (h *AdhocHandler) ListItems(c *gin.Context) {
	sessionID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid session id"})
		return
	}

	items, err := h.adhocService.ListItems(uint(sessionID))
	if err != nil {
		c.JSON(statusForError(err), ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, items)
}
