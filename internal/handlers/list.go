package handlers

import (
	"net/http"
	"strconv"

	"github.com/selimdilsadercan/ne-yapsak-sub000/internal/services"

	"github.com/gin-gonic/gin"
)

type ListHandler struct {
	listService *services.ListService
}

func NewListHandler(listService *services.ListService) *ListHandler {
	return &ListHandler{listService: listService}
}

type CreateListRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=255" example:"Friday movie night"`
	Description string `json:"description" binding:"max=1000" example:"Things we might watch"`
}

type AddListItemRequest struct {
	ItemType string `json:"item_type" binding:"required" example:"movie"`
	Name     string `json:"name" binding:"required,min=1,max=255" example:"Heat"`
	ImageURL string `json:"image_url" example:"https://image.tmdb.org/t/p/w500/heat.jpg"`
	Notes    string `json:"notes" binding:"max=1000"`
}

// CreateList godoc
// @Summary      Create a list
// @Tags         lists
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateListRequest true "List data"
// @Success      201 {object} models.List
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/lists [post]
func (h *ListHandler) CreateList(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req CreateListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	list, err := h.listService.CreateList(userID, req.Name, req.Description)
	if err != nil {
		c.JSON(statusForError(err), ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, list)
}

// GetList godoc
// @Summary      Get a list with its items
// @Tags         lists
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "List ID"
// @Success      200 {object} models.List
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/lists/{id} [get]
func (h *ListHandler) GetList(c *gin.Context) {
	listID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid list id"})
		return
	}

	list, err := h.listService.GetList(uint(listID))
	if err != nil {
		c.JSON(statusForError(err), ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, list)
}

// GetMyLists godoc
// @Summary      List the caller's lists
// @Tags         lists
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} models.List
// @Router       /api/v1/lists [get]
func (h *ListHandler) GetMyLists(c *gin.Context) {
	userID := c.GetUint("user_id")

	lists, err := h.listService.GetUserLists(userID)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, lists)
}

// AddItem godoc
// @Summary      Add an item to a list
// @Tags         lists
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "List ID"
// @Param        request body AddListItemRequest true "Item data"
// @Success      201 {object} models.ListItem
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/lists/{id}/items [post]
func (h *ListHandler) AddItem(c *gin.Context) {
	userID := c.GetUint("user_id")
	listID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid list id"})
		return
	}

	var req AddListItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	item, err := h.listService.AddItem(uint(listID), userID, req.ItemType, req.Name, req.ImageURL, req.Notes)
	if err != nil {
		c.JSON(statusForError(err), ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, item)
}
