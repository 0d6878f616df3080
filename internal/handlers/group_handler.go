package handlers

import (
	"net/http"

	"github.com/VishwaPriyan-S/ChitFunds/internal/models"
	"github.com/VishwaPriyan-S/ChitFunds/internal/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GroupHandler handles chit group HTTP requests
type GroupHandler struct {
	groupService services.GroupService
}

// NewGroupHandler creates a new GroupHandler
func NewGroupHandler(groupService services.GroupService) *GroupHandler {
	return &GroupHandler{groupService: groupService}
}

// CreateGroupRequest carries the payload for POST /admin/chit-groups
type CreateGroupRequest struct {
	Name         string  `json:"name" binding:"required"`
	Description  string  `json:"description"`
	TotalAmount  float64 `json:"totalAmount" binding:"required,gt=0"`
	Duration     int     `json:"duration" binding:"required,min=1"`
	TotalMembers int     `json:"totalMembers" binding:"required,min=2"`
}

// CreateGroup handles POST /admin/chit-groups
func (h *GroupHandler) CreateGroup(c *gin.Context) {
	var req CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	createdBy := c.MustGet("userID").(primitive.ObjectID)
	group, err := h.groupService.CreateGroup(c, &services.CreateGroupRequest{
		Name:         req.Name,
		Description:  req.Description,
		TotalAmount:  req.TotalAmount,
		Duration:     req.Duration,
		TotalMembers: req.TotalMembers,
	}, createdBy)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, group)
}

// UpdateGroupRequest carries the payload for PUT /admin/chit-groups/:id
type UpdateGroupRequest struct {
	Name   string             `json:"name"`
	Status models.GroupStatus `json:"status"`
}

// UpdateGroup handles PUT /admin/chit-groups/:id
func (h *GroupHandler) UpdateGroup(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req UpdateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	group, err := h.groupService.UpdateGroup(c, id, req.Name, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, group)
}

// GetGroups handles GET /admin/chit-groups
func (h *GroupHandler) GetGroups(c *gin.Context) {
	groups, err := h.groupService.GetGroups(c)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, groups)
}

// AddMemberRequest carries the payload for POST /admin/chit-groups/:id/members
type AddMemberRequest struct {
	UserID string `json:"userId" binding:"required"`
}

// AddMember handles POST /admin/chit-groups/:id/members
func (h *GroupHandler) AddMember(c *gin.Context) {
	groupID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid userId format"})
		return
	}

	membership, err := h.groupService.AddMember(c, groupID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, membership)
}

// GetGroupMembers handles GET /admin/chit-groups/:id/members
func (h *GroupHandler) GetGroupMembers(c *gin.Context) {
	groupID, ok := parseID(c, "id")
	if !ok {
		return
	}

	roster, err := h.groupService.GetGroupMembers(c, groupID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, roster)
}

// RemoveMember handles DELETE /admin/chit-groups/:id/members/:userId
func (h *GroupHandler) RemoveMember(c *gin.Context) {
	groupID, ok := parseID(c, "id")
	if !ok {
		return
	}
	userID, ok := parseID(c, "userId")
	if !ok {
		return
	}

	if err := h.groupService.RemoveMember(c, groupID, userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "member removed from chit group"})
}

// GetMemberGroups handles GET /members/chit-groups
func (h *GroupHandler) GetMemberGroups(c *gin.Context) {
	userID := c.MustGet("userID").(primitive.ObjectID)

	groups, err := h.groupService.GetMemberGroups(c, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, groups)
}
