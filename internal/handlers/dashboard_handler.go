package handlers

import (
	"net/http"
	"strconv"

	"github.com/VishwaPriyan-S/ChitFunds/internal/models"
	"github.com/VishwaPriyan-S/ChitFunds/internal/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DashboardHandler handles dashboard and transaction HTTP requests
type DashboardHandler struct {
	dashboardService services.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// AdminStats handles GET /admin/dashboard-stats
func (h *DashboardHandler) AdminStats(c *gin.Context) {
	stats, err := h.dashboardService.AdminStats(c)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// MemberStats handles GET /members/dashboard-stats
func (h *DashboardHandler) MemberStats(c *gin.Context) {
	userID := c.MustGet("userID").(primitive.ObjectID)

	stats, err := h.dashboardService.MemberStats(c, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetTransactions handles GET /admin/transactions
func (h *DashboardHandler) GetTransactions(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	txns, pagination, err := h.dashboardService.GetTransactions(c, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": txns, "pagination": pagination})
}

// GetMemberTransactions handles GET /members/transactions
func (h *DashboardHandler) GetMemberTransactions(c *gin.Context) {
	userID := c.MustGet("userID").(primitive.ObjectID)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	txns, pagination, err := h.dashboardService.GetMemberTransactions(c, userID, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": txns, "pagination": pagination})
}

// RecordContributionRequest carries the payload for POST /admin/transactions/contributions
type RecordContributionRequest struct {
	ChitGroupID string  `json:"chitGroupId" binding:"required"`
	UserID      string  `json:"userId" binding:"required"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Month       int     `json:"month" binding:"required,min=1,max=12"`
	Year        int     `json:"year" binding:"required,min=2000"`
}

// RecordContribution handles POST /admin/transactions/contributions
func (h *DashboardHandler) RecordContribution(c *gin.Context) {
	var req RecordContributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	groupID, err := primitive.ObjectIDFromHex(req.ChitGroupID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid chitGroupId format"})
		return
	}
	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid userId format"})
		return
	}

	txn, err := h.dashboardService.RecordContribution(c, groupID, userID, req.Amount, req.Month, req.Year)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, txn)
}

// OverrideStatusRequest carries the payload for PUT /admin/transactions/:id/status
type OverrideStatusRequest struct {
	Status models.TransactionStatus `json:"status" binding:"required"`
}

// OverrideTransactionStatus handles PUT /admin/transactions/:id/status
func (h *DashboardHandler) OverrideTransactionStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req OverrideStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.dashboardService.OverrideTransactionStatus(c, id, req.Status); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "transaction status updated"})
}
