package handlers

import (
	"net/http"
	"time"

	"github.com/VishwaPriyan-S/ChitFunds/internal/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuctionHandler handles auction and bid HTTP requests
type AuctionHandler struct {
	auctionService services.AuctionService
}

// NewAuctionHandler creates a new AuctionHandler
func NewAuctionHandler(auctionService services.AuctionService) *AuctionHandler {
	return &AuctionHandler{auctionService: auctionService}
}

// CreateAuctionRequest carries the payload for POST /admin/auctions
type CreateAuctionRequest struct {
	ChitGroupID  string    `json:"chitGroupId" binding:"required"`
	Month        int       `json:"month" binding:"required,min=1,max=12"`
	Year         int       `json:"year" binding:"required,min=2000"`
	AuctionDate  time.Time `json:"auctionDate" binding:"required"`
	MinBidAmount float64   `json:"minBidAmount"`
}

// CreateAuction handles POST /admin/auctions
func (h *AuctionHandler) CreateAuction(c *gin.Context) {
	var req CreateAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	groupID, err := primitive.ObjectIDFromHex(req.ChitGroupID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid chitGroupId format"})
		return
	}

	auction, err := h.auctionService.CreateAuction(c, groupID, req.Month, req.Year, req.AuctionDate, req.MinBidAmount)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, auction)
}

// GetAuctions handles GET /admin/auctions
func (h *AuctionHandler) GetAuctions(c *gin.Context) {
	auctions, err := h.auctionService.GetAuctions(c)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, auctions)
}

// GetAuction handles GET /auctions/:id
func (h *AuctionHandler) GetAuction(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	auction, err := h.auctionService.GetAuction(c, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, auction)
}

// GetBids handles GET /auctions/:id/bids
func (h *AuctionHandler) GetBids(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	bids, err := h.auctionService.GetBids(c, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, bids)
}

// PlaceBidRequest carries the payload for POST /auctions/:id/bids
type PlaceBidRequest struct {
	BidAmount float64 `json:"bidAmount" binding:"required"`
}

// PlaceBid handles POST /auctions/:id/bids
func (h *AuctionHandler) PlaceBid(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	memberID := c.MustGet("userID").(primitive.ObjectID)
	bid, err := h.auctionService.PlaceBid(c, id, memberID, req.BidAmount)
	if err != nil {
		respondError(c, err)
		return
	}

	// 200 rather than 201: a resubmission replaces the member's earlier bid
	c.JSON(http.StatusOK, bid)
}

// CloseAuctionRequest carries the payload for PUT /admin/auctions/:id/close
type CloseAuctionRequest struct {
	WinnerID      string  `json:"winnerId" binding:"required"`
	WinningAmount float64 `json:"winningAmount" binding:"required"`
}

// CloseAuction handles PUT /admin/auctions/:id/close
func (h *AuctionHandler) CloseAuction(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req CloseAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	winnerID, err := primitive.ObjectIDFromHex(req.WinnerID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid winnerId format"})
		return
	}

	auction, err := h.auctionService.CloseAuction(c, id, winnerID, req.WinningAmount)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, auction)
}

// CancelAuction handles PUT /admin/auctions/:id/cancel
func (h *AuctionHandler) CancelAuction(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	auction, err := h.auctionService.CancelAuction(c, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, auction)
}

// GetAvailableAuctions handles GET /members/available-auctions
func (h *AuctionHandler) GetAvailableAuctions(c *gin.Context) {
	memberID := c.MustGet("userID").(primitive.ObjectID)

	auctions, err := h.auctionService.GetAvailableAuctions(c, memberID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, auctions)
}

// GetMemberBids handles GET /members/my-bids
func (h *AuctionHandler) GetMemberBids(c *gin.Context) {
	memberID := c.MustGet("userID").(primitive.ObjectID)

	bids, err := h.auctionService.GetMemberBids(c, memberID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, bids)
}
