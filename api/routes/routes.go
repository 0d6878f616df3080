package routes

import (
	"github.com/VishwaPriyan-S/ChitFunds/internal/config"
	"github.com/VishwaPriyan-S/ChitFunds/internal/handlers"
	"github.com/VishwaPriyan-S/ChitFunds/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HandlerDependencies carries the handlers wired in main
type HandlerDependencies struct {
	AuthHandler      *handlers.AuthHandler
	UserHandler      *handlers.UserHandler
	GroupHandler     *handlers.GroupHandler
	AuctionHandler   *handlers.AuctionHandler
	DashboardHandler *handlers.DashboardHandler
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, deps *HandlerDependencies) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.MetricsMiddleware())

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public routes
	public := router.Group("/api/v1")
	{
		public.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{"status": "ok"})
		})

		auth := public.Group("/auth")
		{
			auth.POST("/register", deps.AuthHandler.Register)
			auth.POST("/login", deps.AuthHandler.Login)
			auth.POST("/admin/login", deps.AuthHandler.AdminLogin)
		}
	}

	// Member routes
	members := router.Group("/api/v1/members")
	members.Use(middleware.JWTAuthMiddleware(cfg), middleware.RequireApprovedMember())
	{
		members.GET("/dashboard-stats", deps.DashboardHandler.MemberStats)
		members.GET("/profile", deps.UserHandler.GetProfile)
		members.PUT("/profile", deps.UserHandler.UpdateProfile)
		members.GET("/chit-groups", deps.GroupHandler.GetMemberGroups)
		members.GET("/available-auctions", deps.AuctionHandler.GetAvailableAuctions)
		members.GET("/my-bids", deps.AuctionHandler.GetMemberBids)
		members.GET("/transactions", deps.DashboardHandler.GetMemberTransactions)

		members.GET("/auctions/:id", deps.AuctionHandler.GetAuction)
		members.POST("/auctions/:id/bids", deps.AuctionHandler.PlaceBid)
	}

	// Admin routes
	admin := router.Group("/api/v1/admin")
	admin.Use(middleware.JWTAuthMiddleware(cfg), middleware.RequireAdmin())
	{
		admin.GET("/dashboard-stats", deps.DashboardHandler.AdminStats)

		admin.GET("/members", deps.UserHandler.GetMembers)
		admin.PUT("/members/:id/approve", deps.UserHandler.ApproveMember)
		admin.PUT("/members/:id/reject", deps.UserHandler.RejectMember)
		admin.DELETE("/members/:id", deps.UserHandler.DeleteMember)

		admin.GET("/chit-groups", deps.GroupHandler.GetGroups)
		admin.POST("/chit-groups", deps.GroupHandler.CreateGroup)
		admin.PUT("/chit-groups/:id", deps.GroupHandler.UpdateGroup)
		admin.POST("/chit-groups/:id/members", deps.GroupHandler.AddMember)
		admin.GET("/chit-groups/:id/members", deps.GroupHandler.GetGroupMembers)
		admin.DELETE("/chit-groups/:id/members/:userId", deps.GroupHandler.RemoveMember)

		admin.GET("/auctions", deps.AuctionHandler.GetAuctions)
		admin.POST("/auctions", deps.AuctionHandler.CreateAuction)
		admin.GET("/auctions/:id", deps.AuctionHandler.GetAuction)
		admin.GET("/auctions/:id/bids", deps.AuctionHandler.GetBids)
		admin.PUT("/auctions/:id/close", deps.AuctionHandler.CloseAuction)
		admin.PUT("/auctions/:id/cancel", deps.AuctionHandler.CancelAuction)

		admin.GET("/transactions", deps.DashboardHandler.GetTransactions)
		admin.POST("/transactions/contributions", deps.DashboardHandler.RecordContribution)
		admin.PUT("/transactions/:id/status", deps.DashboardHandler.OverrideTransactionStatus)
	}

	return router
}
