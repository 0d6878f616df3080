package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/VishwaPriyan-S/ChitFunds/api/routes"
	"github.com/VishwaPriyan-S/ChitFunds/internal/config"
	"github.com/VishwaPriyan-S/ChitFunds/internal/handlers"
	mongorepo "github.com/VishwaPriyan-S/ChitFunds/internal/repositories/mongodb"
	"github.com/VishwaPriyan-S/ChitFunds/internal/services"
	"github.com/VishwaPriyan-S/ChitFunds/pkg/logging"
	"github.com/VishwaPriyan-S/ChitFunds/pkg/mongodb"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; deployments configure through the environment
	_ = godotenv.Load()

	cfg, err := config.Load(config.GetEnv("CONFIG_PATH", "."))
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.LogLevel)

	mongoClient, err := mongodb.NewClient(cfg.MongoDB.URI)
	if err != nil {
		slog.Error("failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			slog.Error("error disconnecting from MongoDB", "error", err)
		}
	}()

	db := mongoClient.Database(cfg.MongoDB.Database)

	indexCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := mongorepo.EnsureIndexes(indexCtx, db); err != nil {
		cancel()
		slog.Error("failed to create indexes", "error", err)
		os.Exit(1)
	}
	cancel()

	// Repositories
	userRepo := mongorepo.NewUserRepository(db)
	groupRepo := mongorepo.NewGroupRepository(db)
	membershipRepo := mongorepo.NewMembershipRepository(db)
	auctionRepo := mongorepo.NewAuctionRepository(db)
	bidRepo := mongorepo.NewBidRepository(db)
	transactionRepo := mongorepo.NewTransactionRepository(db)
	uow := mongorepo.NewUnitOfWork(mongoClient)

	// Services
	authService := services.NewAuthService(userRepo, cfg.JWT)
	userService := services.NewUserService(userRepo, membershipRepo)
	groupService := services.NewGroupService(groupRepo, membershipRepo, userRepo)
	auctionService := services.NewAuctionService(auctionRepo, bidRepo, groupRepo, membershipRepo, transactionRepo, userRepo, uow)
	dashboardService := services.NewDashboardService(userRepo, groupRepo, membershipRepo, transactionRepo)

	deps := &routes.HandlerDependencies{
		AuthHandler:      handlers.NewAuthHandler(authService),
		UserHandler:      handlers.NewUserHandler(userService),
		GroupHandler:     handlers.NewGroupHandler(groupService),
		AuctionHandler:   handlers.NewAuctionHandler(auctionService),
		DashboardHandler: handlers.NewDashboardHandler(dashboardService),
	}

	router := routes.SetupRouter(cfg, deps)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}
	slog.Info("server stopped")
}
