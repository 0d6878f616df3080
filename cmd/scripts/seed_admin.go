package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/VishwaPriyan-S/ChitFunds/internal/config"
	"github.com/VishwaPriyan-S/ChitFunds/internal/errs"
	"github.com/VishwaPriyan-S/ChitFunds/internal/models"
	mongorepo "github.com/VishwaPriyan-S/ChitFunds/internal/repositories/mongodb"
	"github.com/VishwaPriyan-S/ChitFunds/pkg/logging"
	"github.com/VishwaPriyan-S/ChitFunds/pkg/mongodb"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Seeds the bootstrap admin account. Safe to run repeatedly: if the admin
// already exists the script leaves it untouched.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load(config.GetEnv("CONFIG_PATH", "."))
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel)

	if cfg.Admin.Password == "" {
		slog.Error("Admin.Password is not configured")
		os.Exit(1)
	}

	client, err := mongodb.NewClient(cfg.MongoDB.URI)
	if err != nil {
		slog.Error("failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer client.Disconnect(context.Background())

	db := client.Database(cfg.MongoDB.Database)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := mongorepo.EnsureIndexes(ctx, db); err != nil {
		slog.Error("failed to create indexes", "error", err)
		os.Exit(1)
	}

	userRepo := mongorepo.NewUserRepository(db)

	if existing, err := userRepo.FindByEmail(ctx, cfg.Admin.Email); err == nil {
		slog.Info("admin account already exists", "email", existing.Email)
		return
	} else if !errs.IsKind(err, errs.KindNotFound) {
		slog.Error("failed to look up admin account", "error", err)
		os.Exit(1)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Admin.Password), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("failed to hash admin password", "error", err)
		os.Exit(1)
	}

	admin := &models.User{
		FirstName: "System",
		LastName:  "Admin",
		Email:     cfg.Admin.Email,
		Password:  string(hash),
		Role:      models.RoleAdmin,
		Status:    models.UserStatusApproved,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		slog.Error("failed to create admin account", "error", err)
		os.Exit(1)
	}

	slog.Info("admin account created", "email", admin.Email)
}
