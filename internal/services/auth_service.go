package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/VishwaPriyan-S/ChitFunds/internal/config"
	"github.com/VishwaPriyan-S/ChitFunds/internal/errs"
	"github.com/VishwaPriyan-S/ChitFunds/internal/models"
	"github.com/VishwaPriyan-S/ChitFunds/internal/repositories"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Compile-time check to ensure AuthServiceImpl implements AuthService
var _ AuthService = (*AuthServiceImpl)(nil)

// AuthServiceImpl handles registration and login
type AuthServiceImpl struct {
	userRepo repositories.UserRepository
	jwtCfg   config.JWTConfig
}

// NewAuthService creates a new AuthServiceImpl
func NewAuthService(userRepo repositories.UserRepository, jwtCfg config.JWTConfig) *AuthServiceImpl {
	return &AuthServiceImpl{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Register creates a member account in pending status, awaiting admin
// approval. Email and identity document must both be unused.
func (s *AuthServiceImpl) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	if _, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil {
		return nil, errs.Conflict("an account with this email already exists")
	} else if !errs.IsKind(err, errs.KindNotFound) {
		return nil, err
	}

	if _, err := s.userRepo.FindByIdentity(ctx, req.IDType, req.IDNumber); err == nil {
		return nil, errs.Conflict("an account with this %s number already exists", req.IDType)
	} else if !errs.IsKind(err, errs.KindNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errs.Wrap(errs.KindStoreFailure, err, "failed to hash password")
	}

	user := &models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		IDType:    req.IDType,
		IDNumber:  req.IDNumber,
		Password:  string(hash),
		Role:      models.RoleMember,
		Status:    models.UserStatusPending,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	slog.Info("member registered", "userId", user.ID.Hex(), "email", user.Email)
	return user, nil
}

// Login authenticates a user of the expected role and returns a signed
// token. Members must be approved before they can log in.
func (s *AuthServiceImpl) Login(ctx context.Context, req *models.LoginRequest, role models.UserRole) (*models.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errs.IsKind(err, errs.KindNotFound) {
			return nil, errs.NotEligible("invalid email or password")
		}
		return nil, err
	}
	if user.Role != role {
		return nil, errs.NotEligible("invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, errs.NotEligible("invalid email or password")
	}
	if user.Role == models.RoleMember && user.Status != models.UserStatusApproved {
		return nil, errs.NotEligible("account is %s; wait for admin approval", user.Status)
	}

	token, err := s.signToken(user)
	if err != nil {
		return nil, err
	}

	slog.Info("user logged in", "userId", user.ID.Hex(), "role", user.Role)
	return &models.AuthResponse{Token: token, User: user}, nil
}

func (s *AuthServiceImpl) signToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"id":     user.ID.Hex(),
		"email":  user.Email,
		"role":   string(user.Role),
		"status": string(user.Status),
		"iat":    now.Unix(),
		"exp":    now.Add(time.Duration(s.jwtCfg.ExpiresIn) * time.Second).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtCfg.Secret))
	if err != nil {
		return "", errs.Wrap(errs.KindStoreFailure, err, "failed to sign token")
	}
	return signed, nil
}
