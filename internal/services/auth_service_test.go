package services

import (
	"context"
	"testing"

	"github.com/VishwaPriyan-S/ChitFunds/internal/config"
	"github.com/VishwaPriyan-S/ChitFunds/internal/errs"
	"github.com/VishwaPriyan-S/ChitFunds/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/peterldowns/testy/check"
)

var testJWTConfig = config.JWTConfig{Secret: "test-secret", ExpiresIn: 3600}

func registerRequest(email string) *models.RegisterRequest {
	return &models.RegisterRequest{
		FirstName: "Asha",
		LastName:  "Nair",
		Email:     email,
		Phone:     "9990001111",
		Address:   "12 Temple St",
		IDType:    "aadhaar",
		IDNumber:  "1234-5678-9012",
		Password:  "s3cret-pass",
	}
}

func TestRegister(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	svc := NewAuthService(f.users, testJWTConfig)

	user, err := svc.Register(ctx, registerRequest("asha@example.com"))
	check.Nil(t, err)
	check.Equal(t, models.RoleMember, user.Role)
	check.Equal(t, models.UserStatusPending, user.Status)

	// Password is stored hashed, never verbatim
	check.NotEqual(t, "s3cret-pass", user.Password)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	svc := NewAuthService(f.users, testJWTConfig)

	_, err := svc.Register(ctx, registerRequest("asha@example.com"))
	check.Nil(t, err)

	req := registerRequest("asha@example.com")
	req.IDNumber = "other-id"
	_, err = svc.Register(ctx, req)
	check.True(t, errs.IsKind(err, errs.KindConflict))
}

func TestRegister_DuplicateIdentity(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	svc := NewAuthService(f.users, testJWTConfig)

	_, err := svc.Register(ctx, registerRequest("asha@example.com"))
	check.Nil(t, err)

	req := registerRequest("other@example.com")
	_, err = svc.Register(ctx, req)
	check.True(t, errs.IsKind(err, errs.KindConflict))
}

func TestLogin_PendingMemberRejected(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	svc := NewAuthService(f.users, testJWTConfig)

	_, err := svc.Register(ctx, registerRequest("asha@example.com"))
	check.Nil(t, err)

	_, err = svc.Login(ctx, &models.LoginRequest{Email: "asha@example.com", Password: "s3cret-pass"}, models.RoleMember)
	check.True(t, errs.IsKind(err, errs.KindNotEligible))
}

func TestLogin_ApprovedMember(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	svc := NewAuthService(f.users, testJWTConfig)

	user, err := svc.Register(ctx, registerRequest("asha@example.com"))
	check.Nil(t, err)
	check.Nil(t, f.users.UpdateStatus(ctx, user.ID, models.UserStatusApproved))

	resp, err := svc.Login(ctx, &models.LoginRequest{Email: "asha@example.com", Password: "s3cret-pass"}, models.RoleMember)
	check.Nil(t, err)
	check.Equal(t, user.ID, resp.User.ID)

	// The token verifies against the configured secret and carries identity
	token, err := jwt.Parse(resp.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte(testJWTConfig.Secret), nil
	})
	check.Nil(t, err)
	claims := token.Claims.(jwt.MapClaims)
	check.Equal(t, user.ID.Hex(), claims["id"].(string))
	check.Equal(t, "member", claims["role"].(string))
}

func TestLogin_WrongPassword(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	svc := NewAuthService(f.users, testJWTConfig)

	user, err := svc.Register(ctx, registerRequest("asha@example.com"))
	check.Nil(t, err)
	check.Nil(t, f.users.UpdateStatus(ctx, user.ID, models.UserStatusApproved))

	_, err = svc.Login(ctx, &models.LoginRequest{Email: "asha@example.com", Password: "wrong"}, models.RoleMember)
	check.True(t, errs.IsKind(err, errs.KindNotEligible))
}

func TestLogin_RoleMismatch(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	svc := NewAuthService(f.users, testJWTConfig)

	user, err := svc.Register(ctx, registerRequest("asha@example.com"))
	check.Nil(t, err)
	check.Nil(t, f.users.UpdateStatus(ctx, user.ID, models.UserStatusApproved))

	// A member cannot use the admin login
	_, err = svc.Login(ctx, &models.LoginRequest{Email: "asha@example.com", Password: "s3cret-pass"}, models.RoleAdmin)
	check.True(t, errs.IsKind(err, errs.KindNotEligible))
}
