package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/noteandmore/api/internal/domain/entities"
	"github.com/noteandmore/api/internal/infrastructure/config"
	"github.com/noteandmore/api/internal/infrastructure/logger"
	"github.com/noteandmore/api/internal/ports"
)

func newAuthSvc() (*AuthService, *fakeUserRepo, *fakeAuthRepo) {
	userRepo := newFakeUserRepo()
	authRepo := newFakeAuthRepo()
	cfg := config.JWTConfig{
		Secret:           "test-secret-for-signing-tokens",
		ExpiresIn:        15 * time.Minute,
		RefreshExpiresIn: 24 * time.Hour,
		Issuer:           "noteandmore-test",
	}
	return NewAuthService(userRepo, authRepo, cfg, logger.NewNop()), userRepo, authRepo
}

func registerReq() ports.RegisterRequest {
	return ports.RegisterRequest{
		Email:    "alice@example.com",
		Username: "alice",
		Password: "s3cret-pass",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	t.Parallel()

	svc, _, _ := newAuthSvc()

	resp, err := svc.Register(context.Background(), registerReq())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatal("expected both tokens in register response")
	}
	if resp.TokenType != "Bearer" {
		t.Fatalf("tokenType = %s, want Bearer", resp.TokenType)
	}
	if resp.User.PasswordHash != "" {
		t.Fatal("password hash leaked in response")
	}

	login, err := svc.Login(context.Background(), ports.LoginRequest{
		Email:    "alice@example.com",
		Password: "s3cret-pass",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if login.User.ID != resp.User.ID {
		t.Fatalf("login user = %s, want %s", login.User.ID, resp.User.ID)
	}

	if _, err := svc.Login(context.Background(), ports.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong",
	}); err == nil {
		t.Fatal("login with wrong password should fail")
	}
}

func TestRegisterDuplicate(t *testing.T) {
	t.Parallel()

	svc, _, _ := newAuthSvc()

	if _, err := svc.Register(context.Background(), registerReq()); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, err := svc.Register(context.Background(), registerReq())
	if !errors.Is(err, entities.ErrDuplicate) {
		t.Fatalf("duplicate register: got %v, want ErrDuplicate", err)
	}

	other := registerReq()
	other.Email = "other@example.com"
	_, err = svc.Register(context.Background(), other)
	if !errors.Is(err, entities.ErrDuplicate) {
		t.Fatalf("duplicate username: got %v, want ErrDuplicate", err)
	}
}

func TestValidateToken(t *testing.T) {
	t.Parallel()

	svc, _, _ := newAuthSvc()

	resp, err := svc.Register(context.Background(), registerReq())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	claims, err := svc.ValidateToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != resp.User.ID.String() {
		t.Fatalf("claims userID = %s, want %s", claims.UserID, resp.User.ID)
	}
	if claims.Email != "alice@example.com" {
		t.Fatalf("claims email = %s", claims.Email)
	}

	if _, err := svc.ValidateToken("not-a-token"); err == nil {
		t.Fatal("garbage token should not validate")
	}
}

func TestRefreshTokenRotation(t *testing.T) {
	t.Parallel()

	svc, _, _ := newAuthSvc()

	resp, err := svc.Register(context.Background(), registerReq())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	refreshed, err := svc.RefreshToken(context.Background(), resp.RefreshToken)
	if err != nil {
		t.Fatalf("RefreshToken: %v", err)
	}
	if refreshed.RefreshToken == resp.RefreshToken {
		t.Fatal("refresh token was not rotated")
	}

	// The old token was revoked by the rotation.
	if _, err := svc.RefreshToken(context.Background(), resp.RefreshToken); err == nil {
		t.Fatal("revoked refresh token should be rejected")
	}
}

func TestLogoutRevokesTokens(t *testing.T) {
	t.Parallel()

	svc, _, _ := newAuthSvc()

	resp, err := svc.Register(context.Background(), registerReq())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if err := svc.Logout(context.Background(), resp.User.ID); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	if _, err := svc.RefreshToken(context.Background(), resp.RefreshToken); err == nil {
		t.Fatal("refresh after logout should be rejected")
	}
}

func TestGetCurrentUser(t *testing.T) {
	t.Parallel()

	svc, _, _ := newAuthSvc()

	resp, err := svc.Register(context.Background(), registerReq())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	user, err := svc.GetCurrentUser(context.Background(), resp.User.ID)
	if err != nil {
		t.Fatalf("GetCurrentUser: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("email = %s", user.Email)
	}
	if user.PasswordHash != "" {
		t.Fatal("password hash leaked")
	}

	if _, err := svc.GetCurrentUser(context.Background(), uuid.New()); !errors.Is(err, entities.ErrUserNotFound) {
		t.Fatalf("missing user: got %v, want ErrUserNotFound", err)
	}
}
