package service

import (
	"errors"
	"testing"

	"github.com/petmart-next/internal/config"
	"github.com/petmart-next/internal/repository"

	"gorm.io/gorm"
)

func newUserAuthTestService(t *testing.T, db *gorm.DB) *UserAuthService {
	t.Helper()
	cfg := &config.Config{}
	cfg.UserJWT.SecretKey = "test-user-secret"
	cfg.UserJWT.ExpireHours = 1
	cfg.Security.PasswordPolicy = config.PasswordPolicyConfig{
		MinLength:     8,
		RequireLetter: true,
		RequireNumber: true,
	}
	return NewUserAuthService(cfg, repository.NewUserRepository(db))
}

func TestUserRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	svc := newUserAuthTestService(t, db)

	user, token, _, err := svc.Register("Ana@Example.COM", "segura123", "")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Email != "ana@example.com" {
		t.Fatalf("email should be normalized, got %s", user.Email)
	}
	if user.DisplayName != "ana" {
		t.Fatalf("display name should fall back to email local part, got %s", user.DisplayName)
	}
	if token == "" {
		t.Fatalf("register should return a token")
	}

	logged, token, _, err := svc.Login("ana@example.com", "segura123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if logged.ID != user.ID || token == "" {
		t.Fatalf("login should return the registered user and a token")
	}

	claims, err := svc.ParseUserJWT(token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if claims.UserID != user.ID {
		t.Fatalf("claims user id want %d got %d", user.ID, claims.UserID)
	}
}

func TestUserRegisterDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := newUserAuthTestService(t, db)

	if _, _, _, err := svc.Register("dup@example.com", "segura123", ""); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	_, _, _, err := svc.Register("DUP@example.com", "segura123", "")
	if !errors.Is(err, ErrEmailExists) {
		t.Fatalf("duplicate email want ErrEmailExists got %v", err)
	}
}

func TestUserRegisterWeakPassword(t *testing.T) {
	db := newTestDB(t)
	svc := newUserAuthTestService(t, db)

	cases := []string{"corta1", "sinnumeros", "12345678"}
	for _, password := range cases {
		if _, _, _, err := svc.Register("weak@example.com", password, ""); !errors.Is(err, ErrWeakPassword) {
			t.Fatalf("password %q want ErrWeakPassword got %v", password, err)
		}
	}
}

func TestUserLoginWrongPasswordAndDisabled(t *testing.T) {
	db := newTestDB(t)
	svc := newUserAuthTestService(t, db)

	user, _, _, err := svc.Register("lu@example.com", "segura123", "Lu")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, _, _, err := svc.Login("lu@example.com", "incorrecta9"); !errors.Is(err, ErrAuthFailed) {
		t.Fatalf("wrong password want ErrAuthFailed got %v", err)
	}

	if err := db.Model(user).Update("status", "disabled").Error; err != nil {
		t.Fatalf("disable user failed: %v", err)
	}
	if _, _, _, err := svc.Login("lu@example.com", "segura123"); !errors.Is(err, ErrUserDisabled) {
		t.Fatalf("disabled user want ErrUserDisabled got %v", err)
	}
}

func TestUserChangePassword(t *testing.T) {
	db := newTestDB(t)
	svc := newUserAuthTestService(t, db)

	user, _, _, err := svc.Register("cp@example.com", "segura123", "")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if err := svc.ChangePassword(user.ID, "equivocada1", "nueva1234"); !errors.Is(err, ErrAuthFailed) {
		t.Fatalf("wrong old password want ErrAuthFailed got %v", err)
	}
	if err := svc.ChangePassword(user.ID, "segura123", "nueva1234"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}
	if _, _, _, err := svc.Login("cp@example.com", "nueva1234"); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
}
