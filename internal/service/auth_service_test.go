package service

import (
	"errors"
	"testing"

	"github.com/honeyfoods-shop/internal/config"
	"github.com/honeyfoods-shop/internal/models"
	"github.com/honeyfoods-shop/internal/repository"

	"gorm.io/gorm"
)

func newTestAuthService(t *testing.T, db *gorm.DB) *AuthService {
	t.Helper()
	if err := db.AutoMigrate(&models.Admin{}); err != nil {
		t.Fatalf("auto migrate admin failed: %v", err)
	}
	cfg := &config.Config{}
	cfg.JWT.SecretKey = "test-secret-key-0123456789abcdef0123456789"
	cfg.JWT.ExpireHours = 24
	return NewAuthService(cfg, repository.NewAdminRepository(db))
}

func TestAuthLoginAndJWTRoundtrip(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAuthService(t, db)

	created, err := svc.CreateAdmin("admin", "strong-password", true)
	if err != nil {
		t.Fatalf("create admin failed: %v", err)
	}

	admin, token, expiresAt, err := svc.Login("admin", "strong-password")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if admin.ID != created.ID {
		t.Fatalf("unexpected admin id: %d", admin.ID)
	}
	if token == "" || expiresAt.IsZero() {
		t.Fatalf("expected token and expiry")
	}
	if admin.LastLoginAt == nil {
		t.Fatalf("expected last_login_at to be set")
	}

	claims, err := svc.ParseJWT(token)
	if err != nil {
		t.Fatalf("parse jwt failed: %v", err)
	}
	if claims.AdminID != created.ID || claims.Username != "admin" {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	if _, _, _, err := svc.Login("admin", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got: %v", err)
	}
	if _, _, _, err := svc.Login("ghost", "strong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got: %v", err)
	}
}

func TestParseJWTRejectsForeignToken(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAuthService(t, db)

	otherCfg := &config.Config{}
	otherCfg.JWT.SecretKey = "another-secret-key-0123456789abcdef012345"
	otherCfg.JWT.ExpireHours = 24
	other := NewAuthService(otherCfg, repository.NewAdminRepository(db))

	token, _, err := other.GenerateJWT(&models.Admin{Username: "admin"})
	if err != nil {
		t.Fatalf("generate jwt failed: %v", err)
	}
	if _, err := svc.ParseJWT(token); err == nil {
		t.Fatalf("expected token signed with another secret rejected")
	}
}

func TestChangePassword(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAuthService(t, db)

	admin, err := svc.CreateAdmin("admin", "old-password", false)
	if err != nil {
		t.Fatalf("create admin failed: %v", err)
	}

	if err := svc.ChangePassword(admin.ID, "wrong", "new-password"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword, got: %v", err)
	}
	if err := svc.ChangePassword(admin.ID, "old-password", "new-password"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}
	if _, _, _, err := svc.Login("admin", "new-password"); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
}

func TestCreateAdminRejectsDuplicate(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAuthService(t, db)

	if _, err := svc.CreateAdmin("admin", "password-1", false); err != nil {
		t.Fatalf("create admin failed: %v", err)
	}
	if _, err := svc.CreateAdmin("admin", "password-2", false); !errors.Is(err, ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got: %v", err)
	}
	if _, err := svc.CreateAdmin("  ", "password", false); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for blank username, got: %v", err)
	}
}

func TestDeleteAdminGuards(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAuthService(t, db)

	first, err := svc.CreateAdmin("first", "password-1", true)
	if err != nil {
		t.Fatalf("create admin failed: %v", err)
	}

	if err := svc.DeleteAdmin(first.ID, first.ID); !errors.Is(err, ErrCannotDeleteSelf) {
		t.Fatalf("expected ErrCannotDeleteSelf, got: %v", err)
	}

	second, err := svc.CreateAdmin("second", "password-2", false)
	if err != nil {
		t.Fatalf("create admin failed: %v", err)
	}
	if err := svc.DeleteAdmin(first.ID, second.ID); err != nil {
		t.Fatalf("delete admin failed: %v", err)
	}

	// 只剩一个账号时禁止删除
	if err := svc.DeleteAdmin(second.ID, first.ID); !errors.Is(err, ErrCannotDeleteLastAdmin) {
		t.Fatalf("expected ErrCannotDeleteLastAdmin, got: %v", err)
	}
}
