package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-api/internal/auth"
	"github.com/spec-kit/helpdesk-api/internal/config"
	"github.com/spec-kit/helpdesk-api/internal/domain"
	apperrors "github.com/spec-kit/helpdesk-api/pkg/util"
)

func newTestAuthService(users *mockUserRepo) *AuthService {
	cfg := config.Config{}
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.AccessTokenTTLMinutes = 60
	cfg.Auth.BcryptCost = 4
	return NewAuthService(cfg, users)
}

func TestRegisterDefaultsToEndUser(t *testing.T) {
	var created *domain.User
	users := &mockUserRepo{
		createFn: func(ctx context.Context, user *domain.User) error {
			created = user
			return nil
		},
	}
	svc := newTestAuthService(users)

	user, token, _, err := svc.Register(context.Background(), "Ada", "Ada@Example.com", "secret", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Role != domain.RoleEndUser {
		t.Fatalf("expected default role end_user, got %s", user.Role)
	}
	if user.Email != "ada@example.com" {
		t.Fatalf("expected lowercased email, got %s", user.Email)
	}
	if !user.IsActive {
		t.Fatal("expected new accounts to be active")
	}
	if token == "" {
		t.Fatal("expected a token")
	}
	if created == nil {
		t.Fatal("user was not persisted")
	}
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	svc := newTestAuthService(&mockUserRepo{})

	_, _, _, err := svc.Register(context.Background(), "Ada", "ada@example.com", "secret", "superuser")
	if err == nil {
		t.Fatal("expected validation error")
	}
	if code := apperrors.ToDomainError(err).Code; code != "VALIDATION_FAILED" {
		t.Fatalf("expected VALIDATION_FAILED, got %s", code)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := &mockUserRepo{
		getByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
			return &domain.User{ID: "u1", Email: email}, nil
		},
	}
	svc := newTestAuthService(users)

	_, _, _, err := svc.Register(context.Background(), "Ada", "ada@example.com", "secret", "")
	if err == nil {
		t.Fatal("expected conflict")
	}
	if code := apperrors.ToDomainError(err).Code; code != "CONFLICT" {
		t.Fatalf("expected CONFLICT, got %s", code)
	}
}

func TestLogin(t *testing.T) {
	hash, err := auth.HashPassword("secret", 4)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	account := &domain.User{ID: "u1", Email: "ada@example.com", PasswordHash: hash, Role: domain.RoleEndUser, IsActive: true}
	users := &mockUserRepo{
		getByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
			if email == account.Email {
				return account, nil
			}
			return nil, pgx.ErrNoRows
		},
	}
	svc := newTestAuthService(users)

	if _, token, _, err := svc.Login(context.Background(), "Ada@Example.com ", "secret"); err != nil {
		t.Fatalf("expected successful login, got %v", err)
	} else if token == "" {
		t.Fatal("expected a token")
	}

	if _, _, _, err := svc.Login(context.Background(), "ada@example.com", "wrong"); err == nil {
		t.Fatal("expected unauthorized for wrong password")
	} else if code := apperrors.ToDomainError(err).Code; code != "UNAUTHORIZED" {
		t.Fatalf("expected UNAUTHORIZED, got %s", code)
	}

	if _, _, _, err := svc.Login(context.Background(), "nobody@example.com", "secret"); err == nil {
		t.Fatal("expected unauthorized for unknown email")
	}

	account.IsActive = false
	if _, _, _, err := svc.Login(context.Background(), "ada@example.com", "secret"); err == nil {
		t.Fatal("expected unauthorized for deactivated account")
	} else if msg := apperrors.ToDomainError(err).Message; msg != "account deactivated" {
		t.Fatalf("expected deactivation message, got %q", msg)
	}
}
