package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	pkgAuth "github.com/polkiloo/storefront/internal/pkg/auth"
	testhelpers "github.com/polkiloo/storefront/internal/test"
)

func newStrategyStub() testhelpers.StrategyStub {
	return testhelpers.StrategyStub{
		IssueFn: func(userID int64) (string, error) {
			return fmt.Sprintf("token-%d", userID), nil
		},
		ParseFn: func(token string) (int64, error) {
			var id int64
			if _, err := fmt.Sscanf(token, "token-%d", &id); err != nil {
				return 0, pkgAuth.ErrInvalidToken
			}
			return id, nil
		},
	}
}

func registerInput(email string) RegisterInput {
	return RegisterInput{Name: "Alice", Email: email, Password: "password"}
}

func TestAuthUseCaseRegisterSuccess(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	uc := NewAuthUseCase(repo, testhelpers.HasherStub{}, newStrategyStub())

	ctx := context.Background()
	user, token, err := uc.Register(ctx, registerInput("  Alice@Example.com "))
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if user.ID == 0 {
		t.Fatalf("expected user to have ID assigned")
	}
	if token != "token-1" {
		t.Fatalf("unexpected token %q", token)
	}
	if user.Role != model.RoleUser || !user.IsActive {
		t.Fatalf("expected active regular user, got %+v", user)
	}
	stored, err := repo.GetByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("expected user stored under normalized email: %v", err)
	}
	if stored.PasswordHash != "hash:password" {
		t.Fatalf("password hash not stored: %v", stored.PasswordHash)
	}
}

func TestAuthUseCaseRegisterDuplicate(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	uc := NewAuthUseCase(repo, testhelpers.HasherStub{}, newStrategyStub())

	ctx := context.Background()
	if _, _, err := uc.Register(ctx, registerInput("bob@example.com")); err != nil {
		t.Fatalf("unexpected error on first register: %v", err)
	}
	if _, _, err := uc.Register(ctx, registerInput("BOB@example.com")); !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestAuthUseCaseRegisterValidation(t *testing.T) {
	uc := NewAuthUseCase(testhelpers.NewUserRepositoryStub(), testhelpers.HasherStub{}, newStrategyStub())
	cases := map[string]RegisterInput{
		"missing name":   {Email: "a@example.com", Password: "password"},
		"bad email":      {Name: "A", Email: "not-an-email", Password: "password"},
		"short password": {Name: "A", Email: "a@example.com", Password: "12345"},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			if _, _, err := uc.Register(context.Background(), in); !errors.Is(err, domainErrors.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestAuthUseCaseAuthenticate(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	uc := NewAuthUseCase(repo, testhelpers.HasherStub{}, newStrategyStub())

	ctx := context.Background()
	if _, _, err := uc.Register(ctx, registerInput("carol@example.com")); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, _, err := uc.Authenticate(ctx, "carol@example.com", "bad"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials error, got %v", err)
	}
	if _, _, err := uc.Authenticate(ctx, "nobody@example.com", "password"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for unknown email, got %v", err)
	}

	_, token, err := uc.Authenticate(ctx, "CAROL@example.com", "password")
	if err != nil {
		t.Fatalf("authenticate returned error: %v", err)
	}
	if token != "token-1" {
		t.Fatalf("unexpected token %q", token)
	}
}

func TestAuthUseCaseAuthenticateInactive(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub(model.User{ID: 3, Email: "off@example.com", PasswordHash: "hash:password"})
	uc := NewAuthUseCase(repo, testhelpers.HasherStub{}, newStrategyStub())

	if _, _, err := uc.Authenticate(context.Background(), "off@example.com", "password"); !errors.Is(err, domainErrors.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for inactive user, got %v", err)
	}
}

func TestAuthUseCaseParseToken(t *testing.T) {
	uc := NewAuthUseCase(testhelpers.NewUserRepositoryStub(), testhelpers.HasherStub{}, newStrategyStub())

	id, err := uc.ParseToken("token-42")
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if id != 42 {
		t.Fatalf("expected id 42, got %d", id)
	}

	if _, err := uc.ParseToken("bad-token"); err != pkgAuth.ErrInvalidToken {
		t.Fatalf("expected invalid token error, got %v", err)
	}

	if _, err := uc.ParseToken(""); err != pkgAuth.ErrInvalidToken {
		t.Fatalf("expected invalid token error, got %v", err)
	}
}

func TestAuthUseCaseResolvePrincipal(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub(
		model.User{ID: 1, Email: "admin@example.com", Role: model.RoleAdmin, IsActive: true},
		model.User{ID: 2, Email: "off@example.com", Role: model.RoleUser},
	)
	uc := NewAuthUseCase(repo, testhelpers.HasherStub{}, newStrategyStub())
	ctx := context.Background()

	principal, err := uc.ResolvePrincipal(ctx, "token-1")
	if err != nil {
		t.Fatalf("resolve returned error: %v", err)
	}
	if principal.UserID != 1 || !principal.IsAdmin() {
		t.Fatalf("unexpected principal %+v", principal)
	}

	for _, token := range []string{"", "garbage", "token-2", "token-99"} {
		if _, err := uc.ResolvePrincipal(ctx, token); !errors.Is(err, domainErrors.ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized for %q, got %v", token, err)
		}
	}
}

func TestAuthUseCaseRegisterHasherError(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	uc := NewAuthUseCase(repo, testhelpers.HasherStub{HashFn: func(string) (string, error) {
		return "", fmt.Errorf("hash error")
	}}, newStrategyStub())
	if _, _, err := uc.Register(context.Background(), registerInput("user@example.com")); err == nil {
		t.Fatal("expected hashing error")
	}
}

func TestAuthUseCaseRegisterRepositoryError(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	repo.Err = fmt.Errorf("db down")
	uc := NewAuthUseCase(repo, testhelpers.HasherStub{}, newStrategyStub())
	if _, _, err := uc.Register(context.Background(), registerInput("user@example.com")); err == nil {
		t.Fatal("expected repository error")
	}
}

func TestAuthUseCaseRegisterIssueTokenError(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	strategy := testhelpers.StrategyStub{IssueFn: func(int64) (string, error) {
		return "", fmt.Errorf("cannot issue token")
	}}
	uc := NewAuthUseCase(repo, testhelpers.HasherStub{}, strategy)
	if _, _, err := uc.Register(context.Background(), registerInput("user@example.com")); err == nil {
		t.Fatal("expected token issue error")
	}
}

func TestAuthUseCaseEnsureAdmin(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	ctx := context.Background()

	repo := testhelpers.NewUserRepositoryStub()
	uc := NewAuthUseCase(repo, testhelpers.HasherStub{}, newStrategyStub())
	if err := uc.EnsureAdmin(ctx, "", "", logger); err != nil {
		t.Fatalf("expected no-op without credentials, got %v", err)
	}
	if err := uc.EnsureAdmin(ctx, "Root@Example.com", "secret1", logger); err != nil {
		t.Fatalf("ensure admin failed: %v", err)
	}
	admin, err := repo.GetByEmail(ctx, "root@example.com")
	if err != nil {
		t.Fatalf("expected admin created: %v", err)
	}
	if admin.Role != model.RoleAdmin || !admin.IsActive {
		t.Fatalf("unexpected admin %+v", admin)
	}
	if err := uc.EnsureAdmin(ctx, "root@example.com", "secret1", logger); err != nil {
		t.Fatalf("second ensure must be a no-op, got %v", err)
	}
	if len(repo.Updates) != 0 {
		t.Fatalf("expected no updates for existing admin, got %d", len(repo.Updates))
	}

	promoted := testhelpers.NewUserRepositoryStub(model.User{ID: 5, Email: "boss@example.com", Role: model.RoleUser, IsActive: true})
	uc = NewAuthUseCase(promoted, testhelpers.HasherStub{}, newStrategyStub())
	if err := uc.EnsureAdmin(ctx, "boss@example.com", "whatever", logger); err != nil {
		t.Fatalf("promotion failed: %v", err)
	}
	if usr, _ := promoted.GetByID(ctx, 5); usr.Role != model.RoleAdmin {
		t.Fatalf("expected promotion to admin, got %s", usr.Role)
	}

	uc = NewAuthUseCase(testhelpers.NewUserRepositoryStub(), testhelpers.HasherStub{}, newStrategyStub())
	if err := uc.EnsureAdmin(ctx, "short@example.com", "123", logger); !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected validation error for short password, got %v", err)
	}
}
