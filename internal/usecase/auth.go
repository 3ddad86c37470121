package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
	pkgAuth "github.com/polkiloo/storefront/internal/pkg/auth"
)

const minPasswordLength = 6

// RegisterInput carries sign-up form.
type RegisterInput struct {
	Name     string `validate:"required,max=100"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
	Phone    string
	Address  string
}

// AuthUseCase handles user lifecycle and token management.
type AuthUseCase struct {
	users  repository.UserRepository
	hasher pkgAuth.PasswordHasher
	tokens pkgAuth.Strategy
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(users repository.UserRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy) *AuthUseCase {
	return &AuthUseCase{users: users, hasher: hasher, tokens: strategy}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a regular user and returns auth token.
func (u *AuthUseCase) Register(ctx context.Context, in RegisterInput) (*model.User, string, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	if err := validateStruct(in); err != nil {
		return nil, "", err
	}

	hash, err := u.hasher.Hash(in.Password)
	if err != nil {
		return nil, "", err
	}

	usr := &model.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Phone:        strings.TrimSpace(in.Phone),
		Address:      strings.TrimSpace(in.Address),
		Role:         model.RoleUser,
		IsActive:     true,
	}
	if err := u.users.Create(ctx, usr); err != nil {
		return nil, "", err
	}

	token, err := u.tokens.IssueToken(usr.ID)
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// Authenticate validates credentials and returns auth token.
func (u *AuthUseCase) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	usr, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := u.hasher.Compare(usr.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}
	if !usr.IsActive {
		return nil, "", domainErrors.ErrUnauthorized
	}

	token, err := u.tokens.IssueToken(usr.ID)
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// ParseToken extracts user ID from provided token.
func (u *AuthUseCase) ParseToken(token string) (int64, error) {
	if token == "" {
		return 0, pkgAuth.ErrInvalidToken
	}
	return u.tokens.ParseToken(token)
}

// ResolvePrincipal turns bearer token into the calling principal. Tokens of
// removed or deactivated users are rejected.
func (u *AuthUseCase) ResolvePrincipal(ctx context.Context, token string) (model.Principal, error) {
	id, err := u.ParseToken(token)
	if err != nil {
		return model.Principal{}, domainErrors.ErrUnauthorized
	}
	usr, err := u.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return model.Principal{}, domainErrors.ErrUnauthorized
		}
		return model.Principal{}, err
	}
	if !usr.IsActive {
		return model.Principal{}, domainErrors.ErrUnauthorized
	}
	return model.Principal{UserID: usr.ID, Role: usr.Role}, nil
}

// EnsureAdmin creates administrator account unless email is taken. Existing
// accounts are promoted to admin.
func (u *AuthUseCase) EnsureAdmin(ctx context.Context, email, password string, logger *slog.Logger) error {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil
	}

	existing, err := u.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.Role == model.RoleAdmin {
			return nil
		}
		role := model.RoleAdmin
		if _, err := u.users.Update(ctx, existing.ID, model.UserUpdate{Role: &role}); err != nil {
			return err
		}
		logger.Info("promoted bootstrap administrator", slog.Int64("user_id", existing.ID))
		return nil
	case !errors.Is(err, domainErrors.ErrNotFound):
		return err
	}

	if len(password) < minPasswordLength {
		return domainErrors.Validation("admin password must be at least %d characters", minPasswordLength)
	}
	hash, err := u.hasher.Hash(password)
	if err != nil {
		return err
	}
	admin := &model.User{
		Name:         "Administrator",
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
		IsActive:     true,
	}
	if err := u.users.Create(ctx, admin); err != nil {
		return err
	}
	logger.Info("created bootstrap administrator", slog.Int64("user_id", admin.ID))
	return nil
}
