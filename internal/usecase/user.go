package usecase

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
	pkgAuth "github.com/polkiloo/storefront/internal/pkg/auth"
)

// ProfileInput carries partial profile changes. Empty strings keep current values.
type ProfileInput struct {
	Name     string `validate:"omitempty,max=100"`
	Email    string `validate:"omitempty,email"`
	Phone    string
	Address  string
	Password string `validate:"omitempty,min=6"`
}

// AccountInput is an account created by an administrator. Empty role means
// user and nil IsActive means active.
type AccountInput struct {
	Name     string `validate:"required,max=100"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
	Phone    string
	Address  string
	Role     model.Role
	IsActive *bool
}

// UserUseCase serves profile and account administration.
type UserUseCase struct {
	users    repository.UserRepository
	products repository.ProductRepository
	orders   repository.OrderRepository
	reviews  repository.ReviewRepository
	likes    repository.LikeRepository
	hasher   pkgAuth.PasswordHasher
	paging   Pagination
}

// NewUserUseCase constructs UserUseCase.
func NewUserUseCase(
	users repository.UserRepository,
	products repository.ProductRepository,
	orders repository.OrderRepository,
	reviews repository.ReviewRepository,
	likes repository.LikeRepository,
	hasher pkgAuth.PasswordHasher,
	paging Pagination,
) *UserUseCase {
	return &UserUseCase{
		users:    users,
		products: products,
		orders:   orders,
		reviews:  reviews,
		likes:    likes,
		hasher:   hasher,
		paging:   paging,
	}
}

// Profile returns principal account with activity counters gathered concurrently.
func (u *UserUseCase) Profile(ctx context.Context, principal model.Principal) (*model.Profile, error) {
	usr, err := u.users.GetByID(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}

	var stats model.UserStats
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.OrdersCount, err = u.orders.CountByUser(gctx, usr.ID)
		return err
	})
	g.Go(func() (err error) {
		stats.ReviewsCount, err = u.reviews.CountByUser(gctx, usr.ID)
		return err
	})
	g.Go(func() (err error) {
		stats.LikesCount, err = u.likes.CountByUser(gctx, usr.ID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &model.Profile{User: *usr, Stats: stats}, nil
}

// UpdateProfile applies non-empty fields to principal account.
func (u *UserUseCase) UpdateProfile(ctx context.Context, principal model.Principal, in ProfileInput) (*model.User, error) {
	return u.update(ctx, principal.UserID, in)
}

// Update applies non-empty fields to any account on behalf of an administrator.
func (u *UserUseCase) Update(ctx context.Context, id int64, in ProfileInput) (*model.User, error) {
	return u.update(ctx, id, in)
}

func (u *UserUseCase) update(ctx context.Context, id int64, in ProfileInput) (*model.User, error) {
	in.Email = normalizeEmail(in.Email)
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	var update model.UserUpdate
	if v := strings.TrimSpace(in.Name); v != "" {
		update.Name = &v
	}
	if in.Email != "" {
		update.Email = &in.Email
	}
	if v := strings.TrimSpace(in.Phone); v != "" {
		update.Phone = &v
	}
	if v := strings.TrimSpace(in.Address); v != "" {
		update.Address = &v
	}
	if in.Password != "" {
		hash, err := u.hasher.Hash(in.Password)
		if err != nil {
			return nil, err
		}
		update.PasswordHash = &hash
	}

	return u.users.Update(ctx, id, update)
}

// Create registers account with chosen role and status.
func (u *UserUseCase) Create(ctx context.Context, in AccountInput) (*model.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if in.Role == "" {
		in.Role = model.RoleUser
	}
	if !in.Role.Valid() {
		return nil, domainErrors.ErrInvalidRole
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}

	hash, err := u.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Phone:        strings.TrimSpace(in.Phone),
		Address:      strings.TrimSpace(in.Address),
		Role:         in.Role,
		IsActive:     active,
	}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes account together with its reviews and likes. Accounts with
// orders are kept, and administrators cannot delete themselves.
func (u *UserUseCase) Delete(ctx context.Context, principal model.Principal, id int64) error {
	if principal.UserID == id {
		return domainErrors.ErrSelfDelete
	}
	return u.users.Delete(ctx, id)
}

// List returns accounts page for administrators.
func (u *UserUseCase) List(ctx context.Context, page, limit int) (PageResult[model.User], error) {
	p := u.paging.Page(page, limit)
	users, total, err := u.users.List(ctx, p)
	if err != nil {
		return PageResult[model.User]{}, err
	}
	return newPageResult(users, p, total), nil
}

// ChangeRole assigns role to user.
func (u *UserUseCase) ChangeRole(ctx context.Context, id int64, role model.Role) (*model.User, error) {
	if !role.Valid() {
		return nil, domainErrors.ErrInvalidRole
	}
	return u.users.Update(ctx, id, model.UserUpdate{Role: &role})
}

// ChangeStatus activates or deactivates user. Deactivated users cannot sign in.
func (u *UserUseCase) ChangeStatus(ctx context.Context, id int64, active bool) (*model.User, error) {
	return u.users.Update(ctx, id, model.UserUpdate{IsActive: &active})
}

// Dashboard gathers store-wide totals concurrently.
func (u *UserUseCase) Dashboard(ctx context.Context) (*model.DashboardStats, error) {
	var stats model.DashboardStats
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.TotalUsers, err = u.users.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalProducts, err = u.products.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.Orders, err = u.orders.Stats(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &stats, nil
}
