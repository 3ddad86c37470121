package repository

import (
	"context"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// UserRepository describes persistence operations for users. Delete removes
// the user's reviews and likes and refuses users that placed orders.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	Update(ctx context.Context, id int64, update model.UserUpdate) (*model.User, error)
	List(ctx context.Context, page model.Page) ([]model.User, int, error)
	Count(ctx context.Context) (int, error)
	Delete(ctx context.Context, id int64) error
}
