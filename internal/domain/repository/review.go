package repository

import (
	"context"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// ReviewMutation changes a review loaded under lock. Returning an error
// leaves the stored review untouched.
type ReviewMutation func(review *model.Review) error

// ReviewRepository stores product reviews. Approve, Update and Delete refresh
// the product rating in the same transaction.
type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	GetByID(ctx context.Context, id int64) (*model.Review, error)
	List(ctx context.Context, status model.ReviewStatus) ([]model.Review, error)
	ListByProduct(ctx context.Context, productID int64, approvedOnly bool) ([]model.Review, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Review, error)
	Update(ctx context.Context, id int64, fn ReviewMutation) (*model.Review, error)
	Approve(ctx context.Context, id int64) (*model.Review, error)
	Delete(ctx context.Context, id int64) error
	CountByUser(ctx context.Context, userID int64) (int, error)
}
