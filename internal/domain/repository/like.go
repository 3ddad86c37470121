package repository

import (
	"context"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// LikeRepository stores product likes.
type LikeRepository interface {
	// Toggle adds like when absent and removes it otherwise. It reports whether product is liked afterwards.
	Toggle(ctx context.Context, userID, productID int64) (bool, error)
	Exists(ctx context.Context, userID, productID int64) (bool, error)
	Count(ctx context.Context, productID int64) (int, error)
	ListProductsByUser(ctx context.Context, userID int64) ([]model.Product, error)
	CountByUser(ctx context.Context, userID int64) (int, error)
}
