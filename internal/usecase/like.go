package usecase

import (
	"context"

	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

// LikeStatus reports like counter of product and whether caller likes it.
type LikeStatus struct {
	Liked bool
	Count int
}

// LikeUseCase manages product likes.
type LikeUseCase struct {
	likes    repository.LikeRepository
	products repository.ProductRepository
	paging   Pagination
}

// NewLikeUseCase constructs LikeUseCase.
func NewLikeUseCase(likes repository.LikeRepository, products repository.ProductRepository, paging Pagination) *LikeUseCase {
	return &LikeUseCase{likes: likes, products: products, paging: paging}
}

// Toggle likes product or removes existing like.
func (u *LikeUseCase) Toggle(ctx context.Context, principal model.Principal, productID int64) (LikeStatus, error) {
	if _, err := u.products.GetByID(ctx, productID); err != nil {
		return LikeStatus{}, err
	}
	liked, err := u.likes.Toggle(ctx, principal.UserID, productID)
	if err != nil {
		return LikeStatus{}, err
	}
	count, err := u.likes.Count(ctx, productID)
	if err != nil {
		return LikeStatus{}, err
	}
	return LikeStatus{Liked: liked, Count: count}, nil
}

// Status returns like counter. Liked is filled only for known principal.
func (u *LikeUseCase) Status(ctx context.Context, principal *model.Principal, productID int64) (LikeStatus, error) {
	count, err := u.likes.Count(ctx, productID)
	if err != nil {
		return LikeStatus{}, err
	}
	status := LikeStatus{Count: count}
	if principal != nil {
		status.Liked, err = u.likes.Exists(ctx, principal.UserID, productID)
		if err != nil {
			return LikeStatus{}, err
		}
	}
	return status, nil
}

// MyLikes lists products liked by principal, most recent like first.
func (u *LikeUseCase) MyLikes(ctx context.Context, principal model.Principal, page, limit int) (PageResult[model.Product], error) {
	products, err := u.likes.ListProductsByUser(ctx, principal.UserID)
	if err != nil {
		return PageResult[model.Product]{}, err
	}
	return paginate(products, u.paging.Page(page, limit)), nil
}
