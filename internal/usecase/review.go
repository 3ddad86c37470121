package usecase

import (
	"context"
	"strings"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

// ReviewInput is a new product review.
type ReviewInput struct {
	ProductID int64  `validate:"required"`
	Rating    int    `validate:"gte=1,lte=5"`
	Title     string `validate:"max=100"`
	Comment   string `validate:"required,max=1000"`
}

// ReviewUpdate carries owner changes to a review. Zero values keep current ones.
type ReviewUpdate struct {
	Rating  int    `validate:"omitempty,gte=1,lte=5"`
	Title   string `validate:"max=100"`
	Comment string `validate:"max=1000"`
}

const moderationPageSize = 20

// ReviewUseCase handles review submission and moderation.
type ReviewUseCase struct {
	reviews  repository.ReviewRepository
	products repository.ProductRepository
	paging   Pagination
}

// NewReviewUseCase constructs ReviewUseCase.
func NewReviewUseCase(reviews repository.ReviewRepository, products repository.ProductRepository, paging Pagination) *ReviewUseCase {
	return &ReviewUseCase{reviews: reviews, products: products, paging: paging}
}

// Create stores unapproved review of existing product. A user reviews a product once.
func (u *ReviewUseCase) Create(ctx context.Context, principal model.Principal, in ReviewInput) (*model.Review, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Comment = strings.TrimSpace(in.Comment)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if _, err := u.products.GetByID(ctx, in.ProductID); err != nil {
		return nil, err
	}

	review := &model.Review{
		UserID:    principal.UserID,
		ProductID: in.ProductID,
		Rating:    in.Rating,
		Title:     in.Title,
		Comment:   in.Comment,
	}
	if err := u.reviews.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// ProductReviews lists approved reviews of product.
func (u *ReviewUseCase) ProductReviews(ctx context.Context, productID int64, page, limit int) (PageResult[model.Review], error) {
	reviews, err := u.reviews.ListByProduct(ctx, productID, true)
	if err != nil {
		return PageResult[model.Review]{}, err
	}
	return paginate(reviews, u.paging.Page(page, limit)), nil
}

// MyReviews lists reviews written by principal.
func (u *ReviewUseCase) MyReviews(ctx context.Context, principal model.Principal, page, limit int) (PageResult[model.Review], error) {
	reviews, err := u.reviews.ListByUser(ctx, principal.UserID)
	if err != nil {
		return PageResult[model.Review]{}, err
	}
	return paginate(reviews, u.paging.Page(page, limit)), nil
}

// List returns reviews in moderation status, newest first, for administrators.
func (u *ReviewUseCase) List(ctx context.Context, status model.ReviewStatus, page, limit int) (PageResult[model.Review], error) {
	if !status.Valid() {
		return PageResult[model.Review]{}, domainErrors.ErrInvalidReviewStatus
	}
	reviews, err := u.reviews.List(ctx, status)
	if err != nil {
		return PageResult[model.Review]{}, err
	}
	return paginate(reviews, u.paging.withDefault(moderationPageSize).Page(page, limit)), nil
}

// Update edits review of principal while it awaits moderation.
func (u *ReviewUseCase) Update(ctx context.Context, principal model.Principal, id int64, in ReviewUpdate) (*model.Review, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Comment = strings.TrimSpace(in.Comment)
	return u.reviews.Update(ctx, id, func(review *model.Review) error {
		if review.UserID != principal.UserID {
			return domainErrors.ErrForbidden
		}
		if review.IsApproved {
			return domainErrors.ErrReviewApproved
		}
		if err := validateStruct(in); err != nil {
			return err
		}
		if in.Rating != 0 {
			review.Rating = in.Rating
		}
		if in.Title != "" {
			review.Title = in.Title
		}
		if in.Comment != "" {
			review.Comment = in.Comment
		}
		return nil
	})
}

// Approve publishes review and refreshes product rating.
func (u *ReviewUseCase) Approve(ctx context.Context, id int64) (*model.Review, error) {
	return u.reviews.Approve(ctx, id)
}

// Delete removes review owned by principal, or any review for administrators.
func (u *ReviewUseCase) Delete(ctx context.Context, principal model.Principal, id int64) error {
	review, err := u.reviews.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !principal.CanAccess(review.UserID) {
		return domainErrors.ErrForbidden
	}
	return u.reviews.Delete(ctx, id)
}

// paginate cuts page out of fully loaded listing.
func paginate[T any](items []T, page model.Page) PageResult[T] {
	total := len(items)
	start := page.Offset()
	if start < 0 || start > total {
		start = total
	}
	end := total
	if page.Limit < end-start {
		end = start + page.Limit
	}
	return newPageResult(items[start:end], page, total)
}
