package usecase

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	testhelpers "github.com/polkiloo/storefront/internal/test"
)

func TestReviewUseCaseCreate(t *testing.T) {
	reviews := &testhelpers.ReviewRepositoryStub{}
	uc := NewReviewUseCase(reviews, catalog(), Pagination{DefaultLimit: 10})
	ctx := context.Background()

	review, err := uc.Create(ctx, buyer, ReviewInput{ProductID: 1, Rating: 5, Title: " Great ", Comment: "Bright lamp"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if review.UserID != buyer.UserID || review.IsApproved || review.Title != "Great" {
		t.Fatalf("unexpected review %+v", review)
	}

	if _, err := uc.Create(ctx, buyer, ReviewInput{ProductID: 1, Rating: 4, Comment: "Again"}); !errors.Is(err, domainErrors.ErrAlreadyReviewed) {
		t.Fatalf("expected ErrAlreadyReviewed, got %v", err)
	}
	if _, err := uc.Create(ctx, buyer, ReviewInput{ProductID: 404, Rating: 4, Comment: "Missing"}); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	for _, rating := range []int{0, 6} {
		if _, err := uc.Create(ctx, stranger, ReviewInput{ProductID: 1, Rating: rating, Comment: "x"}); !errors.Is(err, domainErrors.ErrValidation) {
			t.Fatalf("expected validation error for rating %d, got %v", rating, err)
		}
	}
}

func TestReviewUseCaseListings(t *testing.T) {
	reviews := &testhelpers.ReviewRepositoryStub{Reviews: []model.Review{
		{ID: 1, UserID: 7, ProductID: 1, IsApproved: true},
		{ID: 2, UserID: 8, ProductID: 1},
		{ID: 3, UserID: 7, ProductID: 2, IsApproved: true},
	}}
	uc := NewReviewUseCase(reviews, catalog(), Pagination{DefaultLimit: 10})
	ctx := context.Background()

	page, err := uc.ProductReviews(ctx, 1, 1, 10)
	if err != nil {
		t.Fatalf("product reviews failed: %v", err)
	}
	if page.Total != 1 || page.Items[0].ID != 1 {
		t.Fatalf("expected only approved review, got %+v", page)
	}

	mine, err := uc.MyReviews(ctx, buyer, 1, 1)
	if err != nil {
		t.Fatalf("my reviews failed: %v", err)
	}
	if mine.Total != 2 || len(mine.Items) != 1 || mine.Pages != 2 {
		t.Fatalf("unexpected page %+v", mine)
	}

	reviews.Err = errors.New("db down")
	if _, err := uc.ProductReviews(ctx, 1, 1, 10); err == nil {
		t.Fatal("expected error")
	}
}

func TestReviewUseCaseModeration(t *testing.T) {
	reviews := &testhelpers.ReviewRepositoryStub{Reviews: []model.Review{{ID: 1, UserID: 7, ProductID: 1}}}
	uc := NewReviewUseCase(reviews, catalog(), Pagination{})
	ctx := context.Background()

	approved, err := uc.Approve(ctx, 1)
	if err != nil || !approved.IsApproved {
		t.Fatalf("approve failed: %v %+v", err, approved)
	}

	if err := uc.Delete(ctx, stranger, 1); !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := uc.Delete(ctx, admin, 1); err != nil {
		t.Fatalf("admin delete failed: %v", err)
	}
	if err := uc.Delete(ctx, admin, 9); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(reviews.Deleted) != 1 || reviews.Deleted[0] != 1 {
		t.Fatalf("unexpected deletions %v", reviews.Deleted)
	}
}

func TestReviewUseCaseUpdate(t *testing.T) {
	reviews := &testhelpers.ReviewRepositoryStub{Reviews: []model.Review{
		{ID: 1, UserID: 7, ProductID: 1, Rating: 3, Title: "Fine", Comment: "Works"},
		{ID: 2, UserID: 7, ProductID: 2, Rating: 5, Comment: "Live", IsApproved: true},
	}}
	uc := NewReviewUseCase(reviews, catalog(), Pagination{})
	ctx := context.Background()

	review, err := uc.Update(ctx, buyer, 1, ReviewUpdate{Rating: 4, Comment: " Works well "})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if review.Rating != 4 || review.Title != "Fine" || review.Comment != "Works well" {
		t.Fatalf("unexpected review %+v", review)
	}

	cases := map[string]struct {
		principal model.Principal
		id        int64
		in        ReviewUpdate
		want      error
	}{
		"missing":  {principal: buyer, id: 404, in: ReviewUpdate{Rating: 2}, want: domainErrors.ErrNotFound},
		"stranger": {principal: stranger, id: 1, in: ReviewUpdate{Rating: 2}, want: domainErrors.ErrForbidden},
		"admin":    {principal: admin, id: 1, in: ReviewUpdate{Rating: 2}, want: domainErrors.ErrForbidden},
		"approved": {principal: buyer, id: 2, in: ReviewUpdate{Rating: 2}, want: domainErrors.ErrReviewApproved},
		"rating":   {principal: buyer, id: 1, in: ReviewUpdate{Rating: 6}, want: domainErrors.ErrValidation},
		"negative": {principal: buyer, id: 1, in: ReviewUpdate{Rating: -1}, want: domainErrors.ErrValidation},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := uc.Update(ctx, tc.principal, tc.id, tc.in); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	stored, _ := reviews.GetByID(ctx, 1)
	if stored.Rating != 4 {
		t.Fatalf("rejected updates must not change review, got %+v", stored)
	}
}

func TestReviewUseCaseModerationList(t *testing.T) {
	reviews := &testhelpers.ReviewRepositoryStub{Reviews: []model.Review{
		{ID: 1, UserID: 7, ProductID: 1},
		{ID: 2, UserID: 8, ProductID: 1, IsApproved: true},
		{ID: 3, UserID: 7, ProductID: 2},
	}}
	uc := NewReviewUseCase(reviews, catalog(), Pagination{DefaultLimit: 10, MaxLimit: 100})
	ctx := context.Background()

	pending, err := uc.List(ctx, model.ReviewStatusPending, 1, 0)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if pending.Total != 2 || pending.Limit != moderationPageSize {
		t.Fatalf("unexpected pending page %+v", pending)
	}

	approved, err := uc.List(ctx, model.ReviewStatusApproved, 1, 0)
	if err != nil || approved.Total != 1 || approved.Items[0].ID != 2 {
		t.Fatalf("unexpected approved page %+v %v", approved, err)
	}

	all, err := uc.List(ctx, model.ReviewStatusAny, 2, 2)
	if err != nil || all.Total != 3 || len(all.Items) != 1 {
		t.Fatalf("unexpected page %+v %v", all, err)
	}

	if _, err := uc.List(ctx, "hidden", 1, 10); !errors.Is(err, domainErrors.ErrInvalidReviewStatus) {
		t.Fatalf("expected ErrInvalidReviewStatus, got %v", err)
	}
	reviews.Err = errors.New("db down")
	if _, err := uc.List(ctx, model.ReviewStatusAny, 1, 10); err == nil {
		t.Fatal("expected error")
	}
}
