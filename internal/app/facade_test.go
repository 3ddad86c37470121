package app

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/storage/memory"
	testhelpers "github.com/polkiloo/storefront/internal/test"
	"github.com/polkiloo/storefront/internal/usecase"
)

type healthStub struct{ err error }

func (h healthStub) HealthCheck(context.Context) error { return h.err }

func newFacade(t *testing.T, health HealthChecker) (*StoreFacade, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	paging := usecase.Pagination{DefaultLimit: 10, MaxLimit: 100}
	hasher := testhelpers.HasherStub{}
	strategy := testhelpers.StrategyStub{ParseFn: func(string) (int64, error) { return 1, nil }}

	facade := NewStoreFacade(FacadeParams{
		Auth:     usecase.NewAuthUseCase(store.Users(), hasher, strategy),
		Users:    usecase.NewUserUseCase(store.Users(), store.Products(), store.Orders(), store.Reviews(), store.Likes(), hasher, paging),
		Orders:   usecase.NewOrderUseCase(usecase.OrderUseCaseParams{Orders: store.Orders(), Products: store.Products(), Paging: paging}),
		Products: usecase.NewProductUseCase(store.Products(), paging),
		Reviews:  usecase.NewReviewUseCase(store.Reviews(), store.Products(), paging),
		Likes:    usecase.NewLikeUseCase(store.Likes(), store.Products(), paging),
		Health:   health,
	})
	return facade, store
}

func TestStoreFacadeCheckoutFlow(t *testing.T) {
	ctx := context.Background()
	facade, _ := newFacade(t, healthStub{})

	user, token, err := facade.Register(ctx, usecase.RegisterInput{Name: "Sara", Email: "sara@shop.io", Password: "secret1"})
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if token != "token" {
		t.Fatalf("unexpected token %q", token)
	}

	principal, err := facade.ResolvePrincipal(ctx, token)
	if err != nil {
		t.Fatalf("resolve returned error: %v", err)
	}
	if principal.UserID != user.ID || principal.IsAdmin() {
		t.Fatalf("unexpected principal %+v", principal)
	}

	lamp, err := facade.CreateProduct(ctx, usecase.ProductInput{
		Title:       "Lamp",
		Description: "Desk lamp",
		Price:       decimal.RequireFromString("40"),
		Images:      []string{"lamp.jpg"},
		Category:    "lighting",
		Stock:       3,
	})
	if err != nil {
		t.Fatalf("create product returned error: %v", err)
	}

	order, err := facade.PlaceOrder(ctx, principal, usecase.PlaceOrderInput{
		Items:           []usecase.CartLine{{ProductID: lamp.ID, Quantity: 2}},
		ShippingAddress: model.ShippingAddress{Address: "1 Main St", City: "Tehran", PostalCode: "12345", Phone: "0912"},
	})
	if err != nil {
		t.Fatalf("place order returned error: %v", err)
	}
	if !order.TotalPrice.Equal(decimal.RequireFromString("80")) {
		t.Fatalf("expected total 80, got %s", order.TotalPrice)
	}

	stored, err := facade.Product(ctx, lamp.ID)
	if err != nil {
		t.Fatalf("product returned error: %v", err)
	}
	if stored.Stock != 1 || stored.SalesCount != 2 {
		t.Fatalf("expected stock 1 and sales 2, got %d/%d", stored.Stock, stored.SalesCount)
	}

	mine, err := facade.MyOrders(ctx, principal, 1, 10)
	if err != nil || mine.Total != 1 {
		t.Fatalf("unexpected my orders: %+v err=%v", mine, err)
	}

	if _, err := facade.UpdateOrderStatus(ctx, order.ID, model.OrderStatusDelivered, nil); err != nil {
		t.Fatalf("status update returned error: %v", err)
	}
	if _, err := facade.CancelOrder(ctx, principal, order.ID); !errors.Is(err, domainErrors.ErrOrderDelivered) {
		t.Fatalf("expected ErrOrderDelivered, got %v", err)
	}
	paid, err := facade.UpdateOrderPayment(ctx, order.ID, model.PaymentStatusCompleted)
	if err != nil || !paid.IsPaid() {
		t.Fatalf("expected paid order, got %+v err=%v", paid, err)
	}

	stats, err := facade.Dashboard(ctx)
	if err != nil {
		t.Fatalf("dashboard returned error: %v", err)
	}
	if stats.TotalUsers != 1 || stats.TotalProducts != 1 || stats.Orders.Count != 1 {
		t.Fatalf("unexpected dashboard %+v", stats)
	}
}

func TestStoreFacadeReviewsAndLikes(t *testing.T) {
	ctx := context.Background()
	facade, _ := newFacade(t, healthStub{})

	user, _, err := facade.Register(ctx, usecase.RegisterInput{Name: "Ali", Email: "ali@shop.io", Password: "secret1"})
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	principal := model.Principal{UserID: user.ID, Role: model.RoleUser}

	chair, err := facade.CreateProduct(ctx, usecase.ProductInput{
		Title:       "Chair",
		Description: "Oak chair",
		Price:       decimal.RequireFromString("25.5"),
		Images:      []string{"chair.jpg"},
		Category:    "furniture",
		Stock:       1,
	})
	if err != nil {
		t.Fatalf("create product returned error: %v", err)
	}

	review, err := facade.CreateReview(ctx, principal, usecase.ReviewInput{ProductID: chair.ID, Rating: 4, Comment: "Solid"})
	if err != nil {
		t.Fatalf("create review returned error: %v", err)
	}
	if _, err := facade.ApproveReview(ctx, review.ID); err != nil {
		t.Fatalf("approve returned error: %v", err)
	}
	approved, err := facade.ProductReviews(ctx, chair.ID, 1, 10)
	if err != nil || approved.Total != 1 {
		t.Fatalf("unexpected approved reviews %+v err=%v", approved, err)
	}
	rated, _ := facade.Product(ctx, chair.ID)
	if rated.Rating.Rate != 4 || rated.Rating.Count != 1 {
		t.Fatalf("expected rating 4/1, got %+v", rated.Rating)
	}

	status, err := facade.ToggleLike(ctx, principal, chair.ID)
	if err != nil || !status.Liked || status.Count != 1 {
		t.Fatalf("unexpected like status %+v err=%v", status, err)
	}
	public, err := facade.LikeStatus(ctx, nil, chair.ID)
	if err != nil || public.Liked || public.Count != 1 {
		t.Fatalf("unexpected public like status %+v err=%v", public, err)
	}
	liked, err := facade.MyLikes(ctx, principal, 1, 10)
	if err != nil || len(liked.Items) != 1 {
		t.Fatalf("unexpected liked products %+v err=%v", liked, err)
	}

	profile, err := facade.Profile(ctx, principal)
	if err != nil {
		t.Fatalf("profile returned error: %v", err)
	}
	if profile.Stats.ReviewsCount != 1 || profile.Stats.LikesCount != 1 {
		t.Fatalf("unexpected stats %+v", profile.Stats)
	}

	if err := facade.DeleteReview(ctx, principal, review.ID); err != nil {
		t.Fatalf("delete review returned error: %v", err)
	}
	mine, err := facade.MyReviews(ctx, principal, 1, 10)
	if err != nil || mine.Total != 0 {
		t.Fatalf("expected no reviews left, got %+v err=%v", mine, err)
	}
}

func TestStoreFacadeModeration(t *testing.T) {
	ctx := context.Background()
	facade, _ := newFacade(t, healthStub{})

	root, err := facade.CreateUser(ctx, usecase.AccountInput{Name: "Root", Email: "root@shop.io", Password: "secret1", Role: model.RoleAdmin})
	if err != nil || root.Role != model.RoleAdmin {
		t.Fatalf("create admin returned %+v err=%v", root, err)
	}
	staff := model.Principal{UserID: root.ID, Role: model.RoleAdmin}
	user, err := facade.CreateUser(ctx, usecase.AccountInput{Name: "Mia", Email: "mia@shop.io", Password: "secret1"})
	if err != nil || user.Role != model.RoleUser || !user.IsActive {
		t.Fatalf("create user returned %+v err=%v", user, err)
	}
	principal := model.Principal{UserID: user.ID, Role: model.RoleUser}

	lamp, err := facade.CreateProduct(ctx, usecase.ProductInput{
		Title:       "Lamp",
		Description: "Desk lamp",
		Price:       decimal.RequireFromString("12"),
		Images:      []string{"lamp.jpg"},
		Category:    "lighting",
		Stock:       3,
	})
	if err != nil {
		t.Fatalf("create product returned error: %v", err)
	}
	review, err := facade.CreateReview(ctx, principal, usecase.ReviewInput{ProductID: lamp.ID, Rating: 2, Comment: "Dim"})
	if err != nil {
		t.Fatalf("create review returned error: %v", err)
	}
	edited, err := facade.UpdateReview(ctx, principal, review.ID, usecase.ReviewUpdate{Rating: 5, Comment: "Bright after all"})
	if err != nil || edited.Rating != 5 {
		t.Fatalf("update review returned %+v err=%v", edited, err)
	}

	pending, err := facade.Reviews(ctx, model.ReviewStatusPending, 1, 0)
	if err != nil || pending.Total != 1 || pending.Items[0].Comment != "Bright after all" {
		t.Fatalf("unexpected pending reviews %+v err=%v", pending, err)
	}
	if _, err := facade.ApproveReview(ctx, review.ID); err != nil {
		t.Fatalf("approve returned error: %v", err)
	}
	if _, err := facade.UpdateReview(ctx, principal, review.ID, usecase.ReviewUpdate{Rating: 1}); !errors.Is(err, domainErrors.ErrReviewApproved) {
		t.Fatalf("expected ErrReviewApproved, got %v", err)
	}

	renamed, err := facade.UpdateUser(ctx, user.ID, usecase.ProfileInput{Name: "Mila"})
	if err != nil || renamed.Name != "Mila" {
		t.Fatalf("update user returned %+v err=%v", renamed, err)
	}
	if err := facade.DeleteUser(ctx, staff, root.ID); !errors.Is(err, domainErrors.ErrSelfDelete) {
		t.Fatalf("expected ErrSelfDelete, got %v", err)
	}
	if err := facade.DeleteUser(ctx, staff, user.ID); err != nil {
		t.Fatalf("delete user returned error: %v", err)
	}
	rated, _ := facade.Product(ctx, lamp.ID)
	if rated.Rating.Count != 0 {
		t.Fatalf("reviews of deleted user must go, got %+v", rated.Rating)
	}
	left, err := facade.Reviews(ctx, model.ReviewStatusAny, 1, 10)
	if err != nil || left.Total != 0 {
		t.Fatalf("expected no reviews left, got %+v err=%v", left, err)
	}
}

func TestStoreFacadeHealth(t *testing.T) {
	facade, _ := newFacade(t, healthStub{err: errors.New("down")})
	if err := facade.Health(context.Background()); err == nil {
		t.Fatal("expected health error")
	}
}
