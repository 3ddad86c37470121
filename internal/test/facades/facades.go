// Package facades holds facade stubs for transport layer tests.
package facades

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/usecase"
)

// SampleProduct returns catalog entry used by facade stubs.
func SampleProduct(id int64) model.Product {
	return model.Product{
		ID:          id,
		Title:       "Lamp",
		Description: "Desk lamp",
		Price:       decimal.RequireFromString("19.99"),
		Images:      []string{"lamp.jpg"},
		Category:    "lighting",
		Stock:       5,
		CreatedAt:   time.Unix(0, 0).UTC(),
	}
}

// SampleOrder returns pending order used by facade stubs.
func SampleOrder(id, userID int64) model.Order {
	return model.Order{
		ID:     id,
		UserID: userID,
		Items: []model.OrderItem{
			{ProductID: 1, Title: "Lamp", Quantity: 2, Price: decimal.RequireFromString("19.99")},
		},
		TotalPrice:      decimal.RequireFromString("39.98"),
		Status:          model.OrderStatusPending,
		ShippingAddress: model.ShippingAddress{Address: "1 Main St", City: "Tehran", PostalCode: "12345", Phone: "0912"},
		PaymentMethod:   model.PaymentMethodOnline,
		PaymentStatus:   model.PaymentStatusPending,
		CreatedAt:       time.Unix(0, 0).UTC(),
	}
}

// AuthFacadeStub simulates authentication facade interactions.
type AuthFacadeStub struct {
	RegisterFn     func(context.Context, usecase.RegisterInput) (*model.User, string, error)
	AuthenticateFn func(context.Context, string, string) (*model.User, string, error)
	ResolveFn      func(context.Context, string) (model.Principal, error)
}

// Register returns token for successful registration scenarios.
func (s AuthFacadeStub) Register(ctx context.Context, in usecase.RegisterInput) (*model.User, string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, in)
	}
	return &model.User{ID: 1, Name: in.Name, Email: in.Email, Role: model.RoleUser, IsActive: true}, "token", nil
}

// Authenticate returns token for successful authentication scenarios.
func (s AuthFacadeStub) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, email, password)
	}
	return &model.User{ID: 1, Email: email, Role: model.RoleUser, IsActive: true}, "token", nil
}

// ResolvePrincipal maps any token to a regular user unless overridden.
func (s AuthFacadeStub) ResolvePrincipal(ctx context.Context, token string) (model.Principal, error) {
	if s.ResolveFn != nil {
		return s.ResolveFn(ctx, token)
	}
	return model.Principal{UserID: 1, Role: model.RoleUser}, nil
}

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	PlaceFn    func(context.Context, model.Principal, usecase.PlaceOrderInput) (*model.Order, error)
	MyOrdersFn func(context.Context, model.Principal, int, int) (usecase.PageResult[model.Order], error)
	OrderFn    func(context.Context, model.Principal, int64) (*model.Order, error)
	OrdersFn   func(context.Context, int, int, model.OrderStatus) (usecase.PageResult[model.Order], error)
	StatusFn   func(context.Context, int64, model.OrderStatus, *string) (*model.Order, error)
	PaymentFn  func(context.Context, int64, model.PaymentStatus) (*model.Order, error)
	CancelFn   func(context.Context, model.Principal, int64) (*model.Order, error)
}

// PlaceOrder delegates to provided function or returns default order.
func (s OrderFacadeStub) PlaceOrder(ctx context.Context, principal model.Principal, in usecase.PlaceOrderInput) (*model.Order, error) {
	if s.PlaceFn != nil {
		return s.PlaceFn(ctx, principal, in)
	}
	order := SampleOrder(1, principal.UserID)
	return &order, nil
}

// MyOrders returns a single page with the default order.
func (s OrderFacadeStub) MyOrders(ctx context.Context, principal model.Principal, page, limit int) (usecase.PageResult[model.Order], error) {
	if s.MyOrdersFn != nil {
		return s.MyOrdersFn(ctx, principal, page, limit)
	}
	return usecase.PageResult[model.Order]{Items: []model.Order{SampleOrder(1, principal.UserID)}, Page: 1, Limit: 10, Pages: 1, Total: 1}, nil
}

// Order returns default order owned by principal.
func (s OrderFacadeStub) Order(ctx context.Context, principal model.Principal, id int64) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, principal, id)
	}
	order := SampleOrder(id, principal.UserID)
	return &order, nil
}

// Orders returns an empty page.
func (s OrderFacadeStub) Orders(ctx context.Context, page, limit int, status model.OrderStatus) (usecase.PageResult[model.Order], error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, page, limit, status)
	}
	return usecase.PageResult[model.Order]{Items: []model.Order{}, Page: 1, Limit: 10}, nil
}

// UpdateOrderStatus applies status to default order.
func (s OrderFacadeStub) UpdateOrderStatus(ctx context.Context, id int64, status model.OrderStatus, trackingCode *string) (*model.Order, error) {
	if s.StatusFn != nil {
		return s.StatusFn(ctx, id, status, trackingCode)
	}
	order := SampleOrder(id, 1)
	order.Status = status
	if trackingCode != nil {
		order.TrackingCode = *trackingCode
	}
	return &order, nil
}

// UpdateOrderPayment applies payment status to default order.
func (s OrderFacadeStub) UpdateOrderPayment(ctx context.Context, id int64, status model.PaymentStatus) (*model.Order, error) {
	if s.PaymentFn != nil {
		return s.PaymentFn(ctx, id, status)
	}
	order := SampleOrder(id, 1)
	order.PaymentStatus = status
	return &order, nil
}

// CancelOrder cancels default order.
func (s OrderFacadeStub) CancelOrder(ctx context.Context, principal model.Principal, id int64) (*model.Order, error) {
	if s.CancelFn != nil {
		return s.CancelFn(ctx, principal, id)
	}
	order := SampleOrder(id, principal.UserID)
	order.Status = model.OrderStatusCancelled
	return &order, nil
}

// CatalogFacadeStub simulates catalog operations.
type CatalogFacadeStub struct {
	ProductsFn    func(context.Context, usecase.ProductQuery) (usecase.PageResult[model.Product], error)
	ProductFn     func(context.Context, int64) (*model.Product, error)
	CategoriesFn  func(context.Context) ([]string, error)
	BestSellersFn func(context.Context) ([]model.Product, error)
	NewArrivalsFn func(context.Context) ([]model.Product, error)
	CreateFn      func(context.Context, usecase.ProductInput) (*model.Product, error)
	UpdateFn      func(context.Context, int64, usecase.ProductInput) (*model.Product, error)
	DeleteFn      func(context.Context, int64) error
}

// Products returns a page with the sample product.
func (s CatalogFacadeStub) Products(ctx context.Context, q usecase.ProductQuery) (usecase.PageResult[model.Product], error) {
	if s.ProductsFn != nil {
		return s.ProductsFn(ctx, q)
	}
	return usecase.PageResult[model.Product]{Items: []model.Product{SampleProduct(1)}, Page: 1, Limit: 12, Pages: 1, Total: 1}, nil
}

// Product returns the sample product with requested id.
func (s CatalogFacadeStub) Product(ctx context.Context, id int64) (*model.Product, error) {
	if s.ProductFn != nil {
		return s.ProductFn(ctx, id)
	}
	p := SampleProduct(id)
	return &p, nil
}

// Categories returns fixed category list.
func (s CatalogFacadeStub) Categories(ctx context.Context) ([]string, error) {
	if s.CategoriesFn != nil {
		return s.CategoriesFn(ctx)
	}
	return []string{"furniture", "lighting"}, nil
}

// BestSellers returns the sample product.
func (s CatalogFacadeStub) BestSellers(ctx context.Context) ([]model.Product, error) {
	if s.BestSellersFn != nil {
		return s.BestSellersFn(ctx)
	}
	return []model.Product{SampleProduct(1)}, nil
}

// NewArrivals returns the sample product.
func (s CatalogFacadeStub) NewArrivals(ctx context.Context) ([]model.Product, error) {
	if s.NewArrivalsFn != nil {
		return s.NewArrivalsFn(ctx)
	}
	return []model.Product{SampleProduct(1)}, nil
}

// CreateProduct echoes input as stored product.
func (s CatalogFacadeStub) CreateProduct(ctx context.Context, in usecase.ProductInput) (*model.Product, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, in)
	}
	return &model.Product{ID: 1, Title: in.Title, Description: in.Description, Price: in.Price, Category: in.Category, Stock: in.Stock}, nil
}

// UpdateProduct echoes input as stored product.
func (s CatalogFacadeStub) UpdateProduct(ctx context.Context, id int64, in usecase.ProductInput) (*model.Product, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, id, in)
	}
	return &model.Product{ID: id, Title: in.Title, Description: in.Description, Price: in.Price, Category: in.Category, Stock: in.Stock}, nil
}

// DeleteProduct succeeds unless overridden.
func (s CatalogFacadeStub) DeleteProduct(ctx context.Context, id int64) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	return nil
}

// AccountFacadeStub simulates profile and user administration.
type AccountFacadeStub struct {
	ProfileFn       func(context.Context, model.Principal) (*model.Profile, error)
	UpdateProfileFn func(context.Context, model.Principal, usecase.ProfileInput) (*model.User, error)
	UsersFn         func(context.Context, int, int) (usecase.PageResult[model.User], error)
	RoleFn          func(context.Context, int64, model.Role) (*model.User, error)
	ActiveFn        func(context.Context, int64, bool) (*model.User, error)
	CreateUserFn    func(context.Context, usecase.AccountInput) (*model.User, error)
	UpdateUserFn    func(context.Context, int64, usecase.ProfileInput) (*model.User, error)
	DeleteUserFn    func(context.Context, model.Principal, int64) error
	DashboardFn     func(context.Context) (*model.DashboardStats, error)
}

// Profile returns principal account with zero stats.
func (s AccountFacadeStub) Profile(ctx context.Context, principal model.Principal) (*model.Profile, error) {
	if s.ProfileFn != nil {
		return s.ProfileFn(ctx, principal)
	}
	return &model.Profile{User: model.User{ID: principal.UserID, Role: principal.Role, IsActive: true}}, nil
}

// UpdateProfile applies non-empty input fields.
func (s AccountFacadeStub) UpdateProfile(ctx context.Context, principal model.Principal, in usecase.ProfileInput) (*model.User, error) {
	if s.UpdateProfileFn != nil {
		return s.UpdateProfileFn(ctx, principal, in)
	}
	return &model.User{ID: principal.UserID, Name: in.Name, Email: in.Email, Role: principal.Role, IsActive: true}, nil
}

// Users returns an empty page.
func (s AccountFacadeStub) Users(ctx context.Context, page, limit int) (usecase.PageResult[model.User], error) {
	if s.UsersFn != nil {
		return s.UsersFn(ctx, page, limit)
	}
	return usecase.PageResult[model.User]{Items: []model.User{}, Page: 1, Limit: 10}, nil
}

// ChangeUserRole returns user holding requested role.
func (s AccountFacadeStub) ChangeUserRole(ctx context.Context, id int64, role model.Role) (*model.User, error) {
	if s.RoleFn != nil {
		return s.RoleFn(ctx, id, role)
	}
	return &model.User{ID: id, Role: role, IsActive: true}, nil
}

// ChangeUserStatus returns user with requested activity flag.
func (s AccountFacadeStub) ChangeUserStatus(ctx context.Context, id int64, active bool) (*model.User, error) {
	if s.ActiveFn != nil {
		return s.ActiveFn(ctx, id, active)
	}
	return &model.User{ID: id, Role: model.RoleUser, IsActive: active}, nil
}

// CreateUser echoes input as stored account.
func (s AccountFacadeStub) CreateUser(ctx context.Context, in usecase.AccountInput) (*model.User, error) {
	if s.CreateUserFn != nil {
		return s.CreateUserFn(ctx, in)
	}
	role := in.Role
	if role == "" {
		role = model.RoleUser
	}
	return &model.User{ID: 2, Name: in.Name, Email: in.Email, Role: role, IsActive: in.IsActive == nil || *in.IsActive}, nil
}

// UpdateUser applies non-empty input fields to user id.
func (s AccountFacadeStub) UpdateUser(ctx context.Context, id int64, in usecase.ProfileInput) (*model.User, error) {
	if s.UpdateUserFn != nil {
		return s.UpdateUserFn(ctx, id, in)
	}
	return &model.User{ID: id, Name: in.Name, Email: in.Email, Role: model.RoleUser, IsActive: true}, nil
}

// DeleteUser succeeds unless overridden.
func (s AccountFacadeStub) DeleteUser(ctx context.Context, principal model.Principal, id int64) error {
	if s.DeleteUserFn != nil {
		return s.DeleteUserFn(ctx, principal, id)
	}
	return nil
}

// Dashboard returns zero stats.
func (s AccountFacadeStub) Dashboard(ctx context.Context) (*model.DashboardStats, error) {
	if s.DashboardFn != nil {
		return s.DashboardFn(ctx)
	}
	return &model.DashboardStats{Orders: model.OrderStats{Revenue: decimal.Zero}}, nil
}

// ReviewFacadeStub simulates review operations.
type ReviewFacadeStub struct {
	CreateReviewFn   func(context.Context, model.Principal, usecase.ReviewInput) (*model.Review, error)
	ProductReviewsFn func(context.Context, int64, int, int) (usecase.PageResult[model.Review], error)
	MyReviewsFn      func(context.Context, model.Principal, int, int) (usecase.PageResult[model.Review], error)
	ReviewsFn        func(context.Context, model.ReviewStatus, int, int) (usecase.PageResult[model.Review], error)
	UpdateReviewFn   func(context.Context, model.Principal, int64, usecase.ReviewUpdate) (*model.Review, error)
	ApproveFn        func(context.Context, int64) (*model.Review, error)
	DeleteReviewFn   func(context.Context, model.Principal, int64) error
}

// CreateReview echoes input as unapproved review.
func (s ReviewFacadeStub) CreateReview(ctx context.Context, principal model.Principal, in usecase.ReviewInput) (*model.Review, error) {
	if s.CreateReviewFn != nil {
		return s.CreateReviewFn(ctx, principal, in)
	}
	return &model.Review{ID: 1, UserID: principal.UserID, ProductID: in.ProductID, Rating: in.Rating, Title: in.Title, Comment: in.Comment}, nil
}

// ProductReviews returns an empty page.
func (s ReviewFacadeStub) ProductReviews(ctx context.Context, productID int64, page, limit int) (usecase.PageResult[model.Review], error) {
	if s.ProductReviewsFn != nil {
		return s.ProductReviewsFn(ctx, productID, page, limit)
	}
	return usecase.PageResult[model.Review]{Items: []model.Review{}, Page: 1, Limit: 10}, nil
}

// MyReviews returns an empty page.
func (s ReviewFacadeStub) MyReviews(ctx context.Context, principal model.Principal, page, limit int) (usecase.PageResult[model.Review], error) {
	if s.MyReviewsFn != nil {
		return s.MyReviewsFn(ctx, principal, page, limit)
	}
	return usecase.PageResult[model.Review]{Items: []model.Review{}, Page: 1, Limit: 10}, nil
}

// Reviews returns an empty moderation page.
func (s ReviewFacadeStub) Reviews(ctx context.Context, status model.ReviewStatus, page, limit int) (usecase.PageResult[model.Review], error) {
	if s.ReviewsFn != nil {
		return s.ReviewsFn(ctx, status, page, limit)
	}
	return usecase.PageResult[model.Review]{Items: []model.Review{}, Page: 1, Limit: 20}, nil
}

// UpdateReview returns pending review of principal with applied changes.
func (s ReviewFacadeStub) UpdateReview(ctx context.Context, principal model.Principal, id int64, in usecase.ReviewUpdate) (*model.Review, error) {
	if s.UpdateReviewFn != nil {
		return s.UpdateReviewFn(ctx, principal, id, in)
	}
	return &model.Review{ID: id, UserID: principal.UserID, Rating: in.Rating, Title: in.Title, Comment: in.Comment}, nil
}

// ApproveReview returns approved review.
func (s ReviewFacadeStub) ApproveReview(ctx context.Context, id int64) (*model.Review, error) {
	if s.ApproveFn != nil {
		return s.ApproveFn(ctx, id)
	}
	return &model.Review{ID: id, Rating: 5, IsApproved: true}, nil
}

// DeleteReview succeeds unless overridden.
func (s ReviewFacadeStub) DeleteReview(ctx context.Context, principal model.Principal, id int64) error {
	if s.DeleteReviewFn != nil {
		return s.DeleteReviewFn(ctx, principal, id)
	}
	return nil
}

// LikeFacadeStub simulates like operations.
type LikeFacadeStub struct {
	ToggleFn     func(context.Context, model.Principal, int64) (usecase.LikeStatus, error)
	LikeStatusFn func(context.Context, *model.Principal, int64) (usecase.LikeStatus, error)
	MyLikesFn    func(context.Context, model.Principal, int, int) (usecase.PageResult[model.Product], error)
}

// ToggleLike reports product as liked once.
func (s LikeFacadeStub) ToggleLike(ctx context.Context, principal model.Principal, productID int64) (usecase.LikeStatus, error) {
	if s.ToggleFn != nil {
		return s.ToggleFn(ctx, principal, productID)
	}
	return usecase.LikeStatus{Liked: true, Count: 1}, nil
}

// LikeStatus reports liked only for authenticated callers.
func (s LikeFacadeStub) LikeStatus(ctx context.Context, principal *model.Principal, productID int64) (usecase.LikeStatus, error) {
	if s.LikeStatusFn != nil {
		return s.LikeStatusFn(ctx, principal, productID)
	}
	return usecase.LikeStatus{Liked: principal != nil, Count: 1}, nil
}

// MyLikes returns an empty page.
func (s LikeFacadeStub) MyLikes(ctx context.Context, principal model.Principal, page, limit int) (usecase.PageResult[model.Product], error) {
	if s.MyLikesFn != nil {
		return s.MyLikesFn(ctx, principal, page, limit)
	}
	return usecase.PageResult[model.Product]{Items: []model.Product{}, Page: 1, Limit: 10}, nil
}

// StoreFacadeStub aggregates facade dependencies for HTTP layer tests.
type StoreFacadeStub struct {
	AuthFacadeStub
	OrderFacadeStub
	CatalogFacadeStub
	AccountFacadeStub
	ReviewFacadeStub
	LikeFacadeStub
	HealthFn func(context.Context) error
}

// Health reports readiness.
func (s StoreFacadeStub) Health(ctx context.Context) error {
	if s.HealthFn != nil {
		return s.HealthFn(ctx)
	}
	return nil
}
