package handlers

import (
	"context"

	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, in usecase.RegisterInput) (*model.User, string, error)
	Authenticate(ctx context.Context, email, password string) (*model.User, string, error)
	ResolvePrincipal(ctx context.Context, token string) (model.Principal, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	PlaceOrder(ctx context.Context, principal model.Principal, in usecase.PlaceOrderInput) (*model.Order, error)
	MyOrders(ctx context.Context, principal model.Principal, page, limit int) (usecase.PageResult[model.Order], error)
	Order(ctx context.Context, principal model.Principal, id int64) (*model.Order, error)
	Orders(ctx context.Context, page, limit int, status model.OrderStatus) (usecase.PageResult[model.Order], error)
	UpdateOrderStatus(ctx context.Context, id int64, status model.OrderStatus, trackingCode *string) (*model.Order, error)
	UpdateOrderPayment(ctx context.Context, id int64, status model.PaymentStatus) (*model.Order, error)
	CancelOrder(ctx context.Context, principal model.Principal, id int64) (*model.Order, error)
}

// CatalogFacade provides product catalog operations.
type CatalogFacade interface {
	Products(ctx context.Context, q usecase.ProductQuery) (usecase.PageResult[model.Product], error)
	Product(ctx context.Context, id int64) (*model.Product, error)
	Categories(ctx context.Context) ([]string, error)
	BestSellers(ctx context.Context) ([]model.Product, error)
	NewArrivals(ctx context.Context) ([]model.Product, error)
	CreateProduct(ctx context.Context, in usecase.ProductInput) (*model.Product, error)
	UpdateProduct(ctx context.Context, id int64, in usecase.ProductInput) (*model.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}

// AccountFacade covers profile and user administration.
type AccountFacade interface {
	Profile(ctx context.Context, principal model.Principal) (*model.Profile, error)
	UpdateProfile(ctx context.Context, principal model.Principal, in usecase.ProfileInput) (*model.User, error)
	Users(ctx context.Context, page, limit int) (usecase.PageResult[model.User], error)
	ChangeUserRole(ctx context.Context, id int64, role model.Role) (*model.User, error)
	ChangeUserStatus(ctx context.Context, id int64, active bool) (*model.User, error)
	CreateUser(ctx context.Context, in usecase.AccountInput) (*model.User, error)
	UpdateUser(ctx context.Context, id int64, in usecase.ProfileInput) (*model.User, error)
	DeleteUser(ctx context.Context, principal model.Principal, id int64) error
	Dashboard(ctx context.Context) (*model.DashboardStats, error)
}

// ReviewFacade covers product reviews.
type ReviewFacade interface {
	CreateReview(ctx context.Context, principal model.Principal, in usecase.ReviewInput) (*model.Review, error)
	ProductReviews(ctx context.Context, productID int64, page, limit int) (usecase.PageResult[model.Review], error)
	MyReviews(ctx context.Context, principal model.Principal, page, limit int) (usecase.PageResult[model.Review], error)
	Reviews(ctx context.Context, status model.ReviewStatus, page, limit int) (usecase.PageResult[model.Review], error)
	UpdateReview(ctx context.Context, principal model.Principal, id int64, in usecase.ReviewUpdate) (*model.Review, error)
	ApproveReview(ctx context.Context, id int64) (*model.Review, error)
	DeleteReview(ctx context.Context, principal model.Principal, id int64) error
}

// LikeFacade covers product likes.
type LikeFacade interface {
	ToggleLike(ctx context.Context, principal model.Principal, productID int64) (usecase.LikeStatus, error)
	LikeStatus(ctx context.Context, principal *model.Principal, productID int64) (usecase.LikeStatus, error)
	MyLikes(ctx context.Context, principal model.Principal, page, limit int) (usecase.PageResult[model.Product], error)
}

// HealthFacade reports service readiness.
type HealthFacade interface {
	Health(ctx context.Context) error
}

// StoreFacade aggregates the full set of operations used across handlers.
type StoreFacade interface {
	AuthFacade
	OrderFacade
	CatalogFacade
	AccountFacade
	ReviewFacade
	LikeFacade
	HealthFacade
}
