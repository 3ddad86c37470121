package app

import (
	"context"

	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/usecase"
)

// HealthChecker reports whether persistence is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// StoreFacade exposes use cases to the transport layer.
type StoreFacade struct {
	auth     *usecase.AuthUseCase
	users    *usecase.UserUseCase
	orders   *usecase.OrderUseCase
	products *usecase.ProductUseCase
	reviews  *usecase.ReviewUseCase
	likes    *usecase.LikeUseCase
	health   HealthChecker
}

// NewStoreFacade creates StoreFacade.
func NewStoreFacade(p FacadeParams) *StoreFacade {
	return &StoreFacade{
		auth:     p.Auth,
		users:    p.Users,
		orders:   p.Orders,
		products: p.Products,
		reviews:  p.Reviews,
		likes:    p.Likes,
		health:   p.Health,
	}
}

func (f *StoreFacade) Register(ctx context.Context, in usecase.RegisterInput) (*model.User, string, error) {
	return f.auth.Register(ctx, in)
}

func (f *StoreFacade) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	return f.auth.Authenticate(ctx, email, password)
}

func (f *StoreFacade) ResolvePrincipal(ctx context.Context, token string) (model.Principal, error) {
	return f.auth.ResolvePrincipal(ctx, token)
}

func (f *StoreFacade) PlaceOrder(ctx context.Context, principal model.Principal, in usecase.PlaceOrderInput) (*model.Order, error) {
	return f.orders.Place(ctx, principal, in)
}

func (f *StoreFacade) MyOrders(ctx context.Context, principal model.Principal, page, limit int) (usecase.PageResult[model.Order], error) {
	return f.orders.MyOrders(ctx, principal, page, limit)
}

func (f *StoreFacade) Order(ctx context.Context, principal model.Principal, id int64) (*model.Order, error) {
	return f.orders.Get(ctx, principal, id)
}

func (f *StoreFacade) Orders(ctx context.Context, page, limit int, status model.OrderStatus) (usecase.PageResult[model.Order], error) {
	return f.orders.List(ctx, page, limit, status)
}

func (f *StoreFacade) UpdateOrderStatus(ctx context.Context, id int64, status model.OrderStatus, trackingCode *string) (*model.Order, error) {
	return f.orders.UpdateStatus(ctx, id, status, trackingCode)
}

func (f *StoreFacade) UpdateOrderPayment(ctx context.Context, id int64, status model.PaymentStatus) (*model.Order, error) {
	return f.orders.UpdatePayment(ctx, id, status)
}

func (f *StoreFacade) CancelOrder(ctx context.Context, principal model.Principal, id int64) (*model.Order, error) {
	return f.orders.Cancel(ctx, principal, id)
}

func (f *StoreFacade) Products(ctx context.Context, q usecase.ProductQuery) (usecase.PageResult[model.Product], error) {
	return f.products.List(ctx, q)
}

func (f *StoreFacade) Product(ctx context.Context, id int64) (*model.Product, error) {
	return f.products.Get(ctx, id)
}

func (f *StoreFacade) Categories(ctx context.Context) ([]string, error) {
	return f.products.Categories(ctx)
}

func (f *StoreFacade) BestSellers(ctx context.Context) ([]model.Product, error) {
	return f.products.BestSellers(ctx)
}

func (f *StoreFacade) NewArrivals(ctx context.Context) ([]model.Product, error) {
	return f.products.NewArrivals(ctx)
}

func (f *StoreFacade) CreateProduct(ctx context.Context, in usecase.ProductInput) (*model.Product, error) {
	return f.products.Create(ctx, in)
}

func (f *StoreFacade) UpdateProduct(ctx context.Context, id int64, in usecase.ProductInput) (*model.Product, error) {
	return f.products.Update(ctx, id, in)
}

func (f *StoreFacade) DeleteProduct(ctx context.Context, id int64) error {
	return f.products.Delete(ctx, id)
}

func (f *StoreFacade) Profile(ctx context.Context, principal model.Principal) (*model.Profile, error) {
	return f.users.Profile(ctx, principal)
}

func (f *StoreFacade) UpdateProfile(ctx context.Context, principal model.Principal, in usecase.ProfileInput) (*model.User, error) {
	return f.users.UpdateProfile(ctx, principal, in)
}

func (f *StoreFacade) Users(ctx context.Context, page, limit int) (usecase.PageResult[model.User], error) {
	return f.users.List(ctx, page, limit)
}

func (f *StoreFacade) ChangeUserRole(ctx context.Context, id int64, role model.Role) (*model.User, error) {
	return f.users.ChangeRole(ctx, id, role)
}

func (f *StoreFacade) ChangeUserStatus(ctx context.Context, id int64, active bool) (*model.User, error) {
	return f.users.ChangeStatus(ctx, id, active)
}

func (f *StoreFacade) CreateUser(ctx context.Context, in usecase.AccountInput) (*model.User, error) {
	return f.users.Create(ctx, in)
}

func (f *StoreFacade) UpdateUser(ctx context.Context, id int64, in usecase.ProfileInput) (*model.User, error) {
	return f.users.Update(ctx, id, in)
}

func (f *StoreFacade) DeleteUser(ctx context.Context, principal model.Principal, id int64) error {
	return f.users.Delete(ctx, principal, id)
}

func (f *StoreFacade) Dashboard(ctx context.Context) (*model.DashboardStats, error) {
	return f.users.Dashboard(ctx)
}

func (f *StoreFacade) CreateReview(ctx context.Context, principal model.Principal, in usecase.ReviewInput) (*model.Review, error) {
	return f.reviews.Create(ctx, principal, in)
}

func (f *StoreFacade) ProductReviews(ctx context.Context, productID int64, page, limit int) (usecase.PageResult[model.Review], error) {
	return f.reviews.ProductReviews(ctx, productID, page, limit)
}

func (f *StoreFacade) MyReviews(ctx context.Context, principal model.Principal, page, limit int) (usecase.PageResult[model.Review], error) {
	return f.reviews.MyReviews(ctx, principal, page, limit)
}

func (f *StoreFacade) Reviews(ctx context.Context, status model.ReviewStatus, page, limit int) (usecase.PageResult[model.Review], error) {
	return f.reviews.List(ctx, status, page, limit)
}

func (f *StoreFacade) UpdateReview(ctx context.Context, principal model.Principal, id int64, in usecase.ReviewUpdate) (*model.Review, error) {
	return f.reviews.Update(ctx, principal, id, in)
}

func (f *StoreFacade) ApproveReview(ctx context.Context, id int64) (*model.Review, error) {
	return f.reviews.Approve(ctx, id)
}

func (f *StoreFacade) DeleteReview(ctx context.Context, principal model.Principal, id int64) error {
	return f.reviews.Delete(ctx, principal, id)
}

func (f *StoreFacade) ToggleLike(ctx context.Context, principal model.Principal, productID int64) (usecase.LikeStatus, error) {
	return f.likes.Toggle(ctx, principal, productID)
}

func (f *StoreFacade) LikeStatus(ctx context.Context, principal *model.Principal, productID int64) (usecase.LikeStatus, error) {
	return f.likes.Status(ctx, principal, productID)
}

func (f *StoreFacade) MyLikes(ctx context.Context, principal model.Principal, page, limit int) (usecase.PageResult[model.Product], error) {
	return f.likes.MyLikes(ctx, principal, page, limit)
}

// Health pings the underlying storage.
func (f *StoreFacade) Health(ctx context.Context) error {
	return f.health.HealthCheck(ctx)
}
