package test

import (
	"context"
	"sync"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	mu        sync.Mutex
	Users     map[string]*model.User
	ByID      map[int64]*model.User
	Next      int64
	Err       error
	DeleteErr error
	Updates   []model.UserUpdate
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub(users ...model.User) *UserRepositoryStub {
	s := &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
	for _, u := range users {
		usr := u
		s.Users[usr.Email] = &usr
		s.ByID[usr.ID] = &usr
		if usr.ID >= s.Next {
			s.Next = usr.ID + 1
		}
	}
	return s
}

func (s *UserRepositoryStub) init() {
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	if s.Next == 0 {
		s.Next = 1
	}
}

// Create registers user unless email is taken or stub has explicit error.
func (s *UserRepositoryStub) Create(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.init()
	if _, exists := s.Users[user.Email]; exists {
		return domainErrors.ErrAlreadyExists
	}
	user.ID = s.Next
	s.Next++
	stored := *user
	s.Users[user.Email] = &stored
	s.ByID[user.ID] = &stored
	return nil
}

// GetByEmail fetches user by email or returns not found.
func (s *UserRepositoryStub) GetByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[email]; ok {
		cp := *user
		return &cp, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(_ context.Context, id int64) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		cp := *user
		return &cp, nil
	}
	return nil, domainErrors.ErrNotFound
}

// Update applies non-nil fields and records the change.
func (s *UserRepositoryStub) Update(_ context.Context, id int64, update model.UserUpdate) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	user, ok := s.ByID[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	s.Updates = append(s.Updates, update)
	if update.Email != nil && *update.Email != user.Email {
		if _, taken := s.Users[*update.Email]; taken {
			return nil, domainErrors.ErrAlreadyExists
		}
		delete(s.Users, user.Email)
		user.Email = *update.Email
		s.Users[user.Email] = user
	}
	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.Phone != nil {
		user.Phone = *update.Phone
	}
	if update.Address != nil {
		user.Address = *update.Address
	}
	if update.PasswordHash != nil {
		user.PasswordHash = *update.PasswordHash
	}
	if update.Role != nil {
		user.Role = *update.Role
	}
	if update.IsActive != nil {
		user.IsActive = *update.IsActive
	}
	cp := *user
	return &cp, nil
}

// List returns every stored user ordered by id.
func (s *UserRepositoryStub) List(_ context.Context, _ model.Page) ([]model.User, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, 0, s.Err
	}
	users := make([]model.User, 0, len(s.ByID))
	for id := int64(1); id < s.Next; id++ {
		if u, ok := s.ByID[id]; ok {
			users = append(users, *u)
		}
	}
	return users, len(users), nil
}

// Count returns amount of stored users.
func (s *UserRepositoryStub) Count(context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	return len(s.ByID), nil
}

// Delete removes stored user. DeleteErr simulates refusal such as existing orders.
func (s *UserRepositoryStub) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if s.DeleteErr != nil {
		return s.DeleteErr
	}
	user, ok := s.ByID[id]
	if !ok {
		return domainErrors.NotFound("user", id)
	}
	delete(s.Users, user.Email)
	delete(s.ByID, id)
	return nil
}

// ProductRepositoryStub allows tests to customize catalog behaviour.
type ProductRepositoryStub struct {
	CreateFn     func(context.Context, *model.Product) error
	GetByIDFn    func(context.Context, int64) (*model.Product, error)
	ListFn       func(context.Context, model.ProductFilter) ([]model.Product, int, error)
	UpdateFn     func(context.Context, *model.Product) error
	DeleteFn     func(context.Context, int64) error
	CategoriesFn func(context.Context) ([]string, error)
	CountFn      func(context.Context) (int, error)

	Products []model.Product
	Filters  []model.ProductFilter
}

// Create delegates to override or assigns sequential id.
func (s *ProductRepositoryStub) Create(ctx context.Context, p *model.Product) error {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, p)
	}
	p.ID = int64(len(s.Products) + 1)
	s.Products = append(s.Products, *p)
	return nil
}

// GetByID returns product from override or configured slice.
func (s *ProductRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	for _, p := range s.Products {
		if p.ID == id {
			product := p
			return &product, nil
		}
	}
	return nil, domainErrors.NotFound("product", id)
}

// List records filter and returns configured slice.
func (s *ProductRepositoryStub) List(ctx context.Context, filter model.ProductFilter) ([]model.Product, int, error) {
	s.Filters = append(s.Filters, filter)
	if s.ListFn != nil {
		return s.ListFn(ctx, filter)
	}
	return s.Products, len(s.Products), nil
}

// Update replaces product in configured slice.
func (s *ProductRepositoryStub) Update(ctx context.Context, p *model.Product) error {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, p)
	}
	for i := range s.Products {
		if s.Products[i].ID == p.ID {
			s.Products[i] = *p
			return nil
		}
	}
	return domainErrors.NotFound("product", p.ID)
}

// Delete delegates to override.
func (s *ProductRepositoryStub) Delete(ctx context.Context, id int64) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	return nil
}

// Categories delegates to override.
func (s *ProductRepositoryStub) Categories(ctx context.Context) ([]string, error) {
	if s.CategoriesFn != nil {
		return s.CategoriesFn(ctx)
	}
	return nil, nil
}

// Count returns size of configured slice.
func (s *ProductRepositoryStub) Count(ctx context.Context) (int, error) {
	if s.CountFn != nil {
		return s.CountFn(ctx)
	}
	return len(s.Products), nil
}

// OrderRepositoryStub allows tests to customize order persistence.
type OrderRepositoryStub struct {
	PlaceFn       func(context.Context, *model.Order) error
	GetByIDFn     func(context.Context, int64) (*model.Order, error)
	ListFn        func(context.Context, model.OrderFilter) ([]model.Order, int, error)
	StatsFn       func(context.Context) (model.OrderStats, error)
	CountByUserFn func(context.Context, int64) (int, error)

	Placed  []model.Order
	Orders  []model.Order
	Filters []model.OrderFilter
}

// Place tracks invocations and assigns sequential id.
func (s *OrderRepositoryStub) Place(ctx context.Context, order *model.Order) error {
	if s.PlaceFn != nil {
		if err := s.PlaceFn(ctx, order); err != nil {
			return err
		}
	}
	if order.ID == 0 {
		order.ID = int64(len(s.Placed) + 1)
	}
	s.Placed = append(s.Placed, *order)
	return nil
}

// GetByID returns matched order either via override or stored slice.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	for _, o := range s.Orders {
		if o.ID == id {
			order := o
			return &order, nil
		}
	}
	return nil, domainErrors.NotFound("order", id)
}

// List records filter and returns configured slice.
func (s *OrderRepositoryStub) List(ctx context.Context, filter model.OrderFilter) ([]model.Order, int, error) {
	s.Filters = append(s.Filters, filter)
	if s.ListFn != nil {
		return s.ListFn(ctx, filter)
	}
	return s.Orders, len(s.Orders), nil
}

// Update applies mutation to stored order and persists result.
func (s *OrderRepositoryStub) Update(_ context.Context, id int64, fn repository.OrderMutation) (*model.Order, error) {
	for i := range s.Orders {
		if s.Orders[i].ID != id {
			continue
		}
		order := s.Orders[i]
		if err := fn(&order); err != nil {
			return nil, err
		}
		s.Orders[i] = order
		return &order, nil
	}
	return nil, domainErrors.NotFound("order", id)
}

// Stats delegates to override.
func (s *OrderRepositoryStub) Stats(ctx context.Context) (model.OrderStats, error) {
	if s.StatsFn != nil {
		return s.StatsFn(ctx)
	}
	return model.OrderStats{Count: len(s.Orders)}, nil
}

// CountByUser counts stored orders of user.
func (s *OrderRepositoryStub) CountByUser(ctx context.Context, userID int64) (int, error) {
	if s.CountByUserFn != nil {
		return s.CountByUserFn(ctx, userID)
	}
	var n int
	for _, o := range s.Orders {
		if o.UserID == userID {
			n++
		}
	}
	return n, nil
}

// ReviewRepositoryStub keeps reviews in a slice.
type ReviewRepositoryStub struct {
	CreateFn  func(context.Context, *model.Review) error
	ApproveFn func(context.Context, int64) (*model.Review, error)
	Err       error

	Reviews []model.Review
	Deleted []int64
}

// Create delegates to override or appends review.
func (s *ReviewRepositoryStub) Create(ctx context.Context, review *model.Review) error {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, review)
	}
	for _, r := range s.Reviews {
		if r.UserID == review.UserID && r.ProductID == review.ProductID {
			return domainErrors.ErrAlreadyReviewed
		}
	}
	review.ID = int64(len(s.Reviews) + 1)
	s.Reviews = append(s.Reviews, *review)
	return nil
}

// GetByID returns stored review.
func (s *ReviewRepositoryStub) GetByID(_ context.Context, id int64) (*model.Review, error) {
	for _, r := range s.Reviews {
		if r.ID == id {
			review := r
			return &review, nil
		}
	}
	return nil, domainErrors.NotFound("review", id)
}

// List filters stored reviews by moderation status.
func (s *ReviewRepositoryStub) List(_ context.Context, status model.ReviewStatus) ([]model.Review, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.Review
	for _, r := range s.Reviews {
		if status.Matches(r) {
			result = append(result, r)
		}
	}
	return result, nil
}

// Update applies mutation to stored review and keeps result on success.
func (s *ReviewRepositoryStub) Update(_ context.Context, id int64, fn repository.ReviewMutation) (*model.Review, error) {
	for i := range s.Reviews {
		if s.Reviews[i].ID != id {
			continue
		}
		review := s.Reviews[i]
		if err := fn(&review); err != nil {
			return nil, err
		}
		s.Reviews[i] = review
		return &review, nil
	}
	return nil, domainErrors.NotFound("review", id)
}

// ListByProduct filters stored reviews.
func (s *ReviewRepositoryStub) ListByProduct(_ context.Context, productID int64, approvedOnly bool) ([]model.Review, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.Review
	for _, r := range s.Reviews {
		if r.ProductID == productID && (!approvedOnly || r.IsApproved) {
			result = append(result, r)
		}
	}
	return result, nil
}

// ListByUser filters stored reviews.
func (s *ReviewRepositoryStub) ListByUser(_ context.Context, userID int64) ([]model.Review, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.Review
	for _, r := range s.Reviews {
		if r.UserID == userID {
			result = append(result, r)
		}
	}
	return result, nil
}

// Approve delegates to override or flips approval flag.
func (s *ReviewRepositoryStub) Approve(ctx context.Context, id int64) (*model.Review, error) {
	if s.ApproveFn != nil {
		return s.ApproveFn(ctx, id)
	}
	for i := range s.Reviews {
		if s.Reviews[i].ID == id {
			s.Reviews[i].IsApproved = true
			review := s.Reviews[i]
			return &review, nil
		}
	}
	return nil, domainErrors.NotFound("review", id)
}

// Delete records removed id.
func (s *ReviewRepositoryStub) Delete(_ context.Context, id int64) error {
	s.Deleted = append(s.Deleted, id)
	return nil
}

// CountByUser counts stored reviews of user.
func (s *ReviewRepositoryStub) CountByUser(ctx context.Context, userID int64) (int, error) {
	reviews, err := s.ListByUser(ctx, userID)
	return len(reviews), err
}

// LikeRepositoryStub keeps likes in a set.
type LikeRepositoryStub struct {
	mu       sync.Mutex
	Likes    map[[2]int64]bool
	Products []model.Product
	Err      error
}

func (s *LikeRepositoryStub) key(userID, productID int64) [2]int64 {
	if s.Likes == nil {
		s.Likes = make(map[[2]int64]bool)
	}
	return [2]int64{userID, productID}
}

// Toggle flips like of pair.
func (s *LikeRepositoryStub) Toggle(_ context.Context, userID, productID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return false, s.Err
	}
	k := s.key(userID, productID)
	if s.Likes[k] {
		delete(s.Likes, k)
		return false, nil
	}
	s.Likes[k] = true
	return true, nil
}

// Exists reports whether pair is liked.
func (s *LikeRepositoryStub) Exists(_ context.Context, userID, productID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Likes[s.key(userID, productID)], s.Err
}

// Count returns likes of product.
func (s *LikeRepositoryStub) Count(_ context.Context, productID int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int
	for k := range s.Likes {
		if k[1] == productID {
			n++
		}
	}
	return n, s.Err
}

// ListProductsByUser returns configured products.
func (s *LikeRepositoryStub) ListProductsByUser(context.Context, int64) ([]model.Product, error) {
	return s.Products, s.Err
}

// CountByUser returns likes of user.
func (s *LikeRepositoryStub) CountByUser(_ context.Context, userID int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int
	for k := range s.Likes {
		if k[0] == userID {
			n++
		}
	}
	return n, s.Err
}

var (
	_ repository.UserRepository    = (*UserRepositoryStub)(nil)
	_ repository.ProductRepository = (*ProductRepositoryStub)(nil)
	_ repository.OrderRepository   = (*OrderRepositoryStub)(nil)
	_ repository.ReviewRepository  = (*ReviewRepositoryStub)(nil)
	_ repository.LikeRepository    = (*LikeRepositoryStub)(nil)
)
