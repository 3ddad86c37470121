package memory

import (
	"context"
	"sort"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
)

type userRepository struct {
	store *Store
}

// emailTaken reports whether another user owns email. Caller holds s.mu.
func (s *Store) emailTaken(email string, except int64) bool {
	for id, u := range s.users {
		if id != except && u.Email == email {
			return true
		}
	}
	return false
}

func (r *userRepository) Create(_ context.Context, user *model.User) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.emailTaken(user.Email, 0) {
		return domainErrors.ErrAlreadyExists
	}
	s.lastUser++
	now := s.now()
	user.ID = s.lastUser
	user.CreatedAt, user.UpdatedAt = now, now
	s.users[user.ID] = *user
	return nil
}

func (r *userRepository) GetByEmail(_ context.Context, email string) (*model.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, domainErrors.NotFound("user", email)
}

func (r *userRepository) GetByID(_ context.Context, id int64) (*model.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, domainErrors.NotFound("user", id)
	}
	return &u, nil
}

func (r *userRepository) Update(_ context.Context, id int64, update model.UserUpdate) (*model.User, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, domainErrors.NotFound("user", id)
	}
	if update.Email != nil {
		if s.emailTaken(*update.Email, id) {
			return nil, domainErrors.ErrAlreadyExists
		}
		u.Email = *update.Email
	}
	if update.Name != nil {
		u.Name = *update.Name
	}
	if update.Phone != nil {
		u.Phone = *update.Phone
	}
	if update.Address != nil {
		u.Address = *update.Address
	}
	if update.PasswordHash != nil {
		u.PasswordHash = *update.PasswordHash
	}
	if update.Role != nil {
		u.Role = *update.Role
	}
	if update.IsActive != nil {
		u.IsActive = *update.IsActive
	}
	u.UpdatedAt = s.now()
	s.users[id] = u
	return &u, nil
}

func (r *userRepository) List(_ context.Context, page model.Page) ([]model.User, int, error) {
	s := r.store
	s.mu.RLock()
	users := make([]model.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	s.mu.RUnlock()

	sort.Slice(users, func(i, j int) bool { return users[i].ID > users[j].ID })
	return window(users, page), len(users), nil
}

func (r *userRepository) Delete(_ context.Context, id int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return domainErrors.NotFound("user", id)
	}
	for _, rec := range s.orders {
		if rec.order.UserID == id {
			return domainErrors.ErrUserHasOrders
		}
	}

	delete(s.users, id)
	for k := range s.likes {
		if k.userID == id {
			delete(s.likes, k)
		}
	}
	reviewed := make(map[int64]struct{})
	for rid, review := range s.reviews {
		if review.UserID == id {
			delete(s.reviews, rid)
			reviewed[review.ProductID] = struct{}{}
		}
	}
	for productID := range reviewed {
		s.refreshRating(productID)
	}
	return nil
}

func (r *userRepository) Count(_ context.Context) (int, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users), nil
}
