// Package memory provides an in-process store implementing every repository.
// It backs the service when no database is configured and serves tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

// Store keeps entities in maps. Stock reservation locks every involved
// product in ascending id order before checking and decrementing.
type Store struct {
	mu           sync.RWMutex
	users        map[int64]model.User
	products     map[int64]productRecord
	orders       map[int64]orderRecord
	reviews      map[int64]model.Review
	likes        map[likeKey]time.Time
	productLocks map[int64]*sync.Mutex
	lastUser     int64
	lastProduct  int64
	lastOrder    int64
	lastReview   int64
	now          func() time.Time
}

// NewStore returns empty store.
func NewStore() *Store {
	return &Store{
		users:        make(map[int64]model.User),
		products:     make(map[int64]productRecord),
		orders:       make(map[int64]orderRecord),
		reviews:      make(map[int64]model.Review),
		likes:        make(map[likeKey]time.Time),
		productLocks: make(map[int64]*sync.Mutex),
		now:          time.Now,
	}
}

// Users returns account repository backed by the store.
func (s *Store) Users() repository.UserRepository {
	return &userRepository{store: s}
}

// Reviews returns review repository backed by the store.
func (s *Store) Reviews() repository.ReviewRepository {
	return &reviewRepository{store: s}
}

// Likes returns like repository backed by the store.
func (s *Store) Likes() repository.LikeRepository {
	return &likeRepository{store: s}
}

// HealthCheck always succeeds.
func (s *Store) HealthCheck(context.Context) error {
	return nil
}

// Products returns catalog repository backed by the store.
func (s *Store) Products() repository.ProductRepository {
	return &productRepository{store: s}
}

// Orders returns order repository backed by the store.
func (s *Store) Orders() repository.OrderRepository {
	return &orderRepository{store: s}
}

func (s *Store) productLock(id int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.productLocks[id]
	if !ok {
		l = &sync.Mutex{}
		s.productLocks[id] = l
	}
	return l
}

// lockProducts acquires product mutexes in ascending id order and returns
// a function releasing them.
func (s *Store) lockProducts(ids []int64) func() {
	unique := make([]int64, 0, len(ids))
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	sort.Slice(unique, func(i, j int) bool { return unique[i] < unique[j] })

	locks := make([]*sync.Mutex, 0, len(unique))
	for _, id := range unique {
		l := s.productLock(id)
		l.Lock()
		locks = append(locks, l)
	}
	return func() {
		for i := len(locks) - 1; i >= 0; i-- {
			locks[i].Unlock()
		}
	}
}

func cloneStrings(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}

var _ repository.Factory = (*Store)(nil)
