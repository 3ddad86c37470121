package memory

import (
	"context"
	"sort"
	"time"

	"github.com/polkiloo/storefront/internal/domain/model"
)

type likeKey struct {
	userID    int64
	productID int64
}

type likeRepository struct {
	store *Store
}

func (r *likeRepository) Toggle(_ context.Context, userID, productID int64) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	key := likeKey{userID: userID, productID: productID}
	if _, ok := s.likes[key]; ok {
		delete(s.likes, key)
		return false, nil
	}
	s.likes[key] = s.now()
	return true, nil
}

func (r *likeRepository) Exists(_ context.Context, userID, productID int64) (bool, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.likes[likeKey{userID: userID, productID: productID}]
	return ok, nil
}

func (r *likeRepository) Count(_ context.Context, productID int64) (int, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	for k := range s.likes {
		if k.productID == productID {
			n++
		}
	}
	return n, nil
}

func (r *likeRepository) ListProductsByUser(_ context.Context, userID int64) ([]model.Product, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	type liked struct {
		product model.Product
		at      time.Time
	}
	var items []liked
	for k, at := range s.likes {
		if k.userID != userID {
			continue
		}
		if rec, ok := s.products[k.productID]; ok {
			items = append(items, liked{product: rec.snapshot(), at: at})
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if !items[i].at.Equal(items[j].at) {
			return items[i].at.After(items[j].at)
		}
		return items[i].product.ID > items[j].product.ID
	})

	products := make([]model.Product, 0, len(items))
	for _, item := range items {
		products = append(products, item.product)
	}
	return products, nil
}

func (r *likeRepository) CountByUser(_ context.Context, userID int64) (int, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	for k := range s.likes {
		if k.userID == userID {
			n++
		}
	}
	return n, nil
}
