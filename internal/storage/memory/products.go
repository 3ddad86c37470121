package memory

import (
	"context"
	"sort"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
)

type productRecord struct {
	product model.Product
}

func newProductRecord(p model.Product) productRecord {
	return productRecord{product: productRecord{product: p}.snapshot()}
}

func (r productRecord) snapshot() model.Product {
	p := r.product
	p.Images = cloneStrings(p.Images)
	p.Features = cloneStrings(p.Features)
	p.Tags = cloneStrings(p.Tags)
	return p
}

type productRepository struct {
	store *Store
}

func (r *productRepository) Create(_ context.Context, p *model.Product) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastProduct++
	now := s.now()
	p.ID = s.lastProduct
	p.Price = p.Price.Round(2)
	p.CreatedAt, p.UpdatedAt = now, now
	s.products[p.ID] = newProductRecord(*p)
	return nil
}

func (r *productRepository) GetByID(_ context.Context, id int64) (*model.Product, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.products[id]
	if !ok {
		return nil, domainErrors.NotFound("product", id)
	}
	p := rec.snapshot()
	return &p, nil
}

func matchesProduct(p model.Product, f model.ProductFilter) bool {
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.MinPrice != nil && p.Price.LessThan(*f.MinPrice) {
		return false
	}
	if f.MaxPrice != nil && p.Price.GreaterThan(*f.MaxPrice) {
		return false
	}
	if f.OnlyNew && !p.IsNew {
		return false
	}
	return true
}

func productLess(sortBy model.ProductSort) func(a, b model.Product) bool {
	switch sortBy {
	case model.SortOldest:
		return func(a, b model.Product) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case model.SortPriceAsc:
		return func(a, b model.Product) bool { return a.Price.LessThan(b.Price) }
	case model.SortPriceDesc:
		return func(a, b model.Product) bool { return a.Price.GreaterThan(b.Price) }
	case model.SortBestSeller:
		return func(a, b model.Product) bool { return a.SalesCount > b.SalesCount }
	case model.SortTopRated:
		return func(a, b model.Product) bool { return a.Rating.Rate > b.Rating.Rate }
	default:
		return func(a, b model.Product) bool { return a.CreatedAt.After(b.CreatedAt) }
	}
}

func (r *productRepository) List(_ context.Context, f model.ProductFilter) ([]model.Product, int, error) {
	s := r.store
	s.mu.RLock()
	matched := make([]model.Product, 0, len(s.products))
	for _, rec := range s.products {
		if matchesProduct(rec.product, f) {
			matched = append(matched, rec.snapshot())
		}
	}
	s.mu.RUnlock()

	less := productLess(f.Sort)
	sort.SliceStable(matched, func(i, j int) bool {
		if less(matched[i], matched[j]) {
			return true
		}
		if less(matched[j], matched[i]) {
			return false
		}
		return matched[i].ID > matched[j].ID
	})

	return window(matched, f.Page), len(matched), nil
}

func (r *productRepository) Update(_ context.Context, p *model.Product) error {
	s := r.store
	unlock := s.lockProducts([]int64{p.ID})
	defer unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.products[p.ID]
	if !ok {
		return domainErrors.NotFound("product", p.ID)
	}
	p.Price = p.Price.Round(2)
	p.CreatedAt = rec.product.CreatedAt
	p.SalesCount = rec.product.SalesCount
	p.Rating = rec.product.Rating
	p.UpdatedAt = s.now()
	s.products[p.ID] = newProductRecord(*p)
	return nil
}

func (r *productRepository) Delete(_ context.Context, id int64) error {
	s := r.store
	unlock := s.lockProducts([]int64{id})
	defer unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return domainErrors.NotFound("product", id)
	}
	delete(s.products, id)
	for k := range s.likes {
		if k.productID == id {
			delete(s.likes, k)
		}
	}
	for rid, review := range s.reviews {
		if review.ProductID == id {
			delete(s.reviews, rid)
		}
	}
	return nil
}

func (r *productRepository) Categories(_ context.Context) ([]string, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	var result []string
	for _, rec := range s.products {
		if _, ok := seen[rec.product.Category]; ok {
			continue
		}
		seen[rec.product.Category] = struct{}{}
		result = append(result, rec.product.Category)
	}
	sort.Strings(result)
	return result, nil
}

func (r *productRepository) Count(_ context.Context) (int, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products), nil
}

func window[T any](items []T, page model.Page) []T {
	if page.Limit <= 0 {
		return items
	}
	start := page.Offset()
	if start < 0 || start >= len(items) {
		return []T{}
	}
	end := len(items)
	if page.Limit < end-start {
		end = start + page.Limit
	}
	return items[start:end]
}
