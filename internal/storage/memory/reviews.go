package memory

import (
	"context"
	"sort"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

type reviewRepository struct {
	store *Store
}

func (r *reviewRepository) Create(_ context.Context, review *model.Review) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.reviews {
		if existing.UserID == review.UserID && existing.ProductID == review.ProductID {
			return domainErrors.ErrAlreadyReviewed
		}
	}
	s.lastReview++
	now := s.now()
	review.ID = s.lastReview
	review.CreatedAt, review.UpdatedAt = now, now
	s.reviews[review.ID] = *review
	return nil
}

func (r *reviewRepository) GetByID(_ context.Context, id int64) (*model.Review, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	review, ok := s.reviews[id]
	if !ok {
		return nil, domainErrors.NotFound("review", id)
	}
	return &review, nil
}

func (r *reviewRepository) collect(match func(model.Review) bool) []model.Review {
	s := r.store
	s.mu.RLock()
	result := make([]model.Review, 0)
	for _, review := range s.reviews {
		if match(review) {
			result = append(result, review)
		}
	}
	s.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})
	return result
}

func (r *reviewRepository) List(_ context.Context, status model.ReviewStatus) ([]model.Review, error) {
	return r.collect(status.Matches), nil
}

func (r *reviewRepository) ListByProduct(_ context.Context, productID int64, approvedOnly bool) ([]model.Review, error) {
	return r.collect(func(review model.Review) bool {
		return review.ProductID == productID && (!approvedOnly || review.IsApproved)
	}), nil
}

func (r *reviewRepository) ListByUser(_ context.Context, userID int64) ([]model.Review, error) {
	return r.collect(func(review model.Review) bool { return review.UserID == userID }), nil
}

func (r *reviewRepository) Approve(_ context.Context, id int64) (*model.Review, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	review, ok := s.reviews[id]
	if !ok {
		return nil, domainErrors.NotFound("review", id)
	}
	review.IsApproved = true
	review.UpdatedAt = s.now()
	s.reviews[id] = review
	s.refreshRating(review.ProductID)
	return &review, nil
}

func (r *reviewRepository) Update(_ context.Context, id int64, fn repository.ReviewMutation) (*model.Review, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.reviews[id]
	if !ok {
		return nil, domainErrors.NotFound("review", id)
	}
	working := current
	if err := fn(&working); err != nil {
		return nil, err
	}
	current.Rating = working.Rating
	current.Title = working.Title
	current.Comment = working.Comment
	current.UpdatedAt = s.now()
	s.reviews[id] = current
	if current.IsApproved {
		s.refreshRating(current.ProductID)
	}
	return &current, nil
}

func (r *reviewRepository) Delete(_ context.Context, id int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	review, ok := s.reviews[id]
	if !ok {
		return domainErrors.NotFound("review", id)
	}
	delete(s.reviews, id)
	s.refreshRating(review.ProductID)
	return nil
}

func (r *reviewRepository) CountByUser(_ context.Context, userID int64) (int, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	for _, review := range s.reviews {
		if review.UserID == userID {
			n++
		}
	}
	return n, nil
}

// refreshRating recomputes product rating from approved reviews. Caller holds s.mu.
func (s *Store) refreshRating(productID int64) {
	rec, ok := s.products[productID]
	if !ok {
		return
	}
	var scores []int
	for _, review := range s.reviews {
		if review.ProductID == productID && review.IsApproved {
			scores = append(scores, review.Rating)
		}
	}
	rec.product.Rating = model.AggregateRating(scores)
	rec.product.UpdatedAt = s.now()
	s.products[productID] = rec
}
