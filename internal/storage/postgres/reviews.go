package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

type reviewRepository struct {
	storage *Storage
}

const reviewColumns = `id, user_id, product_id, rating, title, comment, is_approved, created_at, updated_at`

func scanReview(row rowScanner) (*model.Review, error) {
	var rv model.Review
	if err := row.Scan(&rv.ID, &rv.UserID, &rv.ProductID, &rv.Rating, &rv.Title, &rv.Comment, &rv.IsApproved, &rv.CreatedAt, &rv.UpdatedAt); err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *reviewRepository) Create(ctx context.Context, review *model.Review) error {
	const query = `INSERT INTO reviews (user_id, product_id, rating, title, comment, is_approved)
                   VALUES ($1, $2, $3, $4, $5, $6)
                   RETURNING id, created_at, updated_at`
	err := r.storage.pool.QueryRow(ctx, query, review.UserID, review.ProductID, review.Rating, review.Title, review.Comment, review.IsApproved).
		Scan(&review.ID, &review.CreatedAt, &review.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domainErrors.ErrAlreadyReviewed
		}
		return err
	}
	return nil
}

func (r *reviewRepository) GetByID(ctx context.Context, id int64) (*model.Review, error) {
	rv, err := scanReview(r.storage.pool.QueryRow(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE id=$1`, id))
	if err != nil {
		return nil, notFound(err, "review", id)
	}
	return rv, nil
}

func (r *reviewRepository) List(ctx context.Context, status model.ReviewStatus) ([]model.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews`
	switch status {
	case model.ReviewStatusPending:
		query += ` WHERE NOT is_approved`
	case model.ReviewStatusApproved:
		query += ` WHERE is_approved`
	}
	return r.list(ctx, query+` ORDER BY created_at DESC`)
}

func (r *reviewRepository) ListByProduct(ctx context.Context, productID int64, approvedOnly bool) ([]model.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE product_id=$1 AND (is_approved OR NOT $2) ORDER BY created_at DESC`
	return r.list(ctx, query, productID, approvedOnly)
}

func (r *reviewRepository) ListByUser(ctx context.Context, userID int64) ([]model.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE user_id=$1 ORDER BY created_at DESC`
	return r.list(ctx, query, userID)
}

func (r *reviewRepository) list(ctx context.Context, query string, args ...any) ([]model.Review, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Review
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *rv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *reviewRepository) Approve(ctx context.Context, id int64) (*model.Review, error) {
	query := `UPDATE reviews SET is_approved=TRUE, updated_at=NOW() WHERE id=$1 RETURNING ` + reviewColumns

	var review *model.Review
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		rv, err := scanReview(tx.QueryRow(ctx, query, id))
		if err != nil {
			return notFound(err, "review", id)
		}
		if err := refreshRating(ctx, tx, rv.ProductID); err != nil {
			return err
		}
		review = rv
		return nil
	})
	if err != nil {
		return nil, err
	}
	return review, nil
}

func (r *reviewRepository) Update(ctx context.Context, id int64, fn repository.ReviewMutation) (*model.Review, error) {
	const updateQuery = `UPDATE reviews SET rating=$1, title=$2, comment=$3, updated_at=NOW()
                         WHERE id=$4 RETURNING updated_at`

	var review *model.Review
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		locked, err := scanReview(tx.QueryRow(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE id=$1 FOR UPDATE`, id))
		if err != nil {
			return notFound(err, "review", id)
		}
		working := *locked
		if err := fn(&working); err != nil {
			return err
		}
		locked.Rating, locked.Title, locked.Comment = working.Rating, working.Title, working.Comment
		if err := tx.QueryRow(ctx, updateQuery, locked.Rating, locked.Title, locked.Comment, id).Scan(&locked.UpdatedAt); err != nil {
			return err
		}
		if locked.IsApproved {
			if err := refreshRating(ctx, tx, locked.ProductID); err != nil {
				return err
			}
		}
		review = locked
		return nil
	})
	if err != nil {
		return nil, err
	}
	return review, nil
}

func (r *reviewRepository) Delete(ctx context.Context, id int64) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		var productID int64
		if err := tx.QueryRow(ctx, `DELETE FROM reviews WHERE id=$1 RETURNING product_id`, id).Scan(&productID); err != nil {
			return notFound(err, "review", id)
		}
		return refreshRating(ctx, tx, productID)
	})
}

func (r *reviewRepository) CountByUser(ctx context.Context, userID int64) (int, error) {
	var total int
	if err := r.storage.pool.QueryRow(ctx, `SELECT COUNT(*) FROM reviews WHERE user_id=$1`, userID).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// refreshRating recomputes product rating from approved reviews.
func refreshRating(ctx context.Context, q querier, productID int64) error {
	rows, err := q.Query(ctx, `SELECT rating FROM reviews WHERE product_id=$1 AND is_approved`, productID)
	if err != nil {
		return err
	}
	defer rows.Close()

	var scores []int
	for rows.Next() {
		var score int
		if err := rows.Scan(&score); err != nil {
			return err
		}
		scores = append(scores, score)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	rows.Close()

	rating := model.AggregateRating(scores)
	_, err = q.Exec(ctx, `UPDATE products SET rating_rate=$1, rating_count=$2, updated_at=NOW() WHERE id=$3`, rating.Rate, rating.Count, productID)
	return err
}
