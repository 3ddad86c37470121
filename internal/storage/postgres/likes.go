package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/polkiloo/storefront/internal/domain/model"
)

type likeRepository struct {
	storage *Storage
}

func (r *likeRepository) Toggle(ctx context.Context, userID, productID int64) (bool, error) {
	var liked bool
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `DELETE FROM likes WHERE user_id=$1 AND product_id=$2`, userID, productID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() > 0 {
			liked = false
			return nil
		}
		if _, err := tx.Exec(ctx, `INSERT INTO likes (user_id, product_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`, userID, productID); err != nil {
			return err
		}
		liked = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return liked, nil
}

func (r *likeRepository) Exists(ctx context.Context, userID, productID int64) (bool, error) {
	var exists bool
	err := r.storage.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM likes WHERE user_id=$1 AND product_id=$2)`, userID, productID).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *likeRepository) Count(ctx context.Context, productID int64) (int, error) {
	var total int
	if err := r.storage.pool.QueryRow(ctx, `SELECT COUNT(*) FROM likes WHERE product_id=$1`, productID).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *likeRepository) ListProductsByUser(ctx context.Context, userID int64) ([]model.Product, error) {
	query := `SELECT ` + productColumnList("p") + ` FROM likes l JOIN products p ON p.id = l.product_id
              WHERE l.user_id=$1 ORDER BY l.created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *likeRepository) CountByUser(ctx context.Context, userID int64) (int, error) {
	var total int
	if err := r.storage.pool.QueryRow(ctx, `SELECT COUNT(*) FROM likes WHERE user_id=$1`, userID).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}
