package postgres

import (
	"context"
	"fmt"
	"strings"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
)

type productRepository struct {
	storage *Storage
}

var productFields = []string{
	"id", "title", "description", "price_minor", "images", "category", "stock", "sales_count",
	"rating_rate", "rating_count", "features", "tags", "discount", "is_best_seller", "is_new", "created_at", "updated_at",
}

var productColumns = productColumnList("")

// productColumnList renders product columns, qualified with alias when given.
func productColumnList(alias string) string {
	if alias == "" {
		return strings.Join(productFields, ", ")
	}
	qualified := make([]string, len(productFields))
	for i, f := range productFields {
		qualified[i] = alias + "." + f
	}
	return strings.Join(qualified, ", ")
}

var productOrderings = map[model.ProductSort]string{
	model.SortNewest:     "created_at DESC",
	model.SortOldest:     "created_at ASC",
	model.SortPriceAsc:   "price_minor ASC",
	model.SortPriceDesc:  "price_minor DESC",
	model.SortBestSeller: "sales_count DESC",
	model.SortTopRated:   "rating_rate DESC",
}

func scanProduct(row rowScanner) (*model.Product, error) {
	var (
		p          model.Product
		priceMinor int64
	)
	err := row.Scan(&p.ID, &p.Title, &p.Description, &priceMinor, &p.Images, &p.Category, &p.Stock, &p.SalesCount,
		&p.Rating.Rate, &p.Rating.Count, &p.Features, &p.Tags, &p.Discount, &p.IsBestSeller, &p.IsNew, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.Price = model.FromMinor(priceMinor)
	return &p, nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func (r *productRepository) Create(ctx context.Context, p *model.Product) error {
	const query = `INSERT INTO products (title, description, price_minor, images, category, stock, features, tags, discount, is_best_seller, is_new)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
                   RETURNING id, created_at, updated_at`
	return r.storage.pool.QueryRow(ctx, query,
		p.Title, p.Description, model.ToMinor(p.Price), nonNil(p.Images), p.Category, p.Stock,
		nonNil(p.Features), nonNil(p.Tags), p.Discount, p.IsBestSeller, p.IsNew,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id=$1`
	p, err := scanProduct(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, notFound(err, "product", id)
	}
	return p, nil
}

func productWhere(filter model.ProductFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if filter.Category != "" {
		args = append(args, filter.Category)
		conds = append(conds, fmt.Sprintf("category=$%d", len(args)))
	}
	if filter.MinPrice != nil {
		args = append(args, model.ToMinor(*filter.MinPrice))
		conds = append(conds, fmt.Sprintf("price_minor>=$%d", len(args)))
	}
	if filter.MaxPrice != nil {
		args = append(args, model.ToMinor(*filter.MaxPrice))
		conds = append(conds, fmt.Sprintf("price_minor<=$%d", len(args)))
	}
	if filter.OnlyNew {
		conds = append(conds, "is_new")
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *productRepository) List(ctx context.Context, filter model.ProductFilter) ([]model.Product, int, error) {
	where, args := productWhere(filter)

	var total int
	if err := r.storage.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	ordering, ok := productOrderings[filter.Sort]
	if !ok {
		ordering = productOrderings[model.SortNewest]
	}
	args = append(args, filter.Page.Limit, filter.Page.Offset())
	query := fmt.Sprintf(`SELECT %s FROM products%s ORDER BY %s, id DESC LIMIT $%d OFFSET $%d`,
		productColumns, where, ordering, len(args)-1, len(args))

	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

func (r *productRepository) Update(ctx context.Context, p *model.Product) error {
	const query = `UPDATE products SET title=$1, description=$2, price_minor=$3, images=$4, category=$5, stock=$6,
                   features=$7, tags=$8, discount=$9, is_best_seller=$10, is_new=$11, updated_at=NOW()
                   WHERE id=$12 RETURNING updated_at`
	err := r.storage.pool.QueryRow(ctx, query,
		p.Title, p.Description, model.ToMinor(p.Price), nonNil(p.Images), p.Category, p.Stock,
		nonNil(p.Features), nonNil(p.Tags), p.Discount, p.IsBestSeller, p.IsNew, p.ID,
	).Scan(&p.UpdatedAt)
	if err != nil {
		return notFound(err, "product", p.ID)
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.NotFound("product", id)
	}
	return nil
}

func (r *productRepository) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.storage.pool.Query(ctx, `SELECT DISTINCT category FROM products ORDER BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *productRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.storage.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}
