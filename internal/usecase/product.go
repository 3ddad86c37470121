package usecase

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

const showcaseSize = 8

// ProductInput carries editable catalog fields.
type ProductInput struct {
	Title        string `validate:"required,max=200"`
	Description  string `validate:"required"`
	Price        decimal.Decimal
	Images       []string `validate:"dive,required"`
	Category     string   `validate:"required"`
	Stock        int      `validate:"gte=0"`
	Features     []string
	Tags         []string
	Discount     int `validate:"gte=0,lte=100"`
	IsBestSeller bool
	IsNew        bool
}

func (in *ProductInput) normalize() error {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Category = strings.TrimSpace(in.Category)
	if err := validateStruct(in); err != nil {
		return err
	}
	if in.Price.IsNegative() {
		return domainErrors.Validation("price must not be negative")
	}
	in.Price = in.Price.Round(2)
	return nil
}

func (in ProductInput) apply(p *model.Product) {
	p.Title = in.Title
	p.Description = in.Description
	p.Price = in.Price
	p.Images = in.Images
	p.Category = in.Category
	p.Stock = in.Stock
	p.Features = in.Features
	p.Tags = in.Tags
	p.Discount = in.Discount
	p.IsBestSeller = in.IsBestSeller
	p.IsNew = in.IsNew
}

// ProductQuery describes catalog listing request.
type ProductQuery struct {
	Category string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Sort     string
	Page     int
	Limit    int
}

// ProductUseCase serves catalog reads and administration.
type ProductUseCase struct {
	products repository.ProductRepository
	paging   Pagination
}

// NewProductUseCase constructs ProductUseCase. Catalog pages hold 12 products unless asked otherwise.
func NewProductUseCase(products repository.ProductRepository, paging Pagination) *ProductUseCase {
	return &ProductUseCase{products: products, paging: paging.withDefault(catalogPageSize)}
}

// List returns filtered and sorted catalog page.
func (u *ProductUseCase) List(ctx context.Context, q ProductQuery) (PageResult[model.Product], error) {
	sortBy := model.ProductSort(q.Sort)
	if sortBy == "" {
		sortBy = model.SortNewest
	}
	if !sortBy.Valid() {
		return PageResult[model.Product]{}, domainErrors.Validation("unsupported sort %q", q.Sort)
	}
	if q.MinPrice != nil && q.MaxPrice != nil && q.MinPrice.GreaterThan(*q.MaxPrice) {
		return PageResult[model.Product]{}, domainErrors.Validation("minPrice must not exceed maxPrice")
	}

	filter := model.ProductFilter{
		Category: strings.TrimSpace(q.Category),
		MinPrice: q.MinPrice,
		MaxPrice: q.MaxPrice,
		Sort:     sortBy,
		Page:     u.paging.Page(q.Page, q.Limit),
	}
	products, total, err := u.products.List(ctx, filter)
	if err != nil {
		return PageResult[model.Product]{}, err
	}
	return newPageResult(products, filter.Page, total), nil
}

// Get returns product by id.
func (u *ProductUseCase) Get(ctx context.Context, id int64) (*model.Product, error) {
	return u.products.GetByID(ctx, id)
}

// Categories lists distinct categories.
func (u *ProductUseCase) Categories(ctx context.Context) ([]string, error) {
	return u.products.Categories(ctx)
}

// BestSellers returns most sold products.
func (u *ProductUseCase) BestSellers(ctx context.Context) ([]model.Product, error) {
	products, _, err := u.products.List(ctx, model.ProductFilter{
		Sort: model.SortBestSeller,
		Page: model.Page{Number: 1, Limit: showcaseSize},
	})
	return products, err
}

// NewArrivals returns newest products flagged as new.
func (u *ProductUseCase) NewArrivals(ctx context.Context) ([]model.Product, error) {
	products, _, err := u.products.List(ctx, model.ProductFilter{
		OnlyNew: true,
		Sort:    model.SortNewest,
		Page:    model.Page{Number: 1, Limit: showcaseSize},
	})
	return products, err
}

// Create adds product to catalog.
func (u *ProductUseCase) Create(ctx context.Context, in ProductInput) (*model.Product, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}
	product := &model.Product{}
	in.apply(product)
	if err := u.products.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Update replaces editable fields of existing product. Sales counter and rating are kept.
func (u *ProductUseCase) Update(ctx context.Context, id int64, in ProductInput) (*model.Product, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}
	product, err := u.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	in.apply(product)
	if err := u.products.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete removes product from catalog.
func (u *ProductUseCase) Delete(ctx context.Context, id int64) error {
	return u.products.Delete(ctx, id)
}
