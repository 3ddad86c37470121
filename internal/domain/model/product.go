package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Rating aggregates approved review scores.
type Rating struct {
	Rate  float64
	Count int
}

// Product is a catalog entry with its inventory counter.
type Product struct {
	ID           int64
	Title        string
	Description  string
	Price        decimal.Decimal
	Images       []string
	Category     string
	Stock        int
	SalesCount   int
	Rating       Rating
	Features     []string
	Tags         []string
	Discount     int
	IsBestSeller bool
	IsNew        bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FinalPrice applies percentage discount to price.
func (p Product) FinalPrice() decimal.Decimal {
	if p.Discount <= 0 {
		return p.Price
	}
	factor := decimal.NewFromInt(int64(100 - p.Discount)).Div(decimal.NewFromInt(100))
	return p.Price.Mul(factor).Round(2)
}

// ProductSort names supported catalog orderings.
type ProductSort string

const (
	SortNewest     ProductSort = "-createdAt"
	SortOldest     ProductSort = "createdAt"
	SortPriceAsc   ProductSort = "price"
	SortPriceDesc  ProductSort = "-price"
	SortBestSeller ProductSort = "-salesCount"
	SortTopRated   ProductSort = "-rating"
)

// Valid reports whether sort is supported.
func (s ProductSort) Valid() bool {
	switch s {
	case SortNewest, SortOldest, SortPriceAsc, SortPriceDesc, SortBestSeller, SortTopRated:
		return true
	}
	return false
}

// ProductFilter narrows catalog listings.
type ProductFilter struct {
	Category string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	OnlyNew  bool
	Sort     ProductSort
	Page     Page
}
