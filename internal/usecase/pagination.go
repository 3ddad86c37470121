package usecase

import (
	"math"

	"github.com/polkiloo/storefront/internal/config"
	"github.com/polkiloo/storefront/internal/domain/model"
)

const (
	fallbackPageSize = 10
	catalogPageSize  = 12
)

// Pagination clamps page requests to configured bounds.
type Pagination struct {
	DefaultLimit int
	MaxLimit     int
}

// NewPagination builds Pagination from configuration.
func NewPagination(cfg *config.Config) Pagination {
	return Pagination{DefaultLimit: cfg.DefaultPageSize, MaxLimit: cfg.MaxPageSize}
}

// Page returns 1-indexed window. Non-positive page becomes 1, non-positive
// limit becomes default and limit above maximum is cut down. Page number is
// capped so the offset of the window fits into int.
func (p Pagination) Page(number, limit int) model.Page {
	if number <= 0 {
		number = 1
	}
	if limit <= 0 {
		limit = p.DefaultLimit
	}
	if limit <= 0 {
		limit = fallbackPageSize
	}
	if p.MaxLimit > 0 && limit > p.MaxLimit {
		limit = p.MaxLimit
	}
	if maxNumber := math.MaxInt / limit; number > maxNumber {
		number = maxNumber
	}
	return model.Page{Number: number, Limit: limit}
}

func (p Pagination) withDefault(limit int) Pagination {
	p.DefaultLimit = limit
	return p
}

// PageResult is one page of a listing together with totals.
type PageResult[T any] struct {
	Items []T
	Page  int
	Limit int
	Pages int
	Total int
}

func newPageResult[T any](items []T, page model.Page, total int) PageResult[T] {
	if items == nil {
		items = []T{}
	}
	return PageResult[T]{
		Items: items,
		Page:  page.Number,
		Limit: page.Limit,
		Pages: page.Pages(total),
		Total: total,
	}
}
