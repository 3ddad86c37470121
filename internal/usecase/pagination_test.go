package usecase

import (
	"math"
	"testing"

	"github.com/polkiloo/storefront/internal/config"
	"github.com/polkiloo/storefront/internal/domain/model"
)

func TestPaginationPage(t *testing.T) {
	p := NewPagination(&config.Config{DefaultPageSize: 10, MaxPageSize: 50})
	cases := []struct {
		number, limit int
		want          model.Page
	}{
		{0, 0, model.Page{Number: 1, Limit: 10}},
		{-3, 5, model.Page{Number: 1, Limit: 5}},
		{4, 500, model.Page{Number: 4, Limit: 50}},
	}
	for _, tc := range cases {
		if got := p.Page(tc.number, tc.limit); got != tc.want {
			t.Fatalf("Page(%d, %d) = %+v, want %+v", tc.number, tc.limit, got, tc.want)
		}
	}

	huge := p.Page(math.MaxInt, 3)
	if huge.Number != math.MaxInt/3 || huge.Offset() < 0 {
		t.Fatalf("expected page capped to fit offset, got %+v offset %d", huge, huge.Offset())
	}

	if got := (Pagination{}).Page(1, 0); got.Limit != fallbackPageSize {
		t.Fatalf("expected fallback limit, got %d", got.Limit)
	}
	if got := p.withDefault(catalogPageSize).Page(1, 0); got.Limit != 12 {
		t.Fatalf("expected catalog default 12, got %d", got.Limit)
	}
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	page := paginate(items, model.Page{Number: 2, Limit: 2})
	if len(page.Items) != 2 || page.Items[0] != 3 || page.Total != 5 || page.Pages != 3 {
		t.Fatalf("unexpected page %+v", page)
	}

	beyond := paginate(items, model.Page{Number: 9, Limit: 2})
	if len(beyond.Items) != 0 || beyond.Items == nil {
		t.Fatalf("expected empty non-nil page, got %+v", beyond)
	}
}

func TestPaginateHugePage(t *testing.T) {
	items := []int{1, 2, 3}

	page := paginate(items, model.Page{Number: 4611686018427387905, Limit: 3})
	if len(page.Items) != 0 || page.Total != 3 {
		t.Fatalf("expected empty page with total 3, got %+v", page)
	}

	all := paginate(items, model.Page{Number: 1, Limit: math.MaxInt})
	if len(all.Items) != 3 {
		t.Fatalf("expected every item, got %+v", all)
	}
}
