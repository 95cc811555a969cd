package catalog_test

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/JaimeStill/printmg/internal/backend"
	"github.com/JaimeStill/printmg/internal/catalog"
	"github.com/JaimeStill/printmg/pkg/logging"
	"github.com/JaimeStill/printmg/pkg/pagination"
	"github.com/JaimeStill/printmg/pkg/query"
)

type fakeSource struct {
	products []backend.Product
	fetches  int
	err      error
}

func (f *fakeSource) Products(ctx context.Context) ([]backend.Product, error) {
	f.fetches++
	if f.err != nil {
		return nil, f.err
	}
	return f.products, nil
}

func (f *fakeSource) CreateProduct(ctx context.Context, p backend.Product) (*backend.Product, error) {
	p.ID = len(f.products) + 1
	f.products = append(f.products, p)
	return &p, nil
}

func (f *fakeSource) UpdateProduct(ctx context.Context, id int, p backend.Product) (*backend.Product, error) {
	p.ID = id
	return &p, nil
}

func (f *fakeSource) DeleteProduct(ctx context.Context, id int) error {
	return nil
}

func seed() *fakeSource {
	price := decimal.NewFromInt
	return &fakeSource{products: []backend.Product{
		{ID: 1, Name: "Carte de visite", Description: "Impression recto verso", Category: "papeterie", Price: price(200), DefaultFormat: "A6"},
		{ID: 2, Name: "Flyer", Description: "Publicité A5", Category: "marketing", Price: price(300), DefaultFormat: "A5"},
		{ID: 3, Name: "Affiche", Description: "Grand format extérieur", Category: "marketing", Price: price(15000), LargeFormat: true},
		{ID: 4, Name: "Bâche", Description: "Bâche publicitaire", Category: "grand format", Price: price(40000), LargeFormat: true},
		{ID: 5, Name: "Calendrier", Description: "Calendrier mural", Category: "papeterie", Price: price(5000), DefaultFormat: "A4"},
	}}
}

var pageCfg = pagination.Config{DefaultPageSize: 2, MaxPageSize: 10}

func ids(products []backend.Product) []int {
	out := make([]int, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func TestCatalog_FetchesOnce(t *testing.T) {
	src := seed()
	c := catalog.New(src, pageCfg, logging.Discard())
	ctx := context.Background()

	for range 3 {
		if _, err := c.Products(ctx); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := c.Find(ctx, 2); err != nil {
		t.Fatal(err)
	}
	if src.fetches != 1 {
		t.Errorf("fetches = %d, want 1", src.fetches)
	}

	if err := c.Delete(ctx, 2); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Products(ctx); err != nil {
		t.Fatal(err)
	}
	if src.fetches != 2 {
		t.Errorf("fetches after delete = %d, want 2", src.fetches)
	}
}

func TestCatalog_FetchErrorNotCached(t *testing.T) {
	src := &fakeSource{err: errors.New("down")}
	c := catalog.New(src, pageCfg, logging.Discard())

	if _, err := c.Products(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	src.err = nil
	if _, err := c.Products(context.Background()); err != nil {
		t.Fatalf("retry error = %v", err)
	}
	if src.fetches != 2 {
		t.Errorf("fetches = %d, want 2", src.fetches)
	}
}

func TestCatalog_Find(t *testing.T) {
	c := catalog.New(seed(), pageCfg, logging.Discard())

	p, err := c.Find(context.Background(), 3)
	if err != nil || p.Name != "Affiche" {
		t.Errorf("Find(3) = %q, %v", p.Name, err)
	}
	if _, err := c.Find(context.Background(), 99); !errors.Is(err, catalog.ErrNotFound) {
		t.Errorf("Find(99) error = %v, want ErrNotFound", err)
	}
}

func TestCatalog_List(t *testing.T) {
	search := func(s string) *string { return &s }

	tests := []struct {
		name      string
		filter    catalog.Filter
		req       pagination.PageRequest
		wantIDs   []int
		wantTotal int
	}{
		{"first page", catalog.Filter{}, pagination.PageRequest{}, []int{1, 2}, 5},
		{"last page", catalog.Filter{}, pagination.PageRequest{Page: 3}, []int{5}, 5},
		{"category", catalog.Filter{Category: "Marketing"}, pagination.PageRequest{}, []int{2, 3}, 2},
		{"accent-insensitive search", catalog.Filter{}, pagination.PageRequest{Search: search("bache")}, []int{4}, 1},
		{"search description", catalog.Filter{}, pagination.PageRequest{Search: search("mural")}, []int{5}, 1},
		{
			name:      "sort by price descending",
			req:       pagination.PageRequest{PageSize: 3, Sort: []query.SortField{{Field: "prix", Descending: true}}},
			wantIDs:   []int{4, 3, 5},
			wantTotal: 5,
		},
		{
			name:      "sort by name",
			req:       pagination.PageRequest{PageSize: 10, Sort: []query.SortField{{Field: "name"}}},
			wantIDs:   []int{3, 4, 5, 1, 2},
			wantTotal: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := catalog.New(seed(), pageCfg, logging.Discard())
			got, err := c.List(context.Background(), tt.filter, tt.req)
			if err != nil {
				t.Fatal(err)
			}
			if g := ids(got.Data); !slices.Equal(g, tt.wantIDs) {
				t.Errorf("ids = %v, want %v", g, tt.wantIDs)
			}
			if got.Total != tt.wantTotal {
				t.Errorf("Total = %d, want %d", got.Total, tt.wantTotal)
			}
		})
	}
}

func TestCatalog_Categories(t *testing.T) {
	c := catalog.New(seed(), pageCfg, logging.Discard())
	got, err := c.Categories(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"grand format", "marketing", "papeterie"}
	if !slices.Equal(got, want) {
		t.Errorf("Categories() = %v, want %v", got, want)
	}
}
