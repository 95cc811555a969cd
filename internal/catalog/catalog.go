// Package catalog caches the product catalog for the lifetime of a client.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/JaimeStill/printmg/internal/backend"
	"github.com/JaimeStill/printmg/pkg/pagination"
	"github.com/JaimeStill/printmg/pkg/query"
)

var ErrNotFound = errors.New("produit introuvable")

// Source is the backend surface the catalog reads and administers.
type Source interface {
	Products(ctx context.Context) ([]backend.Product, error)
	CreateProduct(ctx context.Context, p backend.Product) (*backend.Product, error)
	UpdateProduct(ctx context.Context, id int, p backend.Product) (*backend.Product, error)
	DeleteProduct(ctx context.Context, id int) error
}

// Filter narrows a product listing.
type Filter struct {
	Category string
}

var comparators = query.Comparators[backend.Product]{
	"id":        query.Compare(func(p backend.Product) int { return p.ID }),
	"name":      query.Compare(func(p backend.Product) string { return query.Fold(p.Name) }),
	"categorie": query.Compare(func(p backend.Product) string { return query.Fold(p.Category) }),
	"prix":      func(a, b backend.Product) int { return a.Price.Cmp(b.Price) },
}

// Catalog fetches products once and serves them from memory until a write
// invalidates the cache.
type Catalog struct {
	source     Source
	pagination pagination.Config
	logger     *slog.Logger

	mu       sync.Mutex
	products []backend.Product
	loaded   bool
}

// New creates a catalog over source.
func New(source Source, cfg pagination.Config, logger *slog.Logger) *Catalog {
	return &Catalog{
		source:     source,
		pagination: cfg,
		logger:     logger.With("system", "catalog"),
	}
}

// Products returns every product, fetching them on first use.
func (c *Catalog) Products(ctx context.Context) ([]backend.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.loaded {
		products, err := c.source.Products(ctx)
		if err != nil {
			return nil, err
		}
		c.products = products
		c.loaded = true
		c.logger.Debug("catalog loaded", "products", len(products))
	}

	return slices.Clone(c.products), nil
}

// Find returns the product with id.
func (c *Catalog) Find(ctx context.Context, id int) (backend.Product, error) {
	products, err := c.Products(ctx)
	if err != nil {
		return backend.Product{}, err
	}

	i := slices.IndexFunc(products, func(p backend.Product) bool { return p.ID == id })
	if i < 0 {
		return backend.Product{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return products[i], nil
}

// Categories returns the distinct product categories in alphabetical order.
func (c *Catalog) Categories(ctx context.Context) ([]string, error) {
	products, err := c.Products(ctx)
	if err != nil {
		return nil, err
	}

	var cats []string
	for _, p := range products {
		if p.Category != "" && !slices.Contains(cats, p.Category) {
			cats = append(cats, p.Category)
		}
	}
	slices.Sort(cats)
	return cats, nil
}

// List returns a page of products matching filter. Search covers the name,
// description and id.
func (c *Catalog) List(ctx context.Context, filter Filter, req pagination.PageRequest) (pagination.PageResult[backend.Product], error) {
	products, err := c.Products(ctx)
	if err != nil {
		return pagination.PageResult[backend.Product]{}, err
	}
	req.Normalize(c.pagination)

	matched := make([]backend.Product, 0, len(products))
	for _, p := range products {
		if filter.Category != "" && !strings.EqualFold(p.Category, filter.Category) {
			continue
		}
		if !query.MatchAny(req.Search, p.Name, p.Description, strconv.Itoa(p.ID)) {
			continue
		}
		matched = append(matched, p)
	}

	query.Sort(matched, req.Sort, comparators, query.SortField{Field: "id"})
	return pagination.Paginate(matched, req), nil
}

// Create adds a product and invalidates the cache.
func (c *Catalog) Create(ctx context.Context, p backend.Product) (*backend.Product, error) {
	created, err := c.source.CreateProduct(ctx, p)
	if err != nil {
		return nil, err
	}
	c.Invalidate()
	c.logger.Info("product created", "id", created.ID, "name", created.Name)
	return created, nil
}

// Update replaces a product and invalidates the cache.
func (c *Catalog) Update(ctx context.Context, id int, p backend.Product) (*backend.Product, error) {
	updated, err := c.source.UpdateProduct(ctx, id, p)
	if err != nil {
		return nil, err
	}
	c.Invalidate()
	c.logger.Info("product updated", "id", id)
	return updated, nil
}

// Delete removes a product and invalidates the cache.
func (c *Catalog) Delete(ctx context.Context, id int) error {
	if err := c.source.DeleteProduct(ctx, id); err != nil {
		return err
	}
	c.Invalidate()
	c.logger.Info("product deleted", "id", id)
	return nil
}

// Invalidate drops the cached products.
func (c *Catalog) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products = nil
	c.loaded = false
}
