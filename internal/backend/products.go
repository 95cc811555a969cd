package backend

import (
	"context"
	"fmt"
	"net/http"
)

// Products lists the catalog. The catalog is public.
func (c *Client) Products(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := c.getJSON(ctx, "/api/produits/", false, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// CreateProduct adds a catalog entry.
func (c *Client) CreateProduct(ctx context.Context, p Product) (*Product, error) {
	var created Product
	if err := c.doJSON(ctx, http.MethodPost, "/api/produits/", p, true, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateProduct replaces the catalog entry id.
func (c *Client) UpdateProduct(ctx context.Context, id int, p Product) (*Product, error) {
	var updated Product
	if err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/api/produits/%d/", id), p, true, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteProduct removes the catalog entry id.
func (c *Client) DeleteProduct(ctx context.Context, id int) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/produits/%d/", id), nil, true, nil)
}
