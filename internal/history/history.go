// Package history lists the signed-in user's orders and manages the order
// trash.
package history

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/JaimeStill/printmg/internal/backend"
	"github.com/JaimeStill/printmg/pkg/pagination"
	"github.com/JaimeStill/printmg/pkg/query"
)

// Source is the backend surface of the order history.
type Source interface {
	Orders(ctx context.Context) ([]backend.Order, error)
	AllOrders(ctx context.Context) ([]backend.Order, error)
	DeletedOrders(ctx context.Context) ([]backend.Order, error)
	SoftDeleteOrder(ctx context.Context, id int) error
	RestoreOrder(ctx context.Context, id int) error
	DeleteOrderForever(ctx context.Context, id int) error
}

// Filter narrows an order listing. All lists every customer's orders and
// requires the admin role.
type Filter struct {
	Status string
	All    bool
}

var comparators = query.Comparators[backend.Order]{
	"id":      query.Compare(func(o backend.Order) int { return o.ID }),
	"date":    func(a, b backend.Order) int { return a.CreatedAt.Compare(b.CreatedAt) },
	"statut":  query.Compare(func(o backend.Order) string { return o.Status }),
	"montant": func(a, b backend.Order) int { return a.Amount.Cmp(b.Amount) },
}

var newestFirst = query.SortField{Field: "date", Descending: true}

// History reads orders fresh on every call.
type History struct {
	source     Source
	pagination pagination.Config
	logger     *slog.Logger
}

// New creates an order history over source.
func New(source Source, cfg pagination.Config, logger *slog.Logger) *History {
	return &History{
		source:     source,
		pagination: cfg,
		logger:     logger.With("system", "history"),
	}
}

// List returns a page of orders, newest first unless req sorts otherwise.
// Search covers the order number, status and file names.
func (h *History) List(ctx context.Context, filter Filter, req pagination.PageRequest) (pagination.PageResult[backend.Order], error) {
	fetch := h.source.Orders
	if filter.All {
		fetch = h.source.AllOrders
	}

	orders, err := fetch(ctx)
	if err != nil {
		return pagination.PageResult[backend.Order]{}, err
	}

	matched := make([]backend.Order, 0, len(orders))
	for _, o := range orders {
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		if !query.MatchAny(req.Search, searchable(o)...) {
			continue
		}
		matched = append(matched, o)
	}

	return h.page(matched, req), nil
}

// Trash returns a page of soft-deleted orders, most recently deleted first.
func (h *History) Trash(ctx context.Context, req pagination.PageRequest) (pagination.PageResult[backend.Order], error) {
	orders, err := h.source.DeletedOrders(ctx)
	if err != nil {
		return pagination.PageResult[backend.Order]{}, err
	}

	matched := make([]backend.Order, 0, len(orders))
	for _, o := range orders {
		if query.MatchAny(req.Search, searchable(o)...) {
			matched = append(matched, o)
		}
	}

	return h.page(matched, req), nil
}

// Delete moves an order to the trash.
func (h *History) Delete(ctx context.Context, id int) error {
	if err := h.source.SoftDeleteOrder(ctx, id); err != nil {
		return err
	}
	h.logger.Info("order trashed", "id", id)
	return nil
}

// Restore brings an order back from the trash.
func (h *History) Restore(ctx context.Context, id int) error {
	if err := h.source.RestoreOrder(ctx, id); err != nil {
		return err
	}
	h.logger.Info("order restored", "id", id)
	return nil
}

// Purge deletes a trashed order permanently.
func (h *History) Purge(ctx context.Context, id int) error {
	if err := h.source.DeleteOrderForever(ctx, id); err != nil {
		return err
	}
	h.logger.Info("order purged", "id", id)
	return nil
}

func (h *History) page(orders []backend.Order, req pagination.PageRequest) pagination.PageResult[backend.Order] {
	req.Normalize(h.pagination)
	query.Sort(orders, req.Sort, comparators, newestFirst)
	return pagination.Paginate(orders, req)
}

func searchable(o backend.Order) []string {
	fields := []string{strconv.Itoa(o.ID), o.Status, o.Customer}
	for _, f := range o.Files {
		fields = append(fields, f.Name)
	}
	return fields
}
