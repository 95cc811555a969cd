package backend

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
)

// SubmitOrder posts a new order as a single multipart request.
// A response with success=false is returned as a *ServerError.
func (c *Client) SubmitOrder(ctx context.Context, sub OrderSubmission) (*OrderReceipt, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, f := range sub.Fields {
		if err := w.WriteField(f.Name, f.Value); err != nil {
			return nil, fmt.Errorf("write field %s: %w", f.Name, err)
		}
	}

	if sub.File != nil {
		part, err := w.CreateFormFile("file", sub.FileName)
		if err != nil {
			return nil, fmt.Errorf("create file part: %w", err)
		}
		if _, err := part.Write(sub.File); err != nil {
			return nil, fmt.Errorf("write file part: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close multipart body: %w", err)
	}

	var receipt OrderReceipt
	if err := c.send(ctx, http.MethodPost, "/api/commande/", &buf, w.FormDataContentType(), true, &receipt); err != nil {
		return nil, err
	}

	if !receipt.Success {
		se := &ServerError{Status: http.StatusOK, Fields: map[string][]string{}}
		if receipt.Error != "" {
			se.Fields["error"] = []string{receipt.Error}
		}
		return nil, se
	}

	c.logger.Info("order submitted", "commande_id", receipt.OrderID, "paiement_status", receipt.PaymentStatus)
	return &receipt, nil
}

// Orders lists the orders of the signed-in user, excluding the trash.
func (c *Client) Orders(ctx context.Context) ([]Order, error) {
	var orders []Order
	if err := c.getJSON(ctx, "/api/commandes/", true, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// AllOrders lists every order on the platform. Administrators only.
func (c *Client) AllOrders(ctx context.Context) ([]Order, error) {
	var orders []Order
	if err := c.getJSON(ctx, "/api/admin/commandes/", true, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// DeletedOrders lists the orders in the trash.
func (c *Client) DeletedOrders(ctx context.Context) ([]Order, error) {
	var orders []Order
	if err := c.getJSON(ctx, "/api/commandes/deleted/", true, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// SoftDeleteOrder moves order id to the trash.
func (c *Client) SoftDeleteOrder(ctx context.Context, id int) error {
	return c.doJSON(ctx, http.MethodPost, fmt.Sprintf("/api/commandes/%d/soft_delete/", id), nil, true, nil)
}

// RestoreOrder takes order id out of the trash.
func (c *Client) RestoreOrder(ctx context.Context, id int) error {
	return c.doJSON(ctx, http.MethodPost, fmt.Sprintf("/api/commandes/%d/restore/", id), nil, true, nil)
}

// DeleteOrderForever removes order id permanently.
func (c *Client) DeleteOrderForever(ctx context.Context, id int) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/commandes/%d/delete_forever/", id), nil, true, nil)
}

// UpdateOrderStatus moves order id to status and notifies its owner.
// Administrators only.
func (c *Client) UpdateOrderStatus(ctx context.Context, id int, status string) error {
	body := map[string]string{"statut": status}
	return c.doJSON(ctx, http.MethodPost, fmt.Sprintf("/commandes/%d/update_statut/", id), body, true, nil)
}
