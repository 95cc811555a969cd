package backend

import (
	"context"
	"fmt"
	"net/http"
)

// Notifications lists the notifications received by the signed-in user.
func (c *Client) Notifications(ctx context.Context) ([]Notification, error) {
	var ns []Notification
	if err := c.getJSON(ctx, "/api/notifications/", true, &ns); err != nil {
		return nil, err
	}
	return ns, nil
}

// AdminNotifications lists the messages customers sent to the signed-in
// administrator.
func (c *Client) AdminNotifications(ctx context.Context) ([]Notification, error) {
	var ns []Notification
	if err := c.getJSON(ctx, "/api/notifications-admin/", true, &ns); err != nil {
		return nil, err
	}
	return ns, nil
}

// SentNotifications lists the notifications the signed-in user sent.
func (c *Client) SentNotifications(ctx context.Context) ([]Notification, error) {
	var ns []Notification
	if err := c.getJSON(ctx, "/api/sent-notifications/", true, &ns); err != nil {
		return nil, err
	}
	return ns, nil
}

// DeletedNotifications lists the notifications in the trash.
func (c *Client) DeletedNotifications(ctx context.Context) ([]Notification, error) {
	var ns []Notification
	if err := c.getJSON(ctx, "/api/notifications/deleted/", true, &ns); err != nil {
		return nil, err
	}
	return ns, nil
}

// SendToAdmin sends a message to the administrators.
func (c *Client) SendToAdmin(ctx context.Context, message string) error {
	body := map[string]string{"message": message}
	return c.doJSON(ctx, http.MethodPost, "/api/send-notification-admin/", body, true, nil)
}

// SoftDeleteNotification moves notification id to the trash.
func (c *Client) SoftDeleteNotification(ctx context.Context, id int) error {
	return c.doJSON(ctx, http.MethodPost, fmt.Sprintf("/api/notifications/delete/%d/", id), nil, true, nil)
}

// RestoreNotification takes notification id out of the trash.
func (c *Client) RestoreNotification(ctx context.Context, id int) error {
	return c.doJSON(ctx, http.MethodPost, fmt.Sprintf("/api/notifications/restore/%d/", id), nil, true, nil)
}

// DeleteNotificationForever removes notification id permanently.
func (c *Client) DeleteNotificationForever(ctx context.Context, id int) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/notifications/delete-forever/%d/", id), nil, true, nil)
}

// UnreadCount returns the number of unread notifications.
func (c *Client) UnreadCount(ctx context.Context) (int, error) {
	var out UnreadCount
	if err := c.getJSON(ctx, "/api/unread-count/", true, &out); err != nil {
		return 0, err
	}
	return out.UnreadCount, nil
}

// MarkNotificationsRead marks every received notification as read.
func (c *Client) MarkNotificationsRead(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "/api/mark-notifications-read/", nil, true, nil)
}

// SendToUser sends a message to one account. Administrators only.
func (c *Client) SendToUser(ctx context.Context, userID int, message string) error {
	body := map[string]any{"user_id": userID, "message": message}
	return c.doJSON(ctx, http.MethodPost, "/api/send-notification/", body, true, nil)
}
