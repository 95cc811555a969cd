// Package notifications manages messages between customers and the print
// shop: listing by tab and read state, sending, the trash, and a poller for
// the unread count.
package notifications

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/JaimeStill/printmg/internal/backend"
	"github.com/JaimeStill/printmg/pkg/pagination"
	"github.com/JaimeStill/printmg/pkg/query"
)

// PageSize is the default number of notifications per page.
const PageSize = 5

// NewWindow is how long an unread notification is flagged as new.
const NewWindow = 24 * time.Hour

var ErrEmptyMessage = errors.New("le message ne peut pas être vide")

// Tab selects received or sent messages.
type Tab string

const (
	TabReceived Tab = "received"
	TabSent     Tab = "sent"

	// TabCustomers is the administrator inbox of customer messages. It is
	// not selectable through ParseTab.
	TabCustomers Tab = "customers"
)

// ReadState filters on the read flag.
type ReadState string

const (
	ReadAll    ReadState = "all"
	ReadUnread ReadState = "unread"
	ReadRead   ReadState = "read"
)

// ParseTab accepts received or sent; empty means received.
func ParseTab(s string) (Tab, error) {
	switch Tab(strings.ToLower(strings.TrimSpace(s))) {
	case "", TabReceived:
		return TabReceived, nil
	case TabSent:
		return TabSent, nil
	default:
		return "", fmt.Errorf("unknown tab %q (must be received or sent)", s)
	}
}

// ParseReadState accepts all, unread or read; empty means all.
func ParseReadState(s string) (ReadState, error) {
	switch ReadState(strings.ToLower(strings.TrimSpace(s))) {
	case "", ReadAll:
		return ReadAll, nil
	case ReadUnread:
		return ReadUnread, nil
	case ReadRead:
		return ReadRead, nil
	default:
		return "", fmt.Errorf("unknown read state %q (must be all, unread or read)", s)
	}
}

// Filter narrows a notification listing.
type Filter struct {
	Tab  Tab
	Read ReadState
}

func (f Filter) match(n backend.Notification) bool {
	switch f.Read {
	case ReadUnread:
		return !n.IsRead
	case ReadRead:
		return n.IsRead
	case ReadAll, "":
		return true
	default:
		return true
	}
}

// Source is the backend surface of notifications.
type Source interface {
	Notifications(ctx context.Context) ([]backend.Notification, error)
	SentNotifications(ctx context.Context) ([]backend.Notification, error)
	AdminNotifications(ctx context.Context) ([]backend.Notification, error)
	DeletedNotifications(ctx context.Context) ([]backend.Notification, error)
	SendToAdmin(ctx context.Context, message string) error
	SoftDeleteNotification(ctx context.Context, id int) error
	RestoreNotification(ctx context.Context, id int) error
	DeleteNotificationForever(ctx context.Context, id int) error
	UnreadCount(ctx context.Context) (int, error)
	MarkNotificationsRead(ctx context.Context) error
}

// IsNew reports whether n is unread and younger than NewWindow.
func IsNew(n backend.Notification, now time.Time) bool {
	return !n.IsRead && now.Sub(n.CreatedAt) < NewWindow
}

var newestFirst = query.SortField{Field: "created_at", Descending: true}

var comparators = query.Comparators[backend.Notification]{
	"id":         query.Compare(func(n backend.Notification) int { return n.ID }),
	"created_at": func(a, b backend.Notification) int { return a.CreatedAt.Compare(b.CreatedAt) },
}

// Inbox lists and administers notifications.
type Inbox struct {
	source     Source
	pagination pagination.Config
	logger     *slog.Logger
}

// NewInbox creates an inbox. Pages default to PageSize entries, capped by
// cfg.MaxPageSize.
func NewInbox(source Source, cfg pagination.Config, logger *slog.Logger) *Inbox {
	cfg.DefaultPageSize = PageSize
	if cfg.MaxPageSize < PageSize {
		cfg.MaxPageSize = PageSize
	}
	return &Inbox{
		source:     source,
		pagination: cfg,
		logger:     logger.With("system", "notifications"),
	}
}

// List returns a page of notifications of the filter's tab, newest first.
// Search covers the message and the sender.
func (i *Inbox) List(ctx context.Context, filter Filter, req pagination.PageRequest) (pagination.PageResult[backend.Notification], error) {
	fetch := i.source.Notifications
	switch filter.Tab {
	case TabSent:
		fetch = i.source.SentNotifications
	case TabCustomers:
		fetch = i.source.AdminNotifications
	}

	items, err := fetch(ctx)
	if err != nil {
		return pagination.PageResult[backend.Notification]{}, err
	}

	matched := make([]backend.Notification, 0, len(items))
	for _, n := range items {
		if filter.match(n) && query.MatchAny(req.Search, searchable(n)...) {
			matched = append(matched, n)
		}
	}

	return i.page(matched, req), nil
}

// Trash returns a page of soft-deleted notifications.
func (i *Inbox) Trash(ctx context.Context, req pagination.PageRequest) (pagination.PageResult[backend.Notification], error) {
	items, err := i.source.DeletedNotifications(ctx)
	if err != nil {
		return pagination.PageResult[backend.Notification]{}, err
	}
	return i.page(items, req), nil
}

// Send delivers message to the administrators.
func (i *Inbox) Send(ctx context.Context, message string) error {
	message = strings.TrimSpace(message)
	if message == "" {
		return ErrEmptyMessage
	}
	if err := i.source.SendToAdmin(ctx, message); err != nil {
		return err
	}
	i.logger.Info("message sent to admin", "length", len(message))
	return nil
}

// Delete moves a notification to the trash.
func (i *Inbox) Delete(ctx context.Context, id int) error {
	return i.source.SoftDeleteNotification(ctx, id)
}

// Restore brings a notification back from the trash.
func (i *Inbox) Restore(ctx context.Context, id int) error {
	return i.source.RestoreNotification(ctx, id)
}

// Purge deletes a trashed notification permanently.
func (i *Inbox) Purge(ctx context.Context, id int) error {
	return i.source.DeleteNotificationForever(ctx, id)
}

// Open marks every notification read, as opening the notification panel
// does, and returns the resulting unread count.
func (i *Inbox) Open(ctx context.Context) (int, error) {
	if err := i.source.MarkNotificationsRead(ctx); err != nil {
		return 0, err
	}
	return 0, nil
}

// Unread returns the current unread count.
func (i *Inbox) Unread(ctx context.Context) (int, error) {
	return i.source.UnreadCount(ctx)
}

func (i *Inbox) page(items []backend.Notification, req pagination.PageRequest) pagination.PageResult[backend.Notification] {
	req.Normalize(i.pagination)
	query.Sort(items, req.Sort, comparators, newestFirst)
	return pagination.Paginate(items, req)
}

func searchable(n backend.Notification) []string {
	fields := []string{n.Message}
	if n.Sender != nil {
		fields = append(fields, n.Sender.FirstName, n.Sender.LastName, n.Sender.Email)
	}
	return fields
}
