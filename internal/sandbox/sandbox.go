// Package sandbox is an in-memory stand-in for the print backend. It serves
// every endpoint the client consumes, with seeded accounts and products, so
// the SDK and the CLI can run without the real service.
package sandbox

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/JaimeStill/printmg/internal/config"
	"github.com/JaimeStill/printmg/internal/storage"
	"github.com/JaimeStill/printmg/pkg/middleware"
	"github.com/JaimeStill/printmg/pkg/routes"
)

// Sandbox is the HTTP application of the stand-in backend.
type Sandbox struct {
	state     *state
	tokens    *issuer
	files     storage.System
	mail      *outbox
	metrics   *metrics
	logger    *slog.Logger
	maxUpload int64
	routes    []string
	handler   http.Handler
}

type options struct {
	now  func() time.Time
	cost int
}

// Option configures a Sandbox.
type Option func(*options)

// WithClock replaces the clock used for timestamps and token expiry.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithHashCost sets the bcrypt cost of stored passwords.
func WithHashCost(cost int) Option {
	return func(o *options) {
		o.cost = cost
	}
}

// New creates a seeded sandbox storing uploaded files in files.
func New(cfg *config.SandboxConfig, upload *config.UploadConfig, files storage.System, logger *slog.Logger, opts ...Option) (*Sandbox, error) {
	o := options{now: time.Now, cost: bcrypt.DefaultCost}
	for _, opt := range opts {
		opt(&o)
	}

	st := newState(o.now, o.cost)
	if err := seed(st); err != nil {
		return nil, fmt.Errorf("seed sandbox: %w", err)
	}

	s := &Sandbox{
		state: st,
		tokens: &issuer{
			secret: []byte(cfg.JWTSecret),
			ttl:    cfg.TokenTTLDuration(),
			now:    o.now,
		},
		files:     files,
		mail:      &outbox{},
		metrics:   newMetrics(st),
		logger:    logger.With("system", "sandbox"),
		maxUpload: upload.MaxUploadSizeBytes(),
	}

	engine := gin.New()
	engine.MaxMultipartMemory = s.maxUpload
	engine.Use(gin.Recovery(), s.metrics.middleware(), requestLogger(s.logger))
	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"detail": ErrNotFound.Error()})
	})

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/metrics", gin.WrapH(s.metrics.handler()))

	s.routes = routes.Register(engine, s.groups()...)
	s.handler = middleware.Chain(engine,
		middleware.CORS(&cfg.CORS),
		middleware.AddSlash("/api/"),
	)

	return s, nil
}

// Handler returns the root HTTP handler.
func (s *Sandbox) Handler() http.Handler {
	return s.handler
}

// Routes lists the method and path of every API route.
func (s *Sandbox) Routes() []string {
	return s.routes
}

func (s *Sandbox) groups() []routes.Group {
	auth := s.authenticate()
	admin := requireAdmin(s.logger)

	return []routes.Group{
		{
			Prefix:      "/api",
			Description: "Public endpoints",
			Routes: []routes.Route{
				{Method: http.MethodPost, Pattern: "/token/", Handler: s.obtainToken},
				{Method: http.MethodPost, Pattern: "/google-login/", Handler: s.googleLogin},
				{Method: http.MethodPost, Pattern: "/register/", Handler: s.register},
				{Method: http.MethodPost, Pattern: "/mot-de-passe-oublie/", Handler: s.forgotPassword},
				{Method: http.MethodPost, Pattern: "/reinitialiser-mot-de-passe/:uid/:token/", Handler: s.resetPassword},
				{Method: http.MethodGet, Pattern: "/produits/", Handler: s.listProducts},
				{Method: http.MethodGet, Pattern: "/produits/:id/", Handler: s.findProduct},
			},
		},
		{
			Prefix:      "/api",
			Description: "Endpoints of signed-in users",
			Middleware:  []gin.HandlerFunc{auth},
			Routes: []routes.Route{
				{Method: http.MethodGet, Pattern: "/me/", Handler: s.me},
				{Method: http.MethodPost, Pattern: "/commande/", Handler: s.createOrder},
				{Method: http.MethodGet, Pattern: "/commandes/", Handler: s.listOrders},
				{Method: http.MethodGet, Pattern: "/commandes/deleted/", Handler: s.deletedOrders},
				{Method: http.MethodPost, Pattern: "/commandes/:id/soft_delete/", Handler: s.softDeleteOrder},
				{Method: http.MethodPost, Pattern: "/commandes/:id/restore/", Handler: s.restoreOrder},
				{Method: http.MethodDelete, Pattern: "/commandes/:id/delete_forever/", Handler: s.purgeOrder},
				{Method: http.MethodGet, Pattern: "/notifications/", Handler: s.receivedNotifications},
				{Method: http.MethodGet, Pattern: "/sent-notifications/", Handler: s.sentNotifications},
				{Method: http.MethodGet, Pattern: "/notifications/deleted/", Handler: s.deletedNotifications},
				{Method: http.MethodPost, Pattern: "/send-notification-admin/", Handler: s.sendToAdmin},
				{Method: http.MethodPost, Pattern: "/notifications/delete/:id/", Handler: s.softDeleteNotification},
				{Method: http.MethodPost, Pattern: "/notifications/restore/:id/", Handler: s.restoreNotification},
				{Method: http.MethodDelete, Pattern: "/notifications/delete-forever/:id/", Handler: s.purgeNotification},
				{Method: http.MethodGet, Pattern: "/unread-count/", Handler: s.unreadCount},
				{Method: http.MethodPost, Pattern: "/mark-notifications-read/", Handler: s.markRead},
				{Method: http.MethodGet, Pattern: "/user/dashboard-stats/", Handler: s.userDashboard},
			},
			Children: []routes.Group{
				{
					Description: "Administration",
					Middleware:  []gin.HandlerFunc{admin},
					Routes: []routes.Route{
						{Method: http.MethodPost, Pattern: "/produits/", Handler: s.createProduct},
						{Method: http.MethodPut, Pattern: "/produits/:id/", Handler: s.updateProduct},
						{Method: http.MethodDelete, Pattern: "/produits/:id/", Handler: s.deleteProduct},
						{Method: http.MethodGet, Pattern: "/admin/commandes/", Handler: s.allOrders},
						{Method: http.MethodGet, Pattern: "/admin/commandes/count/", Handler: s.ordersCount},
						{Method: http.MethodGet, Pattern: "/admin/dashboard/", Handler: s.adminDashboard},
						{Method: http.MethodGet, Pattern: "/users/", Handler: s.listUsers},
						{Method: http.MethodGet, Pattern: "/notifications-admin/", Handler: s.adminNotifications},
						{Method: http.MethodPost, Pattern: "/send-notification/", Handler: s.sendToUser},
					},
				},
			},
		},
		{
			Prefix:      "/commandes",
			Description: "Order status changes",
			Middleware:  []gin.HandlerFunc{auth, admin},
			Routes: []routes.Route{
				{Method: http.MethodPost, Pattern: "/:id/update_statut/", Handler: s.updateOrderStatus},
			},
		},
		{
			Prefix:      "/sandbox",
			Description: "Development helpers",
			Routes: []routes.Route{
				{Method: http.MethodGet, Pattern: "/outbox/", Handler: s.outbox},
			},
		},
	}
}
