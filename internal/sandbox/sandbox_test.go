package sandbox_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/JaimeStill/printmg/internal/backend"
	"github.com/JaimeStill/printmg/internal/config"
	"github.com/JaimeStill/printmg/internal/sandbox"
	"github.com/JaimeStill/printmg/internal/storage"
	"github.com/JaimeStill/printmg/pkg/logging"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type tokenHolder struct {
	mu    sync.Mutex
	token string
}

func (h *tokenHolder) Token(ctx context.Context) (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.token, h.token != ""
}

func (h *tokenHolder) set(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = token
}

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type harness struct {
	srv    *httptest.Server
	tokens *tokenHolder
	client *backend.Client
	clock  *clock
	files  storage.System
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	cfg := &config.SandboxConfig{JWTSecret: "test-secret-key", TokenTTL: "1h"}
	require.NoError(t, cfg.Finalize())
	upload := &config.UploadConfig{MaxUploadSize: "1MB"}
	require.NoError(t, upload.Finalize())

	clk := &clock{now: time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)}
	files := storage.NewMemory()

	sb, err := sandbox.New(cfg, upload, files, logging.Discard(),
		sandbox.WithClock(clk.Now),
		sandbox.WithHashCost(bcrypt.MinCost),
	)
	require.NoError(t, err)

	srv := httptest.NewServer(sb.Handler())
	t.Cleanup(srv.Close)

	tokens := &tokenHolder{}
	client := backend.New(&config.APIConfig{BaseURL: srv.URL, Timeout: "5s"}, tokens, logging.Discard())

	return &harness{srv: srv, tokens: tokens, client: client, clock: clk, files: files}
}

func (h *harness) login(t *testing.T, email, password string) *backend.TokenPair {
	t.Helper()
	pair, err := h.client.ObtainToken(context.Background(), backend.Credentials{Email: email, Password: password})
	require.NoError(t, err)
	h.tokens.set(pair.Access)
	return pair
}

func flyerOrder(quantity string) backend.OrderSubmission {
	return backend.OrderSubmission{
		Fields: []backend.Field{
			{Name: "fileName", Value: "Flyer printemps"},
			{Name: "file_format", Value: "pdf"},
			{Name: "dpi", Value: "300"},
			{Name: "colorProfile", Value: "CMJN"},
			{Name: "format_type", Value: "petit"},
			{Name: "small_format", Value: "A4"},
			{Name: "paper_type", Value: "glace"},
			{Name: "finish", Value: "brillant"},
			{Name: "quantity", Value: quantity},
			{Name: "phone", Value: "0341234567"},
		},
		FileName: "flyer.pdf",
		File:     []byte("%PDF-1.4\n%%EOF\n"),
	}
}

func serverError(t *testing.T, err error) *backend.ServerError {
	t.Helper()
	var se *backend.ServerError
	require.True(t, errors.As(err, &se), "error %v is not a ServerError", err)
	return se
}

func TestSandbox_LoginAndMe(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	pair := h.login(t, sandbox.AdminEmail, sandbox.AdminPassword)
	assert.Equal(t, backend.RoleAdmin, pair.Role)
	assert.NotEmpty(t, pair.Access)

	me, err := h.client.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, sandbox.AdminEmail, me.Email)
	assert.Equal(t, backend.RoleAdmin, me.Role)
}

func TestSandbox_InvalidCredentials(t *testing.T) {
	h := newHarness(t)

	_, err := h.client.ObtainToken(context.Background(), backend.Credentials{
		Email:    sandbox.UserEmail,
		Password: "wrong-password",
	})
	se := serverError(t, err)
	assert.Equal(t, http.StatusUnauthorized, se.Status)
	assert.Equal(t, sandbox.ErrInvalidCredentials.Error(), se.Message())
}

func TestSandbox_RejectedTokens(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	h.tokens.set("not-a-token")
	_, err := h.client.Me(ctx)
	assert.ErrorIs(t, err, backend.ErrTokenExpired)

	h.login(t, sandbox.UserEmail, sandbox.UserPassword)
	_, err = h.client.Me(ctx)
	require.NoError(t, err)

	h.clock.advance(2 * time.Hour)
	_, err = h.client.Me(ctx)
	assert.ErrorIs(t, err, backend.ErrTokenExpired)
}

func TestSandbox_AdminOnly(t *testing.T) {
	h := newHarness(t)
	h.login(t, sandbox.UserEmail, sandbox.UserPassword)

	_, err := h.client.AdminDashboard(context.Background())
	se := serverError(t, err)
	assert.Equal(t, http.StatusForbidden, se.Status)
	assert.Equal(t, sandbox.ErrForbidden.Error(), se.Message())
}

func TestSandbox_SubmitOrder(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.login(t, sandbox.UserEmail, sandbox.UserPassword)

	receipt, err := h.client.SubmitOrder(ctx, flyerOrder("20"))
	require.NoError(t, err)
	assert.True(t, receipt.Success)
	assert.Equal(t, "pending", receipt.PaymentStatus)
	assert.True(t, decimal.NewFromInt(10000).Equal(receipt.Amount), "amount = %s", receipt.Amount)

	list, err := h.client.Orders(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	order := list[0]
	assert.Equal(t, receipt.OrderID, order.ID)
	assert.Equal(t, backend.StatusPending, order.Status)
	assert.Equal(t, "A4", order.Configuration.SmallFormat)
	require.Len(t, order.Files, 1)
	assert.Equal(t, "Flyer printemps", order.Files[0].Name)
	assert.Equal(t, 300, order.Files[0].Resolution)
	assert.Equal(t, "CMJN", order.Files[0].ColorProfile)
}

func TestSandbox_SubmitOrder_Rejected(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*backend.OrderSubmission)
		want   string
	}{
		{
			name:   "below small format minimum",
			modify: func(s *backend.OrderSubmission) { s.Fields[8].Value = "5" },
			want:   "Quantité minimale pour A4 : 20",
		},
		{
			name:   "quantity not a number",
			modify: func(s *backend.OrderSubmission) { s.Fields[8].Value = "beaucoup" },
			want:   sandbox.ErrBadQuantity.Error(),
		},
		{
			name:   "unsupported extension",
			modify: func(s *backend.OrderSubmission) { s.FileName = "flyer.png" },
			want:   "Le fichier doit être au format .pdf ou .jpeg",
		},
		{
			name: "large format beyond limits",
			modify: func(s *backend.OrderSubmission) {
				s.Fields[4].Value = "grand"
				s.Fields[5] = backend.Field{Name: "largeur", Value: "200"}
				s.Fields = append(s.Fields, backend.Field{Name: "hauteur", Value: "80"})
			},
			want: "La limite du grand format est 160x100 cm.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.login(t, sandbox.UserEmail, sandbox.UserPassword)

			sub := flyerOrder("20")
			tt.modify(&sub)

			_, err := h.client.SubmitOrder(context.Background(), sub)
			se := serverError(t, err)
			assert.Equal(t, http.StatusBadRequest, se.Status)
			assert.Equal(t, tt.want, se.Message())
		})
	}
}

func TestSandbox_OrderTrash(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.login(t, sandbox.UserEmail, sandbox.UserPassword)

	receipt, err := h.client.SubmitOrder(ctx, flyerOrder("20"))
	require.NoError(t, err)
	id := receipt.OrderID

	require.NoError(t, h.client.SoftDeleteOrder(ctx, id))
	active, err := h.client.Orders(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)

	trash, err := h.client.DeletedOrders(ctx)
	require.NoError(t, err)
	require.Len(t, trash, 1)
	assert.NotNil(t, trash[0].DeletedAt)

	require.NoError(t, h.client.RestoreOrder(ctx, id))
	active, err = h.client.Orders(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 1)

	require.NoError(t, h.client.DeleteOrderForever(ctx, id))
	active, err = h.client.Orders(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)

	err = h.client.RestoreOrder(ctx, id)
	assert.Equal(t, http.StatusNotFound, backend.MapHTTPStatus(err))
}

func TestSandbox_OrdersAreScopedToOwner(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	h.login(t, sandbox.UserEmail, sandbox.UserPassword)
	receipt, err := h.client.SubmitOrder(ctx, flyerOrder("20"))
	require.NoError(t, err)

	_, err = h.client.Register(ctx, backend.Registration{
		LastName: "Rasoa", FirstName: "Nina", Email: "nina@example.mg", Phone: "0331234567",
		Password: "Secret123", ConfirmPassword: "Secret123",
	})
	require.NoError(t, err)

	h.login(t, "nina@example.mg", "Secret123")
	mine, err := h.client.Orders(ctx)
	require.NoError(t, err)
	assert.Empty(t, mine)

	err = h.client.SoftDeleteOrder(ctx, receipt.OrderID)
	assert.Equal(t, http.StatusNotFound, backend.MapHTTPStatus(err))

	h.login(t, sandbox.AdminEmail, sandbox.AdminPassword)
	all, err := h.client.AllOrders(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	count, err := h.client.AdminOrdersCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSandbox_Notifications(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	h.login(t, sandbox.UserEmail, sandbox.UserPassword)
	require.NoError(t, h.client.SendToAdmin(ctx, "  Bonjour, ma commande est-elle prête ?  "))

	err := h.client.SendToAdmin(ctx, "   ")
	assert.Equal(t, sandbox.ErrEmptyMessage.Error(), serverError(t, err).Message())

	sent, err := h.client.SentNotifications(ctx)
	require.NoError(t, err)
	require.Len(t, sent, 1)
	assert.True(t, sent[0].IsSentByMe)
	assert.Equal(t, "Bonjour, ma commande est-elle prête ?", sent[0].Message)

	h.login(t, sandbox.AdminEmail, sandbox.AdminPassword)
	unread, err := h.client.UnreadCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, unread)

	inbox, err := h.client.Notifications(ctx)
	require.NoError(t, err)
	require.Len(t, inbox, 1)
	require.NotNil(t, inbox[0].Sender)
	assert.Equal(t, sandbox.UserEmail, inbox[0].Sender.Email)
	assert.False(t, inbox[0].IsSentByMe)

	require.NoError(t, h.client.MarkNotificationsRead(ctx))
	unread, err = h.client.UnreadCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, unread)

	id := inbox[0].ID
	require.NoError(t, h.client.SoftDeleteNotification(ctx, id))
	trash, err := h.client.DeletedNotifications(ctx)
	require.NoError(t, err)
	assert.Len(t, trash, 1)

	require.NoError(t, h.client.RestoreNotification(ctx, id))
	inbox, err = h.client.Notifications(ctx)
	require.NoError(t, err)
	assert.Len(t, inbox, 1)

	require.NoError(t, h.client.DeleteNotificationForever(ctx, id))
	inbox, err = h.client.Notifications(ctx)
	require.NoError(t, err)
	assert.Empty(t, inbox)
}

func TestSandbox_AdminNotifications(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	h.login(t, sandbox.UserEmail, sandbox.UserPassword)
	require.NoError(t, h.client.SendToAdmin(ctx, "Question sur un devis"))

	_, err := h.client.AdminNotifications(ctx)
	assert.Equal(t, http.StatusForbidden, serverError(t, err).Status)

	h.login(t, sandbox.AdminEmail, sandbox.AdminPassword)
	admin, err := h.client.Me(ctx)
	require.NoError(t, err)
	require.NoError(t, h.client.SendToUser(ctx, admin.ID, "Note interne"))

	received, err := h.client.Notifications(ctx)
	require.NoError(t, err)
	assert.Len(t, received, 2)

	customers, err := h.client.AdminNotifications(ctx)
	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, "Question sur un devis", customers[0].Message)
	require.NotNil(t, customers[0].Sender)
	assert.Equal(t, sandbox.UserEmail, customers[0].Sender.Email)

	require.NoError(t, h.client.SoftDeleteNotification(ctx, customers[0].ID))
	customers, err = h.client.AdminNotifications(ctx)
	require.NoError(t, err)
	assert.Empty(t, customers)
}

func TestSandbox_UpdateOrderStatusNotifiesOwner(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	h.login(t, sandbox.UserEmail, sandbox.UserPassword)
	receipt, err := h.client.SubmitOrder(ctx, flyerOrder("20"))
	require.NoError(t, err)

	h.login(t, sandbox.AdminEmail, sandbox.AdminPassword)
	require.NoError(t, h.client.UpdateOrderStatus(ctx, receipt.OrderID, backend.StatusPrinting))

	err = h.client.UpdateOrderStatus(ctx, receipt.OrderID, "PERDUE")
	assert.Equal(t, http.StatusBadRequest, backend.MapHTTPStatus(err))

	h.login(t, sandbox.UserEmail, sandbox.UserPassword)
	list, err := h.client.Orders(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, backend.StatusPrinting, list[0].Status)

	inbox, err := h.client.Notifications(ctx)
	require.NoError(t, err)
	require.Len(t, inbox, 1)
	assert.Contains(t, inbox[0].Message, "#1")
}

func TestSandbox_Register(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	reg := backend.Registration{
		LastName: "Rasoa", FirstName: "Nina", Email: "nina@example.mg", Phone: "0331234567",
		Password: "Secret123", ConfirmPassword: "Secret123",
	}

	msg, err := h.client.Register(ctx, reg)
	require.NoError(t, err)
	assert.Equal(t, "Utilisateur créé avec succès", msg.Message)

	_, err = h.client.Register(ctx, reg)
	se := serverError(t, err)
	assert.Equal(t, http.StatusBadRequest, se.Status)
	assert.Equal(t, []string{sandbox.ErrEmailTaken.Error()}, se.Field("email"))

	reg.Email = "autre@example.mg"
	reg.ConfirmPassword = "Different1"
	_, err = h.client.Register(ctx, reg)
	assert.Equal(t, []string{sandbox.ErrPasswordMismatch.Error()}, serverError(t, err).Field("password"))

	_, err = h.client.Register(ctx, backend.Registration{Email: "incomplet"})
	se = serverError(t, err)
	assert.NotEmpty(t, se.Field("nom"))
	assert.NotEmpty(t, se.Field("email"))

	pair := h.login(t, "nina@example.mg", "Secret123")
	assert.Equal(t, backend.RoleUser, pair.Role)
}

func TestSandbox_PasswordReset(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	_, err := h.client.ForgotPassword(ctx, "inconnu@example.mg")
	assert.Equal(t, http.StatusNotFound, backend.MapHTTPStatus(err))

	_, err = h.client.ForgotPassword(ctx, sandbox.UserEmail)
	require.NoError(t, err)

	resp, err := http.Get(h.srv.URL + "/sandbox/outbox/?to=" + sandbox.UserEmail)
	require.NoError(t, err)
	defer resp.Body.Close()

	var mails []sandbox.Mail
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&mails))
	require.Len(t, mails, 1)
	assert.NotEmpty(t, mails[0].UID)
	assert.NotEmpty(t, mails[0].Token)

	reset := backend.PasswordReset{Password: "Nouveau123", ConfirmPassword: "Nouveau123"}
	_, err = h.client.ResetPassword(ctx, mails[0].UID, mails[0].Token, reset)
	require.NoError(t, err)

	_, err = h.client.ResetPassword(ctx, mails[0].UID, mails[0].Token, reset)
	assert.Equal(t, sandbox.ErrInvalidResetLink.Error(), serverError(t, err).Message())

	h.login(t, sandbox.UserEmail, "Nouveau123")
}

func TestSandbox_GoogleLoginCreatesAccount(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	profile := backend.GoogleProfile{Email: "fara@gmail.com", GivenName: "Fara", FamilyName: "Rabe"}
	pair, err := h.client.GoogleLogin(ctx, profile)
	require.NoError(t, err)
	assert.Equal(t, backend.RoleUser, pair.Role)

	h.tokens.set(pair.Access)
	me, err := h.client.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Fara", me.FirstName)

	again, err := h.client.GoogleLogin(ctx, profile)
	require.NoError(t, err)
	h.tokens.set(again.Access)
	me2, err := h.client.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, me.ID, me2.ID)
}

func TestSandbox_Products(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	products, err := h.client.Products(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, products)
	seeded := len(products)

	h.login(t, sandbox.UserEmail, sandbox.UserPassword)
	_, err = h.client.CreateProduct(ctx, backend.Product{Name: "Sticker", Category: "Stickers"})
	assert.Equal(t, http.StatusForbidden, backend.MapHTTPStatus(err))

	h.login(t, sandbox.AdminEmail, sandbox.AdminPassword)
	created, err := h.client.CreateProduct(ctx, backend.Product{
		Name: "Sticker", Category: "Stickers", Price: decimal.NewFromInt(200), DefaultFormat: "A6",
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	_, err = h.client.CreateProduct(ctx, backend.Product{Category: "Stickers"})
	assert.NotEmpty(t, serverError(t, err).Field("name"))

	created.Price = decimal.NewFromInt(250)
	updated, err := h.client.UpdateProduct(ctx, created.ID, *created)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(250).Equal(updated.Price))

	products, err = h.client.Products(ctx)
	require.NoError(t, err)
	assert.Len(t, products, seeded+1)

	require.NoError(t, h.client.DeleteProduct(ctx, created.ID))
	products, err = h.client.Products(ctx)
	require.NoError(t, err)
	assert.Len(t, products, seeded)
}

func TestSandbox_Dashboards(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	h.login(t, sandbox.UserEmail, sandbox.UserPassword)
	_, err := h.client.SubmitOrder(ctx, flyerOrder("20"))
	require.NoError(t, err)
	_, err = h.client.SubmitOrder(ctx, flyerOrder("40"))
	require.NoError(t, err)

	mine, err := h.client.UserDashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, sandbox.UserEmail, mine.Email)
	assert.Equal(t, 2, mine.TotalOrders)
	assert.Equal(t, 2, mine.TotalFiles)
	assert.True(t, decimal.NewFromInt(30000).Equal(mine.TotalAmount))
	require.Len(t, mine.ByMonth, 1)
	assert.Equal(t, "2025-03", mine.ByMonth[0].Month)

	h.login(t, sandbox.AdminEmail, sandbox.AdminPassword)
	dash, err := h.client.AdminDashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, dash.Totals.Users)
	assert.Equal(t, 2, dash.Totals.Orders)
	assert.True(t, decimal.NewFromInt(30000).Equal(dash.Totals.Revenue))
	require.Len(t, dash.ByStatus, 1)
	assert.Equal(t, backend.StatusPending, dash.ByStatus[0].Status)
	assert.Equal(t, 2, dash.ByStatus[0].Count)
	assert.Len(t, dash.RecentOrders, 2)
	assert.Equal(t, "Rabe", dash.RecentOrders[0].LastName)

	users, err := h.client.Users(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
}

func TestSandbox_TrailingSlashOptional(t *testing.T) {
	h := newHarness(t)

	body := strings.NewReader(`{"email":"` + sandbox.UserEmail + `","password":"` + sandbox.UserPassword + `"}`)
	resp, err := http.Post(h.srv.URL+"/api/token", "application/json", body)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var pair backend.TokenPair
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&pair))
	assert.Equal(t, backend.RoleUser, pair.Role)
}

func TestSandbox_Metrics(t *testing.T) {
	h := newHarness(t)

	_, err := h.client.Products(context.Background())
	require.NoError(t, err)

	resp, err := http.Get(h.srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	text := string(data)
	assert.Contains(t, text, `printmg_sandbox_http_requests_total{method="GET",route="/api/produits/",status="200"} 1`)
	assert.Contains(t, text, "printmg_sandbox_orders_active 0")
}

func TestSandbox_CORS(t *testing.T) {
	cfg := &config.SandboxConfig{JWTSecret: "test-secret-key"}
	cfg.CORS.Enabled = true
	cfg.CORS.Origins = []string{"http://localhost:5173"}
	cfg.CORS.AllowCredentials = true
	require.NoError(t, cfg.Finalize())
	upload := &config.UploadConfig{}
	require.NoError(t, upload.Finalize())

	sb, err := sandbox.New(cfg, upload, storage.NewMemory(), logging.Discard(), sandbox.WithHashCost(bcrypt.MinCost))
	require.NoError(t, err)
	srv := httptest.NewServer(sb.Handler())
	t.Cleanup(srv.Close)

	preflight := func(t *testing.T, origin string) *http.Response {
		t.Helper()
		req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/token", nil)
		require.NoError(t, err)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		req.Header.Set("Access-Control-Request-Headers", "authorization, content-type")
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		return resp
	}

	t.Run("preflight from allowed origin", func(t *testing.T) {
		resp := preflight(t, "http://localhost:5173")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "http://localhost:5173", resp.Header.Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", resp.Header.Get("Access-Control-Allow-Credentials"))
		assert.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), http.MethodPost)
		assert.Contains(t, resp.Header.Get("Access-Control-Allow-Headers"), "Authorization")
		assert.Equal(t, "3600", resp.Header.Get("Access-Control-Max-Age"))
	})

	t.Run("preflight from unknown origin", func(t *testing.T) {
		resp := preflight(t, "http://evil.example")
		assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
		assert.Empty(t, resp.Header.Get("Access-Control-Allow-Methods"))
	})

	t.Run("actual request", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/produits/", nil)
		require.NoError(t, err)
		req.Header.Set("Origin", "http://localhost:5173")
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "http://localhost:5173", resp.Header.Get("Access-Control-Allow-Origin"))
	})
}

func TestSandbox_CORSDisabledByDefault(t *testing.T) {
	h := newHarness(t)

	req, err := http.NewRequest(http.MethodGet, h.srv.URL+"/api/produits/", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:5173")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
}
