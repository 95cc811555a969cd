package sandbox

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/docker/go-units"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/JaimeStill/printmg/internal/backend"
	"github.com/JaimeStill/printmg/internal/i18n"
	"github.com/JaimeStill/printmg/internal/orders"
	"github.com/JaimeStill/printmg/pkg/handlers"
)

const (
	paymentMode    = "MVOLA"
	paymentPending = "pending"

	// multipartOverhead is the allowance for form fields and part headers on
	// top of the file itself.
	multipartOverhead = 1 << 20
)

var (
	unitPrice = decimal.NewFromInt(500)

	maxWidth  = decimal.NewFromInt(160)
	maxHeight = decimal.NewFromInt(100)

	uploadExtensions = []string{".pdf", ".jpg", ".jpeg"}

	smallMinimums = map[orders.SmallFormat]struct {
		label string
		qty   int
	}{
		orders.FormatA5:     {"A5", 30},
		orders.FormatA4:     {"A4", 20},
		orders.FormatA3:     {"A3", 10},
		orders.FormatCustom: {"format personnalisé", 50},
	}
)

type statusRequest struct {
	Status string `json:"statut" validate:"required"`
}

// formValues reads the first value of each multipart field.
type formValues map[string][]string

func (f formValues) get(name string) string {
	if v := f[name]; len(v) > 0 {
		return strings.TrimSpace(v[0])
	}
	return ""
}

// parseOrder checks a submitted print configuration the way the backend
// model does and prices it at quantity × 500.
func parseOrder(form formValues) (backend.Order, error) {
	quantity := 0
	if raw := form.get("quantity"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return backend.Order{}, ErrBadQuantity
		}
		quantity = n
	}
	if quantity < 1 {
		return backend.Order{}, &OrderError{Reason: "La quantité doit être au moins 1."}
	}

	class, err := orders.ParseFormatClass(form.get("format_type"))
	if err != nil {
		return backend.Order{}, &OrderError{Reason: "Le type de format doit être petit ou grand."}
	}

	cfg := backend.PrintConfiguration{
		FormatType: string(class),
		Paper:      form.get("paper_type"),
		Finish:     form.get("finish"),
		Quantity:   quantity,
		Duplex:     form.get("duplex"),
		Binding:    form.get("binding"),
		Cover:      form.get("cover_paper"),
	}

	switch class {
	case orders.FormatLarge:
		width, werr := decimal.NewFromString(form.get("largeur"))
		height, herr := decimal.NewFromString(form.get("hauteur"))
		if werr != nil || herr != nil {
			return backend.Order{}, &OrderError{Reason: "Merci de préciser la largeur et la hauteur pour le grand format."}
		}
		if width.GreaterThan(maxWidth) || height.GreaterThan(maxHeight) {
			return backend.Order{}, &OrderError{Reason: "La limite du grand format est 160x100 cm."}
		}
		cfg.Width, cfg.Height = &width, &height

	case orders.FormatSmall:
		if raw := form.get("small_format"); raw != "" {
			f, err := orders.ParseSmallFormat(raw)
			if err != nil {
				return backend.Order{}, &OrderError{Reason: fmt.Sprintf("Format inconnu : %s", raw)}
			}
			cfg.SmallFormat = string(f)
			if m, ok := smallMinimums[f]; ok && quantity < m.qty {
				return backend.Order{}, &OrderError{Reason: fmt.Sprintf("Quantité minimale pour %s : %d", m.label, m.qty)}
			}
		}
	}

	if raw := form.get("book_pages"); raw != "" {
		pages, err := strconv.Atoi(raw)
		if err != nil || pages < 1 {
			return backend.Order{}, &OrderError{Reason: "Le nombre de pages doit être un entier positif."}
		}
		cfg.BookPages = pages
	}

	phone := form.get("phone")
	if phone == "" {
		return backend.Order{}, &OrderError{Reason: "Le numéro de téléphone est requis."}
	}

	return backend.Order{
		Status:        backend.StatusPending,
		Amount:        decimal.NewFromInt(int64(quantity)).Mul(unitPrice),
		PaymentMode:   paymentMode,
		PaymentStatus: paymentPending,
		Phone:         phone,
		Configuration: cfg,
	}, nil
}

// storeUpload validates the attached file and writes it to storage under a
// fresh key.
func (s *Sandbox) storeUpload(ctx context.Context, fh *multipart.FileHeader, form formValues) (backend.OrderFile, string, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !slices.Contains(uploadExtensions, ext) {
		return backend.OrderFile{}, "", &OrderError{Reason: "Le fichier doit être au format .pdf ou .jpeg"}
	}

	file := backend.OrderFile{
		Name:   form.get("fileName"),
		Format: form.get("file_format"),
		Size:   decimal.NewFromInt(fh.Size).Div(decimal.NewFromInt(1 << 20)).Round(2),
	}
	if file.Name == "" {
		file.Name = fh.Filename
	}
	if file.Format == "" {
		file.Format = strings.TrimPrefix(ext, ".")
	}

	if raw := form.get("dpi"); raw != "" {
		r, err := orders.ParseResolution(raw)
		if err != nil {
			return backend.OrderFile{}, "", &OrderError{Reason: "La résolution doit être 150dpi ou 300dpi."}
		}
		file.Resolution = int(r)
	}
	if raw := form.get("colorProfile"); raw != "" {
		p, err := orders.ParseColorProfile(raw)
		if err != nil {
			return backend.OrderFile{}, "", &OrderError{Reason: "Le profil couleur doit être CMJN ou CYMK."}
		}
		file.ColorProfile = string(p)
	}

	src, err := fh.Open()
	if err != nil {
		return backend.OrderFile{}, "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return backend.OrderFile{}, "", fmt.Errorf("read upload: %w", err)
	}

	key := path.Join("orders", uuid.NewString()+ext)
	if err := s.files.Store(ctx, key, data); err != nil {
		return backend.OrderFile{}, "", fmt.Errorf("store upload: %w", err)
	}
	return file, key, nil
}

func (s *Sandbox) respondOrderFailure(c *gin.Context, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Error("order rejected", "error", err, "status", status)
	} else {
		s.logger.Warn("order rejected", "error", err, "status", status)
	}
	c.AbortWithStatusJSON(status, gin.H{"success": false, "error": err.Error()})
}

func (s *Sandbox) createOrder(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxUpload+multipartOverhead)

	mf, err := c.MultipartForm()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.respondOrderFailure(c, http.StatusRequestEntityTooLarge,
				fmt.Errorf("Le fichier dépasse la taille maximale autorisée (%s).", units.HumanSize(float64(s.maxUpload))))
			return
		}
		s.respondOrderFailure(c, http.StatusBadRequest, fmt.Errorf("Requête multipart invalide : %w", err))
		return
	}

	form := formValues(mf.Value)
	order, err := parseOrder(form)
	if err != nil {
		s.respondOrderFailure(c, MapHTTPStatus(err), err)
		return
	}

	var keys []string
	if fhs := mf.File["file"]; len(fhs) > 0 {
		file, key, err := s.storeUpload(c.Request.Context(), fhs[0], form)
		if err != nil {
			s.respondOrderFailure(c, MapHTTPStatus(err), err)
			return
		}
		order.Files = []backend.OrderFile{file}
		keys = append(keys, key)
	}

	user := currentUser(c)
	created := s.state.createOrder(user.ID, order, keys)
	s.metrics.orders.Inc()
	s.logger.Info("order created", "commande_id", created.ID, "user", user.Email, "montant_total", created.Amount)

	handlers.RespondJSON(c, http.StatusOK, backend.OrderReceipt{
		Success:       true,
		OrderID:       created.ID,
		PaymentStatus: created.PaymentStatus,
		Amount:        created.Amount,
	})
}

func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

func (s *Sandbox) listOrders(c *gin.Context) {
	handlers.RespondJSON(c, http.StatusOK, orEmpty(s.state.orderList(currentUser(c).ID, false)))
}

func (s *Sandbox) allOrders(c *gin.Context) {
	handlers.RespondJSON(c, http.StatusOK, orEmpty(s.state.orderList(0, false)))
}

// deletedOrders lists the caller's trash; administrators see every
// trashed order.
func (s *Sandbox) deletedOrders(c *gin.Context) {
	user := currentUser(c)
	owner := user.ID
	if user.Role == backend.RoleAdmin {
		owner = 0
	}
	handlers.RespondJSON(c, http.StatusOK, orEmpty(s.state.orderList(owner, true)))
}

func (s *Sandbox) softDeleteOrder(c *gin.Context) {
	id, err := pathID(c)
	if err == nil {
		err = s.state.softDeleteOrder(currentUser(c), id)
	}
	if err != nil {
		handlers.RespondError(c, s.logger, MapHTTPStatus(err), err)
		return
	}
	handlers.RespondMessage(c, http.StatusOK, "Commande déplacée dans la corbeille.")
}

func (s *Sandbox) restoreOrder(c *gin.Context) {
	id, err := pathID(c)
	if err == nil {
		err = s.state.restoreOrder(currentUser(c), id)
	}
	if err != nil {
		handlers.RespondError(c, s.logger, MapHTTPStatus(err), err)
		return
	}
	handlers.RespondMessage(c, http.StatusOK, "Commande restaurée.")
}

func (s *Sandbox) purgeOrder(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		handlers.RespondError(c, s.logger, MapHTTPStatus(err), err)
		return
	}

	keys, err := s.state.purgeOrder(currentUser(c), id)
	if err != nil {
		handlers.RespondError(c, s.logger, MapHTTPStatus(err), err)
		return
	}
	for _, key := range keys {
		if err := s.files.Delete(c.Request.Context(), key); err != nil {
			s.logger.Warn("delete order file", "key", key, "error", err)
		}
	}
	handlers.RespondMessage(c, http.StatusOK, "Commande supprimée définitivement.")
}

func (s *Sandbox) ordersCount(c *gin.Context) {
	handlers.RespondJSON(c, http.StatusOK, backend.Count{Count: s.state.activeOrders()})
}

// updateOrderStatus moves an order through its lifecycle and notifies the
// owner.
func (s *Sandbox) updateOrderStatus(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		handlers.RespondError(c, s.logger, MapHTTPStatus(err), err)
		return
	}

	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlers.RespondError(c, s.logger, http.StatusBadRequest, err)
		return
	}
	if fields := fieldErrors(req); fields != nil {
		handlers.RespondFields(c, s.logger, http.StatusBadRequest, fields)
		return
	}

	status := strings.ToUpper(strings.TrimSpace(req.Status))
	owner, err := s.state.setOrderStatus(id, status)
	if err != nil {
		handlers.RespondError(c, s.logger, MapHTTPStatus(err), err)
		return
	}

	label := i18n.New(i18n.Fallback).StatusLabel(status)
	message := fmt.Sprintf("Votre commande #%d est maintenant : %s", id, label)
	if err := s.state.notify(currentUser(c).ID, owner, message); err != nil {
		s.logger.Warn("notify order owner", "commande_id", id, "error", err)
	}

	s.logger.Info("order status changed", "commande_id", id, "statut", status)
	handlers.RespondMessage(c, http.StatusOK, "Statut mis à jour.")
}
