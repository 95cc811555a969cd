package sandbox

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/JaimeStill/printmg/internal/backend"
	"github.com/JaimeStill/printmg/pkg/handlers"
)

func pathID(c *gin.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		return 0, ErrNotFound
	}
	return id, nil
}

func (s *Sandbox) listProducts(c *gin.Context) {
	products := s.state.listProducts()
	if category := strings.TrimSpace(c.Query("categorie")); category != "" {
		filtered := []backend.Product{}
		for _, p := range products {
			if strings.EqualFold(p.Category, category) {
				filtered = append(filtered, p)
			}
		}
		products = filtered
	}
	handlers.RespondJSON(c, http.StatusOK, products)
}

func (s *Sandbox) findProduct(c *gin.Context) {
	id, err := pathID(c)
	if err == nil {
		var p backend.Product
		if p, err = s.state.product(id); err == nil {
			handlers.RespondJSON(c, http.StatusOK, p)
			return
		}
	}
	handlers.RespondDetail(c, s.logger, MapHTTPStatus(err), err)
}

// bindProduct decodes a product body and reports missing or invalid fields.
func (s *Sandbox) bindProduct(c *gin.Context) (backend.Product, bool) {
	var p backend.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		handlers.RespondError(c, s.logger, http.StatusBadRequest, err)
		return p, false
	}

	fields := map[string][]string{}
	if strings.TrimSpace(p.Name) == "" {
		fields["name"] = []string{"Ce champ est obligatoire."}
	}
	if strings.TrimSpace(p.Category) == "" {
		fields["categorie"] = []string{"Ce champ est obligatoire."}
	}
	if p.Price.LessThan(decimal.Zero) {
		fields["prix"] = []string{"Assurez-vous que cette valeur est supérieure ou égale à 0."}
	}
	if len(fields) > 0 {
		handlers.RespondFields(c, s.logger, http.StatusBadRequest, fields)
		return p, false
	}
	return p, true
}

func (s *Sandbox) createProduct(c *gin.Context) {
	p, ok := s.bindProduct(c)
	if !ok {
		return
	}
	created := s.state.createProduct(p)
	s.logger.Info("product created", "id", created.ID, "name", created.Name)
	handlers.RespondJSON(c, http.StatusCreated, created)
}

func (s *Sandbox) updateProduct(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		handlers.RespondDetail(c, s.logger, MapHTTPStatus(err), err)
		return
	}
	p, ok := s.bindProduct(c)
	if !ok {
		return
	}

	updated, err := s.state.updateProduct(id, p)
	if err != nil {
		handlers.RespondDetail(c, s.logger, MapHTTPStatus(err), err)
		return
	}
	handlers.RespondJSON(c, http.StatusOK, updated)
}

func (s *Sandbox) deleteProduct(c *gin.Context) {
	id, err := pathID(c)
	if err == nil {
		err = s.state.deleteProduct(id)
	}
	if err != nil {
		handlers.RespondDetail(c, s.logger, MapHTTPStatus(err), err)
		return
	}
	c.Status(http.StatusNoContent)
}
