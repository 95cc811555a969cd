package routes_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/JaimeStill/printmg/pkg/routes"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRegister(t *testing.T) {
	ok := func(c *gin.Context) { c.Status(http.StatusNoContent) }
	var hits int
	count := func(c *gin.Context) { hits++ }

	engine := gin.New()
	table := routes.Register(engine, routes.Group{
		Prefix: "/api",
		Routes: []routes.Route{
			{Method: http.MethodGet, Pattern: "/produits/", Handler: ok},
		},
		Children: []routes.Group{
			{
				Prefix:     "/admin",
				Middleware: []gin.HandlerFunc{count},
				Routes: []routes.Route{
					{Method: http.MethodGet, Pattern: "/dashboard/", Handler: ok},
				},
			},
		},
	})

	want := []string{"GET /api/produits/", "GET /api/admin/dashboard/"}
	if len(table) != len(want) {
		t.Fatalf("table = %v, want %v", table, want)
	}
	for i := range want {
		if table[i] != want[i] {
			t.Errorf("table[%d] = %q, want %q", i, table[i], want[i])
		}
	}

	for _, p := range []string{"/api/produits/", "/api/admin/dashboard/"} {
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, p, nil))
		if rec.Code != http.StatusNoContent {
			t.Errorf("GET %s status = %d, want %d", p, rec.Code, http.StatusNoContent)
		}
	}

	if hits != 1 {
		t.Errorf("group middleware hits = %d, want 1", hits)
	}
}
