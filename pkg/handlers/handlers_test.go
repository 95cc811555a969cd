package handlers_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/JaimeStill/printmg/pkg/handlers"
	"github.com/JaimeStill/printmg/pkg/logging"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestResponses(t *testing.T) {
	logger := logging.Discard()

	tests := []struct {
		name    string
		handler gin.HandlerFunc
		status  int
		body    string
	}{
		{
			name:    "json",
			handler: func(c *gin.Context) { handlers.RespondJSON(c, http.StatusCreated, gin.H{"id": 1}) },
			status:  http.StatusCreated,
			body:    `{"id":1}`,
		},
		{
			name: "error",
			handler: func(c *gin.Context) {
				handlers.RespondError(c, logger, http.StatusNotFound, errors.New("introuvable"))
			},
			status: http.StatusNotFound,
			body:   `{"error":"introuvable"}`,
		},
		{
			name: "detail",
			handler: func(c *gin.Context) {
				handlers.RespondDetail(c, logger, http.StatusForbidden, errors.New("interdit"))
			},
			status: http.StatusForbidden,
			body:   `{"detail":"interdit"}`,
		},
		{
			name: "fields",
			handler: func(c *gin.Context) {
				handlers.RespondFields(c, logger, http.StatusBadRequest, map[string][]string{"email": {"invalide"}})
			},
			status: http.StatusBadRequest,
			body:   `{"email":["invalide"]}`,
		},
		{
			name:    "message",
			handler: func(c *gin.Context) { handlers.RespondMessage(c, http.StatusOK, "ok") },
			status:  http.StatusOK,
			body:    `{"message":"ok"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/", tt.handler)

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, tt.status, rec.Code)
			assert.JSONEq(t, tt.body, rec.Body.String())
		})
	}
}
