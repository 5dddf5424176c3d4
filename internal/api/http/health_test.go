package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name    string
		store   Pinger
		storage string
	}{
		{"no store", nil, "disabled"},
		{"store up", pingFunc(func(context.Context) error { return nil }), "up"},
		{"store down", pingFunc(func(context.Context) error { return errors.New("refused") }), "down"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			NewHealthHandler("portfolio-api", "1.2.3", tc.store).RegisterRoutes(r)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
			require.Equal(t, http.StatusOK, w.Code)

			var resp HealthResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "ok", resp.Status)
			assert.Equal(t, "portfolio-api", resp.Service)
			assert.Equal(t, "1.2.3", resp.Version)
			assert.Equal(t, tc.storage, resp.Storage)
		})
	}
}
