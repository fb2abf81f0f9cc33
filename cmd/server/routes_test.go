package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"trivix-payroll.backend/internal/interfaces/http/handlers"
	"trivix-payroll.backend/internal/interfaces/http/middleware"
)

func TestRegisterAPIV1Routes_RegistersKeyRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	registerAPIV1Routes(r, routeDeps{
		payrollHandler:  &handlers.PayrollHandler{},
		payeeHandler:    &handlers.PayeeHandler{},
		scheduleHandler: &handlers.ScheduleHandler{},
		historyHandler:  &handlers.HistoryHandler{},
		authMiddleware: func(c *gin.Context) {
			c.Next()
		},
	})
	registerInternalRoutes(r, &handlers.SweepHandler{}, func(c *gin.Context) { c.Next() })

	expects := []struct {
		method string
		path   string
	}{
		{"POST", "/api/v1/connect/:businessId/:payeeId"},
		{"POST", "/api/v1/payees"},
		{"PATCH", "/api/v1/payees/:id/status"},
		{"POST", "/api/v1/payroll/workers"},
		{"POST", "/api/v1/payroll/contractors/:id"},
		{"PUT", "/api/v1/payroll/schedule"},
		{"GET", "/api/v1/payments/stale"},
		{"POST", "/api/v1/payments/:id/cancel"},
		{"POST", "/api/v1/history/pool-transfers"},
		{"POST", "/internal/payroll/sweep"},
	}

	routes := r.Routes()
	for _, exp := range expects {
		found := false
		for _, route := range routes {
			if route.Method == exp.method && route.Path == exp.path {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("route %s %s not registered", exp.method, exp.path)
		}
	}
}

func TestRegisterInternalRoutes_Guarded(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	registerInternalRoutes(r, &handlers.SweepHandler{}, middleware.InternalTokenMiddleware(""))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/internal/payroll/sweep", nil))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestApplyCORSMiddleware_PayrollClients(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	applyCORSMiddleware(r)
	reached := 0
	r.POST("/api/v1/payroll/workers", func(c *gin.Context) {
		reached++
		c.Status(http.StatusAccepted)
	})

	t.Run("dashboard origin is echoed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/payroll/workers", nil)
		req.Header.Set("Origin", "https://app.trivix.io")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		require.Equal(t, http.StatusAccepted, rec.Code)
		assert.Equal(t, "https://app.trivix.io", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "Origin", rec.Header().Get("Vary"))
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Idempotency-Key")
	})

	t.Run("no origin sets no allow-origin", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/payroll/workers", nil))

		require.Equal(t, http.StatusAccepted, rec.Code)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight stops before the payout handler", func(t *testing.T) {
		before := reached
		req := httptest.NewRequest(http.MethodOptions, "/api/v1/payroll/workers", nil)
		req.Header.Set("Origin", "https://app.trivix.io")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "PATCH")
		assert.Equal(t, before, reached)
	})
}

func TestRegisterHealthRoute_ReportsService(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	registerHealthRoute(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, healthPath, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Status  string `json:"status"`
		Service string `json:"service"`
		Version string `json:"version"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "trivix-payroll-backend", body.Service)
	assert.Equal(t, serviceVersion, body.Version)
}
