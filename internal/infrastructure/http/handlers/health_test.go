package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func readiness(t *testing.T, h *HealthDependenciesHandler) (int, readinessResponse) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rec := httptest.NewRecorder()
	if err := h.Readiness(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp readinessResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return rec.Code, resp
}

func ok(context.Context) error { return nil }

func TestLiveness(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	if err := NewHealthHandler().Liveness(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestReadiness_AllUp(t *testing.T) {
	code, resp := readiness(t, &HealthDependenciesHandler{mongo: ok, redis: ok})
	if code != http.StatusOK || resp.Status != "ok" {
		t.Fatalf("expected ok, got %d %+v", code, resp)
	}
}

func TestReadiness_RedisDisabledIsStillReady(t *testing.T) {
	code, resp := readiness(t, &HealthDependenciesHandler{mongo: ok})
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if resp.Dependencies["redis"].Status != "disabled" {
		t.Fatalf("expected redis disabled, got %+v", resp.Dependencies["redis"])
	}
}

func TestReadiness_MongoDown(t *testing.T) {
	down := func(context.Context) error { return errors.New("no reachable servers") }
	code, resp := readiness(t, &HealthDependenciesHandler{mongo: down, redis: ok})
	if code != http.StatusServiceUnavailable || resp.Status != "degraded" {
		t.Fatalf("expected degraded, got %d %+v", code, resp)
	}
	if resp.Dependencies["mongodb"].Error == "" {
		t.Fatalf("expected mongodb error to be reported")
	}
}

func TestReadiness_NilClients(t *testing.T) {
	code, _ := readiness(t, NewHealthDependenciesHandler(nil, nil))
	if code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 without mongo, got %d", code)
	}
}
