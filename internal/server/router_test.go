package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ledgerline-systems/paddlehook/common/logging"
	"github.com/ledgerline-systems/paddlehook/internal/handlers"
)

type emptySecrets struct{}

func (emptySecrets) GetSecret(string) (string, bool) { return "", false }

func newRouter(ready func() bool) http.Handler {
	h := handlers.NewWebhookHandler(emptySecrets{}, nil, nil, nil, logging.Default(), handlers.Config{})
	return NewRouter("/webhooks/paddle", h, ready)
}

func TestRouter_Healthz(t *testing.T) {
	router := newRouter(nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("healthz status = %d, want 200", rec.Code)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID header from middleware")
	}
}

func TestRouter_Readyz(t *testing.T) {
	ready := false
	router := newRouter(func() bool { return ready })

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("readyz status before load = %d, want 503", rec.Code)
	}

	ready = true
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("readyz status after load = %d, want 200", rec.Code)
	}
}

func TestRouter_WebhookMounted(t *testing.T) {
	router := newRouter(nil)

	// GET on the webhook path reaches the handler, which only accepts POST.
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/webhooks/paddle", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("webhook GET status = %d, want 405", rec.Code)
	}
}

func TestRouter_Metrics(t *testing.T) {
	router := newRouter(nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("metrics status = %d, want 200", rec.Code)
	}
}
