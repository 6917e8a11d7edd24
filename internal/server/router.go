package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ledgerline-systems/paddlehook/common/httputil"
	"github.com/ledgerline-systems/paddlehook/common/middleware"
	"github.com/ledgerline-systems/paddlehook/internal/handlers"
)

// NewRouter constructs a ServeMux with the webhook listener mounted at
// webhookPath. ready reports whether the signing secrets have been loaded;
// until then readyz fails so load balancers hold traffic off.
func NewRouter(webhookPath string, h *handlers.WebhookHandler, ready func() bool) http.Handler {
	mux := http.NewServeMux()

	mux.Handle(webhookPath, h)

	// Health endpoints
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if ready != nil && !ready() {
			httputil.WriteError(w, http.StatusServiceUnavailable, "not ready")
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	})

	// Prometheus metrics
	mux.Handle("/metrics", promhttp.Handler())

	return middleware.RequestID(mux)
}
