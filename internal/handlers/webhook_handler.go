package handlers

import (
	"context"
	"io"
	"net/http"
	"time"

	go_json "github.com/goccy/go-json"

	"github.com/ledgerline-systems/paddlehook/common/httputil"
	"github.com/ledgerline-systems/paddlehook/common/logging"
	"github.com/ledgerline-systems/paddlehook/internal/metrics"
	"github.com/ledgerline-systems/paddlehook/internal/ratelimit"
	"github.com/ledgerline-systems/paddlehook/pkg/paddle/auth"
	"github.com/ledgerline-systems/paddlehook/pkg/paddle/dispatch"
	"github.com/ledgerline-systems/paddlehook/pkg/paddle/events"
)

// SecretStore resolves the signing secret for a webhook destination path.
type SecretStore interface {
	GetSecret(path string) (string, bool)
}

// Dispatcher routes a verified event to its category handler.
type Dispatcher interface {
	Dispatch(ctx context.Context, eventType events.EventType, eventID string, raw []byte, cb dispatch.ResultCallback)
}

// Publisher forwards verified events to an external sink. Publish failures
// must not affect the webhook response.
type Publisher interface {
	Publish(ctx context.Context, category events.Category, eventID string, raw []byte) error
}

// Config carries the request-handling knobs for the webhook endpoint.
type Config struct {
	// MaxSignatureAgeSeconds rejects signatures older than this; -1 disables
	// the age check.
	MaxSignatureAgeSeconds int
	// MaxBodySize caps the request body in bytes. 0 means no cap.
	MaxBodySize int64
	// RunInBackground acknowledges deliveries before handlers finish.
	RunInBackground bool
}

type WebhookHandler struct {
	secrets    SecretStore
	dispatcher Dispatcher
	publisher  Publisher
	limiter    ratelimit.RateLimiter
	logger     *logging.Logger
	cfg        Config
}

func NewWebhookHandler(secrets SecretStore, d Dispatcher, pub Publisher, limiter ratelimit.RateLimiter, logger *logging.Logger, cfg Config) *WebhookHandler {
	if limiter == nil {
		limiter = &ratelimit.NoOpRateLimiter{}
	}
	return &WebhookHandler{
		secrets:    secrets,
		dispatcher: d,
		publisher:  pub,
		limiter:    limiter,
		logger:     logger,
		cfg:        cfg,
	}
}

// ServeHTTP verifies one webhook delivery and routes it through the
// dispatcher. The destination path selects the signing secret, so one
// listener can serve several notification settings.
func (h *WebhookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httputil.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	path := r.URL.Path

	allowed, err := h.limiter.Allow(r.Context(), path)
	if err != nil {
		// Rate limiter backend failures must not drop deliveries.
		h.logger.WarnContext(r.Context(), "rate limiter unavailable, allowing request", logging.Err(err))
	} else if !allowed {
		httputil.WriteError(w, http.StatusTooManyRequests, "rate limit exceeded")
		return
	}

	secret, ok := h.secrets.GetSecret(path)
	if !ok {
		h.logger.WarnContext(r.Context(), "webhook for unknown path", logging.Path(path))
		httputil.WriteError(w, http.StatusUnauthorized, "unknown webhook path")
		return
	}

	body, err := h.readBody(r)
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "could not read request body")
		return
	}
	metrics.EventBytesTotal.Add(float64(len(body)))

	if !auth.VerifySignature(secret, r.Header.Get(auth.SignatureHeader), body, h.cfg.MaxSignatureAgeSeconds) {
		metrics.SignatureFailures.Inc()
		h.logger.WarnContext(r.Context(), "webhook signature verification failed", logging.Path(path))
		httputil.WriteError(w, http.StatusUnauthorized, "invalid signature")
		return
	}

	var probe struct {
		EventType string `json:"event_type"`
		EventID   string `json:"event_id"`
	}
	if err := go_json.Unmarshal(body, &probe); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if probe.EventType == "" {
		httputil.WriteError(w, http.StatusBadRequest, "missing event_type")
		return
	}
	eventType := events.EventType(probe.EventType)
	if !eventType.Valid() {
		httputil.WriteError(w, http.StatusBadRequest, "unsupported event_type: "+probe.EventType)
		return
	}

	if h.publisher != nil {
		if err := h.publisher.Publish(r.Context(), events.CategoryOf(eventType), probe.EventID, body); err != nil {
			h.logger.WarnContext(r.Context(), "event sink publish failed",
				logging.EventID(probe.EventID), logging.Err(err))
		}
	}

	if h.cfg.RunInBackground {
		// The dispatcher detaches the work; the delivery is acknowledged now
		// and the result callback only records the outcome.
		h.dispatcher.Dispatch(r.Context(), eventType, probe.EventID, body, h.recordResult)
		h.writeAck(w, eventType, probe.EventID)
		return
	}

	start := time.Now()
	var outcome *dispatch.Result
	h.dispatcher.Dispatch(r.Context(), eventType, probe.EventID, body,
		func(t events.EventType, id string, res dispatch.Result) {
			h.recordResult(t, id, res)
			outcome = &res
		})
	metrics.DispatchDuration.Observe(time.Since(start).Seconds())

	if outcome != nil && outcome.Status == dispatch.StatusError {
		httputil.WriteError(w, http.StatusInternalServerError, outcome.Reason)
		return
	}
	h.writeAck(w, eventType, probe.EventID)
}

func (h *WebhookHandler) readBody(r *http.Request) ([]byte, error) {
	defer r.Body.Close()
	var reader io.Reader = r.Body
	if h.cfg.MaxBodySize > 0 {
		reader = io.LimitReader(r.Body, h.cfg.MaxBodySize)
	}
	return io.ReadAll(reader)
}

func (h *WebhookHandler) writeAck(w http.ResponseWriter, eventType events.EventType, eventID string) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"event_type": eventType.String(),
		"event_id":   eventID,
		"status":     "ok",
	})
}

func (h *WebhookHandler) recordResult(eventType events.EventType, eventID string, res dispatch.Result) {
	metrics.EventsTotal.WithLabelValues(string(events.CategoryOf(eventType)), res.Status.String()).Inc()
	if res.Status == dispatch.StatusError {
		metrics.DispatchErrors.Inc()
		h.logger.Error("event handler failed",
			logging.EventType(eventType.String()),
			logging.EventID(eventID),
			logging.Category(string(events.CategoryOf(eventType))),
			"reason", res.Reason,
		)
	}
}
