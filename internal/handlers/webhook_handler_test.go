package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerline-systems/paddlehook/common/logging"
	"github.com/ledgerline-systems/paddlehook/pkg/paddle/auth"
	"github.com/ledgerline-systems/paddlehook/pkg/paddle/dispatch"
	"github.com/ledgerline-systems/paddlehook/pkg/paddle/events"
)

const testSecret = "pdl_ntfset_test_secret"

type staticSecrets map[string]string

func (s staticSecrets) GetSecret(path string) (string, bool) {
	secret, ok := s[path]
	return secret, ok
}

type fakeDispatcher struct {
	result     dispatch.Result
	background bool

	gotType events.EventType
	gotID   string
	gotRaw  []byte
	calls   int
}

func (d *fakeDispatcher) Dispatch(ctx context.Context, eventType events.EventType, eventID string, raw []byte, cb dispatch.ResultCallback) {
	d.calls++
	d.gotType = eventType
	d.gotID = eventID
	d.gotRaw = raw
	if d.background {
		return
	}
	cb(eventType, eventID, d.result)
}

type fakePublisher struct {
	err      error
	category events.Category
	eventID  string
	calls    int
}

func (p *fakePublisher) Publish(ctx context.Context, category events.Category, eventID string, raw []byte) error {
	p.calls++
	p.category = category
	p.eventID = eventID
	return p.err
}

func newTestHandler(d Dispatcher, pub Publisher, cfg Config) *WebhookHandler {
	secrets := staticSecrets{"/webhooks/paddle": testSecret}
	return NewWebhookHandler(secrets, d, pub, nil, logging.Default(), cfg)
}

func signedRequest(t *testing.T, body string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/webhooks/paddle", strings.NewReader(body))
	req.Header.Set(auth.SignatureHeader, auth.BuildSignatureHeader(testSecret, []byte(body), time.Now()))
	return req
}

const customerBody = `{"event_id":"evt_01","event_type":"customer.created","occurred_at":"2024-04-12T10:18:47.635628Z","notification_id":"ntf_01","data":{"id":"ctm_01","email":"sam@example.com"}}`

func TestWebhookHandler_HandledEvent(t *testing.T) {
	d := &fakeDispatcher{result: dispatch.Result{Status: dispatch.StatusHandled}}
	h := newTestHandler(d, nil, Config{MaxSignatureAgeSeconds: 60})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, signedRequest(t, customerBody))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
	assert.Contains(t, rec.Body.String(), `"event_id":"evt_01"`)
	assert.Equal(t, events.CustomerCreated, d.gotType)
	assert.Equal(t, "evt_01", d.gotID)
	assert.JSONEq(t, customerBody, string(d.gotRaw))
}

func TestWebhookHandler_MethodNotAllowed(t *testing.T) {
	d := &fakeDispatcher{}
	h := newTestHandler(d, nil, Config{MaxSignatureAgeSeconds: 60})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/webhooks/paddle", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Zero(t, d.calls)
}

func TestWebhookHandler_UnknownPath(t *testing.T) {
	d := &fakeDispatcher{}
	h := newTestHandler(d, nil, Config{MaxSignatureAgeSeconds: 60})

	req := httptest.NewRequest(http.MethodPost, "/webhooks/other", strings.NewReader(customerBody))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, d.calls)
}

func TestWebhookHandler_BadSignature(t *testing.T) {
	d := &fakeDispatcher{}
	h := newTestHandler(d, nil, Config{MaxSignatureAgeSeconds: 60})

	req := httptest.NewRequest(http.MethodPost, "/webhooks/paddle", strings.NewReader(customerBody))
	req.Header.Set(auth.SignatureHeader, auth.BuildSignatureHeader("wrong_secret", []byte(customerBody), time.Now()))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid signature")
	assert.Zero(t, d.calls)
}

func TestWebhookHandler_MissingSignatureHeader(t *testing.T) {
	d := &fakeDispatcher{}
	h := newTestHandler(d, nil, Config{MaxSignatureAgeSeconds: 60})

	req := httptest.NewRequest(http.MethodPost, "/webhooks/paddle", strings.NewReader(customerBody))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, d.calls)
}

func TestWebhookHandler_MissingEventType(t *testing.T) {
	d := &fakeDispatcher{}
	h := newTestHandler(d, nil, Config{MaxSignatureAgeSeconds: 60})

	body := `{"event_id":"evt_01","data":{}}`
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, signedRequest(t, body))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing event_type")
	assert.Zero(t, d.calls)
}

func TestWebhookHandler_UnsupportedEventType(t *testing.T) {
	d := &fakeDispatcher{}
	h := newTestHandler(d, nil, Config{MaxSignatureAgeSeconds: 60})

	body := `{"event_id":"evt_01","event_type":"invoice.paid","data":{}}`
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, signedRequest(t, body))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "unsupported event_type")
	assert.Zero(t, d.calls)
}

func TestWebhookHandler_InvalidJSON(t *testing.T) {
	d := &fakeDispatcher{}
	h := newTestHandler(d, nil, Config{MaxSignatureAgeSeconds: 60})

	body := `{"event_id":`
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, signedRequest(t, body))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, d.calls)
}

func TestWebhookHandler_HandlerError(t *testing.T) {
	d := &fakeDispatcher{result: dispatch.Result{Status: dispatch.StatusError, Reason: "database unavailable"}}
	h := newTestHandler(d, nil, Config{MaxSignatureAgeSeconds: 60})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, signedRequest(t, customerBody))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "database unavailable")
}

func TestWebhookHandler_IgnoredEventAcked(t *testing.T) {
	d := &fakeDispatcher{result: dispatch.Result{Status: dispatch.StatusIgnored, Reason: "Event ignored"}}
	h := newTestHandler(d, nil, Config{MaxSignatureAgeSeconds: 60})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, signedRequest(t, customerBody))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWebhookHandler_BackgroundAcksImmediately(t *testing.T) {
	d := &fakeDispatcher{background: true}
	h := newTestHandler(d, nil, Config{MaxSignatureAgeSeconds: 60, RunInBackground: true})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, signedRequest(t, customerBody))

	// The ack does not wait for any dispatch outcome.
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, d.calls)
}

func TestWebhookHandler_PublisherFailureDoesNotBlockAck(t *testing.T) {
	d := &fakeDispatcher{result: dispatch.Result{Status: dispatch.StatusHandled}}
	pub := &fakePublisher{err: errors.New("nats down")}
	h := newTestHandler(d, pub, Config{MaxSignatureAgeSeconds: 60})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, signedRequest(t, customerBody))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, pub.calls)
	assert.Equal(t, events.CategoryCustomer, pub.category)
	assert.Equal(t, "evt_01", pub.eventID)
	assert.Equal(t, 1, d.calls)
}

func TestWebhookHandler_StaleSignature(t *testing.T) {
	d := &fakeDispatcher{}
	h := newTestHandler(d, nil, Config{MaxSignatureAgeSeconds: 60})

	req := httptest.NewRequest(http.MethodPost, "/webhooks/paddle", strings.NewReader(customerBody))
	req.Header.Set(auth.SignatureHeader,
		auth.BuildSignatureHeader(testSecret, []byte(customerBody), time.Now().Add(-2*time.Minute)))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, d.calls)
}
