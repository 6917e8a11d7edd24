package replay

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerline-systems/paddlehook/common/logging"
	"github.com/ledgerline-systems/paddlehook/pkg/paddle/client"
	"github.com/ledgerline-systems/paddlehook/pkg/paddle/dispatch"
	"github.com/ledgerline-systems/paddlehook/pkg/paddle/events"
)

type recordingDispatcher struct {
	results map[string]dispatch.Result
	order   []string
}

func (d *recordingDispatcher) Dispatch(_ context.Context, eventType events.EventType, eventID string, _ []byte, cb dispatch.ResultCallback) {
	d.order = append(d.order, eventID)
	res, ok := d.results[eventID]
	if !ok {
		res = dispatch.Result{Status: dispatch.StatusHandled}
	}
	cb(eventType, eventID, res)
}

// eventsServer serves /events with two pages of history.
func eventsServer(t *testing.T) *httptest.Server {
	t.Helper()
	page1 := `{
		"data": [
			{"event_id":"evt_1","event_type":"customer.created","data":{"id":"ctm_1"}},
			{"event_id":"evt_2","event_type":"transaction.completed","data":{"id":"txn_1"}},
			{"event_id":"evt_3","event_type":"discount.created","data":{"id":"dsc_1"}}
		],
		"meta":{"pagination":{"per_page":3,"next":"https://api.example.com/events?after=evt_3","has_more":true}}
	}`
	page2 := `{
		"data": [
			{"event_id":"evt_4","event_type":"made.up.type","data":{}},
			{"event_id":"evt_5","event_type":"subscription.canceled","data":{"id":"sub_1"}}
		],
		"meta":{"pagination":{"per_page":3,"next":"","has_more":false}}
	}`
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/events", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("after") == "evt_3" {
			fmt.Fprint(w, page2)
			return
		}
		fmt.Fprint(w, page1)
	}))
}

func newTestController(t *testing.T, srv *httptest.Server, d Dispatcher) *Controller {
	t.Helper()
	c := client.New(client.Config{BaseURL: srv.URL, APIKey: "pdl_test"})
	return NewController(c, d, logging.Default(), 3)
}

func TestRun_PagesThroughHistory(t *testing.T) {
	srv := eventsServer(t)
	defer srv.Close()

	d := &recordingDispatcher{results: map[string]dispatch.Result{
		"evt_2": {Status: dispatch.StatusError, Reason: "boom"},
		"evt_3": {Status: dispatch.StatusIgnored, Reason: "Event ignored"},
	}}
	ctrl := newTestController(t, srv, d)

	summary, err := ctrl.Run(context.Background(), "", 0)
	require.NoError(t, err)

	// evt_4 has an unsupported type and is skipped, not dispatched.
	assert.Equal(t, []string{"evt_1", "evt_2", "evt_3", "evt_5"}, d.order)
	assert.Equal(t, 4, summary.Events)
	assert.Equal(t, 2, summary.Handled)
	assert.Equal(t, 1, summary.Ignored)
	assert.Equal(t, 1, summary.Errors)
	assert.Equal(t, 1, summary.Skipped)
	assert.NotEmpty(t, summary.RunID)
}

func TestRun_MaxEventsStopsEarly(t *testing.T) {
	srv := eventsServer(t)
	defer srv.Close()

	d := &recordingDispatcher{}
	ctrl := newTestController(t, srv, d)

	summary, err := ctrl.Run(context.Background(), "", 2)
	require.NoError(t, err)

	assert.Equal(t, []string{"evt_1", "evt_2"}, d.order)
	assert.Equal(t, 2, summary.Events)
}

func TestRun_ListFailureReturnsResumeCursor(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls > 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"data":[{"event_id":"evt_1","event_type":"customer.created","data":{}}],
			"meta":{"pagination":{"per_page":1,"next":"https://api.example.com/events?after=evt_1","has_more":true}}
		}`)
	}))
	defer srv.Close()

	d := &recordingDispatcher{}
	ctrl := newTestController(t, srv, d)

	summary, err := ctrl.Run(context.Background(), "", 0)
	require.Error(t, err)

	assert.Equal(t, 1, summary.Events)
	assert.Equal(t, "evt_1", summary.LastCursor)
}

func TestRun_CancelledContext(t *testing.T) {
	srv := eventsServer(t)
	defer srv.Close()

	ctrl := newTestController(t, srv, &recordingDispatcher{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ctrl.Run(ctx, "", 0)
	assert.ErrorIs(t, err, context.Canceled)
}
