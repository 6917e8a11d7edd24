// Package replay re-dispatches historical events fetched from the Paddle
// events API, for backfilling after an outage or for rebuilding local state.
package replay

import (
	"context"
	"fmt"

	go_json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/ledgerline-systems/paddlehook/common/logging"
	"github.com/ledgerline-systems/paddlehook/internal/metrics"
	"github.com/ledgerline-systems/paddlehook/pkg/paddle/client"
	"github.com/ledgerline-systems/paddlehook/pkg/paddle/dispatch"
	"github.com/ledgerline-systems/paddlehook/pkg/paddle/events"
)

// Dispatcher routes one event, reporting its outcome through the callback
// before returning. Replay requires synchronous dispatch so the tally is
// complete when Run returns.
type Dispatcher interface {
	Dispatch(ctx context.Context, eventType events.EventType, eventID string, raw []byte, cb dispatch.ResultCallback)
}

// Summary is the outcome of one replay run.
type Summary struct {
	RunID   string `json:"run_id"`
	Events  int    `json:"events"`
	Handled int    `json:"handled"`
	Ignored int    `json:"ignored"`
	Errors  int    `json:"errors"`
	Skipped int    `json:"skipped"`

	// LastCursor resumes a later run where this one stopped.
	LastCursor string `json:"last_cursor,omitempty"`
}

type Controller struct {
	client     *client.Client
	dispatcher Dispatcher
	logger     *logging.Logger
	perPage    int
}

func NewController(c *client.Client, d Dispatcher, logger *logging.Logger, perPage int) *Controller {
	if perPage <= 0 {
		perPage = client.DefaultPerPage
	}
	return &Controller{client: c, dispatcher: d, logger: logger, perPage: perPage}
}

// Run pages through the events API starting at fromCursor and dispatches each
// event in order. maxEvents caps the run; 0 means run to the end of history.
// Handler errors are tallied, not fatal; only listing failures abort the run,
// and the returned Summary still carries the resume cursor.
func (r *Controller) Run(ctx context.Context, fromCursor string, maxEvents int) (Summary, error) {
	summary := Summary{RunID: uuid.New().String(), LastCursor: fromCursor}
	metrics.ReplayRuns.Inc()

	r.logger.Info("replay run started",
		"run_id", summary.RunID,
		"from_cursor", fromCursor,
		"max_events", maxEvents,
	)

	cursor := fromCursor
	for {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		page, err := r.client.ListEvents(ctx, cursor, r.perPage)
		if err != nil {
			return summary, fmt.Errorf("list events after %q: %w", cursor, err)
		}

		for _, raw := range page.Items {
			r.replayOne(ctx, raw, &summary)
			if maxEvents > 0 && summary.Events >= maxEvents {
				r.logResult(summary)
				return summary, nil
			}
		}

		summary.LastCursor = page.NextCursor
		if !page.HasMore {
			break
		}
		cursor = page.NextCursor
	}

	r.logResult(summary)
	return summary, nil
}

func (r *Controller) replayOne(ctx context.Context, raw go_json.RawMessage, summary *Summary) {
	var probe struct {
		EventType string `json:"event_type"`
		EventID   string `json:"event_id"`
	}
	if err := go_json.Unmarshal(raw, &probe); err != nil || probe.EventType == "" {
		summary.Skipped++
		metrics.ReplayEventsTotal.WithLabelValues("skipped").Inc()
		return
	}
	eventType := events.EventType(probe.EventType)
	if !eventType.Valid() {
		summary.Skipped++
		metrics.ReplayEventsTotal.WithLabelValues("skipped").Inc()
		r.logger.Debug("skipping event of unsupported type",
			logging.EventType(probe.EventType), logging.EventID(probe.EventID))
		return
	}

	summary.Events++
	r.dispatcher.Dispatch(ctx, eventType, probe.EventID, raw,
		func(_ events.EventType, _ string, res dispatch.Result) {
			switch res.Status {
			case dispatch.StatusHandled:
				summary.Handled++
			case dispatch.StatusIgnored:
				summary.Ignored++
			case dispatch.StatusError:
				summary.Errors++
			}
			metrics.ReplayEventsTotal.WithLabelValues(res.Status.String()).Inc()
		})
}

func (r *Controller) logResult(s Summary) {
	r.logger.Info("replay run finished",
		"run_id", s.RunID,
		"events", s.Events,
		"handled", s.Handled,
		"ignored", s.Ignored,
		"errors", s.Errors,
		"skipped", s.Skipped,
	)
}
