package cmd

import (
	"context"
	"fmt"
	"os"

	go_json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/ledgerline-systems/paddlehook/common/logging"
	"github.com/ledgerline-systems/paddlehook/internal/replay"
	"github.com/ledgerline-systems/paddlehook/internal/sink"
	"github.com/ledgerline-systems/paddlehook/pkg/paddle/dispatch"
	"github.com/ledgerline-systems/paddlehook/pkg/paddle/events"
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay historical events into the event sink",
	Long: `Page through the Paddle events API and republish each event to the
configured NATS sink, the same way webhookd forwards live deliveries.

Without --publish this is a dry run: events are fetched and tallied but
nothing is republished.`,
	Example: `  # Dry run over all history
  paddlectl replay

  # Republish everything after a known cursor
  paddlectl replay --publish --from-cursor evt_01hv8x61jd

  # Cap the run
  paddlectl replay --publish --max-events 1000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fromCursor, _ := cmd.Flags().GetString("from-cursor")
		maxEvents, _ := cmd.Flags().GetInt("max-events")
		publish, _ := cmd.Flags().GetBool("publish")

		var d replay.Dispatcher = dryRunDispatcher{}
		if publish {
			sinkCfg := sink.DefaultConfig()
			sinkCfg.URL = cfg.NATS.URL
			sinkCfg.SubjectPrefix = cfg.NATS.SubjectPrefix
			natsSink, err := sink.NewNATSSink(sinkCfg)
			if err != nil {
				return fmt.Errorf("connect to NATS: %w", err)
			}
			defer natsSink.Close()
			d = publishDispatcher{sink: natsSink}
		}

		logger := logging.New(logging.ParseLevel(cfg.Logging.Level), "text")
		ctrl := replay.NewController(apiClient(cmd), d, logger, cfg.Paddle.PerPage)

		summary, err := ctrl.Run(context.Background(), fromCursor, maxEvents)
		if err != nil {
			// Partial progress still matters; print the tally before failing
			// so the resume cursor is not lost.
			printSummary(summary)
			return err
		}
		printSummary(summary)
		return nil
	},
}

func init() {
	replayCmd.Flags().String("from-cursor", "", "resume after this event ID")
	replayCmd.Flags().Int("max-events", 0, "stop after this many events (0 = all)")
	replayCmd.Flags().Bool("publish", false, "republish events to the NATS sink")
	rootCmd.AddCommand(replayCmd)
}

func printSummary(s replay.Summary) {
	out, err := go_json.MarshalIndent(s, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	fmt.Println(string(out))
}

// dryRunDispatcher tallies events without acting on them.
type dryRunDispatcher struct{}

func (dryRunDispatcher) Dispatch(_ context.Context, eventType events.EventType, eventID string, _ []byte, cb dispatch.ResultCallback) {
	cb(eventType, eventID, dispatch.Result{Status: dispatch.StatusIgnored, Reason: "dry run"})
}

// publishDispatcher republishes each event to the sink.
type publishDispatcher struct {
	sink *sink.NATSSink
}

func (p publishDispatcher) Dispatch(ctx context.Context, eventType events.EventType, eventID string, raw []byte, cb dispatch.ResultCallback) {
	if err := p.sink.Publish(ctx, events.CategoryOf(eventType), eventID, raw); err != nil {
		cb(eventType, eventID, dispatch.Result{Status: dispatch.StatusError, Reason: err.Error()})
		return
	}
	cb(eventType, eventID, dispatch.Result{Status: dispatch.StatusHandled})
}
