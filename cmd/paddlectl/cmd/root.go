package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ledgerline-systems/paddlehook/internal/config"
	"github.com/ledgerline-systems/paddlehook/pkg/paddle/client"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "paddlectl",
	Short: "Paddle webhook operations CLI",
	Long: `paddlectl is the operational companion to webhookd.

Inspect notification settings and replay historical events from the
Paddle API into downstream consumers after an outage.`,
	Version: "0.1.0",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml)")
	rootCmd.PersistentFlags().String("api-key", "", "Paddle API key (overrides config)")
}

func initConfig() {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load config: %v\n", err)
		os.Exit(1)
	}
}

// apiClient builds a Paddle API client from config plus flag overrides.
func apiClient(cmd *cobra.Command) *client.Client {
	apiKey, _ := cmd.Flags().GetString("api-key")
	if apiKey == "" {
		apiKey = cfg.Paddle.APIKey
	}
	return client.New(client.Config{
		BaseURL:    cfg.Paddle.BaseURL,
		APIKey:     apiKey,
		APIVersion: cfg.Paddle.APIVersion,
		Timeout:    cfg.Paddle.Timeout,
	})
}
