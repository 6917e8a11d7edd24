package cmd

import (
	"context"
	"fmt"

	go_json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "List notification settings",
	Long: `List the notification settings configured for this Paddle account,
showing which destinations webhookd can verify deliveries for.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := apiClient(cmd).ListNotificationSettings(context.Background())
		if err != nil {
			return fmt.Errorf("list notification settings: %w", err)
		}

		asJSON, _ := cmd.Flags().GetBool("json")
		if asJSON {
			out, err := go_json.MarshalIndent(settings, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		}

		for _, s := range settings {
			state := "inactive"
			if s.Active {
				state = "active"
			}
			fmt.Printf("%s  %-8s %-8s %s\n", s.ID, s.Type, state, s.Destination)
		}
		fmt.Printf("%d settings\n", len(settings))
		return nil
	},
}

func init() {
	settingsCmd.Flags().Bool("json", false, "print full settings as JSON")
	rootCmd.AddCommand(settingsCmd)
}
