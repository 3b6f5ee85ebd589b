package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/medxprts/Spacs-sub002/internal/model"
)

var alertsLimit int

var alertsCmd = &cobra.Command{
	Use:   "alerts",
	Short: "Show recently delivered alerts",
	Long: `List the most recent alerts the monitor has delivered, newest
first. The same history backs the dashboard's alert feed.`,
	RunE: runAlerts,
}

func init() {
	alertsCmd.Flags().IntVar(&alertsLimit, "limit", 0, "maximum rows (default 50)")
	rootCmd.AddCommand(alertsCmd)
}

func runAlerts(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	_, db, st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	alerts, err := st.RecentAlerts(ctx, alertsLimit)
	if err != nil {
		return fmt.Errorf("load recent alerts: %w", err)
	}

	if len(alerts) == 0 {
		fmt.Println("No alerts recorded.")
		return nil
	}

	for _, a := range alerts {
		fmt.Println(formatAlertRow(a))
	}
	return nil
}

// formatAlertRow renders one alert history line.
func formatAlertRow(a model.Alert) string {
	who := a.Ticker
	if who == "" {
		who = fmt.Sprintf("CIK %d", a.CIK)
	}
	return fmt.Sprintf("%s  %-8s  %-20s  %-6s  %s",
		a.At.Format("2006-01-02 15:04"), a.Severity, a.Kind, who, a.Message)
}
