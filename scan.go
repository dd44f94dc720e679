package main

import (
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"contract-compliance/internal/dates"
	"contract-compliance/internal/expiration"
	"contract-compliance/internal/model"
)

var scanToday string

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Print the contracts reaching a notification lead time today",
	Long: `Reads the notification lead times and the approved, unarchived contracts from
the database and prints the contracts whose remaining days match a lead time.
Intended to run once a day from a scheduler.`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringVar(&scanToday, "today", "", "Scan as of this date (YYYY-MM-DD)")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, _ []string) error {
	now := time.Now
	if scanToday != "" {
		t, ok := dates.Parse(scanToday)
		if !ok {
			return fmt.Errorf("--today %q is not a YYYY-MM-DD date", scanToday)
		}
		now = func() time.Time { return t }
	}

	eng, cleanup, err := buildEngine(cmd.Context(), cfg, logger, now)
	if err != nil {
		return err
	}
	defer cleanup()

	entries, today, err := eng.ScanStored(cmd.Context())
	if err != nil {
		return err
	}

	resp := model.ScanResponse{Today: dates.Format(today), Entries: expiration.WithBands(entries)}

	out, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode scan result: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
