package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/chriserin/pickle/internal/db"
	"github.com/chriserin/pickle/internal/ui"
)

var statusFlag string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the test cases of the latest discovery run",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return RunList(cmd.OutOrStdout(), cfg.Journal, statusFlag)
	},
}

func init() {
	listCmd.Flags().StringVar(&statusFlag, "status", "", "filter by status: accepted or rejected")
	rootCmd.AddCommand(listCmd)
}

func RunList(w io.Writer, journal, status string) error {
	switch status {
	case "", db.StatusAccepted, db.StatusRejected:
	default:
		return fmt.Errorf("invalid status %q: want %s or %s", status, db.StatusAccepted, db.StatusRejected)
	}
	if err := requireJournal(journal); err != nil {
		return err
	}

	sqlDB, err := db.Open(journal)
	if err != nil {
		return fmt.Errorf("opening journal: %w", err)
	}
	defer sqlDB.Close()

	runID, err := db.LatestRunID(sqlDB)
	if err != nil {
		return err
	}
	rows, err := db.RunPickles(sqlDB, runID, status)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}

	tableRows := make([]ui.TableRow, 0, len(rows))
	for _, r := range rows {
		tableRows = append(tableRows, ui.TableRow{URI: r.URI, Line: r.Line, Name: r.Name, Tags: r.Tags, Status: r.Status})
	}
	ui.TestCaseTable(w, tableRows)
	return nil
}
