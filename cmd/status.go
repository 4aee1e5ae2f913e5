package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/chriserin/pickle/internal/db"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Summarize the latest discovery run",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return RunStatus(cmd.OutOrStdout(), cfg.Journal)
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func RunStatus(w io.Writer, journal string) error {
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
	documents, err := db.DocumentCount(sqlDB, runID)
	if err != nil {
		return err
	}
	counts, err := db.StatusCounts(sqlDB, runID)
	if err != nil {
		return err
	}

	total := 0
	for _, c := range counts {
		total += c.Count
	}

	fmt.Fprintf(w, "Run %d: %d files, %d scenarios\n", runID, documents, total)
	for _, c := range counts {
		fmt.Fprintf(w, "  %s: %d\n", c.Status, c.Count)
	}
	return nil
}
