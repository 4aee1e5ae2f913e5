package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/chriserin/pickle/internal/discovery"
	"github.com/chriserin/pickle/internal/filter"
	"github.com/chriserin/pickle/internal/ui"
)

var showCmd = &cobra.Command{
	Use:   "show <path>:<line>",
	Short: "Show the resolved scenarios at a feature file line",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return RunShow(cmd.Context(), cmd.OutOrStdout(), args[0], cfg.Language)
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func RunShow(ctx context.Context, w io.Writer, arg, language string) error {
	path, lines, err := splitLineSpec(arg)
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		return fmt.Errorf("expected <path>:<line>, got %s", arg)
	}

	testCases, err := discovery.GetTestCases(ctx, discovery.Options{
		Paths:    []string{path},
		Language: language,
		Filter:   filter.Lines(map[string][]int{path: lines}),
	})
	if err != nil {
		return err
	}
	if len(testCases) == 0 {
		return fmt.Errorf("no scenario at %s", arg)
	}

	for i, tc := range testCases {
		if i > 0 {
			fmt.Fprintln(w)
		}
		ui.ShowPickle(w, tc.Pickle)
	}
	return nil
}
