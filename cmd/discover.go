package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/chriserin/pickle/internal/db"
	"github.com/chriserin/pickle/internal/discovery"
	"github.com/chriserin/pickle/internal/event"
	"github.com/chriserin/pickle/internal/filter"
	"github.com/chriserin/pickle/internal/formatter"
	"github.com/chriserin/pickle/internal/parser"
	"github.com/chriserin/pickle/internal/ui"
)

type DiscoverOptions struct {
	Paths       []string
	Names       []string
	Tags        []string
	ExcludeTags []string
	Language    string
	BestEffort  bool
	Concurrency int
	Format      string
	// Journal is recorded into when it exists.
	Journal string
	Logger  *log.Logger
}

var discoverFlags struct {
	names       []string
	tags        []string
	excludeTags []string
	language    string
	bestEffort  bool
	format      string
}

var discoverCmd = &cobra.Command{
	Use:   "discover [paths...]",
	Short: "Compile feature files into test cases and apply filters",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		opts := DiscoverOptions{
			Paths:       cfg.Paths,
			Names:       discoverFlags.names,
			Tags:        discoverFlags.tags,
			ExcludeTags: discoverFlags.excludeTags,
			Language:    cfg.Language,
			BestEffort:  cfg.BestEffort,
			Concurrency: cfg.Concurrency,
			Format:      cfg.Format,
			Journal:     cfg.Journal,
			Logger:      newLogger(cmd.ErrOrStderr()),
		}
		if len(args) > 0 {
			opts.Paths = args
		}
		flags := cmd.Flags()
		if flags.Changed("language") {
			opts.Language = discoverFlags.language
		}
		if flags.Changed("best-effort") {
			opts.BestEffort = discoverFlags.bestEffort
		}
		if flags.Changed("format") {
			opts.Format = discoverFlags.format
		}

		return RunDiscover(cmd.Context(), cmd.OutOrStdout(), opts)
	},
}

func init() {
	f := discoverCmd.Flags()
	f.StringArrayVar(&discoverFlags.names, "name", nil, "only scenarios whose name matches this regexp (repeatable)")
	f.StringSliceVar(&discoverFlags.tags, "tags", nil, "only scenarios carrying one of these tags")
	f.StringSliceVar(&discoverFlags.excludeTags, "exclude-tags", nil, "skip scenarios carrying any of these tags")
	f.StringVar(&discoverFlags.language, "language", parser.DefaultLanguage, "default Gherkin dialect")
	f.BoolVar(&discoverFlags.bestEffort, "best-effort", false, "skip unreadable or invalid files instead of failing")
	f.StringVar(&discoverFlags.format, "format", "table", "output format: table, ndjson or yaml")
	rootCmd.AddCommand(discoverCmd)
}

func RunDiscover(ctx context.Context, w io.Writer, opts DiscoverOptions) error {
	if !parser.SupportedLanguage(opts.Language) {
		return fmt.Errorf("unsupported language %q", opts.Language)
	}

	paths, lines, err := resolvePaths(opts.Paths)
	if err != nil {
		return err
	}
	scenarioFilter, err := buildFilter(opts, lines)
	if err != nil {
		return err
	}

	b := event.NewBroadcaster()

	var table *tableReport
	var eventLog *formatter.EventLog
	switch opts.Format {
	case "", "table":
		table = &tableReport{w: w}
		table.attach(b)
	default:
		eventLog, err = formatter.NewEventLog(w, opts.Format)
		if err != nil {
			return err
		}
		eventLog.Attach(b)
	}

	var recorder *db.Recorder
	if opts.Journal != "" {
		if _, statErr := os.Stat(opts.Journal); statErr == nil {
			sqlDB, err := db.Open(opts.Journal)
			if err != nil {
				return fmt.Errorf("opening journal: %w", err)
			}
			defer sqlDB.Close()

			recorder, err = db.NewRecorder(sqlDB)
			if err != nil {
				return err
			}
			recorder.Attach(b)
		}
	}

	result, err := discovery.Run(ctx, discovery.Options{
		Broadcaster: b,
		Paths:       paths,
		Language:    opts.Language,
		Filter:      scenarioFilter,
		BestEffort:  opts.BestEffort,
		Concurrency: opts.Concurrency,
		Logger:      opts.Logger,
	})

	if eventLog != nil {
		err = errors.Join(err, eventLog.Close())
	}
	if err != nil {
		return err
	}
	if recorder != nil {
		if err := recorder.Err(); err != nil {
			return err
		}
	}

	if table != nil {
		for _, f := range result.Failures {
			ui.FailureLine(w, f.URI, f.Err)
		}
		ui.SummaryLine(w, len(result.TestCases), table.total, table.documents)
	}
	return nil
}

func buildFilter(opts DiscoverOptions, lines map[string][]int) (filter.ScenarioFilter, error) {
	var filters []filter.ScenarioFilter
	if len(opts.Names) > 0 {
		names, err := filter.Names(opts.Names...)
		if err != nil {
			return nil, err
		}
		filters = append(filters, names)
	}
	if len(opts.Tags) > 0 || len(opts.ExcludeTags) > 0 {
		filters = append(filters, filter.Tags(normalizeTags(opts.Tags), normalizeTags(opts.ExcludeTags)))
	}
	if len(lines) > 0 {
		filters = append(filters, filter.Lines(lines))
	}
	if len(filters) == 0 {
		return nil, nil
	}
	return filter.All(filters...), nil
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if !strings.HasPrefix(t, "@") {
			t = "@" + t
		}
		out = append(out, t)
	}
	return out
}

// tableReport prints one line per filter decision as it happens.
type tableReport struct {
	w         io.Writer
	total     int
	documents int
}

func (r *tableReport) attach(b *event.Broadcaster) {
	b.On(event.GherkinDocument, func(event.Event) { r.documents++ })
	decision := func(ev event.Event) {
		d := ev.(*event.DecisionEvent)
		r.total++
		line := 0
		if len(d.Pickle.Locations) > 0 {
			line = d.Pickle.Locations[0].Line
		}
		if d.Accepted() {
			ui.AcceptedLine(r.w, d.URI, line, d.Pickle.Name)
		} else {
			ui.RejectedLine(r.w, d.URI, line, d.Pickle.Name)
		}
	}
	b.On(event.PickleAccepted, decision)
	b.On(event.PickleRejected, decision)
}
