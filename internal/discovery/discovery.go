// Package discovery turns feature files into the ordered list of test cases
// for one run, publishing every step on the run's event broadcaster.
package discovery

import (
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/log"

	"github.com/chriserin/pickle/internal/event"
	"github.com/chriserin/pickle/internal/filter"
	"github.com/chriserin/pickle/internal/parser"
	"github.com/chriserin/pickle/internal/pickle"
	"github.com/chriserin/pickle/internal/source"
)

// TestCase is an accepted pickle and the uri it came from.
type TestCase struct {
	Pickle *pickle.Pickle `json:"pickle"`
	URI    string         `json:"uri"`
}

type Options struct {
	// Broadcaster receives every event of the run. Its listeners are owned
	// by the caller. Nil means events go nowhere.
	Broadcaster *event.Broadcaster
	// Paths are processed strictly in this order.
	Paths []string
	// Language is the default dialect; "" means "en".
	Language string
	// Filter decides acceptance. Nil accepts every pickle.
	Filter filter.ScenarioFilter
	// BestEffort records read and parse failures per path and continues
	// instead of failing the run.
	BestEffort bool
	// Concurrency bounds source reads in flight.
	Concurrency int
	Logger      *log.Logger
}

// PathFailure is a path skipped in best-effort mode.
type PathFailure struct {
	URI string
	Err error
}

type Result struct {
	TestCases []TestCase
	Failures  []PathFailure
}

// Run processes every path in order: source, gherkin-document, then for each
// pickle its pickle event followed by its accept or reject event. Nothing for
// a path is published before every event of the previous path.
//
// A read or parse failure stops the run with no result unless BestEffort is
// set. A filter error always stops the run.
func Run(ctx context.Context, opts Options) (*Result, error) {
	opts = opts.withDefaults()

	queue := source.Loader{Concurrency: opts.Concurrency}.Prefetch(ctx, opts.Paths)
	defer queue.Close()

	result := &Result{TestCases: []TestCase{}}
	for _, path := range opts.Paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		src, err := queue.Next(ctx)
		if err == nil {
			err = processSource(src, opts, result)
		}
		if err == nil {
			continue
		}

		var filterErr *FilterError
		if errors.As(err, &filterErr) || !opts.BestEffort || ctx.Err() != nil {
			return nil, err
		}
		opts.Logger.Warn("skipping feature file", "uri", path, "err", err)
		result.Failures = append(result.Failures, PathFailure{URI: path, Err: err})
	}

	opts.Logger.Debug("discovery finished", "paths", len(opts.Paths), "testCases", len(result.TestCases), "failures", len(result.Failures))
	return result, nil
}

// GetTestCases runs discovery and returns the accepted test cases.
func GetTestCases(ctx context.Context, opts Options) ([]TestCase, error) {
	result, err := Run(ctx, opts)
	if err != nil {
		return nil, err
	}
	return result.TestCases, nil
}

func (o Options) withDefaults() Options {
	if o.Broadcaster == nil {
		o.Broadcaster = event.NewBroadcaster()
	}
	if o.Filter == nil {
		o.Filter = filter.AcceptAll{}
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	return o
}

func processSource(src *source.Source, opts Options, result *Result) error {
	b := opts.Broadcaster
	b.Emit(event.NewSourceEvent(src))

	doc, parseErrors := parser.Parse(src.URI, []byte(src.Data), opts.Language)
	if len(parseErrors) > 0 {
		return parseErrors[0]
	}
	b.Emit(event.NewGherkinDocumentEvent(src.URI, doc))

	pickles := pickle.Compile(doc)
	accepted := 0
	for _, p := range pickles {
		ok, err := gate(b, opts.Filter, src.URI, p)
		if err != nil {
			return err
		}
		if ok {
			result.TestCases = append(result.TestCases, TestCase{Pickle: p, URI: src.URI})
			accepted++
		}
	}

	opts.Logger.Debug("compiled feature file", "uri", src.URI, "pickles", len(pickles), "accepted", accepted)
	return nil
}
