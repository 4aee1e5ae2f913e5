package discovery

import (
	"fmt"

	"github.com/chriserin/pickle/internal/event"
	"github.com/chriserin/pickle/internal/filter"
	"github.com/chriserin/pickle/internal/pickle"
)

// FilterError is returned when the scenario filter fails on a pickle.
type FilterError struct {
	URI    string
	Pickle *pickle.Pickle
	Err    error
}

func (e *FilterError) Error() string {
	return fmt.Sprintf("filtering %q in %s: %v", e.Pickle.Name, e.URI, e.Err)
}

func (e *FilterError) Unwrap() error { return e.Err }

// gate publishes p, asks f about it and publishes the decision before
// returning, so each decision immediately follows its pickle event.
func gate(b *event.Broadcaster, f filter.ScenarioFilter, uri string, p *pickle.Pickle) (bool, error) {
	b.Emit(event.NewPickleEvent(uri, p))

	ok, err := f.Matches(p)
	if err != nil {
		return false, &FilterError{URI: uri, Pickle: p, Err: err}
	}

	b.Emit(event.NewDecisionEvent(uri, p, ok))
	return ok, nil
}
