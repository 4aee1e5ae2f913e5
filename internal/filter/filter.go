// Package filter decides which pickles become test cases.
//
// The discovery pipeline only depends on ScenarioFilter. AcceptAll and
// Predicate are its two basic forms; Names, Tags, Lines and All are the
// matchers the command line builds from its flags.
package filter

import (
	"fmt"
	"regexp"
	"slices"

	"github.com/chriserin/pickle/internal/pickle"
)

// ScenarioFilter reports whether a pickle is accepted. Implementations must
// be free of side effects; an error aborts discovery.
type ScenarioFilter interface {
	Matches(p *pickle.Pickle) (bool, error)
}

// AcceptAll accepts every pickle.
type AcceptAll struct{}

func (AcceptAll) Matches(*pickle.Pickle) (bool, error) { return true, nil }

// Predicate adapts a function to ScenarioFilter.
type Predicate func(p *pickle.Pickle) (bool, error)

func (f Predicate) Matches(p *pickle.Pickle) (bool, error) { return f(p) }

// All accepts a pickle only when every filter accepts it. Evaluation stops
// at the first rejection or error.
func All(filters ...ScenarioFilter) ScenarioFilter {
	return Predicate(func(p *pickle.Pickle) (bool, error) {
		for _, f := range filters {
			ok, err := f.Matches(p)
			if err != nil || !ok {
				return false, err
			}
		}
		return true, nil
	})
}

// Names accepts pickles whose name matches any of the patterns. No patterns
// accepts everything.
func Names(patterns ...string) (ScenarioFilter, error) {
	if len(patterns) == 0 {
		return AcceptAll{}, nil
	}
	res := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("compiling name pattern %q: %w", p, err)
		}
		res = append(res, re)
	}
	return Predicate(func(p *pickle.Pickle) (bool, error) {
		for _, re := range res {
			if re.MatchString(p.Name) {
				return true, nil
			}
		}
		return false, nil
	}), nil
}

// Tags accepts pickles carrying at least one include tag (when any are
// given) and none of the exclude tags.
func Tags(include, exclude []string) ScenarioFilter {
	return Predicate(func(p *pickle.Pickle) (bool, error) {
		names := p.TagNames()
		for _, t := range exclude {
			if slices.Contains(names, t) {
				return false, nil
			}
		}
		if len(include) == 0 {
			return true, nil
		}
		for _, t := range include {
			if slices.Contains(names, t) {
				return true, nil
			}
		}
		return false, nil
	})
}

// Lines accepts pickles with a location on one of the listed lines of their
// uri. A uri absent from the map is unrestricted.
func Lines(lines map[string][]int) ScenarioFilter {
	return Predicate(func(p *pickle.Pickle) (bool, error) {
		wanted, ok := lines[p.URI]
		if !ok {
			return true, nil
		}
		for _, loc := range p.Locations {
			if slices.Contains(wanted, loc.Line) {
				return true, nil
			}
		}
		return false, nil
	})
}
