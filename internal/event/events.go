package event

import (
	"github.com/chriserin/pickle/internal/parser"
	"github.com/chriserin/pickle/internal/pickle"
	"github.com/chriserin/pickle/internal/source"
)

type Name string

const (
	Source          Name = "source"
	GherkinDocument Name = "gherkin-document"
	Pickle          Name = "pickle"
	PickleAccepted  Name = "pickle-accepted"
	PickleRejected  Name = "pickle-rejected"
)

// Names lists every event name in the order a single pickle's lifecycle
// produces them.
var Names = []Name{Source, GherkinDocument, Pickle, PickleAccepted, PickleRejected}

type Event interface {
	EventName() Name
}

type SourceEvent struct {
	Type  Name         `json:"type"`
	URI   string       `json:"uri"`
	Data  string       `json:"data"`
	Media source.Media `json:"media"`
}

func NewSourceEvent(src *source.Source) *SourceEvent {
	return &SourceEvent{Type: Source, URI: src.URI, Data: src.Data, Media: src.Media}
}

func (*SourceEvent) EventName() Name { return Source }

type GherkinDocumentEvent struct {
	Type     Name                    `json:"type"`
	URI      string                  `json:"uri"`
	Document *parser.GherkinDocument `json:"document"`
}

func NewGherkinDocumentEvent(uri string, doc *parser.GherkinDocument) *GherkinDocumentEvent {
	return &GherkinDocumentEvent{Type: GherkinDocument, URI: uri, Document: doc}
}

func (*GherkinDocumentEvent) EventName() Name { return GherkinDocument }

type PickleEvent struct {
	Type   Name           `json:"type"`
	URI    string         `json:"uri"`
	Pickle *pickle.Pickle `json:"pickle"`
}

func NewPickleEvent(uri string, p *pickle.Pickle) *PickleEvent {
	return &PickleEvent{Type: Pickle, URI: uri, Pickle: p}
}

func (*PickleEvent) EventName() Name { return Pickle }

// DecisionEvent is the filter outcome for one pickle: pickle-accepted or
// pickle-rejected.
type DecisionEvent struct {
	Type   Name           `json:"type"`
	URI    string         `json:"uri"`
	Pickle *pickle.Pickle `json:"pickle"`
}

func NewDecisionEvent(uri string, p *pickle.Pickle, accepted bool) *DecisionEvent {
	name := PickleRejected
	if accepted {
		name = PickleAccepted
	}
	return &DecisionEvent{Type: name, URI: uri, Pickle: p}
}

func (e *DecisionEvent) EventName() Name { return e.Type }

// Accepted reports whether the pickle passed the filter.
func (e *DecisionEvent) Accepted() bool { return e.Type == PickleAccepted }
