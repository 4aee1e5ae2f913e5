// Package formatter writes a run's event stream for other tools to consume.
package formatter

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/chriserin/pickle/internal/event"
)

const (
	FormatNDJSON = "ndjson"
	FormatYAML   = "yaml"
)

// EventLog serialises every event it observes, one record per event.
type EventLog struct {
	mu     sync.Mutex
	w      io.Writer
	format string
	yaml   *yaml.Encoder
	err    error
}

// NewEventLog returns an EventLog writing format ("ndjson" or "yaml") to w.
func NewEventLog(w io.Writer, format string) (*EventLog, error) {
	l := &EventLog{w: w, format: format}
	switch format {
	case FormatNDJSON:
	case FormatYAML:
		l.yaml = yaml.NewEncoder(w)
		l.yaml.SetIndent(2)
	default:
		return nil, fmt.Errorf("unknown event format %q", format)
	}
	return l, nil
}

// Attach subscribes the log to every event name on b.
func (l *EventLog) Attach(b *event.Broadcaster) {
	b.OnAll(l.write)
}

// Err returns the first write error. Later events are dropped once a write
// has failed.
func (l *EventLog) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// Close flushes the YAML stream.
func (l *EventLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.yaml != nil {
		if err := l.yaml.Close(); err != nil && l.err == nil {
			l.err = err
		}
	}
	return l.err
}

func (l *EventLog) write(ev event.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return
	}

	record, err := json.Marshal(ev)
	if err != nil {
		l.err = fmt.Errorf("encoding %s event: %w", ev.EventName(), err)
		return
	}

	if l.format == FormatNDJSON {
		if _, err := l.w.Write(append(record, '\n')); err != nil {
			l.err = fmt.Errorf("writing %s event: %w", ev.EventName(), err)
		}
		return
	}

	// JSON is valid YAML; decoding into a node keeps the field order.
	var node yaml.Node
	if err := yaml.Unmarshal(record, &node); err != nil {
		l.err = fmt.Errorf("converting %s event: %w", ev.EventName(), err)
		return
	}
	blockStyle(&node)
	if err := l.yaml.Encode(&node); err != nil {
		l.err = fmt.Errorf("writing %s event: %w", ev.EventName(), err)
	}
}

func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}
