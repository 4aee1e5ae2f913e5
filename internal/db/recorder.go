package db

import (
	"database/sql"
	"fmt"
	"strings"
	"sync"

	"github.com/chriserin/pickle/internal/event"
)

const (
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

// Recorder writes one run's documents and filter decisions to the journal.
type Recorder struct {
	db    *sql.DB
	runID int64

	mu  sync.Mutex
	err error
}

// NewRecorder starts a new run in the journal.
func NewRecorder(sqlDB *sql.DB) (*Recorder, error) {
	res, err := sqlDB.Exec(`INSERT INTO runs DEFAULT VALUES`)
	if err != nil {
		return nil, fmt.Errorf("creating run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading run id: %w", err)
	}
	return &Recorder{db: sqlDB, runID: id}, nil
}

func (r *Recorder) RunID() int64 { return r.runID }

// Attach subscribes the recorder to the events it stores.
func (r *Recorder) Attach(b *event.Broadcaster) {
	b.On(event.GherkinDocument, r.onDocument)
	b.On(event.PickleAccepted, r.onDecision)
	b.On(event.PickleRejected, r.onDecision)
}

// Err returns the first failed insert. Events after a failure are not stored.
func (r *Recorder) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

func (r *Recorder) onDocument(ev event.Event) {
	doc := ev.(*event.GherkinDocumentEvent)
	name := ""
	if doc.Document != nil && doc.Document.Feature != nil {
		name = doc.Document.Feature.Name
	}
	r.exec(`INSERT INTO documents (run_id, uri, feature_name) VALUES (?, ?, ?)`, r.runID, doc.URI, name)
}

func (r *Recorder) onDecision(ev event.Event) {
	d := ev.(*event.DecisionEvent)
	status := StatusRejected
	if d.Accepted() {
		status = StatusAccepted
	}
	line := 0
	if len(d.Pickle.Locations) > 0 {
		line = d.Pickle.Locations[0].Line
	}
	r.exec(`INSERT INTO pickles (run_id, uri, name, line, tags, status) VALUES (?, ?, ?, ?, ?, ?)`,
		r.runID, d.URI, d.Pickle.Name, line, strings.Join(d.Pickle.TagNames(), " "), status)
}

func (r *Recorder) exec(query string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return
	}
	if _, err := r.db.Exec(query, args...); err != nil {
		r.err = fmt.Errorf("recording run %d: %w", r.runID, err)
	}
}
