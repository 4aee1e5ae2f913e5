package db

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chriserin/pickle/internal/event"
	"github.com/chriserin/pickle/internal/parser"
	"github.com/chriserin/pickle/internal/pickle"
)

func openJournal(t *testing.T) *sql.DB {
	t.Helper()
	sqlDB, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return sqlDB
}

func TestOpen_UsesWAL(t *testing.T) {
	sqlDB := openJournal(t)

	var mode string
	require.NoError(t, sqlDB.QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)
}

func TestLatestRunID_Empty(t *testing.T) {
	_, err := LatestRunID(openJournal(t))
	assert.ErrorIs(t, err, ErrNoRuns)
}

func samplePickle(name string, line int, tags ...string) *pickle.Pickle {
	p := &pickle.Pickle{URI: "a.feature", Name: name, Locations: []parser.Location{{Line: line, Column: 3}}}
	for _, t := range tags {
		p.Tags = append(p.Tags, pickle.Tag{Name: t})
	}
	return p
}

func TestRecorder_RecordsDecisions(t *testing.T) {
	sqlDB := openJournal(t)
	rec, err := NewRecorder(sqlDB)
	require.NoError(t, err)

	b := event.NewBroadcaster()
	rec.Attach(b)

	doc := &parser.GherkinDocument{URI: "a.feature", Feature: &parser.Feature{Name: "Login"}}
	b.Emit(event.NewGherkinDocumentEvent("a.feature", doc))
	first := samplePickle("one", 2, "@smoke", "@auth")
	second := samplePickle("two", 5)
	b.Emit(event.NewPickleEvent("a.feature", first))
	b.Emit(event.NewDecisionEvent("a.feature", first, true))
	b.Emit(event.NewPickleEvent("a.feature", second))
	b.Emit(event.NewDecisionEvent("a.feature", second, false))
	require.NoError(t, rec.Err())

	runID, err := LatestRunID(sqlDB)
	require.NoError(t, err)
	assert.Equal(t, rec.RunID(), runID)

	rows, err := RunPickles(sqlDB, runID, "")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "one", rows[0].Name)
	assert.Equal(t, 2, rows[0].Line)
	assert.Equal(t, "@smoke @auth", rows[0].Tags)
	assert.Equal(t, StatusAccepted, rows[0].Status)
	assert.Equal(t, StatusRejected, rows[1].Status)

	accepted, err := RunPickles(sqlDB, runID, StatusAccepted)
	require.NoError(t, err)
	require.Len(t, accepted, 1)
	assert.Equal(t, "one", accepted[0].Name)

	docs, err := DocumentCount(sqlDB, runID)
	require.NoError(t, err)
	assert.Equal(t, 1, docs)
}

func TestRecorder_SeparateRuns(t *testing.T) {
	sqlDB := openJournal(t)

	for _, name := range []string{"first", "second"} {
		rec, err := NewRecorder(sqlDB)
		require.NoError(t, err)
		b := event.NewBroadcaster()
		rec.Attach(b)
		b.Emit(event.NewDecisionEvent("a.feature", samplePickle(name, 1), true))
		require.NoError(t, rec.Err())
	}

	runID, err := LatestRunID(sqlDB)
	require.NoError(t, err)
	rows, err := RunPickles(sqlDB, runID, "")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "second", rows[0].Name)
}

func TestStatusCounts(t *testing.T) {
	sqlDB := openJournal(t)
	rec, err := NewRecorder(sqlDB)
	require.NoError(t, err)
	b := event.NewBroadcaster()
	rec.Attach(b)

	b.Emit(event.NewDecisionEvent("a.feature", samplePickle("a", 1), true))
	b.Emit(event.NewDecisionEvent("a.feature", samplePickle("b", 2), false))
	b.Emit(event.NewDecisionEvent("a.feature", samplePickle("c", 3), false))
	require.NoError(t, rec.Err())

	counts, err := StatusCounts(sqlDB, rec.RunID())
	require.NoError(t, err)
	assert.Equal(t, []StatusCount{
		{Status: StatusRejected, Count: 2},
		{Status: StatusAccepted, Count: 1},
	}, counts)
}

func TestRecorder_KeepsFirstError(t *testing.T) {
	sqlDB := openJournal(t)
	rec, err := NewRecorder(sqlDB)
	require.NoError(t, err)
	b := event.NewBroadcaster()
	rec.Attach(b)

	require.NoError(t, sqlDB.Close())
	b.Emit(event.NewDecisionEvent("a.feature", samplePickle("a", 1), true))
	assert.Error(t, rec.Err())
}
