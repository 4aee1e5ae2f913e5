package db

import (
	"database/sql"
	"errors"
	"fmt"
)

// ErrNoRuns is returned when the journal has no recorded run.
var ErrNoRuns = errors.New("no discovery runs recorded")

type PickleRow struct {
	ID     int64
	URI    string
	Name   string
	Line   int
	Tags   string
	Status string
}

type StatusCount struct {
	Status string
	Count  int
}

func LatestRunID(sqlDB *sql.DB) (int64, error) {
	var id int64
	err := sqlDB.QueryRow(`SELECT id FROM runs ORDER BY id DESC LIMIT 1`).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNoRuns
	}
	if err != nil {
		return 0, fmt.Errorf("querying latest run: %w", err)
	}
	return id, nil
}

// RunPickles returns a run's decisions in discovery order. An empty status
// returns every decision.
func RunPickles(sqlDB *sql.DB, runID int64, status string) ([]PickleRow, error) {
	rows, err := sqlDB.Query(`
		SELECT id, uri, name, line, tags, status
		FROM pickles
		WHERE run_id = ? AND (? = '' OR status = ?)
		ORDER BY id
	`, runID, status, status)
	if err != nil {
		return nil, fmt.Errorf("querying pickles: %w", err)
	}
	defer rows.Close()

	var out []PickleRow
	for rows.Next() {
		var r PickleRow
		if err := rows.Scan(&r.ID, &r.URI, &r.Name, &r.Line, &r.Tags, &r.Status); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}
	return out, nil
}

// StatusCounts returns per-status pickle counts for a run, largest first.
func StatusCounts(sqlDB *sql.DB, runID int64) ([]StatusCount, error) {
	rows, err := sqlDB.Query(`
		SELECT status, COUNT(*) AS cnt
		FROM pickles
		WHERE run_id = ?
		GROUP BY status
		ORDER BY cnt DESC, status
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying status counts: %w", err)
	}
	defer rows.Close()

	var out []StatusCount
	for rows.Next() {
		var c StatusCount
		if err := rows.Scan(&c.Status, &c.Count); err != nil {
			return nil, fmt.Errorf("scanning status row: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// DocumentCount returns the number of feature files a run parsed.
func DocumentCount(sqlDB *sql.DB, runID int64) (int, error) {
	var n int
	if err := sqlDB.QueryRow(`SELECT COUNT(*) FROM documents WHERE run_id = ?`, runID).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting documents: %w", err)
	}
	return n, nil
}
