// Data access for the poll history. The console derives nothing from
// these rows; they exist so operators can see when and why polls failed.

package store

import (
	"database/sql"
	"time"

	"github.com/vrsandeep/ugc-console/internal/models"
)

// RecordPollRun inserts one finished poll execution.
func (s *Store) RecordPollRun(run models.PollRun) error {
	var errText sql.NullString
	if run.Error != "" {
		errText = sql.NullString{String: run.Error, Valid: true}
	}
	_, err := s.db.Exec(
		"INSERT INTO poll_runs (id, task, started_at, duration_ms, ok, error) VALUES (?, ?, ?, ?, ?, ?)",
		run.ID, run.Task, run.StartedAt.UTC(), run.Duration.Milliseconds(), run.OK, errText)
	return err
}

// ListPollRuns returns the newest runs first. An empty task matches all tasks.
func (s *Store) ListPollRuns(task string, limit int) ([]models.PollRun, error) {
	query := `
		SELECT id, task, started_at, duration_ms, ok, error
		FROM poll_runs
		WHERE (? = '' OR task = ?)
		ORDER BY started_at DESC
		LIMIT ?
	`
	rows, err := s.db.Query(query, task, task, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := []models.PollRun{}
	for rows.Next() {
		var run models.PollRun
		var durationMs int64
		var errText sql.NullString
		if err := rows.Scan(&run.ID, &run.Task, &run.StartedAt, &durationMs, &run.OK, &errText); err != nil {
			return nil, err
		}
		run.Duration = time.Duration(durationMs) * time.Millisecond
		run.Error = errText.String
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// CountFailedPollRuns counts failures for a task since the given time.
func (s *Store) CountFailedPollRuns(task string, since time.Time) (int, error) {
	var count int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM poll_runs WHERE task = ? AND ok = 0 AND started_at >= ?",
		task, since.UTC()).Scan(&count)
	return count, err
}

// PrunePollRuns deletes runs that started before cutoff.
func (s *Store) PrunePollRuns(cutoff time.Time) (int64, error) {
	res, err := s.db.Exec("DELETE FROM poll_runs WHERE started_at < ?", cutoff.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
