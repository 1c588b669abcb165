package store

import (
	"fmt"
	"path/filepath"

	"egetutor/internal/exam"
)

// DatetimeLayout is the timestamp format used in result entries.
const DatetimeLayout = "2006-01-02 15:04"

// ResultEntry is one recorded attempt. Entries are immutable once appended;
// the per-user log preserves insertion order, which equals chronological
// order.
type ResultEntry struct {
	Datetime string    `json:"datetime"`
	Mode     exam.Mode `json:"mode"`

	// TaskNumber identifies the task category for single mode.
	// nil for full-exam attempts.
	TaskNumber *int `json:"task_number"`

	Total   int     `json:"total"`
	Correct int     `json:"correct"`
	Percent float64 `json:"percent"`

	// Level is the difficulty the attempt was taken at, snapshotted when
	// the entry is recorded.
	Level int `json:"level"`
}

// ResultRepo manages per-user result logs, one flat JSON array per user.
// Append-only: there is no update or delete.
type ResultRepo struct {
	store *Store
}

func (r *ResultRepo) path(username string) string {
	return filepath.Join(r.store.dir, fmt.Sprintf("results_%s.json", username))
}

// Append adds one entry to the end of username's log and rewrites it. A
// corrupt log is restarted from the new entry; the bad file is replaced.
func (r *ResultRepo) Append(username string, entry ResultEntry) error {
	entries, err := readRecord[[]ResultEntry](r.path(username))
	if err != nil && !isCorrupt(err) {
		return err
	}
	entries = append(entries, entry)
	if err := writeRecord(r.path(username), entries); err != nil {
		return fmt.Errorf("persist results: %w", err)
	}
	return nil
}

// All returns username's full log in stored order.
func (r *ResultRepo) All(username string) ([]ResultEntry, error) {
	return readRecord[[]ResultEntry](r.path(username))
}

// QueryByMode filters username's log by exact mode match and, for single
// mode, by exact task number. Entries keep their stored order; callers
// wanting recency take the tail and reverse for display.
func (r *ResultRepo) QueryByMode(username string, mode exam.Mode, taskNumber int) ([]ResultEntry, error) {
	entries, err := r.All(username)
	if err != nil {
		return nil, err
	}

	var out []ResultEntry
	for _, e := range entries {
		if e.Mode != mode {
			continue
		}
		if mode == exam.ModeSingle && (e.TaskNumber == nil || *e.TaskNumber != taskNumber) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}
