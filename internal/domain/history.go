package domain

import "time"

// HistoryEntry is one persisted validation run.
type HistoryEntry struct {
	RunID      string    `json:"run_id"`
	Plugin     string    `json:"plugin"`
	Dir        string    `json:"dir"`
	Passed     bool      `json:"passed"`
	Errors     int       `json:"errors"`
	Warnings   int       `json:"warnings"`
	Checks     int       `json:"checks"`
	CommitHash string    `json:"commit_hash,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	DurationMS int64     `json:"duration_ms"`
}

// EntryFromRun flattens a run into a history entry.
func EntryFromRun(run *ValidationRun) HistoryEntry {
	return HistoryEntry{
		RunID:      run.RunID,
		Plugin:     run.Report.Plugin,
		Dir:        run.Report.Dir,
		Passed:     run.Passed,
		Errors:     run.Errors,
		Warnings:   run.Warnings,
		Checks:     len(run.Report.Results),
		CommitHash: run.CommitHash,
		StartedAt:  run.StartedAt,
		DurationMS: run.Duration.Milliseconds(),
	}
}
