package domain

import "io/fs"

// PluginFS is read access to a plugin directory plus the single write the
// validator performs (the checksum sidecar).
type PluginFS interface {
	Stat(path string) (fs.FileInfo, error)
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte) error
	ReadDir(path string) ([]fs.DirEntry, error)
}

// ConfigLoader loads validator configuration.
type ConfigLoader interface {
	Load(path string) (Config, error)
}

// GitInfo resolves version-control information for a directory.
type GitInfo interface {
	CommitHash(path string) (string, error)
}

// HistoryStore persists validation runs.
type HistoryStore interface {
	Save(run *ValidationRun) error
	List(plugin string, limit int) ([]HistoryEntry, error)
}

// MetricsRecorder records per-run counters.
type MetricsRecorder interface {
	ObserveRun(run *ValidationRun)
}
