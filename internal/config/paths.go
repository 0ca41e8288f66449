package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths is the single source of truth for the directories the tools touch:
// the CSV extracts, the generated report artifacts, and the log files.
type Paths struct {
	DataDir    string
	ReportsDir string
	LogsDir    string
}

// NewPaths resolves a PathsConfig into absolute paths. Relative entries
// resolve against the current working directory; resolution failures keep
// the path as configured.
func NewPaths(cfg PathsConfig) *Paths {
	return &Paths{
		DataDir:    absOrKeep(cfg.DataDir),
		ReportsDir: absOrKeep(cfg.ReportsDir),
		LogsDir:    absOrKeep(cfg.LogsDir),
	}
}

func absOrKeep(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}

// EnsureDirectories creates the writable directories. The data directory is
// deliberately excluded: it holds the source extracts and is never created
// on the reader's behalf.
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.ReportsDir, p.LogsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

// GetTablePath returns the path of a table's backing CSV file.
func (p *Paths) GetTablePath(filename string) string {
	return filepath.Join(p.DataDir, filename)
}

// GetReportPath returns the path for a report artifact.
func (p *Paths) GetReportPath(filename string) string {
	return filepath.Join(p.ReportsDir, filename)
}

// GetLogPath returns the path for a log file.
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
