package logging

import (
	"path/filepath"
	"time"
)

// SessionLogPath returns the log file of a preview session started at start,
// e.g. logs/csp-minimap_2026-02-12_21-38-36.log. The timestamp is in UTC.
func SessionLogPath(logsDir string, start time.Time) string {
	return filepath.Join(logsDir, scopeName+"_"+start.UTC().Format("2006-01-02_15-04-05")+".log")
}
