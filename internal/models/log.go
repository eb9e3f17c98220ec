package models

import "time"

// LogSource tags a terminal log line with the component that emitted it.
type LogSource string

const (
	SourceSystem  LogSource = "SYSTEM"
	SourceOmega   LogSource = "OMEGA"
	SourceAgent   LogSource = "AGENT"
	SourceBuilder LogSource = "BUILDER"
	SourceError   LogSource = "ERROR"
	SourceDeploy  LogSource = "DEPLOY"
)

// LogEntry is one append-only terminal log line. Entries are single-writer and
// strictly ordered by emission time.
type LogEntry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Source    LogSource `json:"source"`
	Message   string    `json:"message"`
}
