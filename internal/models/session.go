package models

import "time"

// Template identifies which project scaffold a session started from.
type Template string

const (
	TemplateAndroidEmpty   Template = "android-empty"
	TemplateAndroidCompose Template = "android-compose"
	TemplateWebReact       Template = "web-react"
	TemplateGameCanvas     Template = "game-canvas"
	TemplateBackendNode    Template = "backend-node"
	TemplateAIAgent        Template = "ai-agent"
)

// BuildStatus is the state of the simulated build pipeline.
type BuildStatus string

const (
	BuildIdle       BuildStatus = "idle"
	BuildInProgress BuildStatus = "building"
	BuildSuccess    BuildStatus = "success"
	BuildFailed     BuildStatus = "failed"
)

// DeployStatus is the state of the simulated deploy pipeline.
type DeployStatus string

const (
	DeployIdle       DeployStatus = "idle"
	DeployInProgress DeployStatus = "deploying"
	DeployLive       DeployStatus = "live"
	DeployFailed     DeployStatus = "failed"
)

// Session is the full mutable project state: virtual files, open tabs, the
// terminal log, and the build/deploy machines. It is owned by the hosting
// layer (CLI, API, MCP); core components receive it by reference and mutate it
// through the session and runner packages, never persisting it themselves.
type Session struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Template     Template      `json:"template"`
	Files        []VirtualFile `json:"files"`
	ActiveFileID string        `json:"activeFileId,omitempty"`
	OpenFileIDs  []string      `json:"openFileIds"`
	Logs         []LogEntry    `json:"logs"`
	BuildStatus  BuildStatus   `json:"buildStatus"`
	DeployStatus DeployStatus  `json:"deployStatus"`
	Version      string        `json:"version"`
	LastModified time.Time     `json:"lastModified"`
}

// SessionSummary is the lightweight listing record the persistence layer
// returns for recent sessions.
type SessionSummary struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Template     Template  `json:"template"`
	LastModified time.Time `json:"lastModified"`
}

// ActiveFile returns the active file record, or nil if none is active.
func (s *Session) ActiveFile() *VirtualFile {
	if s.ActiveFileID == "" {
		return nil
	}
	for i := range s.Files {
		if s.Files[i].ID == s.ActiveFileID {
			return &s.Files[i]
		}
	}
	return nil
}
