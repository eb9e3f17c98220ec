package models

import "strings"

// AgentRole identifies the persona an agent task executes under.
type AgentRole string

const (
	RoleOrchestrator AgentRole = "ORCHESTRATOR"
	RoleArchitect    AgentRole = "ARCHITECT"
	RoleUIDesigner   AgentRole = "UI_DESIGNER"
	RoleDeveloper    AgentRole = "DEVELOPER"
	RoleDebugger     AgentRole = "DEBUGGER"
	RoleBuilder      AgentRole = "BUILDER"
	RoleDatabase     AgentRole = "DATABASE"
	RoleGameEngine   AgentRole = "GAME_ENGINE"
	RoleBackend      AgentRole = "BACKEND"
	RoleDevOps       AgentRole = "DEVOPS"
	RoleDeployer     AgentRole = "DEPLOYER"
)

// NormalizeRole maps a free-form role string from the planner's model output
// onto a known role. Matching is case-insensitive and tolerant of missing
// underscores ("UIDesigner", "ui designer"). Unknown strings pass through
// unchanged; the executor falls back to the developer persona for those.
func NormalizeRole(s string) AgentRole {
	key := strings.ToUpper(strings.TrimSpace(s))
	key = strings.NewReplacer(" ", "_", "-", "_").Replace(key)

	switch key {
	case "ORCHESTRATOR", "ARCHITECT", "UI_DESIGNER", "DEVELOPER", "DEBUGGER",
		"BUILDER", "DATABASE", "GAME_ENGINE", "BACKEND", "DEVOPS", "DEPLOYER":
		return AgentRole(key)
	case "UIDESIGNER":
		return RoleUIDesigner
	case "GAMEENGINE":
		return RoleGameEngine
	}
	return AgentRole(key)
}

// TaskStatus represents the state of an agent task. Transitions are monotonic:
// pending -> running -> completed|failed. A failed task does not retry and does
// not block the tasks after it.
type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusPlanning  TaskStatus = "planning"
	TaskStatusRunning   TaskStatus = "running"
	TaskStatusCompleted TaskStatus = "completed"
	TaskStatusFailed    TaskStatus = "failed"
)

// Terminal reports whether the status is a terminal one.
func (s TaskStatus) Terminal() bool {
	return s == TaskStatusCompleted || s == TaskStatusFailed
}

// AgentTask is one atomic unit of planned work. All tasks for a run are
// created at once by the planner and replaced wholesale when a new run starts.
type AgentTask struct {
	ID          string     `json:"id"`
	Role        AgentRole  `json:"role"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
	Logs        []string   `json:"logs"`
}
