// Package runner drives one end-to-end run: plan the goal, execute each task
// in planner order against the session, and stream status and log updates.
// A run "completes" once every task has been attempted; individual task
// failures never abort it.
package runner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/omegalabs/studio/internal/agent"
	"github.com/omegalabs/studio/internal/models"
	"github.com/omegalabs/studio/internal/session"
	"github.com/omegalabs/studio/internal/vfs"
)

var (
	// ErrEmptyGoal rejects empty or whitespace-only directives before any
	// planning happens.
	ErrEmptyGoal = errors.New("goal is empty")
	// ErrRunActive guards against overlapping runs. The system supports a
	// single active run at a time.
	ErrRunActive = errors.New("a run is already active")
)

// Planner derives the task list for a goal. Implementations never fail and
// never return an empty list.
type Planner interface {
	Plan(ctx context.Context, goal string) []models.AgentTask
}

// Executor resolves one task into generated content.
type Executor interface {
	Execute(ctx context.Context, task models.AgentTask, projectContext string) (agent.Result, error)
}

// Report summarizes a finished run. Every task carries a terminal status.
type Report struct {
	Tasks     []models.AgentTask
	Completed int
	Failed    int
	Duration  time.Duration
	// Err is non-nil only when the run was cancelled mid-loop; remaining
	// tasks are finalized as failed rather than left dangling.
	Err error
}

// Runner is the run controller. One Runner drives at most one run at a time;
// it is the single writer to the session for the duration of a run.
type Runner struct {
	planner  Planner
	executor Executor
	active   atomic.Bool
}

// New creates a Runner.
func New(p Planner, e Executor) *Runner {
	return &Runner{planner: p, executor: e}
}

// Running reports whether a run is currently in flight.
func (r *Runner) Running() bool { return r.active.Load() }

// Run executes the full pipeline for a goal against the session. The session
// is mutated in place: task logs, terminal log entries, and file content.
// Tasks execute strictly in planner order; no task starts before the previous
// one reaches a terminal status.
func (r *Runner) Run(ctx context.Context, s *models.Session, goal string) (*Report, error) {
	goal = strings.TrimSpace(goal)
	if goal == "" {
		return nil, ErrEmptyGoal
	}
	if !r.active.CompareAndSwap(false, true) {
		return nil, ErrRunActive
	}
	defer r.active.Store(false)

	start := time.Now()
	session.AppendLog(s, models.SourceOmega, fmt.Sprintf("User directive: %q", goal))
	session.AppendLog(s, models.SourceOmega, "Deriving plan...")

	tasks := r.planner.Plan(ctx, goal)
	session.AppendLog(s, models.SourceOmega, fmt.Sprintf("Plan generated: %d tasks.", len(tasks)))

	report := &Report{}
	cancelled := false
	for i := range tasks {
		task := &tasks[i]

		if err := ctx.Err(); err != nil {
			if !cancelled {
				session.AppendLog(s, models.SourceError, "Run cancelled; remaining tasks abandoned.")
				report.Err = err
				cancelled = true
			}
			task.Status = models.TaskStatusFailed
			task.Logs = append(task.Logs, "cancelled before execution")
			report.Failed++
			continue
		}

		task.Status = models.TaskStatusRunning
		session.AppendLog(s, models.SourceAgent, fmt.Sprintf("[%s] Executing: %s", task.Role, task.Description))

		res, err := r.executor.Execute(ctx, *task, agent.BuildContext(s))
		if err != nil {
			task.Status = models.TaskStatusFailed
			task.Logs = append(task.Logs, res.Output)
			session.AppendLog(s, models.SourceError, fmt.Sprintf("[%s] %s", task.Role, res.Output))
			report.Failed++
			continue
		}

		// Generated code always lands in the currently active file, not a
		// per-task target path. That mirrors the reference behavior; see
		// DESIGN.md before "fixing" it.
		if res.HasCode && s.ActiveFileID != "" {
			s.Files = vfs.UpdateContent(s.Files, s.ActiveFileID, res.Code)
			session.AppendLog(s, models.SourceSystem, "Code applied to active file.")
		}

		task.Logs = append(task.Logs, res.Output)
		task.Status = models.TaskStatusCompleted
		session.AppendLog(s, models.SourceAgent, fmt.Sprintf("[%s] Task resolved.", task.Role))
		report.Completed++
	}

	session.AppendLog(s, models.SourceOmega, "Directive execution complete.")
	report.Tasks = tasks
	report.Duration = time.Since(start)
	return report, nil
}
