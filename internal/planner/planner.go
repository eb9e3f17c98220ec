// Package planner turns a free-text goal into an ordered list of agent tasks.
package planner

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/omegalabs/studio/internal/genai"
	"github.com/omegalabs/studio/internal/models"
)

const orchestratorPersona = "You are the ORCHESTRATOR, the planning core of an " +
	"autonomous software construction engine. You break user directives into " +
	"precise, atomic, highly technical tasks and assign each to a specialist agent."

// fallbackDescription is the single task emitted when planning fails for any
// reason. The run controller must always have at least one task to attempt;
// planning failures never block the pipeline.
const fallbackDescription = "Execute user directive immediately."

// Planner maps a goal string onto agent tasks using the generative capability.
type Planner struct {
	gen genai.Generator
}

// New creates a Planner backed by the given generator.
func New(gen genai.Generator) *Planner {
	return &Planner{gen: gen}
}

// plannedTask is the wire shape the model is asked to emit.
type plannedTask struct {
	Role        string `json:"role"`
	Description string `json:"description"`
}

// buildPrompt constructs the orchestrator prompt for a goal.
func buildPrompt(goal string) string {
	var sb strings.Builder
	sb.WriteString(orchestratorPersona)
	sb.WriteString("\n\nDIRECTIVE: \"")
	sb.WriteString(goal)
	sb.WriteString("\"\n\n")
	sb.WriteString(`ANALYSIS:
Classify the directive as a mobile app, web app, or backend service, then break
it into tasks.
If mobile app -> ARCHITECT (plan), UI_DESIGNER (screens), DEVELOPER (logic), BUILDER (package).
If web app -> ARCHITECT (plan), UI_DESIGNER (components), BACKEND (API), DEVOPS (deploy).
If backend service -> ARCHITECT (plan), DATABASE (schema), BACKEND (API), DEPLOYER (release).

CONSTRAINT:
Return ONLY a JSON array. No markdown.
Example:
[
  { "role": "ARCHITECT", "description": "Define schema for Users and Posts tables" },
  { "role": "UI_DESIGNER", "description": "Implement LoginScreen with Material3" }
]`)
	return sb.String()
}

// Plan derives the task list for a goal. It never fails and never returns an
// empty list: on any capability or parse error it returns the single-task
// fallback plan. Callers reject empty goals before calling Plan.
func (p *Planner) Plan(ctx context.Context, goal string) []models.AgentTask {
	text, err := p.gen.Generate(ctx, buildPrompt(goal), genai.FormatJSON)
	if err != nil {
		return fallbackPlan()
	}

	var planned []plannedTask
	if err := json.Unmarshal([]byte(stripFence(text)), &planned); err != nil || len(planned) == 0 {
		return fallbackPlan()
	}

	tasks := make([]models.AgentTask, 0, len(planned))
	for _, pt := range planned {
		if strings.TrimSpace(pt.Description) == "" {
			continue
		}
		tasks = append(tasks, models.AgentTask{
			ID:          models.NewID(),
			Role:        models.NormalizeRole(pt.Role),
			Description: pt.Description,
			Status:      models.TaskStatusPending,
		})
	}
	if len(tasks) == 0 {
		return fallbackPlan()
	}
	return tasks
}

func fallbackPlan() []models.AgentTask {
	return []models.AgentTask{{
		ID:          models.NewID(),
		Role:        models.RoleDeveloper,
		Description: fallbackDescription,
		Status:      models.TaskStatusPending,
	}}
}

// stripFence removes a surrounding markdown code fence if the model ignored
// the no-fencing instruction.
func stripFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	lines := strings.SplitN(text, "\n", 2)
	if len(lines) > 1 {
		text = lines[1]
	}
	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}
