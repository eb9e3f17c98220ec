// Package agent resolves individual planned tasks into generated content.
// Execution is best-effort and fire-once: a task that fails is reported and
// skipped, never retried, and never halts the run.
package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/omegalabs/studio/internal/genai"
	"github.com/omegalabs/studio/internal/models"
)

// DefaultContextLimit bounds the project-context portion of a task prompt.
const DefaultContextLimit = 3000

// Result is the outcome of executing one task. Code is populated only when
// the raw output contained a recognizable fenced code block; callers must
// handle the no-file-change case.
type Result struct {
	Code    string
	HasCode bool
	Output  string
}

// Executor runs one task at a time against the generative capability.
type Executor struct {
	gen          genai.Generator
	contextLimit int
}

// New creates an Executor. A non-positive contextLimit selects the default.
func New(gen genai.Generator, contextLimit int) *Executor {
	if contextLimit <= 0 {
		contextLimit = DefaultContextLimit
	}
	return &Executor{gen: gen, contextLimit: contextLimit}
}

// buildPrompt assembles the role persona, truncated project context, and task
// description into a single instruction.
func (e *Executor) buildPrompt(task models.AgentTask, projectContext string) string {
	var sb strings.Builder
	sb.WriteString(personaFor(task.Role))
	sb.WriteString("\n\nCONTEXT:\n")
	sb.WriteString(truncate(projectContext, e.contextLimit))
	sb.WriteString("\n\nTASK: ")
	sb.WriteString(task.Description)
	sb.WriteString("\n\n")
	sb.WriteString(`REQUIREMENTS:
- Production quality code.
- Full file content (imports, classes, main).
- No placeholders.

OUTPUT:
Return the code block ONLY.`)
	return sb.String()
}

// Execute resolves one task given a project-context string. On capability
// failure the returned Result carries an error message as its output and the
// error is returned so the run controller can mark the task failed; execution
// of later tasks continues regardless.
func (e *Executor) Execute(ctx context.Context, task models.AgentTask, projectContext string) (Result, error) {
	text, err := e.gen.Generate(ctx, e.buildPrompt(task, projectContext), genai.FormatText)
	if err != nil {
		return Result{Output: fmt.Sprintf("Error executing task: %v", err)}, err
	}

	code, ok := ExtractCode(text)
	return Result{Code: code, HasCode: ok, Output: text}, nil
}

// BuildContext produces the bounded project-context string handed to Execute:
// the current file names plus the active file's content.
func BuildContext(s *models.Session) string {
	names := make([]string, 0, len(s.Files))
	for _, f := range s.Files {
		names = append(names, f.Name)
	}

	var active string
	if f := s.ActiveFile(); f != nil {
		active = f.Content
	}

	return fmt.Sprintf("Files: %s\nActive File Content:\n%s", strings.Join(names, ", "), active)
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
