package agent

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omegalabs/studio/internal/genai"
	"github.com/omegalabs/studio/internal/models"
)

type stubGen struct {
	text   string
	err    error
	prompt string
}

func (s *stubGen) Generate(_ context.Context, prompt string, _ genai.Format) (string, error) {
	s.prompt = prompt
	return s.text, s.err
}

func TestExecute_WithCodeBlock(t *testing.T) {
	gen := &stubGen{text: "Here is the file:\n```kotlin\nfun main() {}\n```\nDone."}
	task := models.AgentTask{Role: models.RoleDeveloper, Description: "write main"}

	res, err := New(gen, 0).Execute(context.Background(), task, "Files: main.kt")
	require.NoError(t, err)
	assert.True(t, res.HasCode)
	assert.Equal(t, "fun main() {}", res.Code)
	assert.Equal(t, gen.text, res.Output)
}

func TestExecute_NarrativeOnly(t *testing.T) {
	gen := &stubGen{text: "The schema should normalize users and posts into two tables."}
	task := models.AgentTask{Role: models.RoleArchitect, Description: "define schema"}

	res, err := New(gen, 0).Execute(context.Background(), task, "")
	require.NoError(t, err)
	assert.False(t, res.HasCode)
	assert.Empty(t, res.Code)
	assert.Equal(t, gen.text, res.Output)
}

func TestExecute_CapabilityFailure(t *testing.T) {
	gen := &stubGen{err: errors.New("timeout")}
	task := models.AgentTask{Role: models.RoleBackend, Description: "expose API"}

	res, err := New(gen, 0).Execute(context.Background(), task, "")
	require.Error(t, err)
	assert.False(t, res.HasCode)
	assert.Equal(t, "Error executing task: timeout", res.Output)
}

func TestExecute_PromptShape(t *testing.T) {
	gen := &stubGen{text: "ok"}
	task := models.AgentTask{Role: models.RoleUIDesigner, Description: "build login screen"}

	_, err := New(gen, 0).Execute(context.Background(), task, "Files: a.kt, b.kt")
	require.NoError(t, err)
	assert.Contains(t, gen.prompt, "Lead Product Designer")
	assert.Contains(t, gen.prompt, "TASK: build login screen")
	assert.Contains(t, gen.prompt, "Files: a.kt, b.kt")
}

func TestExecute_UnknownRoleFallsBackToDeveloper(t *testing.T) {
	gen := &stubGen{text: "ok"}
	task := models.AgentTask{Role: "WIZARD", Description: "cast"}

	_, err := New(gen, 0).Execute(context.Background(), task, "")
	require.NoError(t, err)
	assert.Contains(t, gen.prompt, "Staff Engineer")
}

func TestExecute_TruncatesContext(t *testing.T) {
	gen := &stubGen{text: "ok"}
	task := models.AgentTask{Role: models.RoleDeveloper, Description: "x"}
	long := strings.Repeat("a", 5000)

	_, err := New(gen, 100).Execute(context.Background(), task, long)
	require.NoError(t, err)
	assert.Contains(t, gen.prompt, strings.Repeat("a", 100)+"...")
	assert.NotContains(t, gen.prompt, strings.Repeat("a", 101))
}

func TestBuildContext(t *testing.T) {
	s := &models.Session{
		Files: []models.VirtualFile{
			{ID: "f1", Name: "main.kt", Kind: models.KindFile, Content: "fun main() {}"},
			{ID: "f2", Name: "Theme.kt", Kind: models.KindFile, Content: "val theme = 1"},
		},
		ActiveFileID: "f2",
	}

	ctx := BuildContext(s)
	assert.Contains(t, ctx, "Files: main.kt, Theme.kt")
	assert.Contains(t, ctx, "val theme = 1")
	assert.NotContains(t, ctx, "fun main() {}")

	t.Run("no active file", func(t *testing.T) {
		s.ActiveFileID = ""
		ctx := BuildContext(s)
		assert.Contains(t, ctx, "Active File Content:\n")
	})
}

func TestExtractCode(t *testing.T) {
	cases := map[string]struct {
		in   string
		want string
		ok   bool
	}{
		"no fence":           {"just prose", "", false},
		"plain fence":        {"```\ncode here\n```", "code here", true},
		"language tag":       {"```kotlin\nfun main() {}\n```", "fun main() {}", true},
		"surrounding prose":  {"Sure!\n```js\nlet x = 1\n```\nEnjoy.", "let x = 1", true},
		"unclosed fence":     {"```go\nx := 1", "x := 1", true},
		"empty block":        {"``````", "", false},
		"empty tagged block": {"```json\n```", "", false},
		"multiple fences":    {"```\nfirst\n```\ntext\n```\nsecond\n```", "first", true},
		"nested-looking":     {"```md\nouter\n```inner\n```", "outer", true},
		"code on fence line": {"```x = 1```", "x = 1", true},
		"multiline":          {"```python\ndef f():\n    return 1\n```", "def f():\n    return 1", true},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, ok := ExtractCode(tc.in)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestPersonaFor(t *testing.T) {
	for _, role := range []models.AgentRole{
		models.RoleOrchestrator, models.RoleArchitect, models.RoleUIDesigner,
		models.RoleDeveloper, models.RoleDebugger, models.RoleDatabase,
		models.RoleGameEngine, models.RoleBackend, models.RoleDevOps,
	} {
		assert.NotEmpty(t, personaFor(role), string(role))
	}

	// roles without a persona of their own share the developer profile
	assert.Equal(t, personas[models.RoleDeveloper], personaFor(models.RoleBuilder))
	assert.Equal(t, personas[models.RoleDeveloper], personaFor(models.RoleDeployer))
	assert.Equal(t, personas[models.RoleDeveloper], personaFor("NOT_A_ROLE"))
}
