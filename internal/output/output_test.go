package output

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/omegalabs/studio/internal/models"
)

func newTestUI() (*UI, *bytes.Buffer, *bytes.Buffer) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &UI{Out: out, ErrOut: errOut}, out, errOut
}

func TestInfo(t *testing.T) {
	u, out, _ := newTestUI()
	u.Info("hello %s", "world")
	assert.Contains(t, out.String(), "hello world")
}

func TestSuccess(t *testing.T) {
	u, out, _ := newTestUI()
	u.Success("done %d", 42)
	assert.Contains(t, out.String(), "done 42")
}

func TestWarning(t *testing.T) {
	u, _, errOut := newTestUI()
	u.Warning("careful %s", "now")
	assert.Contains(t, errOut.String(), "careful now")
}

func TestError(t *testing.T) {
	u, _, errOut := newTestUI()
	u.Error("failed %s", "badly")
	assert.Contains(t, errOut.String(), "failed badly")
}

func TestVerboseLog_Enabled(t *testing.T) {
	u, out, _ := newTestUI()
	u.Verbose = true
	u.VerboseLog("detail %d", 1)
	assert.Contains(t, out.String(), "detail 1")
}

func TestVerboseLog_Disabled(t *testing.T) {
	u, out, _ := newTestUI()
	u.Verbose = false
	u.VerboseLog("detail %d", 1)
	assert.Empty(t, out.String())
}

func TestLogLine(t *testing.T) {
	u, out, _ := newTestUI()
	u.LogLine(models.LogEntry{
		Timestamp: time.Date(2025, 1, 2, 13, 14, 15, 0, time.UTC),
		Source:    models.SourceBuilder,
		Message:   "assembling release",
	})
	assert.Contains(t, out.String(), "13:14:15")
	assert.Contains(t, out.String(), "BUILDER")
	assert.Contains(t, out.String(), "assembling release")
}

func TestTaskStatusColor(t *testing.T) {
	for _, status := range []models.TaskStatus{
		models.TaskStatusPending, models.TaskStatusRunning,
		models.TaskStatusCompleted, models.TaskStatusFailed,
	} {
		assert.Contains(t, TaskStatusColor(status), string(status))
	}
}

func TestSourceColor(t *testing.T) {
	for _, src := range []models.LogSource{
		models.SourceSystem, models.SourceOmega, models.SourceAgent,
		models.SourceBuilder, models.SourceError, models.SourceDeploy,
	} {
		assert.Contains(t, SourceColor(src), string(src))
	}
}
