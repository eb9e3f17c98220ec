package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omegalabs/studio/internal/models"
	"github.com/omegalabs/studio/internal/session"
)

func TestTargetFor(t *testing.T) {
	assert.Equal(t, TargetFirebase, TargetFor(models.TemplateAndroidCompose))
	assert.Equal(t, TargetFirebase, TargetFor(models.TemplateAndroidEmpty))
	assert.Equal(t, TargetCloudRun, TargetFor(models.TemplateBackendNode))
	assert.Equal(t, TargetVercel, TargetFor(models.TemplateWebReact))
	assert.Equal(t, TargetVercel, TargetFor(models.TemplateGameCanvas))
}

func TestBuild(t *testing.T) {
	s := session.New("p", models.TemplateAndroidCompose)
	p := NewInstant()

	err := p.Build(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, models.BuildSuccess, s.BuildStatus)

	var builderLines, successLine int
	for _, l := range s.Logs {
		if l.Source == models.SourceBuilder {
			builderLines++
		}
		if l.Message == "BUILD SUCCESSFUL in 9s" {
			successLine++
		}
	}
	assert.Greater(t, builderLines, 5)
	assert.Equal(t, 1, successLine)
}

func TestBuild_ReentryRejected(t *testing.T) {
	s := session.New("p", models.TemplateAndroidCompose)
	s.BuildStatus = models.BuildInProgress

	err := NewInstant().Build(context.Background(), s)
	assert.ErrorIs(t, err, ErrBuildInProgress)
}

func TestBuild_Cancelled(t *testing.T) {
	s := session.New("p", models.TemplateAndroidCompose)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewInstant().Build(ctx, s)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, models.BuildFailed, s.BuildStatus)
}

func TestDeploy(t *testing.T) {
	for _, target := range []Target{TargetFirebase, TargetCloudRun, TargetVercel} {
		t.Run(string(target), func(t *testing.T) {
			s := session.New("p", models.TemplateWebReact)

			err := NewInstant().Deploy(context.Background(), s, target)
			require.NoError(t, err)
			assert.Equal(t, models.DeployLive, s.DeployStatus)

			var url bool
			for _, l := range s.Logs {
				if l.Source == models.SourceSystem && len(l.Message) > 4 && l.Message[:4] == "URL:" {
					url = true
				}
			}
			assert.True(t, url, "deploy script should end with a URL line")
		})
	}
}

func TestDeploy_ReentryRejected(t *testing.T) {
	s := session.New("p", models.TemplateWebReact)
	s.DeployStatus = models.DeployInProgress

	err := NewInstant().Deploy(context.Background(), s, TargetVercel)
	assert.ErrorIs(t, err, ErrDeployInProgress)
}

func TestDeploy_Cancelled(t *testing.T) {
	s := session.New("p", models.TemplateWebReact)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewInstant().Deploy(ctx, s, TargetVercel)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, models.DeployFailed, s.DeployStatus)
}

func TestNewUsesRealSleep(t *testing.T) {
	// smoke check only: the default pipeline carries a sleeper
	p := New()
	require.NotNil(t, p.sleep)
	start := time.Now()
	p.sleep(time.Millisecond)
	assert.GreaterOrEqual(t, time.Since(start), time.Millisecond)
}
