// Package pipeline drives the simulated build and deploy machines. Both are
// scripted log emissions with fixed delays, not algorithms; they live outside
// the orchestration core and are invoked by the host after a run completes.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/omegalabs/studio/internal/models"
	"github.com/omegalabs/studio/internal/session"
)

var (
	// ErrBuildInProgress rejects a build while one is running.
	ErrBuildInProgress = errors.New("build already in progress")
	// ErrDeployInProgress rejects a deploy while one is running.
	ErrDeployInProgress = errors.New("deploy already in progress")
)

// Target is a simulated deployment destination.
type Target string

const (
	TargetFirebase Target = "Firebase Hosting"
	TargetVercel   Target = "Vercel"
	TargetCloudRun Target = "Google Cloud Run"
)

// TargetFor picks the deploy target implied by the session template.
func TargetFor(tmpl models.Template) Target {
	switch tmpl {
	case models.TemplateAndroidEmpty, models.TemplateAndroidCompose:
		return TargetFirebase
	case models.TemplateBackendNode:
		return TargetCloudRun
	default:
		return TargetVercel
	}
}

type step struct {
	delay  time.Duration
	source models.LogSource
	msg    string
}

// Pipeline runs the scripted sequences. The sleep function is injectable so
// tests run without real delays.
type Pipeline struct {
	sleep func(time.Duration)
}

// New creates a Pipeline with real delays.
func New() *Pipeline {
	return &Pipeline{sleep: time.Sleep}
}

// NewInstant creates a Pipeline with no delays.
func NewInstant() *Pipeline {
	return &Pipeline{sleep: func(time.Duration) {}}
}

// Build runs the scripted build sequence: idle -> building -> success, or
// failed when the context is cancelled mid-script.
func (p *Pipeline) Build(ctx context.Context, s *models.Session) error {
	if s.BuildStatus == models.BuildInProgress {
		return ErrBuildInProgress
	}
	session.SetBuildStatus(s, models.BuildInProgress)

	if err := p.emit(ctx, s, buildScript); err != nil {
		session.SetBuildStatus(s, models.BuildFailed)
		session.AppendLog(s, models.SourceError, "Build aborted.")
		return err
	}

	session.SetBuildStatus(s, models.BuildSuccess)
	return nil
}

// Deploy runs the scripted deploy sequence for the given target:
// idle -> deploying -> live, or failed on cancellation.
func (p *Pipeline) Deploy(ctx context.Context, s *models.Session, target Target) error {
	if s.DeployStatus == models.DeployInProgress {
		return ErrDeployInProgress
	}
	session.SetDeployStatus(s, models.DeployInProgress)

	script, ok := deployScripts[target]
	if !ok {
		script = deployScripts[TargetVercel]
	}
	session.AppendLog(s, models.SourceDeploy, fmt.Sprintf("--- INITIALIZING DEPLOYMENT: %s ---", target))

	if err := p.emit(ctx, s, script); err != nil {
		session.SetDeployStatus(s, models.DeployFailed)
		session.AppendLog(s, models.SourceError, "Deployment aborted.")
		return err
	}

	session.SetDeployStatus(s, models.DeployLive)
	return nil
}

func (p *Pipeline) emit(ctx context.Context, s *models.Session, script []step) error {
	for _, st := range script {
		if err := ctx.Err(); err != nil {
			return err
		}
		if st.delay > 0 {
			p.sleep(st.delay)
		}
		session.AppendLog(s, st.source, st.msg)
	}
	return nil
}

var buildScript = []step{
	{0, models.SourceBuilder, "--- OMEGA BUILD ENGINE STARTED ---"},
	{500 * time.Millisecond, models.SourceBuilder, "Target: release (arm64-v8a, armeabi-v7a, x86_64)"},
	{800 * time.Millisecond, models.SourceBuilder, "> Task :app:preBuild UP-TO-DATE"},
	{0, models.SourceBuilder, "> Task :app:generateReleaseResources"},
	{600 * time.Millisecond, models.SourceBuilder, "> Task :app:mergeReleaseResources"},
	{800 * time.Millisecond, models.SourceBuilder, "> Task :app:compileReleaseKotlin"},
	{1200 * time.Millisecond, models.SourceBuilder, "> Task :app:minifyReleaseWithR8"},
	{0, models.SourceBuilder, "R8: Optimization pass 1/3..."},
	{0, models.SourceBuilder, "R8: Optimization pass 2/3..."},
	{0, models.SourceBuilder, "R8: Optimization pass 3/3..."},
	{1000 * time.Millisecond, models.SourceBuilder, "> Task :app:packageRelease"},
	{0, models.SourceBuilder, "> Task :app:assembleRelease"},
	{500 * time.Millisecond, models.SourceSystem, "BUILD SUCCESSFUL in 9s"},
	{0, models.SourceSystem, "Artifact: /dist/release/app-release.aab (10.8 MB)"},
}

var deployScripts = map[Target][]step{
	TargetFirebase: {
		{800 * time.Millisecond, models.SourceDeploy, "Auth: Authenticating with Google Cloud credentials..."},
		{0, models.SourceDeploy, "Target: firebase-production-hosting"},
		{500 * time.Millisecond, models.SourceDeploy, "Building static assets (npm run build)..."},
		{1500 * time.Millisecond, models.SourceDeploy, "Uploading hosting assets (32 files, 4.2MB)..."},
		{2000 * time.Millisecond, models.SourceDeploy, "Finalizing version..."},
		{0, models.SourceSystem, "Deploy complete."},
		{0, models.SourceSystem, "URL: https://omega-app.web.app"},
	},
	TargetCloudRun: {
		{500 * time.Millisecond, models.SourceDeploy, "Reading Dockerfile..."},
		{1000 * time.Millisecond, models.SourceDeploy, "Sending build context to Docker daemon (2.4MB)..."},
		{0, models.SourceDeploy, "Step 1/7 : FROM node:18-alpine"},
		{0, models.SourceDeploy, "Step 4/7 : RUN npm install --production"},
		{2000 * time.Millisecond, models.SourceDeploy, "Successfully built 8a1b2c3d4e5f"},
		{800 * time.Millisecond, models.SourceDeploy, "Pushing to gcr.io/omega-core/api:latest..."},
		{2000 * time.Millisecond, models.SourceDeploy, "Deploying container to Cloud Run (us-central1)..."},
		{0, models.SourceSystem, "Service healthy."},
		{0, models.SourceSystem, "URL: https://api-omega-uc.a.run.app"},
	},
	TargetVercel: {
		{1000 * time.Millisecond, models.SourceDeploy, "Connecting to edge network..."},
		{0, models.SourceDeploy, "Cloning repository..."},
		{800 * time.Millisecond, models.SourceDeploy, "Running \"npm run build\"..."},
		{1500 * time.Millisecond, models.SourceDeploy, "Generating static pages (SSG)..."},
		{1000 * time.Millisecond, models.SourceDeploy, "Uploading build outputs..."},
		{0, models.SourceSystem, "Production deployment ready."},
		{0, models.SourceSystem, "URL: https://omega-project.vercel.app"},
	},
}
