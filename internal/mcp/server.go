// Package mcp exposes the studio core as MCP tools so other agents can list
// sessions, read virtual files, and drive runs over stdio.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/omegalabs/studio/internal/planner"
	"github.com/omegalabs/studio/internal/runner"
	"github.com/omegalabs/studio/internal/store"
	"github.com/omegalabs/studio/internal/vfs"
)

// Server wraps the studio data layer and run controller as MCP tools.
type Server struct {
	store   store.Store
	planner *planner.Planner
	runner  *runner.Runner
}

// NewServer creates the MCP server wrapper with all required dependencies.
func NewServer(s store.Store, p *planner.Planner, r *runner.Runner) *Server {
	return &Server{store: s, planner: p, runner: r}
}

// MCPServer returns a configured mcp-go server with all tools registered.
func (s *Server) MCPServer() *server.MCPServer {
	srv := server.NewMCPServer("studio", "1.0.0", server.WithToolCapabilities(true))

	srv.AddTool(s.listSessionsTool())
	srv.AddTool(s.readFileTool())
	srv.AddTool(s.planTool())
	srv.AddTool(s.runTool())

	return srv
}

// ServeStdio starts the stdio transport, blocking until ctx is cancelled.
func (s *Server) ServeStdio(ctx context.Context) error {
	srv := s.MCPServer()
	stdioServer := server.NewStdioServer(srv)
	return stdioServer.Listen(ctx, os.Stdin, os.Stdout)
}

// ---------------------------------------------------------------------------
// Tool definitions and handlers
// ---------------------------------------------------------------------------

// studio_list_sessions
func (s *Server) listSessionsTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("studio_list_sessions",
		mcp.WithDescription("List recent studio sessions. Returns a JSON array with id, name, template, and last modified time."),
	)
	return tool, s.handleListSessions
}

func (s *Server) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	recent, err := s.store.ListRecent(ctx, 0)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list sessions: %v", err)), nil
	}
	data, err := json.Marshal(recent)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal sessions: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// studio_read_file
func (s *Server) readFileTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("studio_read_file",
		mcp.WithDescription("Read one virtual file from a session. Returns the file record including content."),
		mcp.WithString("session", mcp.Required(), mcp.Description("Session id")),
		mcp.WithString("file", mcp.Required(), mcp.Description("File id")),
	)
	return tool, s.handleReadFile
}

func (s *Server) handleReadFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: session"), nil
	}
	fileID, err := request.RequireString("file")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: file"), nil
	}

	sess, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("session not found: %s", sessionID)), nil
	}
	f := vfs.Find(sess.Files, fileID)
	if f == nil {
		return mcp.NewToolResultError(fmt.Sprintf("file not found: %s", fileID)), nil
	}

	data, err := json.Marshal(f)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal file: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// studio_plan
func (s *Server) planTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("studio_plan",
		mcp.WithDescription("Derive the agent task list for a goal without executing it. Always returns at least one task."),
		mcp.WithString("goal", mcp.Required(), mcp.Description("Natural-language project goal")),
	)
	return tool, s.handlePlan
}

func (s *Server) handlePlan(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	goal, err := request.RequireString("goal")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: goal"), nil
	}

	tasks := s.planner.Plan(ctx, goal)
	data, err := json.Marshal(tasks)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal tasks: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// studio_run
func (s *Server) runTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("studio_run",
		mcp.WithDescription("Run the full agent pipeline for a goal against a session: plan, execute each task, and apply generated code. The run completes even when individual tasks fail."),
		mcp.WithString("session", mcp.Required(), mcp.Description("Session id")),
		mcp.WithString("goal", mcp.Required(), mcp.Description("Natural-language project goal")),
	)
	return tool, s.handleRun
}

func (s *Server) handleRun(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: session"), nil
	}
	goal, err := request.RequireString("goal")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: goal"), nil
	}

	sess, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("session not found: %s", sessionID)), nil
	}

	report, err := s.runner.Run(ctx, sess, goal)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("run rejected: %v", err)), nil
	}

	// Best-effort persistence; the run result is reported either way.
	_ = s.store.SaveSession(ctx, sess)

	result := map[string]any{
		"tasks":     report.Tasks,
		"completed": report.Completed,
		"failed":    report.Failed,
	}
	if f := sess.ActiveFile(); f != nil {
		result["activeFile"] = map[string]string{"id": f.ID, "name": f.Name}
	}
	data, err := json.Marshal(result)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
