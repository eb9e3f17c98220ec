package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/omegalabs/studio/internal/agent"
	"github.com/omegalabs/studio/internal/mcp"
	"github.com/omegalabs/studio/internal/planner"
	"github.com/omegalabs/studio/internal/runner"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP stdio server for agent integration",
	Long: `Start an MCP (Model Context Protocol) server on stdio.

This lets MCP clients query studio sessions and drive runs natively.
Configure in your client with:

  {
    "mcpServers": {
      "studio": { "command": "studio", "args": ["mcp"] }
    }
  }

Available tools: studio_list_sessions, studio_read_file, studio_plan,
studio_run`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return mcpRun(cmd)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func mcpRun(cmd *cobra.Command) error {
	s, err := getStore()
	if err != nil {
		return err
	}

	gen := newGenerator()
	if gen == nil {
		return fmt.Errorf("no API key configured (set anthropic.api_key or ANTHROPIC_API_KEY)")
	}

	p := planner.New(gen)
	r := runner.New(p, agent.New(gen, viper.GetInt("agent.context_limit")))

	srv := mcp.NewServer(s, p, r)
	return srv.ServeStdio(cmd.Context())
}
