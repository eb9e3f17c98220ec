package cmd

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/omegalabs/studio/internal/agent"
	"github.com/omegalabs/studio/internal/api"
	"github.com/omegalabs/studio/internal/planner"
	"github.com/omegalabs/studio/internal/runner"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server exposing sessions, files, logs, and runs as a
REST API under /api/v1. By default it listens on port 8080.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveRun()
	},
}

func init() {
	serveCmd.Flags().IntP("port", "p", 8080, "port to listen on")
	_ = viper.BindPFlag("api.port", serveCmd.Flags().Lookup("port"))
	rootCmd.AddCommand(serveCmd)
}

func serveRun() error {
	s, err := getStore()
	if err != nil {
		return err
	}

	gen := newGenerator()
	if gen == nil {
		return fmt.Errorf("no API key configured (set anthropic.api_key or ANTHROPIC_API_KEY)")
	}
	r := runner.New(planner.New(gen), agent.New(gen, viper.GetInt("agent.context_limit")))

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	srv := api.NewServer(s, r, log)

	addr := fmt.Sprintf(":%d", viper.GetInt("api.port"))
	ui.Info("Serving API at http://localhost%s/api/v1", addr)
	return http.ListenAndServe(addr, srv.Router())
}
