// cmd/server/main.go
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/codealign/repo-align/internal/analyzer"
	"github.com/codealign/repo-align/internal/config"
	"github.com/codealign/repo-align/internal/github"
	"github.com/codealign/repo-align/internal/llm"
	"github.com/codealign/repo-align/internal/server"
)

func main() {
	root := &cobra.Command{
		Use:   "repo-align",
		Short: "Grade a GitHub repository against a project requirement",
	}
	root.AddCommand(serveCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	var host, port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the analysis HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if host != "" {
				cfg.Server.Host = host
			}
			if port != "" {
				cfg.Server.Port = port
			}

			ghClient, err := github.NewClient(&cfg.GitHub)
			if err != nil {
				return fmt.Errorf("failed to create GitHub client: %w", err)
			}
			fetcher := github.NewFetcher(ghClient, cfg.GitHub.MaxSourceBytes)

			provider, err := llm.NewOpenAI(&cfg.OpenAI)
			if err != nil {
				return fmt.Errorf("failed to create LLM provider: %w", err)
			}

			a := analyzer.New(fetcher, provider)

			srv := server.New(cfg.Server, a)
			slog.Info("starting server", "host", cfg.Server.Host, "port", cfg.Server.Port)
			return srv.Run()
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "bind address (overrides SERVER_HOST)")
	cmd.Flags().StringVar(&port, "port", "", "listen port (overrides SERVER_PORT)")
	return cmd
}
