package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ghsb/internal/adapters/driving/httpapi"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the JSON HTTP API server.

Endpoints under /api/v1 serve live GitHub data (directory trees, file
contents, issue threads, diffs) and cached repository digests. The
listen address comes from --addr, falling back to api.addr in the
config file, then :8000.

Examples:
  ghsb serve
  ghsb serve --addr :9090`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	application, err := buildApp(ctx)
	if err != nil {
		return err
	}

	server, err := httpapi.NewServer(&httpapi.Services{
		Ingestion: application.ingestion,
		Retrieval: application.retrieval,
		Trees:     application.repo,
		Contents:  application.repo,
		Issues:    application.repo,
		Diffs:     application.repo,
	})
	if err != nil {
		return fmt.Errorf("building server: %w", err)
	}

	if application.watcher != nil {
		go application.watcher.Run(ctx)
	}

	addr := serveAddr
	if addr == "" {
		addr = application.apiAddr
	}

	return server.Run(ctx, addr)
}
