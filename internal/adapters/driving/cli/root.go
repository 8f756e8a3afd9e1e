// Package cli implements the ghsb command line interface.
package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	configfile "github.com/custodia-labs/ghsb/internal/adapters/driven/config/file"
	"github.com/custodia-labs/ghsb/internal/adapters/driven/ingest"
	storagefile "github.com/custodia-labs/ghsb/internal/adapters/driven/storage/file"
	"github.com/custodia-labs/ghsb/internal/connectors/github"
	"github.com/custodia-labs/ghsb/internal/core/ports/driven"
	"github.com/custodia-labs/ghsb/internal/core/ports/driving"
	"github.com/custodia-labs/ghsb/internal/core/services"
	"github.com/custodia-labs/ghsb/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// envToken overrides the configured GitHub token when set.
const envToken = "GITHUB_PERSONAL_ACCESS_TOKEN"

// Configuration defaults.
const (
	defaultDataDir       = "data"
	defaultIngestCommand = "gitingest"
	defaultIngestTimeout = 600 // seconds
	defaultAPIAddr       = ":8000"
)

var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "ghsb",
	Short: "GitHub repository context server",
	Long: `ghsb serves GitHub repository data to AI assistants and scripts:
directory trees, file contents, issue threads and diffs over an HTTP API
or the Model Context Protocol, plus cached full-repository digests
produced by an external ingestion tool.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// app bundles everything the commands need.
type app struct {
	config    driven.ConfigStore
	ingestion driving.IngestionService
	retrieval driving.RetrievalService
	repo      *services.Repo
	watcher   *storagefile.Watcher
	apiAddr   string
}

// buildApp constructs the full service graph from configuration.
func buildApp(ctx context.Context) (*app, error) {
	config, err := configfile.NewConfigStore("")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	token := os.Getenv(envToken)
	if token == "" {
		token = config.GetString("github.token")
	}

	dataDir := config.GetString("data.dir")
	if dataDir == "" {
		dataDir = defaultDataDir
	}

	command := config.GetString("ingest.command")
	if command == "" {
		command = defaultIngestCommand
	}

	timeoutSeconds := config.GetInt("ingest.timeout_seconds")
	if timeoutSeconds <= 0 {
		timeoutSeconds = defaultIngestTimeout
	}

	apiAddr := config.GetString("api.addr")
	if apiAddr == "" {
		apiAddr = defaultAPIAddr
	}

	processed := storagefile.NewProcessedStore(dataDir)
	digests := storagefile.NewDigestStore(dataDir)
	runner := ingest.NewRunner(command, time.Duration(timeoutSeconds)*time.Second)

	gateway := github.NewGateway(github.NewClient(ctx, token))

	ingestion := services.NewIngestion(processed, digests, runner)
	retrieval := services.NewRetrieval(processed, digests, ingestion)
	repo := services.NewRepo(gateway)

	if err := digests.EnsureDir(); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	watcher, err := storagefile.NewWatcher(dataDir, processed)
	if err != nil {
		// The watcher is advisory only; run without it.
		logger.Warn("data dir watcher unavailable: %v", err)
		watcher = nil
	}

	return &app{
		config:    config,
		ingestion: ingestion,
		retrieval: retrieval,
		repo:      repo,
		watcher:   watcher,
		apiAddr:   apiAddr,
	}, nil
}
