package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/custodia-labs/ghsb/internal/core/ports/driving"
	"github.com/custodia-labs/ghsb/internal/logger"
)

// Services bundles the driving ports the API serves.
type Services struct {
	Ingestion driving.IngestionService
	Retrieval driving.RetrievalService
	Trees     driving.TreeService
	Contents  driving.ContentsService
	Issues    driving.IssueService
	Diffs     driving.DiffService
}

// Validate checks that every required service is present.
func (s *Services) Validate() error {
	switch {
	case s.Ingestion == nil:
		return fmt.Errorf("ingestion service is required")
	case s.Retrieval == nil:
		return fmt.Errorf("retrieval service is required")
	case s.Trees == nil:
		return fmt.Errorf("tree service is required")
	case s.Contents == nil:
		return fmt.Errorf("contents service is required")
	case s.Issues == nil:
		return fmt.Errorf("issue service is required")
	case s.Diffs == nil:
		return fmt.Errorf("diff service is required")
	}
	return nil
}

// Server is the HTTP API server.
type Server struct {
	services *Services
	handler  http.Handler
}

// NewServer creates the API server and wires its routes.
func NewServer(services *Services) (*Server, error) {
	if err := services.Validate(); err != nil {
		return nil, fmt.Errorf("validating services: %w", err)
	}

	s := &Server{services: services}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("POST /api/v1/process", s.handleProcess)
	mux.HandleFunc("GET /api/v1/directory-tree/{owner}/{repo}", s.handleDirectoryTree)
	mux.HandleFunc("GET /api/v1/contents/{owner}/{repo}", s.handleContents)
	mux.HandleFunc("GET /api/v1/issue-context/{owner}/{repo}/{number}", s.handleIssueContext)
	mux.HandleFunc("GET /api/v1/diff/{owner}/{repo}", s.handleDiff)
	mux.HandleFunc("GET /api/v1/dir-tree", s.handleDigestTree)
	mux.HandleFunc("GET /api/v1/get-file", s.handleDigestFile)

	s.handler = withRequestID(withRequestLogging(mux))
	return s, nil
}

// Handler returns the server's root handler. Exposed for tests.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves the API on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown when context is cancelled
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	logger.Info("http: listening on %s", addr)
	err := httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
