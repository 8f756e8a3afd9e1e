package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/custodia-labs/ghsb/internal/core/domain"
	"github.com/custodia-labs/ghsb/internal/logger"
)

// processRequest is the body of POST /api/v1/process.
type processRequest struct {
	RepoURL string `json:"repo_url"`
}

// processResponse reports one ingestion outcome.
type processResponse struct {
	Message    string `json:"message"`
	OutputPath string `json:"output_path,omitempty"`
}

func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	var req processRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.RepoURL == "" {
		writeError(w, http.StatusBadRequest, "repo_url is required")
		return
	}

	result := s.services.Ingestion.Ingest(r.Context(), req.RepoURL)

	status := http.StatusCreated
	switch {
	case result.OK:
		// fresh ingestion
	case result.OutputPath != "":
		// already processed
		status = http.StatusOK
	default:
		status = http.StatusInternalServerError
		if isValidationMessage(result.Message) {
			status = http.StatusBadRequest
		}
	}
	writeJSON(w, status, processResponse{Message: result.Message, OutputPath: result.OutputPath})
}

// isValidationMessage distinguishes bad input from ingestion failures in
// a result message, since Ingest reports both the same way.
func isValidationMessage(message string) bool {
	return strings.HasPrefix(message, "Invalid")
}

// treeResponse wraps a rendered directory tree.
type treeResponse struct {
	Message       string `json:"message"`
	DirectoryTree string `json:"directory_tree"`
}

func (s *Server) handleDirectoryTree(w http.ResponseWriter, r *http.Request) {
	owner := r.PathValue("owner")
	repo := r.PathValue("repo")
	ref := r.URL.Query().Get("ref")

	maxDepth, err := parseDepth(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	tree, err := s.services.Trees.DirectoryTree(r.Context(), owner, repo, ref, maxDepth)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, treeResponse{Message: "Success", DirectoryTree: tree})
}

// parseDepth reads the depth / full_depth query parameters. full_depth
// wins and means unlimited (nil).
func parseDepth(r *http.Request) (*int, error) {
	query := r.URL.Query()
	if query.Get("full_depth") == "true" {
		return nil, nil
	}

	raw := query.Get("depth")
	if raw == "" {
		return nil, nil
	}

	depth, err := strconv.Atoi(raw)
	if err != nil {
		return nil, errors.New("depth must be an integer")
	}
	return &depth, nil
}

// contentsResponse wraps file text or a rendered directory listing.
type contentsResponse struct {
	Message  string `json:"message"`
	Contents string `json:"contents"`
}

func (s *Server) handleContents(w http.ResponseWriter, r *http.Request) {
	owner := r.PathValue("owner")
	repo := r.PathValue("repo")
	path := r.URL.Query().Get("path")
	ref := r.URL.Query().Get("ref")

	contents, err := s.services.Contents.Contents(r.Context(), owner, repo, path, ref)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contentsResponse{Message: "Success", Contents: contents})
}

func (s *Server) handleIssueContext(w http.ResponseWriter, r *http.Request) {
	owner := r.PathValue("owner")
	repo := r.PathValue("repo")

	number, err := strconv.Atoi(r.PathValue("number"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "issue number must be an integer")
		return
	}

	issue, err := s.services.Issues.IssueContext(r.Context(), owner, repo, number)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, issue)
}

func (s *Server) handleDiff(w http.ResponseWriter, r *http.Request) {
	owner := r.PathValue("owner")
	repo := r.PathValue("repo")
	query := r.URL.Query()

	spec := domain.DiffSpec{
		BaseRef: query.Get("base_ref"),
		HeadRef: query.Get("head_ref"),
	}
	if raw := query.Get("pr_number"); raw != "" {
		number, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "pr_number must be an integer")
			return
		}
		spec.PRNumber = number
	}

	diff, err := s.services.Diffs.Diff(r.Context(), owner, repo, spec)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, diff)
}

// digestResponse wraps content served from a processed digest.
type digestResponse struct {
	Message string `json:"message"`
	Content string `json:"content,omitempty"`
}

const msgBeingProcessed = "Repository is being processed. Try again shortly."

func (s *Server) handleDigestTree(w http.ResponseWriter, r *http.Request) {
	repoURL := r.URL.Query().Get("repo_url")
	if repoURL == "" {
		writeError(w, http.StatusBadRequest, "repo_url is required")
		return
	}

	tree, err := s.services.Retrieval.DirectoryTree(repoURL)
	if err != nil {
		if errors.Is(err, domain.ErrNotProcessed) {
			s.ingestInBackground(repoURL)
			writeJSON(w, http.StatusAccepted, digestResponse{Message: msgBeingProcessed})
			return
		}
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, digestResponse{Message: "Success", Content: tree})
}

func (s *Server) handleDigestFile(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	repoURL := query.Get("repo_url")
	filePath := query.Get("file_path")
	if repoURL == "" || filePath == "" {
		writeError(w, http.StatusBadRequest, "repo_url and file_path are required")
		return
	}

	content, err := s.services.Retrieval.FileContent(repoURL, filePath)
	if err != nil {
		if errors.Is(err, domain.ErrNotProcessed) {
			s.ingestInBackground(repoURL)
			writeJSON(w, http.StatusAccepted, digestResponse{Message: msgBeingProcessed})
			return
		}
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, digestResponse{Message: "Success", Content: content})
}

// ingestInBackground kicks off ingestion detached from the request so
// the 202 response does not hold the connection open for a clone.
func (s *Server) ingestInBackground(repoURL string) {
	go func() {
		result := s.services.Ingestion.Ingest(context.Background(), repoURL)
		logger.Info("background ingest %s: %s", repoURL, result.Message)
	}()
}
