// Package chi is the HTTP transport: versioned read-only routes over
// the library service, with the `{"detail": ...}` error convention of
// the document API.
package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/quorail/docshelf/internal/domain"
	healthuc "github.com/quorail/docshelf/internal/usecase/health"
	libraryuc "github.com/quorail/docshelf/internal/usecase/library"
	"github.com/quorail/docshelf/internal/version"
)

// Server serves the document retrieval API.
type Server struct {
	library   *libraryuc.Service
	health    *healthuc.Service
	logger    *zap.Logger
	extension string // document file suffix, used in 404 messages
	docsURL   string // redirect target of GET /v1
}

// NewServer creates an HTTP API server.
func NewServer(
	library *libraryuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
	extension, docsURL string,
) *Server {
	return &Server{
		library:   library,
		health:    health,
		logger:    logger,
		extension: extension,
		docsURL:   docsURL,
	}
}

// Register mounts all routes on the router. Static segments (documents,
// sections, metadata, document_control) win over the wildcard section
// route, mirroring the original API's route precedence.
func (s *Server) Register(r chi.Router) {
	r.Get("/v1", s.apiInfo)
	r.Get("/v1/", s.listDocuments)
	r.Get("/v1/documents", s.listDocuments)
	r.Get("/v1/{document}", s.getDocument)
	r.Get("/v1/{document}/sections", s.getSections)
	r.Get("/v1/{document}/metadata", s.getMetadata)
	r.Get("/v1/{document}/document_control", s.getDocumentControl)
	r.Get("/v1/{document}/{section}", s.getSection)

	r.Get("/docs", s.docsIndex)
	r.Get("/health", s.healthCheck)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
}

// apiInfo handles GET /v1: send the caller to the documentation page.
func (s *Server) apiInfo(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, s.docsURL, http.StatusTemporaryRedirect)
}

// listDocuments handles GET /v1/documents.
func (s *Server) listDocuments(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.library.List(r.Context()))
}

// getDocument handles GET /v1/{document}.
func (s *Server) getDocument(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "document")

	doc, err := s.library.Get(r.Context(), name)
	if err != nil {
		s.handleDomainError(w, err, name, "")
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// getSections handles GET /v1/{document}/sections.
func (s *Server) getSections(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "document")

	sections, err := s.library.Sections(r.Context(), name)
	if err != nil {
		s.handleDomainError(w, err, name, "")
		return
	}
	writeJSON(w, http.StatusOK, sections)
}

// getMetadata handles GET /v1/{document}/metadata.
func (s *Server) getMetadata(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "document")

	m, err := s.library.Metadata(r.Context(), name)
	if err != nil {
		s.handleDomainError(w, err, name, "")
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// getDocumentControl handles GET /v1/{document}/document_control.
func (s *Server) getDocumentControl(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "document")

	dc, err := s.library.DocumentControl(r.Context(), name)
	if err != nil {
		s.handleDomainError(w, err, name, "")
		return
	}
	writeJSON(w, http.StatusOK, dc)
}

// getSection handles GET /v1/{document}/{section}.
func (s *Server) getSection(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "document")
	section := chi.URLParam(r, "section")

	v, err := s.library.Section(r.Context(), name, section)
	if err != nil {
		s.handleDomainError(w, err, name, section)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// healthCheck handles GET /health.
func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check()

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status":    report.Status,
		"documents": report.Documents,
		"skipped":   report.Skipped,
	})
}

// docsIndex handles GET /docs with a static endpoint index.
func (s *Server) docsIndex(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"service": "docshelf",
		"version": version.Version,
		"endpoints": []string{
			"GET /v1/documents",
			"GET /v1/{document}",
			"GET /v1/{document}/sections",
			"GET /v1/{document}/metadata",
			"GET /v1/{document}/document_control",
			"GET /v1/{document}/{section}",
			"GET /health",
			"GET /metrics",
		},
	})
}

// handleDomainError maps sentinel errors to 404 responses whose messages
// follow the original API wording. Anything unrecognized is a 500.
func (s *Server) handleDomainError(w http.ResponseWriter, err error, name, section string) {
	var mfe *domain.MissingFieldError

	switch {
	case errors.Is(err, domain.ErrSectionNotFound):
		writeError(w, http.StatusNotFound,
			fmt.Sprintf("Section '%s' doesn't exist in %s%s", section, name, s.extension))

	case errors.As(err, &mfe):
		writeError(w, http.StatusNotFound,
			fmt.Sprintf("Document %s%s is missing field '%s'", name, s.extension, mfe.Field))

	case errors.Is(err, domain.ErrDocumentNotFound), errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound,
			fmt.Sprintf("Document %s%s not found", name, s.extension))

	default:
		s.logger.Error("internal error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError renders the `{"detail": "..."}` error body.
func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
