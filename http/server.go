package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/fwojciec/policydoc"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API over the record library.
type Server struct {
	router  chi.Router
	records policydoc.RecordService
	logger  *slog.Logger
	baseURL *url.URL
}

// NewServer creates and configures the HTTP server. baseURL is the page
// share links point at; when nil, links are derived from each request.
func NewServer(records policydoc.RecordService, logger *slog.Logger, baseURL *url.URL) *Server {
	s := &Server{
		records: records,
		logger:  logger,
		baseURL: baseURL,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.logger))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/highlight", s.handleHighlight)

		r.Get("/records", s.handleListRecords)
		r.Get("/records/{name}", s.handleGetRecord)
		r.Get("/records/{name}/sections", s.handleSections)
		r.Get("/records/{name}/export/{format}", s.handleExport)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// sectionLinkBase returns the URL share links are built from.
func (s *Server) sectionLinkBase(r *http.Request) *url.URL {
	if s.baseURL != nil {
		return s.baseURL
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return &url.URL{Scheme: scheme, Host: r.Host, Path: r.URL.Path}
}

// writeError writes err as a JSON error body with the status its code
// maps to. Internal errors are logged; their details never reach the client.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := policydoc.ErrorCode(err)
	status := ErrorStatusCode(code)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
			"err", err,
		)
	}
	writeJSON(w, status, map[string]string{"error": policydoc.ErrorMessage(err)})
}

// codes maps application error codes to HTTP status codes.
var codes = map[string]int{
	policydoc.EINVALID:        http.StatusBadRequest,
	policydoc.ENOTFOUND:       http.StatusNotFound,
	policydoc.ECONFLICT:       http.StatusConflict,
	policydoc.ENOTIMPLEMENTED: http.StatusNotImplemented,
	policydoc.EINTERNAL:       http.StatusInternalServerError,
}

// ErrorStatusCode returns the HTTP status code for an application error code.
func ErrorStatusCode(code string) int {
	if v, ok := codes[code]; ok {
		return v
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
