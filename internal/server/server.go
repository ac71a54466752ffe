package server

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/KaramelBytes/actionboard-cli/internal/loader"
	"github.com/KaramelBytes/actionboard-cli/internal/report"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

//go:embed templates/*.html
var templateFS embed.FS

// Config holds server settings.
type Config struct {
	// Source is used when a request does not name one.
	Source string
	// TopReasons bounds the reasons chart.
	TopReasons int
}

// Server serves the dashboard page and its JSON API.
type Server struct {
	router    *chi.Mux
	loader    *loader.Loader
	cfg       Config
	templates *template.Template
}

// New builds a Server around a loader.
func New(l *loader.Loader, cfg Config) (*Server, error) {
	funcMap := template.FuncMap{
		"pkr":   report.FormatPKR,
		"count": report.FormatCount,
		"width": func(count, top int) float64 {
			if top <= 0 {
				return 0
			}
			return float64(count) * 100 / float64(top)
		},
	}
	templates, err := template.New("").Funcs(funcMap).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	s := &Server{
		router:    chi.NewRouter(),
		loader:    l,
		cfg:       cfg,
		templates: templates,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s, nil
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
}

func (s *Server) setupRoutes() {
	s.router.Get("/", s.handleIndex)
	s.router.Get("/report", s.handleReport)
	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/summary", s.handleSummary)
		r.Get("/charts", s.handleCharts)
		r.Get("/records", s.handleRecords)
	})
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      2 * time.Minute,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Printf("dashboard listening on http://%s", addr)
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Printf("shutting down dashboard")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// errSourceNotAllowed rejects request-supplied sources that are not remote.
// Local paths are reachable only through the configured source.
var errSourceNotAllowed = errors.New("source must be an http(s) link")

// allowedSource reports whether a request may load source.
func (s *Server) allowedSource(source string) bool {
	source = strings.TrimSpace(source)
	return source == "" || loader.IsRemote(source) || source == strings.TrimSpace(s.cfg.Source)
}

// dashboard loads the requested source and builds the view for the request.
func (s *Server) dashboard(r *http.Request) (*report.Dashboard, error) {
	q := r.URL.Query()
	source := s.cfg.Source
	if q.Has("source") {
		source = q.Get("source")
		if !s.allowedSource(source) {
			return nil, errSourceNotAllowed
		}
	}
	if q.Get("refresh") == "1" {
		s.loader.Invalidate(source)
	}
	res := s.loader.Load(r.Context(), source)
	return report.Build(res, q.Get("q"), s.cfg.TopReasons)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}

// errorStatus maps a dashboard error to its HTTP status.
func errorStatus(err error) int {
	if errors.Is(err, errSourceNotAllowed) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
