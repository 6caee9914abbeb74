// Package server is the dashboard shell: it collects uploads and filter
// submissions over HTTP and renders the pipeline's results as tables,
// charts, and downloads.
package server

import (
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Santosestevialima/telemarketing/internal/chart"
	"github.com/Santosestevialima/telemarketing/internal/config"
	"github.com/Santosestevialima/telemarketing/internal/dataset"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// Server wires the filter pipeline to the HTTP dashboard.
type Server struct {
	cfg       *config.Settings
	store     *Store
	cache     *dataset.Cache
	theme     chart.Theme
	tmpl      *template.Template
	maxUpload int64
}

// New builds a server from settings.
func New(cfg *config.Settings) (*Server, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.tmpl")
	if err != nil {
		return nil, err
	}
	return &Server{
		cfg:       cfg,
		store:     NewStore(time.Duration(cfg.SessionTTLMin) * time.Minute),
		cache:     dataset.NewCache(),
		theme:     chart.FromHex(cfg.ChartWidth, cfg.ChartHeight, cfg.ChartPalette),
		tmpl:      tmpl,
		maxUpload: int64(cfg.MaxUploadMB) << 20,
	}, nil
}

// Router returns the dashboard's HTTP handler.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Post("/upload", s.handleUpload)
	r.Route("/session/{id}", func(r chi.Router) {
		r.Get("/", s.handleSession)
		r.Post("/filters", s.handleApply)
		r.Get("/download/{artifact}", s.handleDownload)
		r.Get("/chart.png", s.handleChart)
	})
	return r
}
