package server

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"

	"github.com/alnah/go-howto"
	"github.com/alnah/go-howto/internal/assets"
)

// Exporter renders form state. *howto.Generator satisfies it.
type Exporter interface {
	Preview(state howto.FormState) string
	Export(ctx context.Context, input howto.ExportInput) (*howto.ExportResult, error)
}

// Compile-time interface check.
var _ Exporter = (*howto.Generator)(nil)

// Default limits.
const (
	DefaultMaxBodyBytes = 1 << 20
	rateWindow          = time.Minute
)

// contentSecurityPolicy allows no scripts. Images may come from anywhere
// because illustration URLs are arbitrary.
const contentSecurityPolicy = "default-src 'none'; img-src * data:; style-src 'unsafe-inline'; " +
	"frame-src 'self'; form-action 'self'; frame-ancestors 'self'; base-uri 'none'"

// Config configures the handler.
type Config struct {
	Labels       howto.Labels        // form and page labels (zero = English)
	Page         *howto.PageSettings // PDF page settings (nil = defaults)
	PDF          bool                // offer PDF downloads
	RateLimit    int                 // requests per minute per IP, 0 = unlimited
	MaxBodyBytes int64               // form body cap, 0 = DefaultMaxBodyBytes
	PDFCacheTTL  time.Duration       // reuse PDF downloads this long, 0 = no cache
	LogOutput    io.Writer           // request log destination, nil = no request log
	Templates    assets.AssetLoader  // form template source, nil = embedded
}

// Server holds the routes and shared state of the editor.
type Server struct {
	router  chi.Router
	exp     Exporter
	tmpl    *template.Template
	cfg     Config
	labels  howto.Labels
	maxBody int64
	pdfs    *pdfCache
	logger  *log.Logger
}

// New builds the editor handler around exp.
func New(exp Exporter, cfg Config) (*Server, error) {
	if exp == nil {
		return nil, ErrNilExporter
	}

	loader := cfg.Templates
	if loader == nil {
		loader = assets.NewEmbeddedLoader()
	}
	src, err := loader.LoadTemplate(assets.FormTemplateName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateLoad, err)
	}
	tmpl, err := template.New(assets.FormTemplateName).Parse(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateLoad, err)
	}

	s := &Server{
		router:  chi.NewRouter(),
		exp:     exp,
		tmpl:    tmpl,
		cfg:     cfg,
		labels:  cfg.Labels,
		maxBody: cfg.MaxBodyBytes,
		pdfs:    newPDFCache(cfg.PDFCacheTTL),
		logger:  log.New(io.Discard, "", 0),
	}
	if cfg.LogOutput != nil {
		s.logger = log.New(cfg.LogOutput, "", log.LstdFlags)
	}
	if s.labels == (howto.Labels{}) {
		s.labels = howto.LabelsEN
	}
	if s.maxBody <= 0 {
		s.maxBody = DefaultMaxBodyBytes
	}
	s.setupRoutes()
	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := s.router

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	if s.cfg.LogOutput != nil {
		r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{
			Logger:  s.logger,
			NoColor: true,
		}))
	}
	r.Use(middleware.Recoverer)
	r.Use(middleware.SetHeader("Content-Security-Policy", contentSecurityPolicy))
	r.Use(middleware.SetHeader("X-Content-Type-Options", "nosniff"))
	r.Use(middleware.SetHeader("X-Frame-Options", "SAMEORIGIN"))
	r.Use(middleware.SetHeader("Referrer-Policy", "no-referrer"))
	if s.cfg.RateLimit > 0 {
		r.Use(httprate.LimitByIP(s.cfg.RateLimit, rateWindow))
	}

	r.Get("/healthz", s.handleHealth)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequestSize(s.maxBody))
		r.Get("/", s.handleForm)
		r.Post("/", s.handleEdit)
		r.Post("/preview", s.handlePreview)
		r.Post("/download", s.handleDownload)
	})
}

// shutdownTimeout bounds the graceful shutdown after ctx is canceled.
const shutdownTimeout = 5 * time.Second

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully. ready, when non-nil, receives the bound address once the
// listener is open.
func (s *Server) ListenAndServe(ctx context.Context, addr string, ready func(net.Addr)) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}

	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()
	if ready != nil {
		ready(ln.Addr())
	}

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}
