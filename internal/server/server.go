// Package server is the HTTP shell of the demo application: routing,
// layout, session handling and static assets.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/goerr/v2"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formgrid/internal/logging"
	"github.com/goliatone/go-formgrid/internal/pages"
	"github.com/goliatone/go-formgrid/internal/session"
	"github.com/goliatone/go-formgrid/pkg/render"
	"github.com/goliatone/go-formgrid/pkg/renderers/vanilla"
)

const (
	assetsPrefix = "/assets/"
	csrfField    = "_csrf"
)

// State is the per-session page state.
type State struct {
	Login pages.LoginState
	Users []pages.User
}

// NewState seeds the state of a new session.
func NewState() *State {
	return &State{Users: pages.SeedUsers()}
}

type Server struct {
	router   *chi.Mux
	views    *pages.Views
	sessions *session.Store[State]
	auth     pages.Authenticator
	login    *pages.Login
	formDemo *pages.FormDemo
	theme    *theme.RendererConfig
	forms    render.Renderer
	logger   *slog.Logger
}

type Options func(*Server)

// WithAuthenticator replaces the login authenticator.
func WithAuthenticator(auth pages.Authenticator) Options {
	return func(s *Server) {
		s.auth = auth
	}
}

// WithLogger sets the logger for access logs and page events.
func WithLogger(logger *slog.Logger) Options {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithTheme replaces DefaultTheme.
func WithTheme(cfg *theme.RendererConfig) Options {
	return func(s *Server) {
		s.theme = cfg
	}
}

// WithFormRenderer replaces the vanilla form renderer.
func WithFormRenderer(r render.Renderer) Options {
	return func(s *Server) {
		s.forms = r
	}
}

// WithSessionStore replaces the in-memory session store.
func WithSessionStore(store *session.Store[State]) Options {
	return func(s *Server) {
		s.sessions = store
	}
}

func New(opts ...Options) (*Server, error) {
	s := &Server{}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.Default()
	}
	if s.theme == nil {
		s.theme = DefaultTheme()
	}
	if s.sessions == nil {
		s.sessions = session.New(NewState)
	}
	if s.auth == nil {
		return nil, goerr.New("authenticator is required")
	}

	views, err := pages.NewViews(pages.WithTheme(s.theme), pages.WithFormRenderer(s.forms))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build page views")
	}
	s.views = views
	s.login = pages.NewLogin(s.auth)
	s.formDemo = pages.NewFormDemo(s.logger)
	s.logger.Debug("theme loaded", "theme", s.theme.Theme, "variant", s.theme.Variant, "tokens", tokenNames(s.theme))

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", healthzHandler)
	r.Handle(assetsPrefix+"*", http.StripPrefix(assetsPrefix, http.FileServer(http.FS(vanilla.AssetsFS()))))

	r.Group(func(r chi.Router) {
		r.Use(s.csrfGuard)
		r.Get(pages.PathHome, s.homeHandler)
		r.Get(pages.PathFormDemo, s.formDemoHandler)
		r.Post(pages.PathFormDemo, s.formDemoSubmitHandler)
		r.Get(pages.PathLogin, s.loginHandler)
		r.Post(pages.PathLogin, s.loginSubmitHandler)
		r.Get(pages.PathDataGrid, s.dataGridHandler)
		r.Post(pages.PathDataGrid+"/{action}", s.dataGridActionHandler)
	})
	r.NotFound(s.notFoundHandler)

	s.router = r
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then drains
// in-flight requests for up to grace.
func (s *Server) ListenAndServe(ctx context.Context, addr string, grace time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting HTTP server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- goerr.Wrap(err, "failed to start server", goerr.V("addr", addr))
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("Shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return goerr.Wrap(err, "failed to shutdown server")
		}
		return nil
	}
}

// accessLogger is a middleware that logs HTTP requests
func (s *Server) accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			s.logger.Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
