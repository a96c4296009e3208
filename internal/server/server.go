package server

import (
	"context"
	"crypto/sha256"
	"errors"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/csrf"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/realestate-manager/internal/audit"
	"github.com/BruksfildServices01/realestate-manager/internal/auth"
	"github.com/BruksfildServices01/realestate-manager/internal/config"
	"github.com/BruksfildServices01/realestate-manager/internal/metrics"
	"github.com/BruksfildServices01/realestate-manager/internal/routes"
	"github.com/BruksfildServices01/realestate-manager/internal/web"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	cfg        *config.Config
	handler    http.Handler
	dispatcher *audit.Dispatcher
	revoker    auth.Revoker
}

// New wires the engine, session store and audit worker around db.
func New(cfg *config.Config, db *gorm.DB) (*Server, error) {
	secret, err := auth.ResolveSecret(cfg.SessionSecret)
	if err != nil {
		return nil, err
	}
	if cfg.SessionSecret == "" {
		log.Println("SESSION_SECRET not set, using a random secret; sessions end on restart")
	}

	revoker, err := newRevoker(cfg)
	if err != nil {
		return nil, err
	}

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.SetHTMLTemplate(web.MustTemplates())

	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New()
	}

	dispatcher := audit.NewDispatcher(audit.New(db))

	routes.RegisterRoutes(r, routes.Dependencies{
		DB:      db,
		Config:  cfg,
		Issuer:  auth.NewTokenIssuer(secret, cfg.SessionTTL),
		Revoker: revoker,
		Audit:   dispatcher,
		Metrics: m,
	})

	s := &Server{
		cfg:        cfg,
		handler:    r,
		dispatcher: dispatcher,
		revoker:    revoker,
	}
	if cfg.CSRFEnabled {
		s.handler = protect(cfg, secret, r)
	}
	return s, nil
}

func newRevoker(cfg *config.Config) (auth.Revoker, error) {
	if cfg.RedisURL == "" {
		return auth.NewMemoryRevoker(), nil
	}

	rr, err := auth.NewRedisRevoker(cfg.RedisURL)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rr.Ping(ctx); err != nil {
		_ = rr.Close()
		return nil, err
	}
	log.Println("session revocation backed by redis")
	return rr, nil
}

// protect wraps h with CSRF checks on every unsafe request. Form pages embed
// the token with csrf.TemplateField.
func protect(cfg *config.Config, secret []byte, h http.Handler) http.Handler {
	key := sha256.Sum256(append([]byte("csrf:"), secret...))

	var trusted []string
	for _, o := range cfg.CORSOrigins {
		if u, err := url.Parse(o); err == nil && u.Host != "" {
			trusted = append(trusted, u.Host)
		}
	}

	protected := csrf.Protect(
		key[:],
		csrf.Secure(cfg.CookieSecure),
		csrf.Path("/"),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.FieldName("csrf_token"),
		csrf.TrustedOrigins(trusted),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log.Printf("csrf rejected %s %s: %v", r.Method, r.URL.Path, csrf.FailureReason(r))
			http.Error(w, "Forbidden - CSRF token invalid", http.StatusForbidden)
		})),
	)(h)

	if cfg.CookieSecure {
		return protected
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		protected.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
	})
}

func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server running on %s", s.cfg.Addr())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Println("Gracefully shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// Close flushes pending audit entries and releases the revocation store.
func (s *Server) Close() error {
	s.dispatcher.Close()
	if rr, ok := s.revoker.(*auth.RedisRevoker); ok {
		return rr.Close()
	}
	return nil
}
