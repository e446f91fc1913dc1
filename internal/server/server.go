package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ppiankov/verdict/internal/model"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// AnalyzePath is the single classification endpoint
const AnalyzePath = "/analyze-news"

// allowedHeaders are the request headers browsers may send cross-origin
var allowedHeaders = []string{
	"authorization",
	"x-client-info",
	"apikey",
	"content-type",
	"x-supabase-client-platform",
	"x-supabase-client-platform-version",
	"x-supabase-client-runtime",
	"x-supabase-client-runtime-version",
	"x-request-id",
}

// Analyzer is the classification pipeline as seen by the HTTP layer
type Analyzer interface {
	Analyze(ctx context.Context, raw interface{}) (*model.ClassificationResult, error)
	ClassifierName() string
}

// Server exposes an Analyzer over HTTP
type Server struct {
	engine *gin.Engine
	config model.ServerConfig
	logger *zap.Logger
}

// New builds the gin engine with middleware and routes attached
func New(config model.ServerConfig, analyzer Analyzer, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(requestID())
	r.Use(accessLog(logger))
	r.Use(recovery(logger))
	r.Use(cors.New(cors.Config{
		AllowAllOrigins:           true,
		AllowMethods:              []string{http.MethodPost, http.MethodOptions},
		AllowHeaders:              allowedHeaders,
		ExposeHeaders:             []string{requestIDHeader},
		MaxAge:                    12 * time.Hour,
		OptionsResponseStatusCode: http.StatusOK,
	}))

	h := &handlers{analyzer: analyzer, logger: logger}

	r.POST(AnalyzePath, limitBody(config.MaxBodyBytes), h.analyze)
	r.OPTIONS(AnalyzePath, h.preflight)
	r.GET("/healthz", h.health)

	return &Server{
		engine: r,
		config: config,
		logger: logger,
	}
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	httpSrv := &http.Server{
		Addr:         s.config.Addr,
		Handler:      s.engine,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("listening", zap.String("addr", s.config.Addr))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownTimeout := s.config.ShutdownTimeout
		if shutdownTimeout <= 0 {
			shutdownTimeout = 10 * time.Second
		}
		shutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		s.logger.Info("shutting down", zap.Duration("timeout", shutdownTimeout))
		if err := httpSrv.Shutdown(shutCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}
