// Package httpapi serves the classifier over HTTP with gin.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/opclass/internal/coach"
	"github.com/abhisek/opclass/internal/logger"
	"github.com/abhisek/opclass/internal/service"
)

const shutdownTimeout = 10 * time.Second

type Config struct {
	Addr        string
	CORSOrigins []string
	ServiceName string // span service name
}

// Server owns the gin engine and the listening http.Server.
type Server struct {
	cfg    Config
	log    *logger.Logger
	engine *gin.Engine
}

// New wires the routes. coach may be nil; /api/explain then answers 503.
func New(cfg Config, svc *service.Service, co *coach.Coach, log *logger.Logger) *Server {
	if log == nil {
		log = logger.Nop()
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "opclass"
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(otelgin.Middleware(cfg.ServiceName))
	engine.Use(RequestID())
	engine.Use(RequestLogger(log))
	if len(cfg.CORSOrigins) > 0 {
		engine.Use(CORS(cfg.CORSOrigins))
	}

	h := &handlers{svc: svc, coach: co}
	engine.GET("/healthcheck", healthCheck)
	api := engine.Group("/api")
	{
		api.POST("/parse", h.parse)
		api.POST("/classify", h.classify)
		api.POST("/explain", h.explain)
		api.GET("/concepts", listConcepts)
		api.GET("/concepts/:id", getConcept)
	}

	return &Server{cfg: cfg, log: log, engine: engine}
}

// Handler exposes the engine for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.log.Info("http server listening", "addr", s.cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen %s: %w", s.cfg.Addr, err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.log.Info("http server shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
