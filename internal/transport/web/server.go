package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/EgorLis/svgicon/internal/config"
	"github.com/EgorLis/svgicon/internal/transport/web/v1/attachment"
	"github.com/EgorLis/svgicon/internal/transport/web/v1/fields"
	"github.com/EgorLis/svgicon/internal/transport/web/v1/health"
	"github.com/EgorLis/svgicon/internal/transport/web/v1/icons"
)

type Server struct {
	log    *zap.Logger
	server *http.Server
	cfg    *config.Config
}

func New(logger *zap.Logger, cfg *config.Config, d Deps) *Server {
	srv := &http.Server{
		Addr:              cfg.AppPort,
		Handler:           NewHandler(logger, d),
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		MaxHeaderBytes:    1 << 20,
		ReadHeaderTimeout: 2 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return &Server{server: srv, cfg: cfg, log: logger}
}

// NewHandler собирает обработчики и роутер без запуска сервера
func NewHandler(logger *zap.Logger, d Deps) http.Handler {
	h := handlers{
		health:     &health.Handler{Log: logger.Named("health"), DB: d.DB, Cache: d.Cache, Storage: d.Media},
		icons:      &icons.Handler{Log: logger.Named("icons"), Icons: d.Icons},
		fields:     &fields.Handler{Log: logger.Named("fields"), Fields: d.Fields},
		attachment: &attachment.Handler{Log: logger.Named("attachment"), Media: d.Media, Index: d.Index, Events: d.Icons},
	}
	return newRouter(h, d, logger)
}

func (ws *Server) Run() {
	ws.log.Info("started", zap.String("addr", ws.server.Addr))
	if err := ws.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		ws.log.Fatal("listen failed", zap.Error(err))
	}
}

func (ws *Server) Close(ctx context.Context) {
	if err := ws.server.Shutdown(ctx); err != nil {
		ws.log.Warn("forced to shutdown", zap.Error(err))
	}
	ws.log.Info("exited gracefully")
}
