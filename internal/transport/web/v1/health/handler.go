package health

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/EgorLis/svgicon/internal/domain"
	"github.com/EgorLis/svgicon/internal/transport/web/logx"
	"github.com/EgorLis/svgicon/internal/transport/web/mw"
	v1 "github.com/EgorLis/svgicon/internal/transport/web/v1"
)

type Pinger interface {
	Ping(context.Context) error
}

type Handler struct {
	Log     *zap.Logger
	DB      Pinger
	Cache   Pinger
	Storage Pinger
}

// Liveness — жив ли процесс (не зависит от БД/кэша)
func (h *Handler) Liveness(w http.ResponseWriter, r *http.Request) {
	v1.WriteOKData(w, r, "ok")
}

// Readiness — готовность: пинг БД, кеша и хранилища медиатеки
func (h *Handler) Readiness(w http.ResponseWriter, r *http.Request) {
	const op = "health.readiness"
	reqID := mw.RequestIDFromCtx(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := []struct {
		name string
		p    Pinger
	}{
		{"db", h.DB},
		{"cache", h.Cache},
		{"storage", h.Storage},
	}
	for _, c := range checks {
		if c.p == nil {
			continue
		}
		if err := c.p.Ping(ctx); err != nil {
			logx.Error(h.Log, reqID, op, c.name+" ping failed", err)
			v1.WriteDomainError(w, r, domain.ErrUnexpected)
			return
		}
	}

	v1.WriteOKData(w, r, "ready")
}
