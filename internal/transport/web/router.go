package web

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/EgorLis/svgicon/internal/transport/web/mw"
	v1 "github.com/EgorLis/svgicon/internal/transport/web/v1"
	"github.com/EgorLis/svgicon/internal/transport/web/v1/attachment"
	"github.com/EgorLis/svgicon/internal/transport/web/v1/fields"
	"github.com/EgorLis/svgicon/internal/transport/web/v1/health"
	"github.com/EgorLis/svgicon/internal/transport/web/v1/icons"
)

type handlers struct {
	health     *health.Handler
	icons      *icons.Handler
	fields     *fields.Handler
	attachment *attachment.Handler
}

func newRouter(h handlers, d Deps, logger *zap.Logger) http.Handler {
	mux := http.NewServeMux()

	// health
	mux.HandleFunc("GET /v1/healthz", h.health.Liveness)
	mux.HandleFunc("GET /v1/readyz", h.health.Readiness)

	// иконки
	mux.HandleFunc("GET /v1/icons", h.icons.List)
	mux.HandleFunc("GET /v1/icons/data.js", h.icons.Script)
	mux.HandleFunc("GET /v1/icons/sprite", h.icons.Sprite)

	// поля
	mux.HandleFunc("GET /v1/fields", h.fields.List)
	mux.HandleFunc("GET /v1/fields/{type}", h.fields.Render)
	mux.HandleFunc("GET /v1/fields/{type}/settings", h.fields.Settings)

	// медиатека (только администратор)
	mux.Handle("POST /v1/attachments", mw.RequireAdmin(d.Tokens, v1.WriteDomainError, limitBody(8<<20, h.attachment.Upload)))
	mux.Handle("DELETE /v1/attachments/{id}", mw.RequireAdmin(d.Tokens, v1.WriteDomainError, http.HandlerFunc(h.attachment.Delete)))

	if d.Uploads != nil {
		mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", d.Uploads))
	}
	if d.Metrics != nil {
		mux.Handle("GET /metrics", d.Metrics)
	}

	// 🔗 middleware
	return mw.WithRequestID(mw.Logging(logger)(mux))
}

func limitBody(n int64, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, n)
		h(w, r)
	}
}
