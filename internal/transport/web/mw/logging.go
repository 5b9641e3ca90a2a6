package mw

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Logging — middleware: статус, размер, длительность запроса
func Logging(l *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			mw := &metaWriter{ResponseWriter: w}

			next.ServeHTTP(mw, r)

			l.Info("request",
				zap.String("req_id", RequestIDFromCtx(r.Context())),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", mw.status),
				zap.Int("size", mw.size),
				zap.Int64("duration_ms", time.Since(start).Milliseconds()),
			)
		})
	}
}
