package mw

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/EgorLis/svgicon/internal/domain"
)

// DenyFunc пишет ответ на отклонённый запрос (конверт ошибки API).
type DenyFunc func(w http.ResponseWriter, r *http.Request, err error)

// RequireAdmin пропускает только запросы с валидным токеном администратора.
func RequireAdmin(tokens domain.TokenManager, deny DenyFunc, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := extractBearer(r.Header.Get("Authorization"))
		if raw == "" {
			deny(w, r, fmt.Errorf("missing bearer token: %w", domain.ErrUnauth))
			return
		}
		claims, err := tokens.Parse(r.Context(), domain.Token(raw))
		if err != nil {
			deny(w, r, fmt.Errorf("%w: %v", domain.ErrUnauth, err))
			return
		}
		next.ServeHTTP(w, r.WithContext(domain.WithAdmin(r.Context(), claims)))
	})
}

func extractBearer(h string) string {
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}
