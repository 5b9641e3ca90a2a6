package web

import (
	"net/http"

	"github.com/EgorLis/svgicon/internal/domain"
	"github.com/EgorLis/svgicon/internal/field"
	"github.com/EgorLis/svgicon/internal/icons"
	"github.com/EgorLis/svgicon/internal/transport/web/v1/health"
)

type Deps struct {
	DB     health.Pinger
	Cache  domain.Cache
	Media  domain.MediaStore
	Index  domain.MediaIndex
	Icons  *icons.Library
	Fields *field.Registry
	Tokens domain.TokenManager

	// Раздача загруженных файлов (только для локальной медиатеки), nil — не раздаём
	Uploads http.Handler
	// /metrics, nil — не публикуем
	Metrics http.Handler
}
