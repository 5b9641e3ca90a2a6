package icons

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/EgorLis/svgicon/internal/domain"
	"github.com/EgorLis/svgicon/internal/transport/web/logx"
	"github.com/EgorLis/svgicon/internal/transport/web/mw"
	v1 "github.com/EgorLis/svgicon/internal/transport/web/v1"
)

type Library interface {
	ParseIcons(ctx context.Context) ([]domain.IconEntry, error)
	LocalizeScript(ctx context.Context) ([]byte, error)
	RenderSprite(ctx context.Context, w io.Writer) error
}

type Handler struct {
	Log   *zap.Logger
	Icons Library
}

// List — список иконок для виджета выбора
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const op = "icons.list"
	entries, err := h.Icons.ParseIcons(r.Context())
	if err != nil {
		logx.Error(h.Log, mw.RequestIDFromCtx(r.Context()), op, "parse icons failed", err)
		v1.WriteDomainError(w, r, err)
		return
	}
	v1.WriteOKData(w, r, entries)
}

// Script — тот же список как глобальная js-переменная
func (h *Handler) Script(w http.ResponseWriter, r *http.Request) {
	const op = "icons.script"
	js, err := h.Icons.LocalizeScript(r.Context())
	if err != nil {
		logx.Error(h.Log, mw.RequestIDFromCtx(r.Context()), op, "localize script failed", err)
		v1.WriteDomainError(w, r, err)
		return
	}
	v1.WriteRaw(w, r, "application/javascript; charset=utf-8", js)
}

// Sprite — скрытые SVG-спрайты для вставки в футер страницы
func (h *Handler) Sprite(w http.ResponseWriter, r *http.Request) {
	const op = "icons.sprite"
	var buf bytes.Buffer
	if err := h.Icons.RenderSprite(r.Context(), &buf); err != nil {
		logx.Error(h.Log, mw.RequestIDFromCtx(r.Context()), op, "render sprite failed", err)
		v1.WriteDomainError(w, r, err)
		return
	}
	v1.WriteRaw(w, r, "text/html; charset=utf-8", buf.Bytes())
}
