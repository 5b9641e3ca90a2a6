package fields

import (
	"bytes"
	"io"
	"net/http"
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/text/message"

	"github.com/EgorLis/svgicon/internal/domain"
	"github.com/EgorLis/svgicon/internal/field"
	"github.com/EgorLis/svgicon/internal/transport/web/logx"
	"github.com/EgorLis/svgicon/internal/transport/web/mw"
	v1 "github.com/EgorLis/svgicon/internal/transport/web/v1"
)

type Handler struct {
	Log    *zap.Logger
	Fields *field.Registry
}

type typeOut struct {
	Name     string         `json:"name"`
	Label    string         `json:"label"`
	Category string         `json:"category"`
	Defaults map[string]any `json:"defaults"`
}

// List — зарегистрированные типы полей
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	p := printer(r)
	out := make([]typeOut, 0)
	for _, name := range h.Fields.Names() {
		t, _ := h.Fields.Lookup(name)
		out = append(out, typeOut{Name: name, Label: t.Label(p), Category: t.Category(p), Defaults: t.Defaults()})
	}
	v1.WriteOKData(w, r, out)
}

// Render — разметка инпута поля: ?name=&value=&allow_clear=
func (h *Handler) Render(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "fields.render", field.Type.Render)
}

// Settings — разметка панели настроек поля: ?prefix=&allow_clear=
func (h *Handler) Settings(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "fields.settings", field.Type.RenderSettings)
}

type renderFunc func(t field.Type, w io.Writer, p *message.Printer, cfg field.Config) error

func (h *Handler) render(w http.ResponseWriter, r *http.Request, op string, fn renderFunc) {
	reqID := mw.RequestIDFromCtx(r.Context())

	t, ok := h.Fields.Lookup(r.PathValue("type"))
	if !ok {
		v1.WriteDomainError(w, r, domain.ErrNotFound)
		return
	}
	q := r.URL.Query()
	allowClear, _ := strconv.ParseBool(q.Get("allow_clear"))
	cfg := field.Config{
		Type:       t.Name(),
		Name:       q.Get("name"),
		Value:      q.Get("value"),
		AllowClear: allowClear,
		Prefix:     q.Get("prefix"),
	}

	var buf bytes.Buffer
	if err := fn(t, &buf, printer(r), cfg); err != nil {
		logx.Error(h.Log, reqID, op, "render failed", err, zap.String("type", t.Name()))
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}
	v1.WriteRaw(w, r, "text/html; charset=utf-8", buf.Bytes())
}

func printer(r *http.Request) *message.Printer {
	if lang := r.URL.Query().Get("lang"); lang != "" {
		return field.Printer(lang)
	}
	return field.Printer(r.Header.Get("Accept-Language"))
}
