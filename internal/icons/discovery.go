package icons

import (
	"context"
	"fmt"

	"github.com/EgorLis/svgicon/internal/domain"
)

// QueryFilter позволяет переопределить аргументы выборки вложений до выполнения.
type QueryFilter func(domain.MediaQuery) domain.MediaQuery

// PathsProvider отдаёт дополнительные пути к SVG-спрайтам (тема, конфиг).
type PathsProvider func() []string

// AttachmentQuerier — минимум, который discovery нужен от медиатеки.
type AttachmentQuerier interface {
	QueryAttachments(ctx context.Context, q domain.MediaQuery) ([]domain.Attachment, error)
}

// Discoverer собирает источники: сначала SVG из медиатеки, затем пользовательские пути.
// Дедупликации нет.
type Discoverer struct {
	Index       AttachmentQuerier // nil — медиатека не подключена
	MediaURL    func(storageKey string) string
	FilterQuery QueryFilter
	CustomPaths PathsProvider
}

func (d *Discoverer) Discover(ctx context.Context) ([]domain.SvgSource, error) {
	media, err := d.mediaSources(ctx)
	if err != nil {
		return nil, err
	}
	custom := d.customSources()

	out := make([]domain.SvgSource, 0, len(media)+len(custom))
	out = append(out, media...)
	out = append(out, custom...)
	return out, nil
}

func (d *Discoverer) mediaSources(ctx context.Context) ([]domain.SvgSource, error) {
	if d.Index == nil {
		return nil, nil
	}
	q := domain.DefaultMediaQuery()
	if d.FilterQuery != nil {
		q = d.FilterQuery(q)
	}
	atts, err := d.Index.QueryAttachments(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query svg attachments: %w", err)
	}

	out := make([]domain.SvgSource, 0, len(atts))
	for _, a := range atts {
		src := domain.SvgSource{
			Provenance: domain.ProvenanceMedia,
			Path:       a.StorageKey,
			ID:         a.ID,
			URL:        a.URL,
		}
		if src.URL == "" && d.MediaURL != nil {
			src.URL = d.MediaURL(a.StorageKey)
		}
		out = append(out, src)
	}
	return out, nil
}

func (d *Discoverer) customSources() []domain.SvgSource {
	if d.CustomPaths == nil {
		return nil
	}
	paths := d.CustomPaths()
	out := make([]domain.SvgSource, 0, len(paths))
	for _, p := range paths {
		out = append(out, domain.SvgSource{Provenance: domain.ProvenanceCustom, Path: p})
	}
	return out
}

// StaticPaths — PathsProvider с фиксированным списком.
func StaticPaths(paths ...string) PathsProvider {
	return func() []string { return paths }
}
