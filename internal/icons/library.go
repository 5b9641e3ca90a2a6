package icons

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/EgorLis/svgicon/internal/domain"
)

// Сколько живёт закешированный список источников
const CacheTTL = 24 * time.Hour

type Discovery interface {
	Discover(ctx context.Context) ([]domain.SvgSource, error)
}

type AttachmentLookup interface {
	AttachmentByID(ctx context.Context, id domain.AttachmentID) (domain.Attachment, error)
}

type Deps struct {
	Cache     domain.Cache
	Discovery Discovery
	Index     AttachmentLookup  // nil — событие сохранения вложения ничего не делает
	Media     domain.FileReader // файлы медиатеки
	Custom    domain.FileReader // пользовательские пути
	Metrics   Metrics
	ParseTags string // разрешённые при разборе теги, по умолчанию DefaultParseTags
}

// Library — кеш источников, разбор иконок и вывод спрайта.
type Library struct {
	log       *zap.Logger
	cache     domain.Cache
	discovery Discovery
	index     AttachmentLookup
	media     domain.FileReader
	custom    domain.FileReader
	metrics   Metrics
	allowed   map[string]bool
}

func NewLibrary(logger *zap.Logger, deps Deps) *Library {
	if logger == nil {
		logger = zap.NewNop()
	}
	if deps.Metrics == nil {
		deps.Metrics = NoopMetrics{}
	}
	if strings.TrimSpace(deps.ParseTags) == "" {
		deps.ParseTags = DefaultParseTags
	}
	return &Library{
		log:       logger,
		cache:     deps.Cache,
		discovery: deps.Discovery,
		index:     deps.Index,
		media:     deps.Media,
		custom:    deps.Custom,
		metrics:   deps.Metrics,
		allowed:   ParseAllowedTags(deps.ParseTags),
	}
}

// AllSources — read-through: непустое значение из кеша возвращается без перепроверки,
// при промахе список пересобирается и кладётся в кеш на CacheTTL.
// Блокировок нет: параллельные промахи пересчитают оба, победит последняя запись.
func (l *Library) AllSources(ctx context.Context) ([]domain.SvgSource, error) {
	if cached, ok := l.cached(ctx); ok {
		l.metrics.Hit()
		return cached, nil
	}
	l.metrics.Miss()

	sources, err := l.discovery.Discover(ctx)
	if err != nil {
		return nil, fmt.Errorf("discover svg sources: %w", err)
	}

	buf, err := json.Marshal(sources)
	if err != nil {
		return nil, fmt.Errorf("encode svg sources: %w", err)
	}
	if err := l.cache.Set(ctx, domain.CacheKeyIconFiles, buf, int(CacheTTL.Seconds())); err != nil {
		// кеш недоступен — отдаём свежий список, в следующий раз пересчитаем
		l.log.Warn("cache set failed", zap.String("key", domain.CacheKeyIconFiles), zap.Error(err))
	}
	l.log.Debug("svg sources discovered", zap.Int("count", len(sources)))
	return sources, nil
}

func (l *Library) cached(ctx context.Context) ([]domain.SvgSource, bool) {
	b, err := l.cache.Get(ctx, domain.CacheKeyIconFiles)
	if err != nil {
		l.log.Warn("cache get failed", zap.String("key", domain.CacheKeyIconFiles), zap.Error(err))
		return nil, false
	}
	if len(b) == 0 {
		return nil, false
	}
	var sources []domain.SvgSource
	if err := json.Unmarshal(b, &sources); err != nil {
		l.log.Warn("cache value is corrupted", zap.String("key", domain.CacheKeyIconFiles), zap.Error(err))
		return nil, false
	}
	return sources, len(sources) > 0
}

// OnAttachmentSaved сбрасывает кеш, если сохранённое вложение — SVG.
// Для остальных типов ничего не делает и возвращает false.
func (l *Library) OnAttachmentSaved(ctx context.Context, id domain.AttachmentID) (bool, error) {
	if l.index == nil {
		return false, nil
	}
	att, err := l.index.AttachmentByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		// неизвестное вложение — не SVG
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("attachment %d: %w", id, err)
	}
	if att.MIME != domain.MIMETypeSVG {
		return false, nil
	}
	if err := l.cache.Del(ctx, domain.CacheKeyIconFiles); err != nil {
		return false, fmt.Errorf("invalidate svg sources: %w", err)
	}
	l.metrics.Invalidate()
	l.log.Info("svg sources cache invalidated", zap.Int64("attachment_id", id))
	return true, nil
}

// ParseIcons собирает иконки из всех источников в их порядке.
// Источники без файла на диске пропускаются молча.
func (l *Library) ParseIcons(ctx context.Context) ([]domain.IconEntry, error) {
	sources, err := l.AllSources(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.IconEntry, 0, len(sources))
	for _, src := range sources {
		fr := l.readerFor(src)
		if fr == nil || !fr.Exists(ctx, src.Path) {
			continue
		}

		if src.Provenance == domain.ProvenanceMedia {
			out = append(out, domain.IconEntry{
				ID:       strconv.FormatInt(src.ID, 10),
				Label:    FormatLabel(fileName(src.Path), false),
				URL:      src.URL,
				Disabled: false,
			})
			continue
		}

		data, err := fr.Read(ctx, src.Path)
		if err != nil {
			l.log.Debug("skip unreadable svg", zap.String("file", src.Path), zap.Error(err))
			continue
		}
		for _, raw := range ExtractIDs(StripTags(data, l.allowed)) {
			id := Slugify(raw)
			out = append(out, domain.IconEntry{
				ID:       id,
				Label:    FormatLabel(id, true),
				Disabled: false,
			})
		}
	}
	return out, nil
}

func (l *Library) readerFor(src domain.SvgSource) domain.FileReader {
	if src.Provenance == domain.ProvenanceMedia {
		return l.media
	}
	return l.custom
}

// имя файла без расширения; %xx в ключе (s3) раскодируются
func fileName(p string) string {
	base := path.Base(p)
	if plain, err := url.PathUnescape(base); err == nil {
		base = plain
	}
	return strings.TrimSuffix(base, path.Ext(base))
}
