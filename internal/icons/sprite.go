package icons

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"regexp"

	"go.uber.org/zap"
	"golang.org/x/net/html"
)

var styleAttrRe = regexp.MustCompile(`(?i)\sstyle\s*=\s*["']`)

// RenderSprite выводит содержимое всех существующих файлов-источников подряд,
// каждый корневой <svg> скрыт через display:none.
func (l *Library) RenderSprite(ctx context.Context, w io.Writer) error {
	sources, err := l.AllSources(ctx)
	if err != nil {
		return err
	}
	for _, src := range sources {
		fr := l.readerFor(src)
		if fr == nil || !fr.Exists(ctx, src.Path) {
			continue
		}
		data, err := fr.Read(ctx, src.Path)
		if err != nil {
			l.log.Debug("skip unreadable svg", zap.String("file", src.Path), zap.Error(err))
			continue
		}
		if _, err := w.Write(HideRoot(data)); err != nil {
			return fmt.Errorf("write sprite %q: %w", src.Path, err)
		}
	}
	return nil
}

// HideRoot добавляет display:none в style корневого <svg>; если атрибута нет — создаёт его.
// Файл без <svg> возвращается как есть.
func HideRoot(content []byte) []byte {
	z := html.NewTokenizer(bytes.NewReader(content))
	offset := 0
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return content
		}
		raw := append([]byte(nil), z.Raw()...)
		start := offset
		offset += len(raw)

		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			continue
		}
		name, _ := z.TagName()
		if string(name) != "svg" {
			continue
		}

		var at int
		var insert string
		if loc := styleAttrRe.FindIndex(raw); loc != nil {
			at, insert = start+loc[1], "display:none; "
		} else {
			// сразу после "<svg"
			at, insert = start+1+len(name), ` style="display:none;"`
		}
		out := make([]byte, 0, len(content)+len(insert))
		out = append(out, content[:at]...)
		out = append(out, insert...)
		out = append(out, content[at:]...)
		return out
	}
}
