package icons

import (
	"bytes"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// Разрешённые теги по умолчанию: символы спрайта и группы
const DefaultParseTags = "<symbol><g>"

var (
	allowedTagRe = regexp.MustCompile(`<\s*([^\s<>/]+)\s*>`)
	iconIDRe     = regexp.MustCompile(`(?m)id="(\S+)"`)
)

// ParseAllowedTags разбирает строку вида "<symbol><g>" в множество имён тегов.
func ParseAllowedTags(s string) map[string]bool {
	out := make(map[string]bool)
	for _, m := range allowedTagRe.FindAllStringSubmatch(s, -1) {
		out[strings.ToLower(m[1])] = true
	}
	return out
}

// StripTags удаляет всю разметку, кроме тегов из allowed. Текст между тегами
// сохраняется как есть, комментарии и doctype/xml-пролог выбрасываются.
func StripTags(content []byte, allowed map[string]bool) string {
	z := html.NewTokenizer(bytes.NewReader(content))
	var b strings.Builder
	b.Grow(len(content))
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			// io.EOF или обрезанный файл: отдаём то, что успели разобрать
			return b.String()
		case html.TextToken:
			b.Write(z.Raw())
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			// TagName приводит имя к нижнему регистру прямо в буфере, поэтому raw копируем заранее
			raw := append([]byte(nil), z.Raw()...)
			name, _ := z.TagName()
			if allowed[string(name)] {
				b.Write(raw)
			}
		}
	}
}

// ExtractIDs возвращает все значения id="..." в порядке появления.
func ExtractIDs(stripped string) []string {
	matches := iconIDRe.FindAllStringSubmatch(stripped, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m[1])
	}
	return out
}
