package icons

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// FormatLabel превращает id иконки в подпись для отображения:
// "icon-home-filled" -> "Home filled" (stripFirstSegment) или "Icon home filled".
// Первый сегмент считается префиксом набора и смысла для подписи не несёт.
func FormatLabel(id string, stripFirstSegment bool) string {
	parts := strings.Split(id, "-")
	if len(parts) == 0 {
		return id
	}
	if stripFirstSegment {
		parts = parts[1:]
	}
	return upperFirst(strings.Join(parts, " "))
}

// только первая буква, без title-case остальных слов
func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
