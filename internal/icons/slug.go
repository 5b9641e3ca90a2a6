package icons

import (
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// латиница, которую не разложить через NFD
var latinFold = strings.NewReplacer(
	"ß", "ss", "ẞ", "SS",
	"æ", "ae", "Æ", "AE",
	"œ", "oe", "Œ", "OE",
	"ø", "o", "Ø", "O",
	"đ", "d", "Đ", "D",
	"ð", "d", "Ð", "D",
	"ł", "l", "Ł", "L",
	"þ", "th", "Þ", "TH",
	"ı", "i",
)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify нормализует произвольный токен в безопасный для URL/HTML id.
// С латиницы снимается диакритика, всё приводится к нижнему регистру;
// остаются [a-z0-9_-], прочие буквы и цифры кодируются как %xx (нижний регистр hex).
// Точки и пробелы становятся дефисами, остальное выбрасывается.
func Slugify(s string) string {
	plain := strings.ToLower(removeAccents(latinFold.Replace(norm.NFC.String(s))))

	var b strings.Builder
	b.Grow(len(plain))
	dash := false
	for i := 0; i < len(plain); {
		r, size := utf8.DecodeRuneInString(plain[i:])

		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
			dash = false
		case r == '%' && isOctet(plain[i+1:]):
			// уже закодированный октет сохраняется
			b.WriteString(strings.ToLower(plain[i : i+3]))
			size = 3
			dash = false
		case r == '-' || r == '.' || unicode.IsSpace(r):
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		case r >= 0x80 && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteString(strings.ToLower(url.PathEscape(string(r))))
			dash = false
		}
		i += size
	}
	return strings.TrimRight(b.String(), "-")
}

// диакритика снимается только с латиницы: й, ё и т.п. остаются как есть
func removeAccents(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x80 || !unicode.Is(unicode.Latin, r) {
			b.WriteRune(r)
			continue
		}
		plain, _, err := transform.String(stripMarks, string(r))
		if err != nil {
			plain = string(r)
		}
		b.WriteString(plain)
	}
	return b.String()
}

func isOctet(s string) bool {
	return len(s) >= 2 && isHex(s[0]) && isHex(s[1])
}

func isHex(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}
