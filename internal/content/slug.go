package content

import (
	"strings"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/unicode/norm"
)

// symbolWords spells out symbols that read as words before transliteration
// would turn them into abbreviations or drop them.
var symbolWords = strings.NewReplacer(
	"&", " and ",
	"%", " percent ",
	"$", " dollar ",
	"€", " euro ",
	"£", " pound ",
	"<", " less ",
	">", " greater ",
	"|", " or ",
)

// Slugify derives a URL-safe slug from title. The result contains only
// [a-z0-9] runs joined by single hyphens and may be empty.
func Slugify(title string) string {
	// NFKC folds compatibility forms (ligatures, fullwidth) and composes
	// combining sequences so transliteration sees whole letters.
	folded := norm.NFKC.String(title)
	folded = symbolWords.Replace(folded)
	folded = strings.ToLower(unidecode.Unidecode(folded))

	var b strings.Builder
	b.Grow(len(folded))
	pendingSep := false
	for _, r := range folded {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingSep = false
			b.WriteRune(r)
			continue
		}
		pendingSep = true
	}

	return b.String()
}
