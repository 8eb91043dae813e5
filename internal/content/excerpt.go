package content

import (
	"regexp"
	"strings"
)

// ExcerptLength is the number of characters kept in a derived excerpt.
const ExcerptLength = 150

// ExcerptEllipsis is appended to truncated excerpts.
const ExcerptEllipsis = "..."

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// quoteEntities reverses the quote escaping the sanitizer applies to text.
// Other entities such as &amp; stay encoded.
var quoteEntities = strings.NewReplacer(
	"&#34;", `"`,
	"&#39;", "'",
	"&quot;", `"`,
)

// StripTags removes every <...> run from html. Entities are left as-is.
func StripTags(html string) string {
	return tagPattern.ReplaceAllString(html, "")
}

// Excerpt returns the plain text of html, truncated to ExcerptLength
// characters plus ExcerptEllipsis when longer.
func Excerpt(html string) string {
	text := quoteEntities.Replace(StripTags(html))
	r := []rune(text)
	if len(r) <= ExcerptLength {
		return text
	}
	return string(r[:ExcerptLength]) + ExcerptEllipsis
}
