package content

import (
	"github.com/microcosm-cc/bluemonday"
)

var policy = newPolicy()

func newPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()

	p.AllowElements(
		"h1", "h2", "h3", "h4", "h5", "h6",
		"p", "br",
		"strong", "em", "u", "strike",
		"ul", "ol", "li",
		"blockquote", "pre", "code",
		"a", "img",
		"div", "span",
	)

	p.AllowAttrs("href", "target").OnElements("a")
	p.AllowAttrs("src", "alt", "width", "height").OnElements("img")
	p.AllowAttrs("class", "style").Globally()

	p.RequireParseableURLs(true)
	p.AllowURLSchemes("http", "https", "ftp", "mailto", "tel")
	p.AllowRelativeURLs(true)

	return p
}

// Sanitize filters html through the allow-list. Disallowed tags are removed
// with their text kept; script and style bodies are dropped. It never fails.
func Sanitize(html string) string {
	return policy.Sanitize(html)
}
