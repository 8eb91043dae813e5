package seed

import (
	"fmt"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
)

// Factory builds fake post fixtures.
type Factory struct {
	faker *gofakeit.Faker
	opts  Options
}

// NewFactory creates a Factory. A non-zero opts.Seed gives repeatable output.
func NewFactory(opts Options) *Factory {
	return &Factory{faker: gofakeit.New(opts.Seed), opts: opts}
}

// BuildFixture returns a post fixture with a sentence title and a few
// paragraphs of HTML content. The slug and excerpt are left for the
// pipeline to derive.
func (f *Factory) BuildFixture() Fixture {
	title := strings.TrimSuffix(f.faker.Sentence(f.faker.Number(3, 8)), ".")

	paragraphs := f.faker.Number(1, 4)
	var b strings.Builder
	for range paragraphs {
		fmt.Fprintf(&b, "<p>%s</p>", f.faker.Paragraph(1, 4, 12, " "))
	}
	if f.faker.Bool() {
		fmt.Fprintf(&b, "<blockquote>%s</blockquote>", f.faker.Quote())
	}

	published := f.opts.Publish
	return Fixture{
		Title:     &title,
		Content:   ptr(b.String()),
		Published: &published,
	}
}

func ptr[T any](v T) *T { return &v }
