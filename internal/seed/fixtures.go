package seed

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Fixture is one post in a fixtures file. Absent fields are omitted from
// the request body so the pipeline derives them.
type Fixture struct {
	Title     *string `yaml:"title" json:"title,omitempty"`
	Slug      *string `yaml:"slug" json:"slug,omitempty"`
	Content   *string `yaml:"content" json:"content,omitempty"`
	Excerpt   *string `yaml:"excerpt" json:"excerpt,omitempty"`
	Published *bool   `yaml:"published" json:"published,omitempty"`
}

type fixtureFile struct {
	Posts []Fixture `yaml:"posts"`
}

// ParseFixtures decodes a YAML document of the form:
//
//	posts:
//	  - title: Hello
//	    content: <p>Hi</p>
//	    published: true
func ParseFixtures(data []byte) ([]Fixture, error) {
	var file fixtureFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}
	return file.Posts, nil
}

// LoadFixtures reads and parses a fixtures file.
func LoadFixtures(path string) ([]Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixtures %s: %w", path, err)
	}
	return ParseFixtures(data)
}

// WithPublished returns fixtures with every unset published flag set to published.
func WithPublished(fixtures []Fixture, published bool) []Fixture {
	out := make([]Fixture, len(fixtures))
	for i, fx := range fixtures {
		if fx.Published == nil {
			fx.Published = ptr(published)
		}
		out[i] = fx
	}
	return out
}
