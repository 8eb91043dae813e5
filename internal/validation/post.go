// Package validation checks request payloads before they reach business logic.
package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"folio/internal/models"
)

// MaxTitleLength is the longest accepted post title, in characters.
const MaxTitleLength = 300

type fieldKind int

const (
	kindString fieldKind = iota
	kindBool
)

type fieldRule struct {
	name     string
	kind     fieldKind
	required bool
	// notBlank rejects strings that are empty after trimming whitespace.
	notBlank bool
	maxLen   int
}

// postFields is declared in the order field errors are reported.
var postFields = []fieldRule{
	{name: "title", kind: kindString, required: true, notBlank: true, maxLen: MaxTitleLength},
	{name: "slug", kind: kindString},
	{name: "content", kind: kindString, required: true, notBlank: true},
	{name: "excerpt", kind: kindString},
	{name: "published", kind: kindBool},
}

// InsertPost validates a create payload. title and content are required.
func InsertPost(body []byte) (models.PostDraft, error) {
	values, err := decodePost(body, true)
	if err != nil {
		return models.PostDraft{}, err
	}

	return models.PostDraft{
		Title:     *values.strings["title"],
		Slug:      values.strings["slug"],
		Content:   *values.strings["content"],
		Excerpt:   values.strings["excerpt"],
		Published: values.published,
	}, nil
}

// UpdatePost validates a partial update payload. Every field is optional;
// absent fields are reported as nil.
func UpdatePost(body []byte) (models.PostPatch, error) {
	values, err := decodePost(body, false)
	if err != nil {
		return models.PostPatch{}, err
	}

	return models.PostPatch{
		Title:     values.strings["title"],
		Slug:      values.strings["slug"],
		Content:   values.strings["content"],
		Excerpt:   values.strings["excerpt"],
		Published: values.published,
	}, nil
}

type postValues struct {
	strings   map[string]*string
	published *bool
}

func decodePost(body []byte, insert bool) (postValues, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil || raw == nil {
		return postValues{}, models.NewValidationError("Validation error", models.FieldError{
			Field:   "body",
			Message: "Request body must be a JSON object",
		})
	}

	values := postValues{strings: make(map[string]*string, 4)}
	var fieldErrs []models.FieldError

	for _, rule := range postFields {
		msg := decodeField(rule, raw[rule.name], insert, &values)
		if msg != "" {
			fieldErrs = append(fieldErrs, models.FieldError{Field: rule.name, Message: msg})
		}
	}

	if len(fieldErrs) > 0 {
		return postValues{}, models.NewValidationError("Validation error", fieldErrs...)
	}
	return values, nil
}

// decodeField stores the decoded value in values and returns a non-empty
// message when the field is invalid.
func decodeField(rule fieldRule, raw json.RawMessage, insert bool, values *postValues) string {
	present := raw != nil
	isNull := present && bytes.Equal(bytes.TrimSpace(raw), []byte("null"))

	if !present || isNull {
		if rule.required && insert {
			if isNull {
				return fmt.Sprintf("Expected %s, received null", rule.kind)
			}
			return "Required"
		}
		if rule.required && isNull {
			return fmt.Sprintf("Expected %s, received null", rule.kind)
		}
		return ""
	}

	switch rule.kind {
	case kindBool:
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			return "Expected boolean, received " + jsonKind(raw)
		}
		values.published = &b
	default:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "Expected string, received " + jsonKind(raw)
		}
		if rule.notBlank && strings.TrimSpace(s) == "" {
			return "Must not be blank"
		}
		if rule.maxLen > 0 && utf8.RuneCountInString(s) > rule.maxLen {
			return fmt.Sprintf("Must be at most %d characters", rule.maxLen)
		}
		values.strings[rule.name] = &s
	}
	return ""
}

func (k fieldKind) String() string {
	if k == kindBool {
		return "boolean"
	}
	return "string"
}

// jsonKind names the JSON type of raw for error messages.
func jsonKind(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return "nothing"
	}
	switch trimmed[0] {
	case '"':
		return "string"
	case '{':
		return "object"
	case '[':
		return "array"
	case 't', 'f':
		return "boolean"
	case 'n':
		return "null"
	default:
		return "number"
	}
}
