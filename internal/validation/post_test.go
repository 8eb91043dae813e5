package validation

import (
	"errors"
	"strings"
	"testing"

	"folio/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, models.CodeValidation, appErr.Code)

	out := make(map[string]string, len(appErr.Fields))
	for _, f := range appErr.Fields {
		out[f.Field] = f.Message
	}
	return out
}

func TestInsertPost_Valid(t *testing.T) {
	t.Parallel()

	draft, err := InsertPost([]byte(`{"title":"Hello","content":"<p>Hi</p>","published":true,"id":99,"createdAt":"2020-01-01"}`))
	require.NoError(t, err)
	assert.Equal(t, "Hello", draft.Title)
	assert.Equal(t, "<p>Hi</p>", draft.Content)
	assert.Nil(t, draft.Slug)
	assert.Nil(t, draft.Excerpt)
	require.NotNil(t, draft.Published)
	assert.True(t, *draft.Published)
}

func TestInsertPost_OptionalNullsAreAbsent(t *testing.T) {
	t.Parallel()

	draft, err := InsertPost([]byte(`{"title":"T","content":"C","slug":null,"excerpt":null,"published":null}`))
	require.NoError(t, err)
	assert.Nil(t, draft.Slug)
	assert.Nil(t, draft.Excerpt)
	assert.Nil(t, draft.Published)
}

func TestInsertPost_EmptyExcerptIsKept(t *testing.T) {
	t.Parallel()

	draft, err := InsertPost([]byte(`{"title":"T","content":"C","excerpt":""}`))
	require.NoError(t, err)
	require.NotNil(t, draft.Excerpt)
	assert.Equal(t, "", *draft.Excerpt)
}

func TestInsertPost_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		body   string
		fields map[string]string
	}{
		{
			name:   "not json",
			body:   `title=x`,
			fields: map[string]string{"body": "Request body must be a JSON object"},
		},
		{
			name:   "json array",
			body:   `[1,2]`,
			fields: map[string]string{"body": "Request body must be a JSON object"},
		},
		{
			name:   "missing required",
			body:   `{}`,
			fields: map[string]string{"title": "Required", "content": "Required"},
		},
		{
			name:   "non-string title",
			body:   `{"title":42,"content":"c"}`,
			fields: map[string]string{"title": "Expected string, received number"},
		},
		{
			name:   "null title",
			body:   `{"title":null,"content":"c"}`,
			fields: map[string]string{"title": "Expected string, received null"},
		},
		{
			name:   "blank content",
			body:   `{"title":"t","content":"   "}`,
			fields: map[string]string{"content": "Must not be blank"},
		},
		{
			name:   "string published",
			body:   `{"title":"t","content":"c","published":"yes"}`,
			fields: map[string]string{"published": "Expected boolean, received string"},
		},
		{
			name:   "object slug",
			body:   `{"title":"t","content":"c","slug":{"a":1}}`,
			fields: map[string]string{"slug": "Expected string, received object"},
		},
		{
			name:   "title too long",
			body:   `{"title":"` + strings.Repeat("x", MaxTitleLength+1) + `","content":"c"}`,
			fields: map[string]string{"title": "Must be at most 300 characters"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := InsertPost([]byte(tt.body))
			assert.Equal(t, tt.fields, fieldErrors(t, err))
		})
	}
}

func TestInsertPost_FieldErrorOrder(t *testing.T) {
	t.Parallel()

	_, err := InsertPost([]byte(`{"published":1}`))
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))

	got := make([]string, 0, len(appErr.Fields))
	for _, f := range appErr.Fields {
		got = append(got, f.Field)
	}
	assert.Equal(t, []string{"title", "content", "published"}, got)
}

func TestInsertPost_TitleLengthCountsCharacters(t *testing.T) {
	t.Parallel()

	title := strings.Repeat("é", MaxTitleLength)
	_, err := InsertPost([]byte(`{"title":"` + title + `","content":"c"}`))
	assert.NoError(t, err)
}

func TestUpdatePost_Partial(t *testing.T) {
	t.Parallel()

	patch, err := UpdatePost([]byte(`{"published":true}`))
	require.NoError(t, err)
	assert.Nil(t, patch.Title)
	assert.Nil(t, patch.Slug)
	assert.Nil(t, patch.Content)
	assert.Nil(t, patch.Excerpt)
	require.NotNil(t, patch.Published)
	assert.True(t, *patch.Published)
}

func TestUpdatePost_EmptyObject(t *testing.T) {
	t.Parallel()

	patch, err := UpdatePost([]byte(`{}`))
	require.NoError(t, err)
	assert.True(t, patch.IsEmpty())
}

func TestUpdatePost_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		body   string
		fields map[string]string
	}{
		{"null title", `{"title":null}`, map[string]string{"title": "Expected string, received null"}},
		{"blank title", `{"title":""}`, map[string]string{"title": "Must not be blank"}},
		{"array content", `{"content":["a"]}`, map[string]string{"content": "Expected string, received array"}},
		{"number excerpt", `{"excerpt":1}`, map[string]string{"excerpt": "Expected string, received number"}},
		{"body null", `null`, map[string]string{"body": "Request body must be a JSON object"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := UpdatePost([]byte(tt.body))
			assert.Equal(t, tt.fields, fieldErrors(t, err))
		})
	}
}
