package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const photoSchema = `{
  "type": "object",
  "required": ["title", "photos"],
  "properties": {
    "title": {"type": "string"},
    "photos": {"type": "array", "items": {"type": "string"}},
    "rating": {"type": "integer"}
  }
}`

func compilePhoto(t *testing.T) *Schema {
	t.Helper()
	s, err := Compile("photo", photoSchema)
	require.NoError(t, err)
	return s
}

func TestSchema_Valid(t *testing.T) {
	s := compilePhoto(t)

	result := s.Validate([]byte(`{"title":"Paris","photos":["a.jpg"],"rating":4}`))
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
}

func TestSchema_Errors(t *testing.T) {
	s := compilePhoto(t)

	tests := []struct {
		name      string
		body      string
		wantField string
		wantCode  string
		wantCount int
	}{
		{"missing title", `{"photos":[]}`, "title", "REQUIRED_FIELD_MISSING", 1},
		{"wrong item type", `{"title":"t","photos":[1]}`, "photos.0", "INVALID_TYPE", 1},
		{"fractional rating", `{"title":"t","photos":[],"rating":4.5}`, "rating", "INVALID_TYPE", 1},
		{"everything wrong", `{"photos":"x"}`, "photos", "INVALID_TYPE", 2},
		{"not json", `{"title":`, RootField, "MALFORMED_JSON", 1},
		{"empty", ``, RootField, "MALFORMED_JSON", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := s.Validate([]byte(tt.body))
			require.False(t, result.Valid)
			require.Len(t, result.Errors, tt.wantCount)
			assert.Equal(t, tt.wantField, result.Errors[0].Field)
			assert.Equal(t, tt.wantCode, result.Errors[0].Code)
			assert.NotEmpty(t, result.Errors[0].Message)
		})
	}
}

func TestSchema_SortedErrors(t *testing.T) {
	s := compilePhoto(t)
	body := []byte(`{"rating":"five"}`)

	first := s.Validate(body)
	second := s.Validate(body)

	require.Len(t, first.Errors, 3)
	assert.Equal(t, []string{"photos", "rating", "title"}, []string{
		first.Errors[0].Field, first.Errors[1].Field, first.Errors[2].Field,
	})
	assert.Equal(t, first, second)
}

func TestCompile_Invalid(t *testing.T) {
	_, err := Compile("broken", `{"type": 12}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")

	_, err = Compile("broken", `nope`)
	assert.Error(t, err)
}
