package validate

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/ppiankov/verdict/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestValidator_RejectsShortOrNonString(t *testing.T) {
	v := NewRequestValidator()

	tests := []struct {
		name string
		raw  interface{}
	}{
		{"nil", nil},
		{"number", 42.0},
		{"object", map[string]interface{}{"text": "nested"}},
		{"empty", ""},
		{"whitespace", "                              "},
		{"nineteen chars", strings.Repeat("a", 19)},
		{"nineteen chars padded", "   " + strings.Repeat("b", 19) + "\n\t  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Validate(tt.raw)
			require.Error(t, err)

			kind, ok := model.KindOf(err)
			require.True(t, ok, "expected PipelineError, got %T", err)
			assert.Equal(t, model.KindInvalidInput, kind)
			assert.Equal(t, 400, kind.Status())
		})
	}
}

func TestRequestValidator_AcceptsMinimum(t *testing.T) {
	v := NewRequestValidator()

	req, err := v.Validate("  " + strings.Repeat("x", 20) + "  ")
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("x", 20), req.Text)
}

func TestRequestValidator_TruncatesTrimmedText(t *testing.T) {
	v := NewRequestValidator()

	// Leading whitespace must not count toward the limit
	body := strings.Repeat("y", 2999) + "Z" + strings.Repeat("w", 500)
	req, err := v.Validate(strings.Repeat(" ", 100) + body)
	require.NoError(t, err)

	assert.Equal(t, MaxTextChars, utf8.RuneCountInString(req.Text))
	assert.True(t, strings.HasPrefix(req.Text, "yyy"))
	assert.True(t, strings.HasSuffix(req.Text, "Z"))
}

func TestRequestValidator_TruncatesByRune(t *testing.T) {
	v := NewRequestValidator()

	req, err := v.Validate(strings.Repeat("ü", 3500))
	require.NoError(t, err)

	assert.True(t, utf8.ValidString(req.Text))
	assert.Equal(t, MaxTextChars, utf8.RuneCountInString(req.Text))
}

func TestRequestValidator_ShortTextUntouched(t *testing.T) {
	v := NewRequestValidator()

	text := "Scientists at the university published a peer-reviewed study."
	req, err := v.Validate(text)
	require.NoError(t, err)
	assert.Equal(t, text, req.Text)
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "abc", truncateRunes("abcdef", 3))
	assert.Equal(t, "ab", truncateRunes("ab", 3))
	assert.Equal(t, "日本", truncateRunes("日本語", 2))
	assert.Equal(t, "", truncateRunes("abc", 0))
}
