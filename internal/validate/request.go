package validate

import (
	"strings"
	"unicode/utf8"

	"github.com/ppiankov/verdict/internal/model"
)

const (
	// MinTextChars is the minimum trimmed length accepted for analysis
	MinTextChars = 20

	// MaxTextChars bounds the text forwarded upstream (prompt size and cost)
	MaxTextChars = 3000
)

// RequestValidator validates and normalizes inbound analysis payloads
type RequestValidator struct {
	minChars int
	maxChars int
}

// NewRequestValidator creates a validator with the standard bounds
func NewRequestValidator() *RequestValidator {
	return &RequestValidator{
		minChars: MinTextChars,
		maxChars: MaxTextChars,
	}
}

// Validate checks the raw "text" value of a request. It accepts only strings
// whose trimmed length is at least MinTextChars, and returns the trimmed text
// cut to at most MaxTextChars. Lengths are counted in runes.
func (v *RequestValidator) Validate(raw interface{}) (model.AnalysisRequest, error) {
	text, ok := raw.(string)
	if !ok {
		return model.AnalysisRequest{}, model.Errorf(model.KindInvalidInput, "text must be a string, got %T", raw)
	}

	trimmed := strings.TrimSpace(text)
	n := utf8.RuneCountInString(trimmed)
	if n < v.minChars {
		return model.AnalysisRequest{}, model.Errorf(model.KindInvalidInput, "text has %d characters after trimming, need %d", n, v.minChars)
	}

	return model.AnalysisRequest{Text: truncateRunes(trimmed, v.maxChars)}, nil
}

// truncateRunes returns the first max runes of s
func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	count := 0
	for i := range s {
		if count == max {
			return s[:i]
		}
		count++
	}
	return s
}

