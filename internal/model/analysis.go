package model

// AnalysisRequest is the inbound payload of a classification call
type AnalysisRequest struct {
	Text string `json:"text"` // Article text, already trimmed and truncated once validated
}

// Verdict is the binary credibility classification
type Verdict string

const (
	VerdictReal Verdict = "REAL"
	VerdictFake Verdict = "FAKE"
)

// Verdicts lists every allowed verdict in declaration order
func Verdicts() []Verdict {
	return []Verdict{VerdictReal, VerdictFake}
}

// Valid reports whether v is one of the allowed verdicts
func (v Verdict) Valid() bool {
	switch v {
	case VerdictReal, VerdictFake:
		return true
	}
	return false
}

// IndicatorKind classifies an indicator as evidence for or against credibility
type IndicatorKind string

const (
	IndicatorPositive IndicatorKind = "positive"
	IndicatorNegative IndicatorKind = "negative"
	IndicatorNeutral  IndicatorKind = "neutral"
)

// IndicatorKinds lists every allowed indicator kind in declaration order
func IndicatorKinds() []IndicatorKind {
	return []IndicatorKind{IndicatorPositive, IndicatorNegative, IndicatorNeutral}
}

// Valid reports whether k is one of the allowed indicator kinds
func (k IndicatorKind) Valid() bool {
	switch k {
	case IndicatorPositive, IndicatorNegative, IndicatorNeutral:
		return true
	}
	return false
}

// Indicator is a short labeled signal the model cites for its verdict.
// The kind travels under the "type" key on the wire.
type Indicator struct {
	Label string        `json:"label"`
	Kind  IndicatorKind `json:"type"`
}

// ClassificationResult is the only success artifact of the pipeline
type ClassificationResult struct {
	Verdict    Verdict     `json:"verdict"`    // REAL or FAKE
	Confidence float64     `json:"confidence"` // Always within [0, 1]
	Summary    string      `json:"summary"`    // 1-2 sentence explanation, never empty
	Indicators []Indicator `json:"indicators"` // Advisory 3-5 entries, never nil
}
