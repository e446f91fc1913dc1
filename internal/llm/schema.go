package llm

import (
	"github.com/ppiankov/verdict/internal/model"
	"github.com/sashabaranov/go-openai/jsonschema"
)

// Field names of the classification contract
const (
	fieldVerdict    = "verdict"
	fieldConfidence = "confidence"
	fieldSummary    = "summary"
	fieldIndicators = "indicators"
	fieldLabel      = "label"
	fieldType       = "type"
)

// ClassificationSchema is the structured-output contract. The same value is
// declared as the tool's parameter schema and used to verify the reply.
var ClassificationSchema = jsonschema.Definition{
	Type: jsonschema.Object,
	Properties: map[string]jsonschema.Definition{
		fieldVerdict: {
			Type: jsonschema.String,
			Enum: verdictEnum(),
		},
		fieldConfidence: {
			Type:        jsonschema.Number,
			Description: "Confidence score from 0.0 to 1.0",
		},
		fieldSummary: {
			Type:        jsonschema.String,
			Description: "Brief 1-2 sentence summary of the analysis",
		},
		fieldIndicators: {
			Type:        jsonschema.Array,
			Description: "3-5 key indicators found in the text",
			Items: &jsonschema.Definition{
				Type: jsonschema.Object,
				Properties: map[string]jsonschema.Definition{
					fieldLabel: {Type: jsonschema.String},
					fieldType: {
						Type: jsonschema.String,
						Enum: indicatorKindEnum(),
					},
				},
				Required: []string{fieldLabel, fieldType},
			},
		},
	},
	Required:             []string{fieldVerdict, fieldConfidence, fieldSummary, fieldIndicators},
	AdditionalProperties: false,
}

// Advisory indicator count the model is asked for
const (
	minIndicators = 3
	maxIndicators = 5
)

func verdictEnum() []string {
	verdicts := model.Verdicts()
	out := make([]string, len(verdicts))
	for i, v := range verdicts {
		out[i] = string(v)
	}
	return out
}

func indicatorKindEnum() []string {
	kinds := model.IndicatorKinds()
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = string(k)
	}
	return out
}

// toolArguments mirrors ClassificationSchema for decoding
type toolArguments struct {
	Verdict    string  `json:"verdict"`
	Confidence float64 `json:"confidence"`
	Summary    string  `json:"summary"`
	Indicators []struct {
		Label string `json:"label"`
		Type  string `json:"type"`
	} `json:"indicators"`
}
