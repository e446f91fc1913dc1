package llm

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/ppiankov/verdict/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassificationSchema_Shape(t *testing.T) {
	data, err := json.Marshal(ClassificationSchema)
	require.NoError(t, err)

	var schema map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &schema))

	assert.Equal(t, "object", schema["type"])
	assert.Equal(t, false, schema["additionalProperties"])
	assert.ElementsMatch(t, []interface{}{"verdict", "confidence", "summary", "indicators"}, schema["required"])

	props := schema["properties"].(map[string]interface{})
	verdict := props["verdict"].(map[string]interface{})
	assert.Equal(t, "string", verdict["type"])
	assert.Equal(t, []interface{}{"REAL", "FAKE"}, verdict["enum"])

	assert.Equal(t, "number", props["confidence"].(map[string]interface{})["type"])
	assert.Equal(t, "string", props["summary"].(map[string]interface{})["type"])

	indicators := props["indicators"].(map[string]interface{})
	assert.Equal(t, "array", indicators["type"])
	items := indicators["items"].(map[string]interface{})
	assert.ElementsMatch(t, []interface{}{"label", "type"}, items["required"])
	kind := items["properties"].(map[string]interface{})["type"].(map[string]interface{})
	assert.Equal(t, []interface{}{"positive", "negative", "neutral"}, kind["enum"])
}

func TestClassificationSchema_MatchesModelEnums(t *testing.T) {
	verdicts := ClassificationSchema.Properties[fieldVerdict].Enum
	require.Len(t, verdicts, len(model.Verdicts()))
	for _, v := range verdicts {
		assert.True(t, model.Verdict(v).Valid(), "schema verdict %q not accepted by model", v)
	}

	kinds := ClassificationSchema.Properties[fieldIndicators].Items.Properties[fieldType].Enum
	require.Len(t, kinds, len(model.IndicatorKinds()))
	for _, k := range kinds {
		assert.True(t, model.IndicatorKind(k).Valid(), "schema kind %q not accepted by model", k)
	}
}

func TestBuildRequest_ForcesTool(t *testing.T) {
	req := BuildRequest("custom/model", model.AnalysisRequest{Text: scientificReport})

	assert.Equal(t, "custom/model", req.Model)
	require.Len(t, req.Messages, 2)
	assert.Equal(t, SystemPrompt, req.Messages[0].Content)
	assert.Equal(t, "Analyze this news text:\n\n"+scientificReport, req.Messages[1].Content)

	require.Len(t, req.Tools, 1)
	assert.Equal(t, ClassifyToolName, req.Tools[0].Function.Name)
	assert.Equal(t, ClassificationSchema, req.Tools[0].Function.Parameters)

	data, err := json.Marshal(req)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"tool_choice":{"type":"function","function":{"name":"classify_news"}}`)
}

func TestBuildRequest_DefaultModel(t *testing.T) {
	req := BuildRequest("", model.AnalysisRequest{Text: scientificReport})
	assert.Equal(t, DefaultModel, req.Model)
}

func TestSystemPrompt_Criteria(t *testing.T) {
	for _, criterion := range []string{
		"Sensationalist or emotionally manipulative language",
		"Lack of credible sources or attribution",
		"Logical inconsistencies",
		"Clickbait",
		"absolute statements without evidence",
		"Grammar and writing quality",
		"claims can be verified",
	} {
		assert.True(t, strings.Contains(SystemPrompt, criterion), "missing criterion %q", criterion)
	}
}
