package llm

import (
	"math"
	"strings"

	"github.com/ppiankov/verdict/internal/model"
	"github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
	"go.uber.org/zap"
)

// ResponseParser extracts and re-validates the forced tool invocation.
// The model is only instructed to follow ClassificationSchema, so every
// field is checked again after decoding.
type ResponseParser struct {
	logger *zap.Logger
}

// NewResponseParser creates a parser
func NewResponseParser(logger *zap.Logger) *ResponseParser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResponseParser{logger: logger}
}

// Parse converts a gateway response into a ClassificationResult or a
// KindSchemaViolation error. It never returns a partial result.
func (p *ResponseParser) Parse(resp openai.ChatCompletionResponse) (*model.ClassificationResult, error) {
	call, err := findToolCall(resp)
	if err != nil {
		return nil, err
	}

	var args toolArguments
	if err := jsonschema.VerifySchemaAndUnmarshal(ClassificationSchema, []byte(call.Function.Arguments), &args); err != nil {
		return nil, model.Errorf(model.KindSchemaViolation, "tool arguments do not match schema: %v", err)
	}

	verdict := model.Verdict(args.Verdict)
	if !verdict.Valid() {
		return nil, model.Errorf(model.KindSchemaViolation, "verdict %q is not one of %v", args.Verdict, model.Verdicts())
	}

	if math.IsNaN(args.Confidence) || math.IsInf(args.Confidence, 0) {
		return nil, model.Errorf(model.KindSchemaViolation, "confidence is not a finite number")
	}
	confidence := args.Confidence
	if confidence < 0 || confidence > 1 {
		confidence = math.Min(1, math.Max(0, confidence))
		p.logger.Warn("clamped out-of-range confidence",
			zap.Float64("reported", args.Confidence),
			zap.Float64("clamped", confidence))
	}

	summary := strings.TrimSpace(args.Summary)
	if summary == "" {
		return nil, model.Errorf(model.KindSchemaViolation, "summary is empty")
	}

	indicators := make([]model.Indicator, 0, len(args.Indicators))
	for i, raw := range args.Indicators {
		kind := model.IndicatorKind(raw.Type)
		if !kind.Valid() {
			return nil, model.Errorf(model.KindSchemaViolation, "indicator %d has unknown type %q", i, raw.Type)
		}
		label := strings.TrimSpace(raw.Label)
		if label == "" {
			return nil, model.Errorf(model.KindSchemaViolation, "indicator %d has an empty label", i)
		}
		indicators = append(indicators, model.Indicator{Label: label, Kind: kind})
	}

	// Count is advisory only
	if n := len(indicators); n < minIndicators || n > maxIndicators {
		p.logger.Info("indicator count outside requested range",
			zap.Int("count", n),
			zap.Int("min", minIndicators),
			zap.Int("max", maxIndicators))
	}

	return &model.ClassificationResult{
		Verdict:    verdict,
		Confidence: confidence,
		Summary:    summary,
		Indicators: indicators,
	}, nil
}

// findToolCall locates the classify_news invocation in the first choice
func findToolCall(resp openai.ChatCompletionResponse) (openai.ToolCall, error) {
	if len(resp.Choices) == 0 {
		return openai.ToolCall{}, model.Errorf(model.KindSchemaViolation, "gateway response has no choices")
	}

	calls := resp.Choices[0].Message.ToolCalls
	if len(calls) == 0 {
		return openai.ToolCall{}, model.Errorf(model.KindSchemaViolation, "gateway response has no tool call")
	}

	for _, call := range calls {
		if call.Function.Name == ClassifyToolName {
			return call, nil
		}
	}

	return openai.ToolCall{}, model.Errorf(model.KindSchemaViolation, "no %s tool call in response (got %q)", ClassifyToolName, calls[0].Function.Name)
}
