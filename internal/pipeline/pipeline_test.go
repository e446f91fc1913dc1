package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"unicode/utf8"

	"github.com/ppiankov/verdict/internal/llm"
	"github.com/ppiankov/verdict/internal/model"
	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockClassifier implements llm.Classifier for testing
type MockClassifier struct {
	mu       sync.Mutex
	received []string
	result   *model.ClassificationResult
	err      error
}

func (m *MockClassifier) Name() string {
	return "mock"
}

func (m *MockClassifier) Classify(ctx context.Context, req model.AnalysisRequest) (*model.ClassificationResult, error) {
	m.mu.Lock()
	m.received = append(m.received, req.Text)
	m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func (m *MockClassifier) calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.received...)
}

var okResult = &model.ClassificationResult{
	Verdict:    model.VerdictReal,
	Confidence: 0.92,
	Summary:    "Neutral and sourced.",
	Indicators: []model.Indicator{{Label: "Named sources", Kind: model.IndicatorPositive}},
}

func TestPipeline_InvalidInputMakesNoCalls(t *testing.T) {
	mock := &MockClassifier{result: okResult}
	p := NewPipeline(mock, nil)

	for _, raw := range []interface{}{nil, 7.0, true, "", strings.Repeat("n", 19), "  \n" + strings.Repeat("n", 19) + "\t "} {
		result, err := p.Analyze(context.Background(), raw)
		assert.Nil(t, result)

		kind, ok := model.KindOf(err)
		require.True(t, ok)
		assert.Equal(t, model.KindInvalidInput, kind)
		assert.Equal(t, http.StatusBadRequest, kind.Status())
	}

	assert.Empty(t, mock.calls())
}

func TestPipeline_ForwardsTrimmedTruncatedText(t *testing.T) {
	mock := &MockClassifier{result: okResult}
	p := NewPipeline(mock, nil)

	body := strings.Repeat("abcde", 1000)
	_, err := p.Analyze(context.Background(), "\n\n    "+body+"   ")
	require.NoError(t, err)

	calls := mock.calls()
	require.Len(t, calls, 1)
	assert.LessOrEqual(t, utf8.RuneCountInString(calls[0]), 3000)
	assert.Equal(t, body[:3000], calls[0])
}

func TestPipeline_PassesResultThrough(t *testing.T) {
	p := NewPipeline(&MockClassifier{result: okResult}, nil)

	result, err := p.Analyze(context.Background(), "A sufficiently long article text for the classifier.")
	require.NoError(t, err)
	assert.Equal(t, okResult, result)
	assert.Equal(t, "mock", p.ClassifierName())
}

func TestPipeline_MapsUnknownErrors(t *testing.T) {
	p := NewPipeline(&MockClassifier{err: errors.New("socket closed")}, nil)

	result, err := p.Analyze(context.Background(), "A sufficiently long article text for the classifier.")
	assert.Nil(t, result)

	var perr *model.PipelineError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, model.KindUpstreamUnavailable, perr.Kind)
	assert.NotContains(t, perr.Message, "socket")
}

func TestPipeline_KeepsMappedErrors(t *testing.T) {
	p := NewPipeline(&MockClassifier{err: model.NewError(model.KindUpstreamQuotaExceeded, nil)}, nil)

	_, err := p.Analyze(context.Background(), "A sufficiently long article text for the classifier.")
	kind, ok := model.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, model.KindUpstreamQuotaExceeded, kind)
	assert.Equal(t, http.StatusPaymentRequired, kind.Status())
}

func TestAsPipelineError(t *testing.T) {
	assert.Nil(t, AsPipelineError(nil))

	original := model.NewError(model.KindSchemaViolation, errors.New("x"))
	assert.Same(t, original, AsPipelineError(original))

	wrapped := AsPipelineError(errors.New("boom"))
	assert.Equal(t, model.KindUpstreamUnavailable, wrapped.Kind)
	assert.EqualError(t, errors.Unwrap(wrapped), "boom")
}

// The following scenarios drive the live gateway classifier against a fake
// upstream to cover the full path.

func gatewayPipeline(t *testing.T, apiKey string, handler http.HandlerFunc) (*Pipeline, *int32) {
	t.Helper()
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	cfg := llm.DefaultConfig()
	cfg.APIKey = apiKey
	cfg.BaseURL = server.URL
	cfg.Timeout = 5

	classifier, err := llm.NewClassifier(cfg, nil)
	require.NoError(t, err)
	return NewPipeline(classifier, nil), &calls
}

func TestScenario_ShortInput(t *testing.T) {
	p, calls := gatewayPipeline(t, "test-key", func(w http.ResponseWriter, r *http.Request) {})

	_, err := p.Analyze(context.Background(), "nineteen characters")
	var perr *model.PipelineError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, http.StatusBadRequest, perr.Status())
	assert.True(t, strings.HasPrefix(perr.Message, "Please provide at least 20 characters"))
	assert.EqualValues(t, 0, atomic.LoadInt32(calls))
}

func TestScenario_RealReport(t *testing.T) {
	want := model.ClassificationResult{
		Verdict:    model.VerdictReal,
		Confidence: 0.92,
		Summary:    "Neutral tone with named, verifiable sources.",
		Indicators: []model.Indicator{
			{Label: "Peer-reviewed source cited", Kind: model.IndicatorPositive},
			{Label: "Measured language", Kind: model.IndicatorPositive},
			{Label: "Single study", Kind: model.IndicatorNeutral},
		},
	}
	args, err := json.Marshal(want)
	require.NoError(t, err)

	p, calls := gatewayPipeline(t, "test-key", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{{
				Message: openai.ChatCompletionMessage{
					Role: openai.ChatMessageRoleAssistant,
					ToolCalls: []openai.ToolCall{{
						ID:       "call_1",
						Type:     openai.ToolTypeFunction,
						Function: openai.FunctionCall{Name: llm.ClassifyToolName, Arguments: string(args)},
					}},
				},
			}},
		})
	})

	result, err := p.Analyze(context.Background(),
		"The study, published in The Lancet and funded by the national health institute, followed 12,000 participants over eight years.")
	require.NoError(t, err)
	assert.Equal(t, want, *result)
	assert.EqualValues(t, 1, atomic.LoadInt32(calls))
}

func TestScenario_RateLimited(t *testing.T) {
	p, calls := gatewayPipeline(t, "test-key", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": {"message": "Rate limit exceeded", "type": "rate_limit_error"}}`))
	})

	_, err := p.Analyze(context.Background(), "Breaking: officials confirm the new bridge opens next week.")
	var perr *model.PipelineError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, model.KindUpstreamRateLimited, perr.Kind)
	assert.Equal(t, http.StatusTooManyRequests, perr.Status())
	assert.Contains(t, perr.Message, "Rate limit")
	assert.EqualValues(t, 1, atomic.LoadInt32(calls))
}

func TestScenario_Unconfigured(t *testing.T) {
	p, calls := gatewayPipeline(t, "", func(w http.ResponseWriter, r *http.Request) {})

	_, err := p.Analyze(context.Background(), "Breaking: officials confirm the new bridge opens next week.")
	var perr *model.PipelineError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, model.KindUnconfigured, perr.Kind)
	assert.Equal(t, http.StatusInternalServerError, perr.Status())
	assert.Contains(t, perr.Message, "not configured")
	assert.EqualValues(t, 0, atomic.LoadInt32(calls))
}
