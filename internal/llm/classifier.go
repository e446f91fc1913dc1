package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/ppiankov/verdict/internal/model"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// GatewayClassifier classifies through the live model gateway
type GatewayClassifier struct {
	gateway *GatewayClient
	parser  *ResponseParser
	model   string
}

// NewGatewayClassifier creates the live classifier
func NewGatewayClassifier(config Config, logger *zap.Logger) *GatewayClassifier {
	return &GatewayClassifier{
		gateway: NewGatewayClient(config, logger),
		parser:  NewResponseParser(logger),
		model:   config.Model,
	}
}

// Name returns the classifier name
func (c *GatewayClassifier) Name() string {
	return ModeGateway
}

// Classify builds the forced-tool request, calls the gateway once and
// parses the reply.
func (c *GatewayClassifier) Classify(ctx context.Context, req model.AnalysisRequest) (*model.ClassificationResult, error) {
	resp, err := c.gateway.Complete(ctx, BuildRequest(c.model, req))
	if err != nil {
		return nil, err
	}
	return c.parser.Parse(resp)
}

// FixtureClassifier replays a recorded gateway response through the real
// parser. Used for demos and offline tests.
type FixtureClassifier struct {
	response openai.ChatCompletionResponse
	parser   *ResponseParser
}

// NewFixtureClassifier creates a classifier that always replays resp
func NewFixtureClassifier(resp openai.ChatCompletionResponse, logger *zap.Logger) *FixtureClassifier {
	return &FixtureClassifier{
		response: resp,
		parser:   NewResponseParser(logger),
	}
}

// LoadFixture reads a recorded chat completion response from disk
func LoadFixture(path string) (openai.ChatCompletionResponse, error) {
	var resp openai.ChatCompletionResponse

	data, err := os.ReadFile(path)
	if err != nil {
		return resp, fmt.Errorf("read fixture: %w", err)
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return resp, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return resp, nil
}

// Name returns the classifier name
func (c *FixtureClassifier) Name() string {
	return ModeFixture
}

// Classify ignores the text and parses the recorded response
func (c *FixtureClassifier) Classify(ctx context.Context, req model.AnalysisRequest) (*model.ClassificationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, model.NewError(model.KindUpstreamUnavailable, err)
	}
	return c.parser.Parse(c.response)
}

// FailingClassifier always fails with a fixed error kind
type FailingClassifier struct {
	kind model.ErrorKind
}

// NewFailingClassifier creates a stub that fails with kind
func NewFailingClassifier(kind model.ErrorKind) *FailingClassifier {
	return &FailingClassifier{kind: kind}
}

// Name returns the classifier name
func (c *FailingClassifier) Name() string {
	return ModeFailing
}

// Classify always returns the configured error
func (c *FailingClassifier) Classify(ctx context.Context, req model.AnalysisRequest) (*model.ClassificationResult, error) {
	return nil, model.Errorf(c.kind, "failing classifier configured with %s", c.kind)
}
