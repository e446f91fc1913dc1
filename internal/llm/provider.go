package llm

import (
	"context"

	"github.com/ppiankov/verdict/internal/model"
)

// Classifier turns validated article text into a credibility verdict
type Classifier interface {
	// Name returns the classifier variant name
	Name() string

	// Classify performs exactly one classification. Errors are always
	// *model.PipelineError values.
	Classify(ctx context.Context, req model.AnalysisRequest) (*model.ClassificationResult, error)
}

// Classifier variants selectable through Config.Mode
const (
	ModeGateway = "gateway"
	ModeFixture = "fixture"
	ModeFailing = "failing"
)

const (
	// DefaultBaseURL is the OpenAI-compatible gateway root
	DefaultBaseURL = "https://ai.gateway.lovable.dev/v1"

	// DefaultModel is the model identifier requested from the gateway
	DefaultModel = "google/gemini-3-flash-preview"

	defaultTimeoutSeconds = 30
)

// Config holds classifier configuration
type Config struct {
	// Mode selects the classifier variant: "gateway", "fixture", "failing"
	Mode string

	// Model name requested from the gateway
	Model string

	// APIKey authenticates the gateway call. Empty makes every gateway
	// classification fail with KindUnconfigured before any network activity.
	APIKey string

	// BaseURL of the OpenAI-compatible gateway
	BaseURL string

	// Timeout for the outbound call
	Timeout int // seconds

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string

	// FixturePath is a recorded chat completion response (fixture mode)
	FixturePath string

	// FailKind is the error kind returned by the failing stub
	FailKind string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Mode:    ModeGateway,
		Model:   DefaultModel,
		BaseURL: DefaultBaseURL,
		Timeout: defaultTimeoutSeconds,
	}
}

// ConfigFromModel converts model.GatewayConfig to llm.Config
func ConfigFromModel(gw model.GatewayConfig) Config {
	return Config{
		Mode:        gw.Mode,
		Model:       gw.Model,
		APIKey:      gw.APIKey,
		BaseURL:     gw.BaseURL,
		Timeout:     gw.Timeout,
		HTTPProxy:   gw.HTTPProxy,
		HTTPSProxy:  gw.HTTPSProxy,
		NoProxy:     gw.NoProxy,
		FixturePath: gw.FixturePath,
		FailKind:    gw.FailKind,
	}
}
