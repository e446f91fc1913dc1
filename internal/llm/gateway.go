package llm

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/ppiankov/verdict/internal/model"
	"github.com/ppiankov/verdict/internal/util"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// GatewayClient performs the single outbound chat completion call
type GatewayClient struct {
	client *openai.Client
	config Config
	logger *zap.Logger
}

// NewGatewayClient creates a gateway client. A missing API key is not an
// error here; it is reported per call so the service can still start.
func NewGatewayClient(config Config, logger *zap.Logger) *GatewayClient {
	if logger == nil {
		logger = zap.NewNop()
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	clientConfig.BaseURL = strings.TrimSuffix(baseURL, "/")
	clientConfig.HTTPClient = &http.Client{
		Transport: &http.Transport{
			Proxy: util.NewProxyFunc(config.HTTPProxy, config.HTTPSProxy, config.NoProxy),
		},
	}

	return &GatewayClient{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
		logger: logger,
	}
}

// Configured reports whether an API key is present
func (g *GatewayClient) Configured() bool {
	return g.config.APIKey != ""
}

// Complete sends req to the gateway exactly once. Failures are returned as
// *model.PipelineError; nothing is retried.
func (g *GatewayClient) Complete(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	if !g.Configured() {
		return openai.ChatCompletionResponse{}, model.Errorf(model.KindUnconfigured, "gateway API key is not set")
	}

	timeout := time.Duration(g.config.Timeout) * time.Second
	if timeout <= 0 {
		timeout = defaultTimeoutSeconds * time.Second
	}
	ctxWithTimeout, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	resp, err := g.client.CreateChatCompletion(ctxWithTimeout, req)
	if err != nil {
		perr := mapGatewayError(err)
		g.logger.Warn("gateway call failed",
			zap.String("kind", string(perr.Kind)),
			zap.Int("upstream_status", upstreamStatus(err)),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return openai.ChatCompletionResponse{}, perr
	}

	g.logger.Debug("gateway call completed",
		zap.String("model", resp.Model),
		zap.Int("tokens", resp.Usage.TotalTokens),
		zap.Duration("elapsed", time.Since(start)))

	return resp, nil
}
