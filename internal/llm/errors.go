package llm

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/ppiankov/verdict/internal/model"
	"github.com/sashabaranov/go-openai"
)

// mapGatewayError translates a go-openai failure into the stable taxonomy.
// 429 and 402 keep their meaning; everything else is UpstreamUnavailable.
func mapGatewayError(err error) *model.PipelineError {
	var perr *model.PipelineError
	if errors.As(err, &perr) {
		return perr
	}

	switch upstreamStatus(err) {
	case http.StatusTooManyRequests:
		return model.NewError(model.KindUpstreamRateLimited, err)
	case http.StatusPaymentRequired:
		return model.NewError(model.KindUpstreamQuotaExceeded, err)
	default:
		return model.NewError(model.KindUpstreamUnavailable, fmt.Errorf("gateway: %w", err))
	}
}

// upstreamStatus extracts the HTTP status from a go-openai error, or 0 for
// transport failures.
func upstreamStatus(err error) int {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}

	return 0
}
