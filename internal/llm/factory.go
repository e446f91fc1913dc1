package llm

import (
	"fmt"
	"strings"

	"github.com/ppiankov/verdict/internal/model"
	"go.uber.org/zap"
)

// NewClassifier creates a classifier based on configuration
func NewClassifier(config Config, logger *zap.Logger) (Classifier, error) {
	mode := strings.ToLower(strings.TrimSpace(config.Mode))

	switch mode {
	case ModeGateway, "":
		return NewGatewayClassifier(config, logger), nil

	case ModeFixture:
		if config.FixturePath == "" {
			return nil, fmt.Errorf("fixture mode requires a fixture path")
		}
		resp, err := LoadFixture(config.FixturePath)
		if err != nil {
			return nil, err
		}
		return NewFixtureClassifier(resp, logger), nil

	case ModeFailing:
		kind := model.KindUpstreamUnavailable
		if config.FailKind != "" {
			k, err := model.ParseErrorKind(config.FailKind)
			if err != nil {
				return nil, err
			}
			kind = k
		}
		return NewFailingClassifier(kind), nil

	default:
		return nil, fmt.Errorf("unknown classifier mode: %s (supported: gateway, fixture, failing)", config.Mode)
	}
}
