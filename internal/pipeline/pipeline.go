package pipeline

import (
	"context"
	"time"

	"github.com/ppiankov/verdict/internal/llm"
	"github.com/ppiankov/verdict/internal/model"
	"github.com/ppiankov/verdict/internal/validate"
	"go.uber.org/zap"
)

// Pipeline orchestrates one classification: validate, classify, return.
// It holds no per-request state and is safe for concurrent use.
type Pipeline struct {
	validator  *validate.RequestValidator
	classifier llm.Classifier
	logger     *zap.Logger
}

// NewPipeline creates a pipeline around a classifier
func NewPipeline(classifier llm.Classifier, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		validator:  validate.NewRequestValidator(),
		classifier: classifier,
		logger:     logger,
	}
}

// ClassifierName returns the name of the underlying classifier
func (p *Pipeline) ClassifierName() string {
	return p.classifier.Name()
}

// Analyze validates raw (the decoded "text" value of a request) and
// classifies it. The result is either a complete ClassificationResult or a
// *model.PipelineError, never both.
func (p *Pipeline) Analyze(ctx context.Context, raw interface{}) (*model.ClassificationResult, error) {
	req, err := p.validator.Validate(raw)
	if err != nil {
		return nil, AsPipelineError(err)
	}

	start := time.Now()
	result, err := p.classifier.Classify(ctx, req)
	if err != nil {
		perr := AsPipelineError(err)
		if perr.Kind.Internal() {
			p.logger.Error("classification failed",
				zap.String("classifier", p.classifier.Name()),
				zap.String("kind", string(perr.Kind)),
				zap.Error(perr.Err))
		}
		return nil, perr
	}

	p.logger.Info("classification completed",
		zap.String("classifier", p.classifier.Name()),
		zap.String("verdict", string(result.Verdict)),
		zap.Float64("confidence", result.Confidence),
		zap.Int("indicators", len(result.Indicators)),
		zap.Int("chars", len([]rune(req.Text))),
		zap.Duration("elapsed", time.Since(start)))

	return result, nil
}
