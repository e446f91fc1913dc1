package pipeline

import (
	"errors"

	"github.com/ppiankov/verdict/internal/model"
)

// AsPipelineError returns err as a *model.PipelineError. Anything not
// already mapped is reported as UpstreamUnavailable so no error reaches a
// caller unmapped.
func AsPipelineError(err error) *model.PipelineError {
	if err == nil {
		return nil
	}
	var perr *model.PipelineError
	if errors.As(err, &perr) {
		return perr
	}
	return model.NewError(model.KindUpstreamUnavailable, err)
}
