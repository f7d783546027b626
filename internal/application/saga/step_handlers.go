package saga

import (
	"context"

	"github.com/promptdeck/backend/internal/domain/saga"
)

// PassthroughHandler is a StepHandler that performs no external work
// and echoes the step payload as the result. It backs deployments
// where sagas are driven purely through the API and callers inspect
// the recorded trail, and it is the fallback when no domain handler
// is registered for the server.
type PassthroughHandler struct{}

// NewPassthroughHandler creates a new PassthroughHandler
func NewPassthroughHandler() *PassthroughHandler {
	return &PassthroughHandler{}
}

// Execute returns the step payload unchanged, honoring context
// cancellation
func (h *PassthroughHandler) Execute(ctx context.Context, step *saga.Step) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if step.Payload == "" {
		return "{}", nil
	}
	return step.Payload, nil
}

var _ StepHandler = (*PassthroughHandler)(nil)
