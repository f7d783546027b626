package saga

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/promptdeck/backend/internal/domain/saga"
	"github.com/promptdeck/backend/internal/domain/shared"
)

// SagaLogCreateCommandName routes saga log creation on the command bus
const SagaLogCreateCommandName = "saga.log.create"

// SagaLogCreateCommand creates one append-only saga log entry.
//
// Log projectors dispatch this command instead of writing the read
// store directly, so saga logs run through the same command pipeline
// as every other aggregate and are themselves event-sourced.
type SagaLogCreateCommand struct {
	TenantID       uuid.UUID
	SagaInstanceID uuid.UUID
	SagaStepID     uuid.UUID // zero value means instance-level
	LogType        saga.LogType
	Message        string
}

// CommandName returns the routing name of the command
func (SagaLogCreateCommand) CommandName() string {
	return SagaLogCreateCommandName
}

// LogCommandHandler handles SagaLogCreateCommand through the full
// pipeline: aggregate construction, write-store save, event publish.
type LogCommandHandler struct {
	logRepo  saga.LogRepository
	eventBus shared.EventPublisher
	logger   *zap.Logger
}

// NewLogCommandHandler creates a new saga log command handler
func NewLogCommandHandler(logRepo saga.LogRepository, eventBus shared.EventPublisher, logger *zap.Logger) *LogCommandHandler {
	return &LogCommandHandler{
		logRepo:  logRepo,
		eventBus: eventBus,
		logger:   logger,
	}
}

// Handle creates and persists the log entry, then publishes its event
func (h *LogCommandHandler) Handle(ctx context.Context, cmd shared.Command) (any, error) {
	c, ok := cmd.(SagaLogCreateCommand)
	if !ok {
		return nil, fmt.Errorf("unexpected command type %q", cmd.CommandName())
	}

	entry, err := saga.NewLog(c.TenantID, c.SagaInstanceID, c.SagaStepID, c.LogType, c.Message)
	if err != nil {
		return nil, err
	}

	if err := h.logRepo.Save(ctx, c.TenantID, entry); err != nil {
		h.logger.Error("Failed to persist saga log", zap.Error(err))
		return nil, err
	}
	if err := h.eventBus.Publish(ctx, entry.GetDomainEvents()...); err != nil {
		return nil, err
	}
	entry.ClearDomainEvents()

	return entry.ToSnapshot(), nil
}

// Register wires the handler onto the command bus
func (h *LogCommandHandler) Register(bus shared.CommandBus) error {
	return bus.Register(SagaLogCreateCommandName, h)
}

var _ shared.CommandHandler = (*LogCommandHandler)(nil)
