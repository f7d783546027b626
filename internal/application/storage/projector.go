package storage

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/promptdeck/backend/internal/domain/shared"
	"github.com/promptdeck/backend/internal/domain/storage"
)

// FileProjector maintains the stored file read model
type FileProjector struct {
	views  shared.ViewRepository[storage.FileView]
	logger *zap.Logger
}

// NewFileProjector creates a new file projector
func NewFileProjector(views shared.ViewRepository[storage.FileView], logger *zap.Logger) *FileProjector {
	return &FileProjector{views: views, logger: logger}
}

// EventTypes returns the event types this projector handles
func (p *FileProjector) EventTypes() []string {
	return []string{
		storage.EventTypeFileCreated,
		storage.EventTypeFileUpdated,
		storage.EventTypeFileDeleted,
	}
}

// Handle projects a file lifecycle event into the read store
func (p *FileProjector) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *storage.FileCreatedEvent:
		return p.views.Save(ctx, storage.NewFileView(e.Snapshot))
	case *storage.FileUpdatedEvent:
		view, err := p.views.FindByID(ctx, e.AggregateID())
		if err != nil {
			return err
		}
		if view == nil {
			p.logger.Error("File view missing for update",
				zap.String("file_id", e.AggregateID().String()))
			return shared.ErrViewModelNotFound
		}
		view.ApplySnapshot(e.Snapshot)
		return p.views.Save(ctx, view)
	case *storage.FileDeletedEvent:
		view, err := p.views.FindByID(ctx, e.AggregateID())
		if err != nil {
			return err
		}
		if view == nil {
			return shared.ErrViewModelNotFound
		}
		return p.views.Delete(ctx, e.AggregateID())
	default:
		return fmt.Errorf("unexpected event type %q", event.EventType())
	}
}

var _ shared.EventHandler = (*FileProjector)(nil)
