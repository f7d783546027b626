package featureflag

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/promptdeck/backend/internal/domain/featureflag"
	"github.com/promptdeck/backend/internal/domain/shared"
)

// FeatureProjector maintains the feature flag read model
type FeatureProjector struct {
	views  shared.ViewRepository[featureflag.FeatureView]
	logger *zap.Logger
}

// NewFeatureProjector creates a new feature projector
func NewFeatureProjector(views shared.ViewRepository[featureflag.FeatureView], logger *zap.Logger) *FeatureProjector {
	return &FeatureProjector{views: views, logger: logger}
}

// EventTypes returns the event types this projector handles
func (p *FeatureProjector) EventTypes() []string {
	return []string{
		featureflag.EventTypeFeatureCreated,
		featureflag.EventTypeFeatureUpdated,
		featureflag.EventTypeFeatureDeleted,
	}
}

// Handle projects a feature lifecycle event into the read store
func (p *FeatureProjector) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *featureflag.FeatureCreatedEvent:
		return p.views.Save(ctx, featureflag.NewFeatureView(e.Snapshot))
	case *featureflag.FeatureUpdatedEvent:
		view, err := p.views.FindByID(ctx, e.AggregateID())
		if err != nil {
			return err
		}
		if view == nil {
			p.logger.Error("Feature view missing for update",
				zap.String("feature_id", e.AggregateID().String()))
			return shared.ErrViewModelNotFound
		}
		view.ApplySnapshot(e.Snapshot)
		return p.views.Save(ctx, view)
	case *featureflag.FeatureDeletedEvent:
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

var _ shared.EventHandler = (*FeatureProjector)(nil)
