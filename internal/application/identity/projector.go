package identity

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/promptdeck/backend/internal/domain/identity"
	"github.com/promptdeck/backend/internal/domain/shared"
)

// TenantProjector maintains the tenant read model.
//
// Created events materialize a fresh view. Updated events require the
// view to exist already; a missing view means the stores have drifted
// and the projection fails with ErrViewModelNotFound rather than
// papering over the gap with an upsert.
type TenantProjector struct {
	views  shared.ViewRepository[identity.TenantView]
	logger *zap.Logger
}

// NewTenantProjector creates a new tenant projector
func NewTenantProjector(views shared.ViewRepository[identity.TenantView], logger *zap.Logger) *TenantProjector {
	return &TenantProjector{views: views, logger: logger}
}

// EventTypes returns the event types this projector handles
func (p *TenantProjector) EventTypes() []string {
	return []string{
		identity.EventTypeTenantCreated,
		identity.EventTypeTenantUpdated,
		identity.EventTypeTenantDeleted,
	}
}

// Handle projects a tenant lifecycle event into the read store
func (p *TenantProjector) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *identity.TenantCreatedEvent:
		return p.views.Save(ctx, identity.NewTenantView(e.Snapshot))
	case *identity.TenantUpdatedEvent:
		view, err := p.views.FindByID(ctx, e.AggregateID())
		if err != nil {
			return err
		}
		if view == nil {
			p.logger.Error("Tenant view missing for update",
				zap.String("tenant_id", e.AggregateID().String()))
			return shared.ErrViewModelNotFound
		}
		view.ApplySnapshot(e.Snapshot)
		return p.views.Save(ctx, view)
	case *identity.TenantDeletedEvent:
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

// UserProjector maintains the user read model
type UserProjector struct {
	views  shared.ViewRepository[identity.UserView]
	logger *zap.Logger
}

// NewUserProjector creates a new user projector
func NewUserProjector(views shared.ViewRepository[identity.UserView], logger *zap.Logger) *UserProjector {
	return &UserProjector{views: views, logger: logger}
}

// EventTypes returns the event types this projector handles
func (p *UserProjector) EventTypes() []string {
	return []string{
		identity.EventTypeUserCreated,
		identity.EventTypeUserUpdated,
		identity.EventTypeUserDeleted,
	}
}

// Handle projects a user lifecycle event into the read store
func (p *UserProjector) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *identity.UserCreatedEvent:
		return p.views.Save(ctx, identity.NewUserView(e.Snapshot))
	case *identity.UserUpdatedEvent:
		view, err := p.views.FindByID(ctx, e.AggregateID())
		if err != nil {
			return err
		}
		if view == nil {
			p.logger.Error("User view missing for update",
				zap.String("user_id", e.AggregateID().String()))
			return shared.ErrViewModelNotFound
		}
		view.ApplySnapshot(e.Snapshot)
		return p.views.Save(ctx, view)
	case *identity.UserDeletedEvent:
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

var (
	_ shared.EventHandler = (*TenantProjector)(nil)
	_ shared.EventHandler = (*UserProjector)(nil)
)
