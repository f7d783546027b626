package saga

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/promptdeck/backend/internal/domain/saga"
	"github.com/promptdeck/backend/internal/domain/shared"
)

// Query routing names for the saga read side
const (
	ListInstancesQueryName = "saga.instance.list"
	ListLogsQueryName      = "saga.log.list"
)

// ListInstancesQuery requests a page of saga instance views
type ListInstancesQuery struct {
	TenantID uuid.UUID
	Criteria shared.Criteria
}

// QueryName returns the routing name of the query
func (ListInstancesQuery) QueryName() string {
	return ListInstancesQueryName
}

// ListLogsQuery requests a page of one instance's audit trail
type ListLogsQuery struct {
	TenantID   uuid.UUID
	InstanceID uuid.UUID
	Criteria   shared.Criteria
}

// QueryName returns the routing name of the query
func (ListLogsQuery) QueryName() string {
	return ListLogsQueryName
}

// RegisterQueryHandlers binds the saga read use cases to the query bus.
// Handlers delegate to the instance service.
func RegisterQueryHandlers(bus shared.QueryBus, service *InstanceService) error {
	err := bus.Register(ListInstancesQueryName, shared.QueryHandlerFunc(
		func(ctx context.Context, q shared.Query) (any, error) {
			query, ok := q.(ListInstancesQuery)
			if !ok {
				return nil, fmt.Errorf("unexpected query type %q", q.QueryName())
			}
			return service.List(ctx, query.TenantID, query.Criteria)
		}))
	if err != nil {
		return err
	}

	return bus.Register(ListLogsQueryName, shared.QueryHandlerFunc(
		func(ctx context.Context, q shared.Query) (any, error) {
			query, ok := q.(ListLogsQuery)
			if !ok {
				return nil, fmt.Errorf("unexpected query type %q", q.QueryName())
			}
			return service.ListLogs(ctx, query.TenantID, query.InstanceID, query.Criteria)
		}))
}

// instancePage narrows a query bus result back to its typed page
func instancePage(result any) (shared.Paginated[saga.InstanceView], error) {
	page, ok := result.(shared.Paginated[saga.InstanceView])
	if !ok {
		return shared.Paginated[saga.InstanceView]{}, fmt.Errorf("unexpected query result type %T", result)
	}
	return page, nil
}

// logPage narrows a query bus result back to its typed page
func logPage(result any) (shared.Paginated[saga.LogView], error) {
	page, ok := result.(shared.Paginated[saga.LogView])
	if !ok {
		return shared.Paginated[saga.LogView]{}, fmt.Errorf("unexpected query result type %T", result)
	}
	return page, nil
}

// InstancePage executes a ListInstancesQuery and narrows the result
func InstancePage(ctx context.Context, bus shared.QueryBus, q ListInstancesQuery) (shared.Paginated[saga.InstanceView], error) {
	result, err := bus.Execute(ctx, q)
	if err != nil {
		return shared.Paginated[saga.InstanceView]{}, err
	}
	return instancePage(result)
}

// LogPage executes a ListLogsQuery and narrows the result
func LogPage(ctx context.Context, bus shared.QueryBus, q ListLogsQuery) (shared.Paginated[saga.LogView], error) {
	result, err := bus.Execute(ctx, q)
	if err != nil {
		return shared.Paginated[saga.LogView]{}, err
	}
	return logPage(result)
}
