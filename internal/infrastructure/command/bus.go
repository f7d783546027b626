package command

import (
	"context"
	"fmt"
	"sync"

	"github.com/promptdeck/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// InMemoryCommandBus implements shared.CommandBus with a synchronous
// in-process dispatch table. Exactly one handler per command name.
type InMemoryCommandBus struct {
	mu       sync.RWMutex
	handlers map[string]shared.CommandHandler
	logger   *zap.Logger
}

// NewInMemoryCommandBus creates a new in-memory command bus
func NewInMemoryCommandBus(logger *zap.Logger) *InMemoryCommandBus {
	return &InMemoryCommandBus{
		handlers: make(map[string]shared.CommandHandler),
		logger:   logger,
	}
}

// Register binds a handler to a command name
func (b *InMemoryCommandBus) Register(commandName string, handler shared.CommandHandler) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.handlers[commandName]; exists {
		return fmt.Errorf("command handler already registered for %q", commandName)
	}
	b.handlers[commandName] = handler
	b.logger.Debug("command handler registered", zap.String("command", commandName))
	return nil
}

// Execute dispatches a command to its registered handler.
// Handler errors are returned to the caller unchanged.
func (b *InMemoryCommandBus) Execute(ctx context.Context, cmd shared.Command) (any, error) {
	b.mu.RLock()
	handler, ok := b.handlers[cmd.CommandName()]
	b.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("no handler registered for command %q", cmd.CommandName())
	}

	result, err := handler.Handle(ctx, cmd)
	if err != nil {
		b.logger.Debug("command failed",
			zap.String("command", cmd.CommandName()),
			zap.Error(err),
		)
		return nil, err
	}
	return result, nil
}

var _ shared.CommandBus = (*InMemoryCommandBus)(nil)

// InMemoryQueryBus implements shared.QueryBus. Queries only touch the
// read store, so the bus is a plain dispatch table like the command bus.
type InMemoryQueryBus struct {
	mu       sync.RWMutex
	handlers map[string]shared.QueryHandler
	logger   *zap.Logger
}

// NewInMemoryQueryBus creates a new in-memory query bus
func NewInMemoryQueryBus(logger *zap.Logger) *InMemoryQueryBus {
	return &InMemoryQueryBus{
		handlers: make(map[string]shared.QueryHandler),
		logger:   logger,
	}
}

// Register binds a handler to a query name
func (b *InMemoryQueryBus) Register(queryName string, handler shared.QueryHandler) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.handlers[queryName]; exists {
		return fmt.Errorf("query handler already registered for %q", queryName)
	}
	b.handlers[queryName] = handler
	b.logger.Debug("query handler registered", zap.String("query", queryName))
	return nil
}

// Execute dispatches a query to its registered handler
func (b *InMemoryQueryBus) Execute(ctx context.Context, q shared.Query) (any, error) {
	b.mu.RLock()
	handler, ok := b.handlers[q.QueryName()]
	b.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("no handler registered for query %q", q.QueryName())
	}

	return handler.Handle(ctx, q)
}

var _ shared.QueryBus = (*InMemoryQueryBus)(nil)
