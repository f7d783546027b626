package shared

import "context"

// Command is the marker interface for write-side messages
type Command interface {
	// CommandName returns the command name used for routing and logging
	CommandName() string
}

// CommandHandler handles one command type
type CommandHandler interface {
	Handle(ctx context.Context, cmd Command) (any, error)
}

// CommandHandlerFunc adapts a function to the CommandHandler interface
type CommandHandlerFunc func(ctx context.Context, cmd Command) (any, error)

// Handle calls the wrapped function
func (f CommandHandlerFunc) Handle(ctx context.Context, cmd Command) (any, error) {
	return f(ctx, cmd)
}

// CommandBus routes each command to exactly one registered handler
type CommandBus interface {
	Register(commandName string, handler CommandHandler) error
	Execute(ctx context.Context, cmd Command) (any, error)
}

// Query is the marker interface for read-side messages
type Query interface {
	// QueryName returns the query name used for routing
	QueryName() string
}

// QueryHandler handles one query type
type QueryHandler interface {
	Handle(ctx context.Context, query Query) (any, error)
}

// QueryHandlerFunc adapts a function to the QueryHandler interface
type QueryHandlerFunc func(ctx context.Context, query Query) (any, error)

// Handle calls the wrapped function
func (f QueryHandlerFunc) Handle(ctx context.Context, query Query) (any, error) {
	return f(ctx, query)
}

// QueryBus routes each query to exactly one registered handler
type QueryBus interface {
	Register(queryName string, handler QueryHandler) error
	Execute(ctx context.Context, query Query) (any, error)
}
