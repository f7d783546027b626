package command

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/promptdeck/backend/internal/domain/shared"
)

type testCommand struct {
	name string
}

func (c testCommand) CommandName() string { return c.name }

type testQuery struct {
	name string
}

func (q testQuery) QueryName() string { return q.name }

func TestInMemoryCommandBus_Execute(t *testing.T) {
	bus := NewInMemoryCommandBus(zap.NewNop())

	var received shared.Command
	handler := shared.CommandHandlerFunc(func(ctx context.Context, cmd shared.Command) (any, error) {
		received = cmd
		return "done", nil
	})
	require.NoError(t, bus.Register("test.command", handler))

	cmd := testCommand{name: "test.command"}
	result, err := bus.Execute(context.Background(), cmd)

	require.NoError(t, err)
	assert.Equal(t, "done", result)
	assert.Equal(t, cmd, received)
}

func TestInMemoryCommandBus_Execute_UnknownCommand(t *testing.T) {
	bus := NewInMemoryCommandBus(zap.NewNop())

	_, err := bus.Execute(context.Background(), testCommand{name: "missing.command"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no handler registered")
	assert.Contains(t, err.Error(), "missing.command")
}

func TestInMemoryCommandBus_Execute_HandlerErrorPropagates(t *testing.T) {
	bus := NewInMemoryCommandBus(zap.NewNop())

	handlerErr := errors.New("precondition failed")
	handler := shared.CommandHandlerFunc(func(ctx context.Context, cmd shared.Command) (any, error) {
		return nil, handlerErr
	})
	require.NoError(t, bus.Register("test.command", handler))

	result, err := bus.Execute(context.Background(), testCommand{name: "test.command"})

	require.Error(t, err)
	assert.Equal(t, handlerErr, err)
	assert.Nil(t, result)
}

func TestInMemoryCommandBus_Register_Duplicate(t *testing.T) {
	bus := NewInMemoryCommandBus(zap.NewNop())

	handler := shared.CommandHandlerFunc(func(ctx context.Context, cmd shared.Command) (any, error) {
		return nil, nil
	})
	require.NoError(t, bus.Register("test.command", handler))

	err := bus.Register("test.command", handler)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestInMemoryQueryBus_Execute(t *testing.T) {
	bus := NewInMemoryQueryBus(zap.NewNop())

	handler := shared.QueryHandlerFunc(func(ctx context.Context, q shared.Query) (any, error) {
		return 42, nil
	})
	require.NoError(t, bus.Register("test.query", handler))

	result, err := bus.Execute(context.Background(), testQuery{name: "test.query"})

	require.NoError(t, err)
	assert.Equal(t, 42, result)
}

func TestInMemoryQueryBus_Execute_UnknownQuery(t *testing.T) {
	bus := NewInMemoryQueryBus(zap.NewNop())

	_, err := bus.Execute(context.Background(), testQuery{name: "missing.query"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no handler registered")
}

func TestInMemoryQueryBus_Register_Duplicate(t *testing.T) {
	bus := NewInMemoryQueryBus(zap.NewNop())

	handler := shared.QueryHandlerFunc(func(ctx context.Context, q shared.Query) (any, error) {
		return nil, nil
	})
	require.NoError(t, bus.Register("test.query", handler))

	err := bus.Register("test.query", handler)
	require.Error(t, err)
}
