// Package command defines the command handler interface and its middleware type.
package command

import "context"

// Command defines a handler for a CQRS command.
type Command[I, R any] interface {
	// Execute processes the command input and returns a result or error.
	Execute(ctx context.Context, input I) (R, error)
}

// WrapFunc defines a middleware function for wrapping command handlers.
type WrapFunc[I, R any] func(Command[I, R]) Command[I, R]

// Func adapts an ordinary function to the Command interface.
type Func[I, R any] func(ctx context.Context, input I) (R, error)

// Execute calls f.
func (f Func[I, R]) Execute(ctx context.Context, input I) (R, error) {
	return f(ctx, input)
}
