package wrapper

import (
	"context"

	"github.com/rise-and-shine/wrapcall"
	"github.com/rise-and-shine/wrapcall/cqrs/command"
)

// CallsCommandWrapper runs a command inside a composed wrapcall wrapper.
type CallsCommandWrapper[I, R any] struct {
	wrapped wrapcall.Func[I, R]
}

// NewCallsCommandWrapper returns a command.WrapFunc applying wrap to the next
// command in the chain. Hooks, short-circuiting and reduction behave exactly
// as they do for plain functions.
func NewCallsCommandWrapper[I, R any](wrap wrapcall.WrapFunc[I, R]) command.WrapFunc[I, R] {
	return func(next command.Command[I, R]) command.Command[I, R] {
		return &CallsCommandWrapper[I, R]{
			wrapped: wrap(next.Execute),
		}
	}
}

func (cmd *CallsCommandWrapper[I, R]) Execute(ctx context.Context, input I) (R, error) {
	return cmd.wrapped(ctx, input)
}

// Chain applies wrappers so that the first one is the outermost.
func Chain[I, R any](cmd command.Command[I, R], wrappers ...command.WrapFunc[I, R]) command.Command[I, R] {
	for i := len(wrappers) - 1; i >= 0; i-- {
		cmd = wrappers[i](cmd)
	}
	return cmd
}
