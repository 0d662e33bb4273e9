package hooks

import (
	"context"

	"github.com/rise-and-shine/wrapcall"
)

// Effect adapts a side-effect-only function into a hook returning the zero R.
func Effect[R any](fn func(ctx context.Context, args wrapcall.Args) error) wrapcall.Hook[R] {
	return func(ctx context.Context, args wrapcall.Args) (R, error) {
		var zero R
		return zero, fn(ctx, args)
	}
}

// Constant returns a hook that always yields v.
func Constant[R any](v R) wrapcall.Hook[R] {
	return func(context.Context, wrapcall.Args) (R, error) {
		return v, nil
	}
}

// Gate returns deny when allow reports false and the zero R otherwise.
// Combined with wrapcall.StopOn(deny) it blocks the wrapped function.
func Gate[R any](allow func(ctx context.Context, args wrapcall.Args) bool, deny R) wrapcall.Hook[R] {
	return func(ctx context.Context, args wrapcall.Args) (R, error) {
		if allow(ctx, args) {
			var zero R
			return zero, nil
		}
		return deny, nil
	}
}
