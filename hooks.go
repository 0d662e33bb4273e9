package wrapcall

import (
	"context"
	"iter"
	"slices"

	"github.com/samber/lo"
)

// Hook is an auxiliary call run around a wrapped function.
// It receives the fixed arguments bound at composition time.
type Hook[R any] func(ctx context.Context, args Args) (R, error)

// NormalizeHooks turns a hook source into an ordered hook sequence.
//
// Accepted sources are nil (no hooks), a single Hook[R] or plain
// func(context.Context, Args) (R, error), a slice of either, or an
// iter.Seq[Hook[R]]. Nil members are dropped. Any other value yields an
// empty sequence: malformed configuration degrades to "no hooks" instead of
// failing. Use ParseHooks to reject it.
func NormalizeHooks[R any](src any) []Hook[R] {
	hooks, _ := parseHooks[R](src)
	return hooks
}

// ParseHooks is the strict form of NormalizeHooks. It returns an error with
// code CodeInvalidHooks for sources NormalizeHooks would silently ignore.
func ParseHooks[R any](src any) ([]Hook[R], error) {
	hooks, ok := parseHooks[R](src)
	if !ok {
		return nil, invalidHooksError("hook", src)
	}
	return hooks, nil
}

func parseHooks[R any](src any) ([]Hook[R], bool) {
	switch v := src.(type) {
	case nil:
		return nil, true
	case Hook[R]:
		return compactHooks([]Hook[R]{v}), true
	case func(context.Context, Args) (R, error):
		return compactHooks([]Hook[R]{v}), true
	case []Hook[R]:
		return compactHooks(v), true
	case []func(context.Context, Args) (R, error):
		return compactHooks(lo.Map(v, func(h func(context.Context, Args) (R, error), _ int) Hook[R] {
			return h
		})), true
	case iter.Seq[Hook[R]]:
		if v == nil {
			return nil, true
		}
		return compactHooks(slices.Collect(v)), true
	default:
		return nil, false
	}
}

// parseHook resolves a source that must be a single hook.
func parseHook[R any](src any) (Hook[R], bool) {
	switch v := src.(type) {
	case nil:
		return nil, true
	case Hook[R]:
		return v, true
	case func(context.Context, Args) (R, error):
		return v, true
	default:
		return nil, false
	}
}

func compactHooks[R any](hooks []Hook[R]) []Hook[R] {
	return lo.Filter(hooks, func(h Hook[R], _ int) bool {
		return h != nil
	})
}

// Bind returns a hook that calls h with extra prepended to the positional
// fixed arguments. Other hooks of the same wrapper are unaffected.
func Bind[R any](h Hook[R], extra ...any) Hook[R] {
	if h == nil || len(extra) == 0 {
		return h
	}
	return func(ctx context.Context, args Args) (R, error) {
		return h(ctx, args.Prepend(extra...))
	}
}
