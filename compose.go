package wrapcall

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/rise-and-shine/wrapcall/meta"
	"github.com/rise-and-shine/wrapcall/observability/tracing"
)

type (
	// Func is the function being wrapped. It receives only the caller's input.
	Func[I, R any] func(ctx context.Context, input I) (R, error)

	// WrapFunc turns a Func into its wrapped version.
	WrapFunc[I, R any] func(Func[I, R]) Func[I, R]

	// Filter reports whether a hook result should end the call early.
	Filter[R any] func(result R) bool

	// Reducer combines two results into one.
	Reducer[R any] func(acc, next R) (R, error)
)

// Phase names the slot of the call sequence a hook runs in.
type Phase string

const (
	PhaseBefore       Phase = "before"
	PhaseSharedBefore Phase = "shared_before"
	PhaseSharedAfter  Phase = "shared_after"
	PhaseAfter        Phase = "after"
)

type step[R any] struct {
	phase Phase
	hook  Hook[R]
	args  Args
}

type composer[I, R any] struct {
	name    string
	pre     []step[R]
	post    []step[R]
	filter  Filter[R]
	reducer Reducer[R]
}

// Compose builds a WrapFunc from opts.
//
// For every call of the wrapped function the steps run strictly in this order:
//
//  1. before hooks, in insertion order
//  2. the shared hook
//  3. the wrapped function, with the caller's context and input
//  4. the shared hook again
//  5. after hooks, in insertion order
//
// Each hook result is checked with the return filter, when one is set; a
// match is returned at once and nothing after it runs. The wrapped function's
// own result is never filtered. Results that did not stop the call are
// collected in order. With a reducer the collected results are folded left to
// right and the fold is returned; otherwise the wrapped function's result is.
//
// Errors from hooks, the wrapped function or the reducer are returned as is.
// Compose fails only with WithStrictHooks and an unusable hook source.
func Compose[I, R any](opts ...Option[R]) (WrapFunc[I, R], error) {
	o := defaultOptions[R]()
	for _, opt := range opts {
		opt(o)
	}

	c, err := newComposer[I, R](o)
	if err != nil {
		return nil, err
	}
	return c.wrap, nil
}

// MustCompose is like Compose but panics on error.
func MustCompose[I, R any](opts ...Option[R]) WrapFunc[I, R] {
	wrap, err := Compose[I, R](opts...)
	if err != nil {
		panic(err)
	}
	return wrap
}

// WrapWithCalls composes a wrapper around the shared hook, which runs both
// before and after the wrapped function. A nil or non-hook shared value
// leaves only the hooks given in opts.
//
// It panics only when WithStrictHooks is set and a hook source is unusable.
func WrapWithCalls[I, R any](shared any, opts ...Option[R]) WrapFunc[I, R] {
	all := make([]Option[R], 0, len(opts)+1)
	all = append(all, WithShared[R](shared))
	all = append(all, opts...)
	return MustCompose[I, R](all...)
}

func newComposer[I, R any](o *options[R]) (*composer[I, R], error) {
	before, err := o.resolveHooks("before", o.before)
	if err != nil {
		return nil, err
	}
	after, err := o.resolveHooks("after", o.after)
	if err != nil {
		return nil, err
	}
	shared, err := o.resolveShared()
	if err != nil {
		return nil, err
	}

	sharedArgs := o.args
	if o.sharedArgs != nil {
		sharedArgs = *o.sharedArgs
	}

	c := &composer[I, R]{
		name:    o.name,
		filter:  o.filter,
		reducer: o.reducer,
	}
	for _, h := range before {
		c.pre = append(c.pre, step[R]{phase: PhaseBefore, hook: h, args: o.args})
	}
	if shared != nil {
		c.pre = append(c.pre, step[R]{phase: PhaseSharedBefore, hook: shared, args: sharedArgs})
		c.post = append(c.post, step[R]{phase: PhaseSharedAfter, hook: shared, args: sharedArgs})
	}
	for _, h := range after {
		c.post = append(c.post, step[R]{phase: PhaseAfter, hook: h, args: o.args})
	}
	return c, nil
}

func (o *options[R]) resolveHooks(slot string, sources []any) ([]Hook[R], error) {
	var hooks []Hook[R]
	for _, src := range sources {
		parsed, ok := parseHooks[R](src)
		if !ok {
			if o.strict {
				return nil, invalidHooksError(slot, src)
			}
			o.ignored(slot, src)
		}
		hooks = append(hooks, parsed...)
	}
	return hooks, nil
}

func (o *options[R]) resolveShared() (Hook[R], error) {
	h, ok := parseHook[R](o.shared)
	if !ok {
		if o.strict {
			return nil, invalidHooksError("shared", o.shared)
		}
		o.ignored("shared", o.shared)
	}
	return h, nil
}

func (o *options[R]) ignored(slot string, src any) {
	o.logger.
		Named("wrapcall").
		With("wrapper_name", o.name, "slot", slot, "source_type", fmt.Sprintf("%T", src)).
		Debug("ignoring unsupported hook source")
}

func (c *composer[I, R]) wrap(next Func[I, R]) Func[I, R] {
	if next == nil {
		return func(context.Context, I) (R, error) {
			var zero R
			return zero, ErrNilTarget
		}
	}

	// Nothing to interleave: calling next directly keeps the wrapper transparent.
	if len(c.pre) == 0 && len(c.post) == 0 && c.reducer == nil {
		return next
	}

	return func(ctx context.Context, input I) (R, error) {
		var zero R

		hookCtx := meta.InjectMetaToContext(ctx, map[meta.ContextKey]string{
			meta.TraceID:     traceID(ctx),
			meta.CallID:      uuid.NewString(),
			meta.WrapperName: c.name,
		})
		results := make([]R, 0, len(c.pre)+len(c.post)+1)

		for _, s := range c.pre {
			res, stop, err := c.run(hookCtx, s)
			if err != nil {
				return zero, err
			}
			if stop {
				return res, nil
			}
			results = append(results, res)
		}

		out, err := next(ctx, input)
		if err != nil {
			return zero, err
		}
		results = append(results, out)

		for _, s := range c.post {
			res, stop, err := c.run(hookCtx, s)
			if err != nil {
				return zero, err
			}
			if stop {
				return res, nil
			}
			results = append(results, res)
		}

		if c.reducer == nil {
			return out, nil
		}
		return c.reduce(results)
	}
}

// traceID keeps a trace id already carried by ctx and otherwise starts one.
func traceID(ctx context.Context) string {
	if id := meta.Find(ctx, meta.TraceID); id != "" {
		return id
	}
	return tracing.GetStartingTraceID(ctx)
}

// run invokes one hook and reports whether its result ends the call.
func (c *composer[I, R]) run(ctx context.Context, s step[R]) (R, bool, error) {
	// Each hook gets its own copy so writes to it never reach other hooks or calls.
	res, err := s.hook(meta.With(ctx, meta.Phase, string(s.phase)), s.args.Clone())
	if err != nil {
		return res, false, err
	}
	return res, c.filter != nil && c.filter(res), nil
}

// reduce folds results left to right. results always holds the wrapped
// function's result, so it is never empty.
func (c *composer[I, R]) reduce(results []R) (R, error) {
	acc := results[0]
	for _, next := range results[1:] {
		var err error
		acc, err = c.reducer(acc, next)
		if err != nil {
			var zero R
			return zero, err
		}
	}
	return acc, nil
}
