package wrapcall_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/code19m/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rise-and-shine/wrapcall"
	"github.com/rise-and-shine/wrapcall/meta"
)

// recorder collects the order in which hooks and targets run.
type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) add(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, name)
}

func (r *recorder) hook(name string, result string) wrapcall.Hook[string] {
	return func(context.Context, wrapcall.Args) (string, error) {
		r.add(name)
		return result, nil
	}
}

func (r *recorder) target(result string) wrapcall.Func[string, string] {
	return func(_ context.Context, _ string) (string, error) {
		r.add("target")
		return result, nil
	}
}

func TestComposeTransparent(t *testing.T) {
	target := func(_ context.Context, in int) (int, error) {
		return in * 2, nil
	}

	wrap, err := wrapcall.Compose[int, int]()
	require.NoError(t, err)

	got, err := wrap(target)(t.Context(), 21)
	require.NoError(t, err)

	want, _ := target(t.Context(), 21)
	assert.Equal(t, want, got)
}

func TestComposeOrder(t *testing.T) {
	rec := &recorder{}
	shared := rec.hook("shared", "s")

	wrap := wrapcall.MustCompose[string, string](
		wrapcall.WithBefore[string]([]wrapcall.Hook[string]{rec.hook("b1", "1"), rec.hook("b2", "2")}),
		wrapcall.WithShared[string](shared),
		wrapcall.WithAfter[string](rec.hook("a1", "3")),
		wrapcall.WithAfter[string]([]wrapcall.Hook[string]{rec.hook("a2", "4")}),
	)

	got, err := wrap(rec.target("T"))(t.Context(), "in")
	require.NoError(t, err)

	assert.Equal(t, "T", got)
	assert.Equal(t, []string{"b1", "b2", "shared", "target", "shared", "a1", "a2"}, rec.calls)
}

func TestComposeShortCircuit(t *testing.T) {
	tests := []struct {
		name      string
		before    []string
		after     []string
		target    string
		expected  string
		wantCalls []string
	}{
		{
			name:      "stop in before hooks skips target",
			before:    []string{"ok", "STOP", "never"},
			after:     []string{"never"},
			target:    "T",
			expected:  "STOP",
			wantCalls: []string{"before0", "before1"},
		},
		{
			name:      "stop in after hooks skips remaining hooks",
			before:    []string{"ok"},
			after:     []string{"ok", "STOP", "never"},
			target:    "T",
			expected:  "STOP",
			wantCalls: []string{"before0", "target", "after0", "after1"},
		},
		{
			name:      "target result is never filtered",
			before:    []string{"ok"},
			after:     []string{"ok"},
			target:    "STOP",
			expected:  "STOP",
			wantCalls: []string{"before0", "target", "after0"},
		},
		{
			name:      "no match returns target result",
			before:    []string{"x"},
			after:     []string{"y"},
			target:    "T",
			expected:  "T",
			wantCalls: []string{"before0", "target", "after0"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := &recorder{}
			var before, after []wrapcall.Hook[string]
			for i, res := range tc.before {
				before = append(before, rec.hook("before"+string(rune('0'+i)), res))
			}
			for i, res := range tc.after {
				after = append(after, rec.hook("after"+string(rune('0'+i)), res))
			}

			wrap := wrapcall.MustCompose[string, string](
				wrapcall.WithBefore[string](before),
				wrapcall.WithAfter[string](after),
				wrapcall.WithReturnFilter(func(r string) bool { return r == "STOP" }),
			)

			got, err := wrap(rec.target(tc.target))(t.Context(), "in")
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
			assert.Equal(t, tc.wantCalls, rec.calls)
		})
	}
}

func TestComposeShortCircuitOnSharedHook(t *testing.T) {
	rec := &recorder{}
	wrap := wrapcall.WrapWithCalls[string, string](
		rec.hook("shared", "STOP"),
		wrapcall.WithReturnFilter(wrapcall.StopOn("STOP")),
	)

	got, err := wrap(rec.target("T"))(t.Context(), "in")
	require.NoError(t, err)
	assert.Equal(t, "STOP", got)
	assert.Equal(t, []string{"shared"}, rec.calls)
}

func TestComposeReduce(t *testing.T) {
	hook := func(v int) wrapcall.Hook[int] {
		return func(context.Context, wrapcall.Args) (int, error) { return v, nil }
	}
	target := func(context.Context, struct{}) (int, error) { return 2, nil }

	t.Run("sum", func(t *testing.T) {
		wrap := wrapcall.MustCompose[struct{}, int](
			wrapcall.WithBefore[int](hook(1)),
			wrapcall.WithAfter[int](hook(3)),
			wrapcall.WithReducer(wrapcall.Add[int]()),
		)
		got, err := wrap(target)(t.Context(), struct{}{})
		require.NoError(t, err)
		assert.Equal(t, 6, got)
	})

	t.Run("left to right", func(t *testing.T) {
		wrap := wrapcall.MustCompose[struct{}, int](
			wrapcall.WithBefore[int](hook(10)),
			wrapcall.WithAfter[int](hook(3)),
			wrapcall.WithReducer(func(acc, next int) (int, error) { return acc - next, nil }),
		)
		got, err := wrap(target)(t.Context(), struct{}{})
		require.NoError(t, err)
		assert.Equal(t, 10-2-3, got)
	})

	t.Run("shared hook results are folded twice", func(t *testing.T) {
		wrap := wrapcall.WrapWithCalls[struct{}, int](
			hook(5),
			wrapcall.WithReducer(wrapcall.Add[int]()),
		)
		got, err := wrap(target)(t.Context(), struct{}{})
		require.NoError(t, err)
		assert.Equal(t, 5+2+5, got)
	})

	t.Run("only target result", func(t *testing.T) {
		wrap := wrapcall.MustCompose[struct{}, int](
			wrapcall.WithReducer(func(int, int) (int, error) {
				return 0, errors.New("must not be called")
			}),
		)
		got, err := wrap(target)(t.Context(), struct{}{})
		require.NoError(t, err)
		assert.Equal(t, 2, got)
	})

	t.Run("concatenate strings", func(t *testing.T) {
		rec := &recorder{}
		wrap := wrapcall.MustCompose[string, string](
			wrapcall.WithBefore[string](rec.hook("b", "a")),
			wrapcall.WithAfter[string](rec.hook("a", "c")),
			wrapcall.WithReducer(wrapcall.Add[string]()),
		)
		got, err := wrap(rec.target("b"))(t.Context(), "")
		require.NoError(t, err)
		assert.Equal(t, "abc", got)
	})

	t.Run("keep last", func(t *testing.T) {
		rec := &recorder{}
		wrap := wrapcall.MustCompose[string, string](
			wrapcall.WithAfter[string](rec.hook("a", "last")),
			wrapcall.WithReducer(wrapcall.Last[string]()),
		)
		got, err := wrap(rec.target("T"))(t.Context(), "")
		require.NoError(t, err)
		assert.Equal(t, "last", got)
	})
}

func TestComposeNoReducerReturnsTargetResult(t *testing.T) {
	rec := &recorder{}
	wrap := wrapcall.CallBefore[string, string](rec.hook("b", "X"))

	got, err := wrap(rec.target("Y"))(t.Context(), "")
	require.NoError(t, err)
	assert.Equal(t, "Y", got)
}

func TestComposeFixedArgsIsolation(t *testing.T) {
	type input struct {
		A int
		B string
	}

	var hookArgs []wrapcall.Args
	hook := func(_ context.Context, args wrapcall.Args) (string, error) {
		hookArgs = append(hookArgs, args)
		return "", nil
	}

	var received []input
	target := func(_ context.Context, in input) (string, error) {
		received = append(received, in)
		return "done", nil
	}

	wrap := wrapcall.MustCompose[input, string](
		wrapcall.WithBefore[string](hook),
		wrapcall.WithShared[string](hook),
		wrapcall.WithAfter[string](hook),
		wrapcall.WithArgs[string]("fixed", 1),
		wrapcall.WithKeywords[string](map[string]any{"mode": "audit"}),
	)

	got, err := wrap(target)(t.Context(), input{A: 7, B: "caller"})
	require.NoError(t, err)
	assert.Equal(t, "done", got)

	assert.Equal(t, []input{{A: 7, B: "caller"}}, received)
	require.Len(t, hookArgs, 4)
	for _, args := range hookArgs {
		assert.Equal(t, []any{"fixed", 1}, args.Positional)
		assert.Equal(t, map[string]any{"mode": "audit"}, args.Keywords)
	}
}

// mutatingHook records the fixed arguments it was handed and then overwrites them.
func mutatingHook(mu *sync.Mutex, seen *[]string) wrapcall.Hook[string] {
	return func(_ context.Context, args wrapcall.Args) (string, error) {
		mu.Lock()
		*seen = append(*seen, args.String(0)+"/"+args.KeywordString("mode"))
		mu.Unlock()

		args.Positional[0] = "mutated"
		args.Keywords["mode"] = "mutated"
		args.Keywords["extra"] = true
		return "", nil
	}
}

func TestComposeHookMutationsDoNotLeak(t *testing.T) {
	var (
		mu   sync.Mutex
		seen []string
	)
	hook := mutatingHook(&mu, &seen)

	wrap := wrapcall.MustCompose[string, string](
		wrapcall.WithBefore[string](hook),
		wrapcall.WithShared[string](hook),
		wrapcall.WithAfter[string](hook),
		wrapcall.WithArgs[string]("orig"),
		wrapcall.WithKeywords[string](map[string]any{"mode": "audit"}),
	)
	wrapped := wrap(func(context.Context, string) (string, error) { return "done", nil })

	for range 2 {
		_, err := wrapped(t.Context(), "")
		require.NoError(t, err)
	}

	require.Len(t, seen, 8)
	for _, s := range seen {
		assert.Equal(t, "orig/audit", s)
	}
}

func TestComposeConcurrentHookMutations(t *testing.T) {
	var (
		mu   sync.Mutex
		seen []string
	)
	hook := mutatingHook(&mu, &seen)

	wrap := wrapcall.MustCompose[int, string](
		wrapcall.WithBefore[string](hook),
		wrapcall.WithAfter[string](hook),
		wrapcall.WithSharedArgs[string](wrapcall.NewArgs("orig").WithKeyword("mode", "shared")),
		wrapcall.WithShared[string](hook),
		wrapcall.WithArgs[string]("orig"),
		wrapcall.WithKeywords[string](map[string]any{"mode": "audit"}),
	)
	wrapped := wrap(func(context.Context, int) (string, error) { return "done", nil })

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Go(func() {
			_, _ = wrapped(t.Context(), i)
		})
	}
	wg.Wait()

	require.Len(t, seen, 50*4)
	for _, s := range seen {
		assert.Contains(t, []string{"orig/audit", "orig/shared"}, s)
	}
}

func TestComposeCopiesCallerArgs(t *testing.T) {
	positional := []any{"orig"}
	keywords := map[string]any{"mode": "audit"}

	var seen []string
	hook := func(_ context.Context, args wrapcall.Args) (string, error) {
		seen = append(seen, args.String(0)+"/"+args.KeywordString("mode"))
		return "", nil
	}

	tests := []struct {
		name string
		opts []wrapcall.Option[string]
	}{
		{
			name: "WithArgs and WithKeywords",
			opts: []wrapcall.Option[string]{
				wrapcall.WithArgs[string](positional...),
				wrapcall.WithKeywords[string](keywords),
			},
		},
		{
			name: "WithFixedArgs",
			opts: []wrapcall.Option[string]{
				wrapcall.WithFixedArgs[string](wrapcall.Args{Positional: positional, Keywords: keywords}),
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			seen = nil
			positional[0], keywords["mode"] = "orig", "audit"

			wrap := wrapcall.MustCompose[string, string](append(tc.opts, wrapcall.WithBefore[string](hook))...)

			positional[0] = "changed"
			keywords["mode"] = "changed"

			_, err := wrap(func(context.Context, string) (string, error) { return "", nil })(t.Context(), "")
			require.NoError(t, err)
			assert.Equal(t, []string{"orig/audit"}, seen)
		})
	}
}

func TestComposeSharedArgs(t *testing.T) {
	var seen []string
	record := func(_ context.Context, args wrapcall.Args) (string, error) {
		seen = append(seen, args.String(0))
		return "", nil
	}

	wrap := wrapcall.MustCompose[string, string](
		wrapcall.WithBefore[string](record),
		wrapcall.WithShared[string](record),
		wrapcall.WithArgs[string]("hook"),
		wrapcall.WithSharedArgs[string](wrapcall.NewArgs("shared")),
	)

	_, err := wrap(func(context.Context, string) (string, error) { return "", nil })(t.Context(), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"hook", "shared", "shared"}, seen)
}

func TestComposeMalformedHooks(t *testing.T) {
	rec := &recorder{}

	tests := []struct {
		name string
		src  any
	}{
		{name: "integer", src: 42},
		{name: "string", src: "not a hook"},
		{name: "wrong hook type", src: func(context.Context, wrapcall.Args) (int, error) { return 0, nil }},
		{name: "map", src: map[string]int{"a": 1}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec.calls = nil

			wrap, err := wrapcall.Compose[string, string](
				wrapcall.WithBefore[string](tc.src),
				wrapcall.WithShared[string](tc.src),
				wrapcall.WithAfter[string](rec.hook("after", "a")),
			)
			require.NoError(t, err)

			got, err := wrap(rec.target("T"))(t.Context(), "")
			require.NoError(t, err)
			assert.Equal(t, "T", got)
			assert.Equal(t, []string{"target", "after"}, rec.calls)
		})
	}
}

func TestComposeStrictHooks(t *testing.T) {
	tests := []struct {
		name string
		opts []wrapcall.Option[string]
	}{
		{name: "before", opts: []wrapcall.Option[string]{wrapcall.WithBefore[string](42)}},
		{name: "after", opts: []wrapcall.Option[string]{wrapcall.WithAfter[string]("x")}},
		{name: "shared", opts: []wrapcall.Option[string]{wrapcall.WithShared[string](3.5)}},
		{name: "config", opts: []wrapcall.Option[string]{
			wrapcall.WithConfig[string](wrapcall.Config{Name: "strict", StrictHooks: true}),
			wrapcall.WithBefore[string](struct{}{}),
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			opts := append([]wrapcall.Option[string]{wrapcall.WithStrictHooks[string]()}, tc.opts...)

			wrap, err := wrapcall.Compose[string, string](opts...)
			require.Error(t, err)
			assert.Nil(t, wrap)
			assert.Equal(t, wrapcall.CodeInvalidHooks, errx.AsErrorX(err).Code())

			assert.Panics(t, func() {
				wrapcall.MustCompose[string, string](opts...)
			})
		})
	}
}

func TestComposeErrorsPropagateUnmodified(t *testing.T) {
	errHook := errors.New("hook failed")
	errTarget := errors.New("target failed")
	errReduce := errors.New("reduce failed")

	ok := func(context.Context, wrapcall.Args) (string, error) { return "ok", nil }
	failing := func(context.Context, wrapcall.Args) (string, error) { return "", errHook }
	target := func(context.Context, string) (string, error) { return "T", nil }
	failingTarget := func(context.Context, string) (string, error) { return "", errTarget }

	tests := []struct {
		name   string
		opts   []wrapcall.Option[string]
		target wrapcall.Func[string, string]
		want   error
	}{
		{
			name:   "before hook",
			opts:   []wrapcall.Option[string]{wrapcall.WithBefore[string](failing)},
			target: target,
			want:   errHook,
		},
		{
			name:   "after hook",
			opts:   []wrapcall.Option[string]{wrapcall.WithAfter[string](failing)},
			target: target,
			want:   errHook,
		},
		{
			name:   "shared hook",
			opts:   []wrapcall.Option[string]{wrapcall.WithShared[string](failing)},
			target: target,
			want:   errHook,
		},
		{
			name:   "target",
			opts:   []wrapcall.Option[string]{wrapcall.WithBefore[string](ok)},
			target: failingTarget,
			want:   errTarget,
		},
		{
			name: "reducer",
			opts: []wrapcall.Option[string]{
				wrapcall.WithBefore[string](ok),
				wrapcall.WithReducer(func(string, string) (string, error) { return "", errReduce }),
			},
			target: target,
			want:   errReduce,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			wrap := wrapcall.MustCompose[string, string](tc.opts...)

			got, err := wrap(tc.target)(t.Context(), "")
			assert.Same(t, tc.want, err)
			assert.Empty(t, got)
		})
	}
}

func TestComposeFailureStopsSequence(t *testing.T) {
	rec := &recorder{}
	failing := func(context.Context, wrapcall.Args) (string, error) {
		rec.add("failing")
		return "", errors.New("boom")
	}

	wrap := wrapcall.MustCompose[string, string](
		wrapcall.WithBefore[string]([]wrapcall.Hook[string]{rec.hook("b", ""), failing, rec.hook("never", "")}),
		wrapcall.WithAfter[string](rec.hook("never", "")),
	)

	_, err := wrap(rec.target("T"))(t.Context(), "")
	require.Error(t, err)
	assert.Equal(t, []string{"b", "failing"}, rec.calls)
}

func TestComposePanicsPropagate(t *testing.T) {
	wrap := wrapcall.MustCompose[string, string](
		wrapcall.WithBefore[string](func(context.Context, wrapcall.Args) (string, error) { return "x", nil }),
		wrapcall.WithReturnFilter(func(string) bool { panic("filter exploded") }),
	)

	assert.PanicsWithValue(t, "filter exploded", func() {
		_, _ = wrap(func(context.Context, string) (string, error) { return "", nil })(t.Context(), "")
	})
}

func TestComposeNilTarget(t *testing.T) {
	wrap := wrapcall.MustCompose[string, string]()

	_, err := wrap(nil)(t.Context(), "")
	require.ErrorIs(t, err, wrapcall.ErrNilTarget)
}

func TestComposeHookContext(t *testing.T) {
	type seen struct {
		traceID string
		callID  string
		name    string
		phase   string
	}
	var hooks []seen
	hook := func(ctx context.Context, _ wrapcall.Args) (string, error) {
		hooks = append(hooks, seen{
			traceID: meta.Find(ctx, meta.TraceID),
			callID:  meta.Find(ctx, meta.CallID),
			name:    meta.Find(ctx, meta.WrapperName),
			phase:   meta.Find(ctx, meta.Phase),
		})
		return "", nil
	}

	var targetCtx context.Context
	target := func(ctx context.Context, _ string) (string, error) {
		targetCtx = ctx
		return "", nil
	}

	wrap := wrapcall.MustCompose[string, string](
		wrapcall.WithName[string]("checkout"),
		wrapcall.WithBefore[string](hook),
		wrapcall.WithShared[string](hook),
		wrapcall.WithAfter[string](hook),
	)
	wrapped := wrap(target)

	callerCtx := t.Context()
	_, err := wrapped(callerCtx, "")
	require.NoError(t, err)
	assert.Equal(t, callerCtx, targetCtx)

	require.Len(t, hooks, 4)
	phases := make([]string, 0, len(hooks))
	for _, h := range hooks {
		assert.Equal(t, hooks[0].callID, h.callID)
		assert.Equal(t, hooks[0].traceID, h.traceID)
		assert.Equal(t, "checkout", h.name)
		phases = append(phases, h.phase)
	}
	assert.NotEmpty(t, hooks[0].callID)
	assert.NotEmpty(t, hooks[0].traceID)
	assert.Equal(t, []string{"before", "shared_before", "shared_after", "after"}, phases)

	firstCall := hooks[0].callID
	hooks = nil
	_, err = wrapped(callerCtx, "")
	require.NoError(t, err)
	assert.NotEqual(t, firstCall, hooks[0].callID)

	hooks = nil
	_, err = wrapped(meta.With(callerCtx, meta.TraceID, "trace-1"), "")
	require.NoError(t, err)
	for _, h := range hooks {
		assert.Equal(t, "trace-1", h.traceID)
	}
}

func TestComposeConcurrentCalls(t *testing.T) {
	wrap := wrapcall.MustCompose[int, int](
		wrapcall.WithBefore[int](func(context.Context, wrapcall.Args) (int, error) { return 1, nil }),
		wrapcall.WithReducer(wrapcall.Add[int]()),
	)
	wrapped := wrap(func(_ context.Context, in int) (int, error) { return in, nil })

	var wg sync.WaitGroup
	results := make([]int, 50)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], _ = wrapped(t.Context(), i)
		}()
	}
	wg.Wait()

	for i, got := range results {
		assert.Equal(t, i+1, got)
	}
}
