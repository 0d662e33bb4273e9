package wrapcall

// CallBefore wraps a function so that hooks run before it.
// No shared or after hooks are used, whatever opts say.
func CallBefore[I, R any](hooks any, opts ...Option[R]) WrapFunc[I, R] {
	return MustCompose[I, R](withSlots(opts, func(o *options[R]) {
		o.before = []any{hooks}
		o.after = nil
		o.shared = nil
	})...)
}

// CallAfter wraps a function so that hooks run after it.
// No shared or before hooks are used, whatever opts say.
func CallAfter[I, R any](hooks any, opts ...Option[R]) WrapFunc[I, R] {
	return MustCompose[I, R](withSlots(opts, func(o *options[R]) {
		o.before = nil
		o.after = []any{hooks}
		o.shared = nil
	})...)
}

// WrapWith wraps a function between two independent hooks. beforeArgs and
// afterArgs are prepended to the fixed arguments of their own hook only.
// Either hook may be nil.
func WrapWith[I, R any](before Hook[R], beforeArgs []any, after Hook[R], afterArgs []any, opts ...Option[R]) WrapFunc[I, R] {
	return MustCompose[I, R](withSlots(opts, func(o *options[R]) {
		o.before = []any{Bind(before, beforeArgs...)}
		o.after = []any{Bind(after, afterArgs...)}
		o.shared = nil
	})...)
}

// withSlots appends a final option that fixes the hook slots of a façade.
func withSlots[R any](opts []Option[R], slots Option[R]) []Option[R] {
	all := make([]Option[R], 0, len(opts)+1)
	all = append(all, opts...)
	return append(all, slots)
}
