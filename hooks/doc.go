// Package hooks provides ready-made wrapcall hooks for common cross-cutting
// concerns: logging, tracing, metrics, validation gates and retries.
//
// Every constructor returns a wrapcall.Hook[R] and can be mixed freely with
// user hooks in any slot:
//
//	wrap := wrapcall.MustCompose[Order, string](
//	    wrapcall.WithBefore[string]([]wrapcall.Hook[string]{
//	        hooks.Validate[string](),
//	        hooks.Count[string](registry, "orders.calls"),
//	    }),
//	    wrapcall.WithAfter[string](hooks.Log[string](log, "order handled")),
//	    wrapcall.WithArgs[string](order),
//	)
package hooks
