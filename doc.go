// Package wrapcall builds wrappers that run auxiliary calls around a function.
//
// A wrapper is configured once with Compose (or one of WrapWithCalls,
// CallBefore, CallAfter, WrapWith) and then applied to any number of
// functions:
//
//	audit := wrapcall.MustCompose[Order, string](
//	    wrapcall.WithBefore[string](checkQuota),
//	    wrapcall.WithAfter[string]([]wrapcall.Hook[string]{notify, record}),
//	    wrapcall.WithArgs[string]("orders"),
//	    wrapcall.WithReturnFilter(wrapcall.StopOn("DENIED")),
//	)
//	placeOrder := audit(placeOrderImpl)
//
// Hooks receive the fixed arguments bound at composition time; the wrapped
// function receives only its caller's input. A wrapper keeps no state between
// calls, so one wrapped function may be called from many goroutines as long as
// its hooks allow it.
package wrapcall
