package hooks

import (
	"context"

	"github.com/rcrowley/go-metrics"

	"github.com/rise-and-shine/wrapcall"
)

// Count returns a hook that increments the counter name in r on every call.
// A nil registry means metrics.DefaultRegistry.
func Count[R any](r metrics.Registry, name string) wrapcall.Hook[R] {
	if r == nil {
		r = metrics.DefaultRegistry
	}
	counter := metrics.GetOrRegisterCounter(name, r)

	return Effect[R](func(context.Context, wrapcall.Args) error {
		counter.Inc(1)
		return nil
	})
}
