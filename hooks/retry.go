package hooks

import (
	"context"
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/rise-and-shine/wrapcall"
)

// Retry returns a hook that calls h up to attempts times, waiting delay
// between attempts, until it succeeds. The last error is returned as is.
// Retrying stops early when the context is done.
func Retry[R any](h wrapcall.Hook[R], attempts uint, delay time.Duration) wrapcall.Hook[R] {
	return func(ctx context.Context, args wrapcall.Args) (R, error) {
		return retry.DoWithData(
			func() (R, error) {
				return h(ctx, args)
			},
			retry.Context(ctx),
			retry.Attempts(attempts),
			retry.Delay(delay),
			retry.DelayType(retry.FixedDelay),
			retry.LastErrorOnly(true),
		)
	}
}
