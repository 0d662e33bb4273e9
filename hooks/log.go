package hooks

import (
	"context"

	"github.com/samber/lo"

	"github.com/rise-and-shine/wrapcall"
	"github.com/rise-and-shine/wrapcall/mask"
	"github.com/rise-and-shine/wrapcall/observability/logger"
)

// Log returns a hook that logs msg at info level together with the fixed
// arguments and the call metadata of the context. Struct arguments are logged
// through mask, so fields tagged `mask:"true"` never reach the log.
func Log[R any](l logger.Logger, msg string) wrapcall.Hook[R] {
	named := l.Named("wrapcall.hooks")
	return Effect[R](func(ctx context.Context, args wrapcall.Args) error {
		named.
			WithContext(ctx).
			With(
				"args", lo.Map(args.Positional, func(v any, _ int) any { return mask.Value(v) }),
				"kwargs", lo.MapValues(args.Keywords, func(v any, _ string) any { return mask.Value(v) }),
			).
			Info(msg)
		return nil
	})
}
