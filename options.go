package wrapcall

import (
	"maps"
	"slices"

	"github.com/rise-and-shine/wrapcall/observability/logger"
)

// Config is the YAML-mappable part of a wrapper's configuration.
type Config struct {
	// Name identifies the wrapper in logs and in call metadata.
	Name string `yaml:"name" validate:"required" default:"wrapcall"`

	// StrictHooks makes Compose fail on hook sources it cannot use
	// instead of ignoring them.
	StrictHooks bool `yaml:"strict_hooks" default:"false"`
}

// Option is a functional option for configuring a composed wrapper.
type Option[R any] func(*options[R])

type options[R any] struct {
	before     []any
	after      []any
	shared     any
	sharedArgs *Args
	args       Args
	filter     Filter[R]
	reducer    Reducer[R]
	name       string
	logger     logger.Logger
	strict     bool
}

func defaultOptions[R any]() *options[R] {
	return &options[R]{
		logger: logger.NewNop(),
	}
}

// WithBefore adds hooks run before the wrapped function, in order.
// See NormalizeHooks for the accepted sources. May be given more than once.
func WithBefore[R any](src any) Option[R] {
	return func(o *options[R]) {
		o.before = append(o.before, src)
	}
}

// WithAfter adds hooks run after the wrapped function, in order.
// See NormalizeHooks for the accepted sources. May be given more than once.
func WithAfter[R any](src any) Option[R] {
	return func(o *options[R]) {
		o.after = append(o.after, src)
	}
}

// WithShared sets a hook run twice per call: after the before hooks and
// again before the after hooks. A value that is not a single hook is
// treated as absent.
func WithShared[R any](src any) Option[R] {
	return func(o *options[R]) {
		o.shared = src
	}
}

// WithSharedArgs binds arguments used only for the shared hook.
// Default is the fixed arguments.
func WithSharedArgs[R any](args Args) Option[R] {
	return func(o *options[R]) {
		cloned := args.Clone()
		o.sharedArgs = &cloned
	}
}

// WithArgs sets the positional fixed arguments.
func WithArgs[R any](positional ...any) Option[R] {
	return func(o *options[R]) {
		o.args.Positional = slices.Clone(positional)
	}
}

// WithKeywords merges kw into the keyword fixed arguments.
func WithKeywords[R any](kw map[string]any) Option[R] {
	return func(o *options[R]) {
		merged := make(map[string]any, len(o.args.Keywords)+len(kw))
		maps.Copy(merged, o.args.Keywords)
		maps.Copy(merged, kw)
		o.args.Keywords = merged
	}
}

// WithFixedArgs replaces all fixed arguments.
func WithFixedArgs[R any](args Args) Option[R] {
	return func(o *options[R]) {
		o.args = args.Clone()
	}
}

// WithReturnFilter enables short-circuiting: the first hook result for which
// filter reports true is returned immediately and the remaining steps are skipped.
func WithReturnFilter[R any](filter Filter[R]) Option[R] {
	return func(o *options[R]) {
		o.filter = filter
	}
}

// WithReducer folds all collected results, left to right, into the returned value.
func WithReducer[R any](reducer Reducer[R]) Option[R] {
	return func(o *options[R]) {
		o.reducer = reducer
	}
}

// WithName names the wrapper. Hooks see the name in their context metadata.
func WithName[R any](name string) Option[R] {
	return func(o *options[R]) {
		o.name = name
	}
}

// WithLogger sets the logger used to report ignored hook sources.
// Default is a no-op logger.
func WithLogger[R any](l logger.Logger) Option[R] {
	return func(o *options[R]) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithStrictHooks makes Compose return an error for unusable hook sources.
func WithStrictHooks[R any]() Option[R] {
	return func(o *options[R]) {
		o.strict = true
	}
}

// WithConfig applies a loaded Config.
func WithConfig[R any](cfg Config) Option[R] {
	return func(o *options[R]) {
		o.name = cfg.Name
		o.strict = cfg.StrictHooks
	}
}
