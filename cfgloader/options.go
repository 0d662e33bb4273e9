package cfgloader

// Options holds configuration options for Load and MustLoad.
type Options struct {
	// Silent disables logging of the loaded (masked) config.
	Silent bool

	// Dir is the directory holding ${ENVIRONMENT}.yaml files. Default is "./config".
	Dir string
}

// Option is a functional option for configuring loading behavior.
type Option func(*Options)

// WithSilent disables config logging to stdout.
func WithSilent() Option {
	return func(o *Options) {
		o.Silent = true
	}
}

// WithDir sets the directory MustLoad looks for environment files in.
func WithDir(dir string) Option {
	return func(o *Options) {
		o.Dir = dir
	}
}

func buildOptions(opts []Option) Options {
	o := Options{Dir: "./config"}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
