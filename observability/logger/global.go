package logger

import "sync"

//nolint:gochecknoglobals // process-wide logger, guarded by globalMu
var (
	globalMu sync.RWMutex
	global   Logger
)

//nolint:gochecknoglobals // built on first use when no global logger was set
var defaultGlobal = sync.OnceValue(func() Logger {
	l, err := New(Config{Level: levelDebug, Encoding: EncodingConsole})
	if err != nil {
		return NewNop()
	}
	return l
})

// SetGlobal builds a logger from cfg and makes it the global logger.
// On error the current global logger stays in place.
func SetGlobal(cfg Config) error {
	l, err := New(cfg)
	if err != nil {
		return err
	}
	ReplaceGlobal(l)
	return nil
}

// ReplaceGlobal installs l as the global logger and returns a function
// restoring the previous one, like zap.ReplaceGlobals.
func ReplaceGlobal(l Logger) func() {
	globalMu.Lock()
	prev := global
	global = l
	globalMu.Unlock()

	return func() {
		globalMu.Lock()
		global = prev
		globalMu.Unlock()
	}
}

// Global returns the global logger. Until one is set it is a debug-level
// console logger.
func Global() Logger {
	globalMu.RLock()
	l := global
	globalMu.RUnlock()

	if l == nil {
		return defaultGlobal()
	}
	return l
}

// Named returns the global logger scoped to name.
func Named(name string) Logger {
	return Global().Named(name)
}

// Sync flushes the global logger.
func Sync() error {
	return Global().Sync()
}
