package wrapcall

import (
	"maps"
	"slices"

	"github.com/spf13/cast"
)

// Args is the set of fixed arguments bound at composition time.
//
// The same Args value is handed to every hook and to both shared-hook
// invocations of every call. It is never passed to the wrapped function.
type Args struct {
	Positional []any
	Keywords   map[string]any
}

// NewArgs returns Args holding the given positional values and no keywords.
func NewArgs(positional ...any) Args {
	return Args{Positional: positional}
}

// Clone returns a copy of a whose positional slice and keyword map are not
// shared with a. The values themselves are not copied.
func (a Args) Clone() Args {
	return Args{
		Positional: slices.Clone(a.Positional),
		Keywords:   maps.Clone(a.Keywords),
	}
}

// WithKeyword returns a copy of a with key set to value.
func (a Args) WithKeyword(key string, value any) Args {
	kw := make(map[string]any, len(a.Keywords)+1)
	maps.Copy(kw, a.Keywords)
	kw[key] = value
	return Args{Positional: a.Positional, Keywords: kw}
}

// Prepend returns a copy of a with extra placed in front of the positional values.
// Keywords are shared with a.
func (a Args) Prepend(extra ...any) Args {
	if len(extra) == 0 {
		return a
	}
	pos := make([]any, 0, len(extra)+len(a.Positional))
	pos = append(pos, extra...)
	pos = append(pos, a.Positional...)
	return Args{Positional: pos, Keywords: a.Keywords}
}

// Len returns the number of positional values.
func (a Args) Len() int {
	return len(a.Positional)
}

// At returns the positional value at i, or nil when i is out of range.
func (a Args) At(i int) any {
	if i < 0 || i >= len(a.Positional) {
		return nil
	}
	return a.Positional[i]
}

// Keyword returns the keyword value for key.
func (a Args) Keyword(key string) (any, bool) {
	v, ok := a.Keywords[key]
	return v, ok
}

// String returns the positional value at i coerced to a string.
func (a Args) String(i int) string {
	return cast.ToString(a.At(i))
}

// Int returns the positional value at i coerced to an int.
func (a Args) Int(i int) int {
	return cast.ToInt(a.At(i))
}

// Bool returns the positional value at i coerced to a bool.
func (a Args) Bool(i int) bool {
	return cast.ToBool(a.At(i))
}

// KeywordString returns the keyword value for key coerced to a string.
func (a Args) KeywordString(key string) string {
	return cast.ToString(a.Keywords[key])
}

// KeywordInt returns the keyword value for key coerced to an int.
func (a Args) KeywordInt(key string) int {
	return cast.ToInt(a.Keywords[key])
}
