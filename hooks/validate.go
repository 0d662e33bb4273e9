package hooks

import (
	"context"
	"reflect"
	"slices"

	"github.com/samber/lo"

	"github.com/rise-and-shine/wrapcall"
	"github.com/rise-and-shine/wrapcall/val"
)

// Validate returns a hook that validates every struct-valued fixed argument
// with package val, positional ones first and keywords in key order.
// The first failure is returned as the hook's error, which
// aborts the call before anything after the hook runs.
func Validate[R any]() wrapcall.Hook[R] {
	return Effect[R](func(_ context.Context, args wrapcall.Args) error {
		for _, v := range args.Positional {
			if err := validateStruct(v); err != nil {
				return err
			}
		}
		keys := lo.Keys(args.Keywords)
		slices.Sort(keys)
		for _, k := range keys {
			if err := validateStruct(args.Keywords[k]); err != nil {
				return err
			}
		}
		return nil
	})
}

func validateStruct(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}
	return val.ValidateSchema(v)
}
