// Package val validates structs with go-playground/validator and reports
// failures as errx validation errors.
package val

import (
	"reflect"
	"strings"
	"sync"

	"github.com/code19m/errx"
	"github.com/go-playground/validator/v10"
)

//nolint:gochecknoglobals // one validator instance caches struct metadata for the whole process
var getValidator = sync.OnceValue(func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(getTagName)
	return v
})

// RegisterValidation adds a custom validation tag.
func RegisterValidation(tag string, fn validator.Func) error {
	if err := getValidator().RegisterValidation(tag, fn); err != nil {
		return errx.Wrap(err)
	}
	return nil
}

// getTagName returns the name of a struct field based on its json or yaml
// tag, falling back to the field name.
func getTagName(fld reflect.StructField) string {
	for _, tagName := range []string{"json", "yaml"} {
		name, _, _ := strings.Cut(fld.Tag.Get(tagName), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}
