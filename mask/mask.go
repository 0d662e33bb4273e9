// Package mask hides sensitive struct fields before values are logged.
package mask

import (
	"fmt"
	"reflect"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

const tagName = "mask"

// StructToOrdMap flattens a struct into an ordered map of its exported fields.
// Fields tagged with `mask:"true"` have non-zero values replaced by a
// "***masked-<kind>***" label. Nested structs are flattened with dotted keys.
// Keys follow the json tag, then the yaml tag, then the field name; fields
// tagged "-" are left out.
func StructToOrdMap(v any) *orderedmap.OrderedMap[string, any] {
	if v == nil {
		return nil
	}
	om := orderedmap.New[string, any]()
	flatten(om, reflect.ValueOf(v), "")
	return om
}

// Value returns v ready for logging: structs (and pointers to them) become
// masked ordered maps, anything else is returned unchanged.
func Value(v any) any {
	if v == nil || !isStruct(reflect.ValueOf(v)) {
		return v
	}
	return StructToOrdMap(v)
}

func flatten(om *orderedmap.OrderedMap[string, any], val reflect.Value, prefix string) {
	if val.Kind() == reflect.Pointer {
		if val.IsNil() {
			om.Set(prefix, nil)
			return
		}
		val = val.Elem()
	}

	if val.Kind() != reflect.Struct {
		om.Set(prefix, val.Interface())
		return
	}

	typ := val.Type()
	for i := range val.NumField() {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}

		name, skip := fieldName(field)
		if skip {
			continue
		}
		if prefix != "" {
			name = prefix + "." + name
		}

		fv := val.Field(i)
		switch {
		case strings.EqualFold(field.Tag.Get(tagName), "true"):
			om.Set(name, masked(fv))
		case isStruct(fv):
			flatten(om, fv, name)
		default:
			om.Set(name, fv.Interface())
		}
	}
}

func isStruct(val reflect.Value) bool {
	if val.Kind() == reflect.Pointer {
		if val.IsNil() {
			return false
		}
		val = val.Elem()
	}
	return val.Kind() == reflect.Struct
}

func masked(val reflect.Value) any {
	switch val.Kind() { //nolint:exhaustive // remaining kinds are never nil
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface:
		if val.IsNil() {
			return nil
		}
	}
	if val.Kind() == reflect.Pointer {
		val = val.Elem()
	}
	if val.IsZero() {
		return val.Interface()
	}
	return fmt.Sprintf("***masked-%s***", val.Kind())
}

// fieldName picks the output key of a field: json tag, yaml tag, field name.
func fieldName(field reflect.StructField) (string, bool) {
	for _, tag := range []string{"json", "yaml"} {
		value, ok := field.Tag.Lookup(tag)
		if !ok {
			continue
		}
		name, _, _ := strings.Cut(value, ",")
		if name == "-" {
			return "", true
		}
		if name != "" {
			return name, false
		}
	}
	return field.Name, false
}
