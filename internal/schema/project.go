package schema

import (
	"reflect"

	"github.com/gcanossa/graphidentity/internal/types"
)

// ProjectionMode selects how the field-name set passed to Project is
// interpreted.
type ProjectionMode int

const (
	// IncludeOnly projects exactly the named fields.
	IncludeOnly ProjectionMode = iota

	// ExcludeListed projects every writable field except the named ones.
	ExcludeListed
)

// Project produces a name-to-value parameter payload from the instance's
// current field values, filtered by mode and the given field names.
//
// Values are taken verbatim with no coercion; nested slices and maps
// pass through opaquely for the transport layer to encode. Field names
// match case-sensitively against the descriptor. The internal
// identifier and readonly fields never appear in the payload, and
// fields promoted through a nil embedded pointer are omitted.
//
// A nil instance (or nil pointer) is a precondition failure.
func Project(instance any, mode ProjectionMode, names ...string) (map[string]any, error) {
	if instance == nil {
		return nil, types.NewError(types.PRECONDITION_FAILED, "instance cannot be nil")
	}

	rv := reflect.ValueOf(instance)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, types.NewError(types.PRECONDITION_FAILED, "instance cannot be nil")
		}
		rv = rv.Elem()
	}

	d := Describe(rv.Type())

	listed := make(map[string]bool, len(names))
	for _, n := range names {
		listed[n] = true
	}

	props := make(map[string]any, len(d.Fields))
	for _, f := range d.Fields {
		if !f.Writable {
			continue
		}
		switch mode {
		case IncludeOnly:
			if !listed[f.Name] {
				continue
			}
		case ExcludeListed:
			if listed[f.Name] {
				continue
			}
		}
		fv, err := rv.FieldByIndexErr(f.Index)
		if err != nil {
			// Promoted through a nil embedded pointer: no value to take.
			continue
		}
		props[f.Name] = fv.Interface()
	}

	return props, nil
}
