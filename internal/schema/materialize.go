package schema

import (
	"fmt"
	"math"
	"reflect"
	"time"

	"github.com/gcanossa/graphidentity/internal/types"
)

var timeType = reflect.TypeOf(time.Time{})

// Materialize converts one returned graph record into a T. For each
// field named on T's descriptor the record is probed case-sensitively;
// present values are coerced to the field's declared type, absent ones
// leave the field at its zero value. Record keys with no matching field
// are ignored: widening the returned projection never breaks callers.
//
// The internal identifier is populated from the engine-assigned id
// (InternalIDProperty), overriding anything the caller supplied.
//
// When the record has a single column holding a flattened node property
// map, as produced by the session layer for `RETURN n` queries, that
// map is unwrapped before matching.
func Materialize[T any](rec map[string]any) (T, error) {
	var out T

	rec = unwrapNode(rec)

	rv := reflect.ValueOf(&out).Elem()
	d := Describe(rv.Type())

	for _, f := range d.Fields {
		raw, ok := rec[f.Name]
		if !ok || raw == nil {
			continue
		}
		cv, err := coerce(raw, f.Type)
		if err != nil {
			return out, types.NewError(types.MATERIALIZATION_FAILED,
				fmt.Sprintf("field %q: %v", f.Name, err))
		}
		fieldByIndexAlloc(rv, f.Index).Set(cv)
	}

	if d.IDField != nil {
		if raw, ok := rec[InternalIDProperty]; ok && raw != nil {
			cv, err := coerce(raw, d.IDField.Type)
			if err != nil {
				return out, types.NewError(types.MATERIALIZATION_FAILED,
					fmt.Sprintf("identifier field %q: %v", d.IDField.Name, err))
			}
			fieldByIndexAlloc(rv, d.IDField.Index).Set(cv)
		}
	}

	return out, nil
}

// fieldByIndexAlloc walks the index path like reflect's FieldByIndex
// but allocates nil embedded pointers along the way, so fields promoted
// through a pointer embedding remain settable.
func fieldByIndexAlloc(v reflect.Value, index []int) reflect.Value {
	for i, x := range index {
		if i > 0 && v.Kind() == reflect.Pointer {
			if v.IsNil() {
				v.Set(reflect.New(v.Type().Elem()))
			}
			v = v.Elem()
		}
		v = v.Field(x)
	}
	return v
}

// unwrapNode unwraps single-column records whose value is a node
// property map, keeping the internal id visible alongside the node's
// own properties.
func unwrapNode(rec map[string]any) map[string]any {
	if len(rec) != 1 {
		return rec
	}
	for _, v := range rec {
		if inner, ok := v.(map[string]any); ok {
			return inner
		}
	}
	return rec
}

// coerce converts the engine's native value representation to the
// declared field type. Conversions are deliberate and narrow: numeric
// widths interconvert only when the value fits the target width,
// strings convert to named string types, temporal values parse from
// RFC3339 strings. Anything else, including an out-of-range narrowing,
// is a mismatch.
func coerce(v any, t reflect.Type) (reflect.Value, error) {
	sv := reflect.ValueOf(v)
	if sv.Type().AssignableTo(t) {
		return sv, nil
	}

	if t.Kind() == reflect.Pointer {
		ev, err := coerce(v, t.Elem())
		if err != nil {
			return reflect.Value{}, err
		}
		pv := reflect.New(t.Elem())
		pv.Elem().Set(ev)
		return pv, nil
	}

	if t == timeType {
		if s, ok := v.(string); ok {
			ts, err := time.Parse(time.RFC3339Nano, s)
			if err != nil {
				return reflect.Value{}, fmt.Errorf("cannot parse %q as time: %v", s, err)
			}
			return reflect.ValueOf(ts), nil
		}
		return reflect.Value{}, mismatch(v, t)
	}

	switch t.Kind() {
	case reflect.String:
		if s, ok := v.(string); ok {
			return reflect.ValueOf(s).Convert(t), nil
		}

	case reflect.Bool:
		if b, ok := v.(bool); ok {
			return reflect.ValueOf(b).Convert(t), nil
		}

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		switch n := v.(type) {
		case int64:
			return convertInt(n, t)
		case int:
			return convertInt(int64(n), t)
		case float64:
			if n == math.Trunc(n) && n >= math.MinInt64 && n < math.MaxInt64 {
				return convertInt(int64(n), t)
			}
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if n, ok := v.(int64); ok && n >= 0 {
			if reflect.Zero(t).OverflowUint(uint64(n)) {
				return reflect.Value{}, overflow(n, t)
			}
			return reflect.ValueOf(uint64(n)).Convert(t), nil
		}

	case reflect.Float32, reflect.Float64:
		switch n := v.(type) {
		case float64:
			if reflect.Zero(t).OverflowFloat(n) {
				return reflect.Value{}, fmt.Errorf("value %v overflows %s", n, t)
			}
			return reflect.ValueOf(n).Convert(t), nil
		case int64:
			return reflect.ValueOf(float64(n)).Convert(t), nil
		}

	case reflect.Slice:
		items, ok := v.([]any)
		if !ok {
			return reflect.Value{}, mismatch(v, t)
		}
		out := reflect.MakeSlice(t, len(items), len(items))
		for i, item := range items {
			ev, err := coerce(item, t.Elem())
			if err != nil {
				return reflect.Value{}, fmt.Errorf("element %d: %v", i, err)
			}
			out.Index(i).Set(ev)
		}
		return out, nil
	}

	return reflect.Value{}, mismatch(v, t)
}

// convertInt narrows n to the target signed width, rejecting values
// the width cannot hold rather than wrapping them.
func convertInt(n int64, t reflect.Type) (reflect.Value, error) {
	if reflect.Zero(t).OverflowInt(n) {
		return reflect.Value{}, overflow(n, t)
	}
	return reflect.ValueOf(n).Convert(t), nil
}

func overflow(n int64, t reflect.Type) error {
	return fmt.Errorf("value %d overflows %s", n, t)
}

func mismatch(v any, t reflect.Type) error {
	return fmt.Errorf("cannot coerce %T to %s", v, t)
}
