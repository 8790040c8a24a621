package schema

import (
	"reflect"
	"strings"
	"sync"
	"unicode"
)

// InternalIDProperty is the reserved record key under which the session
// layer exposes the engine-assigned node identifier. It never collides
// with descriptor field names, which cannot start with an underscore.
const InternalIDProperty = "_id"

// Field describes one named property of an entity type.
type Field struct {
	// Name is the property name used in the graph, from the `graph` tag
	// or the lower-camel form of the Go field name.
	Name string

	// Index is the reflect field index path from the enclosing struct,
	// including promotion through embedded structs.
	Index []int

	// Type is the declared Go type of the field.
	Type reflect.Type

	// Writable reports whether the field participates in write
	// projections. Fields tagged `readonly` are materialized but never
	// projected.
	Writable bool
}

// Descriptor is the cached graph shape of an entity type: its label set
// and its ordered field list. Descriptors are immutable after creation
// and safe for concurrent use.
type Descriptor struct {
	// TypeName is the Go type's name, empty for unsupported types.
	TypeName string

	// Labels is the deterministic label set: the type's own name first,
	// then each embedded struct's name, outermost declaration order,
	// breadth-first by embedding depth.
	Labels []string

	// Fields is the ordered property list. It never contains the
	// internal identifier field.
	Fields []Field

	// IDField is the internal-identifier field (tagged `graph:",id"`),
	// nil when the type declares none. It is always excluded from write
	// projections and populated from the engine-assigned id on reads.
	IDField *Field
}

// Field returns the descriptor field with the given name, matched
// case-sensitively, and whether it exists.
func (d *Descriptor) Field(name string) (Field, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// descriptors caches one Descriptor per type. Reads dominate; a racing
// double-compute produces identical descriptors, so no lock is held
// around the build.
var descriptors sync.Map // reflect.Type -> *Descriptor

var emptyDescriptor = &Descriptor{}

// Describe derives the Descriptor for t, computing it on first use and
// returning the cached value thereafter. It never fails: pointer types
// are dereferenced, and non-struct types yield an empty descriptor that
// callers treat as "no constraint".
func Describe(t reflect.Type) *Descriptor {
	if t == nil {
		return emptyDescriptor
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return emptyDescriptor
	}

	if cached, ok := descriptors.Load(t); ok {
		return cached.(*Descriptor)
	}

	d := buildDescriptor(t)
	actual, _ := descriptors.LoadOrStore(t, d)
	return actual.(*Descriptor)
}

// DescribeValue derives the Descriptor for the dynamic type of v.
// A nil value yields an empty descriptor.
func DescribeValue(v any) *Descriptor {
	if v == nil {
		return emptyDescriptor
	}
	return Describe(reflect.TypeOf(v))
}

// buildDescriptor walks the struct breadth-first by embedding depth so
// that shallower fields shadow promoted ones, matching Go's own
// promotion rule. Labels accumulate in the same traversal order, which
// keeps them deterministic across calls.
func buildDescriptor(t reflect.Type) *Descriptor {
	d := &Descriptor{
		TypeName: t.Name(),
		Labels:   []string{t.Name()},
	}

	seen := map[string]bool{}

	type level struct {
		typ   reflect.Type
		index []int
	}
	current := []level{{typ: t}}

	for len(current) > 0 {
		var next []level
		for _, lv := range current {
			for i := 0; i < lv.typ.NumField(); i++ {
				sf := lv.typ.Field(i)
				if !sf.IsExported() {
					continue
				}

				index := append(append([]int{}, lv.index...), i)

				if sf.Anonymous {
					ft := sf.Type
					if ft.Kind() == reflect.Pointer {
						ft = ft.Elem()
					}
					if ft.Kind() == reflect.Struct {
						d.Labels = append(d.Labels, ft.Name())
						next = append(next, level{typ: ft, index: index})
						continue
					}
				}

				name, opts := parseTag(sf)
				if name == "-" {
					continue
				}
				if seen[name] {
					continue
				}
				seen[name] = true

				f := Field{
					Name:     name,
					Index:    index,
					Type:     sf.Type,
					Writable: !opts.readonly,
				}

				if opts.id {
					f.Writable = false
					if d.IDField == nil {
						idf := f
						d.IDField = &idf
					}
					continue
				}

				d.Fields = append(d.Fields, f)
			}
		}
		current = next
	}

	return d
}

type tagOptions struct {
	id       bool
	readonly bool
}

// parseTag resolves the graph property name and options for a struct
// field. Tag form: `graph:"name,opt,..."`; an empty name keeps the
// default lower-camel field name.
func parseTag(sf reflect.StructField) (string, tagOptions) {
	var opts tagOptions

	tag, ok := sf.Tag.Lookup("graph")
	if !ok {
		return lowerCamel(sf.Name), opts
	}

	parts := strings.Split(tag, ",")
	name := parts[0]
	for _, opt := range parts[1:] {
		switch opt {
		case "id":
			opts.id = true
		case "readonly":
			opts.readonly = true
		}
	}

	if name == "" {
		name = lowerCamel(sf.Name)
	}
	return name, opts
}

// lowerCamel lowercases the leading rune, folding acronym prefixes:
// "NormalizedName" becomes "normalizedName", "ID" becomes "id",
// "URLPath" becomes "urlPath".
func lowerCamel(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	n := 0
	for n < len(runes) && unicode.IsUpper(runes[n]) {
		n++
	}
	// Keep the last upper rune capitalized when it starts the next word.
	if n > 1 && n < len(runes) {
		n--
	}
	if n == 0 {
		return s
	}
	return strings.ToLower(string(runes[:n])) + string(runes[n:])
}
