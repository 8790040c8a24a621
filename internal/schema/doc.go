// Package schema maps typed Go entities onto property-graph shapes.
//
// It derives a Descriptor for each entity type (labels and named fields,
// computed once and cached for the process lifetime), projects instance
// state into query parameter payloads, renders Cypher pattern fragments
// from descriptors, and materializes returned records back into typed
// values.
//
// The package operates in a closed world: labels and relationship types
// that appear in rendered fragments come only from descriptors or from
// package-level relation constants, never from free-form input. That is
// the injection boundary for the whole persistence layer.
package schema
