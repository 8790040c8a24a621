package store

import (
	"context"
	"fmt"
	"reflect"

	"github.com/gcanossa/graphidentity/internal/graph"
	"github.com/gcanossa/graphidentity/internal/schema"
	"github.com/gcanossa/graphidentity/internal/types"
)

// createNode persists the entity as a new node and returns the
// engine-assigned identifier.
func createNode(ctx context.Context, e *graph.Executor, entity any) (int64, error) {
	props, err := schema.Project(entity, schema.ExcludeListed)
	if err != nil {
		return 0, err
	}
	d := schema.DescribeValue(entity)

	cypher := fmt.Sprintf("CREATE %s SET n = $props RETURN id(n) AS %s",
		schema.NodePattern(d, "n"), schema.InternalIDProperty)

	records, err := e.Collect(ctx, cypher, map[string]any{"props": props})
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, types.NewError(types.ENGINE_QUERY_FAILED,
			"create returned no identifier")
	}

	id, ok := records[0][schema.InternalIDProperty].(int64)
	if !ok {
		return 0, types.NewError(types.MATERIALIZATION_FAILED,
			fmt.Sprintf("engine identifier is %T, expected int64", records[0][schema.InternalIDProperty]))
	}
	return id, nil
}

// updateNode overwrites the mapped properties of the node with the
// given identifier. A missing node is a silent no-op.
func updateNode(ctx context.Context, e *graph.Executor, entity any, id int64) error {
	props, err := schema.Project(entity, schema.ExcludeListed)
	if err != nil {
		return err
	}
	d := schema.DescribeValue(entity)

	cypher := fmt.Sprintf("MATCH %s WHERE id(n) = $id SET n += $props",
		schema.NodePattern(d, "n"))

	return e.Run(ctx, cypher, map[string]any{"id": id, "props": props})
}

// deleteNode removes the node with the given identifier together with
// its relationships.
func deleteNode(ctx context.Context, e *graph.Executor, d *schema.Descriptor, id int64) error {
	cypher := fmt.Sprintf("MATCH %s WHERE id(n) = $id DETACH DELETE n",
		schema.NodePattern(d, "n"))

	return e.Run(ctx, cypher, map[string]any{"id": id})
}

// findByID fetches one node by engine identifier.
func findByID[T any](ctx context.Context, e *graph.Executor, id int64) (T, bool, error) {
	d := schema.Describe(reflect.TypeFor[T]())

	cypher := fmt.Sprintf("MATCH %s WHERE id(n) = $id RETURN n",
		schema.NodePattern(d, "n"))

	return graph.QueryOptional[T](ctx, e, cypher, map[string]any{"id": id})
}

// findByProperty fetches the first node whose property equals the given
// value, using an inline filter so the match stays index-friendly.
func findByProperty[T any](ctx context.Context, e *graph.Executor, property string, value any) (T, bool, error) {
	d := schema.Describe(reflect.TypeFor[T]())

	cypher := fmt.Sprintf("MATCH %s RETURN n",
		schema.NodePattern(d, "n", schema.FilterPair{Key: property, Param: "value"}))

	return graph.QueryOptional[T](ctx, e, cypher, map[string]any{"value": value})
}

// typeOf shortens descriptor lookups for a static entity type.
func typeOf[T any]() reflect.Type {
	return reflect.TypeFor[T]()
}

// requireEntity guards the instance-and-identifier precondition shared
// by every mutating store method.
func requireEntity(entity any, id int64, what string) error {
	if entity == nil || reflect.ValueOf(entity).IsNil() {
		return types.NewError(types.PRECONDITION_FAILED, what+" cannot be nil")
	}
	if id == 0 {
		return types.NewError(types.PRECONDITION_FAILED, what+" has no identifier")
	}
	return nil
}
