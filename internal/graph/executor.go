package graph

import (
	"context"

	"github.com/gcanossa/graphidentity/internal/schema"
	"github.com/gcanossa/graphidentity/internal/types"
)

// Executor runs pattern-embedded queries against a SessionSource. Each
// operation observes the cancellation gate, acquires one short-lived
// session, uses it for exactly one statement, and releases it before
// returning. Absence of results is never an error: QueryMany returns an
// empty slice and QueryOptional reports ok=false.
//
// Engine failures are surfaced with code ENGINE_QUERY_FAILED and the
// engine's error preserved unchanged as the cause; no retry and no
// transient-vs-fatal classification happens here.
type Executor struct {
	src SessionSource
}

// NewExecutor creates an Executor over the given session source.
func NewExecutor(src SessionSource) *Executor {
	return &Executor{src: src}
}

// Run executes a statement expecting no result. Already-cancelled
// contexts fail before any session interaction.
func (e *Executor) Run(ctx context.Context, cypher string, params map[string]any) error {
	_, err := e.Collect(ctx, cypher, params)
	return err
}

// Collect executes a statement and returns the raw records. Most
// callers want the typed QueryMany/QueryOptional instead; Collect is
// the shared dispatch path and is exported for queries whose rows are
// scalars rather than nodes.
func (e *Executor) Collect(ctx context.Context, cypher string, params map[string]any) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, types.WrapError(types.OPERATION_CANCELLED,
			"cancelled before dispatch", err)
	}

	sess := e.src.Session(ctx)
	records, err := sess.Run(ctx, cypher, params)
	if cerr := sess.Close(ctx); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, types.WrapError(types.ENGINE_QUERY_FAILED,
			"query execution failed", err)
	}

	return records, nil
}

// QueryMany executes a statement and materializes every returned record
// into a T. An empty result yields an empty slice, not an error.
func QueryMany[T any](ctx context.Context, e *Executor, cypher string, params map[string]any) ([]T, error) {
	records, err := e.Collect(ctx, cypher, params)
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, len(records))
	for _, rec := range records {
		v, err := schema.Materialize[T](rec)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// QueryOptional executes a statement and materializes the first
// returned record, reporting ok=false when the result is empty.
func QueryOptional[T any](ctx context.Context, e *Executor, cypher string, params map[string]any) (T, bool, error) {
	var zero T

	records, err := e.Collect(ctx, cypher, params)
	if err != nil {
		return zero, false, err
	}
	if len(records) == 0 {
		return zero, false, nil
	}

	v, err := schema.Materialize[T](records[0])
	if err != nil {
		return zero, false, err
	}
	return v, true, nil
}
