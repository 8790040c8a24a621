package graph

import "context"

// Record is one returned graph record: named-value access over the
// columns of a result row. Node values arrive flattened into property
// maps carrying the engine-assigned identifier under
// schema.InternalIDProperty.
type Record map[string]any

// Session is a short-lived handle to the graph engine, used for one
// statement (occasionally two related ones) and then released. Sessions
// are not shared across calls or goroutines.
type Session interface {
	// Run executes a pattern-embedded Cypher statement with the given
	// parameter payload and returns the collected records. The statement
	// commits with the engine's per-statement autocommit semantics.
	Run(ctx context.Context, cypher string, params map[string]any) ([]Record, error)

	// Close releases the session. It must be called on every exit path.
	Close(ctx context.Context) error
}

// SessionSource hands out sessions. The Neo4j Provider implements it
// for production use; MockSessionSource implements it for tests.
type SessionSource interface {
	Session(ctx context.Context) Session
}
