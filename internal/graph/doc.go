// Package graph is the boundary with the property-graph engine.
//
// A Provider owns the Neo4j driver and hands out short-lived sessions;
// the Executor runs pattern-embedded Cypher through one session per
// logical operation and releases it on every exit path. Statements run
// with the engine's implicit per-statement autocommit semantics: this
// layer opens no multi-statement transactions.
//
// Cancellation is a pre-flight gate only. Every operation observes the
// context before acquiring a session and fails immediately when already
// cancelled, but a dispatched statement is not interruptible mid-flight.
// The underlying session protocol offers no mid-statement abort, so the
// gate-only behavior is a deliberate, documented limitation rather than
// an oversight.
package graph
