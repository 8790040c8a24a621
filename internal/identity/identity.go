// Package identity defines the entity types persisted by the stores.
// Field-to-property mapping is driven by the schema package: the
// engine-assigned node identifier is tagged `graph:",id"` and every
// other exported field becomes a graph property.
package identity

// User is an identity account persisted as a node. ID is the graph
// engine's internal identifier, populated on create; it is never
// written back as a property.
//
// SecurityStamp is an opaque version stamp regenerated on every update.
// It is not verified on write: two concurrent updates to the same user
// resolve with the engine's per-statement consistency.
type User struct {
	ID                 int64 `graph:",id"`
	UserName           string
	NormalizedUserName string
	Email              string
	PasswordHash       string
	SecurityStamp      string
}

// Role is a named authorization group persisted as a node.
type Role struct {
	ID             int64 `graph:",id"`
	Name           string
	NormalizedName string
}

// Claim is a typed statement about a user, persisted as a node related
// to its owner.
type Claim struct {
	ID    int64 `graph:",id"`
	Type  string
	Value string
}

// Login is an external-provider credential association, persisted as a
// node related to its owner.
type Login struct {
	ID            int64 `graph:",id"`
	LoginProvider string
	ProviderKey   string
}
