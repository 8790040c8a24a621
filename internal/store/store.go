// Package store composes the mapping core into the identity contract:
// CRUD plus claim, login, and role association over users and roles.
// Store methods are thin call sites; descriptors, projections, pattern
// fragments, execution, and materialization all come from the schema
// and graph packages.
package store

import (
	"context"

	"github.com/gcanossa/graphidentity/internal/identity"
)

// Relationship types of the identity graph. These constants are the
// only relationship tokens that ever reach a pattern fragment.
const (
	RelHasClaim = "HAS_CLAIM"
	RelHasLogin = "HAS_LOGIN"
	RelInRole   = "IN_ROLE"
)

// UserStore is the identity contract surface over users. Absence is
// reported structurally (ok=false or an empty slice), never as an
// error.
type UserStore interface {
	Create(ctx context.Context, user *identity.User) error
	Update(ctx context.Context, user *identity.User) error
	Delete(ctx context.Context, user *identity.User) error
	FindByID(ctx context.Context, id int64) (identity.User, bool, error)
	FindByName(ctx context.Context, userName string) (identity.User, bool, error)

	AddClaim(ctx context.Context, user *identity.User, claim identity.Claim) error
	RemoveClaim(ctx context.Context, user *identity.User, claim identity.Claim) error
	Claims(ctx context.Context, user *identity.User) ([]identity.Claim, error)

	AddLogin(ctx context.Context, user *identity.User, login identity.Login) error
	RemoveLogin(ctx context.Context, user *identity.User, login identity.Login) error
	Logins(ctx context.Context, user *identity.User) ([]identity.Login, error)
	FindByLogin(ctx context.Context, provider, providerKey string) (identity.User, bool, error)

	AddToRole(ctx context.Context, user *identity.User, roleName string) error
	RemoveFromRole(ctx context.Context, user *identity.User, roleName string) error
	Roles(ctx context.Context, user *identity.User) ([]identity.Role, error)
	IsInRole(ctx context.Context, user *identity.User, roleName string) (bool, error)
}

// RoleStore is the identity contract surface over roles.
type RoleStore interface {
	Create(ctx context.Context, role *identity.Role) error
	Update(ctx context.Context, role *identity.Role) error
	Delete(ctx context.Context, role *identity.Role) error
	FindByID(ctx context.Context, id int64) (identity.Role, bool, error)
	FindByName(ctx context.Context, name string) (identity.Role, bool, error)
}
