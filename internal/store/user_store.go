package store

import (
	"context"
	"fmt"

	"github.com/gcanossa/graphidentity/internal/graph"
	"github.com/gcanossa/graphidentity/internal/identity"
	"github.com/gcanossa/graphidentity/internal/schema"
	"github.com/gcanossa/graphidentity/internal/types"
)

// GraphUserStore persists users and their claim, login, and role
// associations in the property graph. Each method runs to completion
// independently: one session per statement, implicit autocommit, no
// coordination with other in-flight operations.
type GraphUserStore struct {
	exec *graph.Executor
}

// NewGraphUserStore creates a user store over the given session source.
func NewGraphUserStore(src graph.SessionSource) *GraphUserStore {
	return &GraphUserStore{exec: graph.NewExecutor(src)}
}

var _ UserStore = (*GraphUserStore)(nil)

// Create persists the user as a new node and assigns user.ID from the
// engine. An empty SecurityStamp is initialized before the write.
func (s *GraphUserStore) Create(ctx context.Context, user *identity.User) error {
	if user == nil {
		return types.NewError(types.PRECONDITION_FAILED, "user cannot be nil")
	}
	if user.SecurityStamp == "" {
		user.SecurityStamp = types.NewID().String()
	}

	id, err := createNode(ctx, s.exec, user)
	if err != nil {
		return err
	}
	user.ID = id
	return nil
}

// Update overwrites the user's mapped properties. The SecurityStamp is
// regenerated on every update; it is not verified against the stored
// value, so concurrent updates resolve with per-statement consistency.
func (s *GraphUserStore) Update(ctx context.Context, user *identity.User) error {
	if err := requireEntity(user, userID(user), "user"); err != nil {
		return err
	}
	user.SecurityStamp = types.NewID().String()
	return updateNode(ctx, s.exec, user, user.ID)
}

// Delete removes the user node and all its relationships.
func (s *GraphUserStore) Delete(ctx context.Context, user *identity.User) error {
	if err := requireEntity(user, userID(user), "user"); err != nil {
		return err
	}
	return deleteNode(ctx, s.exec, schema.DescribeValue(user), user.ID)
}

// FindByID fetches a user by engine identifier; ok=false when absent.
func (s *GraphUserStore) FindByID(ctx context.Context, id int64) (identity.User, bool, error) {
	return findByID[identity.User](ctx, s.exec, id)
}

// FindByName fetches a user by exact userName match; ok=false when
// absent. Callers wanting case-insensitive lookup match on
// NormalizedUserName themselves.
func (s *GraphUserStore) FindByName(ctx context.Context, userName string) (identity.User, bool, error) {
	if userName == "" {
		return identity.User{}, false, types.NewError(types.PRECONDITION_FAILED, "userName cannot be empty")
	}
	return findByProperty[identity.User](ctx, s.exec, "userName", userName)
}

// AddClaim attaches a claim node to the user.
func (s *GraphUserStore) AddClaim(ctx context.Context, user *identity.User, claim identity.Claim) error {
	if err := requireEntity(user, userID(user), "user"); err != nil {
		return err
	}
	props, err := schema.Project(claim, schema.ExcludeListed)
	if err != nil {
		return err
	}

	cypher := fmt.Sprintf("MATCH %s WHERE id(u) = $id CREATE (u)%s%s SET c = $props",
		userPattern("u"),
		schema.RelationshipPattern(RelHasClaim, "", schema.Outgoing),
		schema.NodePattern(schema.DescribeValue(claim), "c"))

	return s.exec.Run(ctx, cypher, map[string]any{"id": user.ID, "props": props})
}

// RemoveClaim detaches and deletes the user's claim nodes matching the
// given type and value. Removing an absent claim is a no-op.
func (s *GraphUserStore) RemoveClaim(ctx context.Context, user *identity.User, claim identity.Claim) error {
	if err := requireEntity(user, userID(user), "user"); err != nil {
		return err
	}

	cypher := fmt.Sprintf("MATCH %s WHERE id(u) = $id MATCH (u)%s%s DETACH DELETE c",
		userPattern("u"),
		schema.RelationshipPattern(RelHasClaim, "", schema.Outgoing),
		schema.NodePattern(schema.DescribeValue(claim), "c",
			schema.FilterPair{Key: "type", Param: "type"},
			schema.FilterPair{Key: "value", Param: "value"}))

	return s.exec.Run(ctx, cypher, map[string]any{
		"id":    user.ID,
		"type":  claim.Type,
		"value": claim.Value,
	})
}

// Claims returns every claim attached to the user.
func (s *GraphUserStore) Claims(ctx context.Context, user *identity.User) ([]identity.Claim, error) {
	if err := requireEntity(user, userID(user), "user"); err != nil {
		return nil, err
	}

	cypher := fmt.Sprintf("MATCH %s WHERE id(u) = $id MATCH (u)%s%s RETURN c",
		userPattern("u"),
		schema.RelationshipPattern(RelHasClaim, "", schema.Outgoing),
		schema.NodePattern(schema.Describe(typeOf[identity.Claim]()), "c"))

	return graph.QueryMany[identity.Claim](ctx, s.exec, cypher, map[string]any{"id": user.ID})
}

// AddLogin attaches an external-provider login node to the user.
func (s *GraphUserStore) AddLogin(ctx context.Context, user *identity.User, login identity.Login) error {
	if err := requireEntity(user, userID(user), "user"); err != nil {
		return err
	}
	props, err := schema.Project(login, schema.ExcludeListed)
	if err != nil {
		return err
	}

	cypher := fmt.Sprintf("MATCH %s WHERE id(u) = $id CREATE (u)%s%s SET l = $props",
		userPattern("u"),
		schema.RelationshipPattern(RelHasLogin, "", schema.Outgoing),
		schema.NodePattern(schema.DescribeValue(login), "l"))

	return s.exec.Run(ctx, cypher, map[string]any{"id": user.ID, "props": props})
}

// RemoveLogin detaches and deletes the user's login for the given
// provider and key. Removing an absent login is a no-op.
func (s *GraphUserStore) RemoveLogin(ctx context.Context, user *identity.User, login identity.Login) error {
	if err := requireEntity(user, userID(user), "user"); err != nil {
		return err
	}

	cypher := fmt.Sprintf("MATCH %s WHERE id(u) = $id MATCH (u)%s%s DETACH DELETE l",
		userPattern("u"),
		schema.RelationshipPattern(RelHasLogin, "", schema.Outgoing),
		schema.NodePattern(schema.DescribeValue(login), "l",
			schema.FilterPair{Key: "loginProvider", Param: "provider"},
			schema.FilterPair{Key: "providerKey", Param: "key"}))

	return s.exec.Run(ctx, cypher, map[string]any{
		"id":       user.ID,
		"provider": login.LoginProvider,
		"key":      login.ProviderKey,
	})
}

// Logins returns every external login attached to the user.
func (s *GraphUserStore) Logins(ctx context.Context, user *identity.User) ([]identity.Login, error) {
	if err := requireEntity(user, userID(user), "user"); err != nil {
		return nil, err
	}

	cypher := fmt.Sprintf("MATCH %s WHERE id(u) = $id MATCH (u)%s%s RETURN l",
		userPattern("u"),
		schema.RelationshipPattern(RelHasLogin, "", schema.Outgoing),
		schema.NodePattern(schema.Describe(typeOf[identity.Login]()), "l"))

	return graph.QueryMany[identity.Login](ctx, s.exec, cypher, map[string]any{"id": user.ID})
}

// FindByLogin fetches the user owning the given provider login;
// ok=false when absent.
func (s *GraphUserStore) FindByLogin(ctx context.Context, provider, providerKey string) (identity.User, bool, error) {
	if provider == "" || providerKey == "" {
		return identity.User{}, false, types.NewError(types.PRECONDITION_FAILED,
			"provider and providerKey cannot be empty")
	}

	cypher := fmt.Sprintf("MATCH %s%s%s RETURN u",
		userPattern("u"),
		schema.RelationshipPattern(RelHasLogin, "", schema.Outgoing),
		schema.NodePattern(schema.Describe(typeOf[identity.Login]()), "",
			schema.FilterPair{Key: "loginProvider", Param: "provider"},
			schema.FilterPair{Key: "providerKey", Param: "key"}))

	return graph.QueryOptional[identity.User](ctx, s.exec, cypher, map[string]any{
		"provider": provider,
		"key":      providerKey,
	})
}

// AddToRole relates the user to the named role. The role is resolved
// first, then the relationship is written as a dependent statement; the
// executor re-checks cancellation between the two dispatches. A missing
// role is a precondition failure, not a silent create.
func (s *GraphUserStore) AddToRole(ctx context.Context, user *identity.User, roleName string) error {
	if err := requireEntity(user, userID(user), "user"); err != nil {
		return err
	}

	role, ok, err := findByProperty[identity.Role](ctx, s.exec, "name", roleName)
	if err != nil {
		return err
	}
	if !ok {
		return types.NewError(types.PRECONDITION_FAILED,
			fmt.Sprintf("role %q does not exist", roleName))
	}

	cypher := fmt.Sprintf("MATCH %s WHERE id(u) = $uid MATCH %s WHERE id(r) = $rid MERGE (u)%s(r)",
		userPattern("u"),
		schema.NodePattern(schema.Describe(typeOf[identity.Role]()), "r"),
		schema.RelationshipPattern(RelInRole, "", schema.Outgoing))

	return s.exec.Run(ctx, cypher, map[string]any{"uid": user.ID, "rid": role.ID})
}

// RemoveFromRole deletes the membership relationship, leaving the role
// node itself in place. Removing an absent membership is a no-op.
func (s *GraphUserStore) RemoveFromRole(ctx context.Context, user *identity.User, roleName string) error {
	if err := requireEntity(user, userID(user), "user"); err != nil {
		return err
	}

	cypher := fmt.Sprintf("MATCH %s WHERE id(u) = $id MATCH (u)%s%s DELETE m",
		userPattern("u"),
		schema.RelationshipPattern(RelInRole, "m", schema.Outgoing),
		schema.NodePattern(schema.Describe(typeOf[identity.Role]()), "",
			schema.FilterPair{Key: "name", Param: "name"}))

	return s.exec.Run(ctx, cypher, map[string]any{"id": user.ID, "name": roleName})
}

// Roles returns every role the user belongs to.
func (s *GraphUserStore) Roles(ctx context.Context, user *identity.User) ([]identity.Role, error) {
	if err := requireEntity(user, userID(user), "user"); err != nil {
		return nil, err
	}

	cypher := fmt.Sprintf("MATCH %s WHERE id(u) = $id MATCH (u)%s%s RETURN r",
		userPattern("u"),
		schema.RelationshipPattern(RelInRole, "", schema.Outgoing),
		schema.NodePattern(schema.Describe(typeOf[identity.Role]()), "r"))

	return graph.QueryMany[identity.Role](ctx, s.exec, cypher, map[string]any{"id": user.ID})
}

// IsInRole reports whether the user belongs to the named role.
func (s *GraphUserStore) IsInRole(ctx context.Context, user *identity.User, roleName string) (bool, error) {
	if err := requireEntity(user, userID(user), "user"); err != nil {
		return false, err
	}

	cypher := fmt.Sprintf("MATCH %s WHERE id(u) = $id MATCH (u)%s%s RETURN r",
		userPattern("u"),
		schema.RelationshipPattern(RelInRole, "", schema.Outgoing),
		schema.NodePattern(schema.Describe(typeOf[identity.Role]()), "r",
			schema.FilterPair{Key: "name", Param: "name"}))

	_, ok, err := graph.QueryOptional[identity.Role](ctx, s.exec, cypher,
		map[string]any{"id": user.ID, "name": roleName})
	return ok, err
}

func userPattern(variable string) string {
	return schema.NodePattern(schema.Describe(typeOf[identity.User]()), variable)
}

func userID(user *identity.User) int64 {
	if user == nil {
		return 0
	}
	return user.ID
}
