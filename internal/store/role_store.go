package store

import (
	"context"

	"github.com/gcanossa/graphidentity/internal/graph"
	"github.com/gcanossa/graphidentity/internal/identity"
	"github.com/gcanossa/graphidentity/internal/schema"
	"github.com/gcanossa/graphidentity/internal/types"
)

// GraphRoleStore persists roles in the property graph.
type GraphRoleStore struct {
	exec *graph.Executor
}

// NewGraphRoleStore creates a role store over the given session source.
func NewGraphRoleStore(src graph.SessionSource) *GraphRoleStore {
	return &GraphRoleStore{exec: graph.NewExecutor(src)}
}

var _ RoleStore = (*GraphRoleStore)(nil)

// Create persists the role as a new node and assigns role.ID from the
// engine.
func (s *GraphRoleStore) Create(ctx context.Context, role *identity.Role) error {
	if role == nil {
		return types.NewError(types.PRECONDITION_FAILED, "role cannot be nil")
	}

	id, err := createNode(ctx, s.exec, role)
	if err != nil {
		return err
	}
	role.ID = id
	return nil
}

// Update overwrites the role's mapped properties.
func (s *GraphRoleStore) Update(ctx context.Context, role *identity.Role) error {
	if err := requireEntity(role, roleID(role), "role"); err != nil {
		return err
	}
	return updateNode(ctx, s.exec, role, role.ID)
}

// Delete removes the role node and any membership relationships.
func (s *GraphRoleStore) Delete(ctx context.Context, role *identity.Role) error {
	if err := requireEntity(role, roleID(role), "role"); err != nil {
		return err
	}
	return deleteNode(ctx, s.exec, schema.DescribeValue(role), role.ID)
}

// FindByID fetches a role by engine identifier; ok=false when absent.
func (s *GraphRoleStore) FindByID(ctx context.Context, id int64) (identity.Role, bool, error) {
	return findByID[identity.Role](ctx, s.exec, id)
}

// FindByName fetches a role by exact name match; ok=false when absent.
func (s *GraphRoleStore) FindByName(ctx context.Context, name string) (identity.Role, bool, error) {
	if name == "" {
		return identity.Role{}, false, types.NewError(types.PRECONDITION_FAILED, "name cannot be empty")
	}
	return findByProperty[identity.Role](ctx, s.exec, "name", name)
}

func roleID(role *identity.Role) int64 {
	if role == nil {
		return 0
	}
	return role.ID
}
