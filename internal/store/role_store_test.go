package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcanossa/graphidentity/internal/graph"
	"github.com/gcanossa/graphidentity/internal/identity"
	"github.com/gcanossa/graphidentity/internal/schema"
	"github.com/gcanossa/graphidentity/internal/types"
)

func TestGraphRoleStore_CreateAndFind(t *testing.T) {
	src := graph.NewMockSessionSource()
	src.AddResult([]graph.Record{{schema.InternalIDProperty: int64(5)}})
	s := NewGraphRoleStore(src)

	role := &identity.Role{Name: "admin", NormalizedName: "ADMIN"}
	err := s.Create(context.Background(), role)
	require.NoError(t, err)
	assert.Equal(t, int64(5), role.ID)

	calls := src.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "CREATE (n:Role) SET n = $props RETURN id(n) AS _id", calls[0].Cypher)

	props := calls[0].Params["props"].(map[string]any)
	assert.Equal(t, map[string]any{"name": "admin", "normalizedName": "ADMIN"}, props)

	src.AddResult([]graph.Record{
		{"n": map[string]any{schema.InternalIDProperty: int64(5), "name": "admin", "normalizedName": "ADMIN"}},
	})
	found, ok, err := s.FindByName(context.Background(), "admin")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, *role, found)
}

func TestGraphRoleStore_UpdateDelete(t *testing.T) {
	src := graph.NewMockSessionSource()
	s := NewGraphRoleStore(src)

	role := &identity.Role{ID: 5, Name: "ops"}
	require.NoError(t, s.Update(context.Background(), role))
	require.NoError(t, s.Delete(context.Background(), role))

	calls := src.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "MATCH (n:Role) WHERE id(n) = $id SET n += $props", calls[0].Cypher)
	assert.Equal(t, "MATCH (n:Role) WHERE id(n) = $id DETACH DELETE n", calls[1].Cypher)
}

func TestGraphRoleStore_Preconditions(t *testing.T) {
	s := NewGraphRoleStore(graph.NewMockSessionSource())
	ctx := context.Background()

	assert.True(t, types.HasCode(s.Create(ctx, nil), types.PRECONDITION_FAILED))
	assert.True(t, types.HasCode(s.Update(ctx, &identity.Role{}), types.PRECONDITION_FAILED))
	assert.True(t, types.HasCode(s.Delete(ctx, nil), types.PRECONDITION_FAILED))

	_, _, err := s.FindByName(ctx, "")
	assert.True(t, types.HasCode(err, types.PRECONDITION_FAILED))
}

func TestGraphRoleStore_FindByID_Absent(t *testing.T) {
	s := NewGraphRoleStore(graph.NewMockSessionSource())

	_, ok, err := s.FindByID(context.Background(), 404)
	require.NoError(t, err)
	assert.False(t, ok)
}
