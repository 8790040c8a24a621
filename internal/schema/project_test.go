package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcanossa/graphidentity/internal/types"
)

func TestProject_ExcludeListed(t *testing.T) {
	r := role{ID: 7, Name: "a", NormalizedName: "A"}

	props, err := Project(r, ExcludeListed, "id")
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"name":           "a",
		"normalizedName": "A",
	}, props)
}

func TestProject_IncludeOnly(t *testing.T) {
	r := role{Name: "admin", NormalizedName: "ADMIN"}

	props, err := Project(&r, IncludeOnly, "name")
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"name": "admin"}, props)
}

func TestProject_NeverEmitsIdentifierOrReadonly(t *testing.T) {
	a := account{ID: 42, UserName: "bob", Stamp: "s1", Revision: 3}
	a.CreatedAt = "2024-01-01"

	props, err := Project(a, ExcludeListed)
	require.NoError(t, err)

	assert.NotContains(t, props, "id")
	assert.NotContains(t, props, "revision")
	assert.NotContains(t, props, "secret")
	assert.Equal(t, "bob", props["userName"])
	assert.Equal(t, "s1", props["securityStamp"])
	assert.Equal(t, "2024-01-01", props["createdAt"])
}

func TestProject_ExclusionIsExact(t *testing.T) {
	r := role{Name: "a", NormalizedName: "A"}

	// Case differs: nothing is excluded.
	props, err := Project(r, ExcludeListed, "Name", "NORMALIZEDNAME")
	require.NoError(t, err)
	assert.Len(t, props, 2)

	// Names not on the descriptor are ignored, never added.
	props, err = Project(r, IncludeOnly, "name", "doesNotExist")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "a"}, props)
}

func TestProject_NilEmbeddedPointer(t *testing.T) {
	// A nil embedded pointer leaves its promoted fields valueless; they
	// are omitted from the payload rather than panicking the walk.
	props, err := Project(auditedRole{Name: "ops"}, ExcludeListed)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "ops"}, props)

	r := auditedRole{audit: &audit{CreatedBy: "sam"}, Name: "ops"}
	props, err = Project(r, ExcludeListed)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "ops", "createdBy": "sam"}, props)
}

func TestProject_NilInstance(t *testing.T) {
	_, err := Project(nil, ExcludeListed)
	require.Error(t, err)
	assert.True(t, types.HasCode(err, types.PRECONDITION_FAILED))

	var r *role
	_, err = Project(r, ExcludeListed)
	require.Error(t, err)
	assert.True(t, types.HasCode(err, types.PRECONDITION_FAILED))
}

func TestProject_NestedValuesPassThroughOpaquely(t *testing.T) {
	type bundle struct {
		Tags []string
		Meta map[string]string
	}
	b := bundle{Tags: []string{"x", "y"}, Meta: map[string]string{"k": "v"}}

	props, err := Project(b, ExcludeListed)
	require.NoError(t, err)

	assert.Equal(t, []string{"x", "y"}, props["tags"])
	assert.Equal(t, map[string]string{"k": "v"}, props["meta"])
}
