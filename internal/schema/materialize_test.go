package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcanossa/graphidentity/internal/types"
)

func TestMaterialize_MatchesCaseSensitively(t *testing.T) {
	rec := map[string]any{
		"name":           "admin",
		"NormalizedName": "ADMIN", // wrong case: must not match
	}

	r, err := Materialize[role](rec)
	require.NoError(t, err)

	assert.Equal(t, "admin", r.Name)
	assert.Empty(t, r.NormalizedName, "case-mismatched key must leave the field at its zero value")
}

func TestMaterialize_PopulatesEngineIdentifier(t *testing.T) {
	rec := map[string]any{
		InternalIDProperty: int64(99),
		"name":             "admin",
	}

	r, err := Materialize[role](rec)
	require.NoError(t, err)

	assert.Equal(t, int64(99), r.ID)
}

func TestMaterialize_UnwrapsSingleNodeColumn(t *testing.T) {
	rec := map[string]any{
		"u": map[string]any{
			InternalIDProperty: int64(5),
			"userName":         "bob",
			"securityStamp":    "s1",
		},
	}

	a, err := Materialize[account](rec)
	require.NoError(t, err)

	assert.Equal(t, int64(5), a.ID)
	assert.Equal(t, "bob", a.UserName)
	assert.Equal(t, "s1", a.Stamp)
}

func TestMaterialize_WidenIsSafe(t *testing.T) {
	rec := map[string]any{
		"name":     "admin",
		"unknownA": "ignored",
		"unknownB": int64(7),
	}

	r, err := Materialize[role](rec)
	require.NoError(t, err)
	assert.Equal(t, "admin", r.Name)
}

func TestMaterialize_CoercionMismatch(t *testing.T) {
	rec := map[string]any{"name": int64(12)}

	_, err := Materialize[role](rec)
	require.Error(t, err)
	assert.True(t, types.HasCode(err, types.MATERIALIZATION_FAILED))
}

func TestMaterialize_NumericAndTemporalCoercion(t *testing.T) {
	type sample struct {
		Count   int
		Ratio   float64
		Active  bool
		Seen    time.Time
		Tags    []string
		Comment *string
	}

	seen := time.Date(2026, 2, 10, 12, 30, 0, 0, time.UTC)
	rec := map[string]any{
		"count":   int64(3),
		"ratio":   int64(2),
		"active":  true,
		"seen":    seen.Format(time.RFC3339Nano),
		"tags":    []any{"a", "b"},
		"comment": "hello",
	}

	s, err := Materialize[sample](rec)
	require.NoError(t, err)

	assert.Equal(t, 3, s.Count)
	assert.Equal(t, 2.0, s.Ratio)
	assert.True(t, s.Active)
	assert.True(t, seen.Equal(s.Seen))
	assert.Equal(t, []string{"a", "b"}, s.Tags)
	require.NotNil(t, s.Comment)
	assert.Equal(t, "hello", *s.Comment)
}

func TestMaterialize_NativeTimeValue(t *testing.T) {
	type sample struct{ Seen time.Time }

	seen := time.Date(2026, 2, 10, 12, 30, 0, 0, time.UTC)
	s, err := Materialize[sample](map[string]any{"seen": seen})
	require.NoError(t, err)
	assert.True(t, seen.Equal(s.Seen))
}

func TestMaterialize_AllocatesNilEmbeddedPointer(t *testing.T) {
	r, err := Materialize[auditedRole](map[string]any{
		"name":      "ops",
		"createdBy": "sam",
	})
	require.NoError(t, err)
	assert.Equal(t, "ops", r.Name)
	require.NotNil(t, r.audit, "embedded pointer is allocated when a promoted field is set")
	assert.Equal(t, "sam", r.CreatedBy)

	// No promoted value present: the embedded pointer stays nil.
	r, err = Materialize[auditedRole](map[string]any{"name": "ops"})
	require.NoError(t, err)
	assert.Nil(t, r.audit)
}

func TestMaterialize_NarrowingOverflow(t *testing.T) {
	type sample struct {
		Small int8
		Count uint16
	}

	_, err := Materialize[sample](map[string]any{"small": int64(300)})
	require.Error(t, err)
	assert.True(t, types.HasCode(err, types.MATERIALIZATION_FAILED),
		"out-of-range narrowing must surface, not wrap")

	_, err = Materialize[sample](map[string]any{"count": int64(100000)})
	require.Error(t, err)
	assert.True(t, types.HasCode(err, types.MATERIALIZATION_FAILED))

	s, err := Materialize[sample](map[string]any{"small": int64(127), "count": int64(65535)})
	require.NoError(t, err)
	assert.Equal(t, int8(127), s.Small)
	assert.Equal(t, uint16(65535), s.Count)
}

func TestMaterialize_AbsentFieldsKeepDefaults(t *testing.T) {
	r, err := Materialize[role](map[string]any{})
	require.NoError(t, err)
	assert.Zero(t, r.ID)
	assert.Empty(t, r.Name)
}
