package graph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcanossa/graphidentity/internal/types"
)

func TestProvider_SessionBeforeConnect(t *testing.T) {
	p, err := NewProvider(DefaultConfig(), nil)
	require.NoError(t, err)

	// Statements against a never-connected provider fail instead of
	// panicking on the nil driver.
	e := NewExecutor(p)
	err = e.Run(context.Background(), "RETURN 1", nil)
	require.Error(t, err)
	assert.True(t, types.HasCode(err, types.ENGINE_QUERY_FAILED))
	assert.ErrorIs(t, err, types.NewError(types.GRAPH_CONNECTION_CLOSED, "not connected"))
}

func TestProvider_CloseWithoutConnect(t *testing.T) {
	p, err := NewProvider(DefaultConfig(), nil)
	require.NoError(t, err)

	assert.NoError(t, p.Close(context.Background()))
	assert.False(t, p.Health(context.Background()).IsHealthy())
}

func TestNewProvider_InvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.URI = ""

	_, err := NewProvider(cfg, nil)
	require.Error(t, err)
	assert.True(t, types.HasCode(err, types.GRAPH_INVALID_CONFIG))
}
