package graph

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gcanossa/graphidentity/internal/types"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "empty URI",
			mutate:  func(c *Config) { c.URI = "" },
			wantErr: true,
		},
		{
			name:    "empty username",
			mutate:  func(c *Config) { c.Username = "" },
			wantErr: true,
		},
		{
			name:    "empty password",
			mutate:  func(c *Config) { c.Password = "" },
			wantErr: true,
		},
		{
			name:    "non-positive timeout",
			mutate:  func(c *Config) { c.ConnectionTimeout = 0 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.True(t, types.HasCode(err, types.GRAPH_INVALID_CONFIG))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "bolt://localhost:7687", cfg.URI)
	assert.Equal(t, 50, cfg.MaxConnectionPoolSize)
	assert.Equal(t, 30*time.Second, cfg.ConnectionTimeout)
}
