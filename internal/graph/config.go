package graph

import (
	"time"

	"github.com/gcanossa/graphidentity/internal/types"
)

// Config contains connection settings for the graph engine. It is an
// explicit value handed to NewProvider; nothing in this package reads
// ambient global state.
type Config struct {
	// URI is the connection URI for the graph database.
	// For Neo4j, use:
	//   - "bolt://host:port" for unencrypted connections
	//   - "bolt+s://host:port" for TLS encrypted connections
	//   - "neo4j://" or "neo4j+s://" for routing
	URI string `yaml:"uri" mapstructure:"uri"`

	// Username for authentication.
	Username string `yaml:"username" mapstructure:"username"`

	// Password for authentication.
	Password string `yaml:"password" mapstructure:"password"`

	// Database name to connect to. Empty string uses the default database.
	Database string `yaml:"database" mapstructure:"database"`

	// MaxConnectionPoolSize limits the number of connections in the pool.
	// Zero or negative values use the driver default.
	MaxConnectionPoolSize int `yaml:"max_connection_pool_size" mapstructure:"max_connection_pool_size"`

	// ConnectionTimeout is the maximum time to wait for a connection.
	ConnectionTimeout time.Duration `yaml:"connection_timeout" mapstructure:"connection_timeout"`
}

// DefaultConfig returns a Config with sensible defaults for a local
// Neo4j instance.
func DefaultConfig() Config {
	return Config{
		URI:                   "bolt://localhost:7687",
		Username:              "neo4j",
		Password:              "password",
		Database:              "",
		MaxConnectionPoolSize: 50,
		ConnectionTimeout:     30 * time.Second,
	}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.URI == "" {
		return types.NewError(types.GRAPH_INVALID_CONFIG, "URI cannot be empty")
	}
	if c.Username == "" {
		return types.NewError(types.GRAPH_INVALID_CONFIG, "Username cannot be empty")
	}
	if c.Password == "" {
		return types.NewError(types.GRAPH_INVALID_CONFIG, "Password cannot be empty")
	}
	if c.ConnectionTimeout <= 0 {
		return types.NewError(types.GRAPH_INVALID_CONFIG, "ConnectionTimeout must be positive")
	}
	return nil
}
