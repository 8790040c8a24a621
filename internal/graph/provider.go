package graph

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/config"

	"github.com/gcanossa/graphidentity/internal/schema"
	"github.com/gcanossa/graphidentity/internal/types"
)

// Provider owns the Neo4j driver and hands out short-lived sessions.
// It is safe for concurrent use; each call site acquires its own
// session, matching the engine's one-operation-per-session contract.
type Provider struct {
	config Config
	driver neo4j.DriverWithContext
	logger *slog.Logger
}

// NewProvider creates a Provider from an explicit configuration value.
// The provider must be connected via Connect() before use.
func NewProvider(cfg Config, logger *slog.Logger) (*Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Provider{
		config: cfg,
		logger: logger,
	}, nil
}

// Connect establishes the driver and verifies connectivity.
func (p *Provider) Connect(ctx context.Context) error {
	auth := neo4j.BasicAuth(p.config.Username, p.config.Password, "")

	driver, err := neo4j.NewDriverWithContext(p.config.URI, auth, func(c *config.Config) {
		if p.config.MaxConnectionPoolSize > 0 {
			c.MaxConnectionPoolSize = p.config.MaxConnectionPoolSize
		}
		c.ConnectionAcquisitionTimeout = p.config.ConnectionTimeout
	})
	if err != nil {
		return types.WrapError(types.GRAPH_CONNECTION_FAILED,
			"failed to create driver", err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return types.WrapError(types.GRAPH_CONNECTION_FAILED,
			fmt.Sprintf("failed to reach %s", p.config.URI), err)
	}

	p.driver = driver
	p.logger.Info("connected to graph engine", "uri", p.config.URI, "database", p.config.Database)
	return nil
}

// Close releases all resources and closes the database connection.
func (p *Provider) Close(ctx context.Context) error {
	if p.driver == nil {
		return nil
	}

	if err := p.driver.Close(ctx); err != nil {
		return types.WrapError(types.GRAPH_CONNECTION_CLOSED,
			"failed to close driver", err)
	}

	p.driver = nil
	p.logger.Info("graph engine connection closed")
	return nil
}

// Health returns the current health status of the engine connection.
func (p *Provider) Health(ctx context.Context) types.HealthStatus {
	if p.driver == nil {
		return types.Unhealthy("driver not initialized")
	}

	healthCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := p.driver.VerifyConnectivity(healthCtx); err != nil {
		return types.Unhealthy(fmt.Sprintf("connectivity check failed: %v", err))
	}

	return types.Healthy("connected")
}

// Session acquires a short-lived session scoped to the configured
// database. The caller releases it via Close on every exit path.
// Before Connect (or after Close) the returned session fails every
// statement with GRAPH_CONNECTION_CLOSED instead of touching the
// driver.
func (p *Provider) Session(ctx context.Context) Session {
	if p.driver == nil {
		return errorSession{err: types.NewError(types.GRAPH_CONNECTION_CLOSED,
			"not connected: call Connect first")}
	}
	return &neo4jSession{
		inner: p.driver.NewSession(ctx, neo4j.SessionConfig{
			DatabaseName: p.config.Database,
		}),
	}
}

// errorSession satisfies Session for a provider with no live driver.
type errorSession struct {
	err error
}

func (s errorSession) Run(ctx context.Context, cypher string, params map[string]any) ([]Record, error) {
	return nil, s.err
}

func (s errorSession) Close(ctx context.Context) error {
	return nil
}

// neo4jSession adapts a driver session to the package Session interface,
// collecting records eagerly so the session can be released before
// results are consumed.
type neo4jSession struct {
	inner neo4j.SessionWithContext
}

func (s *neo4jSession) Run(ctx context.Context, cypher string, params map[string]any) ([]Record, error) {
	result, err := s.inner.Run(ctx, cypher, params)
	if err != nil {
		return nil, err
	}

	raw, err := result.Collect(ctx)
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(raw))
	for _, r := range raw {
		rec := make(Record, len(r.Keys))
		for i, key := range r.Keys {
			rec[key] = convertValue(r.Values[i])
		}
		records = append(records, rec)
	}
	return records, nil
}

func (s *neo4jSession) Close(ctx context.Context) error {
	return s.inner.Close(ctx)
}

// convertValue flattens graph entities into plain property maps so the
// materializer never sees driver types. Nodes and relationships carry
// their engine-assigned identifier under schema.InternalIDProperty;
// everything else passes through verbatim.
func convertValue(v any) any {
	switch e := v.(type) {
	case neo4j.Node:
		props := make(map[string]any, len(e.Props)+1)
		for k, pv := range e.Props {
			props[k] = pv
		}
		props[schema.InternalIDProperty] = e.GetId()
		return props
	case neo4j.Relationship:
		props := make(map[string]any, len(e.Props)+1)
		for k, pv := range e.Props {
			props[k] = pv
		}
		props[schema.InternalIDProperty] = e.GetId()
		return props
	default:
		return v
	}
}
