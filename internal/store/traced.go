package store

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/gcanossa/graphidentity/internal/identity"
)

// TracedUserStore wraps a UserStore with OpenTelemetry tracing. Every
// operation gets a span named "graphidentity.user.<op>"; failures are
// recorded on the span and returned unchanged. Safe for concurrent use
// when the inner store is.
type TracedUserStore struct {
	inner  UserStore
	tracer trace.Tracer
}

// NewTracedUserStore wraps inner with tracing via the given tracer.
func NewTracedUserStore(inner UserStore, tracer trace.Tracer) *TracedUserStore {
	return &TracedUserStore{inner: inner, tracer: tracer}
}

var _ UserStore = (*TracedUserStore)(nil)

// traced runs op inside a span, recording the error outcome.
func (s *TracedUserStore) traced(ctx context.Context, name string, attrs []attribute.KeyValue, op func(context.Context) error) error {
	ctx, span := s.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
	defer span.End()

	err := op(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func userAttrs(user *identity.User) []attribute.KeyValue {
	if user == nil {
		return nil
	}
	return []attribute.KeyValue{attribute.Int64("graphidentity.user.id", user.ID)}
}

func (s *TracedUserStore) Create(ctx context.Context, user *identity.User) error {
	return s.traced(ctx, "graphidentity.user.create", nil, func(ctx context.Context) error {
		return s.inner.Create(ctx, user)
	})
}

func (s *TracedUserStore) Update(ctx context.Context, user *identity.User) error {
	return s.traced(ctx, "graphidentity.user.update", userAttrs(user), func(ctx context.Context) error {
		return s.inner.Update(ctx, user)
	})
}

func (s *TracedUserStore) Delete(ctx context.Context, user *identity.User) error {
	return s.traced(ctx, "graphidentity.user.delete", userAttrs(user), func(ctx context.Context) error {
		return s.inner.Delete(ctx, user)
	})
}

func (s *TracedUserStore) FindByID(ctx context.Context, id int64) (identity.User, bool, error) {
	var (
		user identity.User
		ok   bool
	)
	err := s.traced(ctx, "graphidentity.user.find_by_id",
		[]attribute.KeyValue{attribute.Int64("graphidentity.user.id", id)},
		func(ctx context.Context) error {
			var err error
			user, ok, err = s.inner.FindByID(ctx, id)
			return err
		})
	return user, ok, err
}

func (s *TracedUserStore) FindByName(ctx context.Context, userName string) (identity.User, bool, error) {
	var (
		user identity.User
		ok   bool
	)
	err := s.traced(ctx, "graphidentity.user.find_by_name", nil,
		func(ctx context.Context) error {
			var err error
			user, ok, err = s.inner.FindByName(ctx, userName)
			return err
		})
	return user, ok, err
}

func (s *TracedUserStore) AddClaim(ctx context.Context, user *identity.User, claim identity.Claim) error {
	return s.traced(ctx, "graphidentity.user.add_claim", userAttrs(user), func(ctx context.Context) error {
		return s.inner.AddClaim(ctx, user, claim)
	})
}

func (s *TracedUserStore) RemoveClaim(ctx context.Context, user *identity.User, claim identity.Claim) error {
	return s.traced(ctx, "graphidentity.user.remove_claim", userAttrs(user), func(ctx context.Context) error {
		return s.inner.RemoveClaim(ctx, user, claim)
	})
}

func (s *TracedUserStore) Claims(ctx context.Context, user *identity.User) ([]identity.Claim, error) {
	var claims []identity.Claim
	err := s.traced(ctx, "graphidentity.user.claims", userAttrs(user), func(ctx context.Context) error {
		var err error
		claims, err = s.inner.Claims(ctx, user)
		return err
	})
	return claims, err
}

func (s *TracedUserStore) AddLogin(ctx context.Context, user *identity.User, login identity.Login) error {
	return s.traced(ctx, "graphidentity.user.add_login", userAttrs(user), func(ctx context.Context) error {
		return s.inner.AddLogin(ctx, user, login)
	})
}

func (s *TracedUserStore) RemoveLogin(ctx context.Context, user *identity.User, login identity.Login) error {
	return s.traced(ctx, "graphidentity.user.remove_login", userAttrs(user), func(ctx context.Context) error {
		return s.inner.RemoveLogin(ctx, user, login)
	})
}

func (s *TracedUserStore) Logins(ctx context.Context, user *identity.User) ([]identity.Login, error) {
	var logins []identity.Login
	err := s.traced(ctx, "graphidentity.user.logins", userAttrs(user), func(ctx context.Context) error {
		var err error
		logins, err = s.inner.Logins(ctx, user)
		return err
	})
	return logins, err
}

func (s *TracedUserStore) FindByLogin(ctx context.Context, provider, providerKey string) (identity.User, bool, error) {
	var (
		user identity.User
		ok   bool
	)
	err := s.traced(ctx, "graphidentity.user.find_by_login",
		[]attribute.KeyValue{attribute.String("graphidentity.login.provider", provider)},
		func(ctx context.Context) error {
			var err error
			user, ok, err = s.inner.FindByLogin(ctx, provider, providerKey)
			return err
		})
	return user, ok, err
}

func (s *TracedUserStore) AddToRole(ctx context.Context, user *identity.User, roleName string) error {
	attrs := append(userAttrs(user), attribute.String("graphidentity.role.name", roleName))
	return s.traced(ctx, "graphidentity.user.add_to_role", attrs, func(ctx context.Context) error {
		return s.inner.AddToRole(ctx, user, roleName)
	})
}

func (s *TracedUserStore) RemoveFromRole(ctx context.Context, user *identity.User, roleName string) error {
	attrs := append(userAttrs(user), attribute.String("graphidentity.role.name", roleName))
	return s.traced(ctx, "graphidentity.user.remove_from_role", attrs, func(ctx context.Context) error {
		return s.inner.RemoveFromRole(ctx, user, roleName)
	})
}

func (s *TracedUserStore) Roles(ctx context.Context, user *identity.User) ([]identity.Role, error) {
	var roles []identity.Role
	err := s.traced(ctx, "graphidentity.user.roles", userAttrs(user), func(ctx context.Context) error {
		var err error
		roles, err = s.inner.Roles(ctx, user)
		return err
	})
	return roles, err
}

func (s *TracedUserStore) IsInRole(ctx context.Context, user *identity.User, roleName string) (bool, error) {
	var ok bool
	attrs := append(userAttrs(user), attribute.String("graphidentity.role.name", roleName))
	err := s.traced(ctx, "graphidentity.user.is_in_role", attrs, func(ctx context.Context) error {
		var err error
		ok, err = s.inner.IsInRole(ctx, user, roleName)
		return err
	})
	return ok, err
}
