package infrastructure

import (
	"context"

	"adsdash/internal/domain"
	"adsdash/pkg/logger"
)

// HeaderSessionProvider resolves the request identity placed on the context
// by the delivery middleware. The real auth backend lives outside this
// service; the dashboard only ever reads the identifier and role.
type HeaderSessionProvider struct{}

func NewHeaderSessionProvider() *HeaderSessionProvider {
	return &HeaderSessionProvider{}
}

// Current returns the identity attached to the context, or nil for an
// anonymous request.
func (p *HeaderSessionProvider) Current(ctx context.Context) *domain.Identity {
	id, _ := ctx.Value(logger.UserIDKey).(string)
	if id == "" {
		return nil
	}

	role, _ := ctx.Value(identityRoleKey).(string)
	return &domain.Identity{ID: id, Role: role}
}

type contextKey string

// identityRoleKey carries the role header alongside logger.UserIDKey.
const identityRoleKey contextKey = "user_role"

// WithIdentity stamps the identity fields onto a context. Used by the
// delivery middleware and by tests.
func WithIdentity(ctx context.Context, id, role string) context.Context {
	ctx = context.WithValue(ctx, logger.UserIDKey, id)
	return context.WithValue(ctx, identityRoleKey, role)
}
