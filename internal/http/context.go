package http

import (
	"context"

	"github.com/example/staff-availability/internal/application"
)

type principalContextKey struct{}

func contextWithPrincipal(ctx context.Context, principal application.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey{}, principal)
}

// PrincipalFromContext returns the authenticated principal, if any.
func PrincipalFromContext(ctx context.Context) (application.Principal, bool) {
	principal, ok := ctx.Value(principalContextKey{}).(application.Principal)
	return principal, ok
}
