package ports

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
)

// IdentityResolver resolves a bearer token to the authenticated customer.
// Returns errs.AuthenticationFailedError for unknown or expired tokens; any
// other error indicates the identity system itself failed.
type IdentityResolver interface {
	ResolveBearer(ctx context.Context, token string) (kernel.UserID, error)
}
