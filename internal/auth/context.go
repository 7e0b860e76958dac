// internal/auth/context.go
//
// Caller identity carried in the request context.
//
// Usage
// -----
//     // After the bearer token is verified.
//     ctx = auth.WithIdentity(ctx, "admin@example.com")
//
//     // Services read it back.
//     who := auth.IdentityFrom(ctx)   // "" when anonymous
//
// Notes
// -----
// • Stores a domain.Identity value directly.  Anonymous requests simply
//   carry none.
// • Oxford commas, two spaces after periods.

package auth

import (
	"context"

	"github.com/yanizio/adept-content/internal/domain"
)

// identityKey is unexported to avoid context-key collisions.
type identityKey struct{}

// WithIdentity returns a new context carrying id.
func WithIdentity(ctx context.Context, id domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFrom extracts the caller identity.  It returns the zero Identity
// when none is set.
func IdentityFrom(ctx context.Context) domain.Identity {
	id, _ := ctx.Value(identityKey{}).(domain.Identity)
	return id
}
