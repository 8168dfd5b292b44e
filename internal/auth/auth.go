// Package auth issues and verifies the signed session tokens that carry a
// user's identity and role.
package auth

import (
	"context"
	"strings"

	"github.com/horsh321/teem-server/internal/model"

	"github.com/google/uuid"
)

// Identity is the authenticated subject of a request.
type Identity struct {
	UserID uuid.UUID
	Role   model.Role
}

// IsAdmin reports whether the identity carries the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == model.RoleAdmin
}

// RolesAll admits every known role. Merchant ownership is checked by the
// services, not by role.
var RolesAll = []model.Role{model.RoleUser, model.RoleSeller, model.RoleAdmin}

// Allowed reports whether role is in roles.
func Allowed(role model.Role, roles []model.Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, error) {
	if header == "" {
		return "", model.ErrUnauthenticated
	}
	token, ok := strings.CutPrefix(header, "Bearer ")
	token = strings.TrimSpace(token)
	if !ok || token == "" {
		return "", model.ErrTokenFormat
	}
	return token, nil
}

type contextKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// IdentityFrom returns the identity stored in ctx, if any.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(Identity)
	return id, ok
}
