package contexthelpers

import (
	"context"

	"github.com/hyun7520/RAG-Complaint-2nd/internal/models"
)

func IsAuthenticated(ctx context.Context) bool {
	isAuthenticated, ok := ctx.Value(isAuthenticatedContextKey).(bool)
	if !ok {
		return false
	}

	return isAuthenticated
}

// AuthenticatedIdentity returns the identity attached to the request context.
// The zero value means no authenticated principal.
func AuthenticatedIdentity(ctx context.Context) models.Identity {
	identity, ok := ctx.Value(authenticatedIdentityContextKey).(models.Identity)
	if !ok {
		return models.Identity{}
	}

	return identity
}

func CurrentPath(ctx context.Context) string {
	currentPath, ok := ctx.Value(currentPathContextKey).(string)
	if !ok {
		return ""
	}

	return currentPath
}

func CSRFToken(ctx context.Context) string {
	csrfToken, ok := ctx.Value(csrfTokenContextKey).(string)
	if !ok {
		return ""
	}

	return csrfToken
}

func CSPNonce(ctx context.Context) string {
	cspNonce, ok := ctx.Value(cspNonceContextKey).(string)
	if !ok {
		return ""
	}

	return cspNonce
}
