package auth

import "context"

type contextKey string

const authContextKey contextKey = "catalog_admin"

// AuthInfo identifies the admin key behind a request.
type AuthInfo struct {
	KeyID string
	Name  string
}

func ContextWithAuth(ctx context.Context, info *AuthInfo) context.Context {
	return context.WithValue(ctx, authContextKey, info)
}

func AuthFromContext(ctx context.Context) (*AuthInfo, bool) {
	info, ok := ctx.Value(authContextKey).(*AuthInfo)
	return info, ok
}
