package auth

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/af-corp/model-catalog/internal/httputil"
)

const authUsage = "Use: Authorization: Bearer <admin-key>"

// bearerToken extracts the admin key from the Authorization header. When
// there is none, problem is the message returned to the client.
func bearerToken(r *http.Request) (token, problem string) {
	h := r.Header.Get("Authorization")
	if h == "" {
		return "", "Missing Authorization header. " + authUsage
	}
	token, ok := strings.CutPrefix(h, "Bearer ")
	if !ok {
		return "", "Invalid Authorization format. " + authUsage
	}
	if token = strings.TrimSpace(token); token == "" {
		return "", "Empty API key"
	}
	return token, ""
}

// Middleware guards admin routes with keys known to store. Unknown and
// expired keys are both reported as invalid.
func Middleware(store KeyStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := w.Header().Get("X-Request-ID")

			token, problem := bearerToken(r)
			if problem != "" {
				httputil.WriteAuthError(w, reqID, problem)
				return
			}

			meta, err := store.Lookup(r.Context(), HashKey(token))
			if err != nil {
				slog.Error("admin key lookup failed", "error", err, "key_prefix", KeyPrefix(token))
				httputil.WriteInternalError(w, reqID, "Internal error during authentication")
				return
			}
			if meta == nil || meta.Expired(time.Now()) {
				slog.Warn("admin key rejected", "key_prefix", KeyPrefix(token), "path", r.URL.Path)
				httputil.WriteAuthError(w, reqID, "Invalid API key")
				return
			}

			ctx := ContextWithAuth(r.Context(), &AuthInfo{KeyID: meta.ID, Name: meta.Name})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
