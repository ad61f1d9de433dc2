package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/gallery/internal/common"
)

type contextKey string

const (
	identityKey contextKey = "identity"
	tokenKey    contextKey = "token"
)

// Authenticator resolves a bearer token to a username.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (string, error)
}

// RequireAuth is the authorization gate. Requests without a valid
// "Authorization: Bearer <token>" header get 401 and never reach next.
func RequireAuth(a Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get(common.AuthorizationHeaderName)
			if header == "" {
				writeMessage(w, http.StatusUnauthorized, "login required")
				return
			}

			token, ok := bearerToken(header)
			if !ok {
				writeMessage(w, http.StatusUnauthorized, "authorization header must be: Bearer <token>")
				return
			}

			identity, err := a.Authenticate(r.Context(), token)
			if err != nil {
				status, msg := errorStatus(err)
				if !common.IsUnauthorized(err) {
					status, msg = http.StatusUnauthorized, "invalid token"
				}
				writeMessage(w, status, msg)
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			ctx = context.WithValue(ctx, tokenKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], common.BearerScheme) {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// IdentityFromContext returns the username attached by RequireAuth.
func IdentityFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(identityKey).(string)
	return v, ok && v != ""
}

func tokenFromContext(ctx context.Context) string {
	v, _ := ctx.Value(tokenKey).(string)
	return v
}
