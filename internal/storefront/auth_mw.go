package storefront

import (
	"context"
	"net/http"
	"strings"

	"AquaKart/pkg/kit"
)

type ctxKey string

const userKey ctxKey = "user"

type User struct {
	ID string
}

func UserFromContext(ctx context.Context) (User, bool) {
	u, ok := ctx.Value(userKey).(User)
	return u, ok
}

// RequireUserHeaders trusts the identity headers the gateway injects after
// JWT verification. The service itself never parses tokens.
func RequireUserHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid := strings.TrimSpace(r.Header.Get("X-User-Id"))
		if uid == "" {
			kit.WriteError(w, r, http.StatusUnauthorized, "no user", nil)
			return
		}

		ctx := context.WithValue(r.Context(), userKey, User{ID: uid})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
