package middleware

import (
	"context"
	"net/http"

	"blogcore/internal/utils"
)

// Auth guards the session routes. The secret is injected at wiring
// time; handlers read the user id from the request context.
func Auth(accessSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := utils.BearerToken(r)
			if token == "" {
				utils.JSONError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			claims, err := utils.VerifyToken(token, accessSecret)
			if err != nil {
				utils.JSONError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), utils.CtxUserIDKey, claims.SubjectInt())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
