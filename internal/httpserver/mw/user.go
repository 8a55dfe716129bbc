package mw

import (
	"context"
	"net/http"
	"strconv"
)

type ctxKey int

const userIDKey ctxKey = 0

// RequireUser extracts the owner from the X-User-ID header and stores
// it in the request context. Requests without a valid id get 401.
func RequireUser() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := strconv.ParseInt(r.Header.Get("X-User-ID"), 10, 64)
			if err != nil || id <= 0 {
				http.Error(w, "missing or invalid X-User-ID header", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDKey, id)))
		})
	}
}

// UserID returns the owner id stored by RequireUser, or 0 when absent.
func UserID(ctx context.Context) int64 {
	id, _ := ctx.Value(userIDKey).(int64)
	return id
}
