package web

import (
	"net/http"

	"github.com/JonMunkholm/brfss/internal/core"
	"github.com/JonMunkholm/brfss/internal/web/middleware"
)

// withClientIP copies the resolved client address into the request context
// so service log lines can name the submitter.
func withClientIP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := core.ContextWithClientIP(r.Context(), middleware.ClientIP(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
