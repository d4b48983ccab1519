package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/JonMunkholm/brfss/internal/core"
	"github.com/JonMunkholm/brfss/internal/logging"
)

// APIKeyHeader carries the admin key.
const APIKeyHeader = "X-API-Key"

// AdminAPIKey guards destructive endpoints. A request passes only when its
// X-API-Key header matches one of keys. With no keys configured every
// request is refused, so admin actions stay off until a key is set.
func AdminAPIKey(keys []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(APIKeyHeader)
			if key != "" && len(keys) > 0 && isValidAPIKey(key, keys) {
				next.ServeHTTP(w, r)
				return
			}

			reason := "invalid api key"
			switch {
			case len(keys) == 0:
				reason = "no admin api keys configured"
			case key == "":
				reason = "missing api key"
			}
			logging.FromContext(r.Context()).Warn("auth: admin request refused",
				"path", r.URL.Path,
				"method", r.Method,
				"ip", ClientIP(r),
				"reason", reason,
			)

			msg := core.MapError(core.ErrUnauthorized)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"error":   msg.Message,
				"message": msg.Message,
				"action":  msg.Action,
				"code":    msg.Code,
			})
		})
	}
}

// isValidAPIKey compares against every key in constant time so timing does
// not reveal which key, if any, matched.
func isValidAPIKey(key string, validKeys []string) bool {
	valid := 0
	for _, k := range validKeys {
		valid |= subtle.ConstantTimeCompare([]byte(key), []byte(k))
	}
	return valid == 1
}
