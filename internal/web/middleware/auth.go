package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	"github.com/JonMunkholm/customerlookup/internal/config"
)

// WebhookSecret returns middleware that checks the shared secret the
// assistant platform sends with every tool call. When no secret is
// configured all requests pass through, matching an unsecured tool.
func WebhookSecret(cfg *config.SecurityConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.WebhookSecret == "" {
				next.ServeHTTP(w, r)
				return
			}

			got := r.Header.Get(cfg.WebhookSecretHeader)
			if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(cfg.WebhookSecret)) != 1 {
				slog.Warn("auth: invalid webhook secret",
					"path", r.URL.Path,
					"header", cfg.WebhookSecretHeader,
					"remote_addr", r.RemoteAddr,
				)
				writeAuthError(w, http.StatusUnauthorized, "invalid webhook secret", "AUTH001")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// APIKeyAuth returns middleware that validates the X-API-Key header (or an
// Authorization bearer token) against configured keys. With no keys
// configured every request is rejected, so lookup history is never public
// by accident.
func APIKeyAuth(cfg *config.SecurityConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			apiKey := requestAPIKey(r)
			if apiKey == "" {
				slog.Warn("auth: missing API key",
					"path", r.URL.Path,
					"method", r.Method,
					"remote_addr", r.RemoteAddr,
				)
				writeAuthError(w, http.StatusUnauthorized, "missing API key", "AUTH_MISSING_KEY")
				return
			}

			if !isValidAPIKey(apiKey, cfg.APIKeys) {
				slog.Warn("auth: invalid API key",
					"path", r.URL.Path,
					"method", r.Method,
					"remote_addr", r.RemoteAddr,
				)
				writeAuthError(w, http.StatusForbidden, "invalid API key", "AUTH_INVALID_KEY")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// HasValidAPIKey reports whether r carries one of the configured keys.
// Handlers that are public but show extra detail to operators use it.
func HasValidAPIKey(r *http.Request, cfg *config.SecurityConfig) bool {
	key := requestAPIKey(r)
	return key != "" && isValidAPIKey(key, cfg.APIKeys)
}

// requestAPIKey reads X-API-Key, then an Authorization bearer token.
func requestAPIKey(r *http.Request) string {
	if key := r.Header.Get("X-API-Key"); key != "" {
		return key
	}
	if token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

// isValidAPIKey checks the key against every configured key in constant time.
func isValidAPIKey(key string, validKeys []string) bool {
	valid := 0
	for _, validKey := range validKeys {
		valid |= subtle.ConstantTimeCompare([]byte(key), []byte(validKey))
	}
	return valid == 1
}

func writeAuthError(w http.ResponseWriter, status int, msg, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"error":"` + msg + `","code":"` + code + `"}` + "\n"))
}
