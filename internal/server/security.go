package server

import (
	"net/http"
	"strings"
)

// SecurityConfig controls the headers added by SecurityMiddleware.
type SecurityConfig struct {
	EnableCORS     bool
	AllowedOrigins []string
	AllowedMethods []string
}

// DefaultSecurityConfig allows read-only cross-origin scraping.
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		EnableCORS:     true,
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
	}
}

// SecurityMiddleware sets hardening headers and, when enabled, CORS headers.
// Preflight OPTIONS requests are answered with 204 and never reach next.
func SecurityMiddleware(cfg SecurityConfig, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-XSS-Protection", "1; mode=block")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")

		if cfg.EnableCORS {
			if origin := allowedOrigin(cfg.AllowedOrigins, r.Header.Get("Origin")); origin != "" {
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Methods", strings.Join(cfg.AllowedMethods, ", "))
				h.Set("Access-Control-Allow-Headers", "Content-Type")
				h.Set("Access-Control-Max-Age", "86400")
			}
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next(w, r)
	}
}

func allowedOrigin(allowed []string, origin string) string {
	for _, o := range allowed {
		if o == "*" {
			return "*"
		}
		if origin != "" && o == origin {
			return origin
		}
	}
	return ""
}
