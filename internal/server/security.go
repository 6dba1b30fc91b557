package server

import (
	"net/http"
	"strings"
)

// SecurityConfig controls the headers and limits applied to every request.
type SecurityConfig struct {
	// EnableCORS turns on the Access-Control-* headers.
	EnableCORS bool
	// AllowedOrigins lists the origins allowed by CORS and by the websocket
	// handshake. "*" allows any origin.
	AllowedOrigins []string
	// AllowedMethods is advertised in Access-Control-Allow-Methods.
	AllowedMethods []string
	// MaxBodyBytes caps the size of JSON request bodies.
	MaxBodyBytes int64
}

// DefaultSecurityConfig returns a permissive CORS setup suitable for local use.
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		EnableCORS:     true,
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		MaxBodyBytes:   4 << 10,
	}
}

// originAllowed reports whether origin matches the configuration. A
// wildcard matches everything, including requests without an Origin header.
func (c SecurityConfig) originAllowed(origin string) (string, bool) {
	for _, o := range c.AllowedOrigins {
		if o == "*" {
			return "*", true
		}
		if origin != "" && o == origin {
			return origin, true
		}
	}
	return "", false
}

// SecurityMiddleware sets defensive response headers, applies CORS, and
// answers preflight requests without calling next.
func SecurityMiddleware(config SecurityConfig, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-XSS-Protection", "1; mode=block")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")

		if config.EnableCORS {
			if allowed, ok := config.originAllowed(r.Header.Get("Origin")); ok {
				h.Set("Access-Control-Allow-Origin", allowed)
				h.Set("Access-Control-Allow-Methods", strings.Join(config.AllowedMethods, ", "))
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
