package middleware

import (
	"net/http"
	"slices"
)

// Middleware wraps an http.Handler.
type Middleware func(http.Handler) http.Handler

// Chain combines middleware so that the first one listed is the outermost:
// Chain(a, b)(h) is a(b(h)). The router uses it both for the global stack
// and for per-route stacks such as AdminOnly or RateLimit.
func Chain(mws ...Middleware) Middleware {
	return func(h http.Handler) http.Handler {
		for _, mw := range slices.Backward(mws) {
			h = mw(h)
		}
		return h
	}
}
