package http

import (
	"context"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/juegoya/juegoya/internal/auth"
	"github.com/juegoya/juegoya/internal/http/handlers"
	"github.com/juegoya/juegoya/internal/match"
)

// Middleware defines the standard signature for an HTTP middleware.
type Middleware func(http.Handler) http.Handler

// Chain combines multiple middlewares into a single handler.
// The middlewares are applied in the order they are passed.
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

// requestMiddleware logs the request and honors 'verbose' for request-scoped debug logging.
func requestMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Info("incoming request", "method", r.Method, "url", r.URL.String())
		if r.URL.Query().Get("verbose") == "true" {
			originalLevel := log.GetLevel()
			log.SetLevel(log.DebugLevel)
			defer log.SetLevel(originalLevel)
		}
		next.ServeHTTP(w, r)
	})
}

// paramsMiddleware is requestMiddleware plus 'dry_run'. It is only mounted on operational
// routes; player actions always publish their roster events.
func paramsMiddleware(next http.Handler) http.Handler {
	return requestMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		isDryRun := r.URL.Query().Get("dry_run") == "true"
		ctx := context.WithValue(r.Context(), handlers.DryRunKey, isDryRun)
		next.ServeHTTP(w, r.WithContext(ctx))
	}))
}

// sessionMiddleware attaches the bearer token's session to the request. Requests without
// a token pass through anonymously; a token that does not verify is rejected.
func (s *Server) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := auth.BearerToken(r.Header.Get("Authorization"))
		if raw == "" {
			next.ServeHTTP(w, r)
			return
		}
		session, err := s.Auth.Verify(raw)
		if err != nil {
			log.Debug("Rejected bearer token", "error", err)
			handlers.WriteError(w, r, match.ErrNotAuthenticated)
			return
		}
		next.ServeHTTP(w, r.WithContext(auth.WithSession(r.Context(), session)))
	})
}

// requireSession rejects anonymous requests.
func requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := auth.FromContext(r.Context()); !ok {
			handlers.WriteError(w, r, match.ErrNotAuthenticated)
			return
		}
		next.ServeHTTP(w, r)
	})
}
