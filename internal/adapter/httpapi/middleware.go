package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/example/inventory-order-service/internal/domain"
)

type principalKey struct{}

// principalFrom returns the authenticated principal id stored by the
// auth middleware. Handlers behind the middleware can rely on it being
// set.
func principalFrom(ctx context.Context) string {
	p, _ := ctx.Value(principalKey{}).(string)
	return p
}

// authenticate resolves the bearer credential and rejects the request
// before any core code runs. The principal is never taken from the
// request body.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var credential string
		if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
			credential = strings.TrimPrefix(h, "Bearer ")
		}
		principal, err := s.Resolver.Resolve(r.Context(), credential)
		if err != nil {
			code := "credential_invalid"
			switch {
			case errors.Is(err, domain.ErrCredentialMissing):
				code = "credential_missing"
			case errors.Is(err, domain.ErrCredentialExpired):
				code = "credential_expired"
			}
			s.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: code, Message: err.Error()})
			return
		}
		ctx := context.WithValue(r.Context(), principalKey{}, principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)
		s.Log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}
