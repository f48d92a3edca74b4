package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"sevaconnect/pkg/types"

	"github.com/sirupsen/logrus"
)

// Context key types to avoid collisions
type contextKey string

const (
	contextKeyUserID contextKey = "user_id"
	contextKeyRole   contextKey = "role"
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (s *Service) LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		s.logger.WithFields(logrus.Fields{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      rw.statusCode,
			"duration_ms": time.Since(started).Milliseconds(),
		}).Info("http request")
	})
}

// RequireAuth validates the bearer token and loads the caller onto the
// request context.
func (s *Service) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			s.respondError(w, http.StatusUnauthorized, "Missing authorization header")
			return
		}

		rawToken, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || rawToken == "" {
			s.respondError(w, http.StatusUnauthorized, "Invalid authorization header")
			return
		}

		userID, err := s.tokens.Verify(rawToken)
		if err != nil {
			s.logger.WithError(err).Debug("token verification failed")
			s.respondError(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		user, err := s.users.User(r.Context(), userID)
		if err != nil {
			s.logger.WithError(err).Debug("token subject does not resolve to a user")
			s.respondError(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		ctx := r.Context()
		ctx = context.WithValue(ctx, contextKeyUserID, user.ID)
		ctx = context.WithValue(ctx, contextKeyRole, user.Role)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin gates the moderation surface. Runs inside RequireAuth, so the
// role is already on the context.
func (s *Service) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := r.Context().Value(contextKeyRole).(types.UserRole)
		if !ok || role != types.UserRoleAdmin {
			s.respondError(w, http.StatusUnauthorized, "Admin access required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Service) StripTrailingSlash(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		// Only strip if path is not root and has trailing slash
		if path != "/" && strings.HasSuffix(path, "/") {
			newPath := strings.TrimSuffix(path, "/")
			newURL := *r.URL
			newURL.Path = newPath

			// Preserve query string
			http.Redirect(w, r, newURL.String(), http.StatusMovedPermanently)
			return
		}

		next.ServeHTTP(w, r)
	})
}
