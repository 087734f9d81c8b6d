package api

import (
	"context"
	"errors"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/abhisek/lessonloop/internal/auth"
)

type contextKey struct{ name string }

var learnerIDKey = &contextKey{"learner_id"}

// learnerID returns the authenticated learner of a request.
func learnerID(r *http.Request) string {
	id, _ := r.Context().Value(learnerIDKey).(string)
	return id
}

// authenticate requires a valid bearer token and stores its learner id in
// the request context.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if header == "" || !ok {
			respondError(w, r, http.StatusUnauthorized, "authorization header required")
			return
		}

		claims, err := s.tokens.Validate(strings.TrimSpace(token))
		switch {
		case errors.Is(err, auth.ErrExpiredToken):
			respondError(w, r, http.StatusUnauthorized, "token expired")
			return
		case err != nil:
			s.log.Debug("token rejected", "error", err, "request_id", requestID(r))
			respondError(w, r, http.StatusUnauthorized, "invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), learnerIDKey, claims.LearnerID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requestLogger logs one line per request.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			s.log.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", requestID(r),
			)
		}()
		next.ServeHTTP(ww, r)
	})
}

// recoverer turns a handler panic into a 500 and logs the stack.
func (s *Server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				s.log.Error("handler panic",
					"panic", rec,
					"stack", string(debug.Stack()),
					"request_id", requestID(r))
				respondError(w, r, http.StatusInternalServerError, "internal error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
