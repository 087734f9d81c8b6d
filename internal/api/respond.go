package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/abhisek/lessonloop/internal/learning"
	"github.com/abhisek/lessonloop/internal/lock"
)

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func respondJSON(w http.ResponseWriter, _ *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	respondJSON(w, r, status, ErrorResponse{
		Error:     msg,
		RequestID: requestID(r),
	})
}

// requestID returns the id chi assigned to r, or a fresh one when the
// RequestID middleware did not run.
func requestID(r *http.Request) string {
	if id := middleware.GetReqID(r.Context()); id != "" {
		return id
	}
	return uuid.NewString()
}

// respondServiceError maps a service error to a status. Client errors echo
// the message; anything else is logged and hidden.
func (s *Server) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, learning.ErrNotFound):
		respondError(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, learning.ErrInvalidInput):
		respondError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, learning.ErrConflict):
		respondError(w, r, http.StatusConflict, err.Error())
	case errors.Is(err, lock.ErrNotAcquired), errors.Is(err, context.DeadlineExceeded):
		s.log.Warn("learner busy", "error", err, "request_id", middleware.GetReqID(r.Context()))
		respondError(w, r, http.StatusServiceUnavailable, "learner is busy, retry shortly")
	default:
		s.log.Error("request failed",
			"error", err,
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()))
		respondError(w, r, http.StatusInternalServerError, "internal error")
	}
}

// decode reads a JSON body into v and validates it.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid request body")
		return false
	}
	if err := s.validate.Struct(v); err != nil {
		respondError(w, r, http.StatusBadRequest, validationMessage(err))
		return false
	}
	return true
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid request"
	}
	fe := verrs[0]
	return "invalid field " + fe.Field() + ": failed " + fe.Tag()
}
