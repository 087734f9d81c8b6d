// Package api exposes the learning service over HTTP. Learners register
// with a username and receive a bearer token; every other learner route is
// scoped to the token's learner.
package api

import (
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/abhisek/lessonloop/internal/auth"
	"github.com/abhisek/lessonloop/internal/learning"
	"github.com/abhisek/lessonloop/internal/logger"
)

// Server holds the handlers' dependencies.
type Server struct {
	svc      *learning.Service
	tokens   *auth.Tokens
	log      *logger.Logger
	validate *validator.Validate
}

// New creates a Server.
func New(svc *learning.Service, tokens *auth.Tokens, log *logger.Logger) *Server {
	if log == nil {
		log = logger.Nop()
	}
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return &Server{
		svc:      svc,
		tokens:   tokens,
		log:      log.With("component", "api"),
		validate: v,
	}
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(s.recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/learners", s.createLearner)
		r.Get("/catalog", s.catalog)

		r.Group(func(r chi.Router) {
			r.Use(s.authenticate)

			r.Get("/me", s.me)
			r.Get("/me/profile", s.profile)
			r.Get("/me/card", s.currentCard)
			r.Post("/me/advance", s.advance)

			r.Post("/me/answers", s.submitAnswer)
			r.Post("/me/answers/record", s.recordAnswer)
			r.Post("/me/stats", s.updateStats)
			r.Post("/me/credits", s.updateCredits)
			r.Put("/me/level", s.updateLevel)
			r.Put("/me/streak", s.updateStreak)

			r.Get("/me/review", s.reviewQuestions)
			r.Get("/me/review/status", s.reviewStatus)
			r.Post("/me/review", s.startReview)
			r.Delete("/me/review", s.exitReview)

			r.Get("/me/topics", s.topics)
			r.Get("/me/plan", s.plan)
		})
	})

	return r
}
