package api

import (
	"net/http"
	"time"

	"github.com/abhisek/lessonloop/internal/learner"
	"github.com/abhisek/lessonloop/internal/learning"
	"github.com/abhisek/lessonloop/internal/unlock"
)

type createLearnerRequest struct {
	Username string `json:"username" validate:"required,max=64"`
}

type createLearnerResponse struct {
	Learner   learning.LearnerView `json:"learner"`
	Token     string               `json:"token"`
	ExpiresAt time.Time            `json:"expires_at"`
}

func (s *Server) createLearner(w http.ResponseWriter, r *http.Request) {
	var req createLearnerRequest
	if !s.decode(w, r, &req) {
		return
	}
	lv, err := s.svc.CreateLearner(r.Context(), req.Username)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	token, exp, err := s.tokens.Issue(lv.ID, lv.Username)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, createLearnerResponse{Learner: lv, Token: token, ExpiresAt: exp})
}

type topicSummary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	UnlockDay   int    `json:"unlock_day"`
	Lessons     int    `json:"lessons"`
}

type catalogResponse struct {
	Version      string         `json:"version"`
	UnlockPolicy unlock.Policy  `json:"unlock_policy"`
	Cards        int            `json:"cards"`
	Topics       []topicSummary `json:"topics"`
}

func (s *Server) catalog(w http.ResponseWriter, r *http.Request) {
	cat := s.svc.Catalog()
	resp := catalogResponse{
		Version:      cat.Version,
		UnlockPolicy: s.svc.Policy(),
		Cards:        cat.Len(),
	}
	for _, t := range cat.Topics() {
		resp.Topics = append(resp.Topics, topicSummary{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			UnlockDay:   t.UnlockDay,
			Lessons:     len(cat.QuestionCards(t.ID)),
		})
	}
	respondJSON(w, r, http.StatusOK, resp)
}

func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	lv, err := s.svc.Learner(r.Context(), learnerID(r))
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, lv)
}

func (s *Server) profile(w http.ResponseWriter, r *http.Request) {
	p, err := s.svc.Profile(r.Context(), learnerID(r))
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, p)
}

type cardResponse struct {
	Card *learning.CardView `json:"card"`
}

func (s *Server) currentCard(w http.ResponseWriter, r *http.Request) {
	card, err := s.svc.CurrentCard(r.Context(), learnerID(r))
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, cardResponse{Card: card})
}

func (s *Server) advance(w http.ResponseWriter, r *http.Request) {
	res, err := s.svc.AdvanceToNextCard(r.Context(), learnerID(r))
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, res)
}

type submitAnswerRequest struct {
	QuestionID string `json:"question_id" validate:"required"`
	Option     *int   `json:"option" validate:"required,gte=0"`
}

func (s *Server) submitAnswer(w http.ResponseWriter, r *http.Request) {
	var req submitAnswerRequest
	if !s.decode(w, r, &req) {
		return
	}
	out, err := s.svc.SubmitAnswer(r.Context(), learnerID(r), req.QuestionID, *req.Option)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, out)
}

type recordAnswerRequest struct {
	QuestionID  string `json:"question_id" validate:"required"`
	LessonIndex int    `json:"lesson_index" validate:"gte=0"`
	Correct     bool   `json:"correct"`
}

func (s *Server) recordAnswer(w http.ResponseWriter, r *http.Request) {
	var req recordAnswerRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := s.svc.RecordAnswer(r.Context(), learnerID(r), req.QuestionID, req.LessonIndex, req.Correct); err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type statsRequest struct {
	Correct bool `json:"correct"`
}

func (s *Server) updateStats(w http.ResponseWriter, r *http.Request) {
	var req statsRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := s.svc.UpdateUserStats(r.Context(), learnerID(r), req.Correct); err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	s.me(w, r)
}

type creditsRequest struct {
	Amount int `json:"amount" validate:"ne=0"`
}

func (s *Server) updateCredits(w http.ResponseWriter, r *http.Request) {
	var req creditsRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := s.svc.UpdateUserCredits(r.Context(), learnerID(r), req.Amount); err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	s.me(w, r)
}

type levelRequest struct {
	Level string `json:"level" validate:"required,oneof=beginner intermediate advanced"`
}

func (s *Server) updateLevel(w http.ResponseWriter, r *http.Request) {
	var req levelRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := s.svc.UpdateUserLevel(r.Context(), learnerID(r), learner.Level(req.Level)); err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	s.me(w, r)
}

type streakRequest struct {
	Streak *int `json:"streak" validate:"required,gte=0"`
}

func (s *Server) updateStreak(w http.ResponseWriter, r *http.Request) {
	var req streakRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := s.svc.UpdateUserStreak(r.Context(), learnerID(r), *req.Streak); err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	s.me(w, r)
}

type reviewResponse struct {
	Questions []learning.ReviewItem `json:"questions"`
}

func (s *Server) reviewQuestions(w http.ResponseWriter, r *http.Request) {
	items, err := s.svc.ReviewQuestions(r.Context(), learnerID(r))
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	if items == nil {
		items = []learning.ReviewItem{}
	}
	respondJSON(w, r, http.StatusOK, reviewResponse{Questions: items})
}

type reviewStatus struct {
	Active bool `json:"active"`
	Queued int  `json:"queued,omitempty"`
}

func (s *Server) reviewStatus(w http.ResponseWriter, r *http.Request) {
	active, err := s.svc.IsInReviewMode(r.Context(), learnerID(r))
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, reviewStatus{Active: active})
}

func (s *Server) startReview(w http.ResponseWriter, r *http.Request) {
	n, err := s.svc.StartReviewMode(r.Context(), learnerID(r))
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, reviewStatus{Active: n > 0, Queued: n})
}

func (s *Server) exitReview(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.ExitReviewMode(r.Context(), learnerID(r)); err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type topicsResponse struct {
	Topics []unlock.TopicStatus `json:"topics"`
}

func (s *Server) topics(w http.ResponseWriter, r *http.Request) {
	ts, err := s.svc.Topics(r.Context(), learnerID(r))
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, topicsResponse{Topics: ts})
}

func (s *Server) plan(w http.ResponseWriter, r *http.Request) {
	p, err := s.svc.DailyPlan(r.Context(), learnerID(r))
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, p)
}
