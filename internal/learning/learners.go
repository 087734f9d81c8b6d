package learning

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/abhisek/lessonloop/internal/learner"
	"github.com/abhisek/lessonloop/internal/store"
)

func newLearnerID() string { return uuid.NewString() }

// CreateLearner registers a beginner whose start date is now.
func (s *Service) CreateLearner(ctx context.Context, username string) (LearnerView, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return LearnerView{}, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}
	l := learner.New(s.newID(), username, s.now())
	if err := s.repo.Create(ctx, l); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return LearnerView{}, fmt.Errorf("%w: username %q is taken", ErrConflict, username)
		}
		return LearnerView{}, fmt.Errorf("create learner: %w", err)
	}
	s.log.Info("learner created", "learner_id", l.ID, "username", l.Username)
	return newLearnerView(l), nil
}

// Learner returns a learner's counters.
func (s *Service) Learner(ctx context.Context, learnerID string) (LearnerView, error) {
	var out LearnerView
	err := s.view(ctx, learnerID, func(st *store.LearnerState) error {
		out = newLearnerView(st.Learner)
		return nil
	})
	return out, err
}

// FindLearner looks a learner up by username.
func (s *Service) FindLearner(ctx context.Context, username string) (LearnerView, error) {
	l, err := s.repo.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return LearnerView{}, fmt.Errorf("%w: username %q", ErrNotFound, username)
		}
		return LearnerView{}, fmt.Errorf("find learner: %w", err)
	}
	return newLearnerView(l), nil
}

// Learners lists every learner, oldest first.
func (s *Service) Learners(ctx context.Context) ([]LearnerView, error) {
	ls, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list learners: %w", err)
	}
	out := make([]LearnerView, len(ls))
	for i, l := range ls {
		out[i] = newLearnerView(l)
	}
	return out, nil
}
