package store

import (
	"context"
	"errors"
	"maps"
	"slices"

	"github.com/abhisek/lessonloop/internal/learner"
	"github.com/abhisek/lessonloop/internal/ledger"
	"github.com/abhisek/lessonloop/internal/missions"
	"github.com/abhisek/lessonloop/internal/progression"
	"github.com/abhisek/lessonloop/internal/review"
	"github.com/abhisek/lessonloop/internal/unlock"
)

var (
	// ErrNotFound is returned when a learner does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a username is already taken.
	ErrConflict = errors.New("already exists")
)

// LearnerState is everything persisted for one learner.
type LearnerState struct {
	Learner  learner.Learner
	Progress progression.Progress
	Answers  *ledger.Ledger
	Review   review.Session
	Unlocks  unlock.Timestamps
	Missions missions.Board
}

// NewLearnerState returns the initial state for a new learner.
func NewLearnerState(l learner.Learner) *LearnerState {
	return &LearnerState{
		Learner:  l,
		Progress: progression.New(),
		Answers:  ledger.New(),
		Unlocks:  unlock.Timestamps{},
	}
}

// Clone returns a deep copy of the state.
func (s *LearnerState) Clone() *LearnerState {
	c := &LearnerState{
		Learner:  s.Learner,
		Progress: progression.Restore(s.Progress.Cursor, s.Progress.Completed()),
		Review:   s.Review,
		Unlocks:  maps.Clone(s.Unlocks),
		Missions: missions.Board{Date: s.Missions.Date, Missions: slices.Clone(s.Missions.Missions)},
	}
	if s.Answers != nil {
		c.Answers = ledger.FromRecords(s.Answers.Records())
	} else {
		c.Answers = ledger.New()
	}
	if c.Unlocks == nil {
		c.Unlocks = unlock.Timestamps{}
	}
	c.Review.Entries = slices.Clone(s.Review.Entries)
	return c
}

// StateRepo loads and saves learner state.
type StateRepo interface {
	// Create stores a new learner with empty progress. It returns
	// ErrConflict when the username is taken.
	Create(ctx context.Context, l learner.Learner) error

	// Load returns the full state of a learner, or ErrNotFound.
	Load(ctx context.Context, learnerID string) (*LearnerState, error)

	// Save writes the full state of an existing learner.
	Save(ctx context.Context, st *LearnerState) error

	// FindByUsername looks up a learner by username, or ErrNotFound.
	FindByUsername(ctx context.Context, username string) (learner.Learner, error)

	// List returns all learners ordered by creation time.
	List(ctx context.Context) ([]learner.Learner, error)
}
