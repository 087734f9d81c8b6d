// Package learning is the per-learner engine: it composes the catalog,
// progression, ledger, review, unlock and mission packages into the
// operations the API and terminal client call. Every operation locks the
// learner, loads their state, applies the daily mission reset, runs, and
// saves.
package learning

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/lessonloop/internal/catalog"
	"github.com/abhisek/lessonloop/internal/lock"
	"github.com/abhisek/lessonloop/internal/logger"
	"github.com/abhisek/lessonloop/internal/missions"
	"github.com/abhisek/lessonloop/internal/store"
	"github.com/abhisek/lessonloop/internal/unlock"
)

var (
	// ErrNotFound covers unknown learners, questions and topics.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput covers values the learner model rejects.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict is returned when a username is taken.
	ErrConflict = errors.New("conflict")
)

// Service runs learning operations for any number of learners.
type Service struct {
	catalog *catalog.Catalog
	repo    store.StateRepo
	locker  lock.Locker
	gate    *unlock.Gate
	loc     *time.Location
	now     func() time.Time
	log     *logger.Logger
	newID   func() string
}

// Option configures a Service.
type Option func(*Service)

// WithLocker replaces the default in-process lock.
func WithLocker(l lock.Locker) Option { return func(s *Service) { s.locker = l } }

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

// WithLocation sets the time zone for calendar days and unlock midnights.
func WithLocation(loc *time.Location) Option { return func(s *Service) { s.loc = loc } }

// WithPolicy overrides the catalog's unlock policy.
func WithPolicy(p unlock.Policy) Option {
	return func(s *Service) { s.gate = unlock.NewGate(p, nil) }
}

func WithLogger(l *logger.Logger) Option { return func(s *Service) { s.log = l } }

// WithIDGenerator replaces the learner id generator.
func WithIDGenerator(f func() string) Option { return func(s *Service) { s.newID = f } }

// New creates a Service. The unlock policy comes from the catalog unless
// WithPolicy is given; an unknown catalog policy is an error.
func New(cat *catalog.Catalog, repo store.StateRepo, opts ...Option) (*Service, error) {
	s := &Service{
		catalog: cat,
		repo:    repo,
		locker:  lock.NewKeyedMutex(),
		loc:     time.Local,
		now:     time.Now,
		log:     logger.Nop(),
		newID:   newLearnerID,
	}
	for _, opt := range opts {
		opt(s)
	}
	policy := unlock.DefaultPolicy
	if s.gate != nil {
		policy = s.gate.Policy()
	} else {
		p, err := unlock.ParsePolicy(cat.UnlockPolicy)
		if err != nil {
			return nil, fmt.Errorf("catalog %s: %w", cat.Version, err)
		}
		policy = p
	}
	// Rebuild so the gate sees the final location regardless of option order.
	s.gate = unlock.NewGate(policy, s.loc)
	s.log = s.log.With("component", "learning")
	return s, nil
}

// Catalog returns the catalog the service was built with.
func (s *Service) Catalog() *catalog.Catalog { return s.catalog }

// Policy returns the unlock policy in effect.
func (s *Service) Policy() unlock.Policy { return s.gate.Policy() }

func (s *Service) today() time.Time { return s.now().In(s.loc) }

// view runs fn on a learner's state under the learner's lock. The state is
// saved only if the daily reset changed it.
func (s *Service) view(ctx context.Context, learnerID string, fn func(st *store.LearnerState) error) error {
	return s.run(ctx, learnerID, false, fn)
}

// update runs fn on a learner's state under the learner's lock and saves
// the result when fn succeeds.
func (s *Service) update(ctx context.Context, learnerID string, fn func(st *store.LearnerState) error) error {
	return s.run(ctx, learnerID, true, fn)
}

func (s *Service) run(ctx context.Context, learnerID string, write bool, fn func(st *store.LearnerState) error) error {
	if learnerID == "" {
		return fmt.Errorf("%w: learner id is required", ErrInvalidInput)
	}
	return lock.Do(ctx, s.locker, learnerID, func() error {
		st, err := s.repo.Load(ctx, learnerID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("%w: learner %s", ErrNotFound, learnerID)
			}
			return fmt.Errorf("load learner %s: %w", learnerID, err)
		}
		s.log.Debug("loaded learner", "learner_id", learnerID)

		reset := st.Missions.EnsureDay(learnerID, s.today())
		if reset {
			s.log.Debug("missions drawn", "learner_id", learnerID, "date", st.Missions.Date)
		}
		if err := fn(st); err != nil {
			return err
		}
		if !write && !reset {
			return nil
		}
		if err := s.repo.Save(ctx, st); err != nil {
			return fmt.Errorf("save learner %s: %w", learnerID, err)
		}
		s.log.Debug("saved learner", "learner_id", learnerID)
		return nil
	})
}

// progressMission advances a mission and credits its reward on completion.
// Rewards never count toward the earn_credits mission.
func (s *Service) progressMission(st *store.LearnerState, t missions.Type, amount int) int {
	reward := st.Missions.Progress(t, amount)
	if reward > 0 {
		st.Learner.Credits += reward
		s.log.Info("mission completed",
			"learner_id", st.Learner.ID, "mission", string(t), "reward", reward)
	}
	return reward
}
