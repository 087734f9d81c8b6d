package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/abhisek/lessonloop/internal/learner"
)

// MemoryRepo is an in-process StateRepo. Loads and saves copy the state so
// callers never share it.
type MemoryRepo struct {
	mu     sync.RWMutex
	states map[string]*LearnerState
}

var _ StateRepo = (*MemoryRepo)(nil)

// NewMemoryRepo returns an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{states: make(map[string]*LearnerState)}
}

func (r *MemoryRepo) Create(_ context.Context, l learner.Learner) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.states[l.ID]; ok {
		return fmt.Errorf("%w: learner %s", ErrConflict, l.ID)
	}
	for _, st := range r.states {
		if st.Learner.Username == l.Username {
			return fmt.Errorf("%w: username %q", ErrConflict, l.Username)
		}
	}
	r.states[l.ID] = NewLearnerState(l)
	return nil
}

func (r *MemoryRepo) Load(_ context.Context, learnerID string) (*LearnerState, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	st, ok := r.states[learnerID]
	if !ok {
		return nil, fmt.Errorf("%w: learner %s", ErrNotFound, learnerID)
	}
	return st.Clone(), nil
}

func (r *MemoryRepo) Save(_ context.Context, st *LearnerState) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.states[st.Learner.ID]; !ok {
		return fmt.Errorf("%w: learner %s", ErrNotFound, st.Learner.ID)
	}
	r.states[st.Learner.ID] = st.Clone()
	return nil
}

func (r *MemoryRepo) FindByUsername(_ context.Context, username string) (learner.Learner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, st := range r.states {
		if st.Learner.Username == username {
			return st.Learner, nil
		}
	}
	return learner.Learner{}, fmt.Errorf("%w: username %q", ErrNotFound, username)
}

func (r *MemoryRepo) List(_ context.Context) ([]learner.Learner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]learner.Learner, 0, len(r.states))
	for _, st := range r.states {
		out = append(out, st.Learner)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}
