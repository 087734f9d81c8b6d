package topics

import (
	"context"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lessonloop/internal/catalog"
	"github.com/abhisek/lessonloop/internal/catalog/catalogtest"
	"github.com/abhisek/lessonloop/internal/learning"
	"github.com/abhisek/lessonloop/internal/screen"
	"github.com/abhisek/lessonloop/internal/store"
)

func TestListsTopicsWithLocks(t *testing.T) {
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	cat := catalogtest.New(t, "",
		catalogtest.Topic("a", 1, catalog.Beginner),
		catalogtest.Topic("b", 5, catalog.Beginner))
	svc, err := learning.New(cat, store.NewMemoryRepo(),
		learning.WithClock(func() time.Time { return now }),
		learning.WithLocation(time.UTC))
	require.NoError(t, err)
	ctx := context.Background()
	lv, err := svc.CreateLearner(ctx, "ada")
	require.NoError(t, err)

	s := New(screen.Env{Ctx: ctx, Svc: svc, LearnerID: lv.ID})
	assert.Contains(t, s.View(100, 30), "loading")

	s.Update(s.Init()())
	require.Len(t, s.topics, 2)
	assert.False(t, s.topics[0].IsLocked)

	view := s.View(100, 30)
	assert.Contains(t, view, "Topic a")
	assert.Contains(t, view, "Topic b")
	assert.Contains(t, view, "0/1")

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 1, s.selected)
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 1, s.selected, "selection stops at the last topic")
}
