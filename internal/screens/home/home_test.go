package home

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
	"github.com/abhisek/lessonloop/internal/router"
	"github.com/abhisek/lessonloop/internal/screen"
	"github.com/abhisek/lessonloop/internal/screens/learn"
	"github.com/abhisek/lessonloop/internal/store"
)

func newHome(t *testing.T) *HomeScreen {
	t.Helper()
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	cat := catalogtest.New(t, "", catalogtest.Topic("a", 1, catalog.Beginner))
	svc, err := learning.New(cat, store.NewMemoryRepo(),
		learning.WithClock(func() time.Time { return now }),
		learning.WithLocation(time.UTC))
	require.NoError(t, err)
	ctx := context.Background()
	lv, err := svc.CreateLearner(ctx, "ada")
	require.NoError(t, err)
	return New(screen.Env{Ctx: ctx, Svc: svc, LearnerID: lv.ID})
}

func TestReviewDisabledWithNothingDue(t *testing.T) {
	h := newHome(t)
	h.Update(h.Init()())
	require.True(t, h.loaded)

	view := h.View(100, 30)
	assert.Contains(t, view, "Review (0 due)")
	assert.Contains(t, view, "A new lesson is ready.")
	assert.True(t, h.menu.Items[1].Disabled)

	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 2, h.menu.Selected, "disabled review entry is skipped")
}

func TestContinueLearningPushesLearnScreen(t *testing.T) {
	h := newHome(t)
	h.Update(h.Init()())

	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	_, ok = msg.Screen.(*learn.LearnScreen)
	assert.True(t, ok)
}

func TestResumeReloadsPlan(t *testing.T) {
	h := newHome(t)
	_, cmd := h.Update(router.ResumedMsg{})
	require.NotNil(t, cmd)
	_, ok := cmd().(planLoadedMsg)
	assert.True(t, ok)
}
