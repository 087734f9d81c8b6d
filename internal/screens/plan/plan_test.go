package plan

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lessonloop/internal/catalog"
	"github.com/abhisek/lessonloop/internal/catalog/catalogtest"
	"github.com/abhisek/lessonloop/internal/learning"
	"github.com/abhisek/lessonloop/internal/screen"
	"github.com/abhisek/lessonloop/internal/store"
)

func TestShowsMissionsAndTodo(t *testing.T) {
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	cat := catalogtest.New(t, "", catalogtest.Topic("a", 1, catalog.Beginner))
	svc, err := learning.New(cat, store.NewMemoryRepo(),
		learning.WithClock(func() time.Time { return now }),
		learning.WithLocation(time.UTC))
	require.NoError(t, err)
	ctx := context.Background()
	lv, err := svc.CreateLearner(ctx, "ada")
	require.NoError(t, err)

	p := New(screen.Env{Ctx: ctx, Svc: svc, LearnerID: lv.ID})
	p.Update(p.Init()())
	require.True(t, p.loaded)
	require.NotEmpty(t, p.plan.Missions)

	view := p.View(100, 40)
	assert.Contains(t, view, "Plan for 2026-05-01")
	assert.Contains(t, view, "A new lesson is waiting")
	assert.Contains(t, view, p.plan.Missions[0].Title)
	assert.Contains(t, view, "MISSIONS")
}
