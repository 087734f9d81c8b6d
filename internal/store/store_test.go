package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lessonloop/internal/learner"
	"github.com/abhisek/lessonloop/internal/missions"
	"github.com/abhisek/lessonloop/internal/review"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	s, err := Open(context.Background(), DriverSQLite, dsn)
	require.NoError(t, err, "open test store")
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenRunsMigrations(t *testing.T) {
	s := openTestStore(t)

	v, err := s.SchemaVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), v)

	for _, table := range []string{"learners", "answer_records", "topic_unlocks", "learner_sessions", "llm_requests"} {
		var name string
		err := s.DB().QueryRow("SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
		assert.NoError(t, err, "table %s", table)
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases.
		{"foreign_keys", "1"},
		{"synchronous", "1"},
	}
	for _, tt := range tests {
		var got string
		require.NoError(t, s.DB().QueryRow("PRAGMA "+tt.pragma).Scan(&got))
		assert.Equal(t, tt.want, got, "PRAGMA %s", tt.pragma)
	}
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), "oracle", "")
	assert.Error(t, err)
}

// repoFactories runs the same behaviour checks against every StateRepo.
func repoFactories(t *testing.T) map[string]func() StateRepo {
	return map[string]func() StateRepo{
		"sql":    func() StateRepo { return openTestStore(t).StateRepo() },
		"memory": func() StateRepo { return NewMemoryRepo() },
	}
}

func TestStateRepoCreateAndLoad(t *testing.T) {
	for name, newRepo := range repoFactories(t) {
		t.Run(name, func(t *testing.T) {
			repo := newRepo()
			ctx := context.Background()
			now := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
			l := learner.New(uuid.NewString(), "ada", now)

			require.NoError(t, repo.Create(ctx, l))

			st, err := repo.Load(ctx, l.ID)
			require.NoError(t, err)
			assert.Equal(t, "ada", st.Learner.Username)
			assert.Equal(t, learner.Beginner, st.Learner.Level)
			assert.True(t, st.Learner.StartDate.Equal(now))
			assert.Equal(t, 0, st.Progress.Cursor)
			assert.Equal(t, 0, st.Answers.Len())
			assert.False(t, st.Review.Active)

			err = repo.Create(ctx, learner.New(uuid.NewString(), "ada", now))
			assert.True(t, errors.Is(err, ErrConflict), "duplicate username: %v", err)

			found, err := repo.FindByUsername(ctx, "ada")
			require.NoError(t, err)
			assert.Equal(t, l.ID, found.ID)

			_, err = repo.FindByUsername(ctx, "grace")
			assert.ErrorIs(t, err, ErrNotFound)

			_, err = repo.Load(ctx, "missing")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestStateRepoSaveRoundTrip(t *testing.T) {
	for name, newRepo := range repoFactories(t) {
		t.Run(name, func(t *testing.T) {
			repo := newRepo()
			ctx := context.Background()
			now := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
			l := learner.New(uuid.NewString(), "grace", now)
			require.NoError(t, repo.Create(ctx, l))

			st, err := repo.Load(ctx, l.ID)
			require.NoError(t, err)

			st.Learner.Credits = 40
			st.Learner.TotalAnswered = 3
			st.Learner.TotalCorrect = 2
			st.Learner.Level = learner.Intermediate
			st.Learner.LastActiveDate = "2026-03-01"
			st.Progress.Complete("a-01-concept")
			st.Progress.Complete("a-01-question")
			st.Progress.Advance(10)
			st.Progress.Advance(10)
			st.Answers.Record("b-q", 2, false, now)
			st.Answers.Record("a-q", 1, true, now.Add(time.Minute))
			st.Answers.Record("b-q", 2, true, now.Add(2*time.Minute))
			st.Review = review.Session{Active: true, Entries: []review.Entry{{QuestionID: "b-q", LessonIndex: 2}}, StartedAt: now}
			st.Unlocks["t2"] = now.Add(24 * time.Hour)
			st.Missions = missions.Draw(l.ID, "2026-03-01")
			st.Missions.Progress(st.Missions.Missions[0].Type, 1)

			require.NoError(t, repo.Save(ctx, st))

			got, err := repo.Load(ctx, l.ID)
			require.NoError(t, err)

			assert.Equal(t, 40, got.Learner.Credits)
			assert.Equal(t, 3, got.Learner.TotalAnswered)
			assert.Equal(t, 2, got.Learner.TotalCorrect)
			assert.Equal(t, learner.Intermediate, got.Learner.Level)
			assert.Equal(t, "2026-03-01", got.Learner.LastActiveDate)

			assert.Equal(t, 2, got.Progress.Cursor)
			assert.Equal(t, []string{"a-01-concept", "a-01-question"}, got.Progress.Completed())

			records := got.Answers.Records()
			require.Len(t, records, 2)
			assert.Equal(t, "b-q", records[0].QuestionID)
			assert.True(t, records[0].Correct)
			assert.Equal(t, 1, records[0].ReviewCount)
			assert.True(t, records[1].AnsweredAt.Equal(now.Add(time.Minute)))

			assert.True(t, got.Review.Active)
			assert.Equal(t, []review.Entry{{QuestionID: "b-q", LessonIndex: 2}}, got.Review.Entries)
			assert.True(t, got.Review.StartedAt.Equal(now))

			assert.True(t, got.Unlocks["t2"].Equal(now.Add(24*time.Hour)))

			assert.Equal(t, "2026-03-01", got.Missions.Date)
			require.Len(t, got.Missions.Missions, missions.PerDay)
			assert.Equal(t, st.Missions.Missions[0], got.Missions.Missions[0])
		})
	}
}

func TestStateRepoSaveUnknownLearner(t *testing.T) {
	for name, newRepo := range repoFactories(t) {
		t.Run(name, func(t *testing.T) {
			st := NewLearnerState(learner.New("ghost", "ghost", time.Now()))
			err := newRepo().Save(context.Background(), st)
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestStateRepoList(t *testing.T) {
	for name, newRepo := range repoFactories(t) {
		t.Run(name, func(t *testing.T) {
			repo := newRepo()
			ctx := context.Background()
			base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
			require.NoError(t, repo.Create(ctx, learner.New("id-b", "second", base.Add(time.Hour))))
			require.NoError(t, repo.Create(ctx, learner.New("id-a", "first", base)))

			got, err := repo.List(ctx)
			require.NoError(t, err)
			require.Len(t, got, 2)
			assert.Equal(t, "first", got[0].Username)
			assert.Equal(t, "second", got[1].Username)
		})
	}
}

func TestMemoryRepoIsolatesCopies(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, learner.New("id", "ada", time.Now())))

	st, err := repo.Load(ctx, "id")
	require.NoError(t, err)
	st.Learner.Credits = 99
	st.Answers.Record("q", 1, true, time.Now())

	again, err := repo.Load(ctx, "id")
	require.NoError(t, err)
	assert.Equal(t, 0, again.Learner.Credits)
	assert.Equal(t, 0, again.Answers.Len())
}

func TestEventRepo(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "mock", Model: "m1", Purpose: "authoring", InputTokens: 10, OutputTokens: 20, Success: true,
	}))
	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "mock", Model: "m1", Purpose: "authoring", ErrorMessage: "boom",
	}))

	all, err := repo.RecentLLMRequests(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	one, err := repo.RecentLLMRequests(ctx, 1)
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.NotEmpty(t, one[0].ID)
}

func TestCloneIsDeep(t *testing.T) {
	st := NewLearnerState(learner.New("id", "ada", time.Now()))
	st.Unlocks["t"] = time.Now()
	st.Review = review.Session{Active: true, Entries: []review.Entry{{QuestionID: "q"}}}

	c := st.Clone()
	c.Unlocks["u"] = time.Now()
	c.Review.Entries[0].QuestionID = "changed"
	c.Progress.Complete("x")

	assert.Len(t, st.Unlocks, 1)
	assert.Equal(t, "q", st.Review.Entries[0].QuestionID)
	assert.False(t, st.Progress.IsCompleted("x"))
}
