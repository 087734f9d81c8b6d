package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lessonloop/internal/auth"
	"github.com/abhisek/lessonloop/internal/catalog"
	"github.com/abhisek/lessonloop/internal/catalog/catalogtest"
	"github.com/abhisek/lessonloop/internal/config"
	"github.com/abhisek/lessonloop/internal/learning"
	"github.com/abhisek/lessonloop/internal/store"
)

type testServer struct {
	t       *testing.T
	handler http.Handler
	token   string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	cat := catalogtest.New(t, "",
		catalogtest.Topic("a", 1, catalog.Beginner, catalog.Beginner),
		catalogtest.Topic("b", 1, catalog.Beginner))
	svc, err := learning.New(cat, store.NewMemoryRepo(), learning.WithLocation(time.UTC))
	require.NoError(t, err)
	tokens, err := auth.New(config.AuthConfig{
		JWTSecret:     "0123456789abcdef0123456789abcdef",
		TokenLifetime: time.Hour,
	})
	require.NoError(t, err)
	return &testServer{t: t, handler: New(svc, tokens, nil).Routes()}
}

func (ts *testServer) do(method, path string, body any) *httptest.ResponseRecorder {
	ts.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(ts.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if ts.token != "" {
		req.Header.Set("Authorization", "Bearer "+ts.token)
	}
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

func (ts *testServer) register(username string) createLearnerResponse {
	ts.t.Helper()
	rec := ts.do(http.MethodPost, "/api/learners", map[string]string{"username": username})
	require.Equal(ts.t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp createLearnerResponse
	require.NoError(ts.t, json.Unmarshal(rec.Body.Bytes(), &resp))
	ts.token = resp.Token
	return resp
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRegisterIssuesToken(t *testing.T) {
	ts := newTestServer(t)
	resp := ts.register("ada")
	assert.Equal(t, "ada", resp.Learner.Username)
	assert.NotEmpty(t, resp.Token)

	rec := ts.do(http.MethodGet, "/api/me", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	me := decodeBody[learning.LearnerView](t, rec)
	assert.Equal(t, resp.Learner.ID, me.ID)
}

func TestRegisterErrors(t *testing.T) {
	ts := newTestServer(t)
	ts.register("ada")

	rec := ts.do(http.MethodPost, "/api/learners", map[string]string{"username": "ada"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = ts.do(http.MethodPost, "/api/learners", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody[ErrorResponse](t, rec)
	assert.Contains(t, body.Error, "username")
	assert.NotEmpty(t, body.RequestID)

	rec = ts.do(http.MethodPost, "/api/learners", map[string]string{"name": "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthRequired(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, "/api/me/card", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	ts.token = "garbage"
	rec = ts.do(http.MethodGet, "/api/me/card", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid token", decodeBody[ErrorResponse](t, rec).Error)
}

func TestLearningFlow(t *testing.T) {
	ts := newTestServer(t)
	ts.register("ada")

	rec := ts.do(http.MethodGet, "/api/me/card", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	card := decodeBody[cardResponse](t, rec)
	require.NotNil(t, card.Card)
	assert.Equal(t, "a-01-concept", card.Card.ID)

	ts.do(http.MethodPost, "/api/me/advance", nil)
	rec = ts.do(http.MethodPost, "/api/me/advance", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	adv := decodeBody[learning.AdvanceResult](t, rec)
	require.NotNil(t, adv.Next)
	assert.Equal(t, catalogtest.QuestionID("a", 1), adv.Next.ID)

	rec = ts.do(http.MethodPost, "/api/me/answers", map[string]any{
		"question_id": catalogtest.QuestionID("a", 1),
		"option":      1,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	out := decodeBody[learning.AnswerOutcome](t, rec)
	assert.False(t, out.Correct)
	assert.Equal(t, 0, out.CorrectIndex)

	rec = ts.do(http.MethodGet, "/api/me/review", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[reviewResponse](t, rec).Questions, 1)

	rec = ts.do(http.MethodPost, "/api/me/review", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, reviewStatus{Active: true, Queued: 1}, decodeBody[reviewStatus](t, rec))

	rec = ts.do(http.MethodGet, "/api/me/review/status", nil)
	assert.True(t, decodeBody[reviewStatus](t, rec).Active)

	rec = ts.do(http.MethodDelete, "/api/me/review", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = ts.do(http.MethodGet, "/api/me/topics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	topics := decodeBody[topicsResponse](t, rec).Topics
	require.Len(t, topics, 2)
	assert.False(t, topics[0].IsLocked)
	assert.True(t, topics[1].IsLocked)

	rec = ts.do(http.MethodGet, "/api/me/plan", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	plan := decodeBody[learning.Plan](t, rec)
	assert.True(t, plan.HasNewLesson)
	assert.Equal(t, 1, plan.ReviewCount)
}

func TestAnswerValidation(t *testing.T) {
	ts := newTestServer(t)
	ts.register("ada")

	rec := ts.do(http.MethodPost, "/api/me/answers", map[string]any{"question_id": "missing", "option": 0})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(http.MethodPost, "/api/me/answers", map[string]any{"question_id": catalogtest.QuestionID("a", 1)})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(http.MethodPost, "/api/me/answers", map[string]any{"question_id": catalogtest.QuestionID("a", 1), "option": 5})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLearnerUpdates(t *testing.T) {
	ts := newTestServer(t)
	ts.register("ada")

	rec := ts.do(http.MethodPost, "/api/me/credits", map[string]int{"amount": 25})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 25, decodeBody[learning.LearnerView](t, rec).Credits)

	rec = ts.do(http.MethodPost, "/api/me/credits", map[string]int{"amount": -50})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(http.MethodPut, "/api/me/level", map[string]string{"level": "advanced"})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = ts.do(http.MethodPut, "/api/me/level", map[string]string{"level": "beginner"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "advanced", string(decodeBody[learning.LearnerView](t, rec).Level))

	rec = ts.do(http.MethodPut, "/api/me/level", map[string]string{"level": "expert"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(http.MethodPut, "/api/me/streak", map[string]int{"streak": 3})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, decodeBody[learning.LearnerView](t, rec).Streak)

	rec = ts.do(http.MethodPut, "/api/me/streak", map[string]int{"streak": -1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(http.MethodPost, "/api/me/stats", map[string]bool{"correct": true})
	require.Equal(t, http.StatusOK, rec.Code)
	me := decodeBody[learning.LearnerView](t, rec)
	assert.Equal(t, 1, me.TotalAnswered)
	assert.Equal(t, 1, me.TotalCorrect)

	rec = ts.do(http.MethodPost, "/api/me/answers/record", map[string]any{
		"question_id": catalogtest.QuestionID("b", 1),
		"correct":     false,
	})
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = ts.do(http.MethodGet, "/api/me/profile", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	p := decodeBody[learning.Profile](t, rec)
	assert.Equal(t, 3, p.TotalLessons)
	assert.Len(t, p.Achievements, 6)
}

func TestCatalogIsPublic(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.do(http.MethodGet, "/api/catalog", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[catalogResponse](t, rec)
	assert.Equal(t, "test", resp.Version)
	assert.Equal(t, 9, resp.Cards)
	require.Len(t, resp.Topics, 2)
	assert.Equal(t, 2, resp.Topics[0].Lessons)
}
