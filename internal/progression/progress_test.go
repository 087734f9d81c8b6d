package progression

import (
	"testing"

	"github.com/abhisek/lessonloop/internal/catalog"
	"github.com/abhisek/lessonloop/internal/catalog/catalogtest"
	"github.com/abhisek/lessonloop/internal/learner"
)

// mixed has lessons: 1 beginner, 2 intermediate, 3 advanced, 4 beginner.
func mixed(t *testing.T) *catalog.Catalog {
	t.Helper()
	return catalogtest.New(t, "",
		catalogtest.Topic("m", 1, catalog.Beginner, catalog.Intermediate, catalog.Advanced, catalog.Beginner),
	)
}

func TestCurrentPastEnd(t *testing.T) {
	cat := mixed(t)
	p := Restore(cat.Len(), nil)
	if _, ok := p.Current(cat, learner.Learner{Level: learner.Beginner}); ok {
		t.Error("expected no card past the end")
	}
}

func TestDifficultyGate(t *testing.T) {
	cat := mixed(t)
	beginner := learner.Learner{Level: learner.Beginner}
	skilledBeginner := learner.Learner{Level: learner.Beginner, TotalCorrect: 3, TotalAnswered: 5}
	inter := learner.Learner{Level: learner.Intermediate}

	tests := []struct {
		name   string
		cursor int
		l      learner.Learner
		want   string
	}{
		{"beginner card shown", 0, beginner, "m-01-concept"},
		{"intermediate swapped for new beginner", 3, beginner, "m-01-concept"},
		{"intermediate shown after three correct", 3, skilledBeginner, "m-02-concept"},
		{"advanced swapped even with correct answers", 6, skilledBeginner, "m-01-concept"},
		{"advanced shown to intermediate", 6, inter, "m-03-concept"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Restore(tt.cursor, nil)
			card, ok := p.Current(cat, tt.l)
			if !ok || card.ID != tt.want {
				t.Errorf("Current() = %q, %v; want %q", card.ID, ok, tt.want)
			}
			if p.Cursor != tt.cursor {
				t.Errorf("cursor moved to %d", p.Cursor)
			}
		})
	}
}

func TestGateSkipsCompletedBeginnerCards(t *testing.T) {
	cat := mixed(t)
	p := Restore(6, []string{"m-01-concept", "m-01-example", "m-01-question"})
	card, _ := p.Current(cat, learner.Learner{Level: learner.Beginner})
	if card.ID != "m-04-concept" {
		t.Errorf("Current() = %q, want m-04-concept", card.ID)
	}
}

func TestGateFallsBackWhenNoBeginnerLeft(t *testing.T) {
	cat := mixed(t)
	var done []string
	for _, c := range cat.Cards() {
		if c.Difficulty == catalog.Beginner {
			done = append(done, c.ID)
		}
	}
	p := Restore(6, done)
	card, ok := p.Current(cat, learner.Learner{Level: learner.Beginner})
	if !ok || card.ID != "m-03-concept" {
		t.Errorf("Current() = %q, want original advanced card", card.ID)
	}
}

func TestAdvanceStopsAtEnd(t *testing.T) {
	p := New()
	for i := 0; i < 3; i++ {
		if !p.Advance(3) {
			t.Fatalf("advance %d did not move", i)
		}
		if p.Cursor != i+1 {
			t.Fatalf("cursor = %d, want %d", p.Cursor, i+1)
		}
	}
	if p.Advance(3) {
		t.Error("advance past end moved the cursor")
	}
	if p.Cursor != 3 {
		t.Errorf("cursor = %d, want 3", p.Cursor)
	}
}

func TestCompleteIsIdempotent(t *testing.T) {
	var p Progress
	if !p.Complete("a") {
		t.Error("first completion should be new")
	}
	if p.Complete("a") {
		t.Error("second completion should not be new")
	}
	if got := p.Completed(); len(got) != 1 || got[0] != "a" {
		t.Errorf("Completed() = %v", got)
	}
}

func TestLessonCounts(t *testing.T) {
	cat := catalogtest.New(t, "",
		catalogtest.Topic("a", 1, catalog.Beginner),
		catalogtest.Topic("b", 1, catalog.Beginner, catalog.Beginner),
	)
	p := Restore(0, []string{"a-01-concept", "a-01-question", "b-01-question"})

	if got := p.CompletedLessons(cat); got != 2 {
		t.Errorf("CompletedLessons() = %d, want 2", got)
	}
	if got := p.CompletedTopics(cat); got != 1 {
		t.Errorf("CompletedTopics() = %d, want 1", got)
	}
	if p.AllLessonsComplete(cat) {
		t.Error("not all lessons are complete")
	}
	p.Complete("b-02-question")
	if !p.AllLessonsComplete(cat) {
		t.Error("all lessons should be complete")
	}
}
