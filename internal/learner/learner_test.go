package learner

import (
	"errors"
	"testing"
	"time"
)

func TestRecordStatKeepsCorrectWithinAnswered(t *testing.T) {
	l := New("id", "ada", time.Now())
	answers := []bool{true, false, true, true, false, false, true}
	for _, a := range answers {
		l.RecordStat(a)
		if l.TotalCorrect < 0 || l.TotalCorrect > l.TotalAnswered {
			t.Fatalf("invariant broken: correct=%d answered=%d", l.TotalCorrect, l.TotalAnswered)
		}
	}
	if l.TotalAnswered != 7 || l.TotalCorrect != 4 {
		t.Errorf("stats = %d/%d, want 4/7", l.TotalCorrect, l.TotalAnswered)
	}
}

func TestAccuracy(t *testing.T) {
	var l Learner
	if l.Accuracy() != 0 {
		t.Errorf("empty accuracy = %v, want 0", l.Accuracy())
	}
	l.TotalAnswered, l.TotalCorrect = 4, 3
	if l.Accuracy() != 75 {
		t.Errorf("accuracy = %v, want 75", l.Accuracy())
	}
}

func TestAddCredits(t *testing.T) {
	l := Learner{Credits: 10}
	if err := l.AddCredits(15); err != nil {
		t.Fatalf("AddCredits(15): %v", err)
	}
	if err := l.AddCredits(-30); !errors.Is(err, ErrInsufficientFunds) {
		t.Errorf("overdraw error = %v, want ErrInsufficientFunds", err)
	}
	if err := l.AddCredits(-25); err != nil {
		t.Fatalf("AddCredits(-25): %v", err)
	}
	if l.Credits != 0 {
		t.Errorf("credits = %d, want 0", l.Credits)
	}
}

func TestSetLevelNeverDemotes(t *testing.T) {
	l := Learner{Level: Beginner}

	changed, err := l.SetLevel(Advanced)
	if err != nil || !changed {
		t.Fatalf("SetLevel(advanced) = %v, %v", changed, err)
	}
	changed, err = l.SetLevel(Intermediate)
	if err != nil || changed {
		t.Errorf("SetLevel(intermediate) = %v, %v; want no change", changed, err)
	}
	if l.Level != Advanced {
		t.Errorf("level = %s, want advanced", l.Level)
	}
	if _, err := l.SetLevel("guru"); !errors.Is(err, ErrUnknownLevel) {
		t.Errorf("unknown level error = %v", err)
	}
}

func TestSetStreak(t *testing.T) {
	var l Learner
	if err := l.SetStreak(-1); !errors.Is(err, ErrNegativeStreak) {
		t.Errorf("SetStreak(-1) = %v", err)
	}
	if err := l.SetStreak(4); err != nil || l.Streak != 4 {
		t.Errorf("SetStreak(4) = %v, streak %d", err, l.Streak)
	}
}

func TestParseLevel(t *testing.T) {
	if l, err := ParseLevel("intermediate"); err != nil || l != Intermediate {
		t.Errorf("ParseLevel = %v, %v", l, err)
	}
	if _, err := ParseLevel("expert"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestPromote(t *testing.T) {
	tests := []struct {
		name     string
		level    Level
		answered int
		correct  int
		want     Level
		changed  bool
	}{
		{"three of three", Beginner, 3, 3, Intermediate, true},
		{"too few answers", Beginner, 2, 2, Beginner, false},
		{"accuracy below 80", Beginner, 5, 3, Beginner, false},
		{"exactly 80", Beginner, 5, 4, Intermediate, true},
		{"intermediate to advanced", Intermediate, 6, 6, Advanced, true},
		{"intermediate needs six", Intermediate, 5, 5, Intermediate, false},
		{"intermediate needs 90", Intermediate, 10, 8, Intermediate, false},
		{"one step per call", Beginner, 10, 10, Intermediate, true},
		{"advanced stays", Advanced, 10, 0, Advanced, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := Learner{Level: tt.level, TotalAnswered: tt.answered, TotalCorrect: tt.correct}
			got, changed := Promote(&l)
			if got != tt.want || changed != tt.changed {
				t.Errorf("Promote() = %s, %v; want %s, %v", got, changed, tt.want, tt.changed)
			}
		})
	}
}

func TestMarkActive(t *testing.T) {
	day := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	l := Learner{}

	if !l.MarkActive(day) || l.Streak != 1 {
		t.Fatalf("first activity: streak %d", l.Streak)
	}
	if l.MarkActive(day.Add(3*time.Hour)) || l.Streak != 1 {
		t.Errorf("same day activity changed streak to %d", l.Streak)
	}
	if !l.MarkActive(day.AddDate(0, 0, 1)) || l.Streak != 2 {
		t.Errorf("next day streak = %d, want 2", l.Streak)
	}
	if !l.MarkActive(day.AddDate(0, 0, 4)) || l.Streak != 1 {
		t.Errorf("after a gap streak = %d, want 1", l.Streak)
	}
}

func TestAchievements(t *testing.T) {
	l := Learner{Streak: 5, Credits: 500, TotalAnswered: 4, TotalCorrect: 4}
	got := Achievements(l, Milestones{CompletedLessons: 10, CompletedTopics: 1})
	for _, a := range got {
		if !a.Earned {
			t.Errorf("achievement %s not earned", a.ID)
		}
	}

	none := Achievements(Learner{}, Milestones{})
	for _, a := range none {
		if a.Earned {
			t.Errorf("achievement %s earned by a new learner", a.ID)
		}
	}
}
