package missions

import (
	"testing"
	"time"
)

func TestDrawSamplesWithoutReplacement(t *testing.T) {
	for _, date := range []string{"2026-01-01", "2026-01-02", "2026-06-30", "2027-03-14"} {
		b := Draw("learner-1", date)
		if len(b.Missions) != PerDay {
			t.Fatalf("%s: %d missions, want %d", date, len(b.Missions), PerDay)
		}
		seen := map[Type]bool{}
		for _, m := range b.Missions {
			if seen[m.Type] {
				t.Errorf("%s: duplicate mission %s", date, m.Type)
			}
			seen[m.Type] = true
			if m.Current != 0 || m.Completed {
				t.Errorf("%s: fresh mission has progress %+v", date, m)
			}
		}
	}
}

func TestDrawIsStablePerLearnerAndDate(t *testing.T) {
	a := Draw("learner-1", "2026-01-01")
	b := Draw("learner-1", "2026-01-01")
	for i := range a.Missions {
		if a.Missions[i].Type != b.Missions[i].Type {
			t.Fatalf("draw differs: %v vs %v", a.Missions, b.Missions)
		}
	}
}

func TestProgressClampsAndRewardsOnce(t *testing.T) {
	b := Board{Missions: []Mission{{Type: EarnCredits, Target: 50, Reward: 15}}}

	if got := b.Progress(EarnCredits, 30); got != 0 {
		t.Errorf("partial progress reward = %d, want 0", got)
	}
	if got := b.Progress(EarnCredits, 40); got != 15 {
		t.Errorf("crossing reward = %d, want 15", got)
	}
	if b.Missions[0].Current != 50 || !b.Missions[0].Completed {
		t.Errorf("mission after crossing = %+v", b.Missions[0])
	}
	if got := b.Progress(EarnCredits, 10); got != 0 {
		t.Errorf("reward after completion = %d, want 0", got)
	}
	if b.Missions[0].Current > b.Missions[0].Target {
		t.Errorf("current %d exceeds target", b.Missions[0].Current)
	}
}

func TestProgressIgnoresMissingTypeAndNonPositive(t *testing.T) {
	b := Board{Missions: []Mission{{Type: AnswerCorrect, Target: 5, Reward: 20}}}
	if got := b.Progress(MaintainStreak, 1); got != 0 {
		t.Errorf("missing type reward = %d", got)
	}
	b.Progress(AnswerCorrect, 0)
	b.Progress(AnswerCorrect, -3)
	if b.Missions[0].Current != 0 {
		t.Errorf("current = %d, want 0", b.Missions[0].Current)
	}
}

func TestEnsureDayResetsOnNewDate(t *testing.T) {
	day := time.Date(2026, 4, 1, 23, 0, 0, 0, time.UTC)
	var b Board
	if !b.EnsureDay("l", day) {
		t.Fatal("empty board should reset")
	}
	for _, m := range b.Missions {
		b.Progress(m.Type, m.Target)
	}

	if b.EnsureDay("l", day.Add(30*time.Minute)) {
		t.Error("same date should not reset")
	}
	if !b.Missions[0].Completed {
		t.Error("progress lost on same date")
	}

	if !b.EnsureDay("l", day.Add(2*time.Hour)) {
		t.Fatal("new date should reset")
	}
	if b.Date != "2026-04-02" {
		t.Errorf("date = %s", b.Date)
	}
	for _, m := range b.Missions {
		if m.Current != 0 || m.Completed {
			t.Errorf("mission carried over: %+v", m)
		}
	}
}

func TestHas(t *testing.T) {
	b := Board{Missions: []Mission{{Type: AnswerCorrect}}}
	if !b.Has(AnswerCorrect) || b.Has(EarnCredits) {
		t.Error("Has() mismatch")
	}
}
