package learner

import (
	"errors"
	"fmt"
	"time"
)

// Level is the learner's difficulty tier.
type Level string

const (
	Beginner     Level = "beginner"
	Intermediate Level = "intermediate"
	Advanced     Level = "advanced"
)

// Rank orders levels; unknown levels rank below beginner.
func (l Level) Rank() int {
	switch l {
	case Beginner:
		return 1
	case Intermediate:
		return 2
	case Advanced:
		return 3
	}
	return 0
}

// ParseLevel validates a level name.
func ParseLevel(s string) (Level, error) {
	l := Level(s)
	if l.Rank() == 0 {
		return "", fmt.Errorf("%w: %q", ErrUnknownLevel, s)
	}
	return l, nil
}

var (
	ErrUnknownLevel      = errors.New("unknown level")
	ErrNegativeStreak    = errors.New("streak must not be negative")
	ErrInsufficientFunds = errors.New("insufficient credits")
)

// dateLayout is the calendar date format used for activity tracking.
const dateLayout = "2006-01-02"

// Learner holds the counters and tier of one learner.
type Learner struct {
	ID            string
	Username      string
	Credits       int
	Streak        int
	TotalAnswered int
	TotalCorrect  int
	Level         Level

	// StartDate anchors elapsed-day computations. Zero means unknown.
	StartDate time.Time

	// LastActiveDate is the calendar date (YYYY-MM-DD) of the last
	// completed lesson, used to extend the daily streak.
	LastActiveDate string

	CreatedAt time.Time
}

// New returns a beginner learner starting now.
func New(id, username string, now time.Time) Learner {
	return Learner{
		ID:        id,
		Username:  username,
		Level:     Beginner,
		StartDate: now,
		CreatedAt: now,
	}
}

// RecordStat counts one answered question.
func (l *Learner) RecordStat(correct bool) {
	l.TotalAnswered++
	if correct {
		l.TotalCorrect++
	}
}

// AddCredits adjusts the balance by amount. A negative amount that would
// overdraw the balance is rejected.
func (l *Learner) AddCredits(amount int) error {
	if l.Credits+amount < 0 {
		return fmt.Errorf("%w: balance %d, change %d", ErrInsufficientFunds, l.Credits, amount)
	}
	l.Credits += amount
	return nil
}

// SetLevel moves the learner to level. Lower levels are ignored, so the
// tier never decreases. It reports whether the level changed.
func (l *Learner) SetLevel(level Level) (bool, error) {
	if level.Rank() == 0 {
		return false, fmt.Errorf("%w: %q", ErrUnknownLevel, level)
	}
	if level.Rank() <= l.Level.Rank() {
		return false, nil
	}
	l.Level = level
	return true, nil
}

// SetStreak overrides the streak counter.
func (l *Learner) SetStreak(streak int) error {
	if streak < 0 {
		return ErrNegativeStreak
	}
	l.Streak = streak
	return nil
}

// Accuracy returns the percentage of correct answers, 0 when nothing has
// been answered.
func (l Learner) Accuracy() float64 {
	if l.TotalAnswered == 0 {
		return 0
	}
	return float64(l.TotalCorrect) / float64(l.TotalAnswered) * 100
}

// MarkActive records activity on today's date and maintains the daily
// streak. It returns true when this is the first activity of the day.
func (l *Learner) MarkActive(today time.Time) bool {
	date := today.Format(dateLayout)
	if l.LastActiveDate == date {
		return false
	}
	yesterday := today.AddDate(0, 0, -1).Format(dateLayout)
	if l.LastActiveDate == yesterday {
		l.Streak++
	} else {
		l.Streak = 1
	}
	l.LastActiveDate = date
	return true
}
