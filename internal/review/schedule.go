package review

import (
	"time"

	"github.com/abhisek/lessonloop/internal/catalog"
	"github.com/abhisek/lessonloop/internal/ledger"
)

// Intervals is the wait before a correctly answered question is due again,
// indexed by review count and capped at the last entry.
var Intervals = []time.Duration{
	24 * time.Hour,
	72 * time.Hour,
	168 * time.Hour,
}

// MaxCandidates caps how many questions one review pass covers.
const MaxCandidates = 5

// Interval returns the review interval for a record with reviewCount prior
// reviews.
func Interval(reviewCount int) time.Duration {
	if reviewCount < 0 {
		reviewCount = 0
	}
	if reviewCount >= len(Intervals) {
		reviewCount = len(Intervals) - 1
	}
	return Intervals[reviewCount]
}

// IsDue reports whether a record should be reviewed at now. Wrong answers
// are always due.
func IsDue(r ledger.Record, now time.Time) bool {
	if !r.Correct {
		return true
	}
	return now.Sub(r.AnsweredAt) >= Interval(r.ReviewCount)
}

// Candidate is a due question resolved to its card.
type Candidate struct {
	QuestionID  string
	LessonIndex int
	Card        catalog.Card
}

// Candidates returns up to MaxCandidates due questions in ledger order.
// Each record maps to the first question card of its lesson; records whose
// lesson no longer exists are skipped.
func Candidates(cat *catalog.Catalog, records []ledger.Record, now time.Time) []Candidate {
	var out []Candidate
	for _, r := range records {
		if len(out) == MaxCandidates {
			break
		}
		if !IsDue(r, now) {
			continue
		}
		card, ok := cat.QuestionForLesson(r.LessonIndex)
		if !ok {
			continue
		}
		out = append(out, Candidate{
			QuestionID:  r.QuestionID,
			LessonIndex: r.LessonIndex,
			Card:        card,
		})
	}
	return out
}
