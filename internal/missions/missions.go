package missions

import (
	"hash/fnv"
	"math/rand/v2"
	"time"
)

// Type identifies what a mission counts.
type Type string

const (
	AnswerCorrect   Type = "answer_correct"
	CompleteLessons Type = "complete_lessons"
	EarnCredits     Type = "earn_credits"
	MaintainStreak  Type = "maintain_streak"
)

// Template describes a mission before it is assigned to a day.
type Template struct {
	Type   Type
	Title  string
	Target int
	Reward int
}

// Pool is the fixed set of mission templates a day draws from.
var Pool = []Template{
	{Type: AnswerCorrect, Title: "Answer 5 questions correctly", Target: 5, Reward: 20},
	{Type: CompleteLessons, Title: "Complete 3 lessons", Target: 3, Reward: 25},
	{Type: EarnCredits, Title: "Earn 50 credits", Target: 50, Reward: 15},
	{Type: MaintainStreak, Title: "Keep your streak alive", Target: 1, Reward: 10},
}

// PerDay is how many missions are drawn each day.
const PerDay = 3

// DateLayout formats the calendar date a board belongs to.
const DateLayout = "2006-01-02"

// Mission is one assigned mission and its progress.
type Mission struct {
	Type      Type   `json:"type"`
	Title     string `json:"title"`
	Target    int    `json:"target"`
	Current   int    `json:"current"`
	Reward    int    `json:"reward"`
	Completed bool   `json:"completed"`
}

// Board is a learner's missions for one calendar date.
type Board struct {
	Date     string    `json:"date"`
	Missions []Mission `json:"missions"`
}

// Draw samples PerDay templates without replacement. The draw is seeded by
// learner and date so the same day always yields the same missions.
func Draw(learnerID, date string) Board {
	rng := rand.New(rand.NewPCG(hash(learnerID), hash(date)))
	idx := rng.Perm(len(Pool))[:PerDay]

	b := Board{Date: date, Missions: make([]Mission, 0, PerDay)}
	for _, i := range idx {
		t := Pool[i]
		b.Missions = append(b.Missions, Mission{
			Type:   t.Type,
			Title:  t.Title,
			Target: t.Target,
			Reward: t.Reward,
		})
	}
	return b
}

// EnsureDay replaces the board when it belongs to another date. It reports
// whether a reset happened.
func (b *Board) EnsureDay(learnerID string, today time.Time) bool {
	date := today.Format(DateLayout)
	if b.Date == date {
		return false
	}
	*b = Draw(learnerID, date)
	return true
}

// Progress adds amount to the mission of type t, clamped to its target. It
// returns the reward when this call completes the mission and 0 otherwise,
// including when the day has no mission of that type.
func (b *Board) Progress(t Type, amount int) int {
	if amount <= 0 {
		return 0
	}
	for i := range b.Missions {
		m := &b.Missions[i]
		if m.Type != t || m.Completed {
			continue
		}
		m.Current = min(m.Current+amount, m.Target)
		if m.Current == m.Target {
			m.Completed = true
			return m.Reward
		}
		return 0
	}
	return 0
}

// Has reports whether today's board includes a mission of type t.
func (b Board) Has(t Type) bool {
	for _, m := range b.Missions {
		if m.Type == t {
			return true
		}
	}
	return false
}

func hash(s string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return h.Sum64()
}
