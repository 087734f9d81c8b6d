package unlock

import (
	"fmt"
	"math"
	"time"

	"github.com/abhisek/lessonloop/internal/catalog"
)

// Policy selects how topics open.
type Policy string

const (
	// Static opens a topic on a fixed day counted from the learner's start.
	Static Policy = "static"

	// Chained opens a topic at the midnight after every question of the
	// previous topic has been completed.
	Chained Policy = "chained"
)

// DefaultPolicy is used when neither catalog nor configuration picks one.
const DefaultPolicy = Chained

// ParsePolicy validates a policy name. The empty string yields the default.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case "":
		return DefaultPolicy, nil
	case Static, Chained:
		return Policy(s), nil
	}
	return "", fmt.Errorf("unknown unlock policy %q", s)
}

// Timestamps maps topic id to the moment it opens for one learner. Entries
// are only ever added.
type Timestamps map[string]time.Time

// DoneFunc reports whether a card has been completed.
type DoneFunc func(cardID string) bool

// TopicStatus is the per-learner view of a topic.
type TopicStatus struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	Description      string     `json:"description,omitempty"`
	LessonCount      int        `json:"lesson_count"`
	CompletedLessons int        `json:"completed_lessons"`
	IsLocked         bool       `json:"is_locked"`
	UnlocksAt        *time.Time `json:"unlocks_at"`
}

// Gate decides which topics are open.
type Gate struct {
	policy Policy
	loc    *time.Location
}

// NewGate creates a gate. A nil location means UTC.
func NewGate(policy Policy, loc *time.Location) *Gate {
	if loc == nil {
		loc = time.UTC
	}
	return &Gate{policy: policy, loc: loc}
}

// Policy returns the gate's policy.
func (g *Gate) Policy() Policy { return g.policy }

// DaysSinceStart returns the 1-based day number of now relative to start.
// An unknown start counts as day 1.
func DaysSinceStart(start, now time.Time) int {
	if start.IsZero() {
		return 1
	}
	days := int(math.Ceil(now.Sub(start).Hours() / 24))
	if days < 1 {
		return 1
	}
	return days
}

// NextMidnight returns the start of the calendar day after now in loc.
func NextMidnight(now time.Time, loc *time.Location) time.Time {
	y, m, d := now.In(loc).Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, loc)
}

// IsLocked reports whether topic is closed for a learner at now.
func (g *Gate) IsLocked(cat *catalog.Catalog, topic catalog.Topic, start time.Time, ts Timestamps, now time.Time) bool {
	if g.policy == Static {
		return DaysSinceStart(start, now) < topic.UnlockDay
	}
	if g.isFirst(cat, topic) {
		return false
	}
	at, ok := ts[topic.ID]
	return !ok || at.After(now)
}

// UnlocksAt returns when topic opens, or nil when that is not yet known.
func (g *Gate) UnlocksAt(cat *catalog.Catalog, topic catalog.Topic, start time.Time, ts Timestamps) *time.Time {
	if g.policy == Static {
		if start.IsZero() {
			return nil
		}
		at := start.AddDate(0, 0, topic.UnlockDay-1)
		return &at
	}
	if at, ok := ts[topic.ID]; ok {
		return &at
	}
	if g.isFirst(cat, topic) && !start.IsZero() {
		at := start
		return &at
	}
	return nil
}

// LessonCompleted is called after a question card of topicID is completed.
// Under the chained policy, once every question of the topic is done the
// next topic is scheduled to open at the following midnight. It returns the
// topic that was scheduled, if any.
func (g *Gate) LessonCompleted(cat *catalog.Catalog, topicID string, done DoneFunc, ts Timestamps, now time.Time) (catalog.Topic, time.Time, bool) {
	if g.policy != Chained {
		return catalog.Topic{}, time.Time{}, false
	}
	for _, q := range cat.QuestionCards(topicID) {
		if !done(q.ID) {
			return catalog.Topic{}, time.Time{}, false
		}
	}
	next, ok := cat.NextTopic(topicID)
	if !ok {
		return catalog.Topic{}, time.Time{}, false
	}
	if _, set := ts[next.ID]; set {
		return catalog.Topic{}, time.Time{}, false
	}
	at := NextMidnight(now, g.loc)
	ts[next.ID] = at
	return next, at, true
}

// Topics builds the read model for every topic in catalog order.
func (g *Gate) Topics(cat *catalog.Catalog, start time.Time, done DoneFunc, ts Timestamps, now time.Time) []TopicStatus {
	topics := cat.Topics()
	out := make([]TopicStatus, 0, len(topics))
	for _, t := range topics {
		questions := cat.QuestionCards(t.ID)
		completed := 0
		for _, q := range questions {
			if done(q.ID) {
				completed++
			}
		}
		out = append(out, TopicStatus{
			ID:               t.ID,
			Title:            t.Title,
			Description:      t.Description,
			LessonCount:      len(questions),
			CompletedLessons: completed,
			IsLocked:         g.IsLocked(cat, t, start, ts, now),
			UnlocksAt:        g.UnlocksAt(cat, t, start, ts),
		})
	}
	return out
}

func (g *Gate) isFirst(cat *catalog.Catalog, topic catalog.Topic) bool {
	_, hasPrev := cat.PreviousTopic(topic.ID)
	return !hasPrev
}
