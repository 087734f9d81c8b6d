package review

import (
	"time"

	"github.com/abhisek/lessonloop/internal/catalog"
)

// Entry is one question queued in a review session.
type Entry struct {
	QuestionID  string `json:"question_id"`
	LessonIndex int    `json:"lesson_index"`
}

// Session is a single pass over a snapshot of due questions. The zero value
// is an inactive session.
type Session struct {
	Active    bool      `json:"active"`
	Entries   []Entry   `json:"entries,omitempty"`
	Cursor    int       `json:"cursor"`
	StartedAt time.Time `json:"started_at,omitzero"`
}

// Start snapshots candidates into a new session. With no candidates the
// returned session is inactive.
func Start(cands []Candidate, now time.Time) Session {
	if len(cands) == 0 {
		return Session{}
	}
	if len(cands) > MaxCandidates {
		cands = cands[:MaxCandidates]
	}
	entries := make([]Entry, len(cands))
	for i, c := range cands {
		entries[i] = Entry{QuestionID: c.QuestionID, LessonIndex: c.LessonIndex}
	}
	return Session{
		Active:    true,
		Entries:   entries,
		StartedAt: now,
	}
}

// Current resolves the card under the cursor. It matches lesson and
// question id first and falls back to the lesson's first question.
func (s Session) Current(cat *catalog.Catalog) (catalog.Card, bool) {
	if !s.Active || s.Cursor >= len(s.Entries) {
		return catalog.Card{}, false
	}
	e := s.Entries[s.Cursor]
	if card, ok := cat.Card(e.QuestionID); ok && card.LessonIndex == e.LessonIndex && card.IsQuestion() {
		return card, true
	}
	return cat.QuestionForLesson(e.LessonIndex)
}

// Advance moves to the next entry and ends the session after the last one.
func (s *Session) Advance() {
	if !s.Active {
		return
	}
	s.Cursor++
	if s.Cursor >= len(s.Entries) {
		s.Exit()
	}
}

// Exit ends the session regardless of position.
func (s *Session) Exit() {
	*s = Session{}
}

// Remaining returns the number of entries not yet reviewed.
func (s Session) Remaining() int {
	if !s.Active {
		return 0
	}
	return len(s.Entries) - s.Cursor
}
