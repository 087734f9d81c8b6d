package progression

import (
	"sort"

	"github.com/abhisek/lessonloop/internal/catalog"
	"github.com/abhisek/lessonloop/internal/learner"
)

// GateCorrectAnswers is how many correct answers a beginner needs before
// intermediate cards are shown as-is.
const GateCorrectAnswers = 3

// Progress is a learner's position in the catalog. The cursor only moves
// forward.
type Progress struct {
	Cursor    int
	completed map[string]bool
}

// New returns progress at the start of the catalog.
func New() Progress {
	return Progress{completed: make(map[string]bool)}
}

// Restore rebuilds progress from persisted state.
func Restore(cursor int, completed []string) Progress {
	p := New()
	if cursor > 0 {
		p.Cursor = cursor
	}
	for _, id := range completed {
		p.completed[id] = true
	}
	return p
}

// Current returns the card to show. Past the end of the catalog there is no
// card. Cards above the learner's tier are swapped for the first pending
// beginner card; the cursor is not moved.
func (p Progress) Current(cat *catalog.Catalog, l learner.Learner) (catalog.Card, bool) {
	card, ok := cat.At(p.Cursor)
	if !ok {
		return catalog.Card{}, false
	}
	if !gated(card, l) {
		return card, true
	}
	if sub, ok := cat.FirstPending(catalog.Beginner, p.IsCompleted); ok {
		return sub, true
	}
	return card, true
}

func gated(card catalog.Card, l learner.Learner) bool {
	if l.Level != learner.Beginner {
		return false
	}
	switch card.Difficulty {
	case catalog.Advanced:
		return true
	case catalog.Intermediate:
		return l.TotalCorrect < GateCorrectAnswers
	}
	return false
}

// Complete marks a card done and reports whether it was newly completed.
func (p *Progress) Complete(cardID string) bool {
	if p.completed == nil {
		p.completed = make(map[string]bool)
	}
	if p.completed[cardID] {
		return false
	}
	p.completed[cardID] = true
	return true
}

// Advance moves the cursor forward by one, stopping at the catalog end. It
// reports whether the cursor moved.
func (p *Progress) Advance(total int) bool {
	if p.Cursor >= total {
		return false
	}
	p.Cursor++
	return true
}

// IsCompleted reports whether a card is done.
func (p Progress) IsCompleted(cardID string) bool {
	return p.completed[cardID]
}

// Completed returns the sorted ids of completed cards.
func (p Progress) Completed() []string {
	out := make([]string, 0, len(p.completed))
	for id := range p.completed {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// CompletedLessons counts completed question cards.
func (p Progress) CompletedLessons(cat *catalog.Catalog) int {
	n := 0
	for id := range p.completed {
		if card, ok := cat.Card(id); ok && card.IsQuestion() {
			n++
		}
	}
	return n
}

// CompletedTopics counts topics whose questions are all completed.
func (p Progress) CompletedTopics(cat *catalog.Catalog) int {
	n := 0
	for _, t := range cat.Topics() {
		qs := cat.QuestionCards(t.ID)
		if len(qs) == 0 {
			continue
		}
		all := true
		for _, q := range qs {
			if !p.completed[q.ID] {
				all = false
				break
			}
		}
		if all {
			n++
		}
	}
	return n
}

// AllLessonsComplete reports whether every question card is completed.
func (p Progress) AllLessonsComplete(cat *catalog.Catalog) bool {
	return p.CompletedLessons(cat) == cat.QuestionCount()
}
