package ledger

import "time"

// Record is the latest answer a learner gave to one question.
type Record struct {
	QuestionID  string
	LessonIndex int
	Correct     bool
	AnsweredAt  time.Time
	ReviewCount int
}

// Ledger holds one record per question, in the order questions were first
// answered.
type Ledger struct {
	records []Record
	index   map[string]int
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{index: make(map[string]int)}
}

// FromRecords rebuilds a ledger from persisted records, preserving order.
// Later duplicates of a question id replace earlier ones.
func FromRecords(records []Record) *Ledger {
	l := New()
	for _, r := range records {
		if i, ok := l.index[r.QuestionID]; ok {
			l.records[i] = r
			continue
		}
		l.index[r.QuestionID] = len(l.records)
		l.records = append(l.records, r)
	}
	return l
}

// Record stores an answer. A repeat answer overwrites the outcome and time
// and bumps the review count; a first answer starts at zero.
func (l *Ledger) Record(questionID string, lessonIndex int, correct bool, now time.Time) Record {
	if l.index == nil {
		l.index = make(map[string]int)
	}
	if i, ok := l.index[questionID]; ok {
		r := &l.records[i]
		r.Correct = correct
		r.AnsweredAt = now
		r.ReviewCount++
		return *r
	}
	r := Record{
		QuestionID:  questionID,
		LessonIndex: lessonIndex,
		Correct:     correct,
		AnsweredAt:  now,
	}
	l.index[questionID] = len(l.records)
	l.records = append(l.records, r)
	return r
}

// Get returns the record for a question.
func (l *Ledger) Get(questionID string) (Record, bool) {
	i, ok := l.index[questionID]
	if !ok {
		return Record{}, false
	}
	return l.records[i], true
}

// Records returns a copy of all records in first-answered order.
func (l *Ledger) Records() []Record {
	out := make([]Record, len(l.records))
	copy(out, l.records)
	return out
}

// Len returns the number of answered questions.
func (l *Ledger) Len() int { return len(l.records) }
