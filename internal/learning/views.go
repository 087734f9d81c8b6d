package learning

import (
	"time"

	"github.com/abhisek/lessonloop/internal/catalog"
	"github.com/abhisek/lessonloop/internal/learner"
	"github.com/abhisek/lessonloop/internal/missions"
)

// CardView is a card as shown to a learner. Question cards omit the
// answer; it is revealed by SubmitAnswer.
type CardView struct {
	ID          string             `json:"id"`
	Kind        catalog.Kind       `json:"kind"`
	TopicID     string             `json:"topic_id"`
	TopicLabel  string             `json:"topic_label"`
	Difficulty  catalog.Difficulty `json:"difficulty"`
	LessonIndex int                `json:"lesson_index"`
	Step        int                `json:"step"`

	Title     string   `json:"title,omitempty"`
	Text      string   `json:"text,omitempty"`
	Takeaway  string   `json:"takeaway,omitempty"`
	Narrative string   `json:"narrative,omitempty"`
	Prompt    string   `json:"prompt,omitempty"`
	Options   []string `json:"options,omitempty"`
	Reward    int      `json:"reward,omitempty"`

	// InReview is set when the card comes from a review session.
	InReview        bool `json:"in_review"`
	ReviewRemaining int  `json:"review_remaining,omitempty"`
}

func newCardView(c catalog.Card) *CardView {
	v := &CardView{
		ID:          c.ID,
		Kind:        c.Kind(),
		TopicID:     c.TopicID,
		TopicLabel:  c.TopicLabel,
		Difficulty:  c.Difficulty,
		LessonIndex: c.LessonIndex,
		Step:        c.Step,
	}
	switch p := c.Payload.(type) {
	case catalog.Concept:
		v.Title, v.Text, v.Takeaway = p.Title, p.Text, p.Takeaway
	case catalog.Example:
		v.Title, v.Narrative = p.Title, p.Narrative
	case catalog.Question:
		v.Prompt = p.Prompt
		v.Options = append([]string(nil), p.Options...)
		v.Reward = p.Reward
	}
	return v
}

// TopicUnlock reports a topic scheduled to open.
type TopicUnlock struct {
	TopicID   string    `json:"topic_id"`
	Title     string    `json:"title"`
	UnlocksAt time.Time `json:"unlocks_at"`
}

// AdvanceResult describes what an advance did.
type AdvanceResult struct {
	// Next is the card now current, nil at the end of the catalog.
	Next *CardView `json:"next"`

	// EndOfCatalog is set when no catalog card remains.
	EndOfCatalog bool `json:"end_of_catalog"`

	// Review is set when the advance moved a review session;
	// ReviewFinished when that pass is now over.
	Review         bool `json:"review"`
	ReviewFinished bool `json:"review_finished,omitempty"`

	PromotedTo     learner.Level `json:"promoted_to,omitempty"`
	Unlocked       *TopicUnlock  `json:"unlocked,omitempty"`
	MissionRewards int           `json:"mission_rewards,omitempty"`
}

// AnswerOutcome is the result of SubmitAnswer.
type AnswerOutcome struct {
	Correct        bool   `json:"correct"`
	CorrectIndex   int    `json:"correct_index"`
	Explanation    string `json:"explanation"`
	CreditsEarned  int    `json:"credits_earned"`
	MissionRewards int    `json:"mission_rewards"`
	Credits        int    `json:"credits"`
}

// ReviewItem is a question due for review.
type ReviewItem struct {
	QuestionID  string    `json:"question_id"`
	LessonIndex int       `json:"lesson_index"`
	TopicID     string    `json:"topic_id"`
	Prompt      string    `json:"prompt"`
	LastCorrect bool      `json:"last_correct"`
	AnsweredAt  time.Time `json:"answered_at"`
	ReviewCount int       `json:"review_count"`
}

// Plan summarises what a learner can do today.
type Plan struct {
	Date               string             `json:"date"`
	HasNewLesson       bool               `json:"has_new_lesson"`
	ReviewCount        int                `json:"review_count"`
	InReview           bool               `json:"in_review"`
	Missions           []missions.Mission `json:"missions"`
	AllLessonsComplete bool               `json:"all_lessons_complete"`
}

// LearnerView is the public shape of a learner.
type LearnerView struct {
	ID             string        `json:"id"`
	Username       string        `json:"username"`
	Credits        int           `json:"credits"`
	Streak         int           `json:"streak"`
	TotalAnswered  int           `json:"total_answered"`
	TotalCorrect   int           `json:"total_correct"`
	Level          learner.Level `json:"level"`
	StartDate      *time.Time    `json:"start_date,omitempty"`
	LastActiveDate string        `json:"last_active_date,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
}

func newLearnerView(l learner.Learner) LearnerView {
	v := LearnerView{
		ID:             l.ID,
		Username:       l.Username,
		Credits:        l.Credits,
		Streak:         l.Streak,
		TotalAnswered:  l.TotalAnswered,
		TotalCorrect:   l.TotalCorrect,
		Level:          l.Level,
		LastActiveDate: l.LastActiveDate,
		CreatedAt:      l.CreatedAt,
	}
	if !l.StartDate.IsZero() {
		start := l.StartDate
		v.StartDate = &start
	}
	return v
}

// Profile is the learner plus derived progress and badges.
type Profile struct {
	Learner          LearnerView           `json:"learner"`
	Accuracy         float64               `json:"accuracy"`
	CompletedLessons int                   `json:"completed_lessons"`
	TotalLessons     int                   `json:"total_lessons"`
	CompletedTopics  int                   `json:"completed_topics"`
	Achievements     []learner.Achievement `json:"achievements"`
}
