package learner

// Achievement is a badge shown on the profile.
type Achievement struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Earned      bool   `json:"earned"`
}

// Milestones reports lesson-level progress needed to evaluate achievements.
type Milestones struct {
	CompletedLessons int
	CompletedTopics  int
}

// Achievements evaluates every badge for the learner.
func Achievements(l Learner, m Milestones) []Achievement {
	return []Achievement{
		{
			ID:          "first-lesson",
			Title:       "First Steps",
			Description: "Complete your first lesson",
			Earned:      m.CompletedLessons >= 1,
		},
		{
			ID:          "five-streak",
			Title:       "On Fire",
			Description: "Maintain a 5-day learning streak",
			Earned:      l.Streak >= 5,
		},
		{
			ID:          "perfect-score",
			Title:       "Perfect Score",
			Description: "Answer every question correctly",
			Earned:      l.TotalCorrect > 0 && l.TotalCorrect == l.TotalAnswered,
		},
		{
			ID:          "module-master",
			Title:       "Module Master",
			Description: "Complete an entire topic",
			Earned:      m.CompletedTopics >= 1,
		},
		{
			ID:          "credit-collector",
			Title:       "Credit Collector",
			Description: "Earn 500 credits",
			Earned:      l.Credits >= 500,
		},
		{
			ID:          "lesson-enthusiast",
			Title:       "Lesson Enthusiast",
			Description: "Complete 10 lessons",
			Earned:      m.CompletedLessons >= 10,
		},
	}
}
