package learning

import (
	"context"
	"slices"

	"github.com/abhisek/lessonloop/internal/learner"
	"github.com/abhisek/lessonloop/internal/review"
	"github.com/abhisek/lessonloop/internal/store"
	"github.com/abhisek/lessonloop/internal/unlock"
)

// Topics returns every topic with the learner's lock state and progress.
func (s *Service) Topics(ctx context.Context, learnerID string) ([]unlock.TopicStatus, error) {
	var out []unlock.TopicStatus
	err := s.view(ctx, learnerID, func(st *store.LearnerState) error {
		out = s.gate.Topics(s.catalog, st.Learner.StartDate, st.Progress.IsCompleted, st.Unlocks, s.now())
		return nil
	})
	return out, err
}

// DailyPlan summarises today: whether a new catalog card is waiting, how
// many questions are due, and the day's missions.
func (s *Service) DailyPlan(ctx context.Context, learnerID string) (Plan, error) {
	var p Plan
	err := s.view(ctx, learnerID, func(st *store.LearnerState) error {
		_, hasCard := st.Progress.Current(s.catalog, st.Learner)
		p = Plan{
			Date:               st.Missions.Date,
			HasNewLesson:       hasCard,
			ReviewCount:        len(review.Candidates(s.catalog, st.Answers.Records(), s.now())),
			InReview:           st.Review.Active,
			Missions:           slices.Clone(st.Missions.Missions),
			AllLessonsComplete: st.Progress.AllLessonsComplete(s.catalog),
		}
		return nil
	})
	return p, err
}

// Profile returns the learner with accuracy, lesson counts and badges.
func (s *Service) Profile(ctx context.Context, learnerID string) (Profile, error) {
	var p Profile
	err := s.view(ctx, learnerID, func(st *store.LearnerState) error {
		m := learner.Milestones{
			CompletedLessons: st.Progress.CompletedLessons(s.catalog),
			CompletedTopics:  st.Progress.CompletedTopics(s.catalog),
		}
		p = Profile{
			Learner:          newLearnerView(st.Learner),
			Accuracy:         st.Learner.Accuracy(),
			CompletedLessons: m.CompletedLessons,
			TotalLessons:     s.catalog.QuestionCount(),
			CompletedTopics:  m.CompletedTopics,
			Achievements:     learner.Achievements(st.Learner, m),
		}
		return nil
	})
	return p, err
}
