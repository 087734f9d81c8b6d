package learning

import (
	"context"

	"github.com/abhisek/lessonloop/internal/review"
	"github.com/abhisek/lessonloop/internal/store"
)

// ReviewQuestions lists up to five questions due for review.
func (s *Service) ReviewQuestions(ctx context.Context, learnerID string) ([]ReviewItem, error) {
	var out []ReviewItem
	err := s.view(ctx, learnerID, func(st *store.LearnerState) error {
		for _, c := range review.Candidates(s.catalog, st.Answers.Records(), s.now()) {
			rec, _ := st.Answers.Get(c.QuestionID)
			item := ReviewItem{
				QuestionID:  c.QuestionID,
				LessonIndex: c.LessonIndex,
				TopicID:     c.Card.TopicID,
				LastCorrect: rec.Correct,
				AnsweredAt:  rec.AnsweredAt,
				ReviewCount: rec.ReviewCount,
			}
			if q, ok := c.Card.Question(); ok {
				item.Prompt = q.Prompt
			}
			out = append(out, item)
		}
		return nil
	})
	return out, err
}

// StartReviewMode snapshots the due questions into a review session and
// returns how many were queued. With nothing due the learner stays out of
// review. Starting while a session runs leaves it untouched.
func (s *Service) StartReviewMode(ctx context.Context, learnerID string) (int, error) {
	var n int
	err := s.update(ctx, learnerID, func(st *store.LearnerState) error {
		if st.Review.Active {
			n = st.Review.Remaining()
			return nil
		}
		st.Review = review.Start(review.Candidates(s.catalog, st.Answers.Records(), s.now()), s.now())
		n = st.Review.Remaining()
		if n > 0 {
			s.log.Info("review started", "learner_id", learnerID, "questions", n)
		}
		return nil
	})
	return n, err
}

// ExitReviewMode ends any review session.
func (s *Service) ExitReviewMode(ctx context.Context, learnerID string) error {
	return s.update(ctx, learnerID, func(st *store.LearnerState) error {
		st.Review.Exit()
		return nil
	})
}

// IsInReviewMode reports whether a review session is active.
func (s *Service) IsInReviewMode(ctx context.Context, learnerID string) (bool, error) {
	var active bool
	err := s.view(ctx, learnerID, func(st *store.LearnerState) error {
		active = st.Review.Active
		return nil
	})
	return active, err
}
