package learning

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/lessonloop/internal/catalog"
	"github.com/abhisek/lessonloop/internal/learner"
	"github.com/abhisek/lessonloop/internal/missions"
	"github.com/abhisek/lessonloop/internal/store"
)

func (s *Service) question(questionID string) (catalog.Card, catalog.Question, error) {
	card, ok := s.catalog.Card(questionID)
	if !ok {
		return catalog.Card{}, catalog.Question{}, fmt.Errorf("%w: question %s", ErrNotFound, questionID)
	}
	q, ok := card.Question()
	if !ok {
		return catalog.Card{}, catalog.Question{}, fmt.Errorf("%w: card %s is not a question", ErrNotFound, questionID)
	}
	return card, q, nil
}

// RecordAnswer stores the latest outcome for a question and, when correct,
// advances the answer_correct mission. A lessonIndex of 0 means the
// question's own lesson. Statistics and credits are separate calls.
func (s *Service) RecordAnswer(ctx context.Context, learnerID, questionID string, lessonIndex int, correct bool) error {
	card, _, err := s.question(questionID)
	if err != nil {
		return err
	}
	if lessonIndex == 0 {
		lessonIndex = card.LessonIndex
	}
	return s.update(ctx, learnerID, func(st *store.LearnerState) error {
		s.recordAnswer(st, questionID, lessonIndex, correct)
		return nil
	})
}

func (s *Service) recordAnswer(st *store.LearnerState, questionID string, lessonIndex int, correct bool) int {
	st.Answers.Record(questionID, lessonIndex, correct, s.now())
	if !correct {
		return 0
	}
	return s.progressMission(st, missions.AnswerCorrect, 1)
}

// UpdateUserStats counts one answered question.
func (s *Service) UpdateUserStats(ctx context.Context, learnerID string, correct bool) error {
	return s.update(ctx, learnerID, func(st *store.LearnerState) error {
		st.Learner.RecordStat(correct)
		return nil
	})
}

// UpdateUserCredits adds amount, which may be negative, to the balance.
func (s *Service) UpdateUserCredits(ctx context.Context, learnerID string, amount int) error {
	return s.update(ctx, learnerID, func(st *store.LearnerState) error {
		return invalid(st.Learner.AddCredits(amount))
	})
}

// UpdateUserLevel raises the learner's tier. Requests to lower it are
// accepted and ignored.
func (s *Service) UpdateUserLevel(ctx context.Context, learnerID string, level learner.Level) error {
	return s.update(ctx, learnerID, func(st *store.LearnerState) error {
		changed, err := st.Learner.SetLevel(level)
		if err != nil {
			return invalid(err)
		}
		if changed {
			s.log.Info("learner level set", "learner_id", learnerID, "level", string(level))
		}
		return nil
	})
}

// UpdateUserStreak overrides the streak.
func (s *Service) UpdateUserStreak(ctx context.Context, learnerID string, streak int) error {
	return s.update(ctx, learnerID, func(st *store.LearnerState) error {
		return invalid(st.Learner.SetStreak(streak))
	})
}

// SubmitAnswer grades the chosen option and applies the full answer flow
// in one step: record the answer, count the statistic and, when correct,
// award the question's reward and advance the earn_credits mission.
func (s *Service) SubmitAnswer(ctx context.Context, learnerID, questionID string, option int) (AnswerOutcome, error) {
	card, q, err := s.question(questionID)
	if err != nil {
		return AnswerOutcome{}, err
	}
	if option < 0 || option >= len(q.Options) {
		return AnswerOutcome{}, fmt.Errorf("%w: option %d out of range for %s", ErrInvalidInput, option, questionID)
	}

	out := AnswerOutcome{
		Correct:      q.IsCorrect(option),
		CorrectIndex: q.CorrectIndex,
		Explanation:  q.Explanation,
	}
	err = s.update(ctx, learnerID, func(st *store.LearnerState) error {
		out.MissionRewards += s.recordAnswer(st, questionID, card.LessonIndex, out.Correct)
		st.Learner.RecordStat(out.Correct)
		if out.Correct && q.Reward > 0 {
			if err := st.Learner.AddCredits(q.Reward); err != nil {
				return invalid(err)
			}
			out.CreditsEarned = q.Reward
			out.MissionRewards += s.progressMission(st, missions.EarnCredits, q.Reward)
		}
		out.Credits = st.Learner.Credits
		return nil
	})
	if err != nil {
		return AnswerOutcome{}, err
	}
	return out, nil
}

// invalid tags learner model rejections as ErrInvalidInput.
func invalid(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, learner.ErrUnknownLevel) ||
		errors.Is(err, learner.ErrNegativeStreak) ||
		errors.Is(err, learner.ErrInsufficientFunds) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
