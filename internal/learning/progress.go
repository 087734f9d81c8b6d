package learning

import (
	"context"

	"github.com/abhisek/lessonloop/internal/learner"
	"github.com/abhisek/lessonloop/internal/missions"
	"github.com/abhisek/lessonloop/internal/store"
)

// CurrentCard returns the card to show: the review card while a review
// session runs, otherwise the catalog card under the cursor after the
// difficulty gate. It returns nil at the end of the catalog.
func (s *Service) CurrentCard(ctx context.Context, learnerID string) (*CardView, error) {
	var out *CardView
	err := s.view(ctx, learnerID, func(st *store.LearnerState) error {
		out = s.current(st)
		return nil
	})
	return out, err
}

func (s *Service) current(st *store.LearnerState) *CardView {
	if st.Review.Active {
		card, ok := st.Review.Current(s.catalog)
		if !ok {
			return nil
		}
		v := newCardView(card)
		v.InReview = true
		v.ReviewRemaining = st.Review.Remaining()
		return v
	}
	card, ok := st.Progress.Current(s.catalog, st.Learner)
	if !ok {
		return nil
	}
	return newCardView(card)
}

// AdvanceToNextCard moves past the current card. During review only the
// review cursor moves. Otherwise the current card is completed, the
// catalog cursor moves forward by one, and the tier promotion rule runs.
// At the end of the catalog the call is a no-op apart from promotion.
func (s *Service) AdvanceToNextCard(ctx context.Context, learnerID string) (AdvanceResult, error) {
	var res AdvanceResult
	err := s.update(ctx, learnerID, func(st *store.LearnerState) error {
		if st.Review.Active {
			st.Review.Advance()
			res.Review = true
			res.ReviewFinished = !st.Review.Active
			if res.ReviewFinished {
				s.log.Info("review finished", "learner_id", learnerID)
			}
			res.Next = s.current(st)
			res.EndOfCatalog = res.ReviewFinished && res.Next == nil
			return nil
		}

		if card, ok := st.Progress.Current(s.catalog, st.Learner); ok {
			if st.Progress.Complete(card.ID) && card.IsQuestion() {
				s.lessonCompleted(st, card.TopicID, &res)
			}
			st.Progress.Advance(s.catalog.Len())
		}

		if level, promoted := learner.Promote(&st.Learner); promoted {
			res.PromotedTo = level
			s.log.Info("learner promoted", "learner_id", learnerID, "level", string(level))
		}

		res.Next = s.current(st)
		res.EndOfCatalog = res.Next == nil
		return nil
	})
	return res, err
}

// lessonCompleted runs the side effects of a newly completed question card.
func (s *Service) lessonCompleted(st *store.LearnerState, topicID string, res *AdvanceResult) {
	now := s.now()
	if topic, at, ok := s.gate.LessonCompleted(s.catalog, topicID, st.Progress.IsCompleted, st.Unlocks, now); ok {
		res.Unlocked = &TopicUnlock{TopicID: topic.ID, Title: topic.Title, UnlocksAt: at}
		s.log.Info("topic unlock scheduled",
			"learner_id", st.Learner.ID, "topic_id", topic.ID, "unlocks_at", at)
	}
	res.MissionRewards += s.progressMission(st, missions.CompleteLessons, 1)
	if st.Learner.MarkActive(s.today()) {
		res.MissionRewards += s.progressMission(st, missions.MaintainStreak, 1)
	}
}
