package learner

// Promotion thresholds.
const (
	IntermediateAccuracy = 80.0
	IntermediateAnswered = 3
	AdvancedAccuracy     = 90.0
	AdvancedAnswered     = 6
)

// Promote applies the tier promotion rule and returns the new level and
// whether it changed. At most one step is taken per call.
func Promote(l *Learner) (Level, bool) {
	acc := l.Accuracy()
	switch {
	case acc >= IntermediateAccuracy && l.Level == Beginner && l.TotalAnswered >= IntermediateAnswered:
		l.Level = Intermediate
		return l.Level, true
	case acc >= AdvancedAccuracy && l.Level == Intermediate && l.TotalAnswered >= AdvancedAnswered:
		l.Level = Advanced
		return l.Level, true
	}
	return l.Level, false
}
