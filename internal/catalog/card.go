package catalog

// Kind identifies which payload a card carries.
type Kind string

const (
	KindConcept  Kind = "concept"
	KindExample  Kind = "example"
	KindQuestion Kind = "question"
)

// Difficulty is the tier a card is written for.
type Difficulty string

const (
	Beginner     Difficulty = "beginner"
	Intermediate Difficulty = "intermediate"
	Advanced     Difficulty = "advanced"
)

// Valid reports whether d is one of the known difficulties.
func (d Difficulty) Valid() bool {
	switch d {
	case Beginner, Intermediate, Advanced:
		return true
	}
	return false
}

// Step positions within a lesson.
const (
	StepConcept  = 1
	StepExample  = 2
	StepQuestion = 3
)

// DefaultReward is the credit reward for a question that does not set one.
const DefaultReward = 10

// Card is one immutable unit of learning content.
type Card struct {
	ID          string
	TopicID     string
	TopicLabel  string
	Difficulty  Difficulty
	LessonIndex int
	Step        int
	Payload     Payload
}

// Kind returns the kind of the card's payload.
func (c Card) Kind() Kind {
	if c.Payload == nil {
		return ""
	}
	return c.Payload.Kind()
}

// IsQuestion reports whether the card is a question card.
func (c Card) IsQuestion() bool {
	_, ok := c.Payload.(Question)
	return ok
}

// Question returns the question payload, if the card carries one.
func (c Card) Question() (Question, bool) {
	q, ok := c.Payload.(Question)
	return q, ok
}

// Payload is the kind-specific body of a card. It is implemented only by
// Concept, Example and Question.
type Payload interface {
	Kind() Kind
	sealed()
}

// Concept introduces an idea.
type Concept struct {
	Title    string
	Text     string
	Takeaway string
}

func (Concept) Kind() Kind { return KindConcept }
func (Concept) sealed()    {}

// Example illustrates the concept of the same lesson.
type Example struct {
	Title     string
	Narrative string
}

func (Example) Kind() Kind { return KindExample }
func (Example) sealed()    {}

// Question is a multiple-choice check that closes a lesson.
type Question struct {
	Prompt       string
	Options      []string
	CorrectIndex int
	Explanation  string
	Reward       int
}

func (Question) Kind() Kind { return KindQuestion }
func (Question) sealed()    {}

// IsCorrect reports whether option is the correct choice.
func (q Question) IsCorrect(option int) bool {
	return option == q.CorrectIndex
}
