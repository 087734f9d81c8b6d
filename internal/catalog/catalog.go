package catalog

import "sort"

// Topic groups lessons under a title.
type Topic struct {
	ID          string
	Title       string
	Description string
	Order       int

	// UnlockDay is the first day (1-based, counted from the learner's start
	// date) on which the topic opens under the static unlock policy.
	UnlockDay int
}

// Catalog is the ordered, read-only set of cards a learner walks through.
type Catalog struct {
	Version      string
	UnlockPolicy string

	topics    []Topic
	cards     []Card
	byID      map[string]int
	topicByID map[string]int
}

// New builds a catalog from topics and cards. Topics are sorted by Order;
// cards keep the order given, which must already be topic, lesson, step.
func New(version, unlockPolicy string, topics []Topic, cards []Card) *Catalog {
	ts := make([]Topic, len(topics))
	copy(ts, topics)
	sort.SliceStable(ts, func(i, j int) bool { return ts[i].Order < ts[j].Order })

	c := &Catalog{
		Version:      version,
		UnlockPolicy: unlockPolicy,
		topics:       ts,
		cards:        make([]Card, len(cards)),
		byID:         make(map[string]int, len(cards)),
		topicByID:    make(map[string]int, len(ts)),
	}
	copy(c.cards, cards)
	for i, card := range c.cards {
		c.byID[card.ID] = i
	}
	for i, t := range c.topics {
		c.topicByID[t.ID] = i
	}
	return c
}

// Len returns the number of cards.
func (c *Catalog) Len() int { return len(c.cards) }

// At returns the card at position i.
func (c *Catalog) At(i int) (Card, bool) {
	if i < 0 || i >= len(c.cards) {
		return Card{}, false
	}
	return c.cards[i], true
}

// Card looks up a card by id.
func (c *Catalog) Card(id string) (Card, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Card{}, false
	}
	return c.cards[i], true
}

// Cards returns a copy of all cards in catalog order.
func (c *Catalog) Cards() []Card {
	out := make([]Card, len(c.cards))
	copy(out, c.cards)
	return out
}

// Topics returns the topics sorted by order.
func (c *Catalog) Topics() []Topic {
	out := make([]Topic, len(c.topics))
	copy(out, c.topics)
	return out
}

// Topic looks up a topic by id.
func (c *Catalog) Topic(id string) (Topic, bool) {
	i, ok := c.topicByID[id]
	if !ok {
		return Topic{}, false
	}
	return c.topics[i], true
}

// NextTopic returns the topic following id in order.
func (c *Catalog) NextTopic(id string) (Topic, bool) {
	i, ok := c.topicByID[id]
	if !ok || i+1 >= len(c.topics) {
		return Topic{}, false
	}
	return c.topics[i+1], true
}

// PreviousTopic returns the topic preceding id in order.
func (c *Catalog) PreviousTopic(id string) (Topic, bool) {
	i, ok := c.topicByID[id]
	if !ok || i == 0 {
		return Topic{}, false
	}
	return c.topics[i-1], true
}

// QuestionCards returns the question cards of a topic in order.
func (c *Catalog) QuestionCards(topicID string) []Card {
	var out []Card
	for _, card := range c.cards {
		if card.TopicID == topicID && card.IsQuestion() {
			out = append(out, card)
		}
	}
	return out
}

// QuestionCount returns the total number of question cards.
func (c *Catalog) QuestionCount() int {
	n := 0
	for _, card := range c.cards {
		if card.IsQuestion() {
			n++
		}
	}
	return n
}

// QuestionForLesson returns the first question card with the given lesson
// index.
func (c *Catalog) QuestionForLesson(lessonIndex int) (Card, bool) {
	for _, card := range c.cards {
		if card.LessonIndex == lessonIndex && card.IsQuestion() {
			return card, true
		}
	}
	return Card{}, false
}

// FirstPending returns the first card of the given difficulty for which
// done returns false.
func (c *Catalog) FirstPending(d Difficulty, done func(id string) bool) (Card, bool) {
	for _, card := range c.cards {
		if card.Difficulty == d && !done(card.ID) {
			return card, true
		}
	}
	return Card{}, false
}
