package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultCatalog []byte

// File is the on-disk YAML layout of a catalog.
type File struct {
	Version      string      `yaml:"version"`
	UnlockPolicy string      `yaml:"unlock_policy,omitempty"`
	Topics       []TopicFile `yaml:"topics"`
}

// TopicFile describes one topic and its lessons.
type TopicFile struct {
	ID          string       `yaml:"id"`
	Title       string       `yaml:"title"`
	Description string       `yaml:"description,omitempty"`
	UnlockDay   int          `yaml:"unlock_day,omitempty"`
	Difficulty  Difficulty   `yaml:"difficulty,omitempty"`
	Lessons     []LessonFile `yaml:"lessons"`
}

// LessonFile is a concept, example and question triplet.
type LessonFile struct {
	Title      string       `yaml:"title"`
	Difficulty Difficulty   `yaml:"difficulty,omitempty"`
	Concept    string       `yaml:"concept"`
	Takeaway   string       `yaml:"takeaway,omitempty"`
	Example    string       `yaml:"example"`
	Question   QuestionFile `yaml:"question"`
}

// QuestionFile is the question block of a lesson.
type QuestionFile struct {
	Prompt      string   `yaml:"prompt"`
	Options     []string `yaml:"options"`
	Answer      int      `yaml:"answer"`
	Explanation string   `yaml:"explanation,omitempty"`
	Reward      int      `yaml:"reward,omitempty"`
}

// Default returns the catalog embedded in the binary.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// LoadFile reads a catalog from a YAML file. An empty path loads the
// embedded default.
func LoadFile(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// ReadFile decodes a catalog file without building it. An empty path
// reads the embedded default.
func ReadFile(path string) (File, error) {
	data := defaultCatalog
	if path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return File{}, fmt.Errorf("read catalog: %w", err)
		}
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("decode catalog: %w", err)
	}
	return f, nil
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return f.Build()
}

// Marshal encodes a catalog file as YAML.
func (f File) Marshal() ([]byte, error) {
	return yaml.Marshal(f)
}

// Validate checks the file for structural problems and reports all of them.
func (f File) Validate() error {
	var errs []error
	if len(f.Topics) == 0 {
		errs = append(errs, errors.New("catalog has no topics"))
	}
	seen := make(map[string]bool)
	for ti, t := range f.Topics {
		where := fmt.Sprintf("topic %d", ti+1)
		if t.ID == "" {
			errs = append(errs, fmt.Errorf("%s: missing id", where))
		} else {
			where = fmt.Sprintf("topic %q", t.ID)
			if seen[t.ID] {
				errs = append(errs, fmt.Errorf("%s: duplicate id", where))
			}
			seen[t.ID] = true
		}
		if strings.TrimSpace(t.Title) == "" {
			errs = append(errs, fmt.Errorf("%s: missing title", where))
		}
		if t.UnlockDay < 0 {
			errs = append(errs, fmt.Errorf("%s: unlock_day must be >= 1", where))
		}
		if t.Difficulty != "" && !t.Difficulty.Valid() {
			errs = append(errs, fmt.Errorf("%s: unknown difficulty %q", where, t.Difficulty))
		}
		if len(t.Lessons) == 0 {
			errs = append(errs, fmt.Errorf("%s: no lessons", where))
		}
		for li, l := range t.Lessons {
			lw := fmt.Sprintf("%s lesson %d", where, li+1)
			if l.Difficulty != "" && !l.Difficulty.Valid() {
				errs = append(errs, fmt.Errorf("%s: unknown difficulty %q", lw, l.Difficulty))
			}
			if strings.TrimSpace(l.Concept) == "" {
				errs = append(errs, fmt.Errorf("%s: missing concept", lw))
			}
			if strings.TrimSpace(l.Example) == "" {
				errs = append(errs, fmt.Errorf("%s: missing example", lw))
			}
			errs = append(errs, l.Question.validate(lw)...)
		}
	}
	return errors.Join(errs...)
}

func (q QuestionFile) validate(where string) []error {
	var errs []error
	if strings.TrimSpace(q.Prompt) == "" {
		errs = append(errs, fmt.Errorf("%s: missing question prompt", where))
	}
	if len(q.Options) < 2 || len(q.Options) > 4 {
		errs = append(errs, fmt.Errorf("%s: question needs 2-4 options, has %d", where, len(q.Options)))
	}
	if q.Answer < 0 || q.Answer >= len(q.Options) {
		errs = append(errs, fmt.Errorf("%s: answer index %d out of range", where, q.Answer))
	}
	if q.Reward < 0 {
		errs = append(errs, fmt.Errorf("%s: negative reward", where))
	}
	return errs
}

// Build validates the file and flattens it into a Catalog. Lesson indexes
// are assigned globally in file order, starting at 1.
func (f File) Build() (*Catalog, error) {
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}

	var (
		topics []Topic
		cards  []Card
		lesson int
	)
	for ti, tf := range f.Topics {
		unlockDay := tf.UnlockDay
		if unlockDay == 0 {
			unlockDay = 1
		}
		topics = append(topics, Topic{
			ID:          tf.ID,
			Title:       tf.Title,
			Description: tf.Description,
			Order:       ti + 1,
			UnlockDay:   unlockDay,
		})

		for li, lf := range tf.Lessons {
			lesson++
			diff := lf.Difficulty
			if diff == "" {
				diff = tf.Difficulty
			}
			if diff == "" {
				diff = Beginner
			}
			reward := lf.Question.Reward
			if reward == 0 {
				reward = DefaultReward
			}
			base := Card{
				TopicID:     tf.ID,
				TopicLabel:  tf.Title,
				Difficulty:  diff,
				LessonIndex: lesson,
			}
			prefix := fmt.Sprintf("%s-%02d", tf.ID, li+1)

			concept := base
			concept.ID = prefix + "-concept"
			concept.Step = StepConcept
			concept.Payload = Concept{Title: lf.Title, Text: strings.TrimSpace(lf.Concept), Takeaway: lf.Takeaway}

			example := base
			example.ID = prefix + "-example"
			example.Step = StepExample
			example.Payload = Example{Title: lf.Title, Narrative: strings.TrimSpace(lf.Example)}

			question := base
			question.ID = prefix + "-question"
			question.Step = StepQuestion
			question.Payload = Question{
				Prompt:       lf.Question.Prompt,
				Options:      lf.Question.Options,
				CorrectIndex: lf.Question.Answer,
				Explanation:  lf.Question.Explanation,
				Reward:       reward,
			}

			cards = append(cards, concept, example, question)
		}
	}

	return New(f.Version, f.UnlockPolicy, topics, cards), nil
}
