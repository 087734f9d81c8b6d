// Package authoring drafts catalog topics with an LLM. The result is a
// catalog.TopicFile that can be appended to a YAML catalog and reviewed
// before the server loads it.
package authoring

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/abhisek/lessonloop/internal/catalog"
	"github.com/abhisek/lessonloop/internal/llm"
	"github.com/abhisek/lessonloop/internal/logger"
)

// ErrInvalidLesson is returned when generated lessons fail structural checks.
var ErrInvalidLesson = errors.New("generated lesson is invalid")

// Request describes the topic to draft.
type Request struct {
	// ID is the topic id. Empty derives one from Title.
	ID         string
	Title      string
	Source     string
	Difficulty catalog.Difficulty
	UnlockDay  int
}

// Author generates topics.
type Author struct {
	provider llm.Provider
	cfg      Config
	log      *logger.Logger
}

// New creates an Author.
func New(provider llm.Provider, cfg Config, log *logger.Logger) *Author {
	if cfg.Lessons <= 0 {
		cfg.Lessons = DefaultConfig().Lessons
	}
	cfg.Lessons = min(cfg.Lessons, MaxLessons)
	if log == nil {
		log = logger.Nop()
	}
	return &Author{provider: provider, cfg: cfg, log: log.With("component", "authoring")}
}

type topicOutput struct {
	Description string         `json:"description"`
	Lessons     []lessonOutput `json:"lessons"`
}

type lessonOutput struct {
	Title      string         `json:"title"`
	Difficulty string         `json:"difficulty"`
	Concept    string         `json:"concept"`
	Takeaway   string         `json:"takeaway"`
	Example    string         `json:"example"`
	Question   questionOutput `json:"question"`
}

type questionOutput struct {
	Prompt      string   `json:"prompt"`
	Options     []string `json:"options"`
	Answer      int      `json:"answer"`
	Explanation string   `json:"explanation"`
}

// GenerateTopic drafts one topic.
func (a *Author) GenerateTopic(ctx context.Context, req Request) (catalog.TopicFile, error) {
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return catalog.TopicFile{}, errors.New("topic title is required")
	}
	if req.Difficulty != "" && !req.Difficulty.Valid() {
		return catalog.TopicFile{}, fmt.Errorf("unknown difficulty %q", req.Difficulty)
	}
	if req.ID == "" {
		req.ID = Slug(req.Title)
	}

	ctx = llm.WithPurpose(ctx, "authoring")
	llmReq := llm.UserPrompt(systemPrompt, buildUserMessage(req, a.cfg.Lessons))
	llmReq.Schema = TopicSchema
	llmReq.MaxTokens = a.cfg.MaxTokens
	llmReq.Temperature = a.cfg.Temperature

	resp, err := a.provider.Generate(ctx, llmReq)
	if err != nil {
		return catalog.TopicFile{}, fmt.Errorf("topic generation: %w", err)
	}

	var out topicOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return catalog.TopicFile{}, fmt.Errorf("parse topic response: %w", err)
	}

	topic := toTopicFile(req, out)
	if err := check(topic); err != nil {
		return catalog.TopicFile{}, err
	}
	a.log.Info("topic drafted",
		"topic_id", topic.ID,
		"lessons", len(topic.Lessons),
		"model", resp.Model,
		"tokens", resp.Usage.TotalTokens)
	return topic, nil
}

func toTopicFile(req Request, out topicOutput) catalog.TopicFile {
	t := catalog.TopicFile{
		ID:          req.ID,
		Title:       req.Title,
		Description: strings.TrimSpace(out.Description),
		UnlockDay:   req.UnlockDay,
		Difficulty:  req.Difficulty,
	}
	for _, l := range out.Lessons {
		lf := catalog.LessonFile{
			Title:    strings.TrimSpace(l.Title),
			Concept:  strings.TrimSpace(l.Concept),
			Takeaway: strings.TrimSpace(l.Takeaway),
			Example:  strings.TrimSpace(l.Example),
			Question: catalog.QuestionFile{
				Prompt:      strings.TrimSpace(l.Question.Prompt),
				Options:     l.Question.Options,
				Answer:      l.Question.Answer,
				Explanation: strings.TrimSpace(l.Question.Explanation),
			},
		}
		// A lesson difficulty equal to the topic's is implied.
		if d := catalog.Difficulty(l.Difficulty); d != req.Difficulty {
			lf.Difficulty = d
		}
		t.Lessons = append(t.Lessons, lf)
	}
	return t
}

// check runs the catalog's own validation on the topic plus checks that
// only matter for generated text.
func check(t catalog.TopicFile) error {
	errs := []error{catalog.File{Version: "draft", Topics: []catalog.TopicFile{t}}.Validate()}
	for i, l := range t.Lessons {
		if l.Title == "" {
			errs = append(errs, fmt.Errorf("lesson %d: missing title", i+1))
		}
		seen := make(map[string]bool, len(l.Question.Options))
		for _, o := range l.Question.Options {
			key := strings.ToLower(strings.TrimSpace(o))
			if key == "" {
				errs = append(errs, fmt.Errorf("lesson %d: empty option", i+1))
				continue
			}
			if seen[key] {
				errs = append(errs, fmt.Errorf("lesson %d: duplicate option %q", i+1, o))
			}
			seen[key] = true
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidLesson, err)
	}
	return nil
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slug turns a title into a topic id, e.g. "AI Agents & Workflows" becomes
// "ai-agents-workflows".
func Slug(title string) string {
	return strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(title), "-"), "-")
}

// Append adds topic to f and validates the result.
func Append(f *catalog.File, topic catalog.TopicFile) error {
	next := *f
	next.Topics = append(append([]catalog.TopicFile(nil), f.Topics...), topic)
	if err := next.Validate(); err != nil {
		return err
	}
	*f = next
	return nil
}
