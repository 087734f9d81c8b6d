// Package catalogtest builds small catalogs for tests.
package catalogtest

import (
	"fmt"
	"testing"

	"github.com/abhisek/lessonloop/internal/catalog"
)

// Topic returns a topic with one lesson per difficulty given. Every
// question has two options and the first one is correct.
func Topic(id string, unlockDay int, diffs ...catalog.Difficulty) catalog.TopicFile {
	t := catalog.TopicFile{
		ID:        id,
		Title:     "Topic " + id,
		UnlockDay: unlockDay,
	}
	for i, d := range diffs {
		t.Lessons = append(t.Lessons, catalog.LessonFile{
			Title:      fmt.Sprintf("%s lesson %d", id, i+1),
			Difficulty: d,
			Concept:    "concept",
			Example:    "example",
			Question: catalog.QuestionFile{
				Prompt:  "question?",
				Options: []string{"right", "wrong"},
				Answer:  0,
			},
		})
	}
	return t
}

// New builds a catalog from topics and fails the test on error.
func New(t testing.TB, policy string, topics ...catalog.TopicFile) *catalog.Catalog {
	t.Helper()
	f := catalog.File{Version: "test", UnlockPolicy: policy, Topics: topics}
	c, err := f.Build()
	if err != nil {
		t.Fatalf("build catalog: %v", err)
	}
	return c
}

// QuestionID returns the id of lesson n (1-based) of a topic's question card.
func QuestionID(topicID string, n int) string {
	return fmt.Sprintf("%s-%02d-question", topicID, n)
}
