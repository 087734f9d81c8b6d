package authoring

import (
	"fmt"
	"strings"
)

const systemPrompt = `You write short, friendly micro-lessons for adults learning about technology. Each lesson teaches one idea, shows it in a concrete situation and checks understanding with a single multiple-choice question.`

func buildUserMessage(req Request, lessons int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Topic: %s\n", req.Title)
	if req.Difficulty != "" {
		fmt.Fprintf(&b, "Target difficulty: %s\n", req.Difficulty)
	}
	fmt.Fprintf(&b, "Lessons: %d\n", lessons)

	b.WriteString("\nSource material:\n")
	if strings.TrimSpace(req.Source) == "" {
		b.WriteString("None, use general knowledge of the topic.\n")
	} else {
		b.WriteString(strings.TrimSpace(req.Source))
		b.WriteString("\n")
	}

	b.WriteString(`
Instructions:
1. Write exactly the requested number of lessons, ordered from simplest to hardest.
2. Keep each concept to 3-5 sentences of plain language. Avoid jargon unless you define it.
3. The example is a short story or scenario, not a restatement of the concept.
4. Each question has 2 to 4 options and exactly one correct option. "answer" is the zero-based index of that option.
5. Wrong options must be plausible. Do not use "all of the above" or "none of the above".
6. Stay within the source material when it is given.`)

	return b.String()
}
