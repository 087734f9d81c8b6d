package authoring

// Config holds generation settings.
type Config struct {
	// Lessons is how many lessons to ask for per topic.
	Lessons     int
	MaxTokens   int
	Temperature float64
}

// MaxLessons caps Config.Lessons.
const MaxLessons = 8

// DefaultConfig returns defaults for topic generation.
func DefaultConfig() Config {
	return Config{
		Lessons:     3,
		MaxTokens:   4096,
		Temperature: 0.4,
	}
}
