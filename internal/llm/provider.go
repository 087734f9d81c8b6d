package llm

import (
	"context"
	"encoding/json"
)

// Provider generates structured content from a prompt.
type Provider interface {
	// Generate runs one completion. When req.Schema is set the returned
	// Content is JSON that has been validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// Name identifies the vendor, e.g. "anthropic".
	Name() string

	// ModelID returns the model the provider sends requests to.
	ModelID() string
}

// Request is a single-turn or multi-turn prompt.
type Request struct {
	System      string
	Messages    []Message
	Schema      *Schema
	MaxTokens   int
	Temperature float64
}

// Message is one conversation turn.
type Message struct {
	Role    Role
	Content string
}

// Role is who sent a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// UserPrompt is shorthand for a request with one user message.
func UserPrompt(system, prompt string) Request {
	return Request{
		System:   system,
		Messages: []Message{{Role: RoleUser, Content: prompt}},
	}
}

// Schema is a JSON Schema the response must satisfy. Name doubles as the
// tool or schema name on providers that need one.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

// Response is a completed generation.
type Response struct {
	Content json.RawMessage
	Usage   Usage
	Model   string

	// StopReason is "end" or "max_tokens".
	StopReason string
}

// Usage counts tokens for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

func usage(in, out int) Usage {
	return Usage{InputTokens: in, OutputTokens: out, TotalTokens: in + out}
}

// resolveModel maps a short alias to a full model id. Unknown names pass
// through unchanged.
func resolveModel(name string, aliases map[string]string) string {
	if id, ok := aliases[name]; ok {
		return id
	}
	return name
}

// finish validates structured content and flags truncation.
func finish(req Request, resp *Response) (*Response, error) {
	if resp.StopReason == "max_tokens" && req.Schema != nil {
		return nil, &ErrMaxTokensExceeded{Content: resp.Content}
	}
	if err := validateResponse(req.Schema, resp.Content); err != nil {
		return nil, err
	}
	return resp, nil
}
