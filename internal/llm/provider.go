// Package llm abstracts the language model backends used to write story
// passages. Every backend returns JSON that has been checked against the
// request schema.
package llm

import (
	"context"
	"encoding/json"
)

// Provider generates structured content from a prompt.
type Provider interface {
	// Generate sends req to the model. When req.Schema is set the returned
	// Content is JSON that validates against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model the provider is configured for.
	ModelID() string
}

// Request is a single-turn prompt.
type Request struct {
	System      string
	Messages    []Message
	Schema      *Schema
	MaxTokens   int
	Temperature float64 // 0 leaves the backend default
}

// Message is one entry of the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role identifies the author of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema the model output must satisfy.
type Schema struct {
	Name        string // kebab-case, e.g. "story-passages"
	Description string
	Definition  map[string]any
}

// Stop reasons normalized across backends.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
)

// Response is the model output.
type Response struct {
	Content    json.RawMessage
	Usage      Usage
	Model      string
	StopReason string
}

// Usage reports token consumption for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// UserPrompt builds the common single user message request.
func UserPrompt(system, prompt string, schema *Schema) Request {
	return Request{
		System:   system,
		Messages: []Message{{Role: RoleUser, Content: prompt}},
		Schema:   schema,
	}
}
