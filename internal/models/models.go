package models

import (
	"context"
	"fmt"
)

// Completer sends a single, non-streamed completion request to a language model
// and returns the generated text.
type Completer interface {
	Setup() error
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

type CompletionRequest struct {
	// Deployment is the model, or the Azure deployment name, which should answer.
	Deployment  string    `json:"deployment"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

type Chat struct {
	ID       string    `json:"id"`
	Messages []Message `json:"messages"`
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// NewChat with a system prompt followed by a single user message.
func NewChat(id, system, user string) Chat {
	return Chat{
		ID: id,
		Messages: []Message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	}
}

func (c *Chat) LastOfRole(role string) (Message, int, error) {
	for i := len(c.Messages) - 1; i >= 0; i-- {
		msg := c.Messages[i]
		if msg.Role == role {
			return msg, i, nil
		}
	}
	return Message{}, -1, fmt.Errorf("failed to find any %v message", role)
}
