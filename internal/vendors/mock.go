package vendors

import (
	"context"

	"github.com/baalimago/hotelagent/internal/models"
)

// Mock is a Completer which echoes the last user message back, used by the
// 'test' chat model.
type Mock struct{}

func (m *Mock) Setup() error {
	return nil
}

func (m *Mock) Complete(ctx context.Context, req models.CompletionRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	chat := models.Chat{Messages: req.Messages}
	uMsg, _, err := chat.LastOfRole("user")
	if err != nil {
		return "", err
	}
	return uMsg.Content, nil
}
