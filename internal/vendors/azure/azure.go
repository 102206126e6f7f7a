package azure

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/debug"
	"github.com/baalimago/hotelagent/internal/models"
	openai "github.com/sashabaranov/go-openai"
)

var Default = Azure{
	APIVersion: DefaultAPIVersion,
}

// Azure completes chats against an Azure OpenAI resource, or against the public
// OpenAI API when no Azure endpoint is configured.
type Azure struct {
	APIVersion string `json:"api_version"`
	// HTTPClient is used for all requests when set, mostly for tests.
	HTTPClient *http.Client `json:"-"`

	client   *openai.Client
	endpoint string
	debug    bool
}

func (a *Azure) Complete(ctx context.Context, req models.CompletionRequest) (string, error) {
	if a.client == nil {
		return "", errors.New("azure completer not set up")
	}
	msgs := make([]openai.ChatCompletionMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		msgs = append(msgs, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}
	creq := openai.ChatCompletionRequest{
		Model:       req.Deployment,
		Messages:    msgs,
		Temperature: float32(req.Temperature),
		MaxTokens:   req.MaxTokens,
	}
	if a.debug {
		ancli.PrintOK(fmt.Sprintf("azure completion request to %v: %v\n", a.endpoint, debug.IndentedJsonFmt(creq)))
	}

	resp, err := a.client.CreateChatCompletion(ctx, creq)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("unexpected status code: %v, body: %v: %w", apiErr.HTTPStatusCode, apiErr.Message, err)
		}
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}
	if a.debug {
		ancli.PrintOK(fmt.Sprintf("azure completion response: %v\n", debug.IndentedJsonFmt(resp)))
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("completion response contained no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
