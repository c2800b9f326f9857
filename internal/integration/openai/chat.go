package openai

import (
	"context"
	"errors"
)

// DefaultChatModel is used when the caller does not pick a model.
const DefaultChatModel = "gpt-4o-mini"

// ChatMessage is one message in a chat completion conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model    string        `json:"model"`
	Messages []ChatMessage `json:"messages"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message ChatMessage `json:"message"`
	} `json:"choices"`
}

// CreateChatCompletion runs one chat completion and returns the assistant
// reply text.
func (c *Client) CreateChatCompletion(ctx context.Context, model string, messages []ChatMessage) (string, error) {
	if model == "" {
		model = DefaultChatModel
	}

	var resp chatCompletionResponse
	err := c.postJSON(ctx, "/chat/completions", chatCompletionRequest{
		Model:    model,
		Messages: messages,
	}, &resp)
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("openai: chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
