package ai

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// systemPrompt anchors every classification call. The oracle is asked
// to use its full knowledge of brands, models and parts worldwide.
const systemPrompt = `You are an expert automotive AI with comprehensive knowledge of ALL car brands, models, and spare parts worldwide.
Your knowledge covers all global car manufacturers, all their models and variants, and all types of automotive spare parts.
You MUST use your FULL knowledge, not a limited list.`

// DeepSeek talks to the DeepSeek chat-completions API through the
// OpenAI-compatible client. The HTTP client timeout is the hard oracle
// timeout: an expired call is a miss, never retried.
type DeepSeek struct {
	client *openai.Client
	model  string
}

func NewDeepSeek(apiKey, baseURL, model string, timeout time.Duration) *DeepSeek {
	conf := openai.DefaultConfig(apiKey)
	conf.BaseURL = baseURL
	conf.HTTPClient = &http.Client{Timeout: timeout}

	return &DeepSeek{
		client: openai.NewClientWithConfig(conf),
		model:  model,
	}
}

func (d *DeepSeek) Classify(ctx context.Context, prompt string, maxTokens int) (string, error) {
	resp, err := d.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: d.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   maxTokens,
		Temperature: 0.1,
	})
	if err != nil {
		slog.Warn("oracle call failed", "err", err)
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("ai: empty choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
