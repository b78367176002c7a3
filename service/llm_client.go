// Package service holds the clients of the external APIs the bot calls.
package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mad2moi/telegram-bot/internal/history"
	openai "github.com/sashabaranov/go-openai"
)

// ErrEmptyReply is returned when the model answers with no usable text.
var ErrEmptyReply = errors.New("llm: empty reply")

// LLMOptions configures the chat completion calls.
type LLMOptions struct {
	APIKey      string
	BaseURL     string // empty means the OpenAI default
	Model       string
	MaxTokens   int
	Temperature float32
	Timeout     time.Duration
}

// LLMClient calls an OpenAI-compatible Chat Completions API.
type LLMClient struct {
	client *openai.Client
	opts   LLMOptions
}

// NewLLMClient creates a client from opts.
func NewLLMClient(opts LLMOptions) *LLMClient {
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.Model == "" {
		opts.Model = openai.GPT4oMini
	}

	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	}
	cfg.HTTPClient = &http.Client{Timeout: opts.Timeout}

	return &LLMClient{
		client: openai.NewClientWithConfig(cfg),
		opts:   opts,
	}
}

// Complete sends the persona, the previous turns and the new user text, and
// returns the assistant's answer.
func (c *LLMClient) Complete(ctx context.Context, persona string, turns []history.Turn, userText string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.opts.Model,
		Messages:    buildMessages(persona, turns, userText),
		MaxTokens:   c.opts.MaxTokens,
		Temperature: c.opts.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyReply
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", ErrEmptyReply
	}
	return content, nil
}

func buildMessages(persona string, turns []history.Turn, userText string) []openai.ChatCompletionMessage {
	msgs := make([]openai.ChatCompletionMessage, 0, len(turns)+2)
	if persona != "" {
		msgs = append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: persona})
	}
	for _, t := range turns {
		role := openai.ChatMessageRoleUser
		if t.Role == history.RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		msgs = append(msgs, openai.ChatCompletionMessage{Role: role, Content: t.Content})
	}
	return append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: userText})
}
