// Package llm calls an OpenAI-compatible chat completion API to generate
// commit messages.
package llm

import (
	"context"
	"strings"
	"time"

	"github.com/cmtdev/cmt/internal/prompt"
	"github.com/sashabaranov/go-openai"
)

// DefaultTimeout bounds a single generation request.
const DefaultTimeout = 30 * time.Second

// Options configures a Client.
type Options struct {
	APIKey  string
	APIBase string
	Model   string
	Timeout time.Duration
}

// Client generates commit messages through the chat completion API.
type Client struct {
	api     *openai.Client
	apiKey  string
	model   string
	timeout time.Duration
}

// NewClient creates a client with the given options.
func NewClient(opts Options) *Client {
	clientConfig := openai.DefaultConfig(opts.APIKey)
	if opts.APIBase != "" {
		clientConfig.BaseURL = opts.APIBase
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		api:     openai.NewClientWithConfig(clientConfig),
		apiKey:  opts.APIKey,
		model:   opts.Model,
		timeout: timeout,
	}
}

// GenerateCommitMessage sends one completion request and returns the
// model's text with surrounding whitespace trimmed. No retry is attempted;
// the caller decides whether to regenerate. The output is not validated
// against the requested format.
func (c *Client) GenerateCommitMessage(ctx context.Context, msg prompt.Message) (string, error) {
	if c.apiKey == "" {
		return "", &GenerationError{
			Reason: "API key not set, set OPENAI_API_KEY or run: cmt config set apikey",
		}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: msg.Instructions},
			{Role: openai.ChatMessageRoleUser, Content: msg.Input},
		},
	})
	if err != nil {
		return "", &GenerationError{Reason: "failed to call model", Err: err}
	}

	if len(resp.Choices) == 0 {
		return "", &GenerationError{Reason: "model returned an empty response"}
	}

	message := strings.TrimSpace(resp.Choices[0].Message.Content)
	if message == "" {
		return "", &GenerationError{Reason: "model returned an empty response"}
	}

	return message, nil
}
