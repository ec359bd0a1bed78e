package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmtdev/cmt/internal/prompt"
	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiStub struct {
	t        *testing.T
	server   *httptest.Server
	requests int
	lastReq  openai.ChatCompletionRequest
}

// newAPIStub serves an OpenAI-compatible chat completion endpoint that
// returns content for every request.
func newAPIStub(t *testing.T, content string, status int) *apiStub {
	t.Helper()

	stub := &apiStub{t: t}
	stub.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		stub.requests++

		require.Equal(t, "/v1/chat/completions", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&stub.lastReq))

		w.Header().Set("Content-Type", "application/json")
		if status != http.StatusOK {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"error":{"message":"rate limit exceeded","type":"rate_limit_error"}}`))
			return
		}

		resp := openai.ChatCompletionResponse{
			ID:     "chatcmpl-test",
			Object: "chat.completion",
			Model:  stub.lastReq.Model,
		}
		if content != "" {
			resp.Choices = []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{
					Role:    openai.ChatMessageRoleAssistant,
					Content: content,
				}},
			}
		}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	t.Cleanup(stub.server.Close)
	return stub
}

func (s *apiStub) newClient() *Client {
	return NewClient(Options{
		APIKey:  "test-key",
		APIBase: s.server.URL + "/v1",
		Model:   "gpt-4o-mini",
	})
}

func testMessage() prompt.Message {
	return prompt.Message{
		Instructions: "Write a commit message.",
		Input:        "Git Diff:\n+print('hi')\n\nBranch: feature/x",
	}
}

func TestGenerateCommitMessage_TrimsResponse(t *testing.T) {
	stub := newAPIStub(t, "  feat: add greeting print - feature/x \n", http.StatusOK)

	message, err := stub.newClient().GenerateCommitMessage(context.Background(), testMessage())

	require.NoError(t, err)
	assert.Equal(t, "feat: add greeting print - feature/x", message)
	assert.Equal(t, 1, stub.requests)
}

func TestGenerateCommitMessage_SendsInstructionsAndInput(t *testing.T) {
	stub := newAPIStub(t, "feat: x - main", http.StatusOK)
	msg := testMessage()

	_, err := stub.newClient().GenerateCommitMessage(context.Background(), msg)
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o-mini", stub.lastReq.Model)
	require.Len(t, stub.lastReq.Messages, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, stub.lastReq.Messages[0].Role)
	assert.Equal(t, msg.Instructions, stub.lastReq.Messages[0].Content)
	assert.Equal(t, openai.ChatMessageRoleUser, stub.lastReq.Messages[1].Role)
	assert.Equal(t, msg.Input, stub.lastReq.Messages[1].Content)
}

func TestGenerateCommitMessage_MissingAPIKey(t *testing.T) {
	stub := newAPIStub(t, "unused", http.StatusOK)
	client := NewClient(Options{APIBase: stub.server.URL + "/v1", Model: "gpt-4o-mini"})

	message, err := client.GenerateCommitMessage(context.Background(), testMessage())

	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Contains(t, genErr.Error(), "API key not set")
	assert.Empty(t, message)
	// The credential check must not cost a network round trip.
	assert.Equal(t, 0, stub.requests)
}

func TestGenerateCommitMessage_ServiceError(t *testing.T) {
	stub := newAPIStub(t, "", http.StatusTooManyRequests)

	_, err := stub.newClient().GenerateCommitMessage(context.Background(), testMessage())

	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Contains(t, genErr.Error(), "failed to call model")

	var apiErr *openai.APIError
	assert.ErrorAs(t, err, &apiErr)
}

func TestGenerateCommitMessage_EmptyResponse(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{name: "no choices", content: ""},
		{name: "blank content", content: "   \n  "},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stub := newAPIStub(t, tc.content, http.StatusOK)

			_, err := stub.newClient().GenerateCommitMessage(context.Background(), testMessage())

			var genErr *GenerationError
			require.ErrorAs(t, err, &genErr)
			assert.Contains(t, genErr.Error(), "empty response")
		})
	}
}

func TestGenerationError_Unwrap(t *testing.T) {
	inner := assert.AnError
	err := &GenerationError{Reason: "failed to call model", Err: inner}

	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "failed to call model")
}
