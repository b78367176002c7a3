package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mad2moi/telegram-bot/internal/history"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
	MaxTokens int `json:"max_tokens"`
}

func newServer(t *testing.T, status int, body map[string]any, got *capturedRequest) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		if got != nil {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(got))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(server.Close)
	return server
}

func testClient(url string) *LLMClient {
	return NewLLMClient(LLMOptions{
		APIKey:    "test-key",
		BaseURL:   url + "/v1",
		Model:     "test-model",
		MaxTokens: 100,
		Timeout:   5 * time.Second,
	})
}

func TestCompleteSendsPersonaHistoryAndText(t *testing.T) {
	var got capturedRequest
	server := newServer(t, http.StatusOK, map[string]any{
		"choices": []map[string]any{
			{"index": 0, "message": map[string]any{"role": "assistant", "content": "  Salut !  "}},
		},
	}, &got)

	turns := []history.Turn{
		{Role: history.RoleUser, Content: "bonjour"},
		{Role: history.RoleAssistant, Content: "hello"},
	}
	reply, err := testClient(server.URL).Complete(context.Background(), "persona", turns, "ça va ?")
	require.NoError(t, err)
	assert.Equal(t, "Salut !", reply)

	assert.Equal(t, "test-model", got.Model)
	assert.Equal(t, 100, got.MaxTokens)
	require.Len(t, got.Messages, 4)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "persona", got.Messages[0].Content)
	assert.Equal(t, "user", got.Messages[1].Role)
	assert.Equal(t, "assistant", got.Messages[2].Role)
	assert.Equal(t, "ça va ?", got.Messages[3].Content)
}

func TestCompleteEmptyChoices(t *testing.T) {
	server := newServer(t, http.StatusOK, map[string]any{"choices": []map[string]any{}}, nil)

	_, err := testClient(server.URL).Complete(context.Background(), "", nil, "hi")
	assert.ErrorIs(t, err, ErrEmptyReply)
}

func TestCompleteBlankContent(t *testing.T) {
	server := newServer(t, http.StatusOK, map[string]any{
		"choices": []map[string]any{{"message": map[string]any{"role": "assistant", "content": "   "}}},
	}, nil)

	_, err := testClient(server.URL).Complete(context.Background(), "", nil, "hi")
	assert.ErrorIs(t, err, ErrEmptyReply)
}

func TestCompleteHTTPError(t *testing.T) {
	server := newServer(t, http.StatusTooManyRequests, map[string]any{
		"error": map[string]any{"message": "rate limited", "type": "requests"},
	}, nil)

	_, err := testClient(server.URL).Complete(context.Background(), "", nil, "hi")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrEmptyReply)
}

func TestBuildMessagesWithoutPersona(t *testing.T) {
	msgs := buildMessages("", nil, "hi")
	require.Len(t, msgs, 1)
	assert.Equal(t, "user", msgs[0].Role)
}
