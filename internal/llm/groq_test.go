package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meltwatch/meltwatch/internal/common"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:    "valid config",
			config:  Config{APIKey: "test-key"},
			wantErr: false,
		},
		{
			name:    "missing API key",
			config:  Config{APIKey: ""},
			wantErr: true,
		},
		{
			name: "custom settings",
			config: Config{
				APIKey:      "test-key",
				BaseURL:     "https://example.com/v1",
				Temperature: 0.5,
				MaxTokens:   500,
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.config)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.NotNil(t, client)
			}
		})
	}
}

func chatReply(content string) string {
	reply := map[string]any{
		"choices": []map[string]any{
			{"message": map[string]string{"role": "assistant", "content": content}},
		},
	}
	data, _ := json.Marshal(reply)
	return string(data)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)
	return client
}

func TestCompleteSuccess(t *testing.T) {
	var gotBody map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(chatReply(`{"shipping_cost": 7, "items": []}`)))
	})

	content, err := client.Complete(context.Background(), "llama-3.3-70b-versatile", "analyze this")
	require.NoError(t, err)
	assert.JSONEq(t, `{"shipping_cost": 7, "items": []}`, content)

	assert.Equal(t, "llama-3.3-70b-versatile", gotBody["model"])
	format, ok := gotBody["response_format"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "json_object", format["type"])
}

func TestCompleteRateLimit(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{name: "429 maps to rate limit", status: http.StatusTooManyRequests},
		{name: "503 maps to rate limit", status: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "over capacity", tt.status)
			})

			_, err := client.Complete(context.Background(), "m", "p")
			require.Error(t, err)
			assert.ErrorIs(t, err, common.ErrRateLimit)
		})
	}
}

func TestCompleteServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bad request", http.StatusBadRequest)
	})

	_, err := client.Complete(context.Background(), "m", "p")
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrRateLimit)
}

func TestCompleteNoChoices(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices": []}`))
	})

	_, err := client.Complete(context.Background(), "m", "p")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no completion choices")
}

func TestCompleteStripsMarkdownWrapper(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(chatReply("```json\n{\"items\": []}\n```")))
	})

	content, err := client.Complete(context.Background(), "m", "p")
	require.NoError(t, err)
	assert.Equal(t, `{"items": []}`, content)
}

func TestCleanMarkdownWrapper(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "plain json untouched", content: `{"a": 1}`, want: `{"a": 1}`},
		{name: "json fence", content: "```json\n{\"a\": 1}\n```", want: `{"a": 1}`},
		{name: "bare fence", content: "```\n{\"a\": 1}\n```", want: `{"a": 1}`},
		{name: "surrounding whitespace", content: "  {\"a\": 1}\n", want: `{"a": 1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanMarkdownWrapper(tt.content))
		})
	}
}
