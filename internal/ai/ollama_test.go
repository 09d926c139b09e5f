package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mockOllama(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case tagsPath:
			w.WriteHeader(http.StatusOK)
		case chatPath:
			var req chatRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "test-model", req.Model)
			assert.Equal(t, "json", req.Format)
			assert.False(t, req.Stream)
			require.Len(t, req.Messages, 1)

			resp := map[string]any{"message": map[string]string{"content": content}}
			json.NewEncoder(w).Encode(resp)
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestClassifyParsesVerdict(t *testing.T) {
	server := mockOllama(t, `{"is_lead": true, "reason": "direct request"}`)
	defer server.Close()

	client := NewOllamaClient(server.URL, "test-model")
	verdict, err := client.Classify(context.Background(), "Need a VA ASAP, anyone have recs?")

	require.NoError(t, err)
	assert.True(t, verdict.IsLead)
	assert.Equal(t, "direct request", verdict.Reason)
}

func TestClassifyStripsMarkdownFences(t *testing.T) {
	server := mockOllama(t, "```json\n{\"is_lead\": false, \"reason\": \"promotion from a VA\"}\n```")
	defer server.Close()

	client := NewOllamaClient(server.URL, "test-model")
	verdict, err := client.Classify(context.Background(), "I am a VA, hire me!")

	require.NoError(t, err)
	assert.False(t, verdict.IsLead)
	assert.Equal(t, "promotion from a VA", verdict.Reason)
}

func TestClassifyErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer server.Close()

	client := NewOllamaClient(server.URL, "test-model")
	_, err := client.Classify(context.Background(), "some post")

	assert.Error(t, err)
}

func TestClassifyServerDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewOllamaClient(server.URL, "test-model")
	_, err := client.Classify(context.Background(), "some post")

	assert.Error(t, err)
}

func TestPing(t *testing.T) {
	server := mockOllama(t, "{}")
	defer server.Close()

	client := NewOllamaClient(server.URL, "test-model")
	assert.NoError(t, client.Ping(context.Background()))

	server.Close()
	assert.Error(t, client.Ping(context.Background()))
}

func TestCleanMarkdownJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"bare json", `{"is_lead": true}`, `{"is_lead": true}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"plain fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "  {\"a\":1}\n", `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, cleanMarkdownJSON(tt.input))
		})
	}
}
