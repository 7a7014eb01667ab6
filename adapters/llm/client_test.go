package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAIClientComplete(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"{\"executive_summary\":\"ok\"}"}}]}`))
	}))
	defer srv.Close()

	client, err := NewOpenAIClient(Config{APIKey: "sk-test", Model: "gpt-4o-mini", BaseURL: srv.URL + "/", Temperature: 0.7})
	require.NoError(t, err)

	out, err := client.Complete(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, `{"executive_summary":"ok"}`, out)
	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Equal(t, "gpt-4o-mini", gotBody["model"])
	assert.EqualValues(t, 1024, gotBody["max_tokens"])
}

func TestOpenAIClientHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client, err := NewOpenAIClient(Config{APIKey: "sk-test", Model: "m", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestNewOpenAIClientValidation(t *testing.T) {
	_, err := NewOpenAIClient(Config{Model: "m"})
	assert.Error(t, err)

	_, err = NewOpenAIClient(Config{APIKey: "k"})
	assert.Error(t, err)
}

func TestNewGeminiClientRequiresKey(t *testing.T) {
	_, err := NewGeminiClient(context.Background(), Config{}, nil)
	assert.Error(t, err)
}
