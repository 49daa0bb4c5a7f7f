package clients

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sleepstars/modelkit/models"
)

func TestChatCompleteBuffered(t *testing.T) {
	var body map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		json.NewEncoder(w).Encode(&models.ChatCompletion{
			ID:    "chatcmpl-1",
			Model: "gpt-3.5-turbo",
			Choices: []models.ChatChoice{
				{Message: models.ChatMessage{Role: "assistant", Content: "hi there"}, FinishReason: "stop"},
			},
		})
	}))
	defer srv.Close()

	client := NewClient("sk-test", "gpt-3.5-turbo",
		WithBaseURL(srv.URL),
		WithHTTPClient(srv.Client()),
		WithDefaults(models.CompletionParams{MaxTokens: intPtr(50)}))

	messages := []models.ChatMessage{
		{Role: "system", Content: "be brief"},
		{Role: "user", Content: "hello"},
	}
	completion, err := client.ChatComplete(context.Background(), messages)
	assert.NoError(t, err)
	assert.Equal(t, "hi there", completion.Choices[0].Message.Content)

	// Chat calls carry the messages and the forced model only; configured
	// defaults never leak into them.
	assert.Equal(t, "gpt-3.5-turbo", body["model"])
	assert.Len(t, body["messages"], 2)
	assert.NotContains(t, body, "max_tokens")
	assert.NotContains(t, body, "prompt")
}

func TestChatRejectsBaseModel(t *testing.T) {
	transport := &countingTransport{}
	client := NewClient("sk-test", "ada",
		WithHTTPClient(&http.Client{Transport: transport}))

	messages := []models.ChatMessage{{Role: "user", Content: "hello"}}

	_, err := client.ChatComplete(context.Background(), messages)
	var unsupported *UnsupportedOperationError
	assert.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "ada", unsupported.Model)

	_, err = client.ChatCompleteStream(context.Background(), messages)
	assert.ErrorAs(t, err, &unsupported)

	err = client.ChatCompleteStreamFunc(context.Background(), messages,
		func(int, *models.ChatCompletionChunk) error { return nil })
	assert.ErrorAs(t, err, &unsupported)

	assert.Zero(t, transport.calls, "rejection must precede any network call")
}
