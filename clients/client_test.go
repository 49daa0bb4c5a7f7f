package clients

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sleepstars/modelkit/models"
)

// countingTransport fails every request and counts attempts; used to prove
// that fast-path failures never reach the network.
type countingTransport struct {
	calls int
}

func (t *countingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	t.calls++
	return nil, assert.AnError
}

func TestAuthenticationMissingBeforeNetwork(t *testing.T) {
	t.Setenv(apiKeyEnv, "")
	transport := &countingTransport{}

	client := NewClient("", "text-davinci-003",
		WithHTTPClient(&http.Client{Transport: transport}),
		WithKeyFile(filepath.Join(t.TempDir(), "missing")))

	_, err := client.CompletePrompt(context.Background(), "hi", models.CompletionParams{})
	assert.ErrorIs(t, err, ErrAuthenticationMissing)
	assert.Zero(t, transport.calls, "no transport call may happen without a key")

	_, err = client.CompleteStream(context.Background(), &models.CompletionRequest{Prompt: "hi"})
	assert.ErrorIs(t, err, ErrAuthenticationMissing)
	assert.Zero(t, transport.calls)
}

func TestAPIKeyPrecedence(t *testing.T) {
	t.Setenv(apiKeyEnv, "sk-env")

	keyFile := filepath.Join(t.TempDir(), "api_key")
	assert.NoError(t, os.WriteFile(keyFile, []byte("sk-file\n"), 0600))

	// Explicit key wins over everything.
	client := NewClient("sk-explicit", "ada", WithKeyFile(keyFile))
	key, err := client.resolveAPIKey()
	assert.NoError(t, err)
	assert.Equal(t, "sk-explicit", key)

	// Environment beats the key file.
	client = NewClient("", "ada", WithKeyFile(keyFile))
	key, err = client.resolveAPIKey()
	assert.NoError(t, err)
	assert.Equal(t, "sk-env", key)

	// Key file is the last fallback; surrounding whitespace is trimmed.
	t.Setenv(apiKeyEnv, "")
	key, err = client.resolveAPIKey()
	assert.NoError(t, err)
	assert.Equal(t, "sk-file", key)
}

func TestRequestHeaders(t *testing.T) {
	var gotHeaders http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		json.NewEncoder(w).Encode(&models.Completion{ID: "cmpl-1"})
	}))
	defer srv.Close()

	client := NewClient("sk-test", "ada",
		WithBaseURL(srv.URL),
		WithHTTPClient(srv.Client()))

	_, err := client.CompletePrompt(context.Background(), "hi", models.CompletionParams{})
	assert.NoError(t, err)
	assert.Equal(t, "Bearer sk-test", gotHeaders.Get("Authorization"))
	assert.Equal(t, "application/json", gotHeaders.Get("Content-Type"))
	assert.Equal(t, userAgent, gotHeaders.Get("User-Agent"))
	assert.NotEmpty(t, gotHeaders.Get("X-Client-Id"))
}

func TestAcceptHeaderOnStreamingCalls(t *testing.T) {
	var accept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "text/event-stream")
		w.Write([]byte("data: [DONE]\n"))
	}))
	defer srv.Close()

	client := NewClient("sk-test", "ada",
		WithBaseURL(srv.URL),
		WithHTTPClient(srv.Client()))

	err := client.CompleteStreamFunc(context.Background(), &models.CompletionRequest{Prompt: "x"},
		func(int, *models.Completion) error { return nil })
	assert.NoError(t, err)
	assert.Equal(t, "text/event-stream", accept)
}

func TestRequestBodyOmitsAbsentOptionals(t *testing.T) {
	var body map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		json.NewEncoder(w).Encode(&models.Completion{ID: "cmpl-1"})
	}))
	defer srv.Close()

	client := NewClient("sk-test", "ada",
		WithBaseURL(srv.URL),
		WithHTTPClient(srv.Client()))

	// Explicit zero temperature travels; every absent optional is omitted
	// rather than sent as null.
	_, err := client.CompletePrompt(context.Background(), "hi",
		models.CompletionParams{Temperature: floatPtr(0)})
	assert.NoError(t, err)

	assert.Equal(t, "ada", body["model"])
	assert.Equal(t, "hi", body["prompt"])
	assert.Contains(t, body, "temperature")
	assert.EqualValues(t, 0, body["temperature"])
	assert.NotContains(t, body, "max_tokens")
	assert.NotContains(t, body, "top_p")
	assert.NotContains(t, body, "stop")
	assert.NotContains(t, body, "best_of")
	assert.NotContains(t, body, "stream")
}

func TestTransportErrorOnBufferedCall(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid prompt"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	client := NewClient("sk-test", "ada",
		WithBaseURL(srv.URL),
		WithHTTPClient(srv.Client()))

	_, err := client.CompletePrompt(context.Background(), "hi", models.CompletionParams{})
	var transportErr *TransportError
	assert.ErrorAs(t, err, &transportErr)
	assert.Equal(t, http.StatusBadRequest, transportErr.StatusCode)
	assert.Contains(t, transportErr.Body, "invalid prompt")
}

func TestBufferedMetadataAttached(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Openai-Organization", "org-abc")
		w.Header().Set("X-Request-Id", "req-9")
		w.Header().Set("Openai-Processing-Ms", "120")
		json.NewEncoder(w).Encode(&models.Completion{ID: "cmpl-1"})
	}))
	defer srv.Close()

	client := NewClient("sk-test", "ada",
		WithBaseURL(srv.URL),
		WithHTTPClient(srv.Client()))

	completion, err := client.CompletePrompt(context.Background(), "hi", models.CompletionParams{})
	assert.NoError(t, err)
	assert.Equal(t, "org-abc", completion.Metadata.Organization)
	assert.Equal(t, "req-9", completion.Metadata.RequestID)
	assert.EqualValues(t, 120, completion.Metadata.ProcessingMS)
}

func TestBufferedDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json at all"))
	}))
	defer srv.Close()

	client := NewClient("sk-test", "ada",
		WithBaseURL(srv.URL),
		WithHTTPClient(srv.Client()))

	_, err := client.CompletePrompt(context.Background(), "hi", models.CompletionParams{})
	var decodeErr *DecodeError
	assert.ErrorAs(t, err, &decodeErr)
}
