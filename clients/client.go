// Package clients implements the typed client for the model API: request
// resolution against configured defaults, buffered and streaming dispatch,
// and the event-stream decoder.
package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sleepstars/modelkit/internal/logger"
	"github.com/sleepstars/modelkit/models"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	userAgent      = "modelkit/1.0"
)

// Response metadata headers, read best-effort.
const (
	headerOrganization = "Openai-Organization"
	headerRequestID    = "X-Request-Id"
	headerProcessingMS = "Openai-Processing-Ms"
)

// Client is a typed client for an OpenAI-style language-model API. It is
// safe for concurrent use: nothing is mutated after construction, and each
// call owns its own request, connection and sequence counter.
type Client struct {
	baseURL    string
	httpClient *http.Client
	model      string
	apiKey     string
	keyFile    string
	defaults   models.CompletionParams
	clientID   string
	logger     *logger.Logger
}

// ClientOption mutates the client during construction.
type ClientOption func(*Client)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = strings.TrimSuffix(baseURL, "/")
		}
	}
}

// WithHTTPClient injects a custom HTTP client. Timeouts are the transport's
// responsibility; the client enforces none of its own.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithDefaults sets the default generation parameters merged into prompt
// calls. The value is fixed at construction; concurrent calls read it only.
func WithDefaults(defaults models.CompletionParams) ClientOption {
	return func(c *Client) { c.defaults = defaults }
}

// WithKeyFile overrides the fallback API key file path.
func WithKeyFile(path string) ClientOption {
	return func(c *Client) { c.keyFile = path }
}

// WithLogger replaces the component logger.
func WithLogger(l *logger.Logger) ClientOption {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient creates a client bound to one model. The API key may be empty;
// resolution falls back to the environment and the key file lazily at first
// call.
func NewClient(apiKey, model string, options ...ClientOption) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Minute},
		model:      model,
		apiKey:     apiKey,
		clientID:   uuid.NewString(),
		logger:     logger.GetLogger().WithComponent("client"),
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// Model returns the configured model identifier.
func (c *Client) Model() string { return c.model }

// post issues one JSON POST. It resolves the API key first, sets the bearer
// and identification headers, and converts a non-success status into a
// *TransportError carrying the status code, the response body and the
// serialized request body. On success the caller owns resp.Body.
func (c *Client) post(ctx context.Context, path string, payload interface{}, stream bool) (*http.Response, error) {
	key, err := c.resolveAPIKey()
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+key)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("User-Agent", userAgent)
	httpReq.Header.Set("X-Client-Id", c.clientID)
	if stream {
		httpReq.Header.Set("Accept", "text/event-stream")
	}

	c.logger.Debug("POST %s model=%s stream=%v", path, c.model, stream)
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, &TransportError{
			StatusCode:  resp.StatusCode,
			Body:        string(respBody),
			RequestBody: string(body),
		}
	}
	return resp, nil
}

// postJSON issues a buffered call and decodes the whole response body into
// out. The returned metadata is extracted best-effort from response headers.
func (c *Client) postJSON(ctx context.Context, path string, payload, out interface{}) (models.ResponseMetadata, error) {
	resp, err := c.post(ctx, path, payload, false)
	if err != nil {
		return models.ResponseMetadata{}, err
	}
	defer resp.Body.Close()

	meta := readMetadata(resp.Header)
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return meta, fmt.Errorf("read response: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return meta, &DecodeError{Payload: string(data), Err: err}
	}
	return meta, nil
}

// readMetadata extracts response-level metadata from headers. Absent or
// malformed values leave their field at zero; this never fails.
func readMetadata(h http.Header) models.ResponseMetadata {
	meta := models.ResponseMetadata{
		Organization: h.Get(headerOrganization),
		RequestID:    h.Get(headerRequestID),
	}
	if v := strings.TrimSpace(h.Get(headerProcessingMS)); v != "" {
		if ms, err := strconv.ParseInt(v, 10, 64); err == nil {
			meta.ProcessingMS = ms
		}
	}
	return meta
}

// Chat-capable models follow the gpt- naming convention; the legacy search,
// answer and classification endpoints accept only base models.
func isChatModel(model string) bool {
	return strings.HasPrefix(model, "gpt-")
}

func (c *Client) requireChatModel(operation string) error {
	if !isChatModel(c.model) {
		return &UnsupportedOperationError{Model: c.model, Operation: operation}
	}
	return nil
}

func (c *Client) requireBaseModel(operation string) error {
	if isChatModel(c.model) {
		return &UnsupportedOperationError{Model: c.model, Operation: operation}
	}
	return nil
}
