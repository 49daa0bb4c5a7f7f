package clients

import (
	"context"

	"github.com/sleepstars/modelkit/models"
)

const completionsPath = "/completions"

// Complete sends a caller-built completion request verbatim: configured
// defaults are NOT applied, only the model and stream flags are forced.
func (c *Client) Complete(ctx context.Context, req *models.CompletionRequest) (*models.Completion, error) {
	resolved := c.resolveRequest(req, false)
	var out models.Completion
	meta, err := c.postJSON(ctx, completionsPath, resolved, &out)
	if err != nil {
		return nil, err
	}
	out.Metadata = meta
	return &out, nil
}

// CompletePrompt sends a completion for a raw prompt. Each parameter falls
// back to the configured defaults independently; setting only one field
// leaves every other at its default.
func (c *Client) CompletePrompt(ctx context.Context, prompt string, params models.CompletionParams) (*models.Completion, error) {
	resolved := c.resolveCompletion(prompt, params, false)
	var out models.Completion
	meta, err := c.postJSON(ctx, completionsPath, resolved, &out)
	if err != nil {
		return nil, err
	}
	out.Metadata = meta
	return &out, nil
}

// CompleteStream issues a streaming call for a caller-built request (no
// default fallback) and returns the event channel. See completionEvents for
// channel semantics.
func (c *Client) CompleteStream(ctx context.Context, req *models.CompletionRequest) (<-chan CompletionEvent, error) {
	return c.completionEvents(ctx, c.resolveRequest(req, true))
}

// CompletePromptStream issues a streaming call for a raw prompt with
// per-field default fallback.
func (c *Client) CompletePromptStream(ctx context.Context, prompt string, params models.CompletionParams) (<-chan CompletionEvent, error) {
	return c.completionEvents(ctx, c.resolveCompletion(prompt, params, true))
}

// CompleteStreamFunc issues a streaming call and invokes fn synchronously
// for each decoded record, in arrival order. It returns after the terminal
// sentinel, a peer close, cancellation or the first error.
func (c *Client) CompleteStreamFunc(ctx context.Context, req *models.CompletionRequest, fn CompletionHandler) error {
	return c.streamCompletion(ctx, c.resolveRequest(req, true), fn)
}

// CompletePromptStreamFunc is the push-style counterpart of
// CompletePromptStream.
func (c *Client) CompletePromptStreamFunc(ctx context.Context, prompt string, params models.CompletionParams, fn CompletionHandler) error {
	return c.streamCompletion(ctx, c.resolveCompletion(prompt, params, true), fn)
}
