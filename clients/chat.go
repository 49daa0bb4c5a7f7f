package clients

import (
	"context"

	"github.com/sleepstars/modelkit/models"
)

const chatCompletionsPath = "/chat/completions"

// ChatComplete sends a multi-turn conversation. Chat calls take no parameter
// fallback: only the messages travel, with model and stream forced. The
// configured model must be chat-capable.
func (c *Client) ChatComplete(ctx context.Context, messages []models.ChatMessage) (*models.ChatCompletion, error) {
	if err := c.requireChatModel("chat completion"); err != nil {
		return nil, err
	}
	resolved := c.resolveChat(messages, false)
	var out models.ChatCompletion
	meta, err := c.postJSON(ctx, chatCompletionsPath, resolved, &out)
	if err != nil {
		return nil, err
	}
	out.Metadata = meta
	return &out, nil
}

// ChatCompleteStream issues a streaming chat call and returns the event
// channel. See chatEvents for channel semantics.
func (c *Client) ChatCompleteStream(ctx context.Context, messages []models.ChatMessage) (<-chan ChatCompletionEvent, error) {
	if err := c.requireChatModel("streaming chat completion"); err != nil {
		return nil, err
	}
	return c.chatEvents(ctx, c.resolveChat(messages, true))
}

// ChatCompleteStreamFunc issues a streaming chat call and invokes fn
// synchronously for each decoded chunk, in arrival order.
func (c *Client) ChatCompleteStreamFunc(ctx context.Context, messages []models.ChatMessage, fn ChatChunkHandler) error {
	if err := c.requireChatModel("streaming chat completion"); err != nil {
		return err
	}
	return c.streamChat(ctx, c.resolveChat(messages, true), fn)
}
