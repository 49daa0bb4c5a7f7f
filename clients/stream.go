package clients

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/sleepstars/modelkit/models"
)

// Event-stream framing: each event is one line, optionally prefixed with
// "data: "; blank lines are separators; the literal [DONE] token ends the
// stream.
const (
	eventDataPrefix = "data: "
	doneSentinel    = "[DONE]"
)

// CompletionEvent is one decoded unit of a streaming completion call. Err is
// set on the final event when the stream aborted.
type CompletionEvent struct {
	Index      int
	Completion *models.Completion
	Err        error
}

// ChatCompletionEvent is one decoded unit of a streaming chat call.
type ChatCompletionEvent struct {
	Index int
	Chunk *models.ChatCompletionChunk
	Err   error
}

// CompletionHandler receives one streamed record together with its 1-based
// sequence index. Returning an error aborts the stream.
type CompletionHandler func(index int, completion *models.Completion) error

// ChatChunkHandler receives one streamed chat chunk. Returning an error
// aborts the stream.
type ChatChunkHandler func(index int, chunk *models.ChatCompletionChunk) error

// streamFrames drives the decode loop over an event-stream body: one line
// per read, "data: " prefix stripped, blank separator lines discarded, the
// [DONE] sentinel ending the stream. handle is invoked once per payload
// frame with the next 1-based sequence index; indices never repeat and blank
// lines do not consume one. A peer close without a sentinel is treated as a
// normal end, matching the server's observed behavior for truncated
// responses. Cancellation at any read propagates the context error.
func (c *Client) streamFrames(ctx context.Context, body io.ReadCloser, handle func(index int, payload []byte) error) error {
	defer body.Close()

	index := 0
	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := strings.TrimPrefix(scanner.Text(), eventDataPrefix)
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == doneSentinel {
			return nil
		}
		index++
		if err := handle(index, []byte(line)); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("read stream: %w", err)
	}
	c.logger.Debug("stream closed by peer after %d records", index)
	return nil
}

// streamCompletion runs the push-style loop for a resolved completion
// request: each payload frame is decoded, indexed, annotated with response
// metadata and handed to fn synchronously.
func (c *Client) streamCompletion(ctx context.Context, req *models.CompletionRequest, fn CompletionHandler) error {
	resp, err := c.post(ctx, completionsPath, req, true)
	if err != nil {
		return err
	}
	meta := readMetadata(resp.Header)
	return c.streamFrames(ctx, resp.Body, func(index int, payload []byte) error {
		var record models.Completion
		if err := json.Unmarshal(payload, &record); err != nil {
			return &DecodeError{Payload: string(payload), Err: err}
		}
		record.SequenceIndex = index
		record.Metadata = meta
		return fn(index, &record)
	})
}

// completionEvents runs the pull-style loop: a dedicated reader goroutine
// feeds an event channel in strict arrival order. The channel closes after
// the sentinel, a peer close, cancellation or the first error (delivered as
// the final event).
func (c *Client) completionEvents(ctx context.Context, req *models.CompletionRequest) (<-chan CompletionEvent, error) {
	resp, err := c.post(ctx, completionsPath, req, true)
	if err != nil {
		return nil, err
	}
	meta := readMetadata(resp.Header)

	events := make(chan CompletionEvent)
	go func() {
		defer close(events)
		err := c.streamFrames(ctx, resp.Body, func(index int, payload []byte) error {
			var record models.Completion
			if err := json.Unmarshal(payload, &record); err != nil {
				return &DecodeError{Payload: string(payload), Err: err}
			}
			record.SequenceIndex = index
			record.Metadata = meta
			select {
			case events <- CompletionEvent{Index: index, Completion: &record}:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
		if err != nil {
			select {
			case events <- CompletionEvent{Err: err}:
			case <-ctx.Done():
			}
		}
	}()
	return events, nil
}

// chatEvents is the pull-style loop for chat chunks.
func (c *Client) chatEvents(ctx context.Context, req *models.ChatCompletionRequest) (<-chan ChatCompletionEvent, error) {
	resp, err := c.post(ctx, chatCompletionsPath, req, true)
	if err != nil {
		return nil, err
	}
	meta := readMetadata(resp.Header)

	events := make(chan ChatCompletionEvent)
	go func() {
		defer close(events)
		err := c.streamFrames(ctx, resp.Body, func(index int, payload []byte) error {
			var chunk models.ChatCompletionChunk
			if err := json.Unmarshal(payload, &chunk); err != nil {
				return &DecodeError{Payload: string(payload), Err: err}
			}
			chunk.SequenceIndex = index
			chunk.Metadata = meta
			select {
			case events <- ChatCompletionEvent{Index: index, Chunk: &chunk}:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
		if err != nil {
			select {
			case events <- ChatCompletionEvent{Err: err}:
			case <-ctx.Done():
			}
		}
	}()
	return events, nil
}

// streamChat runs the push-style loop for chat chunks.
func (c *Client) streamChat(ctx context.Context, req *models.ChatCompletionRequest, fn ChatChunkHandler) error {
	resp, err := c.post(ctx, chatCompletionsPath, req, true)
	if err != nil {
		return err
	}
	meta := readMetadata(resp.Header)
	return c.streamFrames(ctx, resp.Body, func(index int, payload []byte) error {
		var chunk models.ChatCompletionChunk
		if err := json.Unmarshal(payload, &chunk); err != nil {
			return &DecodeError{Payload: string(payload), Err: err}
		}
		chunk.SequenceIndex = index
		chunk.Metadata = meta
		return fn(index, &chunk)
	})
}
