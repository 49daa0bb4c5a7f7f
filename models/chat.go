package models

// ChatMessage is one role-tagged turn of a chat conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatCompletionRequest is the resolved wire form of a chat-completion call.
type ChatCompletionRequest struct {
	Model    string        `json:"model,omitempty"`
	Messages []ChatMessage `json:"messages"`
	Stream   bool          `json:"stream,omitempty"`
	CompletionParams
}

// ChatChoice is one generated alternative within a buffered chat completion.
type ChatChoice struct {
	Index        int         `json:"index"`
	Message      ChatMessage `json:"message"`
	FinishReason string      `json:"finish_reason,omitempty"`
}

// ChatCompletion is the buffered chat-completion response.
type ChatCompletion struct {
	ID      string       `json:"id"`
	Object  string       `json:"object"`
	Created int64        `json:"created"`
	Model   string       `json:"model"`
	Choices []ChatChoice `json:"choices"`
	Usage   *Usage       `json:"usage,omitempty"`

	Metadata ResponseMetadata `json:"-"`
}

// ChatDelta is the incremental content of one streaming chunk. The first
// delta of a stream carries the role; later deltas carry content fragments.
type ChatDelta struct {
	Role    string `json:"role,omitempty"`
	Content string `json:"content,omitempty"`
}

// ChatChunkChoice is one choice within a streaming chunk. FinishReason is nil
// for intermediate chunks and non-nil on the final chunk of a choice.
type ChatChunkChoice struct {
	Index        int       `json:"index"`
	Delta        ChatDelta `json:"delta"`
	FinishReason *string   `json:"finish_reason"`
}

// ChatCompletionChunk is one decoded payload frame of a streaming
// chat-completion response.
type ChatCompletionChunk struct {
	ID      string            `json:"id"`
	Object  string            `json:"object"`
	Created int64             `json:"created"`
	Model   string            `json:"model"`
	Choices []ChatChunkChoice `json:"choices"`

	// SequenceIndex is the 1-based arrival position assigned by the stream
	// decoder.
	SequenceIndex int `json:"-"`
	// Metadata holds best-effort response header attributes.
	Metadata ResponseMetadata `json:"-"`
}
