// Package models defines the wire types exchanged with the model API:
// requests, optional generation parameters and typed responses for the
// completion, chat-completion, search, answer and classification endpoints.
package models

// CompletionParams holds the optional generation parameters of a completion
// call. Every field is a pointer (or nil-able slice) so that an absent value
// and an explicit zero remain distinguishable; absent fields are omitted from
// the request body entirely.
type CompletionParams struct {
	// MaxTokens limits the length of the generated output.
	MaxTokens *int `json:"max_tokens,omitempty" yaml:"max_tokens,omitempty"`
	// Temperature controls sampling randomness. The API treats temperature
	// and top_p as mutually exclusive; this is not enforced client-side.
	Temperature *float64 `json:"temperature,omitempty" yaml:"temperature,omitempty"`
	// TopP is the nucleus-sampling probability mass.
	TopP *float64 `json:"top_p,omitempty" yaml:"top_p,omitempty"`
	// N is the number of choices to generate.
	N *int `json:"n,omitempty" yaml:"n,omitempty"`
	// LogProbs requests log probabilities for the most likely tokens.
	LogProbs *int `json:"logprobs,omitempty" yaml:"logprobs,omitempty"`
	// Echo asks the API to include the prompt in the completion text.
	Echo *bool `json:"echo,omitempty" yaml:"echo,omitempty"`
	// Stop lists sequences that end generation. The API accepts at most 4;
	// the client does not validate the cardinality.
	Stop             []string `json:"stop,omitempty" yaml:"stop,omitempty"`
	PresencePenalty  *float64 `json:"presence_penalty,omitempty" yaml:"presence_penalty,omitempty"`
	FrequencyPenalty *float64 `json:"frequency_penalty,omitempty" yaml:"frequency_penalty,omitempty"`
	// BestOf generates that many completions server-side and returns the best.
	BestOf *int `json:"best_of,omitempty" yaml:"best_of,omitempty"`
	// User is an end-user tag for abuse monitoring.
	User *string `json:"user,omitempty" yaml:"user,omitempty"`
}

// CompletionRequest is the resolved wire form of a completion call. Model and
// Stream are always set by the client before dispatch, regardless of what the
// caller supplied.
type CompletionRequest struct {
	Model  string `json:"model,omitempty"`
	Prompt string `json:"prompt,omitempty"`
	Stream bool   `json:"stream,omitempty"`
	CompletionParams
}

// LogProbResult carries token-level log probabilities for one choice.
type LogProbResult struct {
	Tokens        []string             `json:"tokens,omitempty"`
	TokenLogProbs []float64            `json:"token_logprobs,omitempty"`
	TopLogProbs   []map[string]float64 `json:"top_logprobs,omitempty"`
	TextOffset    []int                `json:"text_offset,omitempty"`
}

// CompletionChoice is one generated alternative within a completion.
type CompletionChoice struct {
	Text         string         `json:"text"`
	Index        int            `json:"index"`
	LogProbs     *LogProbResult `json:"logprobs,omitempty"`
	FinishReason string         `json:"finish_reason,omitempty"`
}

// Usage reports token accounting for a buffered response.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Completion is one decoded result record: a buffered response, or a single
// payload frame of a streaming response.
type Completion struct {
	ID      string             `json:"id"`
	Object  string             `json:"object"`
	Created int64              `json:"created"`
	Model   string             `json:"model"`
	Choices []CompletionChoice `json:"choices"`
	Usage   *Usage             `json:"usage,omitempty"`

	// SequenceIndex is the 1-based arrival position assigned by the stream
	// decoder. Zero for buffered responses.
	SequenceIndex int `json:"-"`
	// Metadata holds best-effort response header attributes.
	Metadata ResponseMetadata `json:"-"`
}

// ResponseMetadata carries response-level attributes extracted from HTTP
// headers. Extraction is best effort: an absent or malformed header leaves
// the corresponding field at its zero value and never fails the call.
type ResponseMetadata struct {
	Organization string `json:"-"`
	RequestID    string `json:"-"`
	ProcessingMS int64  `json:"-"`
}
