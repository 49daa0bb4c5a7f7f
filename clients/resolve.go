package clients

import "github.com/sleepstars/modelkit/models"

// resolveRequest finalizes a caller-built completion request: no default
// fallback is applied, only the model and stream flags are forced. The
// caller's request is never mutated.
func (c *Client) resolveRequest(req *models.CompletionRequest, stream bool) *models.CompletionRequest {
	resolved := *req
	resolved.Model = c.model
	resolved.Stream = stream
	return &resolved
}

// resolveCompletion builds the wire request for a prompt call. Every
// parameter falls back to the configured default independently; the prompt is
// never defaulted.
func (c *Client) resolveCompletion(prompt string, params models.CompletionParams, stream bool) *models.CompletionRequest {
	return &models.CompletionRequest{
		Model:            c.model,
		Prompt:           prompt,
		Stream:           stream,
		CompletionParams: mergeParams(params, c.defaults),
	}
}

// resolveChat builds the wire request for a multi-turn call. Chat calls take
// no parameter fallback: only the messages travel, with model and stream
// forced.
func (c *Client) resolveChat(messages []models.ChatMessage, stream bool) *models.ChatCompletionRequest {
	return &models.ChatCompletionRequest{
		Model:    c.model,
		Messages: messages,
		Stream:   stream,
	}
}

// mergeParams applies field-by-field precedence: the explicit value wins
// whenever present, otherwise the default is used. Each field is decided
// independently; overriding one parameter leaves every other inherited.
func mergeParams(explicit, defaults models.CompletionParams) models.CompletionParams {
	merged := explicit
	if merged.MaxTokens == nil {
		merged.MaxTokens = defaults.MaxTokens
	}
	if merged.Temperature == nil {
		merged.Temperature = defaults.Temperature
	}
	if merged.TopP == nil {
		merged.TopP = defaults.TopP
	}
	if merged.N == nil {
		merged.N = defaults.N
	}
	if merged.LogProbs == nil {
		merged.LogProbs = defaults.LogProbs
	}
	if merged.Echo == nil {
		merged.Echo = defaults.Echo
	}
	if merged.Stop == nil {
		merged.Stop = defaults.Stop
	}
	if merged.PresencePenalty == nil {
		merged.PresencePenalty = defaults.PresencePenalty
	}
	if merged.FrequencyPenalty == nil {
		merged.FrequencyPenalty = defaults.FrequencyPenalty
	}
	if merged.BestOf == nil {
		merged.BestOf = defaults.BestOf
	}
	if merged.User == nil {
		merged.User = defaults.User
	}
	return merged
}
