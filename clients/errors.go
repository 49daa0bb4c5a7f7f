package clients

import (
	"errors"
	"fmt"
)

// ErrAuthenticationMissing is returned when no API key can be resolved from
// the explicit value, the environment or the key file. The check runs before
// any network call.
var ErrAuthenticationMissing = errors.New("no API key available")

// UnsupportedOperationError reports an operation the configured model does
// not support, detected from the model identifier before any network call.
type UnsupportedOperationError struct {
	Model     string
	Operation string
}

func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("model %q does not support %s", e.Model, e.Operation)
}

// TransportError reports a non-success HTTP status. The response body and
// the serialized request body are retained for diagnostics.
type TransportError struct {
	StatusCode  int
	Body        string
	RequestBody string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("unexpected status code %d: %s", e.StatusCode, e.Body)
}

// DecodeError reports a malformed JSON payload in a buffered response or a
// streamed payload frame. A mid-stream decode failure aborts the sequence;
// records delivered before it are not retracted.
type DecodeError struct {
	Payload string
	Err     error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
