package gommt

import (
	"errors"
	"fmt"
)

// ErrInvalidSignature is returned by HandleCallback when the callback
// signature cannot be verified against the batch public key. A payload
// that fails this check is unauthenticated and must not be processed.
var ErrInvalidSignature = errors.New("gommt: invalid callback signature")

// Error is returned for every non-OK ModernMT API response, and for
// verified callback payloads that embed an error result.
type Error struct {
	Status   int            // HTTP status, or the embedded result status for callbacks
	Type     string         // error type reported by the API
	Message  string         // human-readable error description
	Metadata map[string]any // caller metadata echoed by a batch callback, when present
}

func (e *Error) Error() string {
	return fmt.Sprintf("(%s) %s", e.Type, e.Message)
}
