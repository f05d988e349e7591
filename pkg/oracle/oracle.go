package oracle

import (
	"context"
	"errors"
)

// Oracle is the external text classification/generation service the
// screening flow talks to. It is deliberately a single method: every call is
// prompt in, free text out, and the caller constrains the reply through the
// prompt itself.
//
// Calls are not retried and carry no extra timeout; an error (or an empty
// reply) is the terminal outcome of that call.
type Oracle interface {
	Invoke(ctx context.Context, prompt string) (string, error)
}

// ErrEmptyReply is returned when the oracle answered without any usable text.
var ErrEmptyReply = errors.New("oracle returned an empty reply")
