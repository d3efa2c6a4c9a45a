package email

import (
	"context"
	"errors"
	"fmt"
	"net"
)

type Message struct {
	To      string
	Subject string
	Body    string
	IsHTML  bool
}

type Transport interface {
	Send(ctx context.Context, message Message) error
}

type Reason string

const (
	ReasonTimeout        Reason = "timeout"
	ReasonRejected       Reason = "rejected"
	ReasonTransport      Reason = "transport"
	ReasonInvalidMessage Reason = "invalid_message"
)

// SendError is the only error type a Transport returns.
type SendError struct {
	Reason Reason
	Err    error
}

func (e *SendError) Error() string {
	return fmt.Sprintf("could not send email (%s): %v", e.Reason, e.Err)
}

func (e *SendError) Unwrap() error {
	return e.Err
}

// Temporary reports whether the same message could succeed later.
func (e *SendError) Temporary() bool {
	return e.Reason == ReasonTimeout || e.Reason == ReasonTransport
}

func newSendError(reason Reason, err error) *SendError {
	return &SendError{Reason: reason, Err: err}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
