// Package mailer defines the outbound mail contract and its SMTP
// implementation. Delivery is synchronous: callers block until the transport
// reports success or failure, and nothing is queued or retried here.
package mailer

import "context"

// Message is a fully-prepared outbound email. It lives for one send call.
type Message struct {
	Subject string
	From    string
	To      []string
	Body    string
}

// Mailer delivers a message. Implementations must be safe for concurrent use.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}
