package mail

import "context"

// Message addresses a single outbound email.
type Message struct {
	To      string
	Subject string
}

// Mailer renders a named template with the given variables and dispatches
// the result to the recipient.
type Mailer interface {
	Send(ctx context.Context, msg Message, template string, vars map[string]string) error
}
