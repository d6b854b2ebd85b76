package port

import "context"

// ViolationNotice is an outbound email about a violation.
type ViolationNotice struct {
	To      []string
	Subject string
	Body    string
}

// EmailSender defines the contract for sending emails.
type EmailSender interface {
	SendViolationNotice(ctx context.Context, notice ViolationNotice) error
}
