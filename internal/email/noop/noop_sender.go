package noop

import (
	"context"

	"github.com/rs/zerolog/log"

	"hejazi/internal/port"
)

type noopSender struct{}

// NewNoopSender creates an EmailSender that only logs the notices it would send.
func NewNoopSender() port.EmailSender {
	return noopSender{}
}

func (noopSender) SendViolationNotice(_ context.Context, notice port.ViolationNotice) error {
	log.Info().
		Strs("to", notice.To).
		Str("subject", notice.Subject).
		Msg("noop email: violation notice not sent")
	return nil
}
