package mail

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/ntdm/animal-hospital/internal/core/domain"
)

// NopMailer logs messages instead of sending them. It is used when SMTP is
// not configured.
type NopMailer struct {
	log zerolog.Logger
}

func NewNopMailer(log zerolog.Logger) *NopMailer {
	return &NopMailer{log: log}
}

func (m *NopMailer) Send(_ context.Context, msg domain.Email) error {
	m.log.Warn().
		Str("kind", string(msg.Kind)).
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Msg("email credentials not configured, message not sent")
	return nil
}
