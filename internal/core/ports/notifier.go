package ports

import (
	"context"

	"github.com/ntdm/animal-hospital/internal/core/domain"
)

// Mailer delivers a rendered email.
type Mailer interface {
	Send(ctx context.Context, msg domain.Email) error
}

// EmailQueue accepts messages for asynchronous delivery. Enqueue never
// blocks; it reports false when the message had to be dropped.
type EmailQueue interface {
	Enqueue(msg domain.Email) bool
}

// BookingDetails carries the optional extras of a public booking form.
type BookingDetails struct {
	Email           string
	AnimalType      string
	AnimalCount     string
	Description     string
	WhatsAppConfirm bool
}

// Notifier fires best-effort notifications. Implementations must not fail
// the caller's primary write.
type Notifier interface {
	Welcome(ctx context.Context, user *domain.User)
	BookingReceived(ctx context.Context, c *domain.Consultation, extra *BookingDetails)
}
