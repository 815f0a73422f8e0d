package ports

import (
	"context"

	"github.com/ntdm/animal-hospital/internal/core/domain"
)

// MessageRepository defines persistence operations for direct messages.
type MessageRepository interface {
	Create(ctx context.Context, m *domain.Message) (string, error)
	// ListForUser returns messages sent or received by userID, newest first.
	ListForUser(ctx context.Context, userID string) ([]*domain.Message, error)
	// MarkRead flags the message as read when it is addressed to recipientID;
	// otherwise it returns domain.ErrMessageNotFound.
	MarkRead(ctx context.Context, id, recipientID string) error
}

// ContactRepository stores public contact form submissions.
type ContactRepository interface {
	Create(ctx context.Context, c *domain.ContactSubmission) (string, error)
	// List returns submissions newest first.
	List(ctx context.Context) ([]*domain.ContactSubmission, error)
}

// ContactInput carries the public contact form fields.
type ContactInput struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

type MessageService interface {
	Send(ctx context.Context, sender Actor, recipientID, content string) (*domain.Message, error)
	Conversation(ctx context.Context, userID string) ([]*domain.Message, error)
	MarkRead(ctx context.Context, id, userID string) error
	SubmitContact(ctx context.Context, in ContactInput) (*domain.ContactSubmission, error)
	ListContacts(ctx context.Context) ([]*domain.ContactSubmission, error)
}
