package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ntdm/animal-hospital/internal/core/domain"
	"github.com/ntdm/animal-hospital/internal/core/ports"
)

// MessageService handles direct messages between accounts and the public
// contact form.
type MessageService struct {
	messages ports.MessageRepository
	contacts ports.ContactRepository
	users    ports.UserRepository
	log      zerolog.Logger
	now      func() time.Time
}

func NewMessageService(
	messages ports.MessageRepository,
	contacts ports.ContactRepository,
	users ports.UserRepository,
	log zerolog.Logger,
) *MessageService {
	return &MessageService{
		messages: messages,
		contacts: contacts,
		users:    users,
		log:      log,
		now:      time.Now,
	}
}

// Send delivers content from sender to recipientID. The recipient must exist
// and their role must be one the sender may write to.
func (s *MessageService) Send(ctx context.Context, sender ports.Actor, recipientID, content string) (*domain.Message, error) {
	if sender.UserID == "" {
		return nil, domain.ErrUnauthenticated
	}
	content = strings.TrimSpace(content)
	recipientID = strings.TrimSpace(recipientID)
	if content == "" || recipientID == "" || recipientID == sender.UserID {
		return nil, domain.ErrInvalidInput
	}

	recipient, err := s.users.FindByID(ctx, recipientID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrInvalidID) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("send message: %w", err)
	}
	if !domain.CanMessage(sender.Role, recipient.Role) {
		return nil, domain.ErrForbidden
	}

	m := &domain.Message{
		SenderID:    sender.UserID,
		RecipientID: recipient.ID,
		Content:     content,
		CreatedAt:   s.now().UTC(),
	}
	id, err := s.messages.Create(ctx, m)
	if err != nil {
		return nil, fmt.Errorf("send message: %w", err)
	}
	m.ID = id

	s.log.Info().Str("message_id", id).Str("sender_id", m.SenderID).Str("recipient_id", m.RecipientID).Msg("message sent")
	return m, nil
}

// Conversation lists every message userID sent or received.
func (s *MessageService) Conversation(ctx context.Context, userID string) ([]*domain.Message, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	list, err := s.messages.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return list, nil
}

// MarkRead is only honoured for the recipient. Anyone else sees the message
// as missing.
func (s *MessageService) MarkRead(ctx context.Context, id, userID string) error {
	if userID == "" {
		return domain.ErrUnauthenticated
	}
	return s.messages.MarkRead(ctx, id, userID)
}

func (s *MessageService) SubmitContact(ctx context.Context, in ports.ContactInput) (*domain.ContactSubmission, error) {
	c := &domain.ContactSubmission{
		Name:      strings.TrimSpace(in.Name),
		Email:     domain.NormalizeEmail(in.Email),
		Phone:     strings.TrimSpace(in.Phone),
		Message:   strings.TrimSpace(in.Message),
		CreatedAt: s.now().UTC(),
	}
	if c.Name == "" || c.Email == "" || c.Message == "" {
		return nil, domain.ErrInvalidInput
	}

	id, err := s.contacts.Create(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("submit contact form: %w", err)
	}
	c.ID = id

	s.log.Info().Str("contact_id", id).Msg("contact form submitted")
	return c, nil
}

func (s *MessageService) ListContacts(ctx context.Context) ([]*domain.ContactSubmission, error) {
	list, err := s.contacts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list contact submissions: %w", err)
	}
	return list, nil
}
