package ports

import (
	"context"

	"github.com/ntdm/animal-hospital/internal/core/domain"
)

// SessionStore persists login sessions.
type SessionStore interface {
	Create(ctx context.Context, s *domain.Session) error
	// Find returns domain.ErrUnauthenticated when no live session matches.
	Find(ctx context.Context, sessionID string) (*domain.Session, error)
	Delete(ctx context.Context, sessionID string) error
}
