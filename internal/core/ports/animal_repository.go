package ports

import (
	"context"

	"github.com/ntdm/animal-hospital/internal/core/domain"
)

// AnimalRepository defines persistence operations for animals.
// Ownership is always the canonical OwnerID field.
type AnimalRepository interface {
	Create(ctx context.Context, a *domain.Animal) (string, error)
	FindByID(ctx context.Context, id string) (*domain.Animal, error)
	Update(ctx context.Context, a *domain.Animal) error
	Delete(ctx context.Context, id string) error
	// ListByOwner returns every animal when ownerID is empty.
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Animal, error)
}
