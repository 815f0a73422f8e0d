package ports

import (
	"context"

	"github.com/ntdm/animal-hospital/internal/core/domain"
)

// AnimalInput carries the editable animal fields.
type AnimalInput struct {
	Name        string
	Type        string
	Breed       string
	District    string
	Sector      string
	Class       string
	OwnerName   string
	PhoneNumber string
	// Price keeps the stored value when nil on update and defaults to 0 on register.
	Price *float64
	// Status and DeviceID keep their stored value when empty on update.
	Status   string
	DeviceID string
	// OwnerID reassigns the animal; only honoured for admins.
	OwnerID string
}

// Actor identifies who performs an operation.
type Actor struct {
	UserID string
	Role   string
}

// IsAdmin reports whether the actor bypasses ownership scoping.
func (a Actor) IsAdmin() bool { return a.Role == domain.RoleAdmin }

type AnimalService interface {
	Register(ctx context.Context, in AnimalInput, ownerID string) (*domain.Animal, error)
	Update(ctx context.Context, id string, in AnimalInput, actor Actor) (*domain.Animal, error)
	// Delete scopes to ownerID when it is non-empty.
	Delete(ctx context.Context, id, ownerID string) error
	Get(ctx context.Context, id, ownerID string) (*domain.Animal, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Animal, error)
}
