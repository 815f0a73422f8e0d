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

// AnimalService manages the animal registry.
type AnimalService struct {
	animals ports.AnimalRepository
	users   ports.UserRepository
	log     zerolog.Logger
	now     func() time.Time
}

func NewAnimalService(animals ports.AnimalRepository, users ports.UserRepository, log zerolog.Logger) *AnimalService {
	return &AnimalService{
		animals: animals,
		users:   users,
		log:     log,
		now:     time.Now,
	}
}

// Register records a new animal owned by ownerID. The owner's display name
// is taken from their account when it exists.
func (s *AnimalService) Register(ctx context.Context, in ports.AnimalInput, ownerID string) (*domain.Animal, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthenticated
	}
	if strings.TrimSpace(in.Name) == "" || negative(in.Price) {
		return nil, domain.ErrInvalidInput
	}
	class, err := domain.ParseAnimalClass(in.Class)
	if err != nil {
		return nil, err
	}
	status, err := domain.ParseAnimalStatus(in.Status)
	if err != nil {
		return nil, err
	}

	ownerName, err := s.resolveOwnerName(ctx, ownerID, in.OwnerName)
	if err != nil {
		return nil, fmt.Errorf("register animal: %w", err)
	}

	now := s.now().UTC()
	a := &domain.Animal{
		Name:        strings.TrimSpace(in.Name),
		Type:        strings.TrimSpace(in.Type),
		Breed:       strings.TrimSpace(in.Breed),
		District:    strings.TrimSpace(in.District),
		Sector:      strings.TrimSpace(in.Sector),
		Class:       class,
		OwnerID:     ownerID,
		OwnerName:   ownerName,
		PhoneNumber: strings.TrimSpace(in.PhoneNumber),
		Price:       priceOrZero(in.Price),
		Status:      status,
		DeviceID:    strings.TrimSpace(in.DeviceID),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	id, err := s.animals.Create(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("register animal: %w", err)
	}
	a.ID = id

	s.log.Info().Str("animal_id", id).Str("owner_id", ownerID).Str("class", string(class)).Msg("animal registered")
	return a, nil
}

// Update replaces the editable fields. Only the owner or an admin may edit,
// and only an admin may move the animal to another owner.
func (s *AnimalService) Update(ctx context.Context, id string, in ports.AnimalInput, actor ports.Actor) (*domain.Animal, error) {
	existing, err := s.animals.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && !existing.OwnedBy(actor.UserID) {
		return nil, domain.ErrForbidden
	}
	if strings.TrimSpace(in.Name) == "" || negative(in.Price) {
		return nil, domain.ErrInvalidInput
	}

	updated := *existing
	updated.Name = strings.TrimSpace(in.Name)
	if t := strings.TrimSpace(in.Type); t != "" {
		updated.Type = t
	}
	updated.Breed = strings.TrimSpace(in.Breed)
	updated.District = strings.TrimSpace(in.District)
	updated.Sector = strings.TrimSpace(in.Sector)
	updated.PhoneNumber = strings.TrimSpace(in.PhoneNumber)
	if in.Price != nil {
		updated.Price = *in.Price
	}

	if strings.TrimSpace(in.Class) != "" {
		if updated.Class, err = domain.ParseAnimalClass(in.Class); err != nil {
			return nil, err
		}
	}
	if strings.TrimSpace(in.Status) != "" {
		if updated.Status, err = domain.ParseAnimalStatus(in.Status); err != nil {
			return nil, err
		}
	}
	if d := strings.TrimSpace(in.DeviceID); d != "" {
		updated.DeviceID = d
	}
	if n := strings.TrimSpace(in.OwnerName); n != "" {
		updated.OwnerName = n
	}

	newOwner := strings.TrimSpace(in.OwnerID)
	if newOwner != "" && newOwner != existing.OwnerID {
		if !actor.IsAdmin() {
			return nil, domain.ErrForbidden
		}
		owner, err := s.users.FindByID(ctx, newOwner)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrInvalidID) {
				return nil, domain.ErrInvalidInput
			}
			return nil, fmt.Errorf("update animal: %w", err)
		}
		updated.OwnerID = owner.ID
		updated.OwnerName = owner.Name
	}

	updated.UpdatedAt = s.now().UTC()
	if err := s.animals.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("update animal: %w", err)
	}

	s.log.Info().Str("animal_id", id).Str("actor_id", actor.UserID).Msg("animal updated")
	return &updated, nil
}

func (s *AnimalService) Delete(ctx context.Context, id, ownerID string) error {
	existing, err := s.animals.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if ownerID != "" && !existing.OwnedBy(ownerID) {
		return domain.ErrForbidden
	}
	if err := s.animals.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("animal_id", id).Msg("animal deleted")
	return nil
}

// Get hides animals of other owners as not found.
func (s *AnimalService) Get(ctx context.Context, id, ownerID string) (*domain.Animal, error) {
	a, err := s.animals.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ownerID != "" && !a.OwnedBy(ownerID) {
		return nil, domain.ErrAnimalNotFound
	}
	return a, nil
}

func (s *AnimalService) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Animal, error) {
	return s.animals.ListByOwner(ctx, ownerID)
}

func (s *AnimalService) resolveOwnerName(ctx context.Context, ownerID, fallback string) (string, error) {
	owner, err := s.users.FindByID(ctx, ownerID)
	switch {
	case err == nil:
		return owner.Name, nil
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrInvalidID):
		return strings.TrimSpace(fallback), nil
	default:
		return "", err
	}
}

func negative(p *float64) bool { return p != nil && *p < 0 }

func priceOrZero(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
