package service

import (
	"context"
	"fmt"

	"github.com/ntdm/animal-hospital/internal/core/domain"
	"github.com/ntdm/animal-hospital/internal/core/ports"
)

// UserService exposes the doctor directory and user profiles.
type UserService struct {
	users   ports.UserRepository
	animals ports.AnimalRepository
}

func NewUserService(users ports.UserRepository, animals ports.AnimalRepository) *UserService {
	return &UserService{users: users, animals: animals}
}

func (s *UserService) ListDoctors(ctx context.Context) ([]domain.Doctor, error) {
	users, err := s.users.ListByRole(ctx, domain.RoleDoctor)
	if err != nil {
		return nil, fmt.Errorf("list doctors: %w", err)
	}
	out := make([]domain.Doctor, 0, len(users))
	for _, u := range users {
		out = append(out, domain.Doctor{
			ID:             u.ID,
			Name:           u.Name,
			Email:          u.Email,
			Specialization: u.Specialization,
			Phone:          u.Phone,
		})
	}
	return out, nil
}

// Profile returns the user with the ids of the animals they own. The list
// is derived from the animals collection rather than stored on the user.
func (s *UserService) Profile(ctx context.Context, user *domain.User) (*ports.Profile, error) {
	p := &ports.Profile{User: user}
	if user.Role != domain.RoleFarmer {
		return p, nil
	}

	animals, err := s.animals.ListByOwner(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("profile: %w", err)
	}
	p.AnimalIDs = make([]string, 0, len(animals))
	for _, a := range animals {
		p.AnimalIDs = append(p.AnimalIDs, a.ID)
	}
	return p, nil
}
