package ports

import (
	"context"

	"github.com/ntdm/animal-hospital/internal/core/domain"
)

// RegisterInput carries the account fields submitted at sign-up.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Role     string

	District string
	Sector   string

	LicenseNumber  string
	Specialization string
}

// LoginResult is returned on successful login.
type LoginResult struct {
	Session      *domain.Session
	User         *domain.User
	RedirectPath string
}

// Profile is the current user plus derived relations.
type Profile struct {
	User      *domain.User
	AnimalIDs []string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Logout(ctx context.Context, sessionID string)
	CurrentUser(ctx context.Context, sessionID string) (*domain.User, error)
}

// UserService exposes the user directory.
type UserService interface {
	ListDoctors(ctx context.Context) ([]domain.Doctor, error)
	Profile(ctx context.Context, user *domain.User) (*Profile, error)
}
