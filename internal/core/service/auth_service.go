package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/ntdm/animal-hospital/internal/core/domain"
	"github.com/ntdm/animal-hospital/internal/core/ports"
)

// HashPassword returns the bcrypt hash stored for a credential.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// AuthService implements registration, login and the session gate.
type AuthService struct {
	users    ports.UserRepository
	sessions ports.SessionStore
	notifier ports.Notifier
	ttl      time.Duration
	log      zerolog.Logger
	now      func() time.Time
}

func NewAuthService(
	users ports.UserRepository,
	sessions ports.SessionStore,
	notifier ports.Notifier,
	ttl time.Duration,
	log zerolog.Logger,
) *AuthService {
	if ttl <= 0 {
		ttl = domain.DefaultSessionTTL
	}
	return &AuthService{
		users:    users,
		sessions: sessions,
		notifier: notifier,
		ttl:      ttl,
		log:      log,
		now:      time.Now,
	}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	email := domain.NormalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)
	if name == "" || email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	if !domain.ValidRole(in.Role) {
		return nil, domain.ErrInvalidInput
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	now := s.now().UTC()
	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Phone:        strings.TrimSpace(in.Phone),
		Role:         in.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	switch in.Role {
	case domain.RoleFarmer:
		user.District = strings.TrimSpace(in.District)
		user.Sector = strings.TrimSpace(in.Sector)
	case domain.RoleDoctor:
		user.LicenseNumber = strings.TrimSpace(in.LicenseNumber)
		user.Specialization = strings.TrimSpace(in.Specialization)
		availability := domain.DefaultAvailability()
		user.Availability = &availability
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil, err
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	s.log.Info().Str("user_id", created.ID).Str("role", created.Role).Msg("user registered")
	s.notifier.Welcome(ctx, created)

	return withoutPassword(created), nil
}

// Login verifies credentials and opens a new session. Unknown emails and
// wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	now := s.now().UTC()
	session := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Role:      user.Role,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("login: create session: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("user logged in")

	return &ports.LoginResult{
		Session:      session,
		User:         withoutPassword(user),
		RedirectPath: domain.LandingPath(user.Role),
	}, nil
}

// Logout never fails from the caller's point of view.
func (s *AuthService) Logout(ctx context.Context, sessionID string) {
	if sessionID == "" {
		return
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		s.log.Warn().Err(err).Msg("failed to delete session on logout")
	}
}

// CurrentUser resolves the session to its user. The role always comes from
// the user record, so a role change applies on the next request.
func (s *AuthService) CurrentUser(ctx context.Context, sessionID string) (*domain.User, error) {
	if sessionID == "" {
		return nil, domain.ErrUnauthenticated
	}

	session, err := s.sessions.Find(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) {
			return nil, err
		}
		return nil, fmt.Errorf("current user: %w", err)
	}
	if session.Expired(s.now()) {
		return nil, domain.ErrUnauthenticated
	}

	user, err := s.users.FindByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrInvalidID) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, fmt.Errorf("current user: %w", err)
	}
	if session.Role != user.Role {
		s.log.Debug().Str("user_id", user.ID).Str("session_role", session.Role).Str("role", user.Role).Msg("role changed since login")
	}

	return withoutPassword(user), nil
}

func withoutPassword(u *domain.User) *domain.User {
	clone := *u
	clone.PasswordHash = ""
	return &clone
}
