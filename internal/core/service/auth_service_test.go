package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/ntdm/animal-hospital/internal/core/domain"
	"github.com/ntdm/animal-hospital/internal/core/ports"
)

func newTestAuthService() (*AuthService, *stubUserRepo, *stubSessionStore, *recordingNotifier) {
	users := newStubUserRepo()
	sessions := newStubSessionStore()
	notifier := &recordingNotifier{}
	svc := NewAuthService(users, sessions, notifier, time.Hour, zerolog.Nop())
	return svc, users, sessions, notifier
}

func registerFarmer(t *testing.T, svc *AuthService, email, password string) *domain.User {
	t.Helper()
	u, err := svc.Register(context.Background(), ports.RegisterInput{
		Name:     "Alice",
		Email:    email,
		Password: password,
		Role:     domain.RoleFarmer,
		District: "Gasabo",
		Sector:   "Kimironko",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	return u
}

func TestAuthService_Register_Success(t *testing.T) {
	svc, users, _, notifier := newTestAuthService()

	user := registerFarmer(t, svc, " Alice@Example.com ", "pass123")

	if user.Email != "alice@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if user.PasswordHash != "" {
		t.Fatalf("expected password hash to be stripped from result")
	}
	stored := users.users[user.ID]
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if stored.District != "Gasabo" || stored.Sector != "Kimironko" {
		t.Fatalf("farmer location not stored: %+v", stored)
	}
	if len(notifier.welcomed) != 1 || notifier.welcomed[0].Email != "alice@example.com" {
		t.Fatalf("expected one welcome notification, got %d", len(notifier.welcomed))
	}
}

func TestAuthService_Register_DoctorGetsDefaultAvailability(t *testing.T) {
	svc, users, _, _ := newTestAuthService()

	u, err := svc.Register(context.Background(), ports.RegisterInput{
		Name:           "Dr. Bob",
		Email:          "bob@example.com",
		Password:       "pass",
		Role:           domain.RoleDoctor,
		LicenseNumber:  "VET-42",
		Specialization: "Large animals",
		District:       "ignored",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	stored := users.users[u.ID]
	if stored.Availability == nil || len(stored.Availability.Days) != 5 {
		t.Fatalf("expected default availability, got %+v", stored.Availability)
	}
	if stored.District != "" {
		t.Fatalf("doctor should not carry farmer fields, got district %q", stored.District)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc, _, _, notifier := newTestAuthService()

	cases := []ports.RegisterInput{
		{Name: "", Email: "a@example.com", Password: "p", Role: domain.RoleFarmer},
		{Name: "A", Email: "", Password: "p", Role: domain.RoleFarmer},
		{Name: "A", Email: "a@example.com", Password: "", Role: domain.RoleFarmer},
		{Name: "A", Email: "a@example.com", Password: "p", Role: "wrong"},
	}
	for _, in := range cases {
		if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for %+v, got %v", in, err)
		}
	}
	if len(notifier.welcomed) != 0 {
		t.Fatalf("no welcome email expected for rejected registrations")
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc, _, _, notifier := newTestAuthService()

	registerFarmer(t, svc, "bob@example.com", "pass")
	_, err := svc.Register(context.Background(), ports.RegisterInput{
		Name: "Bob", Email: "BOB@example.com", Password: "pass2", Role: domain.RoleFarmer,
	})
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	if len(notifier.welcomed) != 1 {
		t.Fatalf("expected exactly one welcome email, got %d", len(notifier.welcomed))
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, _, sessions, _ := newTestAuthService()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.now = fixedClock(now)

	user := registerFarmer(t, svc, "carol@example.com", "s3cret")

	res, err := svc.Login(context.Background(), "Carol@example.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if res.Session.ID == "" {
		t.Fatalf("expected session id")
	}
	if res.Session.UserID != user.ID || res.Session.Role != domain.RoleFarmer {
		t.Fatalf("unexpected session: %+v", res.Session)
	}
	if !res.Session.ExpiresAt.Equal(now.Add(time.Hour)) {
		t.Fatalf("unexpected expiry: %v", res.Session.ExpiresAt)
	}
	if res.RedirectPath != "/farmer" {
		t.Fatalf("expected /farmer redirect, got %q", res.RedirectPath)
	}
	if res.User.PasswordHash != "" {
		t.Fatalf("password hash leaked in login result")
	}
	if _, ok := sessions.sessions[res.Session.ID]; !ok {
		t.Fatalf("session was not persisted")
	}
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	svc, _, _, _ := newTestAuthService()
	registerFarmer(t, svc, "dave@example.com", "goodpass")

	if _, err := svc.Login(context.Background(), "dave@example.com", "badpass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "ghost@example.com", "pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for empty input, got %v", err)
	}
}

func TestAuthService_Login_SessionStoreFailure(t *testing.T) {
	svc, _, sessions, _ := newTestAuthService()
	registerFarmer(t, svc, "erin@example.com", "pass")
	sessions.createErr = errors.New("mongo down")

	if _, err := svc.Login(context.Background(), "erin@example.com", "pass"); err == nil {
		t.Fatalf("expected error when session cannot be stored")
	}
}

func TestAuthService_CurrentUser_UsesFreshRole(t *testing.T) {
	svc, users, _, _ := newTestAuthService()
	user := registerFarmer(t, svc, "frank@example.com", "pass")

	res, err := svc.Login(context.Background(), "frank@example.com", "pass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	users.users[user.ID].Role = domain.RoleAdmin

	current, err := svc.CurrentUser(context.Background(), res.Session.ID)
	if err != nil {
		t.Fatalf("CurrentUser returned error: %v", err)
	}
	if current.Role != domain.RoleAdmin {
		t.Fatalf("expected role from user record, got %q", current.Role)
	}
}

func TestAuthService_CurrentUser_Unauthenticated(t *testing.T) {
	svc, users, sessions, _ := newTestAuthService()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.now = fixedClock(now)

	if _, err := svc.CurrentUser(context.Background(), ""); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for empty id, got %v", err)
	}
	if _, err := svc.CurrentUser(context.Background(), "unknown"); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for unknown session, got %v", err)
	}

	sessions.sessions["expired"] = &domain.Session{ID: "expired", UserID: "u1", ExpiresAt: now.Add(-time.Second)}
	users.add(&domain.User{ID: "u1", Role: domain.RoleFarmer})
	if _, err := svc.CurrentUser(context.Background(), "expired"); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for expired session, got %v", err)
	}

	sessions.sessions["orphan"] = &domain.Session{ID: "orphan", UserID: "gone", ExpiresAt: now.Add(time.Hour)}
	if _, err := svc.CurrentUser(context.Background(), "orphan"); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for deleted user, got %v", err)
	}
}

func TestAuthService_Logout(t *testing.T) {
	svc, _, sessions, _ := newTestAuthService()
	registerFarmer(t, svc, "gina@example.com", "pass")
	res, _ := svc.Login(context.Background(), "gina@example.com", "pass")

	svc.Logout(context.Background(), res.Session.ID)
	svc.Logout(context.Background(), "")

	if len(sessions.deleted) != 1 || sessions.deleted[0] != res.Session.ID {
		t.Fatalf("expected session to be deleted once, got %v", sessions.deleted)
	}
	if _, err := svc.CurrentUser(context.Background(), res.Session.ID); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated after logout, got %v", err)
	}
}
