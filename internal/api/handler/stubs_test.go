package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ntdm/animal-hospital/internal/api/middleware"
	"github.com/ntdm/animal-hospital/internal/core/domain"
	"github.com/ntdm/animal-hospital/internal/core/ports"
)

var testCookie = middleware.SessionCookie{Name: "session", MaxAge: time.Hour}

// newContext builds an echo context with the validator installed and,
// when user is non-nil, the user injected the way the Session middleware does.
func newContext(method, target, body string, user *domain.User) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if user != nil {
		c.Set(middleware.ContextUser, user)
		c.Set(middleware.ContextUserID, user.ID)
		c.Set(middleware.ContextRole, user.Role)
	}
	return c, rec
}

var (
	farmer = &domain.User{ID: "farmer-1", Name: "Aline", Role: domain.RoleFarmer}
	doctor = &domain.User{ID: "doctor-1", Name: "Dr. Eric", Role: domain.RoleDoctor}
	admin  = &domain.User{ID: "admin-1", Name: "Admin", Role: domain.RoleAdmin}
)

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*domain.User, error)
	loginFn    func(ctx context.Context, email, password string) (*ports.LoginResult, error)
	loggedOut  []string
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Logout(_ context.Context, sessionID string) {
	s.loggedOut = append(s.loggedOut, sessionID)
}

func (s *stubAuthService) CurrentUser(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUnauthenticated
}

type stubUserService struct {
	doctors []domain.Doctor
	profile *ports.Profile
}

func (s *stubUserService) ListDoctors(context.Context) ([]domain.Doctor, error) {
	return s.doctors, nil
}

func (s *stubUserService) Profile(_ context.Context, user *domain.User) (*ports.Profile, error) {
	if s.profile != nil {
		return s.profile, nil
	}
	return &ports.Profile{User: user}, nil
}

type stubAnimalService struct {
	registerFn func(ctx context.Context, in ports.AnimalInput, ownerID string) (*domain.Animal, error)
	updateFn   func(ctx context.Context, id string, in ports.AnimalInput, actor ports.Actor) (*domain.Animal, error)

	lastOwner string
	animals   []*domain.Animal
}

func (s *stubAnimalService) Register(ctx context.Context, in ports.AnimalInput, ownerID string) (*domain.Animal, error) {
	return s.registerFn(ctx, in, ownerID)
}

func (s *stubAnimalService) Update(ctx context.Context, id string, in ports.AnimalInput, actor ports.Actor) (*domain.Animal, error) {
	return s.updateFn(ctx, id, in, actor)
}

func (s *stubAnimalService) Delete(_ context.Context, _ string, ownerID string) error {
	s.lastOwner = ownerID
	return nil
}

func (s *stubAnimalService) Get(_ context.Context, id, ownerID string) (*domain.Animal, error) {
	s.lastOwner = ownerID
	for _, a := range s.animals {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, domain.ErrAnimalNotFound
}

func (s *stubAnimalService) ListByOwner(_ context.Context, ownerID string) ([]*domain.Animal, error) {
	s.lastOwner = ownerID
	return s.animals, nil
}

type stubTrackingService struct {
	telemetryFn func(ctx context.Context, animalID, ownerID string, results int) (*domain.Telemetry, error)
}

func (s *stubTrackingService) Telemetry(ctx context.Context, animalID, ownerID string, results int) (*domain.Telemetry, error) {
	return s.telemetryFn(ctx, animalID, ownerID, results)
}

type stubConsultationService struct {
	bookFn         func(ctx context.Context, in ports.ConsultationInput, farmerID string) (*domain.Consultation, error)
	bookPublicFn   func(ctx context.Context, in ports.ConsultationInput, extra ports.BookingDetails) (*domain.Consultation, error)
	updateStatusFn func(ctx context.Context, id, status, feedback string, actor ports.Actor) (*domain.Consultation, error)
	updateFn       func(ctx context.Context, id string, in ports.ConsultationInput, farmerID string) (*domain.Consultation, error)
	deleteErr      error

	listed string
}

func (s *stubConsultationService) Book(ctx context.Context, in ports.ConsultationInput, farmerID string) (*domain.Consultation, error) {
	return s.bookFn(ctx, in, farmerID)
}

func (s *stubConsultationService) BookPublic(ctx context.Context, in ports.ConsultationInput, extra ports.BookingDetails) (*domain.Consultation, error) {
	return s.bookPublicFn(ctx, in, extra)
}

func (s *stubConsultationService) UpdateStatus(ctx context.Context, id, status, feedback string, actor ports.Actor) (*domain.Consultation, error) {
	return s.updateStatusFn(ctx, id, status, feedback, actor)
}

func (s *stubConsultationService) Update(ctx context.Context, id string, in ports.ConsultationInput, farmerID string) (*domain.Consultation, error) {
	return s.updateFn(ctx, id, in, farmerID)
}

func (s *stubConsultationService) Delete(context.Context, string, string) error {
	return s.deleteErr
}

func (s *stubConsultationService) Get(_ context.Context, id, _ string) (*domain.Consultation, error) {
	return &domain.Consultation{ID: id, Status: domain.StatusPending}, nil
}

func (s *stubConsultationService) ListByDoctor(_ context.Context, doctorID string) ([]*domain.Consultation, error) {
	s.listed = "doctor:" + doctorID
	return nil, nil
}

func (s *stubConsultationService) ListByFarmer(_ context.Context, farmerID string) ([]*domain.Consultation, error) {
	s.listed = "farmer:" + farmerID
	return nil, nil
}

func (s *stubConsultationService) ListAll(context.Context) ([]*domain.Consultation, error) {
	s.listed = "all"
	return nil, nil
}

type stubMessageService struct {
	sendFn    func(ctx context.Context, sender ports.Actor, recipientID, content string) (*domain.Message, error)
	contactFn func(ctx context.Context, in ports.ContactInput) (*domain.ContactSubmission, error)
	listed    string
	readBy    string
}

func (s *stubMessageService) Send(ctx context.Context, sender ports.Actor, recipientID, content string) (*domain.Message, error) {
	return s.sendFn(ctx, sender, recipientID, content)
}

func (s *stubMessageService) Conversation(_ context.Context, userID string) ([]*domain.Message, error) {
	s.listed = userID
	return nil, nil
}

func (s *stubMessageService) MarkRead(_ context.Context, id, userID string) error {
	if id != "m1" {
		return domain.ErrMessageNotFound
	}
	s.readBy = userID
	return nil
}

func (s *stubMessageService) SubmitContact(ctx context.Context, in ports.ContactInput) (*domain.ContactSubmission, error) {
	return s.contactFn(ctx, in)
}

func (s *stubMessageService) ListContacts(context.Context) ([]*domain.ContactSubmission, error) {
	return nil, nil
}
