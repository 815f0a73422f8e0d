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

// ConsultationService manages bookings and their status lifecycle.
type ConsultationService struct {
	consultations ports.ConsultationRepository
	users         ports.UserRepository
	notifier      ports.Notifier
	log           zerolog.Logger
	now           func() time.Time
}

func NewConsultationService(
	consultations ports.ConsultationRepository,
	users ports.UserRepository,
	notifier ports.Notifier,
	log zerolog.Logger,
) *ConsultationService {
	return &ConsultationService{
		consultations: consultations,
		users:         users,
		notifier:      notifier,
		log:           log,
		now:           time.Now,
	}
}

// Book creates a pending consultation for an authenticated farmer.
func (s *ConsultationService) Book(ctx context.Context, in ports.ConsultationInput, farmerID string) (*domain.Consultation, error) {
	if farmerID == "" {
		return nil, domain.ErrUnauthenticated
	}
	c, err := s.build(ctx, in, true)
	if err != nil {
		return nil, err
	}
	c.FarmerID = farmerID

	if err := s.create(ctx, c); err != nil {
		return nil, err
	}
	s.notifier.BookingReceived(ctx, c, nil)
	return c, nil
}

// BookPublic creates a pending consultation from the public booking form.
// The doctor is optional there and the clinic assigns one later.
func (s *ConsultationService) BookPublic(ctx context.Context, in ports.ConsultationInput, extra ports.BookingDetails) (*domain.Consultation, error) {
	if strings.TrimSpace(in.Type) == "" {
		in.Type = string(domain.TypeInPerson)
	}
	c, err := s.build(ctx, in, false)
	if err != nil {
		return nil, err
	}

	if err := s.create(ctx, c); err != nil {
		return nil, err
	}
	s.notifier.BookingReceived(ctx, c, &extra)
	return c, nil
}

// UpdateStatus moves the consultation through its lifecycle. Only the
// assigned doctor or an admin may do so.
func (s *ConsultationService) UpdateStatus(ctx context.Context, id, status, feedback string, actor ports.Actor) (*domain.Consultation, error) {
	next, err := domain.ParseConsultationStatus(status)
	if err != nil {
		return nil, err
	}

	c, err := s.consultations.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && (actor.UserID == "" || c.DoctorID != actor.UserID) {
		return nil, domain.ErrForbidden
	}
	if !c.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s to %s", domain.ErrInvalidTransition, c.Status, next)
	}

	feedback = strings.TrimSpace(feedback)
	if err := s.consultations.UpdateStatus(ctx, id, c.Status, next, feedback); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("consultation_id", id).
		Str("from", string(c.Status)).
		Str("to", string(next)).
		Str("actor_id", actor.UserID).
		Msg("consultation status updated")

	c.Status = next
	if feedback != "" {
		c.Feedback = feedback
	}
	c.UpdatedAt = s.now().UTC()
	return c, nil
}

// Update rewrites the booking details while the consultation is pending.
func (s *ConsultationService) Update(ctx context.Context, id string, in ports.ConsultationInput, farmerID string) (*domain.Consultation, error) {
	existing, err := s.scoped(ctx, id, farmerID)
	if err != nil {
		return nil, err
	}
	if !existing.Editable() {
		return nil, domain.ErrConsultationLocked
	}

	next, err := s.build(ctx, in, true)
	if err != nil {
		return nil, err
	}
	next.ID = existing.ID
	next.FarmerID = existing.FarmerID
	next.Status = existing.Status
	next.Feedback = existing.Feedback
	next.CreatedAt = existing.CreatedAt

	if err := s.consultations.UpdateDetails(ctx, next); err != nil {
		return nil, err
	}
	s.log.Info().Str("consultation_id", id).Msg("consultation updated")
	return next, nil
}

func (s *ConsultationService) Delete(ctx context.Context, id, farmerID string) error {
	existing, err := s.scoped(ctx, id, farmerID)
	if err != nil {
		return err
	}
	if !existing.Editable() {
		return domain.ErrConsultationLocked
	}
	if err := s.consultations.DeletePending(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("consultation_id", id).Msg("consultation deleted")
	return nil
}

// Get hides consultations of other farmers as not found.
func (s *ConsultationService) Get(ctx context.Context, id, farmerID string) (*domain.Consultation, error) {
	c, err := s.consultations.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if farmerID != "" && !c.OwnedBy(farmerID) {
		return nil, domain.ErrConsultationNotFound
	}
	return c, nil
}

func (s *ConsultationService) ListByDoctor(ctx context.Context, doctorID string) ([]*domain.Consultation, error) {
	if doctorID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return s.consultations.List(ctx, ports.ConsultationFilter{DoctorID: doctorID})
}

func (s *ConsultationService) ListByFarmer(ctx context.Context, farmerID string) ([]*domain.Consultation, error) {
	if farmerID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return s.consultations.List(ctx, ports.ConsultationFilter{FarmerID: farmerID})
}

func (s *ConsultationService) ListAll(ctx context.Context) ([]*domain.Consultation, error) {
	return s.consultations.List(ctx, ports.ConsultationFilter{})
}

func (s *ConsultationService) scoped(ctx context.Context, id, farmerID string) (*domain.Consultation, error) {
	c, err := s.consultations.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if farmerID != "" && !c.OwnedBy(farmerID) {
		return nil, domain.ErrForbidden
	}
	return c, nil
}

func (s *ConsultationService) create(ctx context.Context, c *domain.Consultation) error {
	id, err := s.consultations.Create(ctx, c)
	if err != nil {
		return fmt.Errorf("book consultation: %w", err)
	}
	c.ID = id
	s.log.Info().
		Str("consultation_id", id).
		Str("doctor_id", c.DoctorID).
		Str("farmer_id", c.FarmerID).
		Str("type", string(c.Type)).
		Msg("consultation booked")
	return nil
}

// build validates the input and returns a new pending consultation.
func (s *ConsultationService) build(ctx context.Context, in ports.ConsultationInput, requireDoctor bool) (*domain.Consultation, error) {
	c := &domain.Consultation{
		FullName:    strings.TrimSpace(in.FullName),
		PhoneNumber: strings.TrimSpace(in.PhoneNumber),
		Service:     strings.TrimSpace(in.Service),
		DoctorID:    strings.TrimSpace(in.DoctorID),
		Date:        strings.TrimSpace(in.Date),
		Time:        strings.TrimSpace(in.Time),
		Status:      domain.StatusPending,
	}
	if c.FullName == "" || c.PhoneNumber == "" || c.Service == "" || c.Date == "" || c.Time == "" {
		return nil, domain.ErrInvalidInput
	}
	if requireDoctor && c.DoctorID == "" {
		return nil, domain.ErrInvalidInput
	}

	typ, err := domain.ParseConsultationType(in.Type)
	if err != nil {
		return nil, err
	}
	c.Type = typ

	if c.DoctorID != "" {
		if err := s.ensureDoctor(ctx, c.DoctorID); err != nil {
			return nil, err
		}
	}

	now := s.now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	return c, nil
}

func (s *ConsultationService) ensureDoctor(ctx context.Context, id string) error {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrInvalidID) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("lookup doctor: %w", err)
	}
	if u.Role != domain.RoleDoctor {
		return domain.ErrInvalidInput
	}
	return nil
}
