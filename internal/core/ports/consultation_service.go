package ports

import (
	"context"

	"github.com/ntdm/animal-hospital/internal/core/domain"
)

// ConsultationInput carries the booking fields a farmer may set.
type ConsultationInput struct {
	FullName    string
	PhoneNumber string
	Service     string
	DoctorID    string
	Date        string
	Time        string
	Type        string
}

type ConsultationService interface {
	Book(ctx context.Context, in ConsultationInput, farmerID string) (*domain.Consultation, error)
	BookPublic(ctx context.Context, in ConsultationInput, extra BookingDetails) (*domain.Consultation, error)
	UpdateStatus(ctx context.Context, id, status, feedback string, actor Actor) (*domain.Consultation, error)
	// Update and Delete scope to farmerID when it is non-empty.
	Update(ctx context.Context, id string, in ConsultationInput, farmerID string) (*domain.Consultation, error)
	Delete(ctx context.Context, id, farmerID string) error
	Get(ctx context.Context, id, farmerID string) (*domain.Consultation, error)
	ListByDoctor(ctx context.Context, doctorID string) ([]*domain.Consultation, error)
	ListByFarmer(ctx context.Context, farmerID string) ([]*domain.Consultation, error)
	ListAll(ctx context.Context) ([]*domain.Consultation, error)
}
