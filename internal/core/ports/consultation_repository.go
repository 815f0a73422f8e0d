package ports

import (
	"context"

	"github.com/ntdm/animal-hospital/internal/core/domain"
)

// ConsultationFilter selects consultations. Empty fields are not filtered.
type ConsultationFilter struct {
	DoctorID string
	FarmerID string
}

// ConsultationRepository defines persistence operations for consultations.
type ConsultationRepository interface {
	Create(ctx context.Context, c *domain.Consultation) (string, error)
	FindByID(ctx context.Context, id string) (*domain.Consultation, error)
	List(ctx context.Context, filter ConsultationFilter) ([]*domain.Consultation, error)

	// UpdateDetails rewrites the booking fields only while the stored status
	// is still pending; otherwise it returns domain.ErrConsultationLocked.
	UpdateDetails(ctx context.Context, c *domain.Consultation) error
	// DeletePending removes the consultation only while it is pending.
	DeletePending(ctx context.Context, id string) error
	// UpdateStatus sets status (and feedback when non-empty) only if the
	// stored status still equals from. A lost race yields domain.ErrInvalidTransition.
	UpdateStatus(ctx context.Context, id string, from, to domain.ConsultationStatus, feedback string) error
}
