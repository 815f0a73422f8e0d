package domain

import (
	"strings"
	"time"
)

// ConsultationStatus represents the lifecycle state of a consultation.
type ConsultationStatus string

const (
	StatusPending   ConsultationStatus = "pending"
	StatusAccepted  ConsultationStatus = "accepted"
	StatusRejected  ConsultationStatus = "rejected"
	StatusCompleted ConsultationStatus = "completed"
)

// validTransitions defines the allowed state machine transitions.
var validTransitions = map[ConsultationStatus][]ConsultationStatus{
	StatusPending:  {StatusAccepted, StatusRejected},
	StatusAccepted: {StatusCompleted},
}

// ParseConsultationStatus maps a stored or submitted status of any casing to
// its enum value. Older records were written as "Pending" or "Accepted".
func ParseConsultationStatus(s string) (ConsultationStatus, error) {
	st := ConsultationStatus(strings.ToLower(strings.TrimSpace(s)))
	switch st {
	case StatusPending, StatusAccepted, StatusRejected, StatusCompleted:
		return st, nil
	}
	return "", ErrInvalidInput
}

// CanTransitionTo reports whether a transition from current status to next is valid.
// Re-applying the current status is allowed so a doctor can amend feedback.
func (s ConsultationStatus) CanTransitionTo(next ConsultationStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition is defined.
func (s ConsultationStatus) Terminal() bool {
	return len(validTransitions[s]) == 0
}

// ConsultationType is how the consultation takes place.
type ConsultationType string

const (
	TypeVirtual  ConsultationType = "Virtual"
	TypeInPerson ConsultationType = "In-Person"
)

// ParseConsultationType accepts "virtual", "in-person" and "in person" in any casing.
func ParseConsultationType(s string) (ConsultationType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "virtual":
		return TypeVirtual, nil
	case "in-person", "in person", "inperson":
		return TypeInPerson, nil
	}
	return "", ErrInvalidInput
}

// Consultation is a booked request for veterinary service.
type Consultation struct {
	ID          string             `json:"id"`
	FullName    string             `json:"full_name"`
	PhoneNumber string             `json:"phone_number"`
	Service     string             `json:"service"`
	DoctorID    string             `json:"doctor_id"`
	Date        string             `json:"date"`
	Time        string             `json:"time"`
	Type        ConsultationType   `json:"type"`
	Status      ConsultationStatus `json:"status"`
	Feedback    string             `json:"feedback,omitempty"`
	// FarmerID is empty for bookings made through the public booking form.
	FarmerID  string    `json:"farmer_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Editable reports whether the farmer may still edit or delete the booking.
func (c *Consultation) Editable() bool {
	return c.Status == StatusPending
}

// OwnedBy reports whether farmerID booked the consultation.
func (c *Consultation) OwnedBy(farmerID string) bool {
	return farmerID != "" && c.FarmerID == farmerID
}
