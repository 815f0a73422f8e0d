package domain

import (
	"strings"
	"time"
)

const (
	RoleFarmer = "farmer"
	RoleDoctor = "doctor"
	RoleAdmin  = "admin"
)

// ValidRole reports whether role is one of the known account roles.
func ValidRole(role string) bool {
	switch role {
	case RoleFarmer, RoleDoctor, RoleAdmin:
		return true
	}
	return false
}

// NormalizeEmail is the stored form of an account email. Lookups and the
// unique index both depend on it.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// LandingPath is where a freshly logged-in user is sent.
func LandingPath(role string) string {
	switch role {
	case RoleDoctor:
		return "/veterinary"
	case RoleFarmer:
		return "/farmer"
	default:
		return "/"
	}
}

// Availability is a doctor's weekly consultation window.
type Availability struct {
	Days  []string `json:"days"`
	Start string   `json:"start"`
	End   string   `json:"end"`
}

// DefaultAvailability is assigned to doctors at registration.
func DefaultAvailability() Availability {
	return Availability{
		Days:  []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"},
		Start: "08:00",
		End:   "17:00",
	}
}

// User models a farmer, doctor or administrator account.
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Phone        string `json:"phone"`
	Role         string `json:"role"`

	// farmer
	District string `json:"district,omitempty"`
	Sector   string `json:"sector,omitempty"`

	// doctor
	LicenseNumber  string        `json:"license_number,omitempty"`
	Specialization string        `json:"specialization,omitempty"`
	Availability   *Availability `json:"availability,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Doctor is the public directory entry shown on the booking form.
type Doctor struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Specialization string `json:"specialization"`
	Phone          string `json:"phone"`
}
