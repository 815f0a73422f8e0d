package handler

import (
	"github.com/ntdm/animal-hospital/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type successResponse struct {
	Success bool `json:"success"`
}

// --- Auth ---

type registerRequest struct {
	Name           string `json:"name"            validate:"required"`
	Email          string `json:"email"           validate:"required,email"`
	Password       string `json:"password"        validate:"required,min=6"`
	Phone          string `json:"phone"`
	Role           string `json:"role"            validate:"required,oneof=farmer doctor admin"`
	District       string `json:"district"`
	Sector         string `json:"sector"`
	LicenseNumber  string `json:"license_number"`
	Specialization string `json:"specialization"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	Success bool         `json:"success"`
	User    *domain.User `json:"user"`
}

type loginResponse struct {
	Success  bool         `json:"success"`
	User     *domain.User `json:"user"`
	Redirect string       `json:"redirect"`
}

type profileResponse struct {
	User      *domain.User `json:"user"`
	AnimalIDs []string     `json:"animal_ids,omitempty"`
}

// --- Directory ---

type doctorsResponse struct {
	Doctors []domain.Doctor `json:"doctors"`
}

type servicesResponse struct {
	Services []domain.ServiceOffering `json:"services"`
}

// --- Animals ---

type animalRequest struct {
	Name        string  `json:"name"         validate:"required"`
	Type        string  `json:"type"         validate:"required"`
	Breed       string  `json:"breed"`
	District    string  `json:"district"`
	Sector      string  `json:"sector"`
	Class       string  `json:"class"        validate:"required"`
	OwnerName   string  `json:"owner_name"`
	PhoneNumber string  `json:"phone_number"`
	Price       float64 `json:"price"        validate:"gte=0"`
	Status      string  `json:"status"`
	DeviceID    string  `json:"device_id"`
	OwnerID     string  `json:"owner_id"`
}

// animalUpdateRequest keeps class and price optional so a partial form keeps
// the stored values.
type animalUpdateRequest struct {
	Name        string   `json:"name"         validate:"required"`
	Type        string   `json:"type"`
	Breed       string   `json:"breed"`
	District    string   `json:"district"`
	Sector      string   `json:"sector"`
	Class       string   `json:"class"`
	OwnerName   string   `json:"owner_name"`
	PhoneNumber string   `json:"phone_number"`
	Price       *float64 `json:"price"        validate:"omitempty,gte=0"`
	Status      string   `json:"status"`
	DeviceID    string   `json:"device_id"`
	OwnerID     string   `json:"owner_id"`
}

type animalResponse struct {
	Success bool           `json:"success"`
	Animal  *domain.Animal `json:"animal"`
}

type animalsResponse struct {
	Animals []*domain.Animal `json:"animals"`
}

// --- Consultations ---

type consultationRequest struct {
	FullName    string `json:"full_name"    validate:"required"`
	PhoneNumber string `json:"phone_number" validate:"required"`
	Service     string `json:"service"      validate:"required"`
	DoctorID    string `json:"doctor_id"    validate:"required"`
	Date        string `json:"date"         validate:"required,datetime=2006-01-02"`
	Time        string `json:"time"         validate:"required,datetime=15:04"`
	Type        string `json:"type"         validate:"required"`
}

// bookingRequest is the public booking form.
type bookingRequest struct {
	Name            string `json:"name"             validate:"required"`
	Phone           string `json:"phone"            validate:"required"`
	Email           string `json:"email"            validate:"omitempty,email"`
	Service         string `json:"service"          validate:"required"`
	AnimalType      string `json:"animal_type"      validate:"required"`
	AnimalCount     string `json:"animal_count"`
	Description     string `json:"description"`
	Date            string `json:"date"             validate:"required,datetime=2006-01-02"`
	TimeSlot        string `json:"time_slot"        validate:"required"`
	WhatsAppConfirm bool   `json:"whatsapp_confirm"`
	DoctorID        string `json:"doctor_id"`
	Type            string `json:"type"`
}

type statusRequest struct {
	Status   string `json:"status"   validate:"required"`
	Feedback string `json:"feedback"`
}

type consultationResponse struct {
	Success      bool                 `json:"success"`
	Consultation *domain.Consultation `json:"consultation"`
}

type consultationsResponse struct {
	Consultations []*domain.Consultation `json:"consultations"`
}

// --- Messages ---

type messageRequest struct {
	RecipientID string `json:"recipient_id" validate:"required"`
	Content     string `json:"content"      validate:"required,max=2000"`
}

type messageResponse struct {
	Success bool            `json:"success"`
	Message *domain.Message `json:"message"`
}

type messagesResponse struct {
	Messages []*domain.Message `json:"messages"`
}

type contactRequest struct {
	Name    string `json:"name"    validate:"required"`
	Email   string `json:"email"   validate:"required,email"`
	Phone   string `json:"phone"`
	Message string `json:"message" validate:"required,max=2000"`
}

type contactResponse struct {
	Success bool                      `json:"success"`
	Contact *domain.ContactSubmission `json:"contact"`
}

type contactsResponse struct {
	Contacts []*domain.ContactSubmission `json:"contacts"`
}
