package handler

import (
	"github.com/ntdm/animal-hospital/internal/core/ports"
)

// --- Request → Service input ---

func toRegisterInput(req registerRequest) ports.RegisterInput {
	return ports.RegisterInput{
		Name:           req.Name,
		Email:          req.Email,
		Password:       req.Password,
		Phone:          req.Phone,
		Role:           req.Role,
		District:       req.District,
		Sector:         req.Sector,
		LicenseNumber:  req.LicenseNumber,
		Specialization: req.Specialization,
	}
}

func toAnimalInput(req animalRequest) ports.AnimalInput {
	return ports.AnimalInput{
		Name:        req.Name,
		Type:        req.Type,
		Breed:       req.Breed,
		District:    req.District,
		Sector:      req.Sector,
		Class:       req.Class,
		OwnerName:   req.OwnerName,
		PhoneNumber: req.PhoneNumber,
		Price:       &req.Price,
		Status:      req.Status,
		DeviceID:    req.DeviceID,
		OwnerID:     req.OwnerID,
	}
}

func toAnimalUpdateInput(req animalUpdateRequest) ports.AnimalInput {
	return ports.AnimalInput{
		Name:        req.Name,
		Type:        req.Type,
		Breed:       req.Breed,
		District:    req.District,
		Sector:      req.Sector,
		Class:       req.Class,
		OwnerName:   req.OwnerName,
		PhoneNumber: req.PhoneNumber,
		Price:       req.Price,
		Status:      req.Status,
		DeviceID:    req.DeviceID,
		OwnerID:     req.OwnerID,
	}
}

func toConsultationInput(req consultationRequest) ports.ConsultationInput {
	return ports.ConsultationInput{
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
		Service:     req.Service,
		DoctorID:    req.DoctorID,
		Date:        req.Date,
		Time:        req.Time,
		Type:        req.Type,
	}
}

func toBookingInput(req bookingRequest) (ports.ConsultationInput, ports.BookingDetails) {
	in := ports.ConsultationInput{
		FullName:    req.Name,
		PhoneNumber: req.Phone,
		Service:     req.Service,
		DoctorID:    req.DoctorID,
		Date:        req.Date,
		Time:        req.TimeSlot,
		Type:        req.Type,
	}
	extra := ports.BookingDetails{
		Email:           req.Email,
		AnimalType:      req.AnimalType,
		AnimalCount:     req.AnimalCount,
		Description:     req.Description,
		WhatsAppConfirm: req.WhatsAppConfirm,
	}
	return in, extra
}

func toContactInput(req contactRequest) ports.ContactInput {
	return ports.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
	}
}
