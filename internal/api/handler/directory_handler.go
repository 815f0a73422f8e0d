package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ntdm/animal-hospital/internal/core/domain"
	"github.com/ntdm/animal-hospital/internal/core/ports"
)

// DirectoryHandler serves the read-only lists the booking forms need.
type DirectoryHandler struct {
	users ports.UserService
}

func NewDirectoryHandler(users ports.UserService) *DirectoryHandler {
	return &DirectoryHandler{users: users}
}

// Services handles GET /services.
//
// @Summary      Service catalog
// @Tags         directory
// @Produce      json
// @Success      200  {object}  servicesResponse
// @Router       /services [get]
func (h *DirectoryHandler) Services(c echo.Context) error {
	return c.JSON(http.StatusOK, servicesResponse{Services: domain.ServiceCatalog()})
}

// Doctors handles GET /doctors.
//
// @Summary      List doctors
// @Tags         directory
// @Produce      json
// @Success      200  {object}  doctorsResponse
// @Failure      401  {object}  errorResponse
// @Router       /doctors [get]
func (h *DirectoryHandler) Doctors(c echo.Context) error {
	doctors, err := h.users.ListDoctors(c.Request().Context())
	if err != nil {
		return err
	}
	if doctors == nil {
		doctors = []domain.Doctor{}
	}
	return c.JSON(http.StatusOK, doctorsResponse{Doctors: doctors})
}
