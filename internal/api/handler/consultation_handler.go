package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ntdm/animal-hospital/internal/api/metrics"
	"github.com/ntdm/animal-hospital/internal/core/domain"
	"github.com/ntdm/animal-hospital/internal/core/ports"
)

// ConsultationHandler serves the farmer, doctor, admin and public booking
// views of the consultation registry.
type ConsultationHandler struct {
	service ports.ConsultationService
}

func NewConsultationHandler(service ports.ConsultationService) *ConsultationHandler {
	return &ConsultationHandler{service: service}
}

// ListMine handles GET /farmer/consultations.
//
// @Summary      List the farmer's consultations
// @Tags         consultations
// @Produce      json
// @Success      200  {object}  consultationsResponse
// @Failure      401  {object}  errorResponse
// @Router       /farmer/consultations [get]
func (h *ConsultationHandler) ListMine(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	list, err := h.service.ListByFarmer(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, consultationsResponse{Consultations: nonNil(list)})
}

// Book handles POST /farmer/consultations.
//
// @Summary      Book a consultation
// @Tags         consultations
// @Accept       json
// @Produce      json
// @Param        body  body      consultationRequest  true  "Booking"
// @Success      201   {object}  consultationResponse
// @Failure      400   {object}  errorResponse
// @Router       /farmer/consultations [post]
func (h *ConsultationHandler) Book(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req consultationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	consultation, err := h.service.Book(c.Request().Context(), toConsultationInput(req), user.ID)
	if err != nil {
		return err
	}

	metrics.ConsultationsBookedTotal.WithLabelValues(string(consultation.Type), "farmer").Inc()
	return c.JSON(http.StatusCreated, consultationResponse{Success: true, Consultation: consultation})
}

// BookPublic handles POST /bookings.
//
// @Summary      Public booking form
// @Tags         consultations
// @Accept       json
// @Produce      json
// @Param        body  body      bookingRequest  true  "Booking"
// @Success      201   {object}  consultationResponse
// @Failure      400   {object}  errorResponse
// @Router       /bookings [post]
func (h *ConsultationHandler) BookPublic(c echo.Context) error {
	var req bookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	in, extra := toBookingInput(req)
	consultation, err := h.service.BookPublic(c.Request().Context(), in, extra)
	if err != nil {
		return err
	}

	metrics.ConsultationsBookedTotal.WithLabelValues(string(consultation.Type), "public").Inc()
	return c.JSON(http.StatusCreated, consultationResponse{Success: true, Consultation: consultation})
}

// Get handles GET /farmer/consultations/:id.
//
// @Summary      Get a consultation
// @Tags         consultations
// @Produce      json
// @Param        id   path      string  true  "Consultation ID"
// @Success      200  {object}  consultationResponse
// @Failure      404  {object}  errorResponse
// @Router       /farmer/consultations/{id} [get]
func (h *ConsultationHandler) Get(c echo.Context) error {
	farmerID, err := ownerScope(c)
	if err != nil {
		return err
	}

	consultation, err := h.service.Get(c.Request().Context(), c.Param("id"), farmerID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, consultationResponse{Success: true, Consultation: consultation})
}

// Update handles PUT /farmer/consultations/:id.
//
// @Summary      Edit a pending consultation
// @Tags         consultations
// @Accept       json
// @Produce      json
// @Param        id    path      string               true  "Consultation ID"
// @Param        body  body      consultationRequest  true  "Booking"
// @Success      200   {object}  consultationResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /farmer/consultations/{id} [put]
func (h *ConsultationHandler) Update(c echo.Context) error {
	farmerID, err := ownerScope(c)
	if err != nil {
		return err
	}

	var req consultationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	consultation, err := h.service.Update(c.Request().Context(), c.Param("id"), toConsultationInput(req), farmerID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, consultationResponse{Success: true, Consultation: consultation})
}

// Delete handles DELETE /farmer/consultations/:id.
//
// @Summary      Cancel a pending consultation
// @Tags         consultations
// @Produce      json
// @Param        id   path      string  true  "Consultation ID"
// @Success      200  {object}  successResponse
// @Failure      403  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /farmer/consultations/{id} [delete]
func (h *ConsultationHandler) Delete(c echo.Context) error {
	farmerID, err := ownerScope(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), c.Param("id"), farmerID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

// ListAssigned handles GET /veterinary/consultations.
//
// @Summary      List consultations assigned to the doctor
// @Tags         consultations
// @Produce      json
// @Success      200  {object}  consultationsResponse
// @Router       /veterinary/consultations [get]
func (h *ConsultationHandler) ListAssigned(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	list, err := h.service.ListByDoctor(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, consultationsResponse{Consultations: nonNil(list)})
}

// ListAll handles GET /admin/consultations.
//
// @Summary      List every consultation
// @Tags         consultations
// @Produce      json
// @Success      200  {object}  consultationsResponse
// @Router       /admin/consultations [get]
func (h *ConsultationHandler) ListAll(c echo.Context) error {
	list, err := h.service.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, consultationsResponse{Consultations: nonNil(list)})
}

// UpdateStatus handles PATCH /veterinary/consultations/:id/status and
// PATCH /admin/consultations/:id/status.
//
// @Summary      Accept, reject or complete a consultation
// @Tags         consultations
// @Accept       json
// @Produce      json
// @Param        id    path      string         true  "Consultation ID"
// @Param        body  body      statusRequest  true  "New status"
// @Success      200   {object}  consultationResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /veterinary/consultations/{id}/status [patch]
func (h *ConsultationHandler) UpdateStatus(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	consultation, err := h.service.UpdateStatus(c.Request().Context(), c.Param("id"), req.Status, req.Feedback, actor)
	if err != nil {
		return err
	}

	metrics.ConsultationStatusUpdatesTotal.WithLabelValues(string(consultation.Status)).Inc()
	return c.JSON(http.StatusOK, consultationResponse{Success: true, Consultation: consultation})
}

func nonNil(list []*domain.Consultation) []*domain.Consultation {
	if list == nil {
		return []*domain.Consultation{}
	}
	return list
}
