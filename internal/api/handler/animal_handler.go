package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/ntdm/animal-hospital/internal/api/metrics"
	"github.com/ntdm/animal-hospital/internal/core/domain"
	"github.com/ntdm/animal-hospital/internal/core/ports"
)

// AnimalHandler serves the animal registry. Farmers are scoped to their own
// animals; admins see and edit every record.
type AnimalHandler struct {
	animals  ports.AnimalService
	tracking ports.TrackingService
}

func NewAnimalHandler(animals ports.AnimalService, tracking ports.TrackingService) *AnimalHandler {
	return &AnimalHandler{animals: animals, tracking: tracking}
}

// List handles GET /farmer/animals and GET /admin/animals.
//
// @Summary      List animals
// @Tags         animals
// @Produce      json
// @Success      200  {object}  animalsResponse
// @Failure      401  {object}  errorResponse
// @Router       /farmer/animals [get]
func (h *AnimalHandler) List(c echo.Context) error {
	ownerID, err := ownerScope(c)
	if err != nil {
		return err
	}

	animals, err := h.animals.ListByOwner(c.Request().Context(), ownerID)
	if err != nil {
		return err
	}
	if animals == nil {
		animals = []*domain.Animal{}
	}
	return c.JSON(http.StatusOK, animalsResponse{Animals: animals})
}

// Create handles POST /farmer/animals.
//
// @Summary      Register an animal
// @Tags         animals
// @Accept       json
// @Produce      json
// @Param        body  body      animalRequest  true  "Animal data"
// @Success      201   {object}  animalResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /farmer/animals [post]
func (h *AnimalHandler) Create(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	var req animalRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	animal, err := h.animals.Register(c.Request().Context(), toAnimalInput(req), actor.UserID)
	if err != nil {
		return err
	}

	metrics.AnimalsRegisteredTotal.WithLabelValues(string(animal.Class)).Inc()
	return c.JSON(http.StatusCreated, animalResponse{Success: true, Animal: animal})
}

// Get handles GET /farmer/animals/:id.
//
// @Summary      Get an animal
// @Tags         animals
// @Produce      json
// @Param        id   path      string  true  "Animal ID"
// @Success      200  {object}  animalResponse
// @Failure      404  {object}  errorResponse
// @Router       /farmer/animals/{id} [get]
func (h *AnimalHandler) Get(c echo.Context) error {
	ownerID, err := ownerScope(c)
	if err != nil {
		return err
	}

	animal, err := h.animals.Get(c.Request().Context(), c.Param("id"), ownerID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, animalResponse{Success: true, Animal: animal})
}

// Update handles PUT /farmer/animals/:id and PUT /admin/animals/:id.
//
// @Summary      Update an animal
// @Tags         animals
// @Accept       json
// @Produce      json
// @Param        id    path      string               true  "Animal ID"
// @Param        body  body      animalUpdateRequest  true  "Animal data"
// @Success      200   {object}  animalResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /farmer/animals/{id} [put]
func (h *AnimalHandler) Update(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	var req animalUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	animal, err := h.animals.Update(c.Request().Context(), c.Param("id"), toAnimalUpdateInput(req), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, animalResponse{Success: true, Animal: animal})
}

// Delete handles DELETE /farmer/animals/:id and DELETE /admin/animals/:id.
//
// @Summary      Delete an animal
// @Tags         animals
// @Produce      json
// @Param        id   path      string  true  "Animal ID"
// @Success      200  {object}  successResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /farmer/animals/{id} [delete]
func (h *AnimalHandler) Delete(c echo.Context) error {
	ownerID, err := ownerScope(c)
	if err != nil {
		return err
	}

	if err := h.animals.Delete(c.Request().Context(), c.Param("id"), ownerID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

// Telemetry handles GET /farmer/animals/:id/telemetry.
//
// @Summary      Recent tracking readings of an animal
// @Tags         animals
// @Produce      json
// @Param        id       path      string  true   "Animal ID"
// @Param        results  query     int     false  "Number of readings (1-100, default 10)"
// @Success      200      {object}  domain.Telemetry
// @Failure      404      {object}  errorResponse
// @Failure      409      {object}  errorResponse
// @Failure      502      {object}  errorResponse
// @Router       /farmer/animals/{id}/telemetry [get]
func (h *AnimalHandler) Telemetry(c echo.Context) error {
	ownerID, err := ownerScope(c)
	if err != nil {
		return err
	}

	results := 0
	if raw := c.QueryParam("results"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "results must be an integer")
		}
		results = n
	}

	telemetry, err := h.tracking.Telemetry(c.Request().Context(), c.Param("id"), ownerID, results)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTelemetryUnavailable):
			metrics.TelemetryRequestsTotal.WithLabelValues("unavailable").Inc()
		case errors.Is(err, domain.ErrDeviceNotLinked):
			metrics.TelemetryRequestsTotal.WithLabelValues("not_linked").Inc()
		}
		return err
	}

	metrics.TelemetryRequestsTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusOK, telemetry)
}
