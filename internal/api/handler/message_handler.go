package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ntdm/animal-hospital/internal/api/metrics"
	"github.com/ntdm/animal-hospital/internal/core/domain"
	"github.com/ntdm/animal-hospital/internal/core/ports"
)

// MessageHandler serves direct messages and the public contact form.
type MessageHandler struct {
	service ports.MessageService
}

func NewMessageHandler(service ports.MessageService) *MessageHandler {
	return &MessageHandler{service: service}
}

// List handles GET /farmer/messages and GET /veterinary/messages.
//
// @Summary      List sent and received messages
// @Tags         messages
// @Produce      json
// @Success      200  {object}  messagesResponse
// @Failure      401  {object}  errorResponse
// @Router       /farmer/messages [get]
// @Router       /veterinary/messages [get]
func (h *MessageHandler) List(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	list, err := h.service.Conversation(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	if list == nil {
		list = []*domain.Message{}
	}
	return c.JSON(http.StatusOK, messagesResponse{Messages: list})
}

// Send handles POST /farmer/messages and POST /veterinary/messages.
//
// @Summary      Send a message
// @Tags         messages
// @Accept       json
// @Produce      json
// @Param        body  body      messageRequest  true  "Message"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /farmer/messages [post]
// @Router       /veterinary/messages [post]
func (h *MessageHandler) Send(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	var req messageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	msg, err := h.service.Send(c.Request().Context(), actor, req.RecipientID, req.Content)
	if err != nil {
		return err
	}

	metrics.MessagesSentTotal.WithLabelValues(actor.Role).Inc()
	return c.JSON(http.StatusCreated, messageResponse{Success: true, Message: msg})
}

// MarkRead handles PATCH /farmer/messages/:id/read and PATCH /veterinary/messages/:id/read.
//
// @Summary      Mark a received message as read
// @Tags         messages
// @Produce      json
// @Param        id   path      string  true  "Message ID"
// @Success      200  {object}  successResponse
// @Failure      404  {object}  errorResponse
// @Router       /farmer/messages/{id}/read [patch]
// @Router       /veterinary/messages/{id}/read [patch]
func (h *MessageHandler) MarkRead(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.service.MarkRead(c.Request().Context(), c.Param("id"), user.ID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

// Contact handles POST /contact.
//
// @Summary      Public contact form
// @Tags         messages
// @Accept       json
// @Produce      json
// @Param        body  body      contactRequest  true  "Contact form"
// @Success      201   {object}  contactResponse
// @Failure      400   {object}  errorResponse
// @Router       /contact [post]
func (h *MessageHandler) Contact(c echo.Context) error {
	var req contactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	contact, err := h.service.SubmitContact(c.Request().Context(), toContactInput(req))
	if err != nil {
		return err
	}

	metrics.ContactSubmissionsTotal.Inc()
	return c.JSON(http.StatusCreated, contactResponse{Success: true, Contact: contact})
}

// ListContacts handles GET /admin/contacts.
//
// @Summary      List contact form submissions
// @Tags         messages
// @Produce      json
// @Success      200  {object}  contactsResponse
// @Failure      403  {object}  errorResponse
// @Router       /admin/contacts [get]
func (h *MessageHandler) ListContacts(c echo.Context) error {
	list, err := h.service.ListContacts(c.Request().Context())
	if err != nil {
		return err
	}
	if list == nil {
		list = []*domain.ContactSubmission{}
	}
	return c.JSON(http.StatusOK, contactsResponse{Contacts: list})
}
