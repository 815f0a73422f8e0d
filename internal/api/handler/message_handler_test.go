package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/ntdm/animal-hospital/internal/core/domain"
	"github.com/ntdm/animal-hospital/internal/core/ports"
)

func TestMessageHandler_Send(t *testing.T) {
	svc := &stubMessageService{
		sendFn: func(_ context.Context, sender ports.Actor, recipientID, content string) (*domain.Message, error) {
			if sender.UserID != farmer.ID || sender.Role != domain.RoleFarmer || recipientID != doctor.ID {
				t.Fatalf("unexpected send: %+v -> %s", sender, recipientID)
			}
			return &domain.Message{ID: "m1", SenderID: sender.UserID, RecipientID: recipientID, Content: content}, nil
		},
	}
	h := NewMessageHandler(svc)

	c, rec := newContext(http.MethodPost, "/farmer/messages",
		`{"recipient_id":"doctor-1","content":"Bella stopped eating"}`, farmer)
	if err := h.Send(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestMessageHandler_Send_RequiresContent(t *testing.T) {
	h := NewMessageHandler(&stubMessageService{})

	c, _ := newContext(http.MethodPost, "/veterinary/messages", `{"recipient_id":"farmer-1"}`, doctor)

	var he *echo.HTTPError
	if err := h.Send(c); !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestMessageHandler_List(t *testing.T) {
	svc := &stubMessageService{}
	h := NewMessageHandler(svc)

	c, rec := newContext(http.MethodGet, "/veterinary/messages", "", doctor)
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if svc.listed != doctor.ID {
		t.Fatalf("expected listing for %s, got %q", doctor.ID, svc.listed)
	}
	if got := rec.Body.String(); got != "{\"messages\":[]}\n" {
		t.Fatalf("unexpected body %q", got)
	}
}

func TestMessageHandler_MarkRead(t *testing.T) {
	svc := &stubMessageService{}
	h := NewMessageHandler(svc)

	c, rec := newContext(http.MethodPatch, "/farmer/messages/m1/read", "", farmer)
	c.SetParamNames("id")
	c.SetParamValues("m1")
	if err := h.MarkRead(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if svc.readBy != farmer.ID || rec.Code != http.StatusOK {
		t.Fatalf("unexpected mark read: by=%q code=%d", svc.readBy, rec.Code)
	}

	c, _ = newContext(http.MethodPatch, "/farmer/messages/other/read", "", farmer)
	c.SetParamNames("id")
	c.SetParamValues("other")
	if err := h.MarkRead(c); !errors.Is(err, domain.ErrMessageNotFound) {
		t.Fatalf("expected ErrMessageNotFound, got %v", err)
	}
}

func TestMessageHandler_Contact(t *testing.T) {
	svc := &stubMessageService{
		contactFn: func(_ context.Context, in ports.ContactInput) (*domain.ContactSubmission, error) {
			if in.Name != "Alice" || in.Email != "alice@farm.rw" || in.Message == "" {
				t.Fatalf("unexpected contact input: %+v", in)
			}
			return &domain.ContactSubmission{ID: "ct1", Name: in.Name, Email: in.Email, Message: in.Message}, nil
		},
	}
	h := NewMessageHandler(svc)

	c, rec := newContext(http.MethodPost, "/contact",
		`{"name":"Alice","email":"alice@farm.rw","message":"Do you vaccinate goats?"}`, nil)
	if err := h.Contact(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestMessageHandler_Contact_InvalidEmail(t *testing.T) {
	h := NewMessageHandler(&stubMessageService{})

	c, _ := newContext(http.MethodPost, "/contact", `{"name":"Alice","email":"not-an-email","message":"hi"}`, nil)

	var he *echo.HTTPError
	if err := h.Contact(c); !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}
