package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/ntdm/animal-hospital/internal/core/domain"
	"github.com/ntdm/animal-hospital/internal/core/ports"
)

func TestAnimalHandler_List_ScopesFarmer(t *testing.T) {
	animals := &stubAnimalService{animals: []*domain.Animal{{ID: "a1", OwnerID: farmer.ID}}}
	h := NewAnimalHandler(animals, &stubTrackingService{})

	c, rec := newContext(http.MethodGet, "/farmer/animals", "", farmer)
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if animals.lastOwner != farmer.ID {
		t.Fatalf("expected scope %q, got %q", farmer.ID, animals.lastOwner)
	}

	var resp animalsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Animals) != 1 {
		t.Fatalf("expected 1 animal, got %d", len(resp.Animals))
	}
}

func TestAnimalHandler_List_AdminUnscoped(t *testing.T) {
	animals := &stubAnimalService{lastOwner: "unset"}
	h := NewAnimalHandler(animals, &stubTrackingService{})

	c, rec := newContext(http.MethodGet, "/admin/animals", "", admin)
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if animals.lastOwner != "" {
		t.Fatalf("expected unscoped list, got %q", animals.lastOwner)
	}
	if got := rec.Body.String(); got != "{\"animals\":[]}\n" {
		t.Fatalf("unexpected body %q", got)
	}
}

func TestAnimalHandler_Create(t *testing.T) {
	animals := &stubAnimalService{
		registerFn: func(_ context.Context, in ports.AnimalInput, ownerID string) (*domain.Animal, error) {
			if ownerID != farmer.ID || in.Name != "Bella" || in.Price == nil || *in.Price != 350000 {
				t.Fatalf("unexpected register call: %+v owner=%s", in, ownerID)
			}
			return &domain.Animal{ID: "a1", Name: in.Name, Class: domain.ClassDairy, OwnerID: ownerID}, nil
		},
	}
	h := NewAnimalHandler(animals, &stubTrackingService{})

	c, rec := newContext(http.MethodPost, "/farmer/animals",
		`{"name":"Bella","type":"Cow","class":"dairy","price":350000}`, farmer)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestAnimalHandler_Create_NegativePrice(t *testing.T) {
	h := NewAnimalHandler(&stubAnimalService{}, &stubTrackingService{})

	c, _ := newContext(http.MethodPost, "/farmer/animals",
		`{"name":"Bella","type":"Cow","class":"dairy","price":-1}`, farmer)

	var he *echo.HTTPError
	if err := h.Create(c); !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAnimalHandler_Update_PassesActor(t *testing.T) {
	animals := &stubAnimalService{
		updateFn: func(_ context.Context, id string, in ports.AnimalInput, actor ports.Actor) (*domain.Animal, error) {
			if id != "a1" || !actor.IsAdmin() || in.OwnerID != "farmer-2" {
				t.Fatalf("unexpected update: id=%s actor=%+v in=%+v", id, actor, in)
			}
			return &domain.Animal{ID: id, OwnerID: in.OwnerID}, nil
		},
	}
	h := NewAnimalHandler(animals, &stubTrackingService{})

	c, rec := newContext(http.MethodPut, "/admin/animals/a1", `{"name":"Bella","owner_id":"farmer-2"}`, admin)
	c.SetParamNames("id")
	c.SetParamValues("a1")
	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAnimalHandler_Update_OmittedPrice(t *testing.T) {
	var prices []*float64
	animals := &stubAnimalService{
		updateFn: func(_ context.Context, id string, in ports.AnimalInput, _ ports.Actor) (*domain.Animal, error) {
			prices = append(prices, in.Price)
			return &domain.Animal{ID: id}, nil
		},
	}
	h := NewAnimalHandler(animals, &stubTrackingService{})

	for _, body := range []string{`{"name":"Bella"}`, `{"name":"Bella","price":0}`} {
		c, _ := newContext(http.MethodPut, "/farmer/animals/a1", body, farmer)
		c.SetParamNames("id")
		c.SetParamValues("a1")
		if err := h.Update(c); err != nil {
			t.Fatalf("handler error for %s: %v", body, err)
		}
	}
	if len(prices) != 2 {
		t.Fatalf("expected 2 update calls, got %d", len(prices))
	}
	if prices[0] != nil {
		t.Fatalf("omitted price should stay nil, got %v", *prices[0])
	}
	if prices[1] == nil || *prices[1] != 0 {
		t.Fatalf("explicit zero price should be passed through, got %v", prices[1])
	}
}

func TestAnimalHandler_Update_NegativePrice(t *testing.T) {
	h := NewAnimalHandler(&stubAnimalService{}, &stubTrackingService{})

	c, _ := newContext(http.MethodPut, "/farmer/animals/a1", `{"name":"Bella","price":-5}`, farmer)
	c.SetParamNames("id")
	c.SetParamValues("a1")

	var he *echo.HTTPError
	if err := h.Update(c); !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAnimalHandler_Get_NotFound(t *testing.T) {
	h := NewAnimalHandler(&stubAnimalService{}, &stubTrackingService{})

	c, _ := newContext(http.MethodGet, "/farmer/animals/missing", "", farmer)
	c.SetParamNames("id")
	c.SetParamValues("missing")
	if err := h.Get(c); !errors.Is(err, domain.ErrAnimalNotFound) {
		t.Fatalf("expected ErrAnimalNotFound, got %v", err)
	}
}

func TestAnimalHandler_Delete_Scoped(t *testing.T) {
	animals := &stubAnimalService{}
	h := NewAnimalHandler(animals, &stubTrackingService{})

	c, rec := newContext(http.MethodDelete, "/farmer/animals/a1", "", farmer)
	c.SetParamNames("id")
	c.SetParamValues("a1")
	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if animals.lastOwner != farmer.ID || rec.Code != http.StatusOK {
		t.Fatalf("unexpected delete: owner=%q code=%d", animals.lastOwner, rec.Code)
	}
}

func TestAnimalHandler_Telemetry(t *testing.T) {
	tracking := &stubTrackingService{
		telemetryFn: func(_ context.Context, animalID, ownerID string, results int) (*domain.Telemetry, error) {
			if animalID != "a1" || ownerID != farmer.ID || results != 5 {
				t.Fatalf("unexpected call: %s %s %d", animalID, ownerID, results)
			}
			return &domain.Telemetry{AnimalID: animalID, DeviceID: "123"}, nil
		},
	}
	h := NewAnimalHandler(&stubAnimalService{}, tracking)

	c, rec := newContext(http.MethodGet, "/farmer/animals/a1/telemetry?results=5", "", farmer)
	c.SetParamNames("id")
	c.SetParamValues("a1")
	if err := h.Telemetry(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAnimalHandler_Telemetry_BadResults(t *testing.T) {
	h := NewAnimalHandler(&stubAnimalService{}, &stubTrackingService{})

	c, _ := newContext(http.MethodGet, "/farmer/animals/a1/telemetry?results=many", "", farmer)
	c.SetParamNames("id")
	c.SetParamValues("a1")

	var he *echo.HTTPError
	if err := h.Telemetry(c); !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAnimalHandler_Telemetry_NotLinked(t *testing.T) {
	tracking := &stubTrackingService{
		telemetryFn: func(context.Context, string, string, int) (*domain.Telemetry, error) {
			return nil, domain.ErrDeviceNotLinked
		},
	}
	h := NewAnimalHandler(&stubAnimalService{}, tracking)

	c, _ := newContext(http.MethodGet, "/farmer/animals/a1/telemetry", "", farmer)
	c.SetParamNames("id")
	c.SetParamValues("a1")
	if err := h.Telemetry(c); !errors.Is(err, domain.ErrDeviceNotLinked) {
		t.Fatalf("expected ErrDeviceNotLinked, got %v", err)
	}
}
