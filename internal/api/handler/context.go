package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/ntdm/animal-hospital/internal/api/middleware"
	"github.com/ntdm/animal-hospital/internal/core/domain"
	"github.com/ntdm/animal-hospital/internal/core/ports"
)

// currentUser returns the user injected by the Session middleware. A missing
// user means the route was mounted without the gate.
func currentUser(c echo.Context) (*domain.User, error) {
	user, ok := c.Get(middleware.ContextUser).(*domain.User)
	if !ok || user == nil || user.ID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return user, nil
}

func currentActor(c echo.Context) (ports.Actor, error) {
	user, err := currentUser(c)
	if err != nil {
		return ports.Actor{}, err
	}
	return ports.Actor{UserID: user.ID, Role: user.Role}, nil
}

// ownerScope is the owner filter for the caller: admins see every record.
func ownerScope(c echo.Context) (string, error) {
	actor, err := currentActor(c)
	if err != nil {
		return "", err
	}
	if actor.IsAdmin() {
		return "", nil
	}
	return actor.UserID, nil
}
