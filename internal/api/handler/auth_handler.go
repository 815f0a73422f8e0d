package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ntdm/animal-hospital/internal/api/metrics"
	"github.com/ntdm/animal-hospital/internal/api/middleware"
	"github.com/ntdm/animal-hospital/internal/core/domain"
	"github.com/ntdm/animal-hospital/internal/core/ports"
)

// AuthHandler handles sign-up, login, logout and the current-user profile.
type AuthHandler struct {
	auth   ports.AuthService
	users  ports.UserService
	cookie middleware.SessionCookie
}

func NewAuthHandler(auth ports.AuthService, users ports.UserService, cookie middleware.SessionCookie) *AuthHandler {
	return &AuthHandler{auth: auth, users: users, cookie: cookie}
}

// Register handles POST /auth/register.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Account data"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.auth.Register(c.Request().Context(), toRegisterInput(req))
	if err != nil {
		return err
	}

	metrics.UsersRegisteredTotal.WithLabelValues(user.Role).Inc()
	return c.JSON(http.StatusCreated, userResponse{Success: true, User: user})
}

// Login handles POST /auth/login.
//
// @Summary      Log in and receive a session cookie
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		} else {
			metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		}
		return err
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	h.cookie.Set(c, res.Session.ID)
	return c.JSON(http.StatusOK, loginResponse{
		Success:  true,
		User:     res.User,
		Redirect: res.RedirectPath,
	})
}

// Logout handles POST /auth/logout. It always succeeds.
//
// @Summary      Log out
// @Tags         auth
// @Produce      json
// @Success      200  {object}  successResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if id := h.cookie.Read(c); id != "" {
		h.auth.Logout(c.Request().Context(), id)
	}
	h.cookie.Clear(c)
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

// Me handles GET /auth/me.
//
// @Summary      Current user profile
// @Tags         auth
// @Produce      json
// @Success      200  {object}  profileResponse
// @Failure      401  {object}  errorResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	profile, err := h.users.Profile(c.Request().Context(), user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profileResponse{User: profile.User, AnimalIDs: profile.AnimalIDs})
}
