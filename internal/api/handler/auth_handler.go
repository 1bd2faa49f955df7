package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/Akhilesh53/authcore/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	logger      zerolog.Logger
}

func NewAuthHandler(authService ports.AuthService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, logger: logger}
}

// Register creates a new user account. No session is established; the
// client is expected to follow up with a login.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  registerResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	id, err := h.authService.Register(c.Request().Context(), req.Email, req.Password, req.DisplayName)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, registerResponse{ID: id})
}

// Login authenticates a user and returns a session token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  sessionResponse
// @Failure      401   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionResponse{Token: token})
}

// Logout destroys the bearer session. Always succeeds, even without one.
//
// @Summary      Logout
// @Tags         auth
// @Success      204
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.authService.Logout(c.Request().Context(), bearerToken(c)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ChangePassword replaces the authenticated caller's password.
//
// @Summary      Change password
// @Tags         auth
// @Accept       json
// @Param        body  body  changePasswordRequest  true  "New password"
// @Success      204
// @Failure      401   {object}  map[string]string
// @Router       /auth/password/change [post]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.authService.ChangePassword(c.Request().Context(), bearerToken(c), req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ForgotPassword starts the reset flow. The response is identical for known
// and unknown emails, and infrastructure failures are logged rather than
// surfaced, so nothing here can be used to enumerate accounts.
//
// @Summary      Request a password reset
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      forgotPasswordRequest  true  "Account email"
// @Success      200   {object}  messageResponse
// @Router       /auth/forgot [post]
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.authService.RequestReset(c.Request().Context(), req.Email); err != nil {
		h.logger.Error().Err(err).Msg("reset request failed")
	}
	return c.JSON(http.StatusOK, messageResponse{
		Message: "If that account exists, an email has been sent with further instructions.",
	})
}

// ResetPassword completes the reset flow and logs the user in.
//
// @Summary      Complete a password reset
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      resetPasswordRequest  true  "Token and new password"
// @Success      200   {object}  sessionResponse
// @Failure      422   {object}  map[string]string
// @Router       /auth/reset [post]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, err := h.authService.CompleteReset(c.Request().Context(), req.Token, req.Password, req.ConfirmPassword)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionResponse{Token: token})
}

// Me returns the authenticated caller's own record.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200   {object}  domain.User
// @Failure      401   {object}  map[string]string
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	user, err := h.authService.CurrentUser(c.Request().Context(), bearerToken(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// bearerToken extracts the opaque session token from the Authorization
// header. Returns "" when absent or malformed; the service treats that as
// anonymous.
func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
