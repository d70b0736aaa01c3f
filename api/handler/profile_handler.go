package handler

import (
	"net/http"

	"backoffice/api/middleware"
	"backoffice/internal/dto"
	"backoffice/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// ProfileHandler serves the signed-in user's own profile, password and
// two-factor settings.
type ProfileHandler struct {
	Users    *service.UserService
	Auth     *service.AuthService
	Validate *validator.Validate
}

func NewProfileHandler(users *service.UserService, auth *service.AuthService, validate *validator.Validate) *ProfileHandler {
	return &ProfileHandler{Users: users, Auth: auth, Validate: validate}
}

func (h *ProfileHandler) Show(c echo.Context) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return unauthorized()
	}
	enabled, err := h.Auth.MFAStatus(c.Request().Context(), user.ID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.ProfileResponse{
		User:       dto.UserResponseFromEntity(user),
		MFAEnabled: enabled,
	})
}

func (h *ProfileHandler) Update(c echo.Context) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return unauthorized()
	}
	var req dto.ProfileRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if valid, err := validate(c, h.Validate, req); !valid {
		return err
	}
	updated, err := h.Users.UpdateProfile(c.Request().Context(), user, service.ProfileInput{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.UserResponseFromEntity(updated))
}

func (h *ProfileHandler) ChangePassword(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return unauthorized()
	}
	user, _ := middleware.UserFromContext(c)
	sessionID, ok := middleware.SessionIDFromContext(c)
	if !ok {
		return unauthorized()
	}
	var req dto.ChangePasswordRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if valid, err := validate(c, h.Validate, req); !valid {
		return err
	}
	err := h.Auth.ChangePassword(c.Request().Context(), actor, user, sessionID, service.ChangePasswordInput{
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.Password,
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ProfileHandler) EnableMFA(c echo.Context) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return unauthorized()
	}
	url, err := h.Auth.EnableMFA(c.Request().Context(), user)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.MFAEnableResponse{OTPAuthURL: url})
}

func (h *ProfileHandler) ConfirmMFA(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return unauthorized()
	}
	var req dto.MFAConfirmRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if valid, err := validate(c, h.Validate, req); !valid {
		return err
	}
	if err := h.Auth.ConfirmMFA(c.Request().Context(), actor, actor.UserID, req.Code); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ProfileHandler) DisableMFA(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return unauthorized()
	}
	if err := h.Auth.DisableMFA(c.Request().Context(), actor, actor.UserID); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
