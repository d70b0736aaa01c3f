package handler

import (
	"net/http"

	"backoffice/api/middleware"
	"backoffice/internal/dto"
	"backoffice/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// AuthHandler serves panel login, logout and the lockscreen.
type AuthHandler struct {
	Service  *service.AuthService
	Validate *validator.Validate
}

func NewAuthHandler(svc *service.AuthService, validate *validator.Validate) *AuthHandler {
	return &AuthHandler{Service: svc, Validate: validate}
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if valid, err := validate(c, h.Validate, req); !valid {
		return err
	}
	result, err := h.Service.Login(c.Request().Context(), service.LoginInput{
		Email:     req.Email,
		Password:  req.Password,
		IPAddress: stringPtr(c.RealIP()),
		UserAgent: stringPtr(c.Request().UserAgent()),
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, mapLoginResponse(result))
}

func (h *AuthHandler) LoginWithMFA(c echo.Context) error {
	var req dto.LoginMFARequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if valid, err := validate(c, h.Validate, req); !valid {
		return err
	}
	result, err := h.Service.LoginWithMFA(c.Request().Context(), service.LoginMFAInput{
		MFAToken:  req.MFAToken,
		Code:      req.Code,
		IPAddress: stringPtr(c.RealIP()),
		UserAgent: stringPtr(c.Request().UserAgent()),
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, mapLoginResponse(result))
}

func (h *AuthHandler) Logout(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return unauthorized()
	}
	sessionID, ok := middleware.SessionIDFromContext(c)
	if !ok {
		return unauthorized()
	}
	if err := h.Service.Logout(c.Request().Context(), actor, sessionID); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AuthHandler) Lock(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return unauthorized()
	}
	sessionID, ok := middleware.SessionIDFromContext(c)
	if !ok {
		return unauthorized()
	}
	if err := h.Service.Lock(c.Request().Context(), actor, sessionID); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AuthHandler) Unlock(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return unauthorized()
	}
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return unauthorized()
	}
	sessionID, ok := middleware.SessionIDFromContext(c)
	if !ok {
		return unauthorized()
	}
	var req dto.UnlockRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if valid, err := validate(c, h.Validate, req); !valid {
		return err
	}
	if err := h.Service.Unlock(c.Request().Context(), actor, user, sessionID, req.Password); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func mapLoginResponse(result *service.LoginResult) *dto.LoginResponse {
	if result == nil {
		return &dto.LoginResponse{}
	}
	return &dto.LoginResponse{
		AccessToken:       result.AccessToken,
		ExpiresIn:         result.ExpiresIn,
		MFARequired:       result.MFARequired,
		MFAToken:          result.MFAToken,
		MFATokenExpiresIn: result.MFATokenExpiresIn,
	}
}
