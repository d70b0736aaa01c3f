package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"backoffice/api/middleware"
	"backoffice/internal/form"
	"backoffice/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	defaultPageSize = 25
	maxPageSize     = 100
)

// routePaths resolves named panel routes to their URL.
var routePaths = map[string]string{
	form.RouteUsersIndex: "/admin/settings/users",
}

func resolveRoute(name string) string {
	if path, ok := routePaths[name]; ok {
		return path
	}
	return name
}

type validationResponse struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

func decodeJSON(c echo.Context, target any) error {
	decoder := json.NewDecoder(c.Request().Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(target)
}

func writeError(c echo.Context, status int, err error) error {
	return c.JSON(status, map[string]string{"message": err.Error()})
}

func writeFieldError(c echo.Context, field, rule string, err error) error {
	return c.JSON(http.StatusUnprocessableEntity, validationResponse{
		Message: err.Error(),
		Errors:  map[string]string{field: rule},
	})
}

// validate runs the struct rules and writes a 422 when they fail. It returns
// false when a response has already been written.
func validate(c echo.Context, v *validator.Validate, payload any) (bool, error) {
	if v == nil {
		return true, nil
	}
	err := v.Struct(payload)
	if err == nil {
		return true, nil
	}
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return false, err
	}
	response := validationResponse{
		Message: "the given data was invalid",
		Errors:  make(map[string]string, len(fieldErrors)),
	}
	for _, fieldError := range fieldErrors {
		response.Errors[fieldError.Field()] = fieldError.Tag()
	}
	return false, c.JSON(http.StatusUnprocessableEntity, response)
}

// writeServiceError maps service sentinels to a response. Anything unknown is
// handed back to echo so the error handler can render and record it.
func writeServiceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrEmailTaken):
		return writeFieldError(c, "email", "unique", err)
	case errors.Is(err, service.ErrRoleNameTaken):
		return writeFieldError(c, "name", "unique", err)
	case errors.Is(err, service.ErrUnknownPermission):
		return writeFieldError(c, "permissions", "exists", err)
	case errors.Is(err, service.ErrCurrentPassword):
		return writeFieldError(c, "current_password", "current_password", err)
	case errors.Is(err, service.ErrInvalidInput):
		return writeError(c, http.StatusUnprocessableEntity, err)
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, service.ErrInvalidMFACode):
		return writeError(c, http.StatusUnauthorized, err)
	case errors.Is(err, service.ErrProtectedRole):
		return writeError(c, http.StatusForbidden, err)
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrRoleNotFound),
		errors.Is(err, service.ErrExceptionNotFound):
		return writeError(c, http.StatusNotFound, err)
	case errors.Is(err, service.ErrMFANotStarted), errors.Is(err, service.ErrPasswordNotConfigured):
		return writeError(c, http.StatusConflict, err)
	case errors.Is(err, service.ErrSessionLocked):
		return writeError(c, http.StatusLocked, err)
	case errors.Is(err, service.ErrMFANotConfigured):
		return writeError(c, http.StatusFailedDependency, err)
	}
	return err
}

func parseLimitOffset(c echo.Context) (int, int) {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func parseIDParam(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusNotFound, "not found")
	}
	return id, nil
}

func actorFromContext(c echo.Context) (service.Actor, bool) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return service.Actor{}, false
	}
	return service.Actor{UserID: userID, IPAddress: stringPtr(c.RealIP())}, true
}

func stringPtr(value string) *string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return &value
}

func unauthorized() error {
	return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
}
