package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"backoffice/internal/dto"
	"backoffice/internal/entity"
	"backoffice/internal/form"
	"backoffice/internal/repository"
	"backoffice/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type UserService interface {
	ListUsers(ctx context.Context, query repository.UserListQuery) ([]entity.User, int64, error)
	GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error)
	Schema(ctx context.Context, mode form.Mode) (form.Schema, error)
	EditForm(ctx context.Context, id uuid.UUID) (form.Schema, form.UserFormData, error)
	CreateUser(ctx context.Context, actor service.Actor, input service.CreateUserInput) (*entity.User, error)
	UpdateUser(ctx context.Context, actor service.Actor, id uuid.UUID, submission form.UserFormSubmission) (*entity.User, error)
	DeleteUser(ctx context.Context, actor service.Actor, id uuid.UUID) error
	DeleteUsers(ctx context.Context, actor service.Actor, ids []uuid.UUID) (int64, error)
	Activity(ctx context.Context, id uuid.UUID) ([]entity.SecurityLog, error)
}

// UserHandler serves the settings/users resource.
type UserHandler struct {
	Service  UserService
	Validate *validator.Validate
}

func NewUserHandler(svc UserService, validate *validator.Validate) *UserHandler {
	return &UserHandler{Service: svc, Validate: validate}
}

func (h *UserHandler) List(c echo.Context) error {
	limit, offset := parseLimitOffset(c)
	query := repository.UserListQuery{
		Search: c.QueryParam("search"),
		Name:   c.QueryParam("name"),
		Email:  c.QueryParam("email"),
		Sort:   c.QueryParam("sort"),
		Desc:   strings.EqualFold(c.QueryParam("direction"), "desc"),
		Limit:  limit,
		Offset: offset,
	}
	users, total, err := h.Service.ListUsers(c.Request().Context(), query)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.UserListResponse{
		Data:   dto.UserResponsesFromEntities(users),
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}

func (h *UserHandler) Schema(c echo.Context) error {
	mode, ok := form.ParseMode(c.QueryParam("mode"))
	if !ok {
		return writeFieldError(c, "mode", "oneof", errors.New("mode must be create or edit"))
	}
	schema, err := h.Service.Schema(c.Request().Context(), mode)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, schema)
}

func (h *UserHandler) Create(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return unauthorized()
	}
	var req dto.CreateUserRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if valid, err := validate(c, h.Validate, req); !valid {
		return err
	}
	user, err := h.Service.CreateUser(c.Request().Context(), actor, service.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Roles:    req.Roles,
	})
	if err != nil {
		if errors.Is(err, service.ErrRoleNotFound) {
			return writeFieldError(c, "roles", "exists", err)
		}
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, dto.UserResponseFromEntity(user))
}

func (h *UserHandler) Show(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}
	user, err := h.Service.GetUser(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.UserResponseFromEntity(user))
}

// Edit returns the edit schema and the form filled from the stored user.
func (h *UserHandler) Edit(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}
	schema, data, err := h.Service.EditForm(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.UserEditResponse{Schema: schema, Data: data})
}

// Update saves the edit form and tells the client where to go next.
func (h *UserHandler) Update(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return unauthorized()
	}
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}
	var submission form.UserFormSubmission
	if err := decodeJSON(c, &submission); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if valid, err := validate(c, h.Validate, submission); !valid {
		return err
	}

	user, err := h.Service.UpdateUser(c.Request().Context(), actor, id, submission)
	if err != nil {
		if errors.Is(err, service.ErrRoleNotFound) {
			return writeFieldError(c, "roles", "exists", err)
		}
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.UserUpdateResponse{
		User:       dto.UserResponseFromEntity(user),
		RedirectTo: resolveRoute(form.PostUpdateRedirectTarget()),
	})
}

func (h *UserHandler) Delete(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return unauthorized()
	}
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}
	if err := h.Service.DeleteUser(c.Request().Context(), actor, id); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *UserHandler) BulkDelete(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return unauthorized()
	}
	var req dto.BulkDeleteRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if valid, err := validate(c, h.Validate, req); !valid {
		return err
	}
	deleted, err := h.Service.DeleteUsers(c.Request().Context(), actor, req.IDs)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.BulkDeleteResponse{Deleted: deleted})
}

func (h *UserHandler) Activity(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}
	logs, err := h.Service.Activity(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	responses, err := dto.SecurityLogResponsesFromEntities(logs)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, responses)
}
