package handler

import (
	"net/http"

	"backoffice/internal/dto"
	"backoffice/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// RoleHandler serves the shield roles resource.
type RoleHandler struct {
	Service  *service.RoleService
	Validate *validator.Validate
}

func NewRoleHandler(svc *service.RoleService, validate *validator.Validate) *RoleHandler {
	return &RoleHandler{Service: svc, Validate: validate}
}

func (h *RoleHandler) List(c echo.Context) error {
	roles, err := h.Service.ListRoles(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.RoleResponsesFromEntities(roles))
}

func (h *RoleHandler) Permissions(c echo.Context) error {
	permissions, err := h.Service.ListPermissions(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.PermissionResponsesFromEntities(permissions))
}

func (h *RoleHandler) Show(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}
	role, err := h.Service.GetRole(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.RoleResponseFromEntity(role))
}

func (h *RoleHandler) Create(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return unauthorized()
	}
	var req dto.RoleRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if valid, err := validate(c, h.Validate, req); !valid {
		return err
	}
	role, err := h.Service.CreateRole(c.Request().Context(), actor, service.RoleInput{
		Name:        req.Name,
		Permissions: req.Permissions,
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, dto.RoleResponseFromEntity(role))
}

func (h *RoleHandler) Update(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return unauthorized()
	}
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}
	var req dto.RoleRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if valid, err := validate(c, h.Validate, req); !valid {
		return err
	}
	role, err := h.Service.UpdateRole(c.Request().Context(), actor, id, service.RoleInput{
		Name:        req.Name,
		Permissions: req.Permissions,
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.RoleResponseFromEntity(role))
}

func (h *RoleHandler) Delete(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return unauthorized()
	}
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}
	if err := h.Service.DeleteRole(c.Request().Context(), actor, id); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
