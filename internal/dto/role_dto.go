package dto

import (
	"time"

	"backoffice/internal/entity"

	"github.com/google/uuid"
)

type RoleRequest struct {
	Name        string   `json:"name" validate:"required,max=125"`
	Permissions []string `json:"permissions" validate:"dive,required"`
}

type RoleResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Permissions []string  `json:"permissions"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func RoleResponseFromEntity(role *entity.Role) RoleResponse {
	return RoleResponse{
		ID:          role.ID,
		Name:        role.Name,
		Permissions: role.PermissionNames(),
		CreatedAt:   role.CreatedAt,
		UpdatedAt:   role.UpdatedAt,
	}
}

func RoleResponsesFromEntities(roles []entity.Role) []RoleResponse {
	responses := make([]RoleResponse, 0, len(roles))
	for i := range roles {
		responses = append(responses, RoleResponseFromEntity(&roles[i]))
	}
	return responses
}

type PermissionResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

func PermissionResponsesFromEntities(permissions []entity.Permission) []PermissionResponse {
	responses := make([]PermissionResponse, 0, len(permissions))
	for _, permission := range permissions {
		responses = append(responses, PermissionResponse{ID: permission.ID, Name: permission.Name})
	}
	return responses
}
