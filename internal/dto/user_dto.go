package dto

import (
	"encoding/json"
	"fmt"
	"time"

	"backoffice/internal/entity"
	"backoffice/internal/form"

	"github.com/google/uuid"
)

type CreateUserRequest struct {
	Name                 string      `json:"name" validate:"required,max=255"`
	Email                string      `json:"email" validate:"required,email,max=255"`
	Password             string      `json:"password" validate:"required,min=8,max=72"`
	PasswordConfirmation string      `json:"password_confirmation" validate:"required,eqfield=Password"`
	Roles                []uuid.UUID `json:"roles"`
}

type BulkDeleteRequest struct {
	IDs []uuid.UUID `json:"ids" validate:"required,min=1"`
}

type BulkDeleteResponse struct {
	Deleted int64 `json:"deleted"`
}

type UserResponse struct {
	ID              uuid.UUID  `json:"id"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	Roles           []string   `json:"roles"`
	EmailVerifiedAt *time.Time `json:"email_verified_at"`
	// Verified drives the list icon; it is derived and never accepted on input.
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func UserResponseFromEntity(user *entity.User) UserResponse {
	return UserResponse{
		ID:              user.ID,
		Name:            user.Name,
		Email:           user.Email,
		Roles:           user.RoleNames(),
		EmailVerifiedAt: user.EmailVerifiedAt,
		Verified:        user.IsVerified(),
		CreatedAt:       user.CreatedAt,
		UpdatedAt:       user.UpdatedAt,
	}
}

func UserResponsesFromEntities(users []entity.User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, UserResponseFromEntity(&users[i]))
	}
	return responses
}

type UserListResponse struct {
	Data   []UserResponse `json:"data"`
	Total  int64          `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

type UserEditResponse struct {
	Schema form.Schema       `json:"schema"`
	Data   form.UserFormData `json:"data"`
}

type UserUpdateResponse struct {
	User       UserResponse `json:"user"`
	RedirectTo string       `json:"redirect_to"`
}

type SecurityLogResponse struct {
	ID        uuid.UUID      `json:"id"`
	ActorID   *uuid.UUID     `json:"actor_id"`
	Action    string         `json:"action"`
	IPAddress *string        `json:"ip_address"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// SecurityLogResponsesFromEntities fails on metadata that is not a JSON object
// rather than hiding it.
func SecurityLogResponsesFromEntities(logs []entity.SecurityLog) ([]SecurityLogResponse, error) {
	responses := make([]SecurityLogResponse, 0, len(logs))
	for _, log := range logs {
		response := SecurityLogResponse{
			ID:        log.ID,
			ActorID:   log.ActorID,
			Action:    string(log.Action),
			IPAddress: log.IPAddress,
			CreatedAt: log.CreatedAt,
		}
		if len(log.Metadata) > 0 {
			if err := json.Unmarshal(log.Metadata, &response.Metadata); err != nil {
				return nil, fmt.Errorf("security log %s metadata: %w", log.ID, err)
			}
		}
		responses = append(responses, response)
	}
	return responses, nil
}
