package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type SecurityAction string

const (
	LoginSuccess    SecurityAction = "login_success"
	LoginFailed     SecurityAction = "login_failed"
	Logout          SecurityAction = "logout"
	MFAFailed       SecurityAction = "mfa_failed"
	MFAEnabled      SecurityAction = "mfa_enabled"
	MFADisabled     SecurityAction = "mfa_disabled"
	ScreenLocked    SecurityAction = "screen_locked"
	ScreenUnlocked  SecurityAction = "screen_unlocked"
	UnlockFailed    SecurityAction = "unlock_failed"
	PasswordChanged SecurityAction = "password_changed"
	UserCreated     SecurityAction = "user_created"
	UserUpdated     SecurityAction = "user_updated"
	UserDeleted     SecurityAction = "user_deleted"
	RoleSaved       SecurityAction = "role_saved"
	RoleDeleted     SecurityAction = "role_deleted"
)

// SecurityLog is an audit entry. ActorID performed the action, SubjectID is the
// user it was performed on (equal for self-service actions).
type SecurityLog struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	ActorID   *uuid.UUID `gorm:"type:uuid;index"`
	SubjectID *uuid.UUID `gorm:"type:uuid;index"`

	IPAddress *string        `gorm:"type:varchar(45)"`
	Action    SecurityAction `gorm:"type:varchar(50);not null"`

	Metadata datatypes.JSON

	CreatedAt time.Time
}
