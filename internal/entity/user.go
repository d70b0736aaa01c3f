package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string    `gorm:"type:varchar(255);not null"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash *string   `gorm:"type:text"`

	// EmailVerifiedAt is the only record of verification; nil means unverified.
	EmailVerifiedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	Roles     []Role `gorm:"many2many:user_roles;constraint:OnDelete:CASCADE"`
	Sessions  []Session
	MFASecret *MFASecret
}

func (u *User) IsVerified() bool {
	return u.EmailVerifiedAt != nil
}

func (u *User) HasRole(name string) bool {
	for _, role := range u.Roles {
		if role.Name == name {
			return true
		}
	}
	return false
}

// Can reports whether any of the user's roles grants permission.
// Super admins are granted everything.
func (u *User) Can(permission string) bool {
	if u.HasRole(RoleSuperAdmin) {
		return true
	}
	for _, role := range u.Roles {
		if role.Grants(permission) {
			return true
		}
	}
	return false
}

func (u *User) RoleIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(u.Roles))
	for _, role := range u.Roles {
		ids = append(ids, role.ID)
	}
	return ids
}

func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, role := range u.Roles {
		names = append(names, role.Name)
	}
	return names
}
