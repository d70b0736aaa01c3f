package entity

import (
	"time"

	"github.com/google/uuid"
)

// MFASecret holds a TOTP secret. It only guards login once ConfirmedAt is set.
type MFASecret struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	User   User      `gorm:"constraint:OnDelete:CASCADE"`

	Secret      string `gorm:"type:text;not null"`
	ConfirmedAt *time.Time

	CreatedAt time.Time
}

func (s *MFASecret) Confirmed() bool {
	return s != nil && s.ConfirmedAt != nil
}
