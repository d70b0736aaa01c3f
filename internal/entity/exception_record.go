package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ExceptionRecord is an unhandled request error captured for the exceptions browser.
type ExceptionRecord struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	Type    string `gorm:"type:varchar(255);not null"`
	Message string `gorm:"type:text;not null"`
	Trace   string `gorm:"type:text"`

	Method    string     `gorm:"type:varchar(10)"`
	Path      string     `gorm:"type:text"`
	Status    int        `gorm:"not null"`
	IPAddress *string    `gorm:"type:varchar(45)"`
	UserID    *uuid.UUID `gorm:"type:uuid"`

	Headers datatypes.JSON
	Query   datatypes.JSON

	CreatedAt time.Time `gorm:"index"`
}
