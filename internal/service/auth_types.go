package service

import (
	"context"
	"time"

	"backoffice/internal/entity"

	"github.com/google/uuid"
)

type AuthConfig struct {
	SessionTTL  time.Duration
	MFATokenTTL time.Duration
	MFAIssuer   string
}

// Notifier delivers mail to users about changes an administrator made to their account.
type Notifier interface {
	SendAccountVerified(ctx context.Context, user entity.User) error
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash string, password string) bool
}

type AccessTokenIssuer interface {
	IssueAccessToken(user entity.User, sessionID uuid.UUID, now time.Time) (string, time.Duration, error)
}

type MFATokenIssuer interface {
	IssueMFAToken(userID uuid.UUID) (string, time.Duration, error)
	ParseMFAToken(token string) (uuid.UUID, error)
}

// MFAEnrollment is a freshly generated second factor waiting for confirmation.
type MFAEnrollment struct {
	Secret string
	URL    string
}

type MFAProvider interface {
	Enroll(issuer string, accountName string) (MFAEnrollment, error)
	Validate(secret string, code string, at time.Time) bool
}

type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now()
}
