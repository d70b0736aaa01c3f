package service

import (
	"errors"
	"time"

	"backoffice/internal/entity"
	"backoffice/internal/utils"

	"github.com/google/uuid"
)

// JWTAccessIssuer adapts utils.JWTManager to the login flow: the token is
// bound to the session row created for this login.
type JWTAccessIssuer struct {
	Manager *utils.JWTManager
}

func (j JWTAccessIssuer) IssueAccessToken(user entity.User, sessionID uuid.UUID, now time.Time) (string, time.Duration, error) {
	if j.Manager == nil || len(j.Manager.Secret) == 0 {
		return "", 0, errors.New("access token signing key is not configured")
	}
	token, err := j.Manager.IssueSessionToken(user.ID, sessionID, now)
	if err != nil {
		return "", 0, err
	}
	return token, j.Manager.TTL(), nil
}
