package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid token")

const defaultSessionTokenTTL = 8 * time.Hour

// JWTManager signs the bearer tokens handed out at login. A token only names
// a user and a server-side session; roles and permissions are loaded per request.
type JWTManager struct {
	Secret         []byte
	Issuer         string
	AccessTokenTTL time.Duration
}

type sessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

func (m JWTManager) TTL() time.Duration {
	if m.AccessTokenTTL <= 0 {
		return defaultSessionTokenTTL
	}
	return m.AccessTokenTTL
}

func (m JWTManager) IssueSessionToken(userID uuid.UUID, sessionID uuid.UUID, now time.Time) (string, error) {
	claims := sessionClaims{
		SessionID: sessionID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.Issuer,
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.TTL())),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.Secret)
}

// ParseSessionToken returns the user and session a token was issued for.
// Every failure collapses into ErrInvalidToken.
func (m JWTManager) ParseSessionToken(raw string) (uuid.UUID, uuid.UUID, error) {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if m.Issuer != "" {
		options = append(options, jwt.WithIssuer(m.Issuer))
	}

	var claims sessionClaims
	if _, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return m.Secret, nil
	}, options...); err != nil {
		return uuid.Nil, uuid.Nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, uuid.Nil, ErrInvalidToken
	}
	sessionID, err := uuid.Parse(claims.SessionID)
	if err != nil {
		return uuid.Nil, uuid.Nil, ErrInvalidToken
	}
	return userID, sessionID, nil
}
