package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_IssueAndParse(t *testing.T) {
	manager := JWTManager{Secret: []byte("secret"), Issuer: "backoffice", AccessTokenTTL: time.Hour}
	userID, sessionID := uuid.New(), uuid.New()

	token, err := manager.IssueSessionToken(userID, sessionID, time.Now())
	require.NoError(t, err)

	gotUser, gotSession, err := manager.ParseSessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, gotUser)
	assert.Equal(t, sessionID, gotSession)
}

func TestJWTManager_DefaultTTL(t *testing.T) {
	assert.Equal(t, 8*time.Hour, JWTManager{}.TTL())
	assert.Equal(t, time.Minute, JWTManager{AccessTokenTTL: time.Minute}.TTL())
}

func TestJWTManager_Rejects(t *testing.T) {
	manager := JWTManager{Secret: []byte("secret"), Issuer: "backoffice", AccessTokenTTL: time.Minute}

	foreign, err := JWTManager{Secret: []byte("other"), Issuer: "backoffice"}.IssueSessionToken(uuid.New(), uuid.New(), time.Now())
	require.NoError(t, err)
	expired, err := manager.IssueSessionToken(uuid.New(), uuid.New(), time.Now().Add(-time.Hour))
	require.NoError(t, err)
	otherIssuer, err := JWTManager{Secret: []byte("secret"), Issuer: "elsewhere"}.IssueSessionToken(uuid.New(), uuid.New(), time.Now())
	require.NoError(t, err)
	noSession, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    "backoffice",
		Subject:   uuid.NewString(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	tests := map[string]string{
		"foreign secret": foreign,
		"expired":        expired,
		"other issuer":   otherIssuer,
		"missing sid":    noSession,
		"garbage":        "not-a-token",
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, _, err := manager.ParseSessionToken(token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
