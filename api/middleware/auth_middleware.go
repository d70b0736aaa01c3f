package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"backoffice/internal/entity"
	"backoffice/internal/service"
	"backoffice/internal/utils"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Authenticator loads the user and live session named by access token claims.
type Authenticator interface {
	Authenticate(ctx context.Context, userID, sessionID uuid.UUID) (*entity.User, *entity.Session, error)
}

type AuthMiddleware struct {
	JWT      *utils.JWTManager
	Sessions Authenticator
}

func (m AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if m.JWT == nil || m.Sessions == nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
		}
		token := extractBearerToken(c.Request())
		if token == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
		}
		userID, sessionID, err := m.JWT.ParseSessionToken(token)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
		}

		user, session, err := m.Sessions.Authenticate(c.Request().Context(), userID, sessionID)
		if err != nil {
			if errors.Is(err, service.ErrInvalidToken) {
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
			}
			return err
		}
		SetAuthContext(c, user, session)
		return next(c)
	}
}

func extractBearerToken(r *http.Request) string {
	authorization := r.Header.Get("Authorization")
	if authorization == "" {
		return ""
	}
	parts := strings.SplitN(authorization, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
