package middleware

import (
	"backoffice/internal/entity"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	contextUserKey    = "auth_user"
	contextSessionKey = "auth_session"
)

func SetAuthContext(c echo.Context, user *entity.User, session *entity.Session) {
	c.Set(contextUserKey, user)
	c.Set(contextSessionKey, session)
}

func UserFromContext(c echo.Context) (*entity.User, bool) {
	user, ok := c.Get(contextUserKey).(*entity.User)
	return user, ok && user != nil
}

func SessionFromContext(c echo.Context) (*entity.Session, bool) {
	session, ok := c.Get(contextSessionKey).(*entity.Session)
	return session, ok && session != nil
}

func UserIDFromContext(c echo.Context) (uuid.UUID, bool) {
	user, ok := UserFromContext(c)
	if !ok {
		return uuid.Nil, false
	}
	return user.ID, true
}

func SessionIDFromContext(c echo.Context) (uuid.UUID, bool) {
	session, ok := SessionFromContext(c)
	if !ok {
		return uuid.Nil, false
	}
	return session.ID, true
}
