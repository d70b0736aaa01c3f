package middleware

import (
	"net/http"

	"backoffice/internal/service"

	"github.com/labstack/echo/v4"
)

// Locker answers 423 on every route of a locked session except the given
// route paths, which must stay reachable to unlock or leave.
func Locker(allowedPaths ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedPaths))
	for _, path := range allowedPaths {
		allowed[path] = struct{}{}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session, ok := SessionFromContext(c)
			if !ok || !session.Locked() {
				return next(c)
			}
			if _, ok := allowed[c.Path()]; ok {
				return next(c)
			}
			return echo.NewHTTPError(http.StatusLocked, service.ErrSessionLocked.Error())
		}
	}
}
