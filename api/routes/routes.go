package routes

import (
	"time"

	"backoffice/api/handler"
	"backoffice/api/middleware"
	"backoffice/internal/entity"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

const (
	unlockPath = "/admin/unlock"
	logoutPath = "/admin/logout"
)

type Router struct {
	Echo           *echo.Echo
	Auth           *handler.AuthHandler
	Users          *handler.UserHandler
	Roles          *handler.RoleHandler
	Exceptions     *handler.ExceptionHandler
	Profile        *handler.ProfileHandler
	AuthMiddleware middleware.AuthMiddleware
	LoginRate      *middleware.RateLimiter
	UnlockRate     *middleware.RateLimiter
}

func NewRouter(e *echo.Echo, authMiddleware middleware.AuthMiddleware) *Router {
	return &Router{
		Echo:           e,
		AuthMiddleware: authMiddleware,
		LoginRate:      middleware.NewRateLimiter(rate.Limit(2), 5, 10*time.Minute),
		UnlockRate:     middleware.NewRateLimiter(rate.Limit(1), 5, 10*time.Minute),
	}
}

func can(prefix, resource string) echo.MiddlewareFunc {
	return middleware.RequirePermission(entity.PermissionName(prefix, resource))
}

func (r *Router) RegisterRoutes() {
	e := r.Echo

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.POST("/admin/login", r.Auth.Login, r.LoginRate.Middleware())
	e.POST("/admin/login/mfa", r.Auth.LoginWithMFA, r.LoginRate.Middleware())

	admin := e.Group("/admin", r.AuthMiddleware.RequireAuth, middleware.Locker(unlockPath, logoutPath))
	admin.POST("/logout", r.Auth.Logout)
	admin.POST("/lock", r.Auth.Lock)
	admin.POST("/unlock", r.Auth.Unlock, r.UnlockRate.Middleware())

	profile := admin.Group("/my-profile")
	profile.GET("", r.Profile.Show)
	profile.PUT("", r.Profile.Update)
	profile.PUT("/password", r.Profile.ChangePassword)
	profile.POST("/2fa", r.Profile.EnableMFA)
	profile.POST("/2fa/confirm", r.Profile.ConfirmMFA)
	profile.DELETE("/2fa", r.Profile.DisableMFA)

	users := admin.Group("/settings/users")
	users.GET("", r.Users.List, can(entity.PrefixViewAny, entity.ResourceUser))
	users.GET("/schema", r.Users.Schema, can(entity.PrefixViewAny, entity.ResourceUser))
	users.POST("", r.Users.Create, can(entity.PrefixCreate, entity.ResourceUser))
	users.POST("/bulk-delete", r.Users.BulkDelete, can(entity.PrefixDeleteAny, entity.ResourceUser))
	users.GET("/:id", r.Users.Show, can(entity.PrefixView, entity.ResourceUser))
	users.GET("/:id/activity", r.Users.Activity, can(entity.PrefixView, entity.ResourceUser))
	users.GET("/:id/edit", r.Users.Edit, can(entity.PrefixUpdate, entity.ResourceUser))
	users.PUT("/:id", r.Users.Update, can(entity.PrefixUpdate, entity.ResourceUser))
	users.DELETE("/:id", r.Users.Delete, can(entity.PrefixDelete, entity.ResourceUser))

	shield := admin.Group("/shield")
	shield.GET("/permissions", r.Roles.Permissions, can(entity.PrefixViewAny, entity.ResourceRole))
	shield.GET("/roles", r.Roles.List, can(entity.PrefixViewAny, entity.ResourceRole))
	shield.POST("/roles", r.Roles.Create, can(entity.PrefixCreate, entity.ResourceRole))
	shield.GET("/roles/:id", r.Roles.Show, can(entity.PrefixView, entity.ResourceRole))
	shield.PUT("/roles/:id", r.Roles.Update, can(entity.PrefixUpdate, entity.ResourceRole))
	shield.DELETE("/roles/:id", r.Roles.Delete, can(entity.PrefixDelete, entity.ResourceRole))

	exceptions := admin.Group("/exceptions")
	exceptions.GET("", r.Exceptions.List, can(entity.PrefixViewAny, entity.ResourceException))
	exceptions.GET("/:id", r.Exceptions.Show, can(entity.PrefixView, entity.ResourceException))
	exceptions.DELETE("/:id", r.Exceptions.Delete, can(entity.PrefixDelete, entity.ResourceException))
}
