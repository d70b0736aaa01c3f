package service

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrInvalidToken          = errors.New("invalid or expired token")
	ErrInvalidMFACode        = errors.New("invalid mfa code")
	ErrMFANotConfigured      = errors.New("mfa not configured")
	ErrMFANotStarted         = errors.New("two-factor setup was not started")
	ErrUserNotFound          = errors.New("user not found")
	ErrEmailTaken            = errors.New("the email has already been taken")
	ErrCurrentPassword       = errors.New("the current password is incorrect")
	ErrRoleNotFound          = errors.New("role not found")
	ErrRoleNameTaken         = errors.New("the role name has already been taken")
	ErrProtectedRole         = errors.New("the super admin role cannot be changed")
	ErrUnknownPermission     = errors.New("unknown permission")
	ErrExceptionNotFound     = errors.New("exception not found")
	ErrSessionLocked         = errors.New("session is locked")
	ErrPasswordNotConfigured = errors.New("user has no password set")
)
