package service

import "github.com/google/uuid"

// Actor is the authenticated administrator performing a change.
type Actor struct {
	UserID    uuid.UUID
	IPAddress *string
}

type LoginInput struct {
	Email     string
	Password  string
	IPAddress *string
	UserAgent *string
}

type LoginMFAInput struct {
	MFAToken  string
	Code      string
	IPAddress *string
	UserAgent *string
}

type LoginResult struct {
	AccessToken       string
	ExpiresIn         int64
	MFARequired       bool
	MFAToken          string
	MFATokenExpiresIn int64
}

type ChangePasswordInput struct {
	CurrentPassword string
	NewPassword     string
}

type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Roles    []uuid.UUID
}

type ProfileInput struct {
	Name  string
	Email string
}

type RoleInput struct {
	Name        string
	Permissions []string
}
