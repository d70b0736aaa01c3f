package dto

type ProfileRequest struct {
	Name  string `json:"name" validate:"required,max=255"`
	Email string `json:"email" validate:"required,email,max=255"`
}

type ProfileResponse struct {
	User       UserResponse `json:"user"`
	MFAEnabled bool         `json:"mfa_enabled"`
}

type ChangePasswordRequest struct {
	CurrentPassword      string `json:"current_password" validate:"required"`
	Password             string `json:"password" validate:"required,min=8,max=72,mixedcase"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required,eqfield=Password"`
}

type MFAEnableResponse struct {
	OTPAuthURL string `json:"otpauth_url"`
}

type MFAConfirmRequest struct {
	Code string `json:"code" validate:"required,numeric,len=6"`
}
