// Package form maps between persisted records and the payloads the admin
// panel's forms read and submit.
//
// The user edit form carries a "verified" toggle that has no column of its own:
// it is derived from email_verified_at when the form is filled and turned back
// into email_verified_at when the form is saved. UserFormData is the only type
// that holds the toggle, entity.User never does.
package form

import (
	"time"

	"backoffice/internal/entity"

	"github.com/google/uuid"
)

// RouteUsersIndex names the users listing view.
const RouteUsersIndex = "admin.settings.users.index"

// UserFormData is the edit form payload presented to the client.
type UserFormData struct {
	ID       uuid.UUID   `json:"id"`
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Roles    []uuid.UUID `json:"roles"`
	Verified Toggle      `json:"verified"`
}

// UserFormSubmission is a submitted edit form. Business fields left nil keep
// their stored value; Verified is always applied.
type UserFormSubmission struct {
	Name     *string      `json:"name" validate:"omitnil,required,max=255"`
	Email    *string      `json:"email" validate:"omitnil,required,email,max=255"`
	Roles    *[]uuid.UUID `json:"roles"`
	Verified Toggle       `json:"verified"`
}

// PrepareUserFormData fills the edit form from a stored user.
func PrepareUserFormData(user *entity.User) UserFormData {
	roles := user.RoleIDs()
	return UserFormData{
		ID:       user.ID,
		Name:     user.Name,
		Email:    user.Email,
		Roles:    roles,
		Verified: Toggle(user.EmailVerifiedAt != nil),
	}
}

// ApplyUserFormData copies a submission onto user. EmailVerifiedAt is set to now
// when the toggle is on and cleared otherwise; the remaining fields are
// overwritten only when submitted. roles must be the records resolved from
// submission.Roles and is ignored when Roles was not submitted.
func ApplyUserFormData(user *entity.User, submission UserFormSubmission, roles []entity.Role, now time.Time) {
	if submission.Verified {
		verifiedAt := now
		user.EmailVerifiedAt = &verifiedAt
	} else {
		user.EmailVerifiedAt = nil
	}

	if submission.Name != nil {
		user.Name = *submission.Name
	}
	if submission.Email != nil {
		user.Email = *submission.Email
	}
	if submission.Roles != nil {
		user.Roles = roles
	}
}

// PostUpdateRedirectTarget is where the panel navigates after a successful edit.
func PostUpdateRedirectTarget() string {
	return RouteUsersIndex
}
