package account

import (
	"github.com/go-playground/validator/v10"

	"github.com/darasahq/darasa/core"
)

// NewUser contains information needed to create a staff account.
type NewUser struct {
	Name            string   `json:"name" validate:"required"`
	Username        string   `json:"username" validate:"required,min=4,alphanum"`
	Email           string   `json:"email" validate:"omitempty,email"`
	Password        string   `json:"password" validate:"required,min=8"`
	PasswordConfirm string   `json:"password_confirm" validate:"required,eqfield=Password"`
	Roles           []string `json:"roles" validate:"required,min=1,dive,oneof=admin receptionist faculty"`
	FacultyCode     string   `json:"faculty_code"`
}

func (nu *NewUser) Validate(validate *validator.Validate) error {
	nu.Name = core.CleanString(nu.Name)
	nu.Username = core.CleanString(nu.Username, true /* lower */)
	nu.Email = core.CleanString(nu.Email, true /* lower */)
	nu.FacultyCode = core.CleanString(nu.FacultyCode, true /* lower */)
	return validate.Struct(nu)
}
