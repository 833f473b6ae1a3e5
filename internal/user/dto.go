package user

import (
	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/core/common/validation"
)

type ChangePasswordDTO struct {
	NewPassword string `json:"new_password"`
}

func (d ChangePasswordDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("new_password", d.NewPassword).Required().MinLength(8).MaxLength(128)
	return v.Validate()
}

type SetActiveDTO struct {
	IsActive bool `json:"is_active"`
}
