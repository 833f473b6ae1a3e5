package department

import (
	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/core/common/validation"
)

type CreateDepartmentDTO struct {
	Name      string `json:"name"`
	Location  string `json:"location"`
	ManagerID *int64 `json:"manager_id"`
}

func (d CreateDepartmentDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MinLength(2).MaxLength(100)
	v.Field("location", d.Location).MaxLength(200)
	return v.Validate()
}

type UpdateDepartmentDTO struct {
	Name      string `json:"name"`
	Location  string `json:"location"`
	ManagerID *int64 `json:"manager_id"`
}

func (d UpdateDepartmentDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MinLength(2).MaxLength(100)
	v.Field("location", d.Location).MaxLength(200)
	return v.Validate()
}
