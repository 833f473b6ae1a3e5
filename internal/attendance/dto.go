package attendance

import (
	"time"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/core/common/validation"
)

type ClockInDTO struct {
	WorkDate time.Time `json:"work_date"`
	ClockIn  time.Time `json:"clock_in"`
	Note     string    `json:"note"`
}

func (d ClockInDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("work_date", d.WorkDate).Required().NotFuture()
	v.Field("clock_in", d.ClockIn).Required().NotFuture()
	v.Field("note", d.Note).MaxLength(500)
	return v.Validate()
}

type ClockOutDTO struct {
	ClockOut time.Time `json:"clock_out"`
	Note     string    `json:"note"`
}

func (d ClockOutDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("clock_out", d.ClockOut).Required().NotFuture()
	v.Field("note", d.Note).MaxLength(500)
	return v.Validate()
}
