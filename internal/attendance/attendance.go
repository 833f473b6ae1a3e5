package attendance

import (
	"errors"
	"time"

	attendanceDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/attendance"
)

type Attendance struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"user_id"`
	WorkDate  time.Time  `json:"work_date"`
	ClockIn   time.Time  `json:"clock_in"`
	ClockOut  *time.Time `json:"clock_out,omitempty"`
	Note      string     `json:"note,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

var (
	ErrNotFound          = errors.New("attendance record not found")
	ErrAlreadyClockedOut = errors.New("attendance record already clocked out")
)

func FromDataModel(a *attendanceDatamodel.Attendance) *Attendance {
	return &Attendance{
		ID:        a.ID,
		UserID:    a.UserID,
		WorkDate:  a.WorkDate,
		ClockIn:   a.ClockIn,
		ClockOut:  a.ClockOut,
		Note:      a.Note,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
