package postgres

import (
	"errors"
	"time"

	"github.com/frahmantamala/hr-management/internal/attendance"
	attendanceDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/attendance"
	"gorm.io/gorm"
)

type AttendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) attendance.RepositoryAPI {
	return &AttendanceRepository{db: db}
}

func (r *AttendanceRepository) GetAll() ([]*attendanceDatamodel.Attendance, error) {
	var records []*attendanceDatamodel.Attendance
	err := r.db.Order("work_date DESC, clock_in DESC").Find(&records).Error
	return records, err
}

func (r *AttendanceRepository) GetByIDs(ids []int64) ([]*attendanceDatamodel.Attendance, error) {
	var records []*attendanceDatamodel.Attendance
	err := r.db.Where("id IN ?", ids).Order("work_date DESC, clock_in DESC").Find(&records).Error
	return records, err
}

func (r *AttendanceRepository) GetByID(id int64) (*attendanceDatamodel.Attendance, error) {
	var row attendanceDatamodel.Attendance
	err := r.db.Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, attendance.ErrNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (r *AttendanceRepository) Create(a *attendanceDatamodel.Attendance) error {
	return r.db.Create(a).Error
}

func (r *AttendanceRepository) Update(a *attendanceDatamodel.Attendance) error {
	a.UpdatedAt = time.Now()
	return r.db.Save(a).Error
}

func (r *AttendanceRepository) Delete(id int64) error {
	return r.db.Where("id = ?", id).Delete(&attendanceDatamodel.Attendance{}).Error
}
