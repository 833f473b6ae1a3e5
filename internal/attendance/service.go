package attendance

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/auth"
	attendanceDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/attendance"
	"github.com/frahmantamala/hr-management/internal/objectperm"
)

type RepositoryAPI interface {
	GetAll() ([]*attendanceDatamodel.Attendance, error)
	GetByIDs(ids []int64) ([]*attendanceDatamodel.Attendance, error)
	GetByID(id int64) (*attendanceDatamodel.Attendance, error)
	Create(a *attendanceDatamodel.Attendance) error
	Update(a *attendanceDatamodel.Attendance) error
	Delete(id int64) error
}

type Service struct {
	repo   RepositoryAPI
	acl    *objectperm.Service
	gate   *objectperm.Gate
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, acl *objectperm.Service, gate *objectperm.Gate, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		acl:    acl,
		gate:   gate,
		logger: logger,
	}
}

func (s *Service) List(user *auth.User) ([]*Attendance, error) {
	result, err := s.gate.ListAccessibleRecords(user, objectperm.ModelAttendance, func(objectIDs []int64) (interface{}, error) {
		if objectIDs == nil {
			return s.repo.GetAll()
		}
		return s.repo.GetByIDs(objectIDs)
	})
	if err != nil {
		s.logger.Error("attendance listing failed", "user_id", user.ID, "error", err)
		return nil, err
	}

	if result.Denied() {
		return nil, internal.ErrInsufficientModelPermission
	}

	records := []*Attendance{}
	if result.Data != nil {
		for _, row := range result.Data.([]*attendanceDatamodel.Attendance) {
			records = append(records, FromDataModel(row))
		}
	}
	return records, nil
}

func (s *Service) Get(user *auth.User, id int64) (*Attendance, error) {
	allowed, err := s.gate.CanAccessObject(user, objectperm.ModelAttendance, id, objectperm.KindView)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, internal.ErrInsufficientObjectPermission
	}

	row, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return FromDataModel(row), nil
}

// ClockIn creates an attendance record for the caller and seeds the creator
// ACL so employees always see their own records even without a model-level
// view permission.
func (s *Service) ClockIn(ctx context.Context, user *auth.User, dto ClockInDTO) (*Attendance, error) {
	if !user.IsSuperUser && !user.HasPermission(objectperm.ModelAttendance.CreatePermission()) {
		return nil, internal.ErrInsufficientModelPermission
	}

	if err := dto.Validate(); err != nil {
		return nil, err
	}

	row := &attendanceDatamodel.Attendance{
		UserID:   user.ID,
		WorkDate: dto.WorkDate,
		ClockIn:  dto.ClockIn,
		Note:     dto.Note,
	}
	if err := s.repo.Create(row); err != nil {
		s.logger.Error("clock-in failed", "user_id", user.ID, "error", err)
		return nil, err
	}

	if err := s.acl.GrantCreatorDefaults(ctx, objectperm.ModelAttendance, row.ID, user.ID); err != nil {
		return nil, err
	}

	return FromDataModel(row), nil
}

func (s *Service) ClockOut(user *auth.User, id int64, dto ClockOutDTO) (*Attendance, error) {
	allowed, err := s.gate.CanAccessObject(user, objectperm.ModelAttendance, id, objectperm.KindEdit)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, internal.ErrInsufficientObjectPermission
	}

	if err := dto.Validate(); err != nil {
		return nil, err
	}

	row, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if row.ClockOut != nil {
		return nil, ErrAlreadyClockedOut
	}

	clockOut := dto.ClockOut
	row.ClockOut = &clockOut
	if dto.Note != "" {
		row.Note = dto.Note
	}

	if err := s.repo.Update(row); err != nil {
		s.logger.Error("clock-out failed", "attendance_id", id, "error", err)
		return nil, err
	}
	return FromDataModel(row), nil
}

func (s *Service) Delete(ctx context.Context, user *auth.User, id int64) error {
	allowed, err := s.gate.CanAccessObject(user, objectperm.ModelAttendance, id, objectperm.KindDelete)
	if err != nil {
		return err
	}
	if !allowed {
		return internal.ErrInsufficientObjectPermission
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("attendance delete failed", "attendance_id", id, "error", err)
		return err
	}

	return s.acl.DeleteAllForObject(ctx, objectperm.ModelAttendance, id)
}
