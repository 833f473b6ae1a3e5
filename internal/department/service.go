package department

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/auth"
	departmentDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/department"
	"github.com/frahmantamala/hr-management/internal/objectperm"
)

type RepositoryAPI interface {
	GetAll() ([]*departmentDatamodel.Department, error)
	GetByIDs(ids []int64) ([]*departmentDatamodel.Department, error)
	GetByID(id int64) (*departmentDatamodel.Department, error)
	Create(d *departmentDatamodel.Department) error
	Update(d *departmentDatamodel.Department) error
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

// List resolves what the caller may see through the access-gate ladder:
// everything, an ACL-filtered subset, an empty list for create-only users,
// or a denial.
func (s *Service) List(user *auth.User) ([]*Department, error) {
	result, err := s.gate.ListAccessibleRecords(user, objectperm.ModelDepartment, func(objectIDs []int64) (interface{}, error) {
		if objectIDs == nil {
			return s.repo.GetAll()
		}
		return s.repo.GetByIDs(objectIDs)
	})
	if err != nil {
		s.logger.Error("department listing failed", "user_id", user.ID, "error", err)
		return nil, err
	}

	if result.Denied() {
		return nil, internal.ErrInsufficientModelPermission
	}

	departments := []*Department{}
	if result.Data != nil {
		for _, row := range result.Data.([]*departmentDatamodel.Department) {
			departments = append(departments, FromDataModel(row))
		}
	}
	return departments, nil
}

func (s *Service) Get(user *auth.User, id int64) (*Department, error) {
	allowed, err := s.gate.CanAccessObject(user, objectperm.ModelDepartment, id, objectperm.KindView)
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

// Create requires the model-level create permission and seeds the creator as
// VIEW/EDIT/DELETE grantee on the new record.
func (s *Service) Create(ctx context.Context, user *auth.User, dto CreateDepartmentDTO) (*Department, error) {
	if !user.IsSuperUser && !user.HasPermission(objectperm.ModelDepartment.CreatePermission()) {
		return nil, internal.ErrInsufficientModelPermission
	}

	if err := dto.Validate(); err != nil {
		return nil, err
	}

	row := &departmentDatamodel.Department{
		Name:      dto.Name,
		Location:  dto.Location,
		ManagerID: dto.ManagerID,
	}
	if err := s.repo.Create(row); err != nil {
		s.logger.Error("department create failed", "name", dto.Name, "error", err)
		return nil, err
	}

	if err := s.acl.GrantCreatorDefaults(ctx, objectperm.ModelDepartment, row.ID, user.ID); err != nil {
		return nil, err
	}

	s.logger.Info("department created", "department_id", row.ID, "created_by", user.ID)
	return FromDataModel(row), nil
}

func (s *Service) Update(user *auth.User, id int64, dto UpdateDepartmentDTO) (*Department, error) {
	allowed, err := s.gate.CanAccessObject(user, objectperm.ModelDepartment, id, objectperm.KindEdit)
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

	row.Name = dto.Name
	row.Location = dto.Location
	row.ManagerID = dto.ManagerID

	if err := s.repo.Update(row); err != nil {
		s.logger.Error("department update failed", "department_id", id, "error", err)
		return nil, err
	}
	return FromDataModel(row), nil
}

// Delete removes the record and cascades its ACL entries explicitly.
func (s *Service) Delete(ctx context.Context, user *auth.User, id int64) error {
	allowed, err := s.gate.CanAccessObject(user, objectperm.ModelDepartment, id, objectperm.KindDelete)
	if err != nil {
		return err
	}
	if !allowed {
		return internal.ErrInsufficientObjectPermission
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("department delete failed", "department_id", id, "error", err)
		return err
	}

	return s.acl.DeleteAllForObject(ctx, objectperm.ModelDepartment, id)
}
