package user

import (
	"log/slog"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/auth"
	userDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/user"
)

type RepositoryAPI interface {
	GetByID(id int64) (*userDatamodel.User, error)
	UpdatePassword(id int64, passwordHash string) error
	SetActive(id int64, isActive bool) error
}

type PasswordHasher interface {
	HashPassword(password string) (string, error)
}

type Service struct {
	repo   RepositoryAPI
	hasher PasswordHasher
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, hasher PasswordHasher, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		hasher: hasher,
		logger: logger,
	}
}

// CurrentUser returns the caller's own profile with resolved permissions
// attached, so clients can drive their UI off a single call.
func (s *Service) CurrentUser(user *auth.User) *User {
	return &User{
		ID:              user.ID,
		Email:           user.Email,
		Name:            user.Name,
		IsActive:        user.IsActive,
		IsEmailVerified: user.IsEmailVerified,
		IsAdmin:         user.IsAdmin,
		IsSuperUser:     user.IsSuperUser,
		Permissions:     user.Permissions,
	}
}

func (s *Service) Get(actor *auth.User, id int64) (*User, error) {
	if !s.canManageUsers(actor) {
		return nil, internal.ErrInsufficientModelPermission
	}

	row, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return FromDataModel(row), nil
}

// ChangePassword is guarded by the named exception codename rather than a
// can_<verb>_<model> permission. Users may always change their own password.
func (s *Service) ChangePassword(actor *auth.User, targetID int64, dto ChangePasswordDTO) error {
	if actor.ID != targetID && !actor.IsSuperUser && !actor.HasPermission(PermChangeUserPassword) {
		return internal.ErrInsufficientModelPermission
	}

	if err := dto.Validate(); err != nil {
		return err
	}

	if _, err := s.repo.GetByID(targetID); err != nil {
		return err
	}

	hash, err := s.hasher.HashPassword(dto.NewPassword)
	if err != nil {
		s.logger.Error("password hashing failed", "user_id", targetID, "error", err)
		return err
	}

	if err := s.repo.UpdatePassword(targetID, hash); err != nil {
		s.logger.Error("password update failed", "user_id", targetID, "error", err)
		return err
	}

	s.logger.Info("password changed", "user_id", targetID, "changed_by", actor.ID)
	return nil
}

// SetActive toggles account activation. Deactivating a user locks them out on
// their next request; no token revocation is needed because the middleware
// re-checks the flag on every resolve.
func (s *Service) SetActive(actor *auth.User, targetID int64, dto SetActiveDTO) error {
	if !actor.IsSuperUser && !actor.HasPermission(PermActivateAndDeactivateUser) {
		return internal.ErrInsufficientModelPermission
	}

	if _, err := s.repo.GetByID(targetID); err != nil {
		return err
	}

	if err := s.repo.SetActive(targetID, dto.IsActive); err != nil {
		s.logger.Error("user activation update failed", "user_id", targetID, "error", err)
		return err
	}

	s.logger.Info("user activation changed", "user_id", targetID, "is_active", dto.IsActive, "changed_by", actor.ID)
	return nil
}

func (s *Service) canManageUsers(actor *auth.User) bool {
	return actor.IsSuperUser || actor.IsAdmin ||
		actor.HasPermission(PermChangeUserPassword) ||
		actor.HasPermission(PermActivateAndDeactivateUser)
}
