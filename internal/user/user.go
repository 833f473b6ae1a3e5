package user

import (
	"errors"
	"time"

	userDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/user"
)

// Named permission exceptions that do not follow the can_<verb>_<model>
// convention.
const (
	PermChangeUserPassword        = "can_change_user_password"
	PermActivateAndDeactivateUser = "can_activate_and_deactivate_user"
)

type User struct {
	ID              int64     `json:"id"`
	Email           string    `json:"email"`
	Name            string    `json:"name"`
	PasswordHash    string    `json:"-"`
	IsActive        bool      `json:"is_active"`
	IsEmailVerified bool      `json:"is_email_verified"`
	IsAdmin         bool      `json:"is_admin"`
	IsSuperUser     bool      `json:"is_superuser"`
	Permissions     []string  `json:"permissions,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

var ErrNotFound = errors.New("user not found")

func FromDataModel(u *userDatamodel.User) *User {
	return &User{
		ID:              u.ID,
		Email:           u.Email,
		Name:            u.Name,
		PasswordHash:    u.PasswordHash,
		IsActive:        u.IsActive,
		IsEmailVerified: u.IsEmailVerified,
		IsAdmin:         u.IsAdmin,
		IsSuperUser:     u.IsSuperUser,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}
