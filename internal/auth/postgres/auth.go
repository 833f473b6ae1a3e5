package postgres

import (
	"database/sql"
	"errors"

	"github.com/frahmantamala/hr-management/internal/auth"
	"github.com/frahmantamala/hr-management/internal/permission"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetCredentialsByEmail looks up the user id and password hash. Email
// matching is case-insensitive.
func (r *Repository) GetCredentialsByEmail(email string) (int64, string, error) {
	var userID int64
	var passwordHash string
	query := `SELECT id, password_hash FROM users WHERE lower(email) = lower(?)`

	row := r.db.Raw(query, email).Row()
	if err := row.Scan(&userID, &passwordHash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, "", auth.ErrUserNotFound
		}
		return 0, "", err
	}
	return userID, passwordHash, nil
}

// GetUserWithPermissions loads the user row regardless of its active flag
// (the middleware distinguishes inactive accounts from unknown ones) and
// resolves the effective permission set: direct grants unioned with the
// grants of every active group the user belongs to.
func (r *Repository) GetUserWithPermissions(userID int64) (*auth.User, error) {
	var user auth.User

	query := `SELECT id, email, name, is_active, is_email_verified, is_admin, is_superuser
	          FROM users WHERE id = ?`

	row := r.db.Raw(query, userID).Row()
	if err := row.Scan(&user.ID, &user.Email, &user.Name, &user.IsActive,
		&user.IsEmailVerified, &user.IsAdmin, &user.IsSuperUser); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, auth.ErrUserNotFound
		}
		return nil, err
	}

	direct, err := r.scanCodenames(`
		SELECT p.codename
		FROM permissions p
		JOIN user_permissions up ON p.id = up.permission_id
		WHERE up.user_id = ?`, userID)
	if err != nil {
		return nil, err
	}

	viaGroups, err := r.scanCodenames(`
		SELECT p.codename
		FROM permissions p
		JOIN group_permissions gp ON p.id = gp.permission_id
		JOIN user_groups ug ON ug.group_id = gp.group_id
		JOIN groups g ON g.id = ug.group_id
		WHERE ug.user_id = ? AND g.is_active = true`, userID)
	if err != nil {
		return nil, err
	}

	user.Permissions = permission.Resolve(direct, viaGroups)
	return &user, nil
}

func (r *Repository) scanCodenames(query string, args ...interface{}) ([]string, error) {
	rows, err := r.db.Raw(query, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var codenames []string
	for rows.Next() {
		var codename string
		if err := rows.Scan(&codename); err != nil {
			return nil, err
		}
		codenames = append(codenames, codename)
	}
	return codenames, rows.Err()
}
