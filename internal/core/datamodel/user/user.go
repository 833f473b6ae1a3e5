package user

import "time"

type User struct {
	ID              int64     `gorm:"primaryKey"`
	Email           string    `gorm:"column:email;uniqueIndex;not null"`
	Name            string    `gorm:"column:name;not null"`
	PasswordHash    string    `gorm:"column:password_hash;not null"`
	IsActive        bool      `gorm:"column:is_active;default:true"`
	IsEmailVerified bool      `gorm:"column:is_email_verified;default:false"`
	IsAdmin         bool      `gorm:"column:is_admin;default:false"`
	IsSuperUser     bool      `gorm:"column:is_superuser;default:false"`
	CreatedAt       time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt       time.Time `gorm:"column:updated_at;default:now()"`
}

func (User) TableName() string {
	return "users"
}

type Group struct {
	ID          int64     `gorm:"primaryKey"`
	Name        string    `gorm:"column:name;uniqueIndex;not null"`
	Description string    `gorm:"column:description"`
	IsActive    bool      `gorm:"column:is_active;default:true"`
	CreatedAt   time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt   time.Time `gorm:"column:updated_at;default:now()"`
}

func (Group) TableName() string {
	return "groups"
}

// PermissionCategory groups permissions per business model, one category per
// table the application exposes.
type PermissionCategory struct {
	ID        int64     `gorm:"primaryKey"`
	Name      string    `gorm:"column:name;uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"column:created_at;default:now()"`
}

func (PermissionCategory) TableName() string {
	return "permission_categories"
}

// Permission is a model-level capability identified by a unique codename of
// the form can_<verb>_<model>. Codenames are treated as opaque strings by
// every consumer.
type Permission struct {
	ID          int64     `gorm:"primaryKey"`
	Codename    string    `gorm:"column:codename;uniqueIndex;not null"`
	Description string    `gorm:"column:description"`
	CategoryID  int64     `gorm:"column:category_id;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;default:now()"`
}

func (Permission) TableName() string {
	return "permissions"
}

type UserGroup struct {
	ID      int64 `gorm:"primaryKey"`
	UserID  int64 `gorm:"column:user_id;not null;uniqueIndex:idx_user_group"`
	GroupID int64 `gorm:"column:group_id;not null;uniqueIndex:idx_user_group"`
}

func (UserGroup) TableName() string {
	return "user_groups"
}

type GroupPermission struct {
	ID           int64 `gorm:"primaryKey"`
	GroupID      int64 `gorm:"column:group_id;not null;uniqueIndex:idx_group_permission"`
	PermissionID int64 `gorm:"column:permission_id;not null;uniqueIndex:idx_group_permission"`
}

func (GroupPermission) TableName() string {
	return "group_permissions"
}

type UserPermission struct {
	ID           int64  `gorm:"primaryKey"`
	UserID       int64  `gorm:"column:user_id;not null;uniqueIndex:idx_user_permission"`
	PermissionID int64  `gorm:"column:permission_id;not null;uniqueIndex:idx_user_permission"`
	GrantedBy    *int64 `gorm:"column:granted_by"`
}

func (UserPermission) TableName() string {
	return "user_permissions"
}
