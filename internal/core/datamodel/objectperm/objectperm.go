package objectperm

import "time"

// Entry is the ACL row: one per (model, object, permission kind). Grantees
// live in the join tables below, so grant and revoke mutate memberships
// rather than creating duplicate entries.
type Entry struct {
	ID         int64     `gorm:"primaryKey"`
	ModelName  string    `gorm:"column:model_name;not null;uniqueIndex:idx_model_object_kind"`
	ObjectID   int64     `gorm:"column:object_id;not null;uniqueIndex:idx_model_object_kind"`
	Permission string    `gorm:"column:permission;not null;uniqueIndex:idx_model_object_kind"`
	CreatedAt  time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt  time.Time `gorm:"column:updated_at;default:now()"`
}

func (Entry) TableName() string {
	return "object_permissions"
}

type EntryUser struct {
	ID      int64 `gorm:"primaryKey"`
	EntryID int64 `gorm:"column:entry_id;not null;uniqueIndex:idx_entry_user"`
	UserID  int64 `gorm:"column:user_id;not null;uniqueIndex:idx_entry_user"`
}

func (EntryUser) TableName() string {
	return "object_permission_users"
}

type EntryGroup struct {
	ID      int64 `gorm:"primaryKey"`
	EntryID int64 `gorm:"column:entry_id;not null;uniqueIndex:idx_entry_group"`
	GroupID int64 `gorm:"column:group_id;not null;uniqueIndex:idx_entry_group"`
}

func (EntryGroup) TableName() string {
	return "object_permission_groups"
}
