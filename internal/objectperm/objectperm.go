package objectperm

// Model identifies a business table that supports record-level permissions.
// The set is closed: an unknown name is rejected at the handler boundary
// instead of producing a silently empty lookup.
type Model string

const (
	ModelDepartment Model = "department"
	ModelAttendance Model = "attendance"
	ModelEmployee   Model = "employee"
	ModelLeave      Model = "leave"
	ModelOvertime   Model = "overtime"
	ModelProject    Model = "project"
	ModelClient     Model = "client"
)

var knownModels = map[Model]struct{}{
	ModelDepartment: {},
	ModelAttendance: {},
	ModelEmployee:   {},
	ModelLeave:      {},
	ModelOvertime:   {},
	ModelProject:    {},
	ModelClient:     {},
}

func ParseModel(name string) (Model, bool) {
	m := Model(name)
	_, ok := knownModels[m]
	return m, ok
}

// Model-level permission codenames for this model. Generated here once so
// every consumer treats the codename itself as an opaque string.
func (m Model) ViewPermission() string   { return "can_view_" + string(m) }
func (m Model) CreatePermission() string { return "can_create_" + string(m) }
func (m Model) EditPermission() string   { return "can_edit_" + string(m) }
func (m Model) DeletePermission() string { return "can_delete_" + string(m) }
func (m Model) ExportPermission() string { return "can_export_" + string(m) }

// PermissionKind is the record-scoped capability stored in an ACL entry.
type PermissionKind string

const (
	KindView   PermissionKind = "VIEW"
	KindEdit   PermissionKind = "EDIT"
	KindDelete PermissionKind = "DELETE"
)

func ParseKind(name string) (PermissionKind, bool) {
	switch PermissionKind(name) {
	case KindView, KindEdit, KindDelete:
		return PermissionKind(name), true
	}
	return "", false
}

// AllKinds returns the closed set of permission kinds.
func AllKinds() []PermissionKind {
	return []PermissionKind{KindView, KindEdit, KindDelete}
}

// PermissionSet answers what one user may do with one record; the three
// booleans are independent of each other.
type PermissionSet struct {
	CanView   bool `json:"view"`
	CanEdit   bool `json:"edit"`
	CanDelete bool `json:"delete"`
}

// ObjectGrant is one reverse-lookup result row.
type ObjectGrant struct {
	ObjectID int64          `json:"object_id"`
	Kind     PermissionKind `json:"permission"`
}

// RepositoryAPI is the ACL store. Grant is idempotent; Revoke removes
// grantees but never deletes the entry itself; ObjectsForUser must not
// return duplicate (object, kind) pairs.
type RepositoryAPI interface {
	Grant(model Model, objectID int64, kinds []PermissionKind, userIDs, groupIDs []int64) error
	Revoke(model Model, objectID int64, kinds []PermissionKind, userIDs, groupIDs []int64) error
	PermissionsForObject(model Model, objectID, userID int64) (PermissionSet, error)
	ObjectsForUser(model Model, userID int64, kind *PermissionKind) ([]ObjectGrant, error)
	DeleteAllForObject(model Model, objectID int64) error
}
