package postgres

import (
	"errors"

	datamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/objectperm"
	"github.com/frahmantamala/hr-management/internal/objectperm"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository implements the ACL store on GORM.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) objectperm.RepositoryAPI {
	return &Repository{db: db}
}

// ensureEntry returns the (model, object, kind) entry, creating it when
// absent. The unique composite index makes concurrent creates converge.
func (r *Repository) ensureEntry(tx *gorm.DB, model objectperm.Model, objectID int64, kind objectperm.PermissionKind) (*datamodel.Entry, error) {
	entry := datamodel.Entry{
		ModelName:  string(model),
		ObjectID:   objectID,
		Permission: string(kind),
	}

	err := tx.Where(datamodel.Entry{
		ModelName:  string(model),
		ObjectID:   objectID,
		Permission: string(kind),
	}).FirstOrCreate(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// Grant adds the users and groups to each kind's grantee set. Re-granting an
// existing grantee is a no-op thanks to the unique indexes.
func (r *Repository) Grant(model objectperm.Model, objectID int64, kinds []objectperm.PermissionKind, userIDs, groupIDs []int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, kind := range kinds {
			entry, err := r.ensureEntry(tx, model, objectID, kind)
			if err != nil {
				return err
			}

			for _, userID := range userIDs {
				row := datamodel.EntryUser{EntryID: entry.ID, UserID: userID}
				if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
					return err
				}
			}

			for _, groupID := range groupIDs {
				row := datamodel.EntryGroup{EntryID: entry.ID, GroupID: groupID}
				if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// Revoke removes the users and groups from each kind's grantee set. The
// entry survives even with an empty grantee set.
func (r *Repository) Revoke(model objectperm.Model, objectID int64, kinds []objectperm.PermissionKind, userIDs, groupIDs []int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, kind := range kinds {
			var entry datamodel.Entry
			err := tx.Where("model_name = ? AND object_id = ? AND permission = ?",
				string(model), objectID, string(kind)).First(&entry).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					continue
				}
				return err
			}

			if len(userIDs) > 0 {
				if err := tx.Where("entry_id = ? AND user_id IN ?", entry.ID, userIDs).
					Delete(&datamodel.EntryUser{}).Error; err != nil {
					return err
				}
			}

			if len(groupIDs) > 0 {
				if err := tx.Where("entry_id = ? AND group_id IN ?", entry.ID, groupIDs).
					Delete(&datamodel.EntryGroup{}).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// PermissionsForObject resolves the caller's three booleans for one record,
// counting direct grants and grants via active groups.
func (r *Repository) PermissionsForObject(model objectperm.Model, objectID, userID int64) (objectperm.PermissionSet, error) {
	query := `
		SELECT DISTINCT e.permission
		FROM object_permissions e
		WHERE e.model_name = ? AND e.object_id = ?
		AND (
			EXISTS (
				SELECT 1 FROM object_permission_users eu
				WHERE eu.entry_id = e.id AND eu.user_id = ?
			)
			OR EXISTS (
				SELECT 1 FROM object_permission_groups eg
				JOIN user_groups ug ON ug.group_id = eg.group_id
				JOIN groups g ON g.id = ug.group_id
				WHERE eg.entry_id = e.id AND ug.user_id = ? AND g.is_active = true
			)
		)`

	rows, err := r.db.Raw(query, string(model), objectID, userID, userID).Rows()
	if err != nil {
		return objectperm.PermissionSet{}, err
	}
	defer rows.Close()

	var set objectperm.PermissionSet
	for rows.Next() {
		var kind string
		if err := rows.Scan(&kind); err != nil {
			return objectperm.PermissionSet{}, err
		}
		switch objectperm.PermissionKind(kind) {
		case objectperm.KindView:
			set.CanView = true
		case objectperm.KindEdit:
			set.CanEdit = true
		case objectperm.KindDelete:
			set.CanDelete = true
		}
	}
	return set, rows.Err()
}

// ObjectsForUser is the reverse lookup: every (object, kind) the user can
// reach in the model, directly or through an active group. The UNION
// deduplicates pairs reachable both ways. Full scan by design; callers skip
// it entirely when the model-level permission already grants everything.
func (r *Repository) ObjectsForUser(model objectperm.Model, userID int64, kind *objectperm.PermissionKind) ([]objectperm.ObjectGrant, error) {
	query := `
		SELECT e.object_id, e.permission
		FROM object_permissions e
		JOIN object_permission_users eu ON eu.entry_id = e.id
		WHERE e.model_name = ? AND eu.user_id = ?
		UNION
		SELECT e.object_id, e.permission
		FROM object_permissions e
		JOIN object_permission_groups eg ON eg.entry_id = e.id
		JOIN user_groups ug ON ug.group_id = eg.group_id
		JOIN groups g ON g.id = ug.group_id
		WHERE e.model_name = ? AND ug.user_id = ? AND g.is_active = true`

	args := []interface{}{string(model), userID, string(model), userID}

	if kind != nil {
		query = `SELECT object_id, permission FROM (` + query + `) AS grants WHERE permission = ?`
		args = append(args, string(*kind))
	}

	rows, err := r.db.Raw(query, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var grants []objectperm.ObjectGrant
	for rows.Next() {
		var grant objectperm.ObjectGrant
		var kindName string
		if err := rows.Scan(&grant.ObjectID, &kindName); err != nil {
			return nil, err
		}
		grant.Kind = objectperm.PermissionKind(kindName)
		grants = append(grants, grant)
	}
	return grants, rows.Err()
}

// DeleteAllForObject removes the entries and their grantee rows for one
// record, in one transaction. Business delete handlers call this instead of
// relying on a database trigger.
func (r *Repository) DeleteAllForObject(model objectperm.Model, objectID int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var entryIDs []int64
		err := tx.Model(&datamodel.Entry{}).
			Where("model_name = ? AND object_id = ?", string(model), objectID).
			Pluck("id", &entryIDs).Error
		if err != nil {
			return err
		}
		if len(entryIDs) == 0 {
			return nil
		}

		if err := tx.Where("entry_id IN ?", entryIDs).Delete(&datamodel.EntryUser{}).Error; err != nil {
			return err
		}
		if err := tx.Where("entry_id IN ?", entryIDs).Delete(&datamodel.EntryGroup{}).Error; err != nil {
			return err
		}
		return tx.Where("id IN ?", entryIDs).Delete(&datamodel.Entry{}).Error
	})
}
