package objectperm

import (
	"log/slog"

	"github.com/frahmantamala/hr-management/internal/auth"
)

// ViewLevel says which branch of the listing ladder fired.
type ViewLevel int

const (
	ViewDenied ViewLevel = iota
	// ViewEmpty: the caller may create records but can see none yet. This is
	// an empty list, not a 403; collapsing the two would either block
	// first-time creators or leak that records exist.
	ViewEmpty
	ViewFiltered
	ViewFull
)

// FetchFunc is supplied by the business-entity query layer. A nil id slice
// means unfiltered; the gate invokes it at most once per call.
type FetchFunc func(objectIDs []int64) (interface{}, error)

type ViewResult struct {
	Level     ViewLevel
	Data      interface{}
	ObjectIDs []int64
}

// Denied reports whether the caller has no access at all; callers map this
// to HTTP 403.
func (r ViewResult) Denied() bool {
	return r.Level == ViewDenied
}

// Gate resolves what a caller may list for a model: full view for holders of
// the model-level view permission, an ACL-filtered view otherwise, a
// create-only empty view as the next fallback, and denial last.
type Gate struct {
	store  RepositoryAPI
	logger *slog.Logger
}

func NewGate(store RepositoryAPI, logger *slog.Logger) *Gate {
	return &Gate{
		store:  store,
		logger: logger,
	}
}

// ListAccessibleRecords evaluates the ladder top to bottom; exactly one
// branch fires. The reverse ACL lookup only runs when the cheap model-level
// check failed, keeping the full scan on the cold path.
func (g *Gate) ListAccessibleRecords(user *auth.User, model Model, fetch FetchFunc) (ViewResult, error) {
	if user.IsSuperUser || user.HasPermission(model.ViewPermission()) {
		data, err := fetch(nil)
		if err != nil {
			return ViewResult{}, err
		}
		return ViewResult{Level: ViewFull, Data: data}, nil
	}

	kind := KindView
	grants, err := g.store.ObjectsForUser(model, user.ID, &kind)
	if err != nil {
		return ViewResult{}, err
	}

	if len(grants) > 0 {
		ids := make([]int64, len(grants))
		for i, grant := range grants {
			ids[i] = grant.ObjectID
		}

		data, err := fetch(ids)
		if err != nil {
			return ViewResult{}, err
		}
		return ViewResult{Level: ViewFiltered, Data: data, ObjectIDs: ids}, nil
	}

	if user.HasPermission(model.CreatePermission()) {
		return ViewResult{Level: ViewEmpty}, nil
	}

	g.logger.Warn("list access denied",
		"user_id", user.ID,
		"model", model)
	return ViewResult{Level: ViewDenied}, nil
}

// CanAccessObject answers the record-granular question for one object and
// kind: model-level permission or super-user grants everything, otherwise
// the ACL decides.
func (g *Gate) CanAccessObject(user *auth.User, model Model, objectID int64, kind PermissionKind) (bool, error) {
	if user.IsSuperUser {
		return true, nil
	}

	var modelPerm string
	switch kind {
	case KindEdit:
		modelPerm = model.EditPermission()
	case KindDelete:
		modelPerm = model.DeletePermission()
	default:
		modelPerm = model.ViewPermission()
	}

	if user.HasPermission(modelPerm) {
		return true, nil
	}

	set, err := g.store.PermissionsForObject(model, objectID, user.ID)
	if err != nil {
		return false, err
	}

	switch kind {
	case KindEdit:
		return set.CanEdit, nil
	case KindDelete:
		return set.CanDelete, nil
	default:
		return set.CanView, nil
	}
}
