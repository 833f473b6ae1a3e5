package objectperm

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/auth"
	"github.com/frahmantamala/hr-management/internal/transport"
	"github.com/frahmantamala/hr-management/pkg/logger"
	"github.com/go-chi/chi"
)

type Handler struct {
	*transport.BaseHandler
	Service *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.L()),
		Service:     svc,
	}
}

func (h *Handler) parseTarget(w http.ResponseWriter, r *http.Request) (Model, int64, bool) {
	model, ok := ParseModel(chi.URLParam(r, "model"))
	if !ok {
		h.WriteAppError(w, internal.NewValidationError("unknown model", internal.ErrCodeUnknownModel))
		return "", 0, false
	}

	objectID, err := strconv.ParseInt(chi.URLParam(r, "objectID"), 10, 64)
	if err != nil || objectID <= 0 {
		h.WriteAppError(w, internal.NewValidationError("invalid object id", internal.ErrCodeMalformedGrantRequest))
		return "", 0, false
	}

	return model, objectID, true
}

// canManage allows grant administration for super-users, admins, holders of
// the model-level edit permission, and callers holding an EDIT grant on the
// record itself, so creators can delegate access to their own records.
func (h *Handler) canManage(user *auth.User, model Model, objectID int64) bool {
	if user.IsSuperUser || user.IsAdmin || user.HasPermission(model.EditPermission()) {
		return true
	}
	set, err := h.Service.PermissionsForObject(model, objectID, user.ID)
	if err != nil {
		h.Logger.Error("object permission lookup failed", "model", model, "object_id", objectID, "error", err)
		return false
	}
	return set.CanEdit
}

// ApplyBatch handles POST /permissions/{model}/{objectID}: a batch of
// independent PUT (grant) and DELETE (revoke) operations for one record.
func (h *Handler) ApplyBatch(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteAppError(w, internal.ErrInvalidCredentials)
		return
	}

	model, objectID, ok := h.parseTarget(w, r)
	if !ok {
		return
	}

	if !h.canManage(user, model, objectID) {
		h.Logger.Warn("permission management denied", "user_id", user.ID, "model", model)
		h.WriteAppError(w, internal.ErrInsufficientObjectPermission)
		return
	}

	var req BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.WriteAppError(w, internal.ErrMalformedGrantRequest)
		return
	}

	if err := req.Validate(); err != nil {
		h.WriteAppError(w, err)
		return
	}

	if err := h.Service.ApplyBatch(r.Context(), model, objectID, req.Operations); err != nil {
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetObjectPermissions handles GET /permissions/{model}/{objectID}: the
// caller's view/edit/delete booleans for one record.
func (h *Handler) GetObjectPermissions(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteAppError(w, internal.ErrInvalidCredentials)
		return
	}

	model, objectID, ok := h.parseTarget(w, r)
	if !ok {
		return
	}

	if user.IsSuperUser {
		h.WriteJSON(w, http.StatusOK, PermissionSet{CanView: true, CanEdit: true, CanDelete: true})
		return
	}

	set, err := h.Service.PermissionsForObject(model, objectID, user.ID)
	if err != nil {
		h.Logger.Error("object permission lookup failed", "model", model, "object_id", objectID, "error", err)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.WriteJSON(w, http.StatusOK, set)
}

// GetAccessibleObjects handles GET /permissions/{model}: every record of the
// model the caller can reach through the ACL, optionally filtered by
// ?kind=VIEW|EDIT|DELETE.
func (h *Handler) GetAccessibleObjects(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteAppError(w, internal.ErrInvalidCredentials)
		return
	}

	model, ok := ParseModel(chi.URLParam(r, "model"))
	if !ok {
		h.WriteAppError(w, internal.NewValidationError("unknown model", internal.ErrCodeUnknownModel))
		return
	}

	var kind *PermissionKind
	if raw := r.URL.Query().Get("kind"); raw != "" {
		parsed, ok := ParseKind(raw)
		if !ok {
			h.WriteAppError(w, internal.NewValidationError("permission must be one of VIEW, EDIT, DELETE", internal.ErrCodeMalformedGrantRequest))
			return
		}
		kind = &parsed
	}

	grants, err := h.Service.ObjectsForUser(model, user.ID, kind)
	if err != nil {
		h.Logger.Error("reverse acl lookup failed", "model", model, "user_id", user.ID, "error", err)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if grants == nil {
		grants = []ObjectGrant{}
	}
	h.WriteJSON(w, http.StatusOK, grants)
}
