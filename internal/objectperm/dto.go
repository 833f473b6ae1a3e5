package objectperm

import (
	"net/http"

	"github.com/frahmantamala/hr-management/internal"
)

// BatchOperation is one grant or revoke applied against a single
// (model, object) pair. A request body carries a list of these, applied
// independently and in order.
type BatchOperation struct {
	Method     string      `json:"method"`
	Permission string      `json:"permission"`
	Form       GranteeForm `json:"form"`
}

type GranteeForm struct {
	Users  []int64 `json:"users,omitempty"`
	Groups []int64 `json:"groups,omitempty"`
}

// Kind returns the parsed permission kind; Validate must have passed first.
func (op BatchOperation) Kind() PermissionKind {
	kind, _ := ParseKind(op.Permission)
	return kind
}

func (op BatchOperation) Validate() *internal.AppError {
	if op.Method != http.MethodPut && op.Method != http.MethodDelete {
		return internal.NewValidationError("method must be PUT or DELETE", internal.ErrCodeMalformedGrantRequest)
	}
	if _, ok := ParseKind(op.Permission); !ok {
		return internal.NewValidationError("permission must be one of VIEW, EDIT, DELETE", internal.ErrCodeMalformedGrantRequest)
	}
	for _, id := range op.Form.Users {
		if id <= 0 {
			return internal.NewValidationError("user ids must be positive", internal.ErrCodeMalformedGrantRequest)
		}
	}
	for _, id := range op.Form.Groups {
		if id <= 0 {
			return internal.NewValidationError("group ids must be positive", internal.ErrCodeMalformedGrantRequest)
		}
	}
	return nil
}

type BatchRequest struct {
	Operations []BatchOperation `json:"operations"`
}

func (r BatchRequest) Validate() *internal.AppError {
	if len(r.Operations) == 0 {
		return internal.NewValidationError("at least one operation is required", internal.ErrCodeMalformedGrantRequest)
	}
	for _, op := range r.Operations {
		if err := op.Validate(); err != nil {
			return err
		}
	}
	return nil
}
