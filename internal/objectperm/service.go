package objectperm

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/hr-management/internal/core/events"
)

type Service struct {
	repo   RepositoryAPI
	bus    *events.EventBus
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, bus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		bus:    bus,
		logger: logger,
	}
}

// Grant idempotently adds users and groups as grantees for each listed kind.
func (s *Service) Grant(ctx context.Context, model Model, objectID int64, kinds []PermissionKind, userIDs, groupIDs []int64) error {
	if err := s.repo.Grant(model, objectID, kinds, userIDs, groupIDs); err != nil {
		s.logger.Error("grant failed", "model", model, "object_id", objectID, "error", err)
		return err
	}

	if s.bus != nil {
		s.bus.Publish(ctx, events.NewPermissionGrantedEvent(string(model), objectID, kindNames(kinds), userIDs, groupIDs))
	}
	return nil
}

// Revoke removes users and groups from each listed kind's grantee set. An
// entry left with no grantees simply grants nobody; it is not deleted.
func (s *Service) Revoke(ctx context.Context, model Model, objectID int64, kinds []PermissionKind, userIDs, groupIDs []int64) error {
	if err := s.repo.Revoke(model, objectID, kinds, userIDs, groupIDs); err != nil {
		s.logger.Error("revoke failed", "model", model, "object_id", objectID, "error", err)
		return err
	}

	if s.bus != nil {
		s.bus.Publish(ctx, events.NewPermissionRevokedEvent(string(model), objectID, kindNames(kinds), userIDs, groupIDs))
	}
	return nil
}

// ApplyBatch runs a validated batch of independent grant/revoke operations
// against one object, in request order.
func (s *Service) ApplyBatch(ctx context.Context, model Model, objectID int64, ops []BatchOperation) error {
	for _, op := range ops {
		kinds := []PermissionKind{op.Kind()}

		var err error
		if op.Method == http.MethodPut {
			err = s.Grant(ctx, model, objectID, kinds, op.Form.Users, op.Form.Groups)
		} else {
			err = s.Revoke(ctx, model, objectID, kinds, op.Form.Users, op.Form.Groups)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// GrantCreatorDefaults seeds a freshly created record with its creator as a
// VIEW, EDIT and DELETE grantee. CRUD handlers call this right after create.
func (s *Service) GrantCreatorDefaults(ctx context.Context, model Model, objectID, creatorID int64) error {
	return s.Grant(ctx, model, objectID, AllKinds(), []int64{creatorID}, nil)
}

func (s *Service) PermissionsForObject(model Model, objectID, userID int64) (PermissionSet, error) {
	return s.repo.PermissionsForObject(model, objectID, userID)
}

func (s *Service) ObjectsForUser(model Model, userID int64, kind *PermissionKind) ([]ObjectGrant, error) {
	return s.repo.ObjectsForUser(model, userID, kind)
}

// DeleteAllForObject removes every ACL entry for the record. Business delete
// handlers are required to call this when the record itself is deleted.
func (s *Service) DeleteAllForObject(ctx context.Context, model Model, objectID int64) error {
	if err := s.repo.DeleteAllForObject(model, objectID); err != nil {
		s.logger.Error("acl cascade delete failed", "model", model, "object_id", objectID, "error", err)
		return err
	}
	return nil
}

func kindNames(kinds []PermissionKind) []string {
	names := make([]string, len(kinds))
	for i, kind := range kinds {
		names[i] = string(kind)
	}
	return names
}
