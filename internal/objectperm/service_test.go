package objectperm

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/hr-management/internal/core/events"
)

// recordingStore captures every mutation the service forwards.
type recordingStore struct {
	mockStore
	calls []string
}

func (r *recordingStore) Grant(_ Model, objectID int64, kinds []PermissionKind, userIDs, groupIDs []int64) error {
	for _, kind := range kinds {
		r.calls = append(r.calls, "grant:"+string(kind))
	}
	return nil
}

func (r *recordingStore) Revoke(_ Model, objectID int64, kinds []PermissionKind, userIDs, groupIDs []int64) error {
	for _, kind := range kinds {
		r.calls = append(r.calls, "revoke:"+string(kind))
	}
	return nil
}

var _ = Describe("Service", func() {
	var (
		store     *recordingStore
		bus       *events.EventBus
		service   *Service
		published []string
	)

	BeforeEach(func() {
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		store = &recordingStore{}
		bus = events.NewEventBus(slogger)
		service = NewService(store, bus, slogger)

		published = nil
		record := func(_ context.Context, event events.Event) error {
			published = append(published, event.EventType())
			return nil
		}
		bus.Subscribe(events.EventPermissionGranted, record)
		bus.Subscribe(events.EventPermissionRevoked, record)
	})

	Describe("Grant and Revoke", func() {
		It("publishes audit events", func() {
			ctx := context.Background()
			Expect(service.Grant(ctx, ModelDepartment, 1, []PermissionKind{KindView}, []int64{1}, nil)).To(Succeed())
			Expect(service.Revoke(ctx, ModelDepartment, 1, []PermissionKind{KindView}, []int64{1}, nil)).To(Succeed())

			Expect(published).To(Equal([]string{events.EventPermissionGranted, events.EventPermissionRevoked}))
		})
	})

	Describe("ApplyBatch", func() {
		It("applies operations in request order", func() {
			ops := []BatchOperation{
				{Method: http.MethodPut, Permission: "VIEW", Form: GranteeForm{Users: []int64{1}}},
				{Method: http.MethodPut, Permission: "EDIT", Form: GranteeForm{Groups: []int64{10}}},
				{Method: http.MethodDelete, Permission: "VIEW", Form: GranteeForm{Users: []int64{2}}},
			}

			Expect(service.ApplyBatch(context.Background(), ModelDepartment, 1, ops)).To(Succeed())
			Expect(store.calls).To(Equal([]string{"grant:VIEW", "grant:EDIT", "revoke:VIEW"}))
		})
	})

	Describe("GrantCreatorDefaults", func() {
		It("grants all three kinds to the creator", func() {
			Expect(service.GrantCreatorDefaults(context.Background(), ModelDepartment, 1, 5)).To(Succeed())
			Expect(store.calls).To(Equal([]string{"grant:VIEW", "grant:EDIT", "grant:DELETE"}))
		})
	})
})
