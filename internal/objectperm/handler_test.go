package objectperm

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/hr-management/internal/auth"
)

var _ = Describe("Handler", func() {
	var (
		handler *Handler
		store   *recordingStore
	)

	BeforeEach(func() {
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		store = &recordingStore{}
		handler = NewHandler(NewService(store, nil, slogger))
	})

	serve := func(method, path string, body string, user *auth.User, route string, fn http.HandlerFunc) *httptest.ResponseRecorder {
		router := chi.NewRouter()
		router.MethodFunc(method, route, fn)

		req := httptest.NewRequest(method, path, strings.NewReader(body))
		if user != nil {
			req = req.WithContext(auth.ContextWithUser(context.Background(), user))
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	Describe("ApplyBatch", func() {
		const route = "/permissions/{model}/{objectID}"
		validBody := `{"operations":[{"method":"PUT","permission":"VIEW","form":{"users":[2]}}]}`
		manager := &auth.User{ID: 1, Permissions: []string{ModelDepartment.EditPermission()}}

		It("applies a valid batch for a model-level manager", func() {
			rec := serve(http.MethodPost, "/permissions/department/10", validBody, manager, route, handler.ApplyBatch)
			Expect(rec.Code).To(Equal(http.StatusNoContent))
			Expect(store.calls).To(Equal([]string{"grant:VIEW"}))
		})

		It("rejects unknown model names with 400", func() {
			rec := serve(http.MethodPost, "/permissions/payroll/10", validBody, manager, route, handler.ApplyBatch)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})

		It("rejects a non-numeric object id with 400", func() {
			rec := serve(http.MethodPost, "/permissions/department/abc", validBody, manager, route, handler.ApplyBatch)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})

		It("denies users without management rights", func() {
			viewer := &auth.User{ID: 1, Permissions: []string{ModelDepartment.ViewPermission()}}
			rec := serve(http.MethodPost, "/permissions/department/10", validBody, viewer, route, handler.ApplyBatch)
			Expect(rec.Code).To(Equal(http.StatusForbidden))
			Expect(store.calls).To(BeEmpty())
		})

		It("allows a caller holding an edit grant on the record", func() {
			store.setsByObject = map[int64]PermissionSet{10: {CanEdit: true}}
			creator := &auth.User{ID: 1}
			rec := serve(http.MethodPost, "/permissions/department/10", validBody, creator, route, handler.ApplyBatch)
			Expect(rec.Code).To(Equal(http.StatusNoContent))
			Expect(store.calls).To(Equal([]string{"grant:VIEW"}))
		})

		It("denies a caller whose record grant is view only", func() {
			store.setsByObject = map[int64]PermissionSet{10: {CanView: true}}
			rec := serve(http.MethodPost, "/permissions/department/10", validBody, &auth.User{ID: 1}, route, handler.ApplyBatch)
			Expect(rec.Code).To(Equal(http.StatusForbidden))
			Expect(store.calls).To(BeEmpty())
		})

		It("denies when the record grant lookup fails", func() {
			store.lookupErr = errors.New("connection reset")
			rec := serve(http.MethodPost, "/permissions/department/10", validBody, &auth.User{ID: 1}, route, handler.ApplyBatch)
			Expect(rec.Code).To(Equal(http.StatusForbidden))
		})

		It("allows admins regardless of codenames", func() {
			admin := &auth.User{ID: 1, IsAdmin: true}
			rec := serve(http.MethodPost, "/permissions/department/10", validBody, admin, route, handler.ApplyBatch)
			Expect(rec.Code).To(Equal(http.StatusNoContent))
		})

		It("rejects a malformed body with 400", func() {
			rec := serve(http.MethodPost, "/permissions/department/10", `{"operations":`, manager, route, handler.ApplyBatch)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})

		It("rejects an invalid operation with 400", func() {
			body := `{"operations":[{"method":"PATCH","permission":"VIEW"}]}`
			rec := serve(http.MethodPost, "/permissions/department/10", body, manager, route, handler.ApplyBatch)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})

		It("requires an authenticated user", func() {
			rec := serve(http.MethodPost, "/permissions/department/10", validBody, nil, route, handler.ApplyBatch)
			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
		})
	})

	Describe("GetObjectPermissions", func() {
		const route = "/permissions/{model}/{objectID}"

		It("returns all-true for super-users without a lookup", func() {
			superUser := &auth.User{ID: 1, IsSuperUser: true}
			rec := serve(http.MethodGet, "/permissions/department/10", "", superUser, route, handler.GetObjectPermissions)

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(MatchJSON(`{"view":true,"edit":true,"delete":true}`))
		})

		It("returns the caller's booleans otherwise", func() {
			rec := serve(http.MethodGet, "/permissions/department/10", "", &auth.User{ID: 1}, route, handler.GetObjectPermissions)

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(MatchJSON(`{"view":false,"edit":false,"delete":false}`))
		})
	})

	Describe("GetAccessibleObjects", func() {
		const route = "/permissions/{model}"

		It("returns an empty array rather than null", func() {
			rec := serve(http.MethodGet, "/permissions/department", "", &auth.User{ID: 1}, route, handler.GetAccessibleObjects)

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(strings.TrimSpace(rec.Body.String())).To(Equal("[]"))
		})

		It("rejects an unknown kind filter", func() {
			rec := serve(http.MethodGet, "/permissions/department?kind=OWN", "", &auth.User{ID: 1}, route, handler.GetAccessibleObjects)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})
	})
})
