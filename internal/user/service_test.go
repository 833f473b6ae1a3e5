package user

import (
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/auth"
	userDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/user"
)

func TestUser(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "User Module Suite")
}

type fakeRepo struct {
	users     map[int64]*userDatamodel.User
	passwords map[int64]string
	active    map[int64]bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users: map[int64]*userDatamodel.User{
			1: {ID: 1, Email: "staff@example.com", Name: "Staff", IsActive: true},
			2: {ID: 2, Email: "other@example.com", Name: "Other", IsActive: true},
		},
		passwords: map[int64]string{},
		active:    map[int64]bool{},
	}
}

func (f *fakeRepo) GetByID(id int64) (*userDatamodel.User, error) {
	row, ok := f.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return row, nil
}

func (f *fakeRepo) UpdatePassword(id int64, hash string) error {
	f.passwords[id] = hash
	return nil
}

func (f *fakeRepo) SetActive(id int64, isActive bool) error {
	f.active[id] = isActive
	return nil
}

type fakeHasher struct{}

func (fakeHasher) HashPassword(password string) (string, error) {
	return "hashed:" + password, nil
}

var _ = Describe("UserService", func() {
	var (
		repo    *fakeRepo
		service *Service
	)

	BeforeEach(func() {
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		repo = newFakeRepo()
		service = NewService(repo, fakeHasher{}, slogger)
	})

	Describe("ChangePassword", func() {
		dto := ChangePasswordDTO{NewPassword: "a-new-password"}

		It("lets users change their own password", func() {
			actor := &auth.User{ID: 1}
			Expect(service.ChangePassword(actor, 1, dto)).To(Succeed())
			Expect(repo.passwords[1]).To(Equal("hashed:a-new-password"))
		})

		It("requires the named exception codename for other users", func() {
			actor := &auth.User{ID: 1, Permissions: []string{PermActivateAndDeactivateUser}}
			err := service.ChangePassword(actor, 2, dto)
			Expect(err).To(MatchError(internal.ErrInsufficientModelPermission))
		})

		It("allows holders of the codename to change any password", func() {
			actor := &auth.User{ID: 1, Permissions: []string{PermChangeUserPassword}}
			Expect(service.ChangePassword(actor, 2, dto)).To(Succeed())
		})

		It("rejects a too-short password", func() {
			actor := &auth.User{ID: 1}
			err := service.ChangePassword(actor, 1, ChangePasswordDTO{NewPassword: "short"})
			Expect(err).To(HaveOccurred())
		})

		It("fails for a missing target user", func() {
			actor := &auth.User{ID: 1, IsSuperUser: true}
			err := service.ChangePassword(actor, 99, dto)
			Expect(err).To(MatchError(ErrNotFound))
		})
	})

	Describe("SetActive", func() {
		It("requires the named exception codename", func() {
			actor := &auth.User{ID: 1, Permissions: []string{PermChangeUserPassword}}
			err := service.SetActive(actor, 2, SetActiveDTO{IsActive: false})
			Expect(err).To(MatchError(internal.ErrInsufficientModelPermission))
		})

		It("toggles activation for holders of the codename", func() {
			actor := &auth.User{ID: 1, Permissions: []string{PermActivateAndDeactivateUser}}
			Expect(service.SetActive(actor, 2, SetActiveDTO{IsActive: false})).To(Succeed())
			Expect(repo.active[2]).To(BeFalse())

			Expect(service.SetActive(actor, 2, SetActiveDTO{IsActive: true})).To(Succeed())
			Expect(repo.active[2]).To(BeTrue())
		})

		It("allows super-users", func() {
			actor := &auth.User{ID: 1, IsSuperUser: true}
			Expect(service.SetActive(actor, 2, SetActiveDTO{IsActive: false})).To(Succeed())
		})
	})

	Describe("CurrentUser", func() {
		It("mirrors the authenticated identity including permissions", func() {
			me := service.CurrentUser(&auth.User{ID: 1, Email: "staff@example.com", Permissions: []string{"can_view_department"}})
			Expect(me.ID).To(Equal(int64(1)))
			Expect(me.Permissions).To(Equal([]string{"can_view_department"}))
		})
	})
})
