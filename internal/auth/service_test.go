package auth

import (
	"errors"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
)

// Mock UserRepository for testing
type mockUserRepository struct {
	credentials map[string]struct {
		userID int64
		hash   string
	}
	usersByID     map[int64]*User
	returnError   bool
	errorToReturn error
}

func newMockUserRepository() *mockUserRepository {
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct_password"), bcrypt.MinCost)

	repo := &mockUserRepository{
		credentials: map[string]struct {
			userID int64
			hash   string
		}{},
		usersByID: map[int64]*User{
			1: {ID: 1, Email: "user@example.com", IsActive: true, IsEmailVerified: true, Permissions: []string{"can_view_department"}},
			2: {ID: 2, Email: "inactive@example.com", IsActive: false, IsEmailVerified: true},
		},
	}
	repo.credentials["user@example.com"] = struct {
		userID int64
		hash   string
	}{1, string(hash)}
	repo.credentials["inactive@example.com"] = struct {
		userID int64
		hash   string
	}{2, string(hash)}

	return repo
}

func (m *mockUserRepository) GetCredentialsByEmail(email string) (int64, string, error) {
	if m.returnError {
		return 0, "", m.errorToReturn
	}
	cred, ok := m.credentials[email]
	if !ok {
		return 0, "", errors.New("user not found")
	}
	return cred.userID, cred.hash, nil
}

func (m *mockUserRepository) GetUserWithPermissions(userID int64) (*User, error) {
	if m.returnError {
		return nil, m.errorToReturn
	}
	user, ok := m.usersByID[userID]
	if !ok {
		return nil, errors.New("user not found")
	}
	return user, nil
}

var _ = ginkgo.Describe("AuthService", func() {
	var (
		service  *Service
		mockRepo *mockUserRepository
	)

	ginkgo.BeforeEach(func() {
		mockRepo = newMockUserRepository()
		codec := NewTokenCodec("test-secret-string-of-sufficient-length")
		service = NewService(mockRepo, codec, 5*time.Minute, time.Hour, bcrypt.MinCost)
	})

	ginkgo.Describe("Authenticate", func() {
		ginkgo.Context("when credentials are valid", func() {
			ginkgo.It("should return a token pair and the resolved user", func() {
				dto := LoginDTO{Email: "user@example.com", Password: "correct_password"}

				tokens, user, err := service.Authenticate(dto)

				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(tokens.AccessToken).ToNot(gomega.BeEmpty())
				gomega.Expect(tokens.RefreshToken).ToNot(gomega.BeEmpty())
				gomega.Expect(tokens.AccessToken).ToNot(gomega.Equal(tokens.RefreshToken))
				gomega.Expect(user.ID).To(gomega.Equal(int64(1)))
				gomega.Expect(user.Permissions).To(gomega.ContainElement("can_view_department"))
			})

			ginkgo.It("should issue tokens that verify under their own kind", func() {
				tokens, _, err := service.Authenticate(LoginDTO{Email: "user@example.com", Password: "correct_password"})
				gomega.Expect(err).ToNot(gomega.HaveOccurred())

				userID, err := service.VerifyToken(tokens.AccessToken, TokenKindAccess)
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(userID).To(gomega.Equal(int64(1)))

				userID, err = service.VerifyToken(tokens.RefreshToken, TokenKindRefresh)
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(userID).To(gomega.Equal(int64(1)))
			})
		})

		ginkgo.Context("when credentials are wrong", func() {
			ginkgo.It("should return the same error for unknown email and wrong password", func() {
				_, _, unknownErr := service.Authenticate(LoginDTO{Email: "nobody@example.com", Password: "correct_password"})
				_, _, wrongErr := service.Authenticate(LoginDTO{Email: "user@example.com", Password: "wrong_password"})

				gomega.Expect(unknownErr).To(gomega.MatchError(ErrInvalidCredentials))
				gomega.Expect(wrongErr).To(gomega.MatchError(ErrInvalidCredentials))
			})
		})

		ginkgo.Context("when the account is inactive", func() {
			ginkgo.It("should refuse even with a correct password", func() {
				_, _, err := service.Authenticate(LoginDTO{Email: "inactive@example.com", Password: "correct_password"})
				gomega.Expect(err).To(gomega.MatchError(ErrUserInactive))
			})
		})

		ginkgo.Context("when the dto is malformed", func() {
			ginkgo.It("should reject an empty email", func() {
				_, _, err := service.Authenticate(LoginDTO{Email: "", Password: "correct_password"})
				gomega.Expect(err).To(gomega.HaveOccurred())
			})
		})
	})

	ginkgo.Describe("VerifyToken", func() {
		ginkgo.It("should reject a token whose subject is not numeric", func() {
			codec := NewTokenCodec("test-secret-string-of-sufficient-length")
			token, err := codec.Issue("not-a-number", TokenKindAccess, time.Minute)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = service.VerifyToken(token, TokenKindAccess)
			gomega.Expect(err).To(gomega.MatchError(ErrInvalidToken))
		})
	})

	ginkgo.Describe("HashPassword", func() {
		ginkgo.It("should produce a hash the authenticate path accepts", func() {
			hash, err := service.HashPassword("s3cret-value")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(bcrypt.CompareHashAndPassword([]byte(hash), []byte("s3cret-value"))).To(gomega.Succeed())
		})
	})
})
