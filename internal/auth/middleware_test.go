package auth

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/frahmantamala/hr-management/internal/core/events"
)

var _ = ginkgo.Describe("AuthMiddleware", func() {
	var (
		mockRepo   *mockUserRepository
		service    *Service
		cookies    *CookieTransport
		middleware *Middleware
		bus        *events.EventBus
		next       http.Handler
		nextCalled bool
		seenUser   *User
	)

	ginkgo.BeforeEach(func() {
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		mockRepo = newMockUserRepository()
		mockRepo.usersByID[3] = &User{ID: 3, Email: "new@example.com", IsActive: true, IsEmailVerified: false}

		codec := NewTokenCodec("test-secret-string-of-sufficient-length")
		service = NewService(mockRepo, codec, 5*time.Minute, time.Hour, bcrypt.MinCost)
		cookies = NewCookieTransport("access", "refresh", 5*time.Minute, time.Hour, false)
		bus = events.NewEventBus(slogger)
		middleware = NewMiddleware(service, cookies, bus, true, "/verify-email", slogger)

		nextCalled = false
		seenUser = nil
		next = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			nextCalled = true
			seenUser, _ = UserFromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		})
	})

	issueToken := func(userID string, kind TokenKind, ttl time.Duration) string {
		codec := NewTokenCodec("test-secret-string-of-sufficient-length")
		token, err := codec.Issue(userID, kind, ttl)
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		return token
	}

	request := func(accessToken, refreshToken string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/departments", nil)
		if accessToken != "" {
			req.AddCookie(&http.Cookie{Name: "access", Value: accessToken})
		}
		if refreshToken != "" {
			req.AddCookie(&http.Cookie{Name: "refresh", Value: refreshToken})
		}
		rec := httptest.NewRecorder()
		middleware.Handler(next).ServeHTTP(rec, req)
		return rec
	}

	ginkgo.Context("with a valid access token", func() {
		ginkgo.It("should attach the user with permissions and proceed", func() {
			rec := request(issueToken("1", TokenKindAccess, time.Minute), "")

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
			gomega.Expect(nextCalled).To(gomega.BeTrue())
			gomega.Expect(seenUser).ToNot(gomega.BeNil())
			gomega.Expect(seenUser.ID).To(gomega.Equal(int64(1)))
			gomega.Expect(seenUser.Permissions).To(gomega.ContainElement("can_view_department"))
		})

		ginkgo.It("should not rotate the cookies", func() {
			rec := request(issueToken("1", TokenKindAccess, time.Minute), "")
			gomega.Expect(rec.Result().Cookies()).To(gomega.BeEmpty())
		})
	})

	ginkgo.Context("with no cookies at all", func() {
		ginkgo.It("should respond 401", func() {
			rec := request("", "")
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
			gomega.Expect(nextCalled).To(gomega.BeFalse())
		})
	})

	ginkgo.Context("with an expired access token and a valid refresh token", func() {
		ginkgo.It("should rotate the pair and proceed in the same request", func() {
			rec := request(issueToken("1", TokenKindAccess, -time.Minute), issueToken("1", TokenKindRefresh, time.Hour))

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
			gomega.Expect(nextCalled).To(gomega.BeTrue())

			setCookies := rec.Result().Cookies()
			gomega.Expect(setCookies).To(gomega.HaveLen(2))
			names := []string{setCookies[0].Name, setCookies[1].Name}
			gomega.Expect(names).To(gomega.ConsistOf("access", "refresh"))
			for _, c := range setCookies {
				gomega.Expect(c.Value).ToNot(gomega.BeEmpty())
				gomega.Expect(c.HttpOnly).To(gomega.BeTrue())
			}
		})

		ginkgo.It("should publish a rotation event", func() {
			var rotatedFor int64
			bus.Subscribe(events.EventTokenRotated, func(_ context.Context, event events.Event) error {
				payload := event.Payload().(map[string]interface{})
				rotatedFor = payload["user_id"].(int64)
				return nil
			})

			request("", issueToken("1", TokenKindRefresh, time.Hour))
			gomega.Expect(rotatedFor).To(gomega.Equal(int64(1)))
		})

		ginkgo.It("should issue a rotated access token that verifies", func() {
			rec := request("", issueToken("1", TokenKindRefresh, time.Hour))

			var newAccess string
			for _, c := range rec.Result().Cookies() {
				if c.Name == "access" {
					newAccess = c.Value
				}
			}
			gomega.Expect(newAccess).ToNot(gomega.BeEmpty())

			userID, err := service.VerifyToken(newAccess, TokenKindAccess)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(userID).To(gomega.Equal(int64(1)))
		})
	})

	ginkgo.Context("with both tokens expired", func() {
		ginkgo.It("should respond 401", func() {
			rec := request(issueToken("1", TokenKindAccess, -time.Minute), issueToken("1", TokenKindRefresh, -time.Minute))
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
			gomega.Expect(nextCalled).To(gomega.BeFalse())
		})
	})

	ginkgo.Context("with an access token planted in the refresh cookie", func() {
		ginkgo.It("should reject the kind mismatch", func() {
			rec := request("", issueToken("1", TokenKindAccess, time.Minute))
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
		})
	})

	ginkgo.Context("when the account is inactive", func() {
		ginkgo.It("should respond 401 on a valid access token", func() {
			rec := request(issueToken("2", TokenKindAccess, time.Minute), "")

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
			gomega.Expect(rec.Body.String()).To(gomega.ContainSubstring("inactive"))
			gomega.Expect(nextCalled).To(gomega.BeFalse())
		})

		ginkgo.It("should refuse rotation on a valid refresh token", func() {
			rec := request("", issueToken("2", TokenKindRefresh, time.Hour))

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
			gomega.Expect(nextCalled).To(gomega.BeFalse())
			gomega.Expect(rec.Result().Cookies()).To(gomega.BeEmpty())
		})
	})

	ginkgo.Context("when the subject has no user record", func() {
		ginkgo.It("should respond 401", func() {
			rec := request(issueToken("99", TokenKindAccess, time.Minute), "")
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
		})
	})

	ginkgo.Context("when the email is not verified", func() {
		ginkgo.It("should redirect to the verification page", func() {
			rec := request(issueToken("3", TokenKindAccess, time.Minute), "")

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusTemporaryRedirect))
			gomega.Expect(rec.Header().Get("Location")).To(gomega.Equal("/verify-email"))
			gomega.Expect(nextCalled).To(gomega.BeFalse())
		})

		ginkgo.It("should proceed when verification is not required", func() {
			slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
			lax := NewMiddleware(service, cookies, bus, false, "", slogger)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/departments", nil)
			req.AddCookie(&http.Cookie{Name: "access", Value: issueToken("3", TokenKindAccess, time.Minute)})
			rec := httptest.NewRecorder()
			lax.Handler(next).ServeHTTP(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
			gomega.Expect(nextCalled).To(gomega.BeTrue())
		})
	})

	ginkgo.Describe("RequirePermissions", func() {
		withUser := func(u *User) *httptest.ResponseRecorder {
			guarded := middleware.RequirePermissions("can_view_department")(next)
			req := httptest.NewRequest(http.MethodGet, "/api/v1/departments", nil)
			if u != nil {
				req = req.WithContext(ContextWithUser(req.Context(), u))
			}
			rec := httptest.NewRecorder()
			guarded.ServeHTTP(rec, req)
			return rec
		}

		ginkgo.It("should pass a user holding the codename", func() {
			rec := withUser(&User{ID: 1, Permissions: []string{"can_view_department"}})
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
		})

		ginkgo.It("should reject a user without it", func() {
			rec := withUser(&User{ID: 1, Permissions: []string{"can_view_attendance"}})
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusForbidden))
		})

		ginkgo.It("should bypass the check for super-users", func() {
			rec := withUser(&User{ID: 1, IsSuperUser: true})
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
		})

		ginkgo.It("should reject when no user is attached", func() {
			rec := withUser(nil)
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
		})
	})
})
