package auth

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/core/events"
	"github.com/frahmantamala/hr-management/internal/transport"
)

// Middleware is the per-request authentication entry point. It resolves the
// caller from the access cookie, falls back to the refresh cookie with silent
// rotation, and attaches the user with precomputed effective permissions to
// the request context. Every failure is terminal for the request; the only
// recovery is the login flow.
type Middleware struct {
	*transport.BaseHandler
	service              ServiceAPI
	cookies              *CookieTransport
	bus                  *events.EventBus
	requireVerifiedEmail bool
	verificationURL      string
}

func NewMiddleware(svc ServiceAPI, cookies *CookieTransport, bus *events.EventBus, requireVerifiedEmail bool, verificationURL string, lg *slog.Logger) *Middleware {
	return &Middleware{
		BaseHandler:          transport.NewBaseHandler(lg),
		service:              svc,
		cookies:              cookies,
		bus:                  bus,
		requireVerifiedEmail: requireVerifiedEmail,
		verificationURL:      verificationURL,
	}
}

// Handler runs the state machine: a valid access token proceeds directly; an
// absent or invalid one falls back to the refresh token, which on success
// always rotates the full pair before proceeding.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token := m.cookies.Read(r, TokenKindAccess); token != "" {
			if userID, err := m.service.VerifyToken(token, TokenKindAccess); err == nil {
				user, ok := m.resolveUser(w, r, userID)
				if !ok {
					return
				}
				next.ServeHTTP(w, r.WithContext(ContextWithUser(r.Context(), user)))
				return
			}
			// expired or malformed access token: try the refresh cookie
		}

		token := m.cookies.Read(r, TokenKindRefresh)
		if token == "" {
			m.WriteAppError(w, internal.ErrInvalidCredentials)
			return
		}

		userID, err := m.service.VerifyToken(token, TokenKindRefresh)
		if err != nil {
			m.WriteAppError(w, internal.ErrInvalidCredentials)
			return
		}

		// active/verified checks run before rotation: an inactive account
		// must not receive a fresh token pair
		user, ok := m.resolveUser(w, r, userID)
		if !ok {
			return
		}

		tokens, err := m.service.IssueTokenPair(userID)
		if err != nil {
			m.Logger.Error("token rotation failed", "user_id", userID, "error", err)
			m.WriteError(w, http.StatusInternalServerError, "internal server error")
			return
		}

		m.cookies.Write(w, tokens)
		if m.bus != nil {
			m.bus.Publish(r.Context(), events.NewTokenRotatedEvent(userID))
		}

		next.ServeHTTP(w, r.WithContext(ContextWithUser(r.Context(), user)))
	})
}

// resolveUser loads the user and enforces the existence, verified-email and
// active invariants, in that order. It writes the response itself on failure.
func (m *Middleware) resolveUser(w http.ResponseWriter, r *http.Request, userID int64) (*User, bool) {
	user, err := m.service.GetUserWithPermissions(userID)
	if err != nil {
		m.Logger.Warn("authenticated subject has no user record", "user_id", userID, "error", err)
		m.WriteAppError(w, internal.ErrUserNotFound)
		return nil, false
	}

	if m.requireVerifiedEmail && !user.IsEmailVerified {
		http.Redirect(w, r, m.verificationURL, http.StatusTemporaryRedirect)
		return nil, false
	}

	if !user.IsActive {
		m.Logger.Warn("inactive account attempted access", "user_id", userID)
		m.WriteAppError(w, internal.ErrAccountInactive)
		return nil, false
	}

	return user, true
}

// RequirePermissions guards a route with model-level permissions. Possession
// of any listed codename suffices; super-users bypass the check entirely.
func (m *Middleware) RequirePermissions(codenames ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok || user == nil {
				m.WriteAppError(w, internal.ErrInvalidCredentials)
				return
			}

			if !user.IsSuperUser && !user.HasAnyPermission(codenames) {
				m.Logger.Warn("access denied: insufficient model permissions",
					"user_id", user.ID,
					"required_permissions", codenames)
				m.WriteAppError(w, internal.ErrInsufficientModelPermission)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
