package auth

import (
	"encoding/json"
	"net/http"

	"github.com/frahmantamala/hr-management/internal/transport"
	"github.com/frahmantamala/hr-management/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
	Cookies *CookieTransport
}

func NewHandler(svc ServiceAPI, cookies *CookieTransport) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.L()),
		Service:     svc,
		Cookies:     cookies,
	}
}

// Login authenticates credentials and installs the token pair as cookies.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tokens, user, err := h.Service.Authenticate(dto)
	if err != nil {
		h.Logger.Warn("authentication failed", "error", err)

		switch err {
		case ErrInvalidCredentials:
			h.WriteError(w, http.StatusUnauthorized, "invalid credentials")
		case ErrUserInactive:
			h.WriteError(w, http.StatusUnauthorized, "account is inactive, please contact support")
		default:
			if _, ok := err.(ValidationError); ok {
				h.WriteError(w, http.StatusBadRequest, err.Error())
			} else {
				h.WriteError(w, http.StatusInternalServerError, "internal server error")
			}
		}
		return
	}

	h.Cookies.Write(w, tokens)
	h.WriteJSON(w, http.StatusOK, user)
}

// Refresh rotates the token pair from the refresh cookie. The browser flow
// normally never calls this because the middleware rotates silently, but
// API clients use it to renew before expiry.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	token := h.Cookies.Read(r, TokenKindRefresh)
	if token == "" {
		h.WriteError(w, http.StatusUnauthorized, "missing refresh token")
		return
	}

	userID, err := h.Service.VerifyToken(token, TokenKindRefresh)
	if err != nil {
		h.WriteError(w, http.StatusUnauthorized, "invalid refresh token")
		return
	}

	user, err := h.Service.GetUserWithPermissions(userID)
	if err != nil {
		h.WriteError(w, http.StatusUnauthorized, "user not found")
		return
	}
	if !user.IsActive {
		h.WriteError(w, http.StatusUnauthorized, "account is inactive, please contact support")
		return
	}

	tokens, err := h.Service.IssueTokenPair(userID)
	if err != nil {
		h.Logger.Error("token refresh failed", "user_id", userID, "error", err)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.Cookies.Write(w, tokens)
	w.WriteHeader(http.StatusNoContent)
}

// Logout clears both cookies. The tokens themselves stay valid until expiry;
// the short access TTL is the revocation mechanism.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.Cookies.Clear(w)
	w.WriteHeader(http.StatusNoContent)
}
