package auth

import (
	"net/http"
	"time"
)

// CookieTransport moves the token pair between requests and responses. Both
// cookies are httpOnly and same-site strict; each expires with its token.
type CookieTransport struct {
	accessName  string
	refreshName string
	accessTTL   time.Duration
	refreshTTL  time.Duration
	secure      bool
}

func NewCookieTransport(accessName, refreshName string, accessTTL, refreshTTL time.Duration, secure bool) *CookieTransport {
	return &CookieTransport{
		accessName:  accessName,
		refreshName: refreshName,
		accessTTL:   accessTTL,
		refreshTTL:  refreshTTL,
		secure:      secure,
	}
}

func (t *CookieTransport) cookieName(kind TokenKind) string {
	if kind == TokenKindRefresh {
		return t.refreshName
	}
	return t.accessName
}

// Read returns the token of the given kind, or "" when the cookie is absent.
func (t *CookieTransport) Read(r *http.Request, kind TokenKind) string {
	cookie, err := r.Cookie(t.cookieName(kind))
	if err != nil {
		return ""
	}
	return cookie.Value
}

// Write sets both cookies, each with an expiry horizon matching its token.
func (t *CookieTransport) Write(w http.ResponseWriter, tokens AuthTokens) {
	now := time.Now()

	http.SetCookie(w, t.buildCookie(t.accessName, tokens.AccessToken, now.Add(t.accessTTL)))
	http.SetCookie(w, t.buildCookie(t.refreshName, tokens.RefreshToken, now.Add(t.refreshTTL)))
}

// Clear expires both cookies by setting an already-past date rather than a
// deletion primitive, which older clients do not honor reliably.
func (t *CookieTransport) Clear(w http.ResponseWriter) {
	expired := time.Unix(0, 0)

	http.SetCookie(w, t.buildCookie(t.accessName, "", expired))
	http.SetCookie(w, t.buildCookie(t.refreshName, "", expired))
}

func (t *CookieTransport) buildCookie(name, value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   t.secure,
		SameSite: http.SameSiteStrictMode,
	}
}
