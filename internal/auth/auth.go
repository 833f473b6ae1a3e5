package auth

import (
	"context"
	"errors"
	"time"

	"github.com/frahmantamala/hr-management/internal/permission"
	"github.com/golang-jwt/jwt/v5"
)

// TokenKind tags a token as access or refresh. Verification rejects a token
// presented under the wrong kind, so a leaked access token can never be
// replayed as a refresh token with its longer lifetime.
type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

// User is the authenticated identity attached to the request context, with
// effective permissions already resolved so downstream checks never hit the
// database again.
type User struct {
	ID              int64    `json:"id"`
	Email           string   `json:"email"`
	Name            string   `json:"name"`
	IsActive        bool     `json:"is_active"`
	IsEmailVerified bool     `json:"is_email_verified"`
	IsAdmin         bool     `json:"is_admin"`
	IsSuperUser     bool     `json:"is_superuser"`
	Permissions     []string `json:"permissions,omitempty"`
}

func (u *User) HasPermission(codename string) bool {
	return permission.Has(u.Permissions, codename)
}

func (u *User) HasAnyPermission(codenames []string) bool {
	return permission.HasAny(u.Permissions, codenames)
}

type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Claims is the token payload: subject id in the registered subject claim
// plus the kind tag.
type Claims struct {
	Kind string `json:"kind"`
	jwt.RegisteredClaims
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUserInactive       = errors.New("user is inactive")
	ErrEmailUnverified    = errors.New("email is not verified")
	ErrUserNotFound       = errors.New("user not found")
)

type UserRepository interface {
	GetCredentialsByEmail(email string) (userID int64, passwordHash string, err error)
	GetUserWithPermissions(userID int64) (*User, error)
}

type ServiceAPI interface {
	Authenticate(dto LoginDTO) (AuthTokens, *User, error)
	VerifyToken(tokenString string, kind TokenKind) (int64, error)
	IssueTokenPair(userID int64) (AuthTokens, error)
	GetUserWithPermissions(userID int64) (*User, error)
	HashPassword(password string) (string, error)
	AccessTokenTTL() time.Duration
	RefreshTokenTTL() time.Duration
}

type ctxKey string

const ContextUserKey ctxKey = "user"

func UserFromContext(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(ContextUserKey).(*User)
	return u, ok
}

func ContextWithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, ContextUserKey, u)
}
