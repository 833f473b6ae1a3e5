package auth

import (
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Service performs authentication business logic: credential checks, token
// issuance and user resolution with effective permissions.
type Service struct {
	userRepo   UserRepository
	codec      *TokenCodec
	accessTTL  time.Duration
	refreshTTL time.Duration
	bcryptCost int
}

func NewService(userRepo UserRepository, codec *TokenCodec, accessTTL, refreshTTL time.Duration, bcryptCost int) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		userRepo:   userRepo,
		codec:      codec,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		bcryptCost: bcryptCost,
	}
}

// Authenticate validates credentials and returns a fresh token pair together
// with the resolved user. Unknown email and wrong password collapse to the
// same error.
func (s *Service) Authenticate(dto LoginDTO) (AuthTokens, *User, error) {
	if err := dto.Validate(); err != nil {
		return AuthTokens{}, nil, err
	}

	userID, storedHash, err := s.userRepo.GetCredentialsByEmail(dto.Email)
	if err != nil {
		return AuthTokens{}, nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(dto.Password)); err != nil {
		return AuthTokens{}, nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.GetUserWithPermissions(userID)
	if err != nil {
		return AuthTokens{}, nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return AuthTokens{}, nil, ErrUserInactive
	}

	tokens, err := s.IssueTokenPair(userID)
	if err != nil {
		return AuthTokens{}, nil, err
	}

	return tokens, user, nil
}

// IssueTokenPair signs a new access and refresh token for the user.
func (s *Service) IssueTokenPair(userID int64) (AuthTokens, error) {
	subject := strconv.FormatInt(userID, 10)

	accessToken, err := s.codec.Issue(subject, TokenKindAccess, s.accessTTL)
	if err != nil {
		return AuthTokens{}, err
	}

	refreshToken, err := s.codec.Issue(subject, TokenKindRefresh, s.refreshTTL)
	if err != nil {
		return AuthTokens{}, err
	}

	return AuthTokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// VerifyToken checks the token against the expected kind and returns the
// subject user id.
func (s *Service) VerifyToken(tokenString string, kind TokenKind) (int64, error) {
	subject, err := s.codec.Verify(tokenString, kind)
	if err != nil {
		return 0, err
	}

	userID, err := strconv.ParseInt(subject, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}

	return userID, nil
}

func (s *Service) GetUserWithPermissions(userID int64) (*User, error) {
	return s.userRepo.GetUserWithPermissions(userID)
}

// HashPassword creates a bcrypt hash of the password.
func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (s *Service) AccessTokenTTL() time.Duration {
	return s.accessTTL
}

func (s *Service) RefreshTokenTTL() time.Duration {
	return s.refreshTTL
}
