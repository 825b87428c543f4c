package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
)

// Claims holds JWT claims. The subject is the user id in decimal; RoleID is
// present only when the user has a role assigned.
type Claims struct {
	RoleID *int `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// UserID parses the numeric user id out of the subject claim.
func (c *Claims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidToken
	}
	return id, nil
}

// TokenService issues and validates access and refresh tokens with separate
// secrets and expiry policies.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewTokenService creates a token service.
func NewTokenService(accessSecret, refreshSecret string, accessExpireMinutes, refreshExpireHours int) *TokenService {
	return &TokenService{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     time.Duration(accessExpireMinutes) * time.Minute,
		refreshTTL:    time.Duration(refreshExpireHours) * time.Hour,
	}
}

// GenerateAccess creates a short-lived access token carrying the user id and optional role.
func (s *TokenService) GenerateAccess(userID int64, roleID *int) (string, error) {
	return s.generate(userID, roleID, s.accessSecret, s.accessTTL)
}

// GenerateRefresh creates a long-lived refresh token carrying only the user id.
func (s *TokenService) GenerateRefresh(userID int64) (string, error) {
	return s.generate(userID, nil, s.refreshSecret, s.refreshTTL)
}

func (s *TokenService) generate(userID int64, roleID *int, secret []byte, ttl time.Duration) (string, error) {
	claims := Claims{
		RoleID: roleID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ID:        uuid.New().String(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateAccess parses and validates an access token, returning claims or error.
func (s *TokenService) ValidateAccess(tokenString string) (*Claims, error) {
	return validate(tokenString, s.accessSecret)
}

// ValidateRefresh parses and validates a refresh token, returning claims or error.
func (s *TokenService) ValidateRefresh(tokenString string) (*Claims, error) {
	return validate(tokenString, s.refreshSecret)
}

func validate(tokenString string, secret []byte) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
