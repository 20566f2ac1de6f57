package auth

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"

	"github.com/gega19/barber-app-backoffice-sub001/internal/models"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrWrongUse     = errors.New("token used for wrong purpose")
)

type Claims struct {
	Role string `json:"role"`
	Use  string `json:"use"` // "access" or "refresh"
	jwtlib.RegisteredClaims
}

type Service struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func New(secret string, accessTTL, refreshTTL time.Duration) *Service {
	return &Service{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (s *Service) GenerateAccessToken(u *models.User) (string, error) {
	return s.generate(u, "access", s.accessTTL)
}

func (s *Service) GenerateRefreshToken(u *models.User) (string, error) {
	return s.generate(u, "refresh", s.refreshTTL)
}

func (s *Service) generate(u *models.User, use string, ttl time.Duration) (string, error) {
	claims := Claims{
		Role: u.Role,
		Use:  use,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   u.ID,
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwtlib.NewNumericDate(time.Now()),
		},
	}

	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateAccess verifies signature and expiry and rejects refresh tokens
// presented as access tokens.
func (s *Service) ValidateAccess(tokenStr string) (*Claims, error) {
	return s.validate(tokenStr, "access")
}

func (s *Service) ValidateRefresh(tokenStr string) (*Claims, error) {
	return s.validate(tokenStr, "refresh")
}

func (s *Service) validate(tokenStr, use string) (*Claims, error) {
	token, err := jwtlib.ParseWithClaims(tokenStr, &Claims{}, func(t *jwtlib.Token) (any, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, jwtlib.ErrTokenMalformed
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidToken
	}

	if claims.Use != use {
		return nil, ErrWrongUse
	}

	return claims, nil
}
