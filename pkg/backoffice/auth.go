package backoffice

import (
	"context"
	"errors"
	"net/http"

	"github.com/gega19/barber-app-backoffice-sub001/internal/auth"
	"github.com/gega19/barber-app-backoffice-sub001/internal/models"
)

// ErrIncompleteLogin matches the dashboard's contract: a login response
// missing a token, refresh token, or user is treated as a failure even on
// HTTP 200.
var ErrIncompleteLogin = errors.New("login response missing token, refresh token or user")

type AuthService struct {
	c *Client
}

type LoginResult struct {
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
	User         models.User `json:"user"`
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	data, _, err := doJSON[LoginResult](ctx, s.c, http.MethodPost, "/auth/login", nil, map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	if data.AccessToken == "" || data.RefreshToken == "" || data.User.ID == "" {
		return nil, ErrIncompleteLogin
	}

	s.c.tokens.SetTokens(data.AccessToken, data.RefreshToken)
	return &data, nil
}

// Logout is best-effort: the server call may fail, the local session is
// cleared regardless.
func (s *AuthService) Logout(ctx context.Context) {
	refresh := s.c.tokens.RefreshToken()
	_, _, _ = doJSON[map[string]any](ctx, s.c, http.MethodPost, "/auth/logout", nil, map[string]string{
		"refreshToken": refresh,
	})

	s.c.tokens.Clear()
}

func (s *AuthService) Refresh(ctx context.Context) (*LoginResult, error) {
	data, _, err := doJSON[LoginResult](ctx, s.c, http.MethodPost, "/auth/refresh", nil, map[string]string{
		"refreshToken": s.c.tokens.RefreshToken(),
	})
	if err != nil {
		return nil, err
	}

	s.c.tokens.SetTokens(data.AccessToken, data.RefreshToken)
	return &data, nil
}

func (s *AuthService) Me(ctx context.Context) (*models.User, error) {
	data, _, err := doJSON[models.User](ctx, s.c, http.MethodGet, "/auth/me", nil, nil)
	if err != nil {
		return nil, err
	}
	return &data, nil
}

// IsAuthenticated only checks token presence, like the original cookie
// check. The token may still be expired; the first API call settles that.
func (s *AuthService) IsAuthenticated() bool {
	return s.c.tokens.Token() != ""
}

// CurrentRole decodes the role claim without verifying the signature. It
// exists for landing-page selection only; the server enforces roles.
func (s *AuthService) CurrentRole() (string, error) {
	token := s.c.tokens.Token()
	if token == "" {
		return "", errors.New("not authenticated")
	}
	return auth.DecodeRoleUnverified(token)
}

// CanAccessBackoffice checks the two-role allow-list.
func CanAccessBackoffice(role string) bool {
	return auth.CanAccessBackoffice(role)
}
