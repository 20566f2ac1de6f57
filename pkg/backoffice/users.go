package backoffice

import (
	"context"
	"net/http"

	"github.com/gega19/barber-app-backoffice-sub001/internal/models"
)

type UsersService struct {
	c *Client
}

type UserListFilters struct {
	Role       string
	IsBarber   string // "", "true", "false"
	Registered string // "", "today", "week", "month"
	Search     string
}

type CreateUserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	Country  string `json:"country,omitempty"`
	Gender   string `json:"gender,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
}

type UpdateUserInput struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
	Role     *string `json:"role,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Location *string `json:"location,omitempty"`
	Country  *string `json:"country,omitempty"`
	Gender   *string `json:"gender,omitempty"`
	Avatar   *string `json:"avatar,omitempty"`
}

func (s *UsersService) List(ctx context.Context, page, limit int, filters *UserListFilters) ([]models.User, *Pagination, error) {
	q := pageQuery(page, limit)
	if filters != nil {
		if filters.Role != "" {
			q.Set("role", filters.Role)
		}
		if filters.IsBarber != "" {
			q.Set("isBarber", filters.IsBarber)
		}
		if filters.Registered != "" {
			q.Set("registered", filters.Registered)
		}
		if filters.Search != "" {
			q.Set("search", filters.Search)
		}
	}

	return doJSON[[]models.User](ctx, s.c, http.MethodGet, "/users", q, nil)
}

func (s *UsersService) Get(ctx context.Context, id string) (*models.User, error) {
	data, _, err := doJSON[models.User](ctx, s.c, http.MethodGet, "/users/"+id, nil, nil)
	if err != nil {
		return nil, err
	}
	return &data, nil
}

func (s *UsersService) Create(ctx context.Context, in CreateUserInput) (*models.User, error) {
	data, _, err := doJSON[models.User](ctx, s.c, http.MethodPost, "/users", nil, in)
	if err != nil {
		return nil, err
	}
	return &data, nil
}

func (s *UsersService) Update(ctx context.Context, id string, in UpdateUserInput) (*models.User, error) {
	data, _, err := doJSON[models.User](ctx, s.c, http.MethodPut, "/users/"+id, nil, in)
	if err != nil {
		return nil, err
	}
	return &data, nil
}

func (s *UsersService) Delete(ctx context.Context, id string) error {
	_, _, err := doJSON[map[string]any](ctx, s.c, http.MethodDelete, "/users/"+id, nil, nil)
	return err
}
