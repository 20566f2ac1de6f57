package backoffice

import (
	"context"
	"net/http"

	"github.com/gega19/barber-app-backoffice-sub001/internal/models"
)

type SpecialtiesService struct {
	c *Client
}

type SpecialtyInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func (s *SpecialtiesService) List(ctx context.Context, page, limit int, search string) ([]models.Specialty, *Pagination, error) {
	q := pageQuery(page, limit)
	if search != "" {
		q.Set("search", search)
	}

	return doJSON[[]models.Specialty](ctx, s.c, http.MethodGet, "/specialties", q, nil)
}

func (s *SpecialtiesService) Get(ctx context.Context, id string) (*models.Specialty, error) {
	data, _, err := doJSON[models.Specialty](ctx, s.c, http.MethodGet, "/specialties/"+id, nil, nil)
	if err != nil {
		return nil, err
	}
	return &data, nil
}

func (s *SpecialtiesService) Create(ctx context.Context, in SpecialtyInput) (*models.Specialty, error) {
	data, _, err := doJSON[models.Specialty](ctx, s.c, http.MethodPost, "/specialties", nil, in)
	if err != nil {
		return nil, err
	}
	return &data, nil
}

func (s *SpecialtiesService) Update(ctx context.Context, id string, in SpecialtyInput) (*models.Specialty, error) {
	data, _, err := doJSON[models.Specialty](ctx, s.c, http.MethodPut, "/specialties/"+id, nil, in)
	if err != nil {
		return nil, err
	}
	return &data, nil
}

func (s *SpecialtiesService) Delete(ctx context.Context, id string) error {
	_, _, err := doJSON[map[string]any](ctx, s.c, http.MethodDelete, "/specialties/"+id, nil, nil)
	return err
}
