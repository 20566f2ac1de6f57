package backoffice

import (
	"context"
	"net/http"

	"github.com/gega19/barber-app-backoffice-sub001/internal/models"
)

type WorkplacesService struct {
	c *Client
}

type WorkplaceListFilters struct {
	Active string
	Search string
}

// WorkplaceInput replaces the barber roster with BarberIDs on every write.
type WorkplaceInput struct {
	Name      string   `json:"name"`
	Address   string   `json:"address,omitempty"`
	Phone     string   `json:"phone,omitempty"`
	BarberIDs []string `json:"barberIds,omitempty"`
}

func (s *WorkplacesService) List(ctx context.Context, page, limit int, filters *WorkplaceListFilters) ([]models.Workplace, *Pagination, error) {
	q := pageQuery(page, limit)
	if filters != nil {
		if filters.Active != "" {
			q.Set("active", filters.Active)
		}
		if filters.Search != "" {
			q.Set("search", filters.Search)
		}
	}

	return doJSON[[]models.Workplace](ctx, s.c, http.MethodGet, "/workplaces", q, nil)
}

func (s *WorkplacesService) Get(ctx context.Context, id string) (*models.Workplace, error) {
	data, _, err := doJSON[models.Workplace](ctx, s.c, http.MethodGet, "/workplaces/"+id, nil, nil)
	if err != nil {
		return nil, err
	}
	return &data, nil
}

func (s *WorkplacesService) Create(ctx context.Context, in WorkplaceInput) (*models.Workplace, error) {
	data, _, err := doJSON[models.Workplace](ctx, s.c, http.MethodPost, "/workplaces", nil, in)
	if err != nil {
		return nil, err
	}
	return &data, nil
}

func (s *WorkplacesService) Update(ctx context.Context, id string, in WorkplaceInput) (*models.Workplace, error) {
	data, _, err := doJSON[models.Workplace](ctx, s.c, http.MethodPut, "/workplaces/"+id, nil, in)
	if err != nil {
		return nil, err
	}
	return &data, nil
}

func (s *WorkplacesService) Delete(ctx context.Context, id string) error {
	_, _, err := doJSON[map[string]any](ctx, s.c, http.MethodDelete, "/workplaces/"+id, nil, nil)
	return err
}
