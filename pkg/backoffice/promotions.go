package backoffice

import (
	"context"
	"net/http"

	"github.com/gega19/barber-app-backoffice-sub001/internal/models"
)

type PromotionsService struct {
	c *Client
}

type PromotionListFilters struct {
	Active   string
	BarberID string
	Current  bool
	Search   string
}

type CreatePromotionInput struct {
	Title          string   `json:"title"`
	Description    string   `json:"description,omitempty"`
	Code           string   `json:"code"`
	Discount       *float64 `json:"discount,omitempty"`
	DiscountAmount *float64 `json:"discountAmount,omitempty"`
	ValidFrom      string   `json:"validFrom"`
	ValidUntil     string   `json:"validUntil"`
	Image          string   `json:"image,omitempty"`
	BarberID       *string  `json:"barberId,omitempty"`
}

type UpdatePromotionInput struct {
	Title          *string  `json:"title,omitempty"`
	Description    *string  `json:"description,omitempty"`
	Code           *string  `json:"code,omitempty"`
	Discount       *float64 `json:"discount,omitempty"`
	DiscountAmount *float64 `json:"discountAmount,omitempty"`
	ValidFrom      *string  `json:"validFrom,omitempty"`
	ValidUntil     *string  `json:"validUntil,omitempty"`
	Image          *string  `json:"image,omitempty"`
	BarberID       *string  `json:"barberId,omitempty"`
}

func (s *PromotionsService) List(ctx context.Context, page, limit int, filters *PromotionListFilters) ([]models.Promotion, *Pagination, error) {
	q := pageQuery(page, limit)
	if filters != nil {
		if filters.Active != "" {
			q.Set("active", filters.Active)
		}
		if filters.BarberID != "" {
			q.Set("barberId", filters.BarberID)
		}
		if filters.Current {
			q.Set("current", "true")
		}
		if filters.Search != "" {
			q.Set("search", filters.Search)
		}
	}

	return doJSON[[]models.Promotion](ctx, s.c, http.MethodGet, "/promotions", q, nil)
}

func (s *PromotionsService) Get(ctx context.Context, id string) (*models.Promotion, error) {
	data, _, err := doJSON[models.Promotion](ctx, s.c, http.MethodGet, "/promotions/"+id, nil, nil)
	if err != nil {
		return nil, err
	}
	return &data, nil
}

func (s *PromotionsService) Create(ctx context.Context, in CreatePromotionInput) (*models.Promotion, error) {
	data, _, err := doJSON[models.Promotion](ctx, s.c, http.MethodPost, "/promotions", nil, in)
	if err != nil {
		return nil, err
	}
	return &data, nil
}

func (s *PromotionsService) Update(ctx context.Context, id string, in UpdatePromotionInput) (*models.Promotion, error) {
	data, _, err := doJSON[models.Promotion](ctx, s.c, http.MethodPut, "/promotions/"+id, nil, in)
	if err != nil {
		return nil, err
	}
	return &data, nil
}

func (s *PromotionsService) Delete(ctx context.Context, id string) error {
	_, _, err := doJSON[map[string]any](ctx, s.c, http.MethodDelete, "/promotions/"+id, nil, nil)
	return err
}

// ToggleActive flips only the isActive flag, leaving the rest untouched.
func (s *PromotionsService) ToggleActive(ctx context.Context, id string, isActive bool) (*models.Promotion, error) {
	body := map[string]any{"isActive": isActive}

	data, _, err := doJSON[models.Promotion](ctx, s.c, http.MethodPatch, "/promotions/"+id+"/active", nil, body)
	if err != nil {
		return nil, err
	}
	return &data, nil
}
