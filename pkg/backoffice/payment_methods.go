package backoffice

import (
	"context"
	"net/http"

	"github.com/gega19/barber-app-backoffice-sub001/internal/models"
)

type PaymentMethodsService struct {
	c *Client
}

type PaymentMethodListFilters struct {
	Active string
	Type   string
}

// PaymentMethodInput carries every config field; the API keeps only the
// ones belonging to the selected type.
type PaymentMethodInput struct {
	Name string `json:"name"`
	Type string `json:"type,omitempty"`

	Phone    string `json:"phone,omitempty"`
	Bank     string `json:"bank,omitempty"`
	IDNumber string `json:"idNumber,omitempty"`

	Wallet  string `json:"wallet,omitempty"`
	Network string `json:"network,omitempty"`

	AccountNumber string `json:"accountNumber,omitempty"`
	BankName      string `json:"bankName,omitempty"`
}

func (s *PaymentMethodsService) List(ctx context.Context, page, limit int, filters *PaymentMethodListFilters) ([]models.PaymentMethod, *Pagination, error) {
	q := pageQuery(page, limit)
	if filters != nil {
		if filters.Active != "" {
			q.Set("active", filters.Active)
		}
		if filters.Type != "" {
			q.Set("type", filters.Type)
		}
	}

	return doJSON[[]models.PaymentMethod](ctx, s.c, http.MethodGet, "/payment-methods", q, nil)
}

func (s *PaymentMethodsService) Get(ctx context.Context, id string) (*models.PaymentMethod, error) {
	data, _, err := doJSON[models.PaymentMethod](ctx, s.c, http.MethodGet, "/payment-methods/"+id, nil, nil)
	if err != nil {
		return nil, err
	}
	return &data, nil
}

func (s *PaymentMethodsService) Create(ctx context.Context, in PaymentMethodInput) (*models.PaymentMethod, error) {
	data, _, err := doJSON[models.PaymentMethod](ctx, s.c, http.MethodPost, "/payment-methods", nil, in)
	if err != nil {
		return nil, err
	}
	return &data, nil
}

func (s *PaymentMethodsService) Update(ctx context.Context, id string, in PaymentMethodInput) (*models.PaymentMethod, error) {
	data, _, err := doJSON[models.PaymentMethod](ctx, s.c, http.MethodPut, "/payment-methods/"+id, nil, in)
	if err != nil {
		return nil, err
	}
	return &data, nil
}

func (s *PaymentMethodsService) Delete(ctx context.Context, id string) error {
	_, _, err := doJSON[map[string]any](ctx, s.c, http.MethodDelete, "/payment-methods/"+id, nil, nil)
	return err
}

// ToggleActive sends only the isActive flag.
func (s *PaymentMethodsService) ToggleActive(ctx context.Context, id string, isActive bool) (*models.PaymentMethod, error) {
	body := map[string]any{"isActive": isActive}

	data, _, err := doJSON[models.PaymentMethod](ctx, s.c, http.MethodPatch, "/payment-methods/"+id+"/active", nil, body)
	if err != nil {
		return nil, err
	}
	return &data, nil
}
