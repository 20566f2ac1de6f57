package backoffice

import (
	"context"
	"net/http"

	"github.com/gega19/barber-app-backoffice-sub001/internal/models"
)

type AppointmentsService struct {
	c *Client
}

type AppointmentListFilters struct {
	Status        string
	PaymentStatus string
	BarberID      string
	ClientID      string
	Date          string
	From          string
	To            string
}

type CreateAppointmentInput struct {
	ClientID        string  `json:"clientId"`
	BarberID        string  `json:"barberId"`
	SpecialtyID     *string `json:"specialtyId,omitempty"`
	Date            string  `json:"date"`
	Time            string  `json:"time"`
	PaymentMethodID *string `json:"paymentMethodId,omitempty"`
	Price           float64 `json:"price,omitempty"`
	Notes           string  `json:"notes,omitempty"`
}

type UpdateAppointmentInput struct {
	ClientID        *string  `json:"clientId,omitempty"`
	BarberID        *string  `json:"barberId,omitempty"`
	SpecialtyID     *string  `json:"specialtyId,omitempty"`
	Date            *string  `json:"date,omitempty"`
	Time            *string  `json:"time,omitempty"`
	Status          *string  `json:"status,omitempty"`
	PaymentMethodID *string  `json:"paymentMethodId,omitempty"`
	PaymentStatus   *string  `json:"paymentStatus,omitempty"`
	PaymentProof    *string  `json:"paymentProof,omitempty"`
	Price           *float64 `json:"price,omitempty"`
	Notes           *string  `json:"notes,omitempty"`
}

func (s *AppointmentsService) List(ctx context.Context, page, limit int, filters *AppointmentListFilters) ([]models.Appointment, *Pagination, error) {
	q := pageQuery(page, limit)
	if filters != nil {
		if filters.Status != "" {
			q.Set("status", filters.Status)
		}
		if filters.PaymentStatus != "" {
			q.Set("paymentStatus", filters.PaymentStatus)
		}
		if filters.BarberID != "" {
			q.Set("barberId", filters.BarberID)
		}
		if filters.ClientID != "" {
			q.Set("clientId", filters.ClientID)
		}
		if filters.Date != "" {
			q.Set("date", filters.Date)
		}
		if filters.From != "" {
			q.Set("from", filters.From)
		}
		if filters.To != "" {
			q.Set("to", filters.To)
		}
	}

	return doJSON[[]models.Appointment](ctx, s.c, http.MethodGet, "/appointments", q, nil)
}

func (s *AppointmentsService) Get(ctx context.Context, id string) (*models.Appointment, error) {
	data, _, err := doJSON[models.Appointment](ctx, s.c, http.MethodGet, "/appointments/"+id, nil, nil)
	if err != nil {
		return nil, err
	}
	return &data, nil
}

func (s *AppointmentsService) Create(ctx context.Context, in CreateAppointmentInput) (*models.Appointment, error) {
	data, _, err := doJSON[models.Appointment](ctx, s.c, http.MethodPost, "/appointments", nil, in)
	if err != nil {
		return nil, err
	}
	return &data, nil
}

func (s *AppointmentsService) Update(ctx context.Context, id string, in UpdateAppointmentInput) (*models.Appointment, error) {
	data, _, err := doJSON[models.Appointment](ctx, s.c, http.MethodPut, "/appointments/"+id, nil, in)
	if err != nil {
		return nil, err
	}
	return &data, nil
}

func (s *AppointmentsService) Delete(ctx context.Context, id string) error {
	_, _, err := doJSON[map[string]any](ctx, s.c, http.MethodDelete, "/appointments/"+id, nil, nil)
	return err
}

func (s *AppointmentsService) Confirm(ctx context.Context, id string) (*models.Appointment, error) {
	return s.transition(ctx, id, "confirm")
}

func (s *AppointmentsService) Complete(ctx context.Context, id string) (*models.Appointment, error) {
	return s.transition(ctx, id, "complete")
}

func (s *AppointmentsService) Cancel(ctx context.Context, id string) (*models.Appointment, error) {
	return s.transition(ctx, id, "cancel")
}

func (s *AppointmentsService) transition(ctx context.Context, id, action string) (*models.Appointment, error) {
	data, _, err := doJSON[models.Appointment](ctx, s.c, http.MethodPatch, "/appointments/"+id+"/"+action, nil, nil)
	if err != nil {
		return nil, err
	}
	return &data, nil
}

// VerifyPayment resolves a manual payment review.
func (s *AppointmentsService) VerifyPayment(ctx context.Context, id string, approved bool, proof string) (*models.Appointment, error) {
	body := map[string]any{"approved": approved}
	if proof != "" {
		body["paymentProof"] = proof
	}

	data, _, err := doJSON[models.Appointment](ctx, s.c, http.MethodPatch, "/appointments/"+id+"/payment", nil, body)
	if err != nil {
		return nil, err
	}
	return &data, nil
}
