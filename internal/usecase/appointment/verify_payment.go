package appointment

import (
	"context"

	"github.com/gega19/barber-app-backoffice-sub001/internal/audit"
	domain "github.com/gega19/barber-app-backoffice-sub001/internal/domain/appointment"
	"github.com/gega19/barber-app-backoffice-sub001/internal/httperr"
	"github.com/gega19/barber-app-backoffice-sub001/internal/models"
)

type VerifyPaymentInput struct {
	AppointmentID string
	Approved      bool

	// Optional replacement proof reference when staff re-upload a clearer
	// capture during review.
	PaymentProof string
}

type VerifyPayment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewVerifyPayment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *VerifyPayment {
	return &VerifyPayment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *VerifyPayment) Execute(
	ctx context.Context,
	actorID string,
	in VerifyPaymentInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, in.AppointmentID)
	if err != nil {
		return nil, err
	}

	if domain.PaymentStatus(ap.PaymentStatus) == domain.PaymentPaid {
		return nil, httperr.ErrBusiness("payment_already_verified")
	}

	if in.PaymentProof != "" {
		ap.PaymentProof = in.PaymentProof
	}

	domain.VerifyPayment(ap, in.Approved)

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	action := "payment_rejected"
	if in.Approved {
		action = "payment_verified"
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   action,
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{"approved": in.Approved},
	})

	return ap, nil
}
