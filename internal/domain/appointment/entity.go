package appointment

import (
	"time"

	"github.com/gega19/barber-app-backoffice-sub001/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Confirm(ap *models.Appointment) error {
	if err := CanConfirm(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusConfirmed)
	return nil
}

func Complete(ap *models.Appointment, now time.Time) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	return nil
}

func Cancel(ap *models.Appointment, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	return nil
}

// VerifyPayment marks the manual payment as reviewed. Proof is the stored
// image reference staff looked at; rejection keeps it for the record.
func VerifyPayment(ap *models.Appointment, approved bool) {
	if approved {
		ap.PaymentStatus = string(PaymentPaid)
	} else {
		ap.PaymentStatus = string(PaymentRejected)
	}
}
