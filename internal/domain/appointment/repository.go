package appointment

import (
	"context"

	"github.com/gega19/barber-app-backoffice-sub001/internal/models"
)

type Repository interface {
	GetAppointment(
		ctx context.Context,
		id string,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error
}
