package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	domain "github.com/gega19/barber-app-backoffice-sub001/internal/domain/appointment"
	"github.com/gega19/barber-app-backoffice-sub001/internal/infra/repository"
	"github.com/gega19/barber-app-backoffice-sub001/internal/models"
	ucAppointment "github.com/gega19/barber-app-backoffice-sub001/internal/usecase/appointment"
)

func setupAppointmentRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	db := setupTestDB(t)
	auditDispatcher := newTestAudit(db)
	repo := repository.NewAppointmentGormRepository(db)

	h := NewAppointmentHandler(
		db,
		auditDispatcher,
		ucAppointment.NewConfirmAppointment(repo, auditDispatcher),
		ucAppointment.NewCompleteAppointment(repo, auditDispatcher),
		ucAppointment.NewCancelAppointment(repo, auditDispatcher),
		ucAppointment.NewVerifyPayment(repo, auditDispatcher),
	)

	r := newTestRouter()
	r.GET("/appointments", h.List)
	r.POST("/appointments", h.Create)
	r.GET("/appointments/:id", h.Get)
	r.PUT("/appointments/:id", h.Update)
	r.DELETE("/appointments/:id", h.Delete)
	r.PATCH("/appointments/:id/confirm", h.Confirm)
	r.PATCH("/appointments/:id/complete", h.Complete)
	r.PATCH("/appointments/:id/cancel", h.Cancel)
	r.PATCH("/appointments/:id/payment", h.VerifyPayment)

	return r, db
}

func seedAppointmentPeople(t *testing.T, db *gorm.DB) (client, barber models.User) {
	t.Helper()

	client = models.User{Name: "Cliente", Email: "cliente@example.com", Role: models.RoleClient}
	barber = models.User{Name: "Barbero", Email: "barbero@example.com", Role: models.RoleBarber, IsBarber: true}
	require.NoError(t, db.Create(&client).Error)
	require.NoError(t, db.Create(&barber).Error)
	return client, barber
}

func seedAppointment(t *testing.T, db *gorm.DB, status domain.Status) models.Appointment {
	t.Helper()

	client, barber := seedAppointmentPeople(t, db)
	ap := models.Appointment{
		ClientID:      client.ID,
		BarberID:      barber.ID,
		Date:          "2026-09-15",
		Time:          "10:30",
		Status:        string(status),
		PaymentStatus: string(domain.PaymentPending),
		Price:         12,
	}
	require.NoError(t, db.Create(&ap).Error)
	return ap
}

func TestCreateAppointment_StartsPending(t *testing.T) {
	r, db := setupAppointmentRouter(t)
	client, barber := seedAppointmentPeople(t, db)

	rr := doRequest(r, http.MethodPost, "/appointments", map[string]any{
		"clientId": client.ID,
		"barberId": barber.ID,
		"date":     "2026-09-15",
		"time":     "10:30",
		"price":    12,
	})

	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var ap models.Appointment
	decodeData(t, rr, &ap)
	assert.Equal(t, string(domain.StatusPending), ap.Status)
	assert.Equal(t, string(domain.PaymentPending), ap.PaymentStatus)
}

func TestCreateAppointment_BadDateFormat(t *testing.T) {
	r, db := setupAppointmentRouter(t)
	client, barber := seedAppointmentPeople(t, db)

	rr := doRequest(r, http.MethodPost, "/appointments", map[string]any{
		"clientId": client.ID,
		"barberId": barber.ID,
		"date":     "15/09/2026",
		"time":     "10:30",
	})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "invalid_date", errorCode(t, rr))
}

func TestConfirmAppointment(t *testing.T) {
	r, db := setupAppointmentRouter(t)
	ap := seedAppointment(t, db, domain.StatusPending)

	rr := doRequest(r, http.MethodPatch, "/appointments/"+ap.ID+"/confirm", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var updated models.Appointment
	decodeData(t, rr, &updated)
	assert.Equal(t, string(domain.StatusConfirmed), updated.Status)
}

func TestConfirmAppointment_OnlyFromPending(t *testing.T) {
	r, db := setupAppointmentRouter(t)
	ap := seedAppointment(t, db, domain.StatusCompleted)

	rr := doRequest(r, http.MethodPatch, "/appointments/"+ap.ID+"/confirm", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "invalid_state", errorCode(t, rr))
}

func TestCompleteAppointment_SetsCompletedAt(t *testing.T) {
	r, db := setupAppointmentRouter(t)
	ap := seedAppointment(t, db, domain.StatusConfirmed)

	rr := doRequest(r, http.MethodPatch, "/appointments/"+ap.ID+"/complete", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var reloaded models.Appointment
	require.NoError(t, db.First(&reloaded, "id = ?", ap.ID).Error)
	assert.Equal(t, string(domain.StatusCompleted), reloaded.Status)
	assert.NotNil(t, reloaded.CompletedAt)
}

func TestCompleteAppointment_RequiresConfirmed(t *testing.T) {
	r, db := setupAppointmentRouter(t)
	ap := seedAppointment(t, db, domain.StatusPending)

	rr := doRequest(r, http.MethodPatch, "/appointments/"+ap.ID+"/complete", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "invalid_state", errorCode(t, rr))
}

func TestCancelAppointment_FromPendingOrConfirmed(t *testing.T) {
	r, db := setupAppointmentRouter(t)

	ap := seedAppointment(t, db, domain.StatusConfirmed)

	rr := doRequest(r, http.MethodPatch, "/appointments/"+ap.ID+"/cancel", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var reloaded models.Appointment
	require.NoError(t, db.First(&reloaded, "id = ?", ap.ID).Error)
	assert.Equal(t, string(domain.StatusCancelled), reloaded.Status)
	assert.NotNil(t, reloaded.CancelledAt)

	// a cancelled appointment stays cancelled
	rr = doRequest(r, http.MethodPatch, "/appointments/"+ap.ID+"/cancel", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "invalid_state", errorCode(t, rr))
}

func TestTransition_UnknownAppointment(t *testing.T) {
	r, _ := setupAppointmentRouter(t)

	rr := doRequest(r, http.MethodPatch, "/appointments/nope/confirm", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "appointment_not_found", errorCode(t, rr))
}

func TestVerifyPayment_Approve(t *testing.T) {
	r, db := setupAppointmentRouter(t)
	ap := seedAppointment(t, db, domain.StatusConfirmed)

	rr := doRequest(r, http.MethodPatch, "/appointments/"+ap.ID+"/payment", map[string]any{
		"approved":     true,
		"paymentProof": "payment-proofs/abc.webp",
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var reloaded models.Appointment
	require.NoError(t, db.First(&reloaded, "id = ?", ap.ID).Error)
	assert.Equal(t, string(domain.PaymentPaid), reloaded.PaymentStatus)
	assert.Equal(t, "payment-proofs/abc.webp", reloaded.PaymentProof)
}

func TestVerifyPayment_AlreadyPaid(t *testing.T) {
	r, db := setupAppointmentRouter(t)
	ap := seedAppointment(t, db, domain.StatusConfirmed)
	require.NoError(t, db.Model(&ap).Update("payment_status", string(domain.PaymentPaid)).Error)

	rr := doRequest(r, http.MethodPatch, "/appointments/"+ap.ID+"/payment", map[string]any{
		"approved": false,
	})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "payment_already_verified", errorCode(t, rr))
}

func TestVerifyPayment_Reject(t *testing.T) {
	r, db := setupAppointmentRouter(t)
	ap := seedAppointment(t, db, domain.StatusConfirmed)

	rr := doRequest(r, http.MethodPatch, "/appointments/"+ap.ID+"/payment", map[string]any{
		"approved": false,
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var reloaded models.Appointment
	require.NoError(t, db.First(&reloaded, "id = ?", ap.ID).Error)
	assert.Equal(t, string(domain.PaymentRejected), reloaded.PaymentStatus)
}

func TestListAppointments_StatusAndRangeFilters(t *testing.T) {
	r, db := setupAppointmentRouter(t)
	client, barber := seedAppointmentPeople(t, db)

	seed := []struct {
		date   string
		status domain.Status
	}{
		{"2026-09-01", domain.StatusPending},
		{"2026-09-10", domain.StatusConfirmed},
		{"2026-09-20", domain.StatusConfirmed},
		{"2026-10-01", domain.StatusCancelled},
	}
	for _, s := range seed {
		require.NoError(t, db.Create(&models.Appointment{
			ClientID:      client.ID,
			BarberID:      barber.ID,
			Date:          s.date,
			Time:          "09:00",
			Status:        string(s.status),
			PaymentStatus: string(domain.PaymentPending),
		}).Error)
	}

	rr := doRequest(r, http.MethodGet, "/appointments?status=CONFIRMED", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var list []models.Appointment
	env := decodeData(t, rr, &list)
	assert.Len(t, list, 2)
	assert.Equal(t, int64(2), env.Pagination.Total)

	rr = doRequest(r, http.MethodGet, "/appointments?from=2026-09-05&to=2026-09-30", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	env = decodeData(t, rr, &list)
	assert.Len(t, list, 2)
	assert.Equal(t, int64(2), env.Pagination.Total)
}

func TestUpdateAppointment_RejectsUnknownStatus(t *testing.T) {
	r, db := setupAppointmentRouter(t)
	ap := seedAppointment(t, db, domain.StatusPending)

	rr := doRequest(r, http.MethodPut, "/appointments/"+ap.ID, map[string]any{"status": "WAITING"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "invalid_status", errorCode(t, rr))
}
