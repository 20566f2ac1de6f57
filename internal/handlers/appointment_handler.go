package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/gega19/barber-app-backoffice-sub001/internal/audit"
	domain "github.com/gega19/barber-app-backoffice-sub001/internal/domain/appointment"
	"github.com/gega19/barber-app-backoffice-sub001/internal/httperr"
	"github.com/gega19/barber-app-backoffice-sub001/internal/httpresp"
	"github.com/gega19/barber-app-backoffice-sub001/internal/middleware"
	"github.com/gega19/barber-app-backoffice-sub001/internal/models"
	ucAppointment "github.com/gega19/barber-app-backoffice-sub001/internal/usecase/appointment"
)

type AppointmentHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher

	confirmUC       *ucAppointment.ConfirmAppointment
	completeUC      *ucAppointment.CompleteAppointment
	cancelUC        *ucAppointment.CancelAppointment
	verifyPaymentUC *ucAppointment.VerifyPayment
}

func NewAppointmentHandler(
	db *gorm.DB,
	auditDispatcher *audit.Dispatcher,
	confirmUC *ucAppointment.ConfirmAppointment,
	completeUC *ucAppointment.CompleteAppointment,
	cancelUC *ucAppointment.CancelAppointment,
	verifyPaymentUC *ucAppointment.VerifyPayment,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:              db,
		audit:           auditDispatcher,
		confirmUC:       confirmUC,
		completeUC:      completeUC,
		cancelUC:        cancelUC,
		verifyPaymentUC: verifyPaymentUC,
	}
}

// --------- Requests ---------

type CreateAppointmentRequest struct {
	ClientID        string  `json:"clientId" binding:"required"`
	BarberID        string  `json:"barberId" binding:"required"`
	SpecialtyID     *string `json:"specialtyId,omitempty"`
	Date            string  `json:"date" binding:"required"`
	Time            string  `json:"time" binding:"required"`
	PaymentMethodID *string `json:"paymentMethodId,omitempty"`
	Price           float64 `json:"price"`
	Notes           string  `json:"notes"`
}

// UpdateAppointmentRequest is intentionally permissive on status and
// payment status so staff can correct records; the dedicated transition
// endpoints are the guarded path.
type UpdateAppointmentRequest struct {
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

type VerifyPaymentRequest struct {
	Approved     *bool  `json:"approved" binding:"required"`
	PaymentProof string `json:"paymentProof"`
}

// --------- Handlers ---------

func (h *AppointmentHandler) List(c *gin.Context) {
	page, limit := pageParams(c)

	q := h.db.Model(&models.Appointment{}).
		Preload("Client").
		Preload("Barber").
		Preload("Specialty").
		Preload("PaymentMethod")

	if status := strings.ToUpper(queryTrim(c, "status")); status != "" {
		q = q.Where("status = ?", status)
	}
	if ps := strings.ToUpper(queryTrim(c, "paymentStatus")); ps != "" {
		q = q.Where("payment_status = ?", ps)
	}
	if barberID := queryTrim(c, "barberId"); barberID != "" {
		q = q.Where("barber_id = ?", barberID)
	}
	if clientID := queryTrim(c, "clientId"); clientID != "" {
		q = q.Where("client_id = ?", clientID)
	}
	if date := queryTrim(c, "date"); date != "" {
		q = q.Where("date = ?", date)
	}
	if from := queryTrim(c, "from"); from != "" {
		q = q.Where("date >= ?", from)
	}
	if to := queryTrim(c, "to"); to != "" {
		q = q.Where("date <= ?", to)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "appointment_count_failed", "Could not list appointments.")
		return
	}

	var appointments []models.Appointment
	if err := q.
		Order("date DESC, time DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&appointments).Error; err != nil {

		httperr.Internal(c, "appointment_list_failed", "Could not list appointments.")
		return
	}

	httpresp.List(c, appointments, httpresp.NewPagination(page, limit, total))
}

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		httperr.BadRequest(c, "invalid_date", "Date must be YYYY-MM-DD.")
		return
	}
	if _, err := time.Parse("15:04", req.Time); err != nil {
		httperr.BadRequest(c, "invalid_time", "Time must be HH:MM.")
		return
	}

	ap := models.Appointment{
		ClientID:        req.ClientID,
		BarberID:        req.BarberID,
		SpecialtyID:     req.SpecialtyID,
		Date:            req.Date,
		Time:            req.Time,
		Status:          string(domain.StatusPending),
		PaymentMethodID: req.PaymentMethodID,
		PaymentStatus:   string(domain.PaymentPending),
		Price:           req.Price,
		Notes:           req.Notes,
	}

	if err := h.db.Create(&ap).Error; err != nil {
		httperr.Internal(c, "appointment_create_failed", "Could not create appointment.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   actorID(c),
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	httpresp.Created(c, ap)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	var ap models.Appointment
	err := h.db.
		Preload("Client").
		Preload("Barber").
		Preload("Specialty").
		Preload("PaymentMethod").
		Where("id = ?", c.Param("id")).
		First(&ap).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
		return
	}
	if err != nil {
		httperr.Internal(c, "appointment_get_failed", "Could not load appointment.")
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	var ap models.Appointment
	err := h.db.Where("id = ?", c.Param("id")).First(&ap).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
		return
	}
	if err != nil {
		httperr.Internal(c, "appointment_get_failed", "Could not load appointment.")
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Status != nil && !domain.Status(strings.ToUpper(*req.Status)).Valid() {
		httperr.BadRequest(c, "invalid_status", "Unknown appointment status.")
		return
	}
	if req.PaymentStatus != nil && !domain.PaymentStatus(strings.ToUpper(*req.PaymentStatus)).Valid() {
		httperr.BadRequest(c, "invalid_payment_status", "Unknown payment status.")
		return
	}

	if req.ClientID != nil {
		ap.ClientID = *req.ClientID
	}
	if req.BarberID != nil {
		ap.BarberID = *req.BarberID
	}
	if req.SpecialtyID != nil {
		ap.SpecialtyID = req.SpecialtyID
	}
	if req.Date != nil {
		ap.Date = *req.Date
	}
	if req.Time != nil {
		ap.Time = *req.Time
	}
	if req.Status != nil {
		ap.Status = strings.ToUpper(*req.Status)
	}
	if req.PaymentMethodID != nil {
		ap.PaymentMethodID = req.PaymentMethodID
	}
	if req.PaymentStatus != nil {
		ap.PaymentStatus = strings.ToUpper(*req.PaymentStatus)
	}
	if req.PaymentProof != nil {
		ap.PaymentProof = *req.PaymentProof
	}
	if req.Price != nil {
		ap.Price = *req.Price
	}
	if req.Notes != nil {
		ap.Notes = *req.Notes
	}

	if err := h.db.Save(&ap).Error; err != nil {
		httperr.Internal(c, "appointment_update_failed", "Could not update appointment.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   actorID(c),
		Action:   "appointment_updated",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	res := h.db.Where("id = ?", id).Delete(&models.Appointment{})
	if res.Error != nil {
		httperr.Internal(c, "appointment_delete_failed", "Could not delete appointment.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   actorID(c),
		Action:   "appointment_deleted",
		Entity:   "appointment",
		EntityID: &id,
	})

	httpresp.OK(c, gin.H{"deleted": true})
}

// --------- Transitions ---------

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	actor := c.MustGet(middleware.ContextUserID).(string)

	ap, err := h.confirmUC.Execute(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		writeTransitionError(c, err)
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	actor := c.MustGet(middleware.ContextUserID).(string)

	ap, err := h.completeUC.Execute(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		writeTransitionError(c, err)
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	actor := c.MustGet(middleware.ContextUserID).(string)

	ap, err := h.cancelUC.Execute(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		writeTransitionError(c, err)
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) VerifyPayment(c *gin.Context) {
	actor := c.MustGet(middleware.ContextUserID).(string)

	var req VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	ap, err := h.verifyPaymentUC.Execute(c.Request.Context(), actor, ucAppointment.VerifyPaymentInput{
		AppointmentID: c.Param("id"),
		Approved:      *req.Approved,
		PaymentProof:  req.PaymentProof,
	})
	if err != nil {
		writeTransitionError(c, err)
		return
	}
	httpresp.OK(c, ap)
}

func writeTransitionError(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "appointment_not_found"):
		httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
	case httperr.IsBusiness(err, "invalid_state"):
		httperr.BadRequest(c, "invalid_state", "The appointment is not in a state that allows this.")
	case httperr.IsBusiness(err, "payment_already_verified"):
		httperr.BadRequest(c, "payment_already_verified", "Payment was already verified.")
	default:
		httperr.Internal(c, "appointment_transition_failed", "Could not update appointment.")
	}
}
