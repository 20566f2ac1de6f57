package handlers

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/gega19/barber-app-backoffice-sub001/internal/audit"
	"github.com/gega19/barber-app-backoffice-sub001/internal/httperr"
	"github.com/gega19/barber-app-backoffice-sub001/internal/httpresp"
	"github.com/gega19/barber-app-backoffice-sub001/internal/models"
)

type PaymentMethodHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewPaymentMethodHandler(db *gorm.DB, auditDispatcher *audit.Dispatcher) *PaymentMethodHandler {
	return &PaymentMethodHandler{db: db, audit: auditDispatcher}
}

// --------- Requests ---------

// The form exposes every config field; only the ones belonging to the
// selected type are packed into the stored config bag.
type PaymentMethodRequest struct {
	Name string `json:"name" binding:"required"`
	Type string `json:"type"`

	Phone    string `json:"phone"`
	Bank     string `json:"bank"`
	IDNumber string `json:"idNumber"`

	Wallet  string `json:"wallet"`
	Network string `json:"network"`

	AccountNumber string `json:"accountNumber"`
	BankName      string `json:"bankName"`
}

var paymentConfigFields = map[string][]string{
	models.PaymentTypePagoMovil:     {"phone", "bank", "idNumber"},
	models.PaymentTypeBinance:       {"wallet", "network"},
	models.PaymentTypeTransferencia: {"accountNumber", "bankName"},
	models.PaymentTypeEfectivo:      {},
	models.PaymentTypeOtro:          {},
}

// buildPaymentConfig packs only the non-empty fields that belong to the
// active type. Unknown types keep an empty config.
func buildPaymentConfig(req *PaymentMethodRequest) datatypes.JSON {
	values := map[string]string{
		"phone":         strings.TrimSpace(req.Phone),
		"bank":          strings.TrimSpace(req.Bank),
		"idNumber":      strings.TrimSpace(req.IDNumber),
		"wallet":        strings.TrimSpace(req.Wallet),
		"network":       strings.TrimSpace(req.Network),
		"accountNumber": strings.TrimSpace(req.AccountNumber),
		"bankName":      strings.TrimSpace(req.BankName),
	}

	config := map[string]string{}
	for _, field := range paymentConfigFields[strings.ToUpper(req.Type)] {
		if v := values[field]; v != "" {
			config[field] = v
		}
	}

	if len(config) == 0 {
		return nil
	}

	b, err := json.Marshal(config)
	if err != nil {
		return nil
	}
	return datatypes.JSON(b)
}

func validPaymentType(t string) bool {
	if t == "" {
		return true
	}
	_, ok := paymentConfigFields[strings.ToUpper(t)]
	return ok
}

// --------- Handlers ---------

func (h *PaymentMethodHandler) List(c *gin.Context) {
	page, limit := pageParams(c)

	q := h.db.Model(&models.PaymentMethod{})

	switch queryTrim(c, "active") {
	case "true":
		q = q.Where("is_active = ?", true)
	case "false":
		q = q.Where("is_active = ?", false)
	}

	if t := strings.ToUpper(queryTrim(c, "type")); t != "" {
		q = q.Where("type = ?", t)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "payment_method_count_failed", "Could not list payment methods.")
		return
	}

	var methods []models.PaymentMethod
	if err := q.
		Order("name ASC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&methods).Error; err != nil {

		httperr.Internal(c, "payment_method_list_failed", "Could not list payment methods.")
		return
	}

	httpresp.List(c, methods, httpresp.NewPagination(page, limit, total))
}

func (h *PaymentMethodHandler) Create(c *gin.Context) {
	var req PaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if !validPaymentType(req.Type) {
		httperr.BadRequest(c, "invalid_payment_type", "Unknown payment method type.")
		return
	}

	method := models.PaymentMethod{
		Name:     req.Name,
		Type:     strings.ToUpper(req.Type),
		Config:   buildPaymentConfig(&req),
		IsActive: true,
	}

	if err := h.db.Create(&method).Error; err != nil {
		httperr.Internal(c, "payment_method_create_failed", "Could not create payment method.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   actorID(c),
		Action:   "payment_method_created",
		Entity:   "payment_method",
		EntityID: &method.ID,
	})

	httpresp.Created(c, method)
}

func (h *PaymentMethodHandler) Get(c *gin.Context) {
	var method models.PaymentMethod
	err := h.db.Where("id = ?", c.Param("id")).First(&method).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.NotFound(c, "payment_method_not_found", "Payment method not found.")
		return
	}
	if err != nil {
		httperr.Internal(c, "payment_method_get_failed", "Could not load payment method.")
		return
	}

	httpresp.OK(c, method)
}

func (h *PaymentMethodHandler) Update(c *gin.Context) {
	var method models.PaymentMethod
	err := h.db.Where("id = ?", c.Param("id")).First(&method).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.NotFound(c, "payment_method_not_found", "Payment method not found.")
		return
	}
	if err != nil {
		httperr.Internal(c, "payment_method_get_failed", "Could not load payment method.")
		return
	}

	var req PaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if !validPaymentType(req.Type) {
		httperr.BadRequest(c, "invalid_payment_type", "Unknown payment method type.")
		return
	}

	// The config is rebuilt from scratch on every edit so stale fields
	// from a previous type never linger.
	method.Name = req.Name
	method.Type = strings.ToUpper(req.Type)
	method.Config = buildPaymentConfig(&req)

	if err := h.db.Save(&method).Error; err != nil {
		httperr.Internal(c, "payment_method_update_failed", "Could not update payment method.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   actorID(c),
		Action:   "payment_method_updated",
		Entity:   "payment_method",
		EntityID: &method.ID,
	})

	httpresp.OK(c, method)
}

// ToggleActive flips only the isActive flag, matching the list page's
// quick toggle that sends `{isActive: !current}` and reloads.
func (h *PaymentMethodHandler) ToggleActive(c *gin.Context) {
	var req ToggleActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	res := h.db.Model(&models.PaymentMethod{}).
		Where("id = ?", c.Param("id")).
		Update("is_active", *req.IsActive)

	if res.Error != nil {
		httperr.Internal(c, "payment_method_update_failed", "Could not update payment method.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "payment_method_not_found", "Payment method not found.")
		return
	}

	httpresp.OK(c, gin.H{"isActive": *req.IsActive})
}

func (h *PaymentMethodHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	res := h.db.Where("id = ?", id).Delete(&models.PaymentMethod{})
	if res.Error != nil {
		httperr.Internal(c, "payment_method_delete_failed", "Could not delete payment method.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "payment_method_not_found", "Payment method not found.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   actorID(c),
		Action:   "payment_method_deleted",
		Entity:   "payment_method",
		EntityID: &id,
	})

	httpresp.OK(c, gin.H{"deleted": true})
}
