package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/gega19/barber-app-backoffice-sub001/internal/audit"
	"github.com/gega19/barber-app-backoffice-sub001/internal/httperr"
	"github.com/gega19/barber-app-backoffice-sub001/internal/httpresp"
	"github.com/gega19/barber-app-backoffice-sub001/internal/models"
	"github.com/gega19/barber-app-backoffice-sub001/internal/timezone"
)

type PromotionHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewPromotionHandler(db *gorm.DB, auditDispatcher *audit.Dispatcher) *PromotionHandler {
	return &PromotionHandler{db: db, audit: auditDispatcher}
}

// --------- Requests ---------

type CreatePromotionRequest struct {
	Title          string   `json:"title" binding:"required"`
	Description    string   `json:"description"`
	Code           string   `json:"code" binding:"required"`
	Discount       *float64 `json:"discount,omitempty" binding:"omitempty,gt=0,lte=100"`
	DiscountAmount *float64 `json:"discountAmount,omitempty" binding:"omitempty,gt=0"`
	ValidFrom      string   `json:"validFrom" binding:"required"`
	ValidUntil     string   `json:"validUntil" binding:"required"`
	Image          string   `json:"image"`
	BarberID       *string  `json:"barberId,omitempty"`
}

type UpdatePromotionRequest struct {
	Title          *string  `json:"title,omitempty"`
	Description    *string  `json:"description,omitempty"`
	Code           *string  `json:"code,omitempty"`
	Discount       *float64 `json:"discount,omitempty" binding:"omitempty,gt=0,lte=100"`
	DiscountAmount *float64 `json:"discountAmount,omitempty" binding:"omitempty,gt=0"`
	ValidFrom      *string  `json:"validFrom,omitempty"`
	ValidUntil     *string  `json:"validUntil,omitempty"`
	Image          *string  `json:"image,omitempty"`
	BarberID       *string  `json:"barberId,omitempty"`
}

type ToggleActiveRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

// --------- Handlers ---------

func (h *PromotionHandler) List(c *gin.Context) {
	page, limit := pageParams(c)

	q := h.db.Model(&models.Promotion{}).Preload("Barber")

	switch queryTrim(c, "active") {
	case "true":
		q = q.Where("is_active = ?", true)
	case "false":
		q = q.Where("is_active = ?", false)
	}

	if barberID := queryTrim(c, "barberId"); barberID != "" {
		q = q.Where("barber_id = ?", barberID)
	}

	// current=true keeps only promotions inside their validity window.
	if queryTrim(c, "current") == "true" {
		now := timezone.Now()
		q = q.Where("valid_from <= ? AND valid_until >= ?", now, now)
	}

	if search := strings.ToLower(queryTrim(c, "search")); search != "" {
		like := "%" + search + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(code) LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "promotion_count_failed", "Could not list promotions.")
		return
	}

	var promotions []models.Promotion
	if err := q.
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&promotions).Error; err != nil {

		httperr.Internal(c, "promotion_list_failed", "Could not list promotions.")
		return
	}

	httpresp.List(c, promotions, httpresp.NewPagination(page, limit, total))
}

func (h *PromotionHandler) Create(c *gin.Context) {
	var req CreatePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	// A promotion needs a percentage or a fixed amount. Both at once is
	// allowed; display prefers the percentage.
	if req.Discount == nil && req.DiscountAmount == nil {
		httperr.BadRequest(c, "discount_required", "Set a discount percentage or a fixed amount.")
		return
	}

	validFrom, err := time.Parse("2006-01-02", req.ValidFrom)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "validFrom must be YYYY-MM-DD.")
		return
	}
	validUntil, err := time.Parse("2006-01-02", req.ValidUntil)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "validUntil must be YYYY-MM-DD.")
		return
	}
	if validUntil.Before(validFrom) {
		httperr.BadRequest(c, "invalid_date_range", "validUntil is before validFrom.")
		return
	}

	promo := models.Promotion{
		Title:          req.Title,
		Description:    req.Description,
		Code:           strings.ToUpper(strings.TrimSpace(req.Code)),
		Discount:       req.Discount,
		DiscountAmount: req.DiscountAmount,
		ValidFrom:      validFrom,
		ValidUntil:     validUntil,
		IsActive:       true,
		Image:          req.Image,
		BarberID:       req.BarberID,
	}

	if err := h.db.Create(&promo).Error; err != nil {
		httperr.Internal(c, "promotion_create_failed", "Could not create promotion.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   actorID(c),
		Action:   "promotion_created",
		Entity:   "promotion",
		EntityID: &promo.ID,
	})

	httpresp.Created(c, promo)
}

func (h *PromotionHandler) Get(c *gin.Context) {
	var promo models.Promotion
	err := h.db.Preload("Barber").Where("id = ?", c.Param("id")).First(&promo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.NotFound(c, "promotion_not_found", "Promotion not found.")
		return
	}
	if err != nil {
		httperr.Internal(c, "promotion_get_failed", "Could not load promotion.")
		return
	}

	httpresp.OK(c, promo)
}

func (h *PromotionHandler) Update(c *gin.Context) {
	var promo models.Promotion
	err := h.db.Where("id = ?", c.Param("id")).First(&promo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.NotFound(c, "promotion_not_found", "Promotion not found.")
		return
	}
	if err != nil {
		httperr.Internal(c, "promotion_get_failed", "Could not load promotion.")
		return
	}

	var req UpdatePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Title != nil {
		promo.Title = *req.Title
	}
	if req.Description != nil {
		promo.Description = *req.Description
	}
	if req.Code != nil {
		promo.Code = strings.ToUpper(strings.TrimSpace(*req.Code))
	}
	if req.Discount != nil {
		promo.Discount = req.Discount
	}
	if req.DiscountAmount != nil {
		promo.DiscountAmount = req.DiscountAmount
	}
	if req.ValidFrom != nil {
		t, err := time.Parse("2006-01-02", *req.ValidFrom)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "validFrom must be YYYY-MM-DD.")
			return
		}
		promo.ValidFrom = t
	}
	if req.ValidUntil != nil {
		t, err := time.Parse("2006-01-02", *req.ValidUntil)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "validUntil must be YYYY-MM-DD.")
			return
		}
		promo.ValidUntil = t
	}
	if req.Image != nil {
		promo.Image = *req.Image
	}
	if req.BarberID != nil {
		promo.BarberID = req.BarberID
	}

	if promo.Discount == nil && promo.DiscountAmount == nil {
		httperr.BadRequest(c, "discount_required", "Set a discount percentage or a fixed amount.")
		return
	}

	if err := h.db.Save(&promo).Error; err != nil {
		httperr.Internal(c, "promotion_update_failed", "Could not update promotion.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   actorID(c),
		Action:   "promotion_updated",
		Entity:   "promotion",
		EntityID: &promo.ID,
	})

	httpresp.OK(c, promo)
}

// ToggleActive updates only the isActive flag.
func (h *PromotionHandler) ToggleActive(c *gin.Context) {
	var req ToggleActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	res := h.db.Model(&models.Promotion{}).
		Where("id = ?", c.Param("id")).
		Update("is_active", *req.IsActive)

	if res.Error != nil {
		httperr.Internal(c, "promotion_update_failed", "Could not update promotion.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "promotion_not_found", "Promotion not found.")
		return
	}

	httpresp.OK(c, gin.H{"isActive": *req.IsActive})
}

func (h *PromotionHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	res := h.db.Where("id = ?", id).Delete(&models.Promotion{})
	if res.Error != nil {
		httperr.Internal(c, "promotion_delete_failed", "Could not delete promotion.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "promotion_not_found", "Promotion not found.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   actorID(c),
		Action:   "promotion_deleted",
		Entity:   "promotion",
		EntityID: &id,
	})

	httpresp.OK(c, gin.H{"deleted": true})
}
