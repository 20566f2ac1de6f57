package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/gega19/barber-app-backoffice-sub001/internal/audit"
	"github.com/gega19/barber-app-backoffice-sub001/internal/httperr"
	"github.com/gega19/barber-app-backoffice-sub001/internal/httpresp"
	"github.com/gega19/barber-app-backoffice-sub001/internal/models"
)

type SpecialtyHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewSpecialtyHandler(db *gorm.DB, auditDispatcher *audit.Dispatcher) *SpecialtyHandler {
	return &SpecialtyHandler{db: db, audit: auditDispatcher}
}

type CreateSpecialtyRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type UpdateSpecialtyRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (h *SpecialtyHandler) List(c *gin.Context) {
	page, limit := pageParams(c)

	q := h.db.Model(&models.Specialty{})

	if search := strings.ToLower(queryTrim(c, "search")); search != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+search+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "specialty_count_failed", "Could not list specialties.")
		return
	}

	var specialties []models.Specialty
	if err := q.
		Order("name ASC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&specialties).Error; err != nil {

		httperr.Internal(c, "specialty_list_failed", "Could not list specialties.")
		return
	}

	httpresp.List(c, specialties, httpresp.NewPagination(page, limit, total))
}

func (h *SpecialtyHandler) Create(c *gin.Context) {
	var req CreateSpecialtyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	specialty := models.Specialty{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
	}

	if err := h.db.Create(&specialty).Error; err != nil {
		httperr.Internal(c, "specialty_create_failed", "Could not create specialty.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   actorID(c),
		Action:   "specialty_created",
		Entity:   "specialty",
		EntityID: &specialty.ID,
	})

	httpresp.Created(c, specialty)
}

func (h *SpecialtyHandler) Get(c *gin.Context) {
	var specialty models.Specialty
	err := h.db.Where("id = ?", c.Param("id")).First(&specialty).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.NotFound(c, "specialty_not_found", "Specialty not found.")
		return
	}
	if err != nil {
		httperr.Internal(c, "specialty_get_failed", "Could not load specialty.")
		return
	}

	httpresp.OK(c, specialty)
}

func (h *SpecialtyHandler) Update(c *gin.Context) {
	var specialty models.Specialty
	err := h.db.Where("id = ?", c.Param("id")).First(&specialty).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.NotFound(c, "specialty_not_found", "Specialty not found.")
		return
	}
	if err != nil {
		httperr.Internal(c, "specialty_get_failed", "Could not load specialty.")
		return
	}

	var req UpdateSpecialtyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Name != nil {
		specialty.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		specialty.Description = *req.Description
	}

	if err := h.db.Save(&specialty).Error; err != nil {
		httperr.Internal(c, "specialty_update_failed", "Could not update specialty.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   actorID(c),
		Action:   "specialty_updated",
		Entity:   "specialty",
		EntityID: &specialty.ID,
	})

	httpresp.OK(c, specialty)
}

func (h *SpecialtyHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	res := h.db.Where("id = ?", id).Delete(&models.Specialty{})
	if res.Error != nil {
		httperr.Internal(c, "specialty_delete_failed", "Could not delete specialty.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "specialty_not_found", "Specialty not found.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   actorID(c),
		Action:   "specialty_deleted",
		Entity:   "specialty",
		EntityID: &id,
	})

	httpresp.OK(c, gin.H{"deleted": true})
}
