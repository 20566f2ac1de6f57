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

type WorkplaceHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewWorkplaceHandler(db *gorm.DB, auditDispatcher *audit.Dispatcher) *WorkplaceHandler {
	return &WorkplaceHandler{db: db, audit: auditDispatcher}
}

// --------- Requests ---------

type WorkplaceRequest struct {
	Name      string   `json:"name" binding:"required"`
	Address   string   `json:"address"`
	Phone     string   `json:"phone"`
	BarberIDs []string `json:"barberIds"`
}

// --------- Handlers ---------

func (h *WorkplaceHandler) List(c *gin.Context) {
	page, limit := pageParams(c)

	q := h.db.Model(&models.Workplace{}).Preload("Barbers")

	switch queryTrim(c, "active") {
	case "true":
		q = q.Where("is_active = ?", true)
	case "false":
		q = q.Where("is_active = ?", false)
	}

	if search := strings.ToLower(queryTrim(c, "search")); search != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+search+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "workplace_count_failed", "Could not list workplaces.")
		return
	}

	var workplaces []models.Workplace
	if err := q.
		Order("name ASC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&workplaces).Error; err != nil {

		httperr.Internal(c, "workplace_list_failed", "Could not list workplaces.")
		return
	}

	httpresp.List(c, workplaces, httpresp.NewPagination(page, limit, total))
}

func (h *WorkplaceHandler) Create(c *gin.Context) {
	var req WorkplaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	workplace := models.Workplace{
		Name:     req.Name,
		Address:  req.Address,
		Phone:    req.Phone,
		IsActive: true,
	}

	if err := h.db.Create(&workplace).Error; err != nil {
		httperr.Internal(c, "workplace_create_failed", "Could not create workplace.")
		return
	}

	if err := h.assignBarbers(&workplace, req.BarberIDs); err != nil {
		httperr.Internal(c, "workplace_assign_failed", "Could not assign barbers.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   actorID(c),
		Action:   "workplace_created",
		Entity:   "workplace",
		EntityID: &workplace.ID,
	})

	httpresp.Created(c, workplace)
}

func (h *WorkplaceHandler) Get(c *gin.Context) {
	var workplace models.Workplace
	err := h.db.Preload("Barbers").Where("id = ?", c.Param("id")).First(&workplace).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.NotFound(c, "workplace_not_found", "Workplace not found.")
		return
	}
	if err != nil {
		httperr.Internal(c, "workplace_get_failed", "Could not load workplace.")
		return
	}

	httpresp.OK(c, workplace)
}

func (h *WorkplaceHandler) Update(c *gin.Context) {
	var workplace models.Workplace
	err := h.db.Preload("Barbers").Where("id = ?", c.Param("id")).First(&workplace).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.NotFound(c, "workplace_not_found", "Workplace not found.")
		return
	}
	if err != nil {
		httperr.Internal(c, "workplace_get_failed", "Could not load workplace.")
		return
	}

	var req WorkplaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	workplace.Name = req.Name
	workplace.Address = req.Address
	workplace.Phone = req.Phone

	if err := h.db.Save(&workplace).Error; err != nil {
		httperr.Internal(c, "workplace_update_failed", "Could not update workplace.")
		return
	}

	if err := h.assignBarbers(&workplace, req.BarberIDs); err != nil {
		httperr.Internal(c, "workplace_assign_failed", "Could not assign barbers.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   actorID(c),
		Action:   "workplace_updated",
		Entity:   "workplace",
		EntityID: &workplace.ID,
	})

	httpresp.OK(c, workplace)
}

func (h *WorkplaceHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	var workplace models.Workplace
	err := h.db.Preload("Barbers").Where("id = ?", id).First(&workplace).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.NotFound(c, "workplace_not_found", "Workplace not found.")
		return
	}
	if err != nil {
		httperr.Internal(c, "workplace_get_failed", "Could not load workplace.")
		return
	}

	affected := make([]string, 0, len(workplace.Barbers))
	for _, b := range workplace.Barbers {
		affected = append(affected, b.ID)
	}

	if err := h.db.Model(&workplace).Association("Barbers").Clear(); err != nil {
		httperr.Internal(c, "workplace_delete_failed", "Could not delete workplace.")
		return
	}

	if err := h.db.Delete(&workplace).Error; err != nil {
		httperr.Internal(c, "workplace_delete_failed", "Could not delete workplace.")
		return
	}

	h.syncBarberFlags(affected)

	h.audit.Dispatch(audit.Event{
		UserID:   actorID(c),
		Action:   "workplace_deleted",
		Entity:   "workplace",
		EntityID: &id,
	})

	httpresp.OK(c, gin.H{"deleted": true})
}

// assignBarbers replaces the workplace's barber set and refreshes the
// denormalized isBarber flag for everyone touched by the change.
func (h *WorkplaceHandler) assignBarbers(workplace *models.Workplace, barberIDs []string) error {
	previous := make([]string, 0, len(workplace.Barbers))
	for _, b := range workplace.Barbers {
		previous = append(previous, b.ID)
	}

	var barbers []models.User
	if len(barberIDs) > 0 {
		if err := h.db.Where("id IN ?", barberIDs).Find(&barbers).Error; err != nil {
			return err
		}
	}

	if err := h.db.Model(workplace).Association("Barbers").Replace(barbers); err != nil {
		return err
	}
	workplace.Barbers = barbers

	h.syncBarberFlags(append(previous, barberIDs...))
	return nil
}

// syncBarberFlags recomputes users.is_barber from workplace membership for
// the given user ids.
func (h *WorkplaceHandler) syncBarberFlags(userIDs []string) {
	if len(userIDs) == 0 {
		return
	}

	h.db.Model(&models.User{}).
		Where("id IN ?", userIDs).
		Update("is_barber", gorm.Expr(
			"EXISTS (SELECT 1 FROM workplace_barbers WHERE workplace_barbers.user_id = users.id)",
		))
}
