package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/gega19/barber-app-backoffice-sub001/internal/httperr"
	"github.com/gega19/barber-app-backoffice-sub001/internal/httpresp"
	"github.com/gega19/barber-app-backoffice-sub001/internal/models"
)

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	page, limit := pageParams(c)

	q := h.db.Model(&models.AuditLog{})

	if action := queryTrim(c, "action"); action != "" {
		q = q.Where("action = ?", action)
	}
	if entity := queryTrim(c, "entity"); entity != "" {
		q = q.Where("entity = ?", entity)
	}
	if userID := queryTrim(c, "userId"); userID != "" {
		q = q.Where("user_id = ?", userID)
	}
	if fromStr := queryTrim(c, "from"); fromStr != "" {
		if from, err := time.Parse("2006-01-02", fromStr); err == nil {
			q = q.Where("created_at >= ?", from)
		}
	}
	if toStr := queryTrim(c, "to"); toStr != "" {
		if to, err := time.Parse("2006-01-02", toStr); err == nil {
			q = q.Where("created_at <= ?", to.Add(24*time.Hour))
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "audit_count_failed", "Could not count audit logs.")
		return
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&logs).Error; err != nil {

		httperr.Internal(c, "audit_list_failed", "Could not list audit logs.")
		return
	}

	httpresp.List(c, logs, httpresp.NewPagination(page, limit, total))
}
