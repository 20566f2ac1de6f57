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
	"github.com/gega19/barber-app-backoffice-sub001/internal/timezone"
)

type NotificationHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewNotificationHandler(db *gorm.DB, auditDispatcher *audit.Dispatcher) *NotificationHandler {
	return &NotificationHandler{db: db, audit: auditDispatcher}
}

// --------- Requests ---------

// SendNotificationRequest targets one user, one role, or everyone when
// both userId and targetRole are empty.
type SendNotificationRequest struct {
	UserID     *string        `json:"userId,omitempty"`
	TargetRole string         `json:"targetRole"`
	Type       string         `json:"type"`
	Title      string         `json:"title" binding:"required"`
	Body       string         `json:"body"`
	Data       map[string]any `json:"data,omitempty"`
}

// --------- Handlers ---------

func (h *NotificationHandler) List(c *gin.Context) {
	page, limit := pageParams(c)

	q := h.db.Model(&models.Notification{})

	if userID := queryTrim(c, "userId"); userID != "" {
		q = q.Where("user_id = ?", userID)
	}
	if t := strings.ToUpper(queryTrim(c, "type")); t != "" {
		q = q.Where("type = ?", t)
	}
	if queryTrim(c, "unread") == "true" {
		q = q.Where("is_read = ?", false)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "notification_count_failed", "Could not list notifications.")
		return
	}

	var notifications []models.Notification
	if err := q.
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&notifications).Error; err != nil {

		httperr.Internal(c, "notification_list_failed", "Could not list notifications.")
		return
	}

	httpresp.List(c, notifications, httpresp.NewPagination(page, limit, total))
}

func (h *NotificationHandler) Send(c *gin.Context) {
	var req SendNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.UserID != nil {
		var count int64
		h.db.Model(&models.User{}).Where("id = ?", *req.UserID).Count(&count)
		if count == 0 {
			httperr.NotFound(c, "user_not_found", "Target user not found.")
			return
		}
	}

	notifType := strings.ToUpper(strings.TrimSpace(req.Type))
	if notifType == "" {
		notifType = models.NotificationInfo
	}

	var data datatypes.JSON
	if len(req.Data) > 0 {
		if b, err := json.Marshal(req.Data); err == nil {
			data = datatypes.JSON(b)
		}
	}

	notification := models.Notification{
		UserID:     req.UserID,
		TargetRole: strings.ToUpper(strings.TrimSpace(req.TargetRole)),
		Type:       notifType,
		Title:      req.Title,
		Body:       req.Body,
		Data:       data,
	}

	if err := h.db.Create(&notification).Error; err != nil {
		httperr.Internal(c, "notification_send_failed", "Could not send notification.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   actorID(c),
		Action:   "notification_sent",
		Entity:   "notification",
		EntityID: &notification.ID,
	})

	httpresp.Created(c, notification)
}

func (h *NotificationHandler) Get(c *gin.Context) {
	var notification models.Notification
	err := h.db.Where("id = ?", c.Param("id")).First(&notification).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.NotFound(c, "notification_not_found", "Notification not found.")
		return
	}
	if err != nil {
		httperr.Internal(c, "notification_get_failed", "Could not load notification.")
		return
	}

	httpresp.OK(c, notification)
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	now := timezone.Now()

	res := h.db.Model(&models.Notification{}).
		Where("id = ? AND is_read = ?", c.Param("id"), false).
		Updates(map[string]any{"is_read": true, "read_at": now})

	if res.Error != nil {
		httperr.Internal(c, "notification_update_failed", "Could not update notification.")
		return
	}

	// Marking an already-read notification again is a no-op, not an error.
	httpresp.OK(c, gin.H{"isRead": true})
}

func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	q := h.db.Model(&models.Notification{}).Where("is_read = ?", false)

	if userID := queryTrim(c, "userId"); userID != "" {
		q = q.Where("user_id = ?", userID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		httperr.Internal(c, "notification_count_failed", "Could not count notifications.")
		return
	}

	httpresp.OK(c, gin.H{"unread": count})
}

func (h *NotificationHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	res := h.db.Where("id = ?", id).Delete(&models.Notification{})
	if res.Error != nil {
		httperr.Internal(c, "notification_delete_failed", "Could not delete notification.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "notification_not_found", "Notification not found.")
		return
	}

	httpresp.OK(c, gin.H{"deleted": true})
}
