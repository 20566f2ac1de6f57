package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/gega19/barber-app-backoffice-sub001/internal/audit"
	"github.com/gega19/barber-app-backoffice-sub001/internal/httperr"
	"github.com/gega19/barber-app-backoffice-sub001/internal/httpresp"
	"github.com/gega19/barber-app-backoffice-sub001/internal/models"
	"github.com/gega19/barber-app-backoffice-sub001/internal/timezone"
	"github.com/gega19/barber-app-backoffice-sub001/internal/validators"
)

type UserHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher

	// emailDomainValid is swapped out in tests to avoid DNS lookups.
	emailDomainValid func(string) bool
}

func NewUserHandler(db *gorm.DB, auditDispatcher *audit.Dispatcher) *UserHandler {
	return &UserHandler{
		db:               db,
		audit:            auditDispatcher,
		emailDomainValid: validators.IsEmailDomainValid,
	}
}

// --------- Requests ---------

type CreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Country  string `json:"country"`
	Gender   string `json:"gender"`
	Avatar   string `json:"avatar"`
}

type UpdateUserRequest struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty" binding:"omitempty,email"`
	Password *string `json:"password,omitempty" binding:"omitempty,min=6"`
	Role     *string `json:"role,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Location *string `json:"location,omitempty"`
	Country  *string `json:"country,omitempty"`
	Gender   *string `json:"gender,omitempty"`
	Avatar   *string `json:"avatar,omitempty"`
}

// --------- Handlers ---------

// List filters in SQL before paginating, so totalPages always reflects the
// filtered set. Filters: role, isBarber, registered (today|week|month),
// search over name and email.
func (h *UserHandler) List(c *gin.Context) {
	page, limit := pageParams(c)

	q := h.db.Model(&models.User{})

	if role := strings.ToUpper(queryTrim(c, "role")); role != "" {
		q = q.Where("role = ?", role)
	}

	switch queryTrim(c, "isBarber") {
	case "true":
		q = q.Where("is_barber = ?", true)
	case "false":
		q = q.Where("is_barber = ?", false)
	}

	if since, ok := registeredSince(queryTrim(c, "registered")); ok {
		q = q.Where("created_at >= ?", since)
	}

	if search := strings.ToLower(queryTrim(c, "search")); search != "" {
		like := "%" + search + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "user_count_failed", "Could not list users.")
		return
	}

	var users []models.User
	if err := q.
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&users).Error; err != nil {

		httperr.Internal(c, "user_list_failed", "Could not list users.")
		return
	}

	httpresp.List(c, users, httpresp.NewPagination(page, limit, total))
}

func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !h.emailDomainValid(email) {
		httperr.BadRequest(c, "invalid_email_domain", "The email domain does not look valid.")
		return
	}

	var count int64
	h.db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "email_already_exists", "An account with this email already exists.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "password_hash_failed", "Could not create user.")
		return
	}

	role := strings.ToUpper(strings.TrimSpace(req.Role))
	if role == "" {
		role = models.RoleClient
	}

	user := models.User{
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         role,
		Phone:        req.Phone,
		Location:     req.Location,
		Country:      req.Country,
		Gender:       req.Gender,
		Avatar:       req.Avatar,
	}

	if err := h.db.Create(&user).Error; err != nil {
		httperr.Internal(c, "user_create_failed", "Could not create user.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   actorID(c),
		Action:   "user_created",
		Entity:   "user",
		EntityID: &user.ID,
	})

	httpresp.Created(c, user)
}

func (h *UserHandler) Get(c *gin.Context) {
	var user models.User
	if err := h.db.Where("id = ?", c.Param("id")).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "user_not_found", "User not found.")
			return
		}
		httperr.Internal(c, "user_get_failed", "Could not load user.")
		return
	}

	httpresp.OK(c, user)
}

func (h *UserHandler) Update(c *gin.Context) {
	var user models.User
	if err := h.db.Where("id = ?", c.Param("id")).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "user_not_found", "User not found.")
			return
		}
		httperr.Internal(c, "user_get_failed", "Could not load user.")
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			httperr.Internal(c, "password_hash_failed", "Could not update user.")
			return
		}
		user.PasswordHash = string(hashed)
	}
	if req.Role != nil {
		user.Role = strings.ToUpper(strings.TrimSpace(*req.Role))
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Location != nil {
		user.Location = *req.Location
	}
	if req.Country != nil {
		user.Country = *req.Country
	}
	if req.Gender != nil {
		user.Gender = *req.Gender
	}
	if req.Avatar != nil {
		user.Avatar = *req.Avatar
	}

	if err := h.db.Save(&user).Error; err != nil {
		httperr.Internal(c, "user_update_failed", "Could not update user.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   actorID(c),
		Action:   "user_updated",
		Entity:   "user",
		EntityID: &user.ID,
	})

	httpresp.OK(c, user)
}

func (h *UserHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	res := h.db.Where("id = ?", id).Delete(&models.User{})
	if res.Error != nil {
		httperr.Internal(c, "user_delete_failed", "Could not delete user.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "user_not_found", "User not found.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   actorID(c),
		Action:   "user_deleted",
		Entity:   "user",
		EntityID: &id,
	})

	httpresp.OK(c, gin.H{"deleted": true})
}

// registeredSince maps the registered filter to a wall-clock lower bound in
// the shop timezone.
func registeredSince(window string) (time.Time, bool) {
	now := timezone.Now()
	switch window {
	case "today":
		return timezone.StartOfDay(now), true
	case "week":
		return timezone.StartOfDay(now).AddDate(0, 0, -7), true
	case "month":
		return timezone.StartOfDay(now).AddDate(0, -1, 0), true
	}
	return time.Time{}, false
}
