package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/gega19/barber-app-backoffice-sub001/internal/auth"
	"github.com/gega19/barber-app-backoffice-sub001/internal/cache"
	"github.com/gega19/barber-app-backoffice-sub001/internal/config"
	"github.com/gega19/barber-app-backoffice-sub001/internal/httperr"
	"github.com/gega19/barber-app-backoffice-sub001/internal/httpresp"
	"github.com/gega19/barber-app-backoffice-sub001/internal/middleware"
	"github.com/gega19/barber-app-backoffice-sub001/internal/models"
)

type AuthHandler struct {
	db     *gorm.DB
	jwt    *auth.Service
	cache  *cache.Cache
	config *config.Config
}

func NewAuthHandler(db *gorm.DB, jwtSvc *auth.Service, ch *cache.Cache, cfg *config.Config) *AuthHandler {
	return &AuthHandler{db: db, jwt: jwtSvc, cache: ch, config: cfg}
}

// --------- Requests ---------

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// --------- Handlers ---------

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Unauthorized(c, "invalid_credentials", "Email or password is wrong.")
			return
		}
		httperr.Internal(c, "internal_error", "Could not log in.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Email or password is wrong.")
		return
	}

	accessToken, err := h.jwt.GenerateAccessToken(&user)
	if err != nil {
		httperr.Internal(c, "token_generation_failed", "Could not log in.")
		return
	}

	refreshToken, err := h.jwt.GenerateRefreshToken(&user)
	if err != nil {
		httperr.Internal(c, "token_generation_failed", "Could not log in.")
		return
	}

	h.setSessionCookies(c, accessToken, refreshToken)

	httpresp.OK(c, gin.H{
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
		"user":         user,
	})
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if h.cache.IsRefreshTokenDenied(c.Request.Context(), req.RefreshToken) {
		httperr.Unauthorized(c, "token_revoked", "Session was logged out.")
		return
	}

	claims, err := h.jwt.ValidateRefresh(req.RefreshToken)
	if err != nil {
		httperr.Unauthorized(c, "invalid_token", "Refresh token is invalid or expired.")
		return
	}

	var user models.User
	if err := h.db.Where("id = ?", claims.Subject).First(&user).Error; err != nil {
		httperr.Unauthorized(c, "invalid_token", "Account no longer exists.")
		return
	}

	accessToken, err := h.jwt.GenerateAccessToken(&user)
	if err != nil {
		httperr.Internal(c, "token_generation_failed", "Could not refresh session.")
		return
	}

	refreshToken, err := h.jwt.GenerateRefreshToken(&user)
	if err != nil {
		httperr.Internal(c, "token_generation_failed", "Could not refresh session.")
		return
	}

	// The old refresh token is single-use.
	_ = h.cache.DenyRefreshToken(c.Request.Context(), req.RefreshToken, h.config.RefreshTokenTTL)

	h.setSessionCookies(c, accessToken, refreshToken)

	httpresp.OK(c, gin.H{
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
		"user":         user,
	})
}

// Logout is best-effort: an unreadable body or an unknown token still
// clears the session cookies and reports success.
func (h *AuthHandler) Logout(c *gin.Context) {
	var req LogoutRequest
	_ = c.ShouldBindJSON(&req)

	token := req.RefreshToken
	if token == "" {
		token, _ = c.Cookie("refreshToken")
	}
	if token != "" {
		_ = h.cache.DenyRefreshToken(c.Request.Context(), token, h.config.RefreshTokenTTL)
	}

	h.clearSessionCookies(c)

	httpresp.OK(c, gin.H{"loggedOut": true})
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(string)

	var user models.User
	if err := h.db.Where("id = ?", userID).First(&user).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "Account no longer exists.")
		return
	}

	httpresp.OK(c, user)
}

// --------- Cookies ---------

// The web pages ride on the same cookies the original client used: token
// and refreshToken, both with a fixed 7-day expiry.
func (h *AuthHandler) setSessionCookies(c *gin.Context, accessToken, refreshToken string) {
	maxAge := int(h.config.RefreshTokenTTL.Seconds())
	c.SetCookie(middleware.SessionCookie, accessToken, maxAge, "/", "", false, true)
	c.SetCookie("refreshToken", refreshToken, maxAge, "/", "", false, true)
}

func (h *AuthHandler) clearSessionCookies(c *gin.Context) {
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	c.SetCookie("refreshToken", "", -1, "/", "", false, true)
}
