package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gega19/barber-app-backoffice-sub001/internal/auth"
	"github.com/gega19/barber-app-backoffice-sub001/internal/httperr"
)

const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"

	// SessionCookie matches the cookie name the backoffice web client sets.
	SessionCookie = "token"
)

// AuthMiddleware accepts a bearer token or, for the server-rendered pages,
// the session cookie. Tokens are fully verified here; the unverified
// client-side decode is a display convenience only.
func AuthMiddleware(jwtSvc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := tokenFromRequest(c)
		if tokenString == "" {
			httperr.Unauthorized(c, "missing_token", "Authentication required.")
			c.Abort()
			return
		}

		claims, err := jwtSvc.ValidateAccess(tokenString)
		if err != nil {
			httperr.Unauthorized(c, "invalid_token", "Session is invalid or expired.")
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.Subject)
		c.Set(ContextUserRole, claims.Role)

		c.Next()
	}
}

// RequireBackofficeRole gates admin routes on the two-role allow-list.
func RequireBackofficeRole() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get(ContextUserRole)
		if r, ok := role.(string); !ok || !auth.CanAccessBackoffice(r) {
			httperr.Forbidden(c, "forbidden", "This account cannot access the backoffice.")
			c.Abort()
			return
		}
		c.Next()
	}
}

func tokenFromRequest(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
		return ""
	}

	if cookie, err := c.Cookie(SessionCookie); err == nil {
		return cookie
	}
	return ""
}
