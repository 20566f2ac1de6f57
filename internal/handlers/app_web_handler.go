package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gega19/barber-app-backoffice-sub001/internal/auth"
	"github.com/gega19/barber-app-backoffice-sub001/internal/config"
	"github.com/gega19/barber-app-backoffice-sub001/internal/middleware"
	"github.com/gega19/barber-app-backoffice-sub001/internal/web"
)

// AppWebHandler renders the server-side backoffice pages. Data loads via
// the JSON API from the page itself; the handler only decides access and
// picks the template.
type AppWebHandler struct {
	config *config.Config
}

func NewAppWebHandler(cfg *config.Config) *AppWebHandler {
	return &AppWebHandler{config: cfg}
}

func (h *AppWebHandler) LoginPage(c *gin.Context) {
	// An existing session with a backoffice role skips the form. The
	// unverified decode is fine here: the API re-validates every call.
	if token, err := c.Cookie(middleware.SessionCookie); err == nil && token != "" {
		if role, err := auth.DecodeRoleUnverified(token); err == nil && auth.CanAccessBackoffice(role) {
			c.Redirect(http.StatusFound, "/app/dashboard")
			return
		}
	}

	c.HTML(http.StatusOK, "base", gin.H{
		"Page":   "login",
		"APIURL": h.config.PublicAPIURL,
	})
}

func (h *AppWebHandler) Page(page string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(middleware.SessionCookie)
		if err != nil || token == "" {
			c.Redirect(http.StatusFound, "/app/login")
			return
		}

		c.HTML(http.StatusOK, "base", gin.H{
			"Page":    page,
			"APIURL":  h.config.PublicAPIURL,
			"Sidebar": web.Sidebar,
			"Path":    c.Request.URL.Path,
		})
	}
}
