package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gega19/barber-app-backoffice-sub001/internal/middleware"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

func pageParams(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageSize)))
	if limit <= 0 || limit > maxPageSize {
		limit = defaultPageSize
	}

	return page, limit
}

func actorID(c *gin.Context) *string {
	if v, ok := c.Get(middleware.ContextUserID); ok {
		if id, ok := v.(string); ok {
			return &id
		}
	}
	return nil
}

func queryTrim(c *gin.Context, key string) string {
	return strings.TrimSpace(c.Query(key))
}
