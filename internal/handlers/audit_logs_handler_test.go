package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gega19/barber-app-backoffice-sub001/internal/models"
)

func TestListAuditLogs_Filters(t *testing.T) {
	db := setupTestDB(t)
	h := NewAuditLogsHandler(db)

	r := newTestRouter()
	r.GET("/audit-logs", h.List)

	admin := "admin-1"
	other := "admin-2"
	entries := []models.AuditLog{
		{UserID: &admin, Action: "user_created", Entity: "user"},
		{UserID: &admin, Action: "user_deleted", Entity: "user"},
		{UserID: &other, Action: "promotion_created", Entity: "promotion"},
	}
	for i := range entries {
		require.NoError(t, db.Create(&entries[i]).Error)
	}

	rr := doRequest(r, http.MethodGet, "/audit-logs?userId=admin-1", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var logs []models.AuditLog
	env := decodeData(t, rr, &logs)
	assert.Len(t, logs, 2)
	assert.Equal(t, int64(2), env.Pagination.Total)

	rr = doRequest(r, http.MethodGet, "/audit-logs?action=promotion_created", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	env = decodeData(t, rr, &logs)
	assert.Len(t, logs, 1)
	require.NotNil(t, logs[0].UserID)
	assert.Equal(t, "admin-2", *logs[0].UserID)

	rr = doRequest(r, http.MethodGet, "/audit-logs?entity=user", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	env = decodeData(t, rr, &logs)
	assert.Equal(t, int64(2), env.Pagination.Total)
}
