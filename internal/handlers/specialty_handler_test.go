package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/gega19/barber-app-backoffice-sub001/internal/models"
)

func setupSpecialtyRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	db := setupTestDB(t)
	h := NewSpecialtyHandler(db, newTestAudit(db))

	r := newTestRouter()
	r.GET("/specialties", h.List)
	r.POST("/specialties", h.Create)
	r.GET("/specialties/:id", h.Get)
	r.PUT("/specialties/:id", h.Update)
	r.DELETE("/specialties/:id", h.Delete)

	return r, db
}

func TestSpecialtyCRUD(t *testing.T) {
	r, _ := setupSpecialtyRouter(t)

	rr := doRequest(r, http.MethodPost, "/specialties", map[string]any{
		"name":        "  Corte clásico ",
		"description": "Tijera y máquina",
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var created models.Specialty
	decodeData(t, rr, &created)
	assert.Equal(t, "Corte clásico", created.Name, "names are trimmed")

	rr = doRequest(r, http.MethodPut, "/specialties/"+created.ID, map[string]any{"description": "Solo tijera"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var updated models.Specialty
	decodeData(t, rr, &updated)
	assert.Equal(t, "Corte clásico", updated.Name)
	assert.Equal(t, "Solo tijera", updated.Description)

	rr = doRequest(r, http.MethodDelete, "/specialties/"+created.ID, nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = doRequest(r, http.MethodGet, "/specialties/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCreateSpecialty_NameRequired(t *testing.T) {
	r, _ := setupSpecialtyRouter(t)

	rr := doRequest(r, http.MethodPost, "/specialties", map[string]any{"description": "sin nombre"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestListSpecialties_Search(t *testing.T) {
	r, db := setupSpecialtyRouter(t)

	for _, name := range []string{"Corte clásico", "Corte moderno", "Afeitado"} {
		require.NoError(t, db.Create(&models.Specialty{Name: name}).Error)
	}

	rr := doRequest(r, http.MethodGet, "/specialties?search=corte", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var list []models.Specialty
	env := decodeData(t, rr, &list)
	assert.Len(t, list, 2)
	assert.Equal(t, int64(2), env.Pagination.Total)
}
