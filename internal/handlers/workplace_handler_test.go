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

func setupWorkplaceRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	db := setupTestDB(t)
	h := NewWorkplaceHandler(db, newTestAudit(db))

	r := newTestRouter()
	r.GET("/workplaces", h.List)
	r.POST("/workplaces", h.Create)
	r.GET("/workplaces/:id", h.Get)
	r.PUT("/workplaces/:id", h.Update)
	r.DELETE("/workplaces/:id", h.Delete)

	return r, db
}

func seedBarberCandidates(t *testing.T, db *gorm.DB) (a, b models.User) {
	t.Helper()

	a = models.User{Name: "José", Email: "jose@example.com", Role: models.RoleBarber}
	b = models.User{Name: "Miguel", Email: "miguel@example.com", Role: models.RoleBarber}
	require.NoError(t, db.Create(&a).Error)
	require.NoError(t, db.Create(&b).Error)
	return a, b
}

func isBarber(t *testing.T, db *gorm.DB, userID string) bool {
	t.Helper()

	var u models.User
	require.NoError(t, db.First(&u, "id = ?", userID).Error)
	return u.IsBarber
}

func TestCreateWorkplace_AssignmentSetsBarberFlag(t *testing.T) {
	r, db := setupWorkplaceRouter(t)
	a, b := seedBarberCandidates(t, db)

	rr := doRequest(r, http.MethodPost, "/workplaces", map[string]any{
		"name":      "Sede Centro",
		"address":   "Av. Bolívar",
		"barberIds": []string{a.ID},
	})

	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var created models.Workplace
	decodeData(t, rr, &created)
	assert.Len(t, created.Barbers, 1)

	assert.True(t, isBarber(t, db, a.ID))
	assert.False(t, isBarber(t, db, b.ID))
}

func TestUpdateWorkplace_ReplacingRosterClearsOldFlag(t *testing.T) {
	r, db := setupWorkplaceRouter(t)
	a, b := seedBarberCandidates(t, db)

	rr := doRequest(r, http.MethodPost, "/workplaces", map[string]any{
		"name":      "Sede Centro",
		"barberIds": []string{a.ID},
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	var created models.Workplace
	decodeData(t, rr, &created)

	rr = doRequest(r, http.MethodPut, "/workplaces/"+created.ID, map[string]any{
		"name":      "Sede Centro",
		"barberIds": []string{b.ID},
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	assert.False(t, isBarber(t, db, a.ID), "dropped from the roster, flag cleared")
	assert.True(t, isBarber(t, db, b.ID))
}

func TestBarberFlag_SurvivesWhileInAnotherWorkplace(t *testing.T) {
	r, db := setupWorkplaceRouter(t)
	a, _ := seedBarberCandidates(t, db)

	for _, name := range []string{"Sede Centro", "Sede Este"} {
		rr := doRequest(r, http.MethodPost, "/workplaces", map[string]any{
			"name":      name,
			"barberIds": []string{a.ID},
		})
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	}

	var workplaces []models.Workplace
	require.NoError(t, db.Find(&workplaces).Error)
	require.Len(t, workplaces, 2)

	// removing one membership keeps the flag, removing both clears it
	rr := doRequest(r, http.MethodDelete, "/workplaces/"+workplaces[0].ID, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, isBarber(t, db, a.ID))

	rr = doRequest(r, http.MethodDelete, "/workplaces/"+workplaces[1].ID, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.False(t, isBarber(t, db, a.ID))
}

func TestListWorkplaces_Search(t *testing.T) {
	r, db := setupWorkplaceRouter(t)

	require.NoError(t, db.Create(&models.Workplace{Name: "Sede Centro", IsActive: true}).Error)
	require.NoError(t, db.Create(&models.Workplace{Name: "Sede Este", IsActive: true}).Error)
	require.NoError(t, db.Create(&models.Workplace{Name: "Barbería Norte", IsActive: true}).Error)

	rr := doRequest(r, http.MethodGet, "/workplaces?search=sede", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var list []models.Workplace
	env := decodeData(t, rr, &list)
	assert.Len(t, list, 2)
	assert.Equal(t, int64(2), env.Pagination.Total)
}
