package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/gega19/barber-app-backoffice-sub001/internal/domain/appointment"
	"github.com/gega19/barber-app-backoffice-sub001/internal/models"
	"github.com/gega19/barber-app-backoffice-sub001/internal/timezone"
)

func TestDashboardStats(t *testing.T) {
	db := setupTestDB(t)
	h := NewStatsHandler(db, newTestCache())

	r := newTestRouter()
	r.GET("/stats/dashboard", h.Dashboard)

	client := models.User{Name: "Cliente", Email: "c@example.com", Role: models.RoleClient}
	barber := models.User{Name: "Barbero", Email: "b@example.com", Role: models.RoleBarber, IsBarber: true}
	require.NoError(t, db.Create(&client).Error)
	require.NoError(t, db.Create(&barber).Error)

	thisMonth := timezone.Now().Format("2006-01")
	for _, seed := range []struct {
		status string
		price  float64
	}{
		{string(domain.StatusCompleted), 10},
		{string(domain.StatusCompleted), 15},
		{string(domain.StatusPending), 12},
	} {
		require.NoError(t, db.Create(&models.Appointment{
			ClientID:      client.ID,
			BarberID:      barber.ID,
			Date:          thisMonth + "-10",
			Time:          "09:00",
			Status:        seed.status,
			PaymentStatus: string(domain.PaymentPending),
			Price:         seed.price,
		}).Error)
	}

	discount := 10.0
	require.NoError(t, db.Create(&models.Promotion{
		Title:      "Promo",
		Code:       "PROMO",
		Discount:   &discount,
		ValidFrom:  time.Now().AddDate(0, 0, -1),
		ValidUntil: time.Now().AddDate(0, 1, 0),
		IsActive:   true,
	}).Error)

	rr := doRequest(r, http.MethodGet, "/stats/dashboard", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var stats struct {
		Users        int64 `json:"users"`
		Barbers      int64 `json:"barbers"`
		Appointments int64 `json:"appointments"`
		Promotions   int64 `json:"promotions"`

		AppointmentsByStatus []struct {
			Key   string  `json:"key"`
			Label string  `json:"label"`
			Value float64 `json:"value"`
		} `json:"appointmentsByStatus"`
		RevenueByMonth []struct {
			Key   string  `json:"key"`
			Value float64 `json:"value"`
		} `json:"revenueByMonth"`
	}
	decodeData(t, rr, &stats)

	assert.Equal(t, int64(2), stats.Users)
	assert.Equal(t, int64(1), stats.Barbers)
	assert.Equal(t, int64(3), stats.Appointments)
	assert.Equal(t, int64(1), stats.Promotions)

	require.Len(t, stats.AppointmentsByStatus, 4, "every status appears even when empty")
	byStatus := map[string]float64{}
	labels := map[string]string{}
	for _, p := range stats.AppointmentsByStatus {
		byStatus[p.Key] = p.Value
		labels[p.Key] = p.Label
	}
	assert.Equal(t, 2.0, byStatus["COMPLETED"])
	assert.Equal(t, 1.0, byStatus["PENDING"])
	assert.Zero(t, byStatus["CANCELLED"])
	assert.Equal(t, "Completada", labels["COMPLETED"])

	require.Len(t, stats.RevenueByMonth, 6)
	last := stats.RevenueByMonth[len(stats.RevenueByMonth)-1]
	assert.Equal(t, thisMonth, last.Key)
	assert.Equal(t, 25.0, last.Value, "only completed appointments count as revenue")
}
