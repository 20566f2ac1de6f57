package handlers

import (
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/gega19/barber-app-backoffice-sub001/internal/cache"
	domain "github.com/gega19/barber-app-backoffice-sub001/internal/domain/appointment"
	"github.com/gega19/barber-app-backoffice-sub001/internal/httperr"
	"github.com/gega19/barber-app-backoffice-sub001/internal/httpresp"
	"github.com/gega19/barber-app-backoffice-sub001/internal/models"
	"github.com/gega19/barber-app-backoffice-sub001/internal/timezone"
)

const (
	statsCacheKey = "stats:dashboard"
	statsCacheTTL = 60 * time.Second
)

// Display labels for the status chart. The UI is Spanish-facing; the API
// keeps the raw enum alongside the label.
var statusLabels = map[string]string{
	string(domain.StatusPending):   "Pendiente",
	string(domain.StatusConfirmed): "Confirmada",
	string(domain.StatusCompleted): "Completada",
	string(domain.StatusCancelled): "Cancelada",
}

type StatsHandler struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewStatsHandler(db *gorm.DB, ch *cache.Cache) *StatsHandler {
	return &StatsHandler{db: db, cache: ch}
}

type chartPoint struct {
	Key   string  `json:"key"`
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

type dashboardStats struct {
	Users        int64 `json:"users"`
	Barbers      int64 `json:"barbers"`
	Appointments int64 `json:"appointments"`
	Promotions   int64 `json:"promotions"`

	AppointmentsByStatus []chartPoint `json:"appointmentsByStatus"`
	RevenueByMonth       []chartPoint `json:"revenueByMonth"`
}

func (h *StatsHandler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()

	if cached, ok := h.cache.GetJSON(ctx, statsCacheKey); ok {
		var stats dashboardStats
		if err := json.Unmarshal([]byte(cached), &stats); err == nil {
			httpresp.OK(c, stats)
			return
		}
	}

	stats, err := h.collect()
	if err != nil {
		httperr.Internal(c, "stats_failed", "Could not compute dashboard stats.")
		return
	}

	if b, err := json.Marshal(stats); err == nil {
		_ = h.cache.SetJSON(ctx, statsCacheKey, string(b), statsCacheTTL)
	}

	httpresp.OK(c, stats)
}

func (h *StatsHandler) collect() (*dashboardStats, error) {
	stats := &dashboardStats{}

	if err := h.db.Model(&models.User{}).Count(&stats.Users).Error; err != nil {
		return nil, err
	}
	if err := h.db.Model(&models.User{}).Where("is_barber = ?", true).Count(&stats.Barbers).Error; err != nil {
		return nil, err
	}
	if err := h.db.Model(&models.Appointment{}).Count(&stats.Appointments).Error; err != nil {
		return nil, err
	}
	if err := h.db.Model(&models.Promotion{}).Where("is_active = ?", true).Count(&stats.Promotions).Error; err != nil {
		return nil, err
	}

	var byStatus []struct {
		Status string
		N      int64
	}
	if err := h.db.Model(&models.Appointment{}).
		Select("status, COUNT(*) AS n").
		Group("status").
		Scan(&byStatus).Error; err != nil {
		return nil, err
	}

	// Every status shows up even with zero appointments so the chart keeps
	// a stable shape.
	counts := map[string]int64{}
	for _, row := range byStatus {
		counts[row.Status] = row.N
	}
	for _, status := range []domain.Status{
		domain.StatusPending, domain.StatusConfirmed,
		domain.StatusCompleted, domain.StatusCancelled,
	} {
		stats.AppointmentsByStatus = append(stats.AppointmentsByStatus, chartPoint{
			Key:   string(status),
			Label: statusLabels[string(status)],
			Value: float64(counts[string(status)]),
		})
	}

	stats.RevenueByMonth = h.revenueSeries()

	return stats, nil
}

// revenueSeries sums completed-appointment prices for the last six months,
// zero-filling empty months.
func (h *StatsHandler) revenueSeries() []chartPoint {
	now := timezone.Now()
	series := make([]chartPoint, 0, 6)

	for i := 5; i >= 0; i-- {
		month := now.AddDate(0, -i, 0)
		prefix := month.Format("2006-01") + "%"

		var total float64
		h.db.Model(&models.Appointment{}).
			Where("status = ? AND date LIKE ?", string(domain.StatusCompleted), prefix).
			Select("COALESCE(SUM(price), 0)").
			Scan(&total)

		series = append(series, chartPoint{
			Key:   month.Format("2006-01"),
			Label: month.Format("Jan 2006"),
			Value: total,
		})
	}

	return series
}
