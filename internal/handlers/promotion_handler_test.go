package handlers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/gega19/barber-app-backoffice-sub001/internal/models"
)

func setupPromotionRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	db := setupTestDB(t)
	h := NewPromotionHandler(db, newTestAudit(db))

	r := newTestRouter()
	r.GET("/promotions", h.List)
	r.POST("/promotions", h.Create)
	r.GET("/promotions/:id", h.Get)
	r.PUT("/promotions/:id", h.Update)
	r.PATCH("/promotions/:id/active", h.ToggleActive)
	r.DELETE("/promotions/:id", h.Delete)

	return r, db
}

func TestCreatePromotion_RequiresSomeDiscount(t *testing.T) {
	r, db := setupPromotionRouter(t)

	rr := doRequest(r, http.MethodPost, "/promotions", map[string]any{
		"title":      "Sin descuento",
		"code":       "nada",
		"validFrom":  "2026-01-01",
		"validUntil": "2026-02-01",
	})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "discount_required", errorCode(t, rr))

	var count int64
	db.Model(&models.Promotion{}).Count(&count)
	assert.Zero(t, count)
}

func TestCreatePromotion_PercentageOnly(t *testing.T) {
	r, _ := setupPromotionRouter(t)

	rr := doRequest(r, http.MethodPost, "/promotions", map[string]any{
		"title":      "Martes de descuento",
		"code":       "martes20",
		"discount":   20,
		"validFrom":  "2026-01-01",
		"validUntil": "2026-02-01",
	})

	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var promo models.Promotion
	decodeData(t, rr, &promo)
	assert.Equal(t, "MARTES20", promo.Code, "codes are stored uppercase")
	assert.True(t, promo.IsActive, "new promotions start active")
	require.NotNil(t, promo.Discount)
	assert.Equal(t, 20.0, *promo.Discount)
	assert.Nil(t, promo.DiscountAmount)
}

func TestCreatePromotion_BothDiscountsAllowed(t *testing.T) {
	r, _ := setupPromotionRouter(t)

	rr := doRequest(r, http.MethodPost, "/promotions", map[string]any{
		"title":          "Combo",
		"code":           "COMBO",
		"discount":       10,
		"discountAmount": 5,
		"validFrom":      "2026-01-01",
		"validUntil":     "2026-02-01",
	})

	assert.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
}

func TestCreatePromotion_InvalidDateRange(t *testing.T) {
	r, _ := setupPromotionRouter(t)

	rr := doRequest(r, http.MethodPost, "/promotions", map[string]any{
		"title":      "Al revés",
		"code":       "REVES",
		"discount":   15,
		"validFrom":  "2026-03-01",
		"validUntil": "2026-02-01",
	})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "invalid_date_range", errorCode(t, rr))
}

func TestUpdatePromotion_CannotDropBothDiscounts(t *testing.T) {
	r, db := setupPromotionRouter(t)

	amount := 5.0
	promo := models.Promotion{
		Title:          "Fijo",
		Code:           "FIJO5",
		DiscountAmount: &amount,
		ValidFrom:      time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		ValidUntil:     time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		IsActive:       true,
	}
	require.NoError(t, db.Create(&promo).Error)

	// the update itself keeps the existing amount, so it passes
	rr := doRequest(r, http.MethodPut, "/promotions/"+promo.ID, map[string]any{"title": "Fijo 5"})
	assert.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
}

func TestTogglePromotion_OnlyFlipsActive(t *testing.T) {
	r, db := setupPromotionRouter(t)

	discount := 25.0
	promo := models.Promotion{
		Title:      "Flash",
		Code:       "FLASH25",
		Discount:   &discount,
		ValidFrom:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		ValidUntil: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		IsActive:   true,
	}
	require.NoError(t, db.Create(&promo).Error)

	rr := doRequest(r, http.MethodPatch, "/promotions/"+promo.ID+"/active", map[string]any{"isActive": false})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var reloaded models.Promotion
	require.NoError(t, db.First(&reloaded, "id = ?", promo.ID).Error)
	assert.False(t, reloaded.IsActive)
	assert.Equal(t, "FLASH25", reloaded.Code, "the rest of the row is untouched")
	require.NotNil(t, reloaded.Discount)
	assert.Equal(t, 25.0, *reloaded.Discount)
}

func TestTogglePromotion_MissingFlagRejected(t *testing.T) {
	r, _ := setupPromotionRouter(t)

	rr := doRequest(r, http.MethodPatch, "/promotions/whatever/active", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestListPromotions_ActiveFilter(t *testing.T) {
	r, db := setupPromotionRouter(t)

	discount := 10.0
	for i, active := range []bool{true, true, false} {
		promo := models.Promotion{
			Title:      "Promo",
			Code:       fmt.Sprintf("PROMO%d", i),
			Discount:   &discount,
			ValidFrom:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			ValidUntil: time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
			IsActive:   active,
		}
		require.NoError(t, db.Create(&promo).Error)
	}

	rr := doRequest(r, http.MethodGet, "/promotions?active=true", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var promos []models.Promotion
	env := decodeData(t, rr, &promos)
	assert.Len(t, promos, 2)
	assert.Equal(t, int64(2), env.Pagination.Total)
}
