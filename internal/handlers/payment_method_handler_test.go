package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/gega19/barber-app-backoffice-sub001/internal/models"
)

func setupPaymentMethodRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	db := setupTestDB(t)
	h := NewPaymentMethodHandler(db, newTestAudit(db))

	r := newTestRouter()
	r.GET("/payment-methods", h.List)
	r.POST("/payment-methods", h.Create)
	r.GET("/payment-methods/:id", h.Get)
	r.PUT("/payment-methods/:id", h.Update)
	r.PATCH("/payment-methods/:id/active", h.ToggleActive)
	r.DELETE("/payment-methods/:id", h.Delete)

	return r, db
}

func configMap(t *testing.T, m models.PaymentMethod) map[string]string {
	t.Helper()

	if len(m.Config) == 0 {
		return nil
	}
	var out map[string]string
	require.NoError(t, json.Unmarshal(m.Config, &out))
	return out
}

func TestBuildPaymentConfig_KeepsOnlyActiveTypeFields(t *testing.T) {
	req := &PaymentMethodRequest{
		Type:     models.PaymentTypePagoMovil,
		Phone:    "0414-5551234",
		Bank:     "Banesco",
		IDNumber: "V-12345678",
		// fields of other types must be ignored
		Wallet:        "binance-wallet",
		AccountNumber: "0102-0000-0000",
	}

	cfg := buildPaymentConfig(req)
	require.NotNil(t, cfg)

	var out map[string]string
	require.NoError(t, json.Unmarshal(cfg, &out))
	assert.Equal(t, map[string]string{
		"phone":    "0414-5551234",
		"bank":     "Banesco",
		"idNumber": "V-12345678",
	}, out)
}

func TestBuildPaymentConfig_EmptyFieldsOmitted(t *testing.T) {
	req := &PaymentMethodRequest{
		Type:   models.PaymentTypeBinance,
		Wallet: "mywallet",
	}

	cfg := buildPaymentConfig(req)
	require.NotNil(t, cfg)

	var out map[string]string
	require.NoError(t, json.Unmarshal(cfg, &out))
	assert.Equal(t, map[string]string{"wallet": "mywallet"}, out)
}

func TestBuildPaymentConfig_CashHasNoConfig(t *testing.T) {
	req := &PaymentMethodRequest{
		Type:  models.PaymentTypeEfectivo,
		Phone: "0414-5551234",
	}

	assert.Nil(t, buildPaymentConfig(req))
}

func TestCreatePaymentMethod_UnknownTypeRejected(t *testing.T) {
	r, _ := setupPaymentMethodRouter(t)

	rr := doRequest(r, http.MethodPost, "/payment-methods", map[string]any{
		"name": "Zelle",
		"type": "ZELLE",
	})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "invalid_payment_type", errorCode(t, rr))
}

func TestCreatePaymentMethod_PagoMovil(t *testing.T) {
	r, _ := setupPaymentMethodRouter(t)

	rr := doRequest(r, http.MethodPost, "/payment-methods", map[string]any{
		"name":     "Pago Móvil Banesco",
		"type":     "pago_movil",
		"phone":    "0414-5551234",
		"bank":     "Banesco",
		"idNumber": "V-12345678",
	})

	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var method models.PaymentMethod
	decodeData(t, rr, &method)
	assert.Equal(t, models.PaymentTypePagoMovil, method.Type, "type is normalized to uppercase")
	assert.True(t, method.IsActive)
	assert.Equal(t, "Banesco", configMap(t, method)["bank"])
}

func TestUpdatePaymentMethod_RebuildsConfigOnTypeChange(t *testing.T) {
	r, _ := setupPaymentMethodRouter(t)

	rr := doRequest(r, http.MethodPost, "/payment-methods", map[string]any{
		"name":  "Pagos",
		"type":  "PAGO_MOVIL",
		"phone": "0414-5551234",
		"bank":  "Banesco",
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	var created models.PaymentMethod
	decodeData(t, rr, &created)

	rr = doRequest(r, http.MethodPut, "/payment-methods/"+created.ID, map[string]any{
		"name":    "Pagos",
		"type":    "BINANCE",
		"wallet":  "mywallet",
		"network": "TRC20",
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var updated models.PaymentMethod
	decodeData(t, rr, &updated)

	cfg := configMap(t, updated)
	assert.Equal(t, "mywallet", cfg["wallet"])
	assert.NotContains(t, cfg, "phone", "fields from the previous type are dropped")
	assert.NotContains(t, cfg, "bank")
}

func TestTogglePaymentMethod(t *testing.T) {
	r, db := setupPaymentMethodRouter(t)

	method := models.PaymentMethod{Name: "Efectivo", Type: models.PaymentTypeEfectivo, IsActive: true}
	require.NoError(t, db.Create(&method).Error)

	rr := doRequest(r, http.MethodPatch, "/payment-methods/"+method.ID+"/active", map[string]any{"isActive": false})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var reloaded models.PaymentMethod
	require.NoError(t, db.First(&reloaded, "id = ?", method.ID).Error)
	assert.False(t, reloaded.IsActive)
	assert.Equal(t, "Efectivo", reloaded.Name)
}

func TestListPaymentMethods_TypeFilter(t *testing.T) {
	r, db := setupPaymentMethodRouter(t)

	require.NoError(t, db.Create(&models.PaymentMethod{Name: "PM", Type: models.PaymentTypePagoMovil, IsActive: true}).Error)
	require.NoError(t, db.Create(&models.PaymentMethod{Name: "Cash", Type: models.PaymentTypeEfectivo, IsActive: true}).Error)

	rr := doRequest(r, http.MethodGet, "/payment-methods?type=pago_movil", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var methods []models.PaymentMethod
	env := decodeData(t, rr, &methods)
	assert.Len(t, methods, 1)
	assert.Equal(t, int64(1), env.Pagination.Total)
}
