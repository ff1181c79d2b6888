package paymentControllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Harshalp4/GreenEpicure/models"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Profile{}, &models.Order{}, &models.OrderItem{}))
	return db
}

func paymentRouter(db *gorm.DB, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("user_id", userID) })
	r.POST("/payment/create", CreatePaymentHandler(db))
	r.POST("/payment/verify", VerifyPaymentHandler(db))
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))
	req, err := http.NewRequest(http.MethodPost, path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func seedRazorpayOrder(t *testing.T, db *gorm.DB, userID, gatewayOrderID string) models.Order {
	t.Helper()
	order := models.Order{
		OrderNumber:     "GE-2026-0042",
		UserID:          userID,
		AddressID:       "addr-1",
		Subtotal:        700,
		Total:           700,
		PaymentMethod:   models.PaymentMethodRazorpay,
		PaymentStatus:   models.PaymentStatusPending,
		OrderStatus:     models.OrderStatusPlaced,
		RazorpayOrderID: gatewayOrderID,
	}
	require.NoError(t, db.Create(&order).Error)
	return order
}

func TestCreatePaymentHandler(t *testing.T) {
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		// Amount is the order total in paise.
		require.Equal(t, float64(70000), payload["amount"])
		require.Equal(t, "GE-2026-0042", payload["receipt"])

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id": "order_gw123", "amount": 70000, "currency": "INR", "status": "created",
		})
	}))
	defer gateway.Close()

	t.Setenv("RAZORPAY_KEY_ID", "rzp_test_key")
	t.Setenv("RAZORPAY_KEY_SECRET", "test_secret")
	t.Setenv("RAZORPAY_API_URL", gateway.URL)

	db := setupDB(t)
	buyer := models.Profile{
		Email: "shopper@example.com", PasswordHash: "x",
		FullName: "Test Shopper", Phone: "9999999999",
	}
	require.NoError(t, db.Create(&buyer).Error)
	order := seedRazorpayOrder(t, db, buyer.ID, "")

	r := paymentRouter(db, buyer.ID)
	w := postJSON(t, r, "/payment/create", gin.H{"order_id": order.ID})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		RazorpayOrderID string `json:"razorpay_order_id"`
		RazorpayKey     string `json:"razorpay_key"`
		Amount          int64  `json:"amount"`
		Prefill         struct {
			Name  string `json:"name"`
			Email string `json:"email"`
		} `json:"prefill"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "order_gw123", resp.RazorpayOrderID)
	assert.Equal(t, "rzp_test_key", resp.RazorpayKey)
	assert.Equal(t, int64(70000), resp.Amount)
	assert.Equal(t, "Test Shopper", resp.Prefill.Name)

	var after models.Order
	require.NoError(t, db.First(&after, "id = ?", order.ID).Error)
	assert.Equal(t, "order_gw123", after.RazorpayOrderID)
}

func TestCreatePaymentHandlerRejections(t *testing.T) {
	t.Setenv("RAZORPAY_KEY_ID", "rzp_test_key")
	t.Setenv("RAZORPAY_KEY_SECRET", "test_secret")

	db := setupDB(t)
	r := paymentRouter(db, "user-1")

	// Not the caller's order.
	other := seedRazorpayOrder(t, db, "user-2", "")
	w := postJSON(t, r, "/payment/create", gin.H{"order_id": other.ID})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Already paid.
	paid := models.Order{
		OrderNumber: "GE-2026-0043", UserID: "user-1", AddressID: "addr-1",
		Total: 100, PaymentMethod: models.PaymentMethodRazorpay,
		PaymentStatus: models.PaymentStatusPaid, OrderStatus: models.OrderStatusConfirmed,
	}
	require.NoError(t, db.Create(&paid).Error)
	w = postJSON(t, r, "/payment/create", gin.H{"order_id": paid.ID})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already paid")

	// Cash on delivery never gets a gateway intent.
	cod := models.Order{
		OrderNumber: "GE-2026-0044", UserID: "user-1", AddressID: "addr-1",
		Total: 100, PaymentMethod: models.PaymentMethodCOD,
		PaymentStatus: models.PaymentStatusPending, OrderStatus: models.OrderStatusPlaced,
	}
	require.NoError(t, db.Create(&cod).Error)
	w = postJSON(t, r, "/payment/create", gin.H{"order_id": cod.ID})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "not for online payment")
}

func TestVerifyPaymentHandlerSuccess(t *testing.T) {
	t.Setenv("RAZORPAY_KEY_SECRET", "test_secret")
	db := setupDB(t)
	order := seedRazorpayOrder(t, db, "user-1", "order_gw123")

	sig := signPayload("test_secret", "order_gw123", "pay_abc")
	r := paymentRouter(db, "user-1")
	w := postJSON(t, r, "/payment/verify", gin.H{
		"razorpay_order_id":   "order_gw123",
		"razorpay_payment_id": "pay_abc",
		"razorpay_signature":  sig,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var after models.Order
	require.NoError(t, db.First(&after, "id = ?", order.ID).Error)
	assert.Equal(t, models.PaymentStatusPaid, after.PaymentStatus)
	assert.Equal(t, models.OrderStatusConfirmed, after.OrderStatus)
	assert.Equal(t, "pay_abc", after.RazorpayPaymentID)
}

func TestVerifyPaymentHandlerBadSignatureChangesNothing(t *testing.T) {
	t.Setenv("RAZORPAY_KEY_SECRET", "test_secret")
	db := setupDB(t)
	order := seedRazorpayOrder(t, db, "user-1", "order_gw123")

	r := paymentRouter(db, "user-1")
	w := postJSON(t, r, "/payment/verify", gin.H{
		"razorpay_order_id":   "order_gw123",
		"razorpay_payment_id": "pay_abc",
		"razorpay_signature":  "deadbeef",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid payment signature")

	var after models.Order
	require.NoError(t, db.First(&after, "id = ?", order.ID).Error)
	assert.Equal(t, models.PaymentStatusPending, after.PaymentStatus)
	assert.Equal(t, models.OrderStatusPlaced, after.OrderStatus)
	assert.Empty(t, after.RazorpayPaymentID)
}

func TestVerifyPaymentHandlerScopedToCaller(t *testing.T) {
	t.Setenv("RAZORPAY_KEY_SECRET", "test_secret")
	db := setupDB(t)
	seedRazorpayOrder(t, db, "user-1", "order_gw123")

	sig := signPayload("test_secret", "order_gw123", "pay_abc")
	r := paymentRouter(db, "user-2")
	w := postJSON(t, r, "/payment/verify", gin.H{
		"razorpay_order_id":   "order_gw123",
		"razorpay_payment_id": "pay_abc",
		"razorpay_signature":  sig,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	var order models.Order
	require.NoError(t, db.First(&order, "razorpay_order_id = ?", "order_gw123").Error)
	assert.Equal(t, models.PaymentStatusPending, order.PaymentStatus, "another user's callback must not mark the order paid")
}

func TestVerifyPaymentHandlerMissingFields(t *testing.T) {
	db := setupDB(t)
	r := paymentRouter(db, "user-1")
	w := postJSON(t, r, "/payment/verify", gin.H{"razorpay_order_id": "order_gw123"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
