package adminController

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
	require.NoError(t, db.AutoMigrate(
		&models.Profile{},
		&models.Product{},
		&models.Category{},
		&models.Order{},
		&models.OrderItem{},
	))
	return db
}

func adminRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin/products", GetProducts(db))
	r.POST("/admin/products", CreateProduct(db))
	r.PUT("/admin/products/:id", UpdateProduct(db))
	r.DELETE("/admin/products/:id", DeleteProduct(db))
	r.GET("/admin/categories", GetCategories(db))
	r.POST("/admin/categories", CreateCategory(db))
	r.PUT("/admin/categories/:id", UpdateCategory(db))
	r.DELETE("/admin/categories/:id", DeleteCategory(db))
	r.GET("/admin/orders", GetOrders(db))
	r.PUT("/admin/orders/:id", UpdateOrder(db))
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateCategoryDerivesSlug(t *testing.T) {
	db := setupDB(t)
	r := adminRouter(db)

	w := doJSON(t, r, http.MethodPost, "/admin/categories", gin.H{"name": "Oils & Sweeteners"})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Category models.Category `json:"category"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "oils-sweeteners", resp.Category.Slug)

	w = doJSON(t, r, http.MethodPost, "/admin/categories", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteCategoryRefusedWhileProductsReferenceIt(t *testing.T) {
	db := setupDB(t)
	r := adminRouter(db)

	category := models.Category{Name: "A2 Dairy", Slug: "dairy"}
	require.NoError(t, db.Create(&category).Error)

	for _, name := range []string{"Ghee", "Paneer", "Curd"} {
		require.NoError(t, db.Create(&models.Product{
			Name: name, Slug: models.Slugify(name), Category: "dairy", Price: 100, InStock: true,
		}).Error)
	}

	w := doJSON(t, r, http.MethodDelete, "/admin/categories/"+category.ID, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Cannot delete category. 3 products are using it.")

	var n int64
	require.NoError(t, db.Model(&models.Category{}).Count(&n).Error)
	assert.Equal(t, int64(1), n, "the category must survive a refused delete")
}

func TestDeleteCategoryWithNoProducts(t *testing.T) {
	db := setupDB(t)
	r := adminRouter(db)

	category := models.Category{Name: "Seasonal", Slug: "seasonal"}
	require.NoError(t, db.Create(&category).Error)

	w := doJSON(t, r, http.MethodDelete, "/admin/categories/"+category.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/admin/categories/"+category.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateOrderStatusValidation(t *testing.T) {
	db := setupDB(t)
	r := adminRouter(db)

	order := models.Order{
		OrderNumber: "GE-2026-0007", UserID: "user-1", AddressID: "addr-1",
		Total: 130, PaymentMethod: models.PaymentMethodCOD,
		PaymentStatus: models.PaymentStatusPending, OrderStatus: models.OrderStatusPlaced,
	}
	require.NoError(t, db.Create(&order).Error)

	w := doJSON(t, r, http.MethodPut, "/admin/orders/"+order.ID, gin.H{"order_status": "teleported"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPut, "/admin/orders/"+order.ID, gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPut, "/admin/orders/"+order.ID, gin.H{"order_status": "shipped", "payment_status": "paid"})
	require.Equal(t, http.StatusOK, w.Code)

	var after models.Order
	require.NoError(t, db.First(&after, "id = ?", order.ID).Error)
	assert.Equal(t, models.OrderStatusShipped, after.OrderStatus)
	assert.Equal(t, models.PaymentStatusPaid, after.PaymentStatus)
}

func TestGetOrdersFiltersByStatus(t *testing.T) {
	db := setupDB(t)
	r := adminRouter(db)

	for i, status := range []models.OrderStatus{models.OrderStatusPlaced, models.OrderStatusShipped} {
		require.NoError(t, db.Create(&models.Order{
			OrderNumber: "GE-2026-000" + string(rune('1'+i)), UserID: "user-1", AddressID: "addr-1",
			Total: 100, PaymentMethod: models.PaymentMethodCOD,
			PaymentStatus: models.PaymentStatusPending, OrderStatus: status,
		}).Error)
	}

	w := doJSON(t, r, http.MethodGet, "/admin/orders?status=shipped", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Orders []adminOrder `json:"orders"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Orders, 1)
	assert.Equal(t, models.OrderStatusShipped, resp.Orders[0].OrderStatus)
}
