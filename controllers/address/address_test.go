package addressControllers

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
	require.NoError(t, db.AutoMigrate(&models.Address{}))
	return db
}

func addressRouter(db *gorm.DB, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("user_id", userID) })
	r.GET("/addresses", GetAddresses(db))
	r.POST("/addresses", CreateAddress(db))
	r.PUT("/addresses/:id", UpdateAddress(db))
	r.DELETE("/addresses/:id", DeleteAddress(db))
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

func validAddress(isDefault bool) gin.H {
	return gin.H{
		"label":         "Home",
		"address_line1": "12 Farm Road",
		"city":          "Pune",
		"state":         "Maharashtra",
		"pincode":       "411001",
		"is_default":    isDefault,
	}
}

func defaultCount(t *testing.T, db *gorm.DB, userID string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.Address{}).
		Where("user_id = ? AND is_default = ?", userID, true).Count(&n).Error)
	return n
}

func TestCreateAddressRequiresFields(t *testing.T) {
	db := setupDB(t)
	r := addressRouter(db, "user-1")

	w := doJSON(t, r, http.MethodPost, "/addresses", gin.H{"city": "Pune"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAtMostOneDefaultAddress(t *testing.T) {
	db := setupDB(t)
	r := addressRouter(db, "user-1")

	w := doJSON(t, r, http.MethodPost, "/addresses", validAddress(true))
	require.Equal(t, http.StatusCreated, w.Code)

	second := validAddress(true)
	second["label"] = "Office"
	w = doJSON(t, r, http.MethodPost, "/addresses", second)
	require.Equal(t, http.StatusCreated, w.Code)

	assert.Equal(t, int64(1), defaultCount(t, db, "user-1"))

	var isDefault models.Address
	require.NoError(t, db.First(&isDefault, "user_id = ? AND is_default = ?", "user-1", true).Error)
	assert.Equal(t, "Office", isDefault.Label, "the newest default wins")
}

func TestUpdateAddressPromotesDefault(t *testing.T) {
	db := setupDB(t)
	r := addressRouter(db, "user-1")

	doJSON(t, r, http.MethodPost, "/addresses", validAddress(true))
	w := doJSON(t, r, http.MethodPost, "/addresses", validAddress(false))
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Address models.Address `json:"address"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	promoted := validAddress(true)
	w = doJSON(t, r, http.MethodPut, "/addresses/"+resp.Address.ID, promoted)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, int64(1), defaultCount(t, db, "user-1"))
	var after models.Address
	require.NoError(t, db.First(&after, "id = ?", resp.Address.ID).Error)
	assert.True(t, after.IsDefault)
}

func TestDefaultsAreScopedPerUser(t *testing.T) {
	db := setupDB(t)

	r1 := addressRouter(db, "user-1")
	r2 := addressRouter(db, "user-2")
	doJSON(t, r1, http.MethodPost, "/addresses", validAddress(true))
	doJSON(t, r2, http.MethodPost, "/addresses", validAddress(true))

	assert.Equal(t, int64(1), defaultCount(t, db, "user-1"))
	assert.Equal(t, int64(1), defaultCount(t, db, "user-2"), "another user's default must survive")
}

func TestDeleteAddressScopedToOwner(t *testing.T) {
	db := setupDB(t)
	r1 := addressRouter(db, "user-1")
	w := doJSON(t, r1, http.MethodPost, "/addresses", validAddress(false))
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Address models.Address `json:"address"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	r2 := addressRouter(db, "user-2")
	w = doJSON(t, r2, http.MethodDelete, "/addresses/"+resp.Address.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r1, http.MethodDelete, "/addresses/"+resp.Address.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r1, http.MethodDelete, "/addresses/"+resp.Address.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetAddressesDefaultFirst(t *testing.T) {
	db := setupDB(t)
	r := addressRouter(db, "user-1")

	first := validAddress(false)
	first["label"] = "Home"
	doJSON(t, r, http.MethodPost, "/addresses", first)

	second := validAddress(true)
	second["label"] = "Office"
	doJSON(t, r, http.MethodPost, "/addresses", second)

	w := doJSON(t, r, http.MethodGet, "/addresses", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Addresses []models.Address `json:"addresses"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Addresses, 2)
	assert.Equal(t, "Office", resp.Addresses[0].Label)
	assert.True(t, resp.Addresses[0].IsDefault)
}
