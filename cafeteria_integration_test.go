package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/campusgrub/cafeteria-app/models"
	"github.com/campusgrub/cafeteria-app/router"
	"github.com/campusgrub/cafeteria-app/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// TestEndToEndOrderFlow walks the main path:
// 1. student logs in, browses the menu, fills the cart
// 2. checkout -> pending order, cart cleared
// 3. student cannot drive fulfillment, admin can
// 4. admin advances pending -> preparing -> ready -> completed
func TestEndToEndOrderFlow(t *testing.T) {
	db := setupTestDB(t)
	r := router.SetupRouter(db)

	studentToken := loginTest(t, r, "student@campus.edu", "secret123")
	adminToken := loginTest(t, r, "staff@campus.edu", "secret123")

	// Browse menu (public)
	w := doRequest(r, http.MethodGet, "/menu", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	// Fill cart: 2x Veg Thali (100) + 1x Burger (150)
	addToCart(t, r, studentToken, 1)
	addToCart(t, r, studentToken, 1)
	addToCart(t, r, studentToken, 2)

	// Cart totals
	w = doRequest(r, http.MethodGet, "/cart", nil, studentToken)
	assert.Equal(t, http.StatusOK, w.Code)
	cartData := responseData(t, w)
	totals := cartData["totals"].(map[string]interface{})
	assert.InDelta(t, 350.0, totals["subtotal"].(float64), 1e-9)
	assert.InDelta(t, 17.5, totals["tax"].(float64), 1e-9)
	assert.InDelta(t, 367.5, totals["total"].(float64), 1e-9)

	// Checkout
	body := map[string]string{"payment_method": "upi"}
	w = doRequest(r, http.MethodPost, "/orders/checkout", body, studentToken)
	assert.Equal(t, http.StatusCreated, w.Code)
	orderData := responseData(t, w)
	orderID := int(orderData["id"].(float64))
	assert.Equal(t, "pending", orderData["status"])
	assert.Len(t, orderData["order_items"].([]interface{}), 2)

	// Cart is cleared
	w = doRequest(r, http.MethodGet, "/cart", nil, studentToken)
	cartData = responseData(t, w)
	assert.Empty(t, cartData["entries"])

	// Checkout again -> empty cart
	w = doRequest(r, http.MethodPost, "/orders/checkout", nil, studentToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	statusURL := fmt.Sprintf("/admin/orders/%d/status", orderID)

	// Student may not drive fulfillment
	w = doRequest(r, http.MethodPatch, statusURL, map[string]string{"status": "preparing"}, studentToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Skipping a stage is rejected
	w = doRequest(r, http.MethodPatch, statusURL, map[string]string{"status": "ready"}, adminToken)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// Legal lifecycle
	for _, next := range []string{"preparing", "ready", "completed"} {
		w = doRequest(r, http.MethodPatch, statusURL, map[string]string{"status": next}, adminToken)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, next, responseData(t, w)["status"])
	}

	// Student sees the completed order
	w = doRequest(r, http.MethodGet, "/orders", nil, studentToken)
	assert.Equal(t, http.StatusOK, w.Code)
	var listResp struct {
		Data []map[string]interface{} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &listResp))
	assert.Len(t, listResp.Data, 1)
	assert.Equal(t, "completed", listResp.Data[0]["status"])
	assert.NotNil(t, listResp.Data[0]["completed_at"])
}

func TestAdminMenuManagement(t *testing.T) {
	db := setupTestDB(t)
	r := router.SetupRouter(db)

	adminToken := loginTest(t, r, "staff@campus.edu", "secret123")
	studentToken := loginTest(t, r, "student@campus.edu", "secret123")

	// Students may not touch the catalog
	item := map[string]interface{}{"name": "Idli", "price": 40.0, "category": "breakfast"}
	w := doRequest(r, http.MethodPost, "/admin/menu", item, studentToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(r, http.MethodPost, "/admin/menu", item, adminToken)
	assert.Equal(t, http.StatusCreated, w.Code)
	itemID := int(responseData(t, w)["id"].(float64))

	// Toggle availability off; the item vanishes from the public menu
	w = doRequest(r, http.MethodPatch, fmt.Sprintf("/admin/menu/%d", itemID),
		map[string]interface{}{"is_available": false}, adminToken)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, http.MethodGet, "/menu?category=breakfast", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	var listResp struct {
		Data []map[string]interface{} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &listResp))
	assert.Empty(t, listResp.Data)

	// Adding an unavailable item to the cart fails
	w = doRequest(r, http.MethodPost, "/cart/items",
		map[string]interface{}{"menu_item_id": itemID}, studentToken)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// TestRateLimitingKicksIn hammers a route from one client IP; the per-IP
// limiter (50 req/s) must reject part of the burst with 429.
func TestRateLimitingKicksIn(t *testing.T) {
	db := setupTestDB(t)
	r := router.SetupRouter(db)

	limited := false
	for i := 0; i < 60; i++ {
		w := doRequest(r, http.MethodGet, "/ping", nil, "")
		if w.Code == http.StatusTooManyRequests {
			limited = true
			break
		}
		assert.Equal(t, http.StatusOK, w.Code)
	}
	assert.True(t, limited, "a burst of 60 requests should trip the per-IP limit")
}

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in-memory sqlite: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.MenuItem{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Notification{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	hashed, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)

	student := models.User{Email: "student@campus.edu", Password: string(hashed), FullName: "Test Student"}
	db.Create(&student)
	number := "CS2021001"
	dept := "Computer Science"
	db.Create(&models.Profile{UserID: student.ID, Role: models.RoleStudent, StudentNumber: &number, Department: &dept})

	staff := models.User{Email: "staff@campus.edu", Password: string(hashed), FullName: "Test Staff"}
	db.Create(&staff)
	staffID := "STF-01"
	caf := "Main Cafeteria"
	db.Create(&models.Profile{UserID: staff.ID, Role: models.RoleAdmin, StaffID: &staffID, CafeteriaName: &caf})

	db.Create(&models.MenuItem{Name: "Veg Thali", Price: 100, Category: models.CategoryMainCourse, IsVegetarian: true, IsAvailable: true})
	db.Create(&models.MenuItem{Name: "Burger", Price: 150, Category: models.CategoryFastFood, IsAvailable: true})

	return db
}

func loginTest(t *testing.T, r *gin.Engine, email, password string) string {
	w := doRequest(r, http.MethodPost, "/login", map[string]string{
		"email":    email,
		"password": password,
	}, "")
	assert.Equal(t, http.StatusOK, w.Code)

	data := responseData(t, w)
	token, ok := data["token"].(string)
	assert.True(t, ok, "login response must contain a token")
	return token
}

func addToCart(t *testing.T, r *gin.Engine, token string, menuItemID int) {
	w := doRequest(r, http.MethodPost, "/cart/items",
		map[string]interface{}{"menu_item_id": menuItemID}, token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func doRequest(r *gin.Engine, method, url string, body interface{}, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func responseData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v (%s)", err, w.Body.String())
	}
	data, ok := resp["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("response has no data object: %s", w.Body.String())
	}
	return data
}
