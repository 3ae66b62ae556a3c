package orderControllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hackwithroshan/autocosmic-shop-sub000/models"
)

// mockDirectory records what the handlers ask of storage.
type mockDirectory struct {
	orders  []models.Order
	listErr error

	lastFilter *ListFilter

	updated         *models.Order
	updateErr       error
	updatedID       string
	updatedStatus   models.OrderStatus
	updatedTracking *string
}

func (m *mockDirectory) ListOrders(filter ListFilter) ([]models.Order, error) {
	f := filter
	m.lastFilter = &f
	return m.orders, m.listErr
}

func (m *mockDirectory) GetOrder(id string) (*models.Order, error) {
	for i := range m.orders {
		if m.orders[i].OrderRef == id {
			return &m.orders[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDirectory) UpdateStatus(id string, status models.OrderStatus, trackingInfo *string) (*models.Order, error) {
	m.updatedID = id
	m.updatedStatus = status
	m.updatedTracking = trackingInfo
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	return m.updated, nil
}

func identityStub(userID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("role", role)
	}
}

func TestGetMyOrdersHandlerScopesToCaller(t *testing.T) {
	gin.SetMode(gin.TestMode)
	dir := &mockDirectory{orders: []models.Order{{OrderRef: "r-1", UserID: "u-42"}}}

	r := gin.New()
	r.GET("/my-orders", identityStub("u-42", "user"), GetMyOrdersHandler(dir))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/my-orders", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, dir.lastFilter)
	assert.Equal(t, "u-42", dir.lastFilter.UserID, "listing must be scoped to the caller")
	assert.Empty(t, dir.lastFilter.Status)
}

func TestGetAllOrdersHandlerStatusFilter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	dir := &mockDirectory{}

	r := gin.New()
	r.GET("/orders", GetAllOrdersHandler(dir))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders?status=shipped", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, dir.lastFilter)
	assert.Equal(t, models.OrderStatusShipped, dir.lastFilter.Status)
	assert.Empty(t, dir.lastFilter.UserID)

	dir.lastFilter = nil
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders?status=teleported", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, dir.lastFilter)
}

func TestUpdateOrderHandlerTouchesOnlyStatusAndTracking(t *testing.T) {
	gin.SetMode(gin.TestMode)
	dir := &mockDirectory{updated: &models.Order{OrderRef: "r-1", Status: models.OrderStatusShipped, Total: 1249.50}}

	r := gin.New()
	r.PUT("/orders/:id", UpdateOrderHandler(dir))

	// Extra fields in the body must not reach storage; the update surface
	// carries status and tracking info only.
	body := `{"status":"Shipped","tracking_info":"AWB-7","total":1,"items":[],"created_at":"2020-01-01T00:00:00Z"}`
	req := httptest.NewRequest(http.MethodPut, "/orders/r-1", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "r-1", dir.updatedID)
	assert.Equal(t, models.OrderStatusShipped, dir.updatedStatus)
	require.NotNil(t, dir.updatedTracking)
	assert.Equal(t, "AWB-7", *dir.updatedTracking)
	assert.Contains(t, rec.Body.String(), "1249.5", "total comes back from storage, not from the request")
}

func TestUpdateOrderHandlerOmittedTrackingStaysUntouched(t *testing.T) {
	gin.SetMode(gin.TestMode)
	dir := &mockDirectory{updated: &models.Order{OrderRef: "r-1", Status: models.OrderStatusPacked}}

	r := gin.New()
	r.PUT("/orders/:id", UpdateOrderHandler(dir))

	req := httptest.NewRequest(http.MethodPut, "/orders/r-1", strings.NewReader(`{"status":"Packed"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, dir.updatedTracking, "absent tracking_info must not overwrite storage")
}

func TestUpdateOrderHandlerRejectsUnknownStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	dir := &mockDirectory{}

	r := gin.New()
	r.PUT("/orders/:id", UpdateOrderHandler(dir))

	req := httptest.NewRequest(http.MethodPut, "/orders/r-1", strings.NewReader(`{"status":"teleported"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, dir.updatedID, "storage must not be touched on a bad status")
}

func TestUpdateOrderHandlerMissingOrder(t *testing.T) {
	gin.SetMode(gin.TestMode)
	dir := &mockDirectory{updateErr: gorm.ErrRecordNotFound}

	r := gin.New()
	r.PUT("/orders/:id", UpdateOrderHandler(dir))

	req := httptest.NewRequest(http.MethodPut, "/orders/nope", strings.NewReader(`{"status":"Shipped"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetOrderByIDHandlerOwnership(t *testing.T) {
	gin.SetMode(gin.TestMode)
	dir := &mockDirectory{orders: []models.Order{{OrderRef: "r-1", UserID: "u-1"}}}

	testCases := []struct {
		name       string
		userID     string
		role       string
		wantStatus int
	}{
		{name: "owner sees own order", userID: "u-1", role: "user", wantStatus: http.StatusOK},
		{name: "stranger gets not found", userID: "u-2", role: "user", wantStatus: http.StatusNotFound},
		{name: "admin sees any order", userID: "u-2", role: "admin", wantStatus: http.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/orders/:id", identityStub(tc.userID, tc.role), GetOrderByIDHandler(dir))

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders/r-1", nil))
			assert.Equal(t, tc.wantStatus, rec.Code)
		})
	}
}
