package orderControllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hackwithroshan/autocosmic-shop-sub000/cart"
	"github.com/hackwithroshan/autocosmic-shop-sub000/models"
)

// --- Mocks ---

type mockVerifier struct {
	ok       bool
	lastArgs [3]string
}

func (m *mockVerifier) Verify(intentID, paymentID, signature string) bool {
	m.lastArgs = [3]string{intentID, paymentID, signature}
	return m.ok
}

type mockPersister struct {
	err     error
	created *models.Order
	lines   []cart.Line
}

func (m *mockPersister) CreateOrder(order *models.Order, lines []cart.Line) error {
	if m.err != nil {
		return m.err
	}
	order.ID = 42
	for _, l := range lines {
		order.Items = append(order.Items, models.OrderItem{ProductID: l.ProductID, Quantity: l.Quantity})
	}
	m.created = order
	m.lines = lines
	return nil
}

type mockNotifier struct {
	sent chan string // plaintext password passed to the dispatcher
}

func (m *mockNotifier) SendOrderConfirmation(order *models.Order, lines []cart.Line, plaintextPassword string) error {
	if m.sent != nil {
		m.sent <- plaintextPassword
	}
	return nil
}

func staticResolver(user *models.User, created bool, plaintext string) CustomerResolver {
	return func(email, name, phone string, address models.Address) (*models.User, bool, string, error) {
		return user, created, plaintext, nil
	}
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func validRequest() PlaceOrderRequest {
	return PlaceOrderRequest{
		Items:         []cart.Line{{ProductID: 1, Name: "Serum", Quantity: 2, UnitPrice: 500}},
		Total:         1000,
		CustomerName:  "Asha",
		CustomerEmail: "a@x.com",
		CustomerPhone: "9999999999",
		PaymentProof:  PaymentProof{IntentID: "order_1", PaymentID: "pay_1", Signature: "sig"},
	}
}

// --- Service tests ---

func TestPlaceOrderHappyPath(t *testing.T) {
	persister := &mockPersister{}
	notifier := &mockNotifier{sent: make(chan string, 1)}
	user := &models.User{ID: "u-1", Email: "a@x.com"}

	svc := NewService(persister, &mockVerifier{ok: true}, staticResolver(user, true, "9999999999"), notifier, quietLogger())

	order, accountCreated, err := svc.PlaceOrder(validRequest())
	require.NoError(t, err)
	assert.True(t, accountCreated)

	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, "u-1", order.UserID)
	assert.InDelta(t, 1000, order.Total, 0.001)
	assert.Len(t, order.Items, 1)
	assert.Equal(t, uint(1), order.Items[0].ProductID)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.NotEmpty(t, order.OrderRef)
	assert.WithinDuration(t, time.Now(), order.CreatedAt, time.Second)

	select {
	case plaintext := <-notifier.sent:
		assert.Equal(t, "9999999999", plaintext, "generated credential forwarded to the dispatcher once")
	case <-time.After(2 * time.Second):
		t.Fatal("confirmation dispatch was never triggered")
	}
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	persister := &mockPersister{}
	svc := NewService(persister, &mockVerifier{ok: true}, staticResolver(&models.User{ID: "u-1"}, false, ""), &mockNotifier{}, quietLogger())

	req := validRequest()
	req.Items = nil

	_, _, err := svc.PlaceOrder(req)
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Nil(t, persister.created, "nothing may be persisted for an empty cart")
}

func TestPlaceOrderBadSignature(t *testing.T) {
	persister := &mockPersister{}
	verifier := &mockVerifier{ok: false}
	svc := NewService(persister, verifier, staticResolver(&models.User{ID: "u-1"}, false, ""), &mockNotifier{}, quietLogger())

	_, _, err := svc.PlaceOrder(validRequest())
	assert.ErrorIs(t, err, ErrPaymentVerificationFailed)
	assert.Nil(t, persister.created, "nothing may be persisted for an unverified payment")
	assert.Equal(t, [3]string{"order_1", "pay_1", "sig"}, verifier.lastArgs)
}

func TestPlaceOrderItemsMatchCartLines(t *testing.T) {
	persister := &mockPersister{}
	svc := NewService(persister, &mockVerifier{ok: true}, staticResolver(&models.User{ID: "u-1"}, false, ""), &mockNotifier{}, quietLogger())

	req := validRequest()
	req.Items = []cart.Line{
		{ProductID: 1, Quantity: 2, UnitPrice: 500},
		{ProductID: 2, Quantity: 1, UnitPrice: 249},
		{ProductID: 3, Quantity: 4, UnitPrice: 99},
	}
	req.Total = 1645

	order, _, err := svc.PlaceOrder(req)
	require.NoError(t, err)
	assert.Len(t, order.Items, len(req.Items))
}

func TestPlaceOrderPersistFailure(t *testing.T) {
	persister := &mockPersister{err: errors.New("db down")}
	svc := NewService(persister, &mockVerifier{ok: true}, staticResolver(&models.User{ID: "u-1"}, false, ""), &mockNotifier{}, quietLogger())

	_, _, err := svc.PlaceOrder(validRequest())
	assert.Error(t, err)
}

// --- Handler tests ---

func placeOrderRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/orders", PlaceOrderHandler(svc))
	return r
}

func TestPlaceOrderHandler(t *testing.T) {
	testCases := []struct {
		name       string
		verifierOK bool
		mutate     func(*PlaceOrderRequest)
		wantStatus int
		wantError  string
	}{
		{
			name:       "created",
			verifierOK: true,
			mutate:     func(r *PlaceOrderRequest) {},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "empty cart",
			verifierOK: true,
			mutate:     func(r *PlaceOrderRequest) { r.Items = []cart.Line{} },
			wantStatus: http.StatusBadRequest,
			wantError:  "cart is empty",
		},
		{
			name:       "failed verification",
			verifierOK: false,
			mutate:     func(r *PlaceOrderRequest) {},
			wantStatus: http.StatusBadRequest,
			wantError:  "payment could not be verified, contact support",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewService(
				&mockPersister{},
				&mockVerifier{ok: tc.verifierOK},
				staticResolver(&models.User{ID: "u-1"}, true, "9999999999"),
				&mockNotifier{},
				quietLogger(),
			)

			req := validRequest()
			tc.mutate(&req)
			body, _ := json.Marshal(req)

			rec := httptest.NewRecorder()
			httpReq := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewReader(body))
			httpReq.Header.Set("Content-Type", "application/json")
			placeOrderRouter(svc).ServeHTTP(rec, httpReq)

			assert.Equal(t, tc.wantStatus, rec.Code)

			var resp map[string]interface{}
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			if tc.wantError != "" {
				assert.Equal(t, tc.wantError, resp["error"])
				return
			}
			assert.Equal(t, true, resp["account_created"])
			order := resp["order"].(map[string]interface{})
			assert.Equal(t, string(models.OrderStatusPending), order["status"])
			assert.Equal(t, float64(1000), order["total"])
		})
	}
}

func TestPlaceOrderHandlerRejectsMalformedBody(t *testing.T) {
	svc := NewService(&mockPersister{}, &mockVerifier{ok: true}, staticResolver(&models.User{ID: "u"}, false, ""), &mockNotifier{}, quietLogger())

	rec := httptest.NewRecorder()
	httpReq := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewReader([]byte(`{"total": "not-a-number"}`)))
	httpReq.Header.Set("Content-Type", "application/json")
	placeOrderRouter(svc).ServeHTTP(rec, httpReq)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "error")
}
