package orderControllers

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/hackwithroshan/autocosmic-shop-sub000/cart"
	"github.com/hackwithroshan/autocosmic-shop-sub000/models"
)

var (
	ErrEmptyCart                 = errors.New("cart is empty")
	ErrPaymentVerificationFailed = errors.New("payment could not be verified")
)

// PaymentVerifier checks a client-reported payment against the gateway
// secret. Implemented by paymentControllers.Gateway.
type PaymentVerifier interface {
	Verify(intentID, paymentID, signature string) bool
}

// OrderPersister writes the order and its stock effects. Implemented by
// *Store.
type OrderPersister interface {
	CreateOrder(order *models.Order, lines []cart.Line) error
}

// CustomerResolver finds-or-creates the purchasing identity. The plaintext
// return is the generated credential, non-empty only when created.
type CustomerResolver func(email, name, phone string, address models.Address) (user *models.User, created bool, plaintext string, err error)

// Notifier sends the confirmation email with invoice. Implemented by
// mailer.Dispatcher.
type Notifier interface {
	SendOrderConfirmation(order *models.Order, lines []cart.Line, plaintextPassword string) error
}

// Service drives the checkout pipeline.
type Service struct {
	store    OrderPersister
	verifier PaymentVerifier
	resolve  CustomerResolver
	notifier Notifier
	log      *logrus.Logger
}

func NewService(store OrderPersister, verifier PaymentVerifier, resolve CustomerResolver, notifier Notifier, log *logrus.Logger) *Service {
	return &Service{
		store:    store,
		verifier: verifier,
		resolve:  resolve,
		notifier: notifier,
		log:      log,
	}
}

// PaymentProof is the client-reported completion of a payment intent.
type PaymentProof struct {
	IntentID  string `json:"intent_id" binding:"required"`
	PaymentID string `json:"payment_id" binding:"required"`
	Signature string `json:"signature" binding:"required"`
}

// PlaceOrderRequest is the wholesale cart snapshot sent at checkout.
type PlaceOrderRequest struct {
	// Items deliberately has no "required" binding: an empty cart must reach
	// PlaceOrder and fail with ErrEmptyCart, not a generic binding error.
	Items           []cart.Line    `json:"items"`
	Total           float64        `json:"total" binding:"required,gt=0"`
	CustomerName    string         `json:"customer_name" binding:"required"`
	CustomerEmail   string         `json:"customer_email" binding:"required,email"`
	CustomerPhone   string         `json:"customer_phone" binding:"required"`
	ShippingAddress models.Address `json:"shipping_address"`
	PaymentProof    PaymentProof   `json:"payment_proof" binding:"required"`
}

// PlaceOrder validates the checkout, verifies payment server-side, resolves
// the purchasing identity (possibly creating an account) and persists the
// order as Pending. Nothing is persisted on any rejection. The confirmation
// email is fired on a goroutine; its failure never affects the result.
func (s *Service) PlaceOrder(req PlaceOrderRequest) (*models.Order, bool, error) {
	if len(req.Items) == 0 {
		return nil, false, ErrEmptyCart
	}

	proof := req.PaymentProof
	if !s.verifier.Verify(proof.IntentID, proof.PaymentID, proof.Signature) {
		s.log.Warnf("payment verification failed for intent %s", proof.IntentID)
		return nil, false, ErrPaymentVerificationFailed
	}

	user, created, plaintext, err := s.resolve(req.CustomerEmail, req.CustomerName, req.CustomerPhone, req.ShippingAddress)
	if err != nil {
		return nil, false, err
	}

	order := &models.Order{
		OrderRef:        time.Now().Format("20060102150405") + "-" + uuid.NewString(),
		UserID:          user.ID,
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		ShippingAddress: req.ShippingAddress,
		// Total as verified at the gateway, not recomputed from catalog.
		Total:     req.Total,
		Status:    models.OrderStatusPending,
		CreatedAt: time.Now(),
	}

	if err := s.store.CreateOrder(order, req.Items); err != nil {
		return nil, false, err
	}

	s.log.Infof("order %s placed for %s (account_created=%t)", order.OrderRef, order.CustomerEmail, created)

	lines := req.Items
	go func() {
		if err := s.notifier.SendOrderConfirmation(order, lines, plaintext); err != nil {
			s.log.Errorf("confirmation dispatch failed for order %s: %v", order.OrderRef, err)
		}
	}()

	broadcastOrder(order)

	return order, created, nil
}
