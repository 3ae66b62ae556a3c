package orderControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hackwithroshan/autocosmic-shop-sub000/models"
)

// POST /api/orders
func PlaceOrderHandler(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
			return
		}

		// Authenticated checkouts carry the caller's identity; the resolver
		// still matches by email, so this is informational only.
		order, accountCreated, err := svc.PlaceOrder(req)
		if err != nil {
			switch {
			case errors.Is(err, ErrEmptyCart):
				c.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty"})
			case errors.Is(err, ErrPaymentVerificationFailed):
				c.JSON(http.StatusBadRequest, gin.H{"error": "payment could not be verified, contact support"})
			case errors.Is(err, ErrInsufficientStock):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to place order"})
			}
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"order":           order,
			"account_created": accountCreated,
		})
	}
}

// OrderDirectory is what the read and update handlers need from storage.
// *Store satisfies it.
type OrderDirectory interface {
	ListOrders(filter ListFilter) ([]models.Order, error)
	GetOrder(id string) (*models.Order, error)
	UpdateStatus(id string, status models.OrderStatus, trackingInfo *string) (*models.Order, error)
}

// GET /api/orders (admin)
func GetAllOrdersHandler(store OrderDirectory) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := ListFilter{}
		if statusParam := c.Query("status"); statusParam != "" {
			status, err := models.ParseOrderStatus(statusParam)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			filter.Status = status
		}

		orders, err := store.ListOrders(filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /api/orders/my-orders
func GetMyOrdersHandler(store OrderDirectory) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		orders, err := store.ListOrders(ListFilter{UserID: userID})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /api/orders/:id, the caller's own order, or any order for admins.
func GetOrderByIDHandler(store OrderDirectory) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := store.GetOrder(c.Param("id"))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch order"})
			return
		}

		role := models.Role(c.GetString("role"))
		if !models.IsElevated(role) && order.UserID != c.GetString("user_id") {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

type updateOrderRequest struct {
	Status       string  `json:"status" binding:"required"`
	TrackingInfo *string `json:"tracking_info"`
}

// PUT /api/orders/:id (admin). Any status may be set, including "backwards";
// the workflow trusts admins to correct mistakes.
func UpdateOrderHandler(store OrderDirectory) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		status, err := models.ParseOrderStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		order, err := store.UpdateStatus(c.Param("id"), status, req.TrackingInfo)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order"})
			return
		}

		broadcastOrder(order)
		c.JSON(http.StatusOK, order)
	}
}
