package paymentControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type paymentIntentRequest struct {
	Amount   float64 `json:"amount" binding:"required,gt=0"`
	Currency string  `json:"currency" binding:"required,len=3"`
}

// PaymentIntentHandler creates a provider-side payment intent for the
// amount the client is about to pay.
// POST /api/orders/payment-intent
func PaymentIntentHandler(gw *Gateway, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req paymentIntentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
			return
		}

		intent, err := gw.CreateIntent(req.Amount, req.Currency)
		if err != nil {
			log.Errorf("payment intent creation failed: %v", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "payment gateway unavailable, please try again"})
			return
		}

		c.JSON(http.StatusOK, intent)
	}
}
