package httpserver

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"fauve-storefront/internal/checkout"
	"fauve-storefront/internal/domain"
)

// checkoutHandler runs one checkout attempt for the caller's session
// cart. Failure modes map onto distinct status codes so the storefront
// can tell "fix your form" from "payment refused" from "call support".
func checkoutHandler(logger *log.Logger, sessions *sessionRegistry, deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var form domain.CheckoutForm
		if err := c.ShouldBindJSON(&form); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		cartStore := sessions.cart(sessionID(c))
		orchestrator := checkout.New(cartStore, deps.Pricing, deps.Payments, deps.Store, deps.Notifier, logger)
		attempt := orchestrator.NewAttempt(form, currentUser(c))

		order, err := attempt.Run(c.Request.Context())
		if err != nil {
			var invalidForm *checkout.InvalidFormError
			var paymentErr *checkout.PaymentError
			var persistErr *checkout.PersistenceError
			switch {
			case errors.Is(err, checkout.ErrEmptyCart):
				c.JSON(http.StatusBadRequest, gin.H{"error": "your cart is empty"})
			case errors.As(err, &invalidForm):
				c.JSON(http.StatusBadRequest, gin.H{"error": invalidForm.Error(), "missing": invalidForm.Missing})
			case errors.As(err, &paymentErr):
				c.JSON(http.StatusPaymentRequired, gin.H{"error": "payment failed, please try again"})
			case errors.As(err, &persistErr):
				c.JSON(http.StatusBadGateway, gin.H{
					"error":         "your order may not have completed, please contact support",
					"transactionId": persistErr.TransactionID,
				})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "checkout failed"})
			}
			return
		}

		c.JSON(http.StatusCreated, order)
	}
}
