package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"fauve-storefront/internal/domain"
)

type addItemRequest struct {
	ProductID string          `json:"productId" binding:"required"`
	Name      string          `json:"name" binding:"required"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
	Quantity  int             `json:"quantity"`
}

type updateQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

func getCartHandler(sessions *sessionRegistry) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, sessions.cart(sessionID(c)).Snapshot())
	}
}

func addCartItemHandler(sessions *sessionRegistry) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if req.Price.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "price must not be negative"})
			return
		}
		quantity := req.Quantity
		if quantity == 0 {
			quantity = 1
		}
		store := sessions.cart(sessionID(c))
		store.AddItem(domain.Product{
			ID:    req.ProductID,
			Name:  req.Name,
			Price: req.Price,
			Image: req.Image,
		}, quantity)
		c.JSON(http.StatusOK, store.Snapshot())
	}
}

func updateCartItemHandler(sessions *sessionRegistry) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateQuantityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		store := sessions.cart(sessionID(c))
		store.UpdateQuantity(c.Param("productID"), *req.Quantity)
		c.JSON(http.StatusOK, store.Snapshot())
	}
}

func removeCartItemHandler(sessions *sessionRegistry) gin.HandlerFunc {
	return func(c *gin.Context) {
		store := sessions.cart(sessionID(c))
		store.RemoveItem(c.Param("productID"))
		c.JSON(http.StatusOK, store.Snapshot())
	}
}

func clearCartHandler(sessions *sessionRegistry) gin.HandlerFunc {
	return func(c *gin.Context) {
		store := sessions.cart(sessionID(c))
		store.Clear()
		c.JSON(http.StatusOK, store.Snapshot())
	}
}
