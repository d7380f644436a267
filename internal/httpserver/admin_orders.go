package httpserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fauve-storefront/internal/checkout"
	"fauve-storefront/internal/docstore"
	"fauve-storefront/internal/domain"
)

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func listOrdersHandler(store docstore.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var filter docstore.Record
		if status := c.Query("status"); status != "" {
			if !domain.OrderStatus(status).Valid() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "unknown order status"})
				return
			}
			filter = docstore.Record{"status": status}
		}
		orders, err := store.Query(c.Request.Context(), checkout.OrdersCollection, filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list orders"})
			return
		}
		if orders == nil {
			orders = []docstore.Record{}
		}
		c.JSON(http.StatusOK, gin.H{"orders": orders})
	}
}

// updateOrderStatusHandler applies an admin-driven lifecycle transition.
// The transition table is checked against the stored status before any
// write, so an illegal request changes nothing.
func updateOrderStatusHandler(store docstore.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		to := domain.OrderStatus(req.Status)
		if !to.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown order status"})
			return
		}

		id := c.Param("id")
		rec, err := store.Get(c.Request.Context(), checkout.OrdersCollection, id)
		if err != nil {
			if errors.Is(err, docstore.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load order"})
			return
		}

		current, _ := rec["status"].(string)
		if !domain.CanTransition(domain.OrderStatus(current), to) {
			c.JSON(http.StatusConflict, gin.H{
				"error": domain.ErrInvalidTransition.Error(),
				"from":  current,
				"to":    req.Status,
			})
			return
		}

		partial := docstore.Record{
			"status":    req.Status,
			"updatedAt": time.Now().UTC(),
		}
		if err := store.Update(c.Request.Context(), checkout.OrdersCollection, id, partial); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id, "status": req.Status})
	}
}
