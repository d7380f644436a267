package httpserver

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"fauve-storefront/internal/docstore"
	"fauve-storefront/internal/identity"
	"fauve-storefront/internal/money"
	"fauve-storefront/internal/notify"
	"fauve-storefront/internal/payment"
)

// Deps carries the external collaborators the routes need.
type Deps struct {
	Store    docstore.Store
	Payments payment.Processor
	Notifier notify.Notifier
	Identity identity.Provider
	Pricing  money.Pricing
}

// buildRouter wires the storefront routes.
func buildRouter(logger *log.Logger, deps Deps) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization", sessionHeader)
	corsCfg.ExposeHeaders = append(corsCfg.ExposeHeaders, sessionHeader)
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(deps.Store))

	sessions := newSessionRegistry(deps.Pricing)

	api := router.Group("/", identityMiddleware(deps.Identity), sessionMiddleware(sessions))

	api.GET("/cart", getCartHandler(sessions))
	api.POST("/cart/items", addCartItemHandler(sessions))
	api.PATCH("/cart/items/:productID", updateCartItemHandler(sessions))
	api.DELETE("/cart/items/:productID", removeCartItemHandler(sessions))
	api.DELETE("/cart", clearCartHandler(sessions))

	api.POST("/checkout", checkoutHandler(logger, sessions, deps))

	admin := api.Group("/admin", requireAdmin())
	admin.GET("/orders", listOrdersHandler(deps.Store))
	admin.PATCH("/orders/:id/status", updateOrderStatusHandler(deps.Store))

	return router, nil
}
