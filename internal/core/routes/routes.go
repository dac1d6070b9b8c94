package routes

import (
	"github.com/TaiHuynhPL/QLTBCNTT-sub000/internal/core/container"
	"github.com/TaiHuynhPL/QLTBCNTT-sub000/internal/middleware"
	"github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/security"

	"github.com/gin-gonic/gin"
)

func RegisterPublicRoutes(router *gin.Engine, c *container.Container) {
	c.LoginHandler.RegisterRoutes(router)
}

// RegisterProtectedRoutes wires every domain handler under /api behind the
// JWT middleware; per-route role checks live on the handlers themselves.
func RegisterProtectedRoutes(router *gin.Engine, c *container.Container) {
	api := router.Group("/api")
	api.Use(security.JWTMiddleware())

	c.OrderHandler.RegisterRoutes(api)
	c.AssetHandler.RegisterRoutes(api)
	c.StockHandler.RegisterRoutes(api)
	c.AssignmentHandler.RegisterRoutes(api)
	c.CheckoutHandler.RegisterRoutes(api)
	c.CatalogHandler.RegisterRoutes(api)
	c.LocationHandler.RegisterRoutes(api)
	c.SupplierHandler.RegisterRoutes(api)
	c.HolderHandler.RegisterRoutes(api)
	c.UserHandler.RegisterRoutes(api)
	c.ReportHandler.RegisterRoutes(api)
	c.AuditLogHandler.RegisterRoutes(api)
}

func RegisterUtilityRoutes(router *gin.Engine) {
	router.GET("/health", middleware.HealthCheckMiddleware())
}
