package router

import (
	"context"
	"net/http"
	"time"

	"storefront/internal/handlers"
	"storefront/internal/middleware"
	"storefront/internal/service"

	"github.com/gin-contrib/cors"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

type Services struct {
	Catalog  service.CatalogService
	Cart     service.CartService
	Checkout service.CheckoutService
	Orders   service.OrderService
	Admin    service.AdminService
}

// HealthCheck возвращает nil, если зависимость доступна.
type HealthCheck func(ctx context.Context) error

func Router(svc Services, verifier middleware.TokenVerifier, health map[string]HealthCheck, log *zap.Logger) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		checks := gin.H{}
		code, status := http.StatusOK, "ok"
		for name, check := range health {
			if err := check(ctx); err != nil {
				log.Warn("health check failed", zap.String("dependency", name), zap.Error(err))
				checks[name] = err.Error()
				code, status = http.StatusServiceUnavailable, "degraded"
				continue
			}
			checks[name] = "ok"
		}
		c.JSON(code, gin.H{
			"status": status,
			"checks": checks,
		})
	})

	catalog := handlers.NewCatalogHandler(svc.Catalog, log)
	carts := handlers.NewCartHandler(svc.Cart, log)
	orders := handlers.NewOrderHandler(svc.Checkout, svc.Orders, log)
	admin := handlers.NewAdminHandler(svc.Admin, log)

	api := r.Group("/api/v1")
	{
		api.GET("/products", catalog.ListProducts)
		api.GET("/products/:slug", catalog.GetProduct)
		api.GET("/brands", catalog.ListBrands)
		api.GET("/categories", catalog.ListCategories)
		api.GET("/partners", catalog.ListPartners)
	}

	authed := api.Group("", middleware.AuthRequired(verifier, log))
	{
		authed.GET("/cart", carts.GetCart)
		authed.DELETE("/cart", carts.ClearCart)
		authed.POST("/cart/items", carts.AddItem)
		authed.PUT("/cart/items/:variantId", carts.UpdateItem)
		authed.DELETE("/cart/items/:variantId", carts.RemoveItem)
		authed.POST("/cart/checkout", carts.Checkout)

		authed.POST("/orders", orders.PlaceOrder)
		authed.GET("/orders", orders.ListMyOrders)
		authed.GET("/orders/:id", orders.GetMyOrder)
	}

	adm := authed.Group("/admin", middleware.AdminRequired())
	{
		adm.POST("/products", admin.CreateProduct)
		adm.PUT("/products/:id", admin.UpdateProduct)
		adm.DELETE("/products/:id", admin.DeleteProduct)
		adm.POST("/products/:id/variants", admin.AddVariant)
		adm.PUT("/variants/:id", admin.UpdateVariant)

		adm.POST("/categories", admin.CreateCategory)
		adm.PUT("/categories/:id", admin.UpdateCategory)
		adm.DELETE("/categories/:id", admin.DeleteCategory)

		adm.GET("/partners", admin.ListPartners)
		adm.POST("/partners", admin.CreatePartner)
		adm.PUT("/partners/:id", admin.UpdatePartner)
		adm.DELETE("/partners/:id", admin.DeletePartner)

		adm.GET("/orders", admin.ListOrders)
		adm.GET("/orders/:id", admin.GetOrder)
		adm.PATCH("/orders/:id/status", admin.UpdateOrderStatus)
	}

	return r
}
