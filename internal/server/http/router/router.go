package router

import (
	"log/slog"
	"net/http"
	"slices"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/storefront/internal/config"
	"github.com/polkiloo/storefront/internal/metrics"
	"github.com/polkiloo/storefront/internal/server/http/handlers"
	"github.com/polkiloo/storefront/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.StoreFacade, logger *slog.Logger, cfg *config.Config, m *metrics.Metrics) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.Metrics(m))
	engine.Use(cors.New(corsConfig(cfg.CORSOrigins)))
	engine.Use(gzip.Gzip(
		gzip.DefaultCompression,
		gzip.WithDecompressFn(gzip.DefaultDecompressHandle),
		gzip.WithExcludedPaths([]string{"/metrics"}),
	))
	engine.Use(middleware.ErrorHandler(cfg.IsProduction(), logger))

	authHandler := handlers.NewAuthHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	productHandler := handlers.NewProductHandler(facade)
	userHandler := handlers.NewUserHandler(facade)
	reviewHandler := handlers.NewReviewHandler(facade)
	likeHandler := handlers.NewLikeHandler(facade)
	healthHandler := handlers.NewHealthHandler(facade)

	engine.GET("/healthz", healthHandler.Check)
	engine.GET("/metrics", gin.WrapH(m.Handler()))

	authRequired := middleware.AuthRequired(facade)
	adminOnly := middleware.AdminOnly()
	api := engine.Group("/api")

	limiter := middleware.NewRateLimiter(cfg.LoginRateLimit)
	auth := api.Group("/auth", limiter.Handler())
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	orders := api.Group("/orders", authRequired)
	orders.POST("", orderHandler.Create)
	orders.GET("/myorders", orderHandler.Mine)
	orders.GET("/:id", orderHandler.Get)
	orders.PUT("/:id/cancel", orderHandler.Cancel)
	orders.GET("", adminOnly, orderHandler.List)
	orders.PUT("/:id/status", adminOnly, orderHandler.UpdateStatus)
	orders.PUT("/:id/payment", adminOnly, orderHandler.UpdatePayment)

	products := api.Group("/products")
	products.GET("", productHandler.List)
	products.GET("/categories", productHandler.Categories)
	products.GET("/best-sellers", productHandler.BestSellers)
	products.GET("/new", productHandler.NewArrivals)
	products.GET("/:id", productHandler.Get)
	products.POST("", authRequired, adminOnly, productHandler.Create)
	products.PUT("/:id", authRequired, adminOnly, productHandler.Update)
	products.DELETE("/:id", authRequired, adminOnly, productHandler.Delete)

	users := api.Group("/users", authRequired)
	users.GET("/profile", userHandler.Profile)
	users.PUT("/profile", userHandler.UpdateProfile)
	users.GET("/reviews", reviewHandler.Mine)
	users.GET("/likes", likeHandler.Mine)
	users.GET("", adminOnly, userHandler.List)
	users.PUT("/:id/role", adminOnly, userHandler.ChangeRole)
	users.PUT("/:id/status", adminOnly, userHandler.ChangeStatus)
	users.POST("", adminOnly, userHandler.Create)
	users.PUT("/:id", adminOnly, userHandler.Update)
	users.DELETE("/:id", adminOnly, userHandler.Delete)

	api.GET("/dashboard/stats", authRequired, adminOnly, userHandler.Dashboard)

	reviews := api.Group("/reviews")
	reviews.GET("/product/:id", reviewHandler.ForProduct)
	reviews.GET("", authRequired, adminOnly, reviewHandler.List)
	reviews.POST("", authRequired, reviewHandler.Create)
	reviews.PUT("/:id", authRequired, reviewHandler.Update)
	reviews.PUT("/:id/approve", authRequired, adminOnly, reviewHandler.Approve)
	reviews.DELETE("/:id", authRequired, reviewHandler.Delete)

	likes := api.Group("/likes")
	likes.GET("/product/:productId", middleware.OptionalAuth(facade), likeHandler.Status)
	likes.POST("/:productId", authRequired, likeHandler.Toggle)

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "route not found"})
	})

	return engine
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Encoding", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Authorization", "X-Request-ID"},
		AllowCredentials: true,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}
