package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/marketbay/storefront-api/docs"
	"github.com/marketbay/storefront-api/internal/api/handler"
	"github.com/marketbay/storefront-api/internal/api/middleware"
	"github.com/marketbay/storefront-api/internal/core/domain"
	"github.com/marketbay/storefront-api/internal/core/service"
	mongodb "github.com/marketbay/storefront-api/internal/infrastructure/db/mongo"
	redisdb "github.com/marketbay/storefront-api/internal/infrastructure/db/redis"
)

// Options carries everything the router needs to assemble the application.
type Options struct {
	Mongo              *mongo.Database
	Redis              *redis.Client
	AccessTokenSecret  string
	RefreshTokenSecret string
	SecureCookies      bool
	Logger             zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	// Reflect the request origin and allow credentials so the HttpOnly
	// refresh cookie survives cross-origin fetches from the storefront.
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOriginFunc:  func(string) (bool, error) { return true, nil },
		AllowCredentials: true,
	}))
	e.Use(echoprometheus.NewMiddleware("storefront"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(opts.Mongo)
	cartRepo := mongodb.NewCartRepository(opts.Mongo)
	productRepo := mongodb.NewProductRepository(opts.Mongo)
	orderRepo := mongodb.NewOrderRepository(opts.Mongo)
	catalogCache := redisdb.NewCatalogCache(opts.Redis)

	tokenService := service.NewTokenService(opts.AccessTokenSecret, opts.RefreshTokenSecret, 0, 0, opts.Logger)
	sessionService := service.NewSessionService(userRepo, tokenService, opts.Logger)
	cartService := service.NewCartService(cartRepo, opts.Logger)
	productService := service.NewProductService(productRepo, catalogCache, opts.Logger)
	orderService := service.NewOrderService(orderRepo, opts.Logger)
	userService := service.NewUserService(userRepo, opts.Logger)

	authHandler := handler.NewAuthHandler(sessionService, opts.SecureCookies)
	refreshHandler := handler.NewRefreshHandler(sessionService)
	cartHandler := handler.NewCartHandler(cartService)
	productHandler := handler.NewProductHandler(productService)
	orderHandler := handler.NewOrderHandler(orderService)
	userHandler := handler.NewUserHandler(userService)
	healthHandler := handler.NewHealthHandler(opts.Mongo, opts.Redis)

	authGate := middleware.Auth(tokenService)

	// --- Public routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/logout", authHandler.Logout)
	e.GET("/refresh", refreshHandler.Refresh)
	e.GET("/refresh/status", refreshHandler.Status)
	e.GET("/users/exists", userHandler.Exists)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Protected routes ---
	products := e.Group("/products", authGate)
	products.GET("", productHandler.List)
	products.POST("", productHandler.Create)
	products.PUT("", productHandler.Update)
	products.DELETE("", productHandler.Delete)
	products.GET("/search", productHandler.Search)
	products.GET("/:id", productHandler.Get)
	products.PUT("/:id", productHandler.Update)

	cart := e.Group("/cart", authGate)
	cart.GET("", cartHandler.List)
	cart.POST("", cartHandler.Add)
	cart.PUT("", cartHandler.Update)
	cart.DELETE("", cartHandler.Delete)
	cart.GET("/:id", cartHandler.Get)
	cart.PUT("/:id", cartHandler.Update)

	orders := e.Group("/orders", authGate)
	orders.GET("", orderHandler.List)
	orders.POST("", orderHandler.Create)
	orders.PUT("", orderHandler.Update)
	orders.DELETE("", orderHandler.Delete)
	orders.GET("/:id", orderHandler.Get)
	orders.PUT("/:id", orderHandler.Update)

	users := e.Group("/users", authGate)
	users.GET("", userHandler.List)
	users.DELETE("/:id", userHandler.Delete)
	users.PUT("/:id/role", userHandler.UpdateRole,
		middleware.RequireRoles(domain.RoleAdmin, domain.RoleEditor))

	return e
}
