// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"trading/internal/delivery/http/middleware"
	"trading/internal/delivery/http/router/handler"
	"trading/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler      *handler.UserHandler
	AdminUserHandler *handler.AdminUserHandler
	CustomerHandler  *handler.CustomerHandler
	ProductHandler   *handler.ProductHandler
	OrderHandler     *handler.OrderHandler
	AuthMiddleware   *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler      *handler.UserHandler
	adminUserHandler *handler.AdminUserHandler
	customerHandler  *handler.CustomerHandler
	productHandler   *handler.ProductHandler
	orderHandler     *handler.OrderHandler
	authMiddleware   *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:      params.UserHandler,
		adminUserHandler: params.AdminUserHandler,
		customerHandler:  params.CustomerHandler,
		productHandler:   params.ProductHandler,
		orderHandler:     params.OrderHandler,
		authMiddleware:   params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.userHandler.Register)
		authGroup.POST("/login", r.userHandler.Login)
	}

	// Business routes require authentication
	apiGroup := e.Group("/api")
	apiGroup.Use(r.authMiddleware.Authenticate)
	{
		customers := apiGroup.Group("/customers")
		customers.GET("", r.customerHandler.List)
		customers.POST("", r.customerHandler.Create)
		customers.GET("/:id", r.customerHandler.Get)
		customers.PUT("/:id", r.customerHandler.Update)
		customers.DELETE("/:id", r.customerHandler.Delete)

		products := apiGroup.Group("/products")
		products.GET("", r.productHandler.List)
		products.POST("", r.productHandler.Create)
		products.GET("/:id", r.productHandler.Get)
		products.PUT("/:id", r.productHandler.Update)
		products.DELETE("/:id", r.productHandler.Delete)

		orders := apiGroup.Group("/orders")
		orders.GET("", r.orderHandler.List)
		orders.POST("", r.orderHandler.Place)
		orders.GET("/:id", r.orderHandler.Get)
		orders.PUT("/:id", r.orderHandler.Update)
		orders.DELETE("/:id", r.orderHandler.Delete)
	}

	// Account administration requires the ADMIN role on top of authentication
	adminGroup := e.Group("/admin")
	adminGroup.Use(r.authMiddleware.Authenticate)
	adminGroup.Use(r.authMiddleware.RequireRole(entity.RoleAdmin))
	{
		adminGroup.GET("/users", r.adminUserHandler.List)
		adminGroup.POST("/users/:id/role", r.adminUserHandler.UpdateRole)
		adminGroup.POST("/users/:id/active", r.adminUserHandler.SetActive)
	}
}
