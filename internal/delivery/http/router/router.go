// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"storefront/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	CartHandler      *handler.CartHandler
	OrderHandler     *handler.OrderHandler
	PromotionHandler *handler.PromotionHandler
	RevenueHandler   *handler.RevenueHandler
}

// router holds all the handlers that need to be registered.
type router struct {
	cartHandler      *handler.CartHandler
	orderHandler     *handler.OrderHandler
	promotionHandler *handler.PromotionHandler
	revenueHandler   *handler.RevenueHandler
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		cartHandler:      params.CartHandler,
		orderHandler:     params.OrderHandler,
		promotionHandler: params.PromotionHandler,
		revenueHandler:   params.RevenueHandler,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Cart routes
	cartGroup := e.Group("/carts")
	{
		cartGroup.POST("/active", r.cartHandler.GetOrCreateActiveCart)
		cartGroup.GET("/:cartId", r.cartHandler.GetCart)
		cartGroup.GET("/:cartId/total", r.cartHandler.CalculateTotal)
		cartGroup.POST("/:cartId/items", r.cartHandler.AddItem)
		cartGroup.DELETE("/:cartId/items", r.cartHandler.ClearCart)
		cartGroup.PUT("/items/:itemId/quantity", r.cartHandler.UpdateItemQuantity)
		cartGroup.PUT("/items/:itemId/selection", r.cartHandler.UpdateItemSelection)
		cartGroup.DELETE("/items/:itemId", r.cartHandler.RemoveItem)
	}

	// Order routes, including the cart-to-order checkout
	orderGroup := e.Group("/orders")
	{
		orderGroup.POST("", r.orderHandler.Checkout)
		orderGroup.GET("", r.orderHandler.ListOrders)
		orderGroup.GET("/:orderId", r.orderHandler.GetOrder)
		orderGroup.PUT("/:orderId/status", r.orderHandler.UpdateStatus)
		orderGroup.POST("/:orderId/cancel", r.orderHandler.CancelOrder)
		orderGroup.GET("/:orderId/timeline", r.orderHandler.GetTimeline)
	}

	// Promotion routes
	promotionGroup := e.Group("/promotions")
	{
		promotionGroup.POST("", r.promotionHandler.CreatePromotion)
		promotionGroup.GET("/:promotionId", r.promotionHandler.GetPromotion)
		promotionGroup.POST("/:promotionId/orders", r.promotionHandler.ApplyToOrder)
		promotionGroup.POST("/:promotionId/products", r.promotionHandler.ApplyToProduct)
		promotionGroup.GET("/:promotionId/discount", r.promotionHandler.CalculateOrderDiscount)
	}

	// Revenue report routes
	revenueGroup := e.Group("/revenue")
	{
		revenueGroup.GET("/reports/:reportType", r.revenueHandler.GetReport)
		revenueGroup.GET("/reports/:reportType/range", r.revenueHandler.ListReports)
	}
}
