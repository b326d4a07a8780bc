package handler

import (
	"log/slog"
	"net/http"

	"storefront/internal/delivery/http/response"
	"storefront/internal/domain/entity"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// OrderHandlerParams holds dependencies for OrderHandler, injected by Fx.
type OrderHandlerParams struct {
	fx.In

	OrderUC    usecase.OrderUsecase
	CheckoutUC usecase.CheckoutUsecase
	Logger     *slog.Logger
}

// OrderHandler holds dependencies for order-related handlers
type OrderHandler struct {
	orderUC    usecase.OrderUsecase
	checkoutUC usecase.CheckoutUsecase
	logger     *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler
func NewOrderHandler(params OrderHandlerParams) *OrderHandler {
	return &OrderHandler{
		orderUC:    params.OrderUC,
		checkoutUC: params.CheckoutUC,
		logger:     params.Logger,
	}
}

// CheckoutRequest represents the request body for converting a cart into an order
type CheckoutRequest struct {
	CartID          uuid.UUID   `json:"cart_id" validate:"required"`
	AddressID       uuid.UUID   `json:"address_id" validate:"required"`
	PaymentMethodID *uuid.UUID  `json:"payment_method_id,omitempty"`
	ShippingMethod  string      `json:"shipping_method" validate:"required"`
	Note            string      `json:"note,omitempty"`
	PromotionIDs    []uuid.UUID `json:"promotion_ids,omitempty"`
}

// UpdateStatusRequest represents the request body for an order status transition
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// Checkout handles converting an active cart into an order
func (h *OrderHandler) Checkout(c echo.Context) error {
	var req CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid checkout input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	order, err := h.checkoutUC.CreateFromCart(c.Request().Context(), usecase.CheckoutInput{
		CartID:          req.CartID,
		AddressID:       req.AddressID,
		PaymentMethodID: req.PaymentMethodID,
		ShippingMethod:  req.ShippingMethod,
		Note:            req.Note,
		PromotionIDs:    req.PromotionIDs,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, order, "Order created successfully")
}

// GetOrder handles retrieving an order with its line snapshots
func (h *OrderHandler) GetOrder(c echo.Context) error {
	orderID, err := uuid.Parse(c.Param("orderId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid order ID")
	}

	view, err := h.orderUC.GetOrder(c.Request().Context(), orderID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, view, "Order retrieved successfully")
}

// ListOrders handles retrieving a customer's orders, newest first
func (h *OrderHandler) ListOrders(c echo.Context) error {
	customerID, err := uuid.Parse(c.QueryParam("customer_id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid customer ID")
	}

	orders, err := h.orderUC.ListOrdersByCustomer(c.Request().Context(), customerID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, orders, "Orders retrieved successfully")
}

// UpdateStatus handles applying an order status transition
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	orderID, err := uuid.Parse(c.Param("orderId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid order ID")
	}

	var req UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	order, err := h.orderUC.UpdateStatus(c.Request().Context(), orderID, entity.OrderStatus(req.Status))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, order, "Order status updated successfully")
}

// CancelOrder handles transitioning an order to cancelled
func (h *OrderHandler) CancelOrder(c echo.Context) error {
	orderID, err := uuid.Parse(c.Param("orderId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid order ID")
	}

	order, err := h.orderUC.CancelOrder(c.Request().Context(), orderID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, order, "Order cancelled successfully")
}

// GetTimeline handles retrieving an order's timeline events, newest first
func (h *OrderHandler) GetTimeline(c echo.Context) error {
	orderID, err := uuid.Parse(c.Param("orderId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid order ID")
	}

	events, err := h.orderUC.GetTimeline(c.Request().Context(), orderID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, events, "Order timeline retrieved successfully")
}
