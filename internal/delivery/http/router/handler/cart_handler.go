// Package handler contains the HTTP request handlers.
package handler

import (
	"log/slog"
	"net/http"

	"storefront/internal/delivery/http/response"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// CartHandlerParams holds dependencies for CartHandler, injected by Fx.
type CartHandlerParams struct {
	fx.In

	CartUC usecase.CartUsecase
	Logger *slog.Logger
}

// CartHandler holds dependencies for cart-related handlers
type CartHandler struct {
	cartUC usecase.CartUsecase
	logger *slog.Logger
}

// NewCartHandler is the constructor for CartHandler
func NewCartHandler(params CartHandlerParams) *CartHandler {
	return &CartHandler{
		cartUC: params.CartUC,
		logger: params.Logger,
	}
}

// ActiveCartRequest represents the request body for resolving the active cart
type ActiveCartRequest struct {
	CustomerID uuid.UUID `json:"customer_id" validate:"required"`
}

// AddItemRequest represents the request body for adding a product to a cart
type AddItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
}

// UpdateQuantityRequest represents the request body for changing a line quantity
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"required,gt=0"`
}

// UpdateSelectionRequest represents the request body for toggling a line selection
type UpdateSelectionRequest struct {
	IsSelected *bool `json:"is_selected" validate:"required"`
}

// GetOrCreateActiveCart handles resolving the customer's active cart,
// creating one when none exists
func (h *CartHandler) GetOrCreateActiveCart(c echo.Context) error {
	var req ActiveCartRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid active cart input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	cart, err := h.cartUC.GetOrCreateActiveCart(c.Request().Context(), req.CustomerID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, cart, "Active cart resolved successfully")
}

// GetCart handles retrieving a cart with its lines
func (h *CartHandler) GetCart(c echo.Context) error {
	cartID, err := uuid.Parse(c.Param("cartId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid cart ID")
	}

	view, err := h.cartUC.GetCart(c.Request().Context(), cartID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, view, "Cart retrieved successfully")
}

// AddItem handles adding a product to a cart
func (h *CartHandler) AddItem(c echo.Context) error {
	cartID, err := uuid.Parse(c.Param("cartId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid cart ID")
	}

	var req AddItemRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid cart item input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	item, err := h.cartUC.AddItem(c.Request().Context(), cartID, req.ProductID, req.Quantity)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, item, "Item added to cart successfully")
}

// UpdateItemQuantity handles changing a cart line quantity
func (h *CartHandler) UpdateItemQuantity(c echo.Context) error {
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid cart item ID")
	}

	var req UpdateQuantityRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid quantity input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	if err := h.cartUC.UpdateItemQuantity(c.Request().Context(), itemID, req.Quantity); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Item quantity updated successfully")
}

// UpdateItemSelection handles toggling a cart line's selection flag
func (h *CartHandler) UpdateItemSelection(c echo.Context) error {
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid cart item ID")
	}

	var req UpdateSelectionRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid selection input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	if err := h.cartUC.UpdateItemSelection(c.Request().Context(), itemID, *req.IsSelected); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Item selection updated successfully")
}

// RemoveItem handles deleting a cart line
func (h *CartHandler) RemoveItem(c echo.Context) error {
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid cart item ID")
	}

	if err := h.cartUC.RemoveItem(c.Request().Context(), itemID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Item removed from cart successfully")
}

// CalculateTotal handles recomputing and returning the cart total
func (h *CartHandler) CalculateTotal(c echo.Context) error {
	cartID, err := uuid.Parse(c.Param("cartId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid cart ID")
	}

	total, err := h.cartUC.CalculateTotal(c.Request().Context(), cartID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"total_amount": total.StringFixed(2)}, "Cart total calculated successfully")
}

// ClearCart handles deleting all lines from a cart
func (h *CartHandler) ClearCart(c echo.Context) error {
	cartID, err := uuid.Parse(c.Param("cartId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid cart ID")
	}

	if err := h.cartUC.ClearCart(c.Request().Context(), cartID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Cart cleared successfully")
}

// HealthCheck handles the service liveness probe
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
