package handler

import (
	"log/slog"
	"net/http"
	"time"

	"storefront/internal/delivery/http/response"
	"storefront/internal/domain/entity"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// PromotionHandlerParams holds dependencies for PromotionHandler, injected by Fx.
type PromotionHandlerParams struct {
	fx.In

	PromotionUC usecase.PromotionUsecase
	Logger      *slog.Logger
}

// PromotionHandler holds dependencies for promotion-related handlers
type PromotionHandler struct {
	promotionUC usecase.PromotionUsecase
	logger      *slog.Logger
}

// NewPromotionHandler is the constructor for PromotionHandler
func NewPromotionHandler(params PromotionHandlerParams) *PromotionHandler {
	return &PromotionHandler{
		promotionUC: params.PromotionUC,
		logger:      params.Logger,
	}
}

// CreatePromotionRequest represents the request body for creating a promotion
type CreatePromotionRequest struct {
	Name          string     `json:"name" validate:"required"`
	DiscountType  string     `json:"discount_type" validate:"required"`
	DiscountValue string     `json:"discount_value" validate:"required"`
	StartDate     time.Time  `json:"start_date" validate:"required"`
	EndDate       *time.Time `json:"end_date,omitempty"`
	UsageLimit    *int64     `json:"usage_limit,omitempty"`
}

// ApplyToOrderRequest represents the request body for applying a promotion to an order
type ApplyToOrderRequest struct {
	OrderID uuid.UUID `json:"order_id" validate:"required"`
}

// ApplyToProductRequest represents the request body for scoping a promotion to a product
type ApplyToProductRequest struct {
	ProductID uuid.UUID  `json:"product_id" validate:"required"`
	StartDate time.Time  `json:"start_date" validate:"required"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}

// CreatePromotion handles creating a new promotion rule
func (h *PromotionHandler) CreatePromotion(c echo.Context) error {
	var req CreatePromotionRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid promotion input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	discountValue, err := decimal.NewFromString(req.DiscountValue)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid discount value")
	}

	promotion, err := h.promotionUC.CreatePromotion(c.Request().Context(), usecase.CreatePromotionInput{
		Name:          req.Name,
		DiscountType:  entity.DiscountType(req.DiscountType),
		DiscountValue: discountValue,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		UsageLimit:    req.UsageLimit,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, promotion, "Promotion created successfully")
}

// GetPromotion handles retrieving a promotion by ID
func (h *PromotionHandler) GetPromotion(c echo.Context) error {
	promotionID, err := uuid.Parse(c.Param("promotionId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid promotion ID")
	}

	promotion, err := h.promotionUC.GetPromotion(c.Request().Context(), promotionID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, promotion, "Promotion retrieved successfully")
}

// ApplyToOrder handles applying a promotion to an order
func (h *PromotionHandler) ApplyToOrder(c echo.Context) error {
	promotionID, err := uuid.Parse(c.Param("promotionId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid promotion ID")
	}

	var req ApplyToOrderRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid apply input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	applied, err := h.promotionUC.ApplyToOrder(c.Request().Context(), req.OrderID, promotionID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, applied, "Promotion applied to order successfully")
}

// ApplyToProduct handles scoping a promotion to a product
func (h *PromotionHandler) ApplyToProduct(c echo.Context) error {
	promotionID, err := uuid.Parse(c.Param("promotionId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid promotion ID")
	}

	var req ApplyToProductRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid apply input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	applied, err := h.promotionUC.ApplyToProduct(c.Request().Context(), usecase.ApplyToProductInput{
		ProductID:   req.ProductID,
		PromotionID: promotionID,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, applied, "Promotion applied to product successfully")
}

// CalculateOrderDiscount handles computing a promotion's discount for an
// order without persisting anything
func (h *PromotionHandler) CalculateOrderDiscount(c echo.Context) error {
	promotionID, err := uuid.Parse(c.Param("promotionId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid promotion ID")
	}

	orderID, err := uuid.Parse(c.QueryParam("order_id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid order ID")
	}

	discount, err := h.promotionUC.CalculateOrderDiscount(c.Request().Context(), orderID, promotionID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"discount_amount": discount.StringFixed(2)}, "Discount calculated successfully")
}
