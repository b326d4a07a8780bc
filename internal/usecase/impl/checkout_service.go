package impl

import (
	"context"
	"log/slog"
	"time"

	"storefront/config"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

type checkoutService struct {
	txManager repository.TransactionManager
	publisher service.OrderEventPublisher
	clock     service.Clock
	config    *config.Config
	logger    *slog.Logger
}

// CheckoutServiceParams holds dependencies for CheckoutService, injected by Fx.
type CheckoutServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Publisher service.OrderEventPublisher
	Clock     service.Clock
	Config    *config.Config
	Logger    *slog.Logger
}

// NewCheckoutService creates a new checkout service instance
func NewCheckoutService(params CheckoutServiceParams) usecase.CheckoutUsecase {
	return &checkoutService{
		txManager: params.TxManager,
		publisher: params.Publisher,
		clock:     params.Clock,
		config:    params.Config,
		logger:    params.Logger,
	}
}

// CreateFromCart converts an active cart into an order. Validation runs
// before any write so a rejected checkout leaves no partial order; the
// writes themselves share one transaction with the cart conversion.
func (srv *checkoutService) CreateFromCart(ctx context.Context, input usecase.CheckoutInput) (*entity.Order, error) {
	shippingFee, err := srv.shippingFeeFor(input.ShippingMethod)
	if err != nil {
		return nil, err
	}

	var created *entity.Order
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		cartRepo := repoFactory.NewCartRepository()

		cart, err := cartRepo.FindCartByID(ctx, input.CartID)
		if err != nil {
			if errors.Is(err, repository.ErrCartNotFound) {
				return domainerrors.ErrCartNotFound
			}

			return errors.Wrap(err, "failed to find cart")
		}
		if cart.Status != entity.CartStatusActive {
			return domainerrors.ErrCartNotActive.WrapMessage(cart.Status.String())
		}

		items, err := cartRepo.FindSelectedItemsByCart(ctx, cart.ID)
		if err != nil {
			return errors.Wrap(err, "failed to find selected cart items")
		}
		if len(items) == 0 {
			return domainerrors.ErrEmptyCart
		}

		if err := srv.validateAddress(ctx, repoFactory, cart, input.AddressID); err != nil {
			return err
		}
		if err := srv.validatePaymentMethod(ctx, repoFactory, cart, input.PaymentMethodID); err != nil {
			return err
		}

		now := srv.clock.Now()
		order := srv.buildOrder(cart, input, items, shippingFee, now)

		orderRepo := repoFactory.NewOrderRepository()
		if err := orderRepo.CreateOrder(ctx, order); err != nil {
			return errors.Wrap(err, "failed to create order")
		}

		details := make([]*entity.OrderDetail, 0, len(items))
		for _, item := range items {
			details = append(details, &entity.OrderDetail{
				ID:        uuid.New(),
				OrderID:   order.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: item.UnitPrice,
				CreatedAt: now,
			})
		}
		if err := orderRepo.CreateOrderDetails(ctx, details); err != nil {
			return errors.Wrap(err, "failed to create order details")
		}

		event := &entity.OrderTimelineEvent{
			ID:          uuid.New(),
			OrderID:     order.ID,
			Status:      entity.OrderStatusNew.String(),
			Description: defaultTimelineDescriptions[entity.OrderStatusNew],
			CreatedAt:   now,
		}
		if err := orderRepo.CreateTimelineEvent(ctx, event); err != nil {
			return errors.Wrap(err, "failed to create initial timeline event")
		}

		promotionRepo := repoFactory.NewPromotionRepository()
		for _, promotionID := range input.PromotionIDs {
			if _, err := applyPromotionToOrder(ctx, promotionRepo, order, details, promotionID, now); err != nil {
				return err
			}
		}

		if err := cartRepo.UpdateCartStatus(ctx, cart.ID, entity.CartStatusConverted); err != nil {
			return errors.Wrap(err, "failed to mark cart converted")
		}

		created = order

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.publishCreatedEvent(ctx, created)

	return created, nil
}

// shippingFeeFor resolves the configured fee for a shipping method.
func (srv *checkoutService) shippingFeeFor(method string) (decimal.Decimal, error) {
	if srv.config.Checkout == nil {
		return decimal.Zero, domainerrors.ErrUnknownShippingMethod.WrapMessage(method)
	}

	raw, ok := srv.config.Checkout.ShippingFees[method]
	if !ok {
		return decimal.Zero, domainerrors.ErrUnknownShippingMethod.WrapMessage(method)
	}

	fee, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, errors.Wrapf(err, "invalid shipping fee for method %q", method)
	}

	return fee, nil
}

// validateAddress checks existence and that the address belongs to the
// cart's customer.
func (srv *checkoutService) validateAddress(ctx context.Context, repoFactory repository.RepositoryFactory, cart *entity.Cart, addressID uuid.UUID) error {
	address, err := repoFactory.NewAddressRepository().FindAddressByID(ctx, addressID)
	if err != nil {
		if errors.Is(err, repository.ErrAddressNotFound) {
			return domainerrors.ErrAddressNotFound
		}

		return errors.Wrap(err, "failed to find address")
	}
	if address.CustomerID != cart.CustomerID {
		return domainerrors.ErrAddressOwnership
	}

	return nil
}

// validatePaymentMethod checks the optional payment method, when provided.
func (srv *checkoutService) validatePaymentMethod(ctx context.Context, repoFactory repository.RepositoryFactory, cart *entity.Cart, paymentMethodID *uuid.UUID) error {
	if paymentMethodID == nil {
		return nil
	}

	method, err := repoFactory.NewPaymentMethodRepository().FindPaymentMethodByID(ctx, *paymentMethodID)
	if err != nil {
		if errors.Is(err, repository.ErrPaymentMethodNotFound) {
			return domainerrors.ErrPaymentMethodNotFound
		}

		return errors.Wrap(err, "failed to find payment method")
	}
	if method.CustomerID != cart.CustomerID {
		return domainerrors.ErrPaymentMethodOwnership
	}

	return nil
}

// buildOrder assembles the order from the selected lines' snapshots. Totals
// come from the snapshot prices, never from a re-read of the live product.
func (srv *checkoutService) buildOrder(cart *entity.Cart, input usecase.CheckoutInput, items []*entity.CartItem, shippingFee decimal.Decimal, now time.Time) *entity.Order {
	itemsTotal := decimal.Zero
	for _, item := range items {
		itemsTotal = itemsTotal.Add(item.Subtotal())
	}

	order := &entity.Order{
		ID:              uuid.New(),
		CustomerID:      cart.CustomerID,
		CartID:          cart.ID,
		Status:          entity.OrderStatusNew,
		TotalAmount:     itemsTotal.Add(shippingFee),
		ShippingFee:     shippingFee,
		AddressID:       input.AddressID,
		PaymentMethodID: input.PaymentMethodID,
		ShippingMethod:  input.ShippingMethod,
		Note:            input.Note,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if days := srv.config.Checkout.EstimatedDeliveryDays; days > 0 {
		estimated := now.AddDate(0, 0, days)
		order.EstimatedDeliveryDate = &estimated
	}

	return order
}

// publishCreatedEvent emits the order's birth into the event pipeline.
// Publishing is best effort; the order has already committed.
func (srv *checkoutService) publishCreatedEvent(ctx context.Context, order *entity.Order) {
	if srv.publisher == nil {
		return
	}

	event := &service.OrderStatusEvent{
		OrderID:    order.ID.String(),
		CustomerID: order.CustomerID.String(),
		NewStatus:  order.Status.String(),
		OccurredAt: order.CreatedAt,
	}
	if err := srv.publisher.PublishOrderStatusEvent(ctx, event); err != nil {
		srv.logger.WarnContext(ctx, "failed to publish order created event",
			slog.String("orderId", order.ID.String()),
			slog.String("error", err.Error()),
		)
	}
}
