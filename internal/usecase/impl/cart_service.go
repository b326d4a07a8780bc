// Package impl contains the concrete implementations of the use case interfaces.
package impl

import (
	"context"

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

type cartService struct {
	cartRepo  repository.CartRepository
	txManager repository.TransactionManager
	clock     service.Clock
}

// CartServiceParams holds dependencies for CartService, injected by Fx.
type CartServiceParams struct {
	fx.In

	CartRepo  repository.CartRepository
	TxManager repository.TransactionManager
	Clock     service.Clock
}

// NewCartService creates a new cart service instance
func NewCartService(params CartServiceParams) usecase.CartUsecase {
	return &cartService{
		cartRepo:  params.CartRepo,
		txManager: params.TxManager,
		clock:     params.Clock,
	}
}

// GetOrCreateActiveCart returns the customer's active cart, creating one when
// none exists. The store's uniqueness constraint resolves a concurrent
// double-create; the loser re-reads the winner's cart.
func (srv *cartService) GetOrCreateActiveCart(ctx context.Context, customerID uuid.UUID) (*entity.Cart, error) {
	cart, err := srv.cartRepo.FindActiveCartByCustomer(ctx, customerID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, repository.ErrCartNotFound) {
		return nil, errors.Wrap(err, "failed to find active cart")
	}

	now := srv.clock.Now()
	cart = &entity.Cart{
		ID:          uuid.New(),
		CustomerID:  customerID,
		Status:      entity.CartStatusActive,
		TotalAmount: decimal.Zero,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := srv.cartRepo.CreateCart(ctx, cart); err != nil {
		if errors.Is(err, repository.ErrDuplicateActiveCart) {
			existing, findErr := srv.cartRepo.FindActiveCartByCustomer(ctx, customerID)
			if findErr != nil {
				// The unique index fired but the winning cart is already
				// gone, so the caller has to retry.
				return nil, domainerrors.ErrActiveCartExists.WithDetails(customerID.String())
			}

			return existing, nil
		}

		return nil, errors.Wrap(err, "failed to create cart")
	}

	return cart, nil
}

// GetCart retrieves a cart with its lines.
func (srv *cartService) GetCart(ctx context.Context, cartID uuid.UUID) (*usecase.CartView, error) {
	cart, err := srv.cartRepo.FindCartByID(ctx, cartID)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			return nil, domainerrors.ErrCartNotFound
		}

		return nil, errors.Wrap(err, "failed to find cart")
	}

	items, err := srv.cartRepo.FindItemsByCart(ctx, cartID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find cart items")
	}

	return &usecase.CartView{Cart: cart, Items: items}, nil
}

// AddItem adds a product to the cart, snapshotting the current product price.
// An existing line for the same product is incremented under a row lock so
// concurrent adds cannot lose an update; the original snapshot price is kept.
func (srv *cartService) AddItem(ctx context.Context, cartID, productID uuid.UUID, quantity int) (*entity.CartItem, error) {
	if quantity <= 0 {
		return nil, domainerrors.ErrInvalidQuantity
	}

	var result *entity.CartItem
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		cartRepo := repoFactory.NewCartRepository()

		cart, err := findActiveCart(ctx, cartRepo, cartID)
		if err != nil {
			return err
		}

		existing, err := cartRepo.FindItemByCartAndProductForUpdate(ctx, cartID, productID)
		switch {
		case err == nil:
			if err := cartRepo.UpdateItemQuantity(ctx, existing.ID, existing.Quantity+quantity); err != nil {
				return errors.Wrap(err, "failed to increment item quantity")
			}
			existing.Quantity += quantity
			result = existing
		case errors.Is(err, repository.ErrCartItemNotFound):
			product, err := repoFactory.NewProductRepository().FindProductByID(ctx, productID)
			if err != nil {
				if errors.Is(err, repository.ErrProductNotFound) {
					return domainerrors.ErrProductNotFound
				}

				return errors.Wrap(err, "failed to find product")
			}

			now := srv.clock.Now()
			item := &entity.CartItem{
				ID:         uuid.New(),
				CartID:     cart.ID,
				ProductID:  productID,
				Quantity:   quantity,
				UnitPrice:  product.Price,
				IsSelected: true,
				CreatedAt:  now,
				UpdatedAt:  now,
			}
			if err := cartRepo.CreateCartItem(ctx, item); err != nil {
				return errors.Wrap(err, "failed to create cart item")
			}
			result = item
		default:
			return errors.Wrap(err, "failed to find cart item for update")
		}

		_, err = recomputeCartTotal(ctx, cartRepo, cart.ID)

		return err
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// UpdateItemQuantity sets a line's quantity; quantity must be positive.
func (srv *cartService) UpdateItemQuantity(ctx context.Context, cartItemID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return domainerrors.ErrInvalidQuantity
	}

	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		cartRepo := repoFactory.NewCartRepository()

		item, err := findCartItem(ctx, cartRepo, cartItemID)
		if err != nil {
			return err
		}

		if err := cartRepo.UpdateItemQuantity(ctx, item.ID, quantity); err != nil {
			return errors.Wrap(err, "failed to update item quantity")
		}

		_, err = recomputeCartTotal(ctx, cartRepo, item.CartID)

		return err
	})
}

// RemoveItem deletes a cart line.
func (srv *cartService) RemoveItem(ctx context.Context, cartItemID uuid.UUID) error {
	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		cartRepo := repoFactory.NewCartRepository()

		item, err := findCartItem(ctx, cartRepo, cartItemID)
		if err != nil {
			return err
		}

		if err := cartRepo.DeleteCartItem(ctx, item.ID); err != nil {
			return errors.Wrap(err, "failed to delete cart item")
		}

		_, err = recomputeCartTotal(ctx, cartRepo, item.CartID)

		return err
	})
}

// UpdateItemSelection toggles a line's inclusion in totals and checkout
// without deleting the row.
func (srv *cartService) UpdateItemSelection(ctx context.Context, cartItemID uuid.UUID, isSelected bool) error {
	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		cartRepo := repoFactory.NewCartRepository()

		item, err := findCartItem(ctx, cartRepo, cartItemID)
		if err != nil {
			return err
		}

		if err := cartRepo.UpdateItemSelection(ctx, item.ID, isSelected); err != nil {
			return errors.Wrap(err, "failed to update item selection")
		}

		_, err = recomputeCartTotal(ctx, cartRepo, item.CartID)

		return err
	})
}

// CalculateTotal recomputes the cart total from selected lines, persists it
// and returns the sum.
func (srv *cartService) CalculateTotal(ctx context.Context, cartID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		cartRepo := repoFactory.NewCartRepository()

		if _, err := cartRepo.FindCartByID(ctx, cartID); err != nil {
			if errors.Is(err, repository.ErrCartNotFound) {
				return domainerrors.ErrCartNotFound
			}

			return errors.Wrap(err, "failed to find cart")
		}

		var err error
		total, err = recomputeCartTotal(ctx, cartRepo, cartID)

		return err
	})
	if err != nil {
		return decimal.Zero, err
	}

	return total, nil
}

// ClearCart deletes all lines and resets the total to zero.
func (srv *cartService) ClearCart(ctx context.Context, cartID uuid.UUID) error {
	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		cartRepo := repoFactory.NewCartRepository()

		if _, err := cartRepo.FindCartByID(ctx, cartID); err != nil {
			if errors.Is(err, repository.ErrCartNotFound) {
				return domainerrors.ErrCartNotFound
			}

			return errors.Wrap(err, "failed to find cart")
		}

		if err := cartRepo.DeleteItemsByCart(ctx, cartID); err != nil {
			return errors.Wrap(err, "failed to clear cart items")
		}

		if err := cartRepo.UpdateCartTotal(ctx, cartID, decimal.Zero); err != nil {
			return errors.Wrap(err, "failed to reset cart total")
		}

		return nil
	})
}

// findActiveCart loads a cart and verifies it still accepts mutations.
func findActiveCart(ctx context.Context, cartRepo repository.CartRepository, cartID uuid.UUID) (*entity.Cart, error) {
	cart, err := cartRepo.FindCartByID(ctx, cartID)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			return nil, domainerrors.ErrCartNotFound
		}

		return nil, errors.Wrap(err, "failed to find cart")
	}
	if cart.Status != entity.CartStatusActive {
		return nil, domainerrors.ErrCartNotActive.WrapMessage(cart.Status.String())
	}

	return cart, nil
}

// findCartItem loads a cart line, translating the store's sentinel error.
func findCartItem(ctx context.Context, cartRepo repository.CartRepository, cartItemID uuid.UUID) (*entity.CartItem, error) {
	item, err := cartRepo.FindCartItemByID(ctx, cartItemID)
	if err != nil {
		if errors.Is(err, repository.ErrCartItemNotFound) {
			return nil, domainerrors.ErrCartItemNotFound
		}

		return nil, errors.Wrap(err, "failed to find cart item")
	}

	return item, nil
}

// recomputeCartTotal sums the selected line subtotals and persists the result
// so Cart.TotalAmount stays eagerly consistent with its lines.
func recomputeCartTotal(ctx context.Context, cartRepo repository.CartRepository, cartID uuid.UUID) (decimal.Decimal, error) {
	items, err := cartRepo.FindSelectedItemsByCart(ctx, cartID)
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "failed to find selected items")
	}

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}

	if err := cartRepo.UpdateCartTotal(ctx, cartID, total); err != nil {
		return decimal.Zero, errors.Wrap(err, "failed to persist cart total")
	}

	return total, nil
}
