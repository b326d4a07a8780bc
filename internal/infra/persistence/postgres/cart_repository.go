package postgres

import (
	"context"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// cartRepository implements the repository.CartRepository interface.
type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository is the constructor for cartRepository.
func NewCartRepository(db *gorm.DB) repository.CartRepository {
	return &cartRepository{
		db: db,
	}
}

// CreateCart persists a new cart. The partial unique index on active carts
// turns a concurrent double-create into ErrDuplicateActiveCart.
func (repo *cartRepository) CreateCart(ctx context.Context, cart *entity.Cart) error {
	cartM := fromCartDomain(cart)

	if err := repo.db.WithContext(ctx).Create(cartM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateActiveCart
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create cart")
	}

	cart.ID = cartM.ID
	cart.CreatedAt = cartM.CreatedAt
	cart.UpdatedAt = cartM.UpdatedAt

	return nil
}

// FindCartByID retrieves a cart by its unique ID.
func (repo *cartRepository) FindCartByID(ctx context.Context, id uuid.UUID) (*entity.Cart, error) {
	var cartM model.CartModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&cartM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCartNotFound
		}

		return nil, errors.Wrap(err, "failed to find cart by ID")
	}

	return toCartDomain(&cartM), nil
}

// FindActiveCartByCustomer retrieves the customer's single active cart.
func (repo *cartRepository) FindActiveCartByCustomer(ctx context.Context, customerID uuid.UUID) (*entity.Cart, error) {
	var cartM model.CartModel

	if err := repo.db.WithContext(ctx).
		Where("customer_id = ? AND status = ?", customerID, entity.CartStatusActive.String()).
		First(&cartM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCartNotFound
		}

		return nil, errors.Wrap(err, "failed to find active cart by customer")
	}

	return toCartDomain(&cartM), nil
}

// UpdateCartStatus updates the lifecycle status of a cart.
func (repo *cartRepository) UpdateCartStatus(ctx context.Context, id uuid.UUID, status entity.CartStatus) error {
	result := repo.db.WithContext(ctx).
		Model(&model.CartModel{}).
		Where("id = ?", id).
		Update("status", status.String())
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update cart status")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCartNotFound
	}

	return nil
}

// UpdateCartTotal persists the recomputed cart total.
func (repo *cartRepository) UpdateCartTotal(ctx context.Context, id uuid.UUID, total decimal.Decimal) error {
	result := repo.db.WithContext(ctx).
		Model(&model.CartModel{}).
		Where("id = ?", id).
		Update("total_amount", total)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update cart total")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCartNotFound
	}

	return nil
}

// CreateCartItem persists a new cart line.
func (repo *cartRepository) CreateCartItem(ctx context.Context, item *entity.CartItem) error {
	itemM := fromCartItemDomain(item)

	if err := repo.db.WithContext(ctx).Create(itemM).Error; err != nil {
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrInvalidQuantity.WrapMessage("quantity must be positive")
		}
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrCartNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create cart item")
	}

	item.ID = itemM.ID
	item.CreatedAt = itemM.CreatedAt
	item.UpdatedAt = itemM.UpdatedAt

	return nil
}

// FindCartItemByID retrieves a cart line by its unique ID.
func (repo *cartRepository) FindCartItemByID(ctx context.Context, id uuid.UUID) (*entity.CartItem, error) {
	var itemM model.CartItemModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&itemM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCartItemNotFound
		}

		return nil, errors.Wrap(err, "failed to find cart item by ID")
	}

	return toCartItemDomain(&itemM), nil
}

// FindItemsByCart retrieves all lines of a cart, oldest first.
func (repo *cartRepository) FindItemsByCart(ctx context.Context, cartID uuid.UUID) ([]*entity.CartItem, error) {
	var itemMs []*model.CartItemModel

	if err := repo.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Order("created_at ASC").
		Find(&itemMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find items by cart")
	}

	items := make([]*entity.CartItem, 0, len(itemMs))
	for _, itemM := range itemMs {
		items = append(items, toCartItemDomain(itemM))
	}

	return items, nil
}

// FindSelectedItemsByCart retrieves the lines included in totals and checkout.
func (repo *cartRepository) FindSelectedItemsByCart(ctx context.Context, cartID uuid.UUID) ([]*entity.CartItem, error) {
	var itemMs []*model.CartItemModel

	if err := repo.db.WithContext(ctx).
		Where("cart_id = ? AND is_selected = ?", cartID, true).
		Order("created_at ASC").
		Find(&itemMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find selected items by cart")
	}

	items := make([]*entity.CartItem, 0, len(itemMs))
	for _, itemM := range itemMs {
		items = append(items, toCartItemDomain(itemM))
	}

	return items, nil
}

// FindItemByCartAndProductForUpdate retrieves the line for a product in a
// cart, locking the row so a concurrent quantity increment cannot be lost.
func (repo *cartRepository) FindItemByCartAndProductForUpdate(ctx context.Context, cartID, productID uuid.UUID) (*entity.CartItem, error) {
	var itemM model.CartItemModel

	if err := repo.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		First(&itemM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCartItemNotFound
		}

		return nil, errors.Wrap(err, "failed to find cart item for update")
	}

	return toCartItemDomain(&itemM), nil
}

// UpdateItemQuantity sets the quantity of a cart line.
func (repo *cartRepository) UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error {
	result := repo.db.WithContext(ctx).
		Model(&model.CartItemModel{}).
		Where("id = ?", itemID).
		Update("quantity", quantity)
	if result.Error != nil {
		if isCheckConstraintViolation(result.Error) {
			return domainerrors.ErrInvalidQuantity.WrapMessage("quantity must be positive")
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update cart item quantity")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCartItemNotFound
	}

	return nil
}

// UpdateItemSelection toggles a line's inclusion in totals without deleting it.
func (repo *cartRepository) UpdateItemSelection(ctx context.Context, itemID uuid.UUID, isSelected bool) error {
	result := repo.db.WithContext(ctx).
		Model(&model.CartItemModel{}).
		Where("id = ?", itemID).
		Update("is_selected", isSelected)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update cart item selection")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCartItemNotFound
	}

	return nil
}

// DeleteCartItem removes a cart line.
func (repo *cartRepository) DeleteCartItem(ctx context.Context, itemID uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", itemID).
		Delete(&model.CartItemModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete cart item")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCartItemNotFound
	}

	return nil
}

// DeleteItemsByCart removes all lines of a cart.
func (repo *cartRepository) DeleteItemsByCart(ctx context.Context, cartID uuid.UUID) error {
	if err := repo.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Delete(&model.CartItemModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete items by cart")
	}

	return nil
}

// fromCartDomain maps a domain cart to its persistence model.
func fromCartDomain(cart *entity.Cart) *model.CartModel {
	return &model.CartModel{
		ID:          cart.ID,
		CustomerID:  cart.CustomerID,
		Status:      cart.Status.String(),
		TotalAmount: cart.TotalAmount,
		CreatedAt:   cart.CreatedAt,
		UpdatedAt:   cart.UpdatedAt,
	}
}

// toCartDomain maps a persistence model back to a pure domain cart.
func toCartDomain(cartM *model.CartModel) *entity.Cart {
	return &entity.Cart{
		ID:          cartM.ID,
		CustomerID:  cartM.CustomerID,
		Status:      entity.CartStatus(cartM.Status),
		TotalAmount: cartM.TotalAmount,
		CreatedAt:   cartM.CreatedAt,
		UpdatedAt:   cartM.UpdatedAt,
	}
}

// fromCartItemDomain maps a domain cart line to its persistence model.
func fromCartItemDomain(item *entity.CartItem) *model.CartItemModel {
	return &model.CartItemModel{
		ID:         item.ID,
		CartID:     item.CartID,
		ProductID:  item.ProductID,
		Quantity:   item.Quantity,
		UnitPrice:  item.UnitPrice,
		IsSelected: item.IsSelected,
		CreatedAt:  item.CreatedAt,
		UpdatedAt:  item.UpdatedAt,
	}
}

// toCartItemDomain maps a persistence model back to a pure domain cart line.
func toCartItemDomain(itemM *model.CartItemModel) *entity.CartItem {
	return &entity.CartItem{
		ID:         itemM.ID,
		CartID:     itemM.CartID,
		ProductID:  itemM.ProductID,
		Quantity:   itemM.Quantity,
		UnitPrice:  itemM.UnitPrice,
		IsSelected: itemM.IsSelected,
		CreatedAt:  itemM.CreatedAt,
		UpdatedAt:  itemM.UpdatedAt,
	}
}
