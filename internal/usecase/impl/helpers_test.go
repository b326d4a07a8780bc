package impl

import (
	"context"
	"sort"
	"time"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// fakeClock returns a fixed instant so timestamps are deterministic.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

// fakeStore is an in-memory stand-in for the durable store. All fake
// repositories read and write it directly; the fake transaction manager
// snapshots and restores it to make rollback observable.
type fakeStore struct {
	carts             map[uuid.UUID]*entity.Cart
	cartItems         map[uuid.UUID]*entity.CartItem
	products          map[uuid.UUID]*entity.Product
	addresses         map[uuid.UUID]*entity.Address
	paymentMethods    map[uuid.UUID]*entity.PaymentMethod
	orders            map[uuid.UUID]*entity.Order
	orderDetails      map[uuid.UUID]*entity.OrderDetail
	timelineEvents    map[uuid.UUID]*entity.OrderTimelineEvent
	promotions        map[uuid.UUID]*entity.Promotion
	orderPromotions   map[uuid.UUID]*entity.OrderPromotion
	productPromotions map[uuid.UUID]*entity.ProductPromotion
	reports           map[uuid.UUID]*entity.RevenueReport
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		carts:             make(map[uuid.UUID]*entity.Cart),
		cartItems:         make(map[uuid.UUID]*entity.CartItem),
		products:          make(map[uuid.UUID]*entity.Product),
		addresses:         make(map[uuid.UUID]*entity.Address),
		paymentMethods:    make(map[uuid.UUID]*entity.PaymentMethod),
		orders:            make(map[uuid.UUID]*entity.Order),
		orderDetails:      make(map[uuid.UUID]*entity.OrderDetail),
		timelineEvents:    make(map[uuid.UUID]*entity.OrderTimelineEvent),
		promotions:        make(map[uuid.UUID]*entity.Promotion),
		orderPromotions:   make(map[uuid.UUID]*entity.OrderPromotion),
		productPromotions: make(map[uuid.UUID]*entity.ProductPromotion),
		reports:           make(map[uuid.UUID]*entity.RevenueReport),
	}
}

func (s *fakeStore) snapshot() *fakeStore {
	cloned := newFakeStore()
	for id, v := range s.carts {
		c := *v
		cloned.carts[id] = &c
	}
	for id, v := range s.cartItems {
		c := *v
		cloned.cartItems[id] = &c
	}
	for id, v := range s.products {
		c := *v
		cloned.products[id] = &c
	}
	for id, v := range s.addresses {
		c := *v
		cloned.addresses[id] = &c
	}
	for id, v := range s.paymentMethods {
		c := *v
		cloned.paymentMethods[id] = &c
	}
	for id, v := range s.orders {
		c := *v
		cloned.orders[id] = &c
	}
	for id, v := range s.orderDetails {
		c := *v
		cloned.orderDetails[id] = &c
	}
	for id, v := range s.timelineEvents {
		c := *v
		cloned.timelineEvents[id] = &c
	}
	for id, v := range s.promotions {
		c := *v
		cloned.promotions[id] = &c
	}
	for id, v := range s.orderPromotions {
		c := *v
		cloned.orderPromotions[id] = &c
	}
	for id, v := range s.productPromotions {
		c := *v
		cloned.productPromotions[id] = &c
	}
	for id, v := range s.reports {
		c := *v
		cloned.reports[id] = &c
	}

	return cloned
}

func (s *fakeStore) restore(from *fakeStore) {
	*s = *from
}

// fakeTxManager runs the callback against the shared store and rolls the
// store back to its pre-transaction state when the callback errors.
type fakeTxManager struct {
	store *fakeStore
}

func (tm *fakeTxManager) Execute(_ context.Context, fn func(txRepoFactory repository.RepositoryFactory) error) error {
	before := tm.store.snapshot()
	if err := fn(&fakeRepoFactory{store: tm.store}); err != nil {
		tm.store.restore(before)

		return err
	}

	return nil
}

type fakeRepoFactory struct {
	store *fakeStore
}

func (f *fakeRepoFactory) NewCartRepository() repository.CartRepository {
	return &fakeCartRepo{store: f.store}
}

func (f *fakeRepoFactory) NewProductRepository() repository.ProductRepository {
	return &fakeProductRepo{store: f.store}
}

func (f *fakeRepoFactory) NewAddressRepository() repository.AddressRepository {
	return &fakeAddressRepo{store: f.store}
}

func (f *fakeRepoFactory) NewPaymentMethodRepository() repository.PaymentMethodRepository {
	return &fakePaymentMethodRepo{store: f.store}
}

func (f *fakeRepoFactory) NewOrderRepository() repository.OrderRepository {
	return &fakeOrderRepo{store: f.store}
}

func (f *fakeRepoFactory) NewPromotionRepository() repository.PromotionRepository {
	return &fakePromotionRepo{store: f.store}
}

func (f *fakeRepoFactory) NewRevenueReportRepository() repository.RevenueReportRepository {
	return &fakeRevenueReportRepo{store: f.store}
}

type fakeCartRepo struct {
	store *fakeStore
}

func (r *fakeCartRepo) CreateCart(_ context.Context, cart *entity.Cart) error {
	if cart.Status == entity.CartStatusActive {
		for _, existing := range r.store.carts {
			if existing.CustomerID == cart.CustomerID && existing.Status == entity.CartStatusActive {
				return repository.ErrDuplicateActiveCart
			}
		}
	}
	c := *cart
	r.store.carts[cart.ID] = &c

	return nil
}

func (r *fakeCartRepo) FindCartByID(_ context.Context, id uuid.UUID) (*entity.Cart, error) {
	cart, ok := r.store.carts[id]
	if !ok {
		return nil, repository.ErrCartNotFound
	}
	c := *cart

	return &c, nil
}

func (r *fakeCartRepo) FindActiveCartByCustomer(_ context.Context, customerID uuid.UUID) (*entity.Cart, error) {
	for _, cart := range r.store.carts {
		if cart.CustomerID == customerID && cart.Status == entity.CartStatusActive {
			c := *cart

			return &c, nil
		}
	}

	return nil, repository.ErrCartNotFound
}

func (r *fakeCartRepo) UpdateCartStatus(_ context.Context, id uuid.UUID, status entity.CartStatus) error {
	cart, ok := r.store.carts[id]
	if !ok {
		return repository.ErrCartNotFound
	}
	cart.Status = status

	return nil
}

func (r *fakeCartRepo) UpdateCartTotal(_ context.Context, id uuid.UUID, total decimal.Decimal) error {
	cart, ok := r.store.carts[id]
	if !ok {
		return repository.ErrCartNotFound
	}
	cart.TotalAmount = total

	return nil
}

func (r *fakeCartRepo) CreateCartItem(_ context.Context, item *entity.CartItem) error {
	c := *item
	r.store.cartItems[item.ID] = &c

	return nil
}

func (r *fakeCartRepo) FindCartItemByID(_ context.Context, id uuid.UUID) (*entity.CartItem, error) {
	item, ok := r.store.cartItems[id]
	if !ok {
		return nil, repository.ErrCartItemNotFound
	}
	c := *item

	return &c, nil
}

func (r *fakeCartRepo) FindItemsByCart(_ context.Context, cartID uuid.UUID) ([]*entity.CartItem, error) {
	return r.itemsWhere(cartID, false), nil
}

func (r *fakeCartRepo) FindSelectedItemsByCart(_ context.Context, cartID uuid.UUID) ([]*entity.CartItem, error) {
	return r.itemsWhere(cartID, true), nil
}

func (r *fakeCartRepo) itemsWhere(cartID uuid.UUID, selectedOnly bool) []*entity.CartItem {
	var items []*entity.CartItem
	for _, item := range r.store.cartItems {
		if item.CartID != cartID {
			continue
		}
		if selectedOnly && !item.IsSelected {
			continue
		}
		c := *item
		items = append(items, &c)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})

	return items
}

func (r *fakeCartRepo) FindItemByCartAndProductForUpdate(_ context.Context, cartID, productID uuid.UUID) (*entity.CartItem, error) {
	for _, item := range r.store.cartItems {
		if item.CartID == cartID && item.ProductID == productID {
			c := *item

			return &c, nil
		}
	}

	return nil, repository.ErrCartItemNotFound
}

func (r *fakeCartRepo) UpdateItemQuantity(_ context.Context, itemID uuid.UUID, quantity int) error {
	item, ok := r.store.cartItems[itemID]
	if !ok {
		return repository.ErrCartItemNotFound
	}
	item.Quantity = quantity

	return nil
}

func (r *fakeCartRepo) UpdateItemSelection(_ context.Context, itemID uuid.UUID, isSelected bool) error {
	item, ok := r.store.cartItems[itemID]
	if !ok {
		return repository.ErrCartItemNotFound
	}
	item.IsSelected = isSelected

	return nil
}

func (r *fakeCartRepo) DeleteCartItem(_ context.Context, itemID uuid.UUID) error {
	if _, ok := r.store.cartItems[itemID]; !ok {
		return repository.ErrCartItemNotFound
	}
	delete(r.store.cartItems, itemID)

	return nil
}

func (r *fakeCartRepo) DeleteItemsByCart(_ context.Context, cartID uuid.UUID) error {
	for id, item := range r.store.cartItems {
		if item.CartID == cartID {
			delete(r.store.cartItems, id)
		}
	}

	return nil
}

type fakeProductRepo struct {
	store *fakeStore
}

func (r *fakeProductRepo) FindProductByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	product, ok := r.store.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	c := *product

	return &c, nil
}

type fakeAddressRepo struct {
	store *fakeStore
}

func (r *fakeAddressRepo) FindAddressByID(_ context.Context, id uuid.UUID) (*entity.Address, error) {
	address, ok := r.store.addresses[id]
	if !ok {
		return nil, repository.ErrAddressNotFound
	}
	c := *address

	return &c, nil
}

type fakePaymentMethodRepo struct {
	store *fakeStore
}

func (r *fakePaymentMethodRepo) FindPaymentMethodByID(_ context.Context, id uuid.UUID) (*entity.PaymentMethod, error) {
	method, ok := r.store.paymentMethods[id]
	if !ok {
		return nil, repository.ErrPaymentMethodNotFound
	}
	c := *method

	return &c, nil
}

type fakeOrderRepo struct {
	store *fakeStore
}

func (r *fakeOrderRepo) CreateOrder(_ context.Context, order *entity.Order) error {
	c := *order
	r.store.orders[order.ID] = &c

	return nil
}

func (r *fakeOrderRepo) FindOrderByID(_ context.Context, id uuid.UUID) (*entity.Order, error) {
	order, ok := r.store.orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	c := *order

	return &c, nil
}

func (r *fakeOrderRepo) FindOrderByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	return r.FindOrderByID(ctx, id)
}

func (r *fakeOrderRepo) FindOrdersByCustomer(_ context.Context, customerID uuid.UUID) ([]*entity.Order, error) {
	var orders []*entity.Order
	for _, order := range r.store.orders {
		if order.CustomerID == customerID {
			c := *order
			orders = append(orders, &c)
		}
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})

	return orders, nil
}

func (r *fakeOrderRepo) UpdateOrderStatus(_ context.Context, id uuid.UUID, status, heldFrom entity.OrderStatus) error {
	order, ok := r.store.orders[id]
	if !ok {
		return repository.ErrOrderNotFound
	}
	order.Status = status
	order.HeldFrom = heldFrom

	return nil
}

func (r *fakeOrderRepo) MarkRevenueRecorded(_ context.Context, id uuid.UUID, at time.Time) error {
	order, ok := r.store.orders[id]
	if !ok {
		return repository.ErrOrderNotFound
	}
	order.RevenueRecordedAt = &at

	return nil
}

func (r *fakeOrderRepo) CreateOrderDetails(_ context.Context, details []*entity.OrderDetail) error {
	for _, detail := range details {
		c := *detail
		r.store.orderDetails[detail.ID] = &c
	}

	return nil
}

func (r *fakeOrderRepo) FindDetailsByOrder(_ context.Context, orderID uuid.UUID) ([]*entity.OrderDetail, error) {
	var details []*entity.OrderDetail
	for _, detail := range r.store.orderDetails {
		if detail.OrderID == orderID {
			c := *detail
			details = append(details, &c)
		}
	}
	sort.Slice(details, func(i, j int) bool {
		return details[i].CreatedAt.Before(details[j].CreatedAt)
	})

	return details, nil
}

func (r *fakeOrderRepo) CreateTimelineEvent(_ context.Context, event *entity.OrderTimelineEvent) error {
	c := *event
	r.store.timelineEvents[event.ID] = &c

	return nil
}

func (r *fakeOrderRepo) FindTimelineByOrder(_ context.Context, orderID uuid.UUID) ([]*entity.OrderTimelineEvent, error) {
	var events []*entity.OrderTimelineEvent
	for _, event := range r.store.timelineEvents {
		if event.OrderID == orderID {
			c := *event
			events = append(events, &c)
		}
	}
	sort.Slice(events, func(i, j int) bool {
		return events[i].CreatedAt.After(events[j].CreatedAt)
	})

	return events, nil
}

type fakePromotionRepo struct {
	store *fakeStore
}

func (r *fakePromotionRepo) CreatePromotion(_ context.Context, promotion *entity.Promotion) error {
	c := *promotion
	r.store.promotions[promotion.ID] = &c

	return nil
}

func (r *fakePromotionRepo) FindPromotionByID(_ context.Context, id uuid.UUID) (*entity.Promotion, error) {
	promotion, ok := r.store.promotions[id]
	if !ok {
		return nil, repository.ErrPromotionNotFound
	}
	c := *promotion

	return &c, nil
}

func (r *fakePromotionRepo) CreateOrderPromotion(_ context.Context, op *entity.OrderPromotion) error {
	for _, existing := range r.store.orderPromotions {
		if existing.OrderID == op.OrderID && existing.PromotionID == op.PromotionID {
			return repository.ErrDuplicateOrderPromotion
		}
	}
	c := *op
	r.store.orderPromotions[op.ID] = &c

	return nil
}

func (r *fakePromotionRepo) FindOrderPromotion(_ context.Context, orderID, promotionID uuid.UUID) (*entity.OrderPromotion, error) {
	for _, op := range r.store.orderPromotions {
		if op.OrderID == orderID && op.PromotionID == promotionID {
			c := *op

			return &c, nil
		}
	}

	return nil, repository.ErrOrderPromotionNotFound
}

func (r *fakePromotionRepo) FindOrderPromotionsByOrder(_ context.Context, orderID uuid.UUID) ([]*entity.OrderPromotion, error) {
	var ops []*entity.OrderPromotion
	for _, op := range r.store.orderPromotions {
		if op.OrderID == orderID {
			c := *op
			ops = append(ops, &c)
		}
	}
	sort.Slice(ops, func(i, j int) bool {
		return ops[i].CreatedAt.Before(ops[j].CreatedAt)
	})

	return ops, nil
}

func (r *fakePromotionRepo) CountOrderPromotionsByPromotion(_ context.Context, promotionID uuid.UUID) (int64, error) {
	var count int64
	for _, op := range r.store.orderPromotions {
		if op.PromotionID == promotionID {
			count++
		}
	}

	return count, nil
}

func (r *fakePromotionRepo) CreateProductPromotion(_ context.Context, pp *entity.ProductPromotion) error {
	for _, existing := range r.store.productPromotions {
		if existing.ProductID == pp.ProductID && existing.PromotionID == pp.PromotionID {
			return repository.ErrDuplicateProductPromotion
		}
	}
	c := *pp
	r.store.productPromotions[pp.ID] = &c

	return nil
}

func (r *fakePromotionRepo) FindProductPromotion(_ context.Context, productID, promotionID uuid.UUID) (*entity.ProductPromotion, error) {
	for _, pp := range r.store.productPromotions {
		if pp.ProductID == productID && pp.PromotionID == promotionID {
			c := *pp

			return &c, nil
		}
	}

	return nil, repository.ErrProductPromotionNotFound
}

func (r *fakePromotionRepo) FindProductPromotionsByProduct(_ context.Context, productID uuid.UUID) ([]*entity.ProductPromotion, error) {
	var pps []*entity.ProductPromotion
	for _, pp := range r.store.productPromotions {
		if pp.ProductID == productID {
			c := *pp
			pps = append(pps, &c)
		}
	}
	sort.Slice(pps, func(i, j int) bool {
		return pps[i].CreatedAt.Before(pps[j].CreatedAt)
	})

	return pps, nil
}

func (r *fakePromotionRepo) FindProductPromotionsByPromotion(_ context.Context, promotionID uuid.UUID) ([]*entity.ProductPromotion, error) {
	var pps []*entity.ProductPromotion
	for _, pp := range r.store.productPromotions {
		if pp.PromotionID == promotionID {
			c := *pp
			pps = append(pps, &c)
		}
	}
	sort.Slice(pps, func(i, j int) bool {
		return pps[i].CreatedAt.Before(pps[j].CreatedAt)
	})

	return pps, nil
}

type fakeRevenueReportRepo struct {
	store *fakeStore
}

func (r *fakeRevenueReportRepo) CreateReport(_ context.Context, report *entity.RevenueReport) error {
	c := *report
	r.store.reports[report.ID] = &c

	return nil
}

func (r *fakeRevenueReportRepo) FindReportByPeriod(_ context.Context, reportDate time.Time, reportType entity.ReportType) (*entity.RevenueReport, error) {
	for _, report := range r.store.reports {
		if report.ReportDate.Equal(reportDate) && report.ReportType == reportType {
			c := *report

			return &c, nil
		}
	}

	return nil, repository.ErrRevenueReportNotFound
}

func (r *fakeRevenueReportRepo) FindReportByPeriodForUpdate(ctx context.Context, reportDate time.Time, reportType entity.ReportType) (*entity.RevenueReport, error) {
	return r.FindReportByPeriod(ctx, reportDate, reportType)
}

func (r *fakeRevenueReportRepo) SaveReport(_ context.Context, report *entity.RevenueReport) error {
	if _, ok := r.store.reports[report.ID]; !ok {
		return repository.ErrRevenueReportNotFound
	}
	c := *report
	r.store.reports[report.ID] = &c

	return nil
}

func (r *fakeRevenueReportRepo) FindReportsByType(_ context.Context, reportType entity.ReportType, from, to time.Time) ([]*entity.RevenueReport, error) {
	var reports []*entity.RevenueReport
	for _, report := range r.store.reports {
		if report.ReportType != reportType {
			continue
		}
		if report.ReportDate.Before(from) || report.ReportDate.After(to) {
			continue
		}
		c := *report
		reports = append(reports, &c)
	}
	sort.Slice(reports, func(i, j int) bool {
		return reports[i].ReportDate.Before(reports[j].ReportDate)
	})

	return reports, nil
}

// recordingPublisher captures published events for assertions.
type recordingPublisher struct {
	events []*service.OrderStatusEvent
}

func (p *recordingPublisher) PublishOrderStatusEvent(_ context.Context, event *service.OrderStatusEvent) error {
	p.events = append(p.events, event)

	return nil
}

func (p *recordingPublisher) Close() error {
	return nil
}
