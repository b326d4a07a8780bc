package repository

import "context"

// TransactionManager defines the interface for managing database transactions.
// This allows the use case layer to handle transactions without depending on a
// specific DB driver like GORM. Multi-step operations such as checkout demand
// their atomicity here, in the public contract, rather than in an ambient
// framework annotation.
type TransactionManager interface {
	// Execute runs a function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// Otherwise, it's committed. All repository operations within the
	// function will use the same database transaction.
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory provides a way to get repository instances that are bound
// to a specific transaction. This ensures all repository operations within a
// transaction use the same database connection.
type RepositoryFactory interface {
	// NewCartRepository returns a CartRepository bound to the current transaction.
	NewCartRepository() CartRepository

	// NewProductRepository returns a ProductRepository bound to the current transaction.
	NewProductRepository() ProductRepository

	// NewAddressRepository returns an AddressRepository bound to the current transaction.
	NewAddressRepository() AddressRepository

	// NewPaymentMethodRepository returns a PaymentMethodRepository bound to the current transaction.
	NewPaymentMethodRepository() PaymentMethodRepository

	// NewOrderRepository returns an OrderRepository bound to the current transaction.
	NewOrderRepository() OrderRepository

	// NewPromotionRepository returns a PromotionRepository bound to the current transaction.
	NewPromotionRepository() PromotionRepository

	// NewRevenueReportRepository returns a RevenueReportRepository bound to the current transaction.
	NewRevenueReportRepository() RevenueReportRepository
}
