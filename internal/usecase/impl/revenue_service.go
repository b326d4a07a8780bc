package impl

import (
	"context"
	"time"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

type revenueService struct {
	reportRepo repository.RevenueReportRepository
}

// RevenueServiceParams holds dependencies for RevenueService, injected by Fx.
type RevenueServiceParams struct {
	fx.In

	ReportRepo repository.RevenueReportRepository
}

// NewRevenueService creates a new revenue service instance
func NewRevenueService(params RevenueServiceParams) usecase.RevenueUsecase {
	return &revenueService{
		reportRepo: params.ReportRepo,
	}
}

// GetReport retrieves the bucket containing the given instant for the given
// period type.
func (srv *revenueService) GetReport(ctx context.Context, reportType entity.ReportType, at time.Time) (*entity.RevenueReport, error) {
	if !reportType.IsValid() {
		return nil, domainerrors.ErrInvalidReportType.WrapMessage(reportType.String())
	}

	report, err := srv.reportRepo.FindReportByPeriod(ctx, reportType.BucketDate(at), reportType)
	if err != nil {
		if errors.Is(err, repository.ErrRevenueReportNotFound) {
			return nil, domainerrors.ErrRevenueReportNotFound
		}

		return nil, errors.Wrap(err, "failed to find revenue report")
	}

	return report, nil
}

// ListReports retrieves buckets of one period type within a date range,
// oldest first.
func (srv *revenueService) ListReports(ctx context.Context, reportType entity.ReportType, from, to time.Time) ([]*entity.RevenueReport, error) {
	if !reportType.IsValid() {
		return nil, domainerrors.ErrInvalidReportType.WrapMessage(reportType.String())
	}

	reports, err := srv.reportRepo.FindReportsByType(ctx, reportType, from, to)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find revenue reports")
	}

	return reports, nil
}

// recordOrderRevenue accumulates one order's financial contribution into
// every period bucket, inside the caller's transaction. Each bucket row is
// locked while mutated so concurrent deliveries serialize. The caller is
// responsible for the exactly-once guard on the order itself.
func recordOrderRevenue(ctx context.Context, repoFactory repository.RepositoryFactory, order *entity.Order, now time.Time) error {
	discount, err := sumOrderDiscounts(ctx, repoFactory.NewPromotionRepository(), order)
	if err != nil {
		return err
	}

	reportRepo := repoFactory.NewRevenueReportRepository()
	for _, reportType := range entity.AllReportTypes() {
		bucketDate := reportType.BucketDate(now)

		report, err := reportRepo.FindReportByPeriodForUpdate(ctx, bucketDate, reportType)
		if err != nil {
			if !errors.Is(err, repository.ErrRevenueReportNotFound) {
				return errors.Wrap(err, "failed to find revenue report for update")
			}

			report = entity.NewRevenueReport(bucketDate, reportType)
			if err := reportRepo.CreateReport(ctx, report); err != nil {
				return errors.Wrap(err, "failed to create revenue report")
			}
		}

		// TotalAmount includes the shipping fee, which AddOrder accounts
		// separately, so pass the merchandise portion only.
		report.AddOrder(order.ItemsTotal(), order.ShippingFee, discount, now)
		if err := reportRepo.SaveReport(ctx, report); err != nil {
			return errors.Wrap(err, "failed to save revenue report")
		}
	}

	return nil
}

// sumOrderDiscounts totals the persisted promotion applications of an order.
func sumOrderDiscounts(ctx context.Context, promotionRepo repository.PromotionRepository, order *entity.Order) (decimal.Decimal, error) {
	orderPromotions, err := promotionRepo.FindOrderPromotionsByOrder(ctx, order.ID)
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "failed to find order promotions")
	}

	discount := decimal.Zero
	for _, op := range orderPromotions {
		discount = discount.Add(op.DiscountAmount)
	}

	return discount, nil
}
