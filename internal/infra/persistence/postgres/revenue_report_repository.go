package postgres

import (
	"context"
	"time"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// revenueReportRepository implements the repository.RevenueReportRepository interface.
type revenueReportRepository struct {
	db *gorm.DB
}

// NewRevenueReportRepository is the constructor for revenueReportRepository.
func NewRevenueReportRepository(db *gorm.DB) repository.RevenueReportRepository {
	return &revenueReportRepository{
		db: db,
	}
}

// CreateReport persists a new, empty period bucket.
func (repo *revenueReportRepository) CreateReport(ctx context.Context, report *entity.RevenueReport) error {
	reportM := fromRevenueReportDomain(report)

	if err := repo.db.WithContext(ctx).Create(reportM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create revenue report")
	}

	report.ID = reportM.ID
	report.CreatedAt = reportM.CreatedAt
	report.UpdatedAt = reportM.UpdatedAt

	return nil
}

// FindReportByPeriod retrieves the bucket for (reportDate, reportType).
func (repo *revenueReportRepository) FindReportByPeriod(ctx context.Context, reportDate time.Time, reportType entity.ReportType) (*entity.RevenueReport, error) {
	var reportM model.RevenueReportModel

	if err := repo.db.WithContext(ctx).
		Where("report_date = ? AND report_type = ?", reportDate, reportType.String()).
		First(&reportM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRevenueReportNotFound
		}

		return nil, errors.Wrap(err, "failed to find revenue report by period")
	}

	return toRevenueReportDomain(&reportM), nil
}

// FindReportByPeriodForUpdate retrieves the bucket and locks it so concurrent
// accumulations serialize.
func (repo *revenueReportRepository) FindReportByPeriodForUpdate(ctx context.Context, reportDate time.Time, reportType entity.ReportType) (*entity.RevenueReport, error) {
	var reportM model.RevenueReportModel

	if err := repo.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("report_date = ? AND report_type = ?", reportDate, reportType.String()).
		First(&reportM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRevenueReportNotFound
		}

		return nil, errors.Wrap(err, "failed to find revenue report for update")
	}

	return toRevenueReportDomain(&reportM), nil
}

// SaveReport persists the mutated bucket.
func (repo *revenueReportRepository) SaveReport(ctx context.Context, report *entity.RevenueReport) error {
	reportM := fromRevenueReportDomain(report)

	result := repo.db.WithContext(ctx).
		Model(&model.RevenueReportModel{}).
		Where("id = ?", reportM.ID).
		Updates(map[string]any{
			"total_orders":     reportM.TotalOrders,
			"total_revenue":    reportM.TotalRevenue,
			"shipping_revenue": reportM.ShippingRevenue,
			"discount_amount":  reportM.DiscountAmount,
			"net_revenue":      reportM.NetRevenue,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to save revenue report")
	}
	if result.RowsAffected == 0 {
		return repository.ErrRevenueReportNotFound
	}

	return nil
}

// FindReportsByType retrieves buckets of one period type within a date range,
// oldest first.
func (repo *revenueReportRepository) FindReportsByType(ctx context.Context, reportType entity.ReportType, from, to time.Time) ([]*entity.RevenueReport, error) {
	var reportMs []*model.RevenueReportModel

	if err := repo.db.WithContext(ctx).
		Where("report_type = ? AND report_date >= ? AND report_date <= ?", reportType.String(), from, to).
		Order("report_date ASC").
		Find(&reportMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find revenue reports by type")
	}

	reports := make([]*entity.RevenueReport, 0, len(reportMs))
	for _, reportM := range reportMs {
		reports = append(reports, toRevenueReportDomain(reportM))
	}

	return reports, nil
}

// fromRevenueReportDomain maps a domain bucket to its persistence model.
func fromRevenueReportDomain(report *entity.RevenueReport) *model.RevenueReportModel {
	return &model.RevenueReportModel{
		ID:              report.ID,
		ReportDate:      report.ReportDate,
		ReportType:      report.ReportType.String(),
		TotalOrders:     report.TotalOrders,
		TotalRevenue:    report.TotalRevenue,
		ShippingRevenue: report.ShippingRevenue,
		DiscountAmount:  report.DiscountAmount,
		NetRevenue:      report.NetRevenue,
		CreatedAt:       report.CreatedAt,
		UpdatedAt:       report.UpdatedAt,
	}
}

// toRevenueReportDomain maps a persistence model back to a pure domain bucket.
func toRevenueReportDomain(reportM *model.RevenueReportModel) *entity.RevenueReport {
	return &entity.RevenueReport{
		ID:              reportM.ID,
		ReportDate:      reportM.ReportDate,
		ReportType:      entity.ReportType(reportM.ReportType),
		TotalOrders:     reportM.TotalOrders,
		TotalRevenue:    reportM.TotalRevenue,
		ShippingRevenue: reportM.ShippingRevenue,
		DiscountAmount:  reportM.DiscountAmount,
		NetRevenue:      reportM.NetRevenue,
		CreatedAt:       reportM.CreatedAt,
		UpdatedAt:       reportM.UpdatedAt,
	}
}
