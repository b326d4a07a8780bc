package usecase

import (
	"context"
	"time"

	"storefront/internal/domain/entity"
)

// RevenueUsecase defines the interface for revenue report reads. Writes
// happen only through the order lifecycle, on the first transition into
// delivered.
type RevenueUsecase interface {
	// GetReport retrieves the bucket containing the given instant for the
	// given period type.
	GetReport(ctx context.Context, reportType entity.ReportType, at time.Time) (*entity.RevenueReport, error)

	// ListReports retrieves buckets of one period type within a date range,
	// oldest first.
	ListReports(ctx context.Context, reportType entity.ReportType, from, to time.Time) ([]*entity.RevenueReport, error)
}
