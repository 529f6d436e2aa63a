package services

import (
	"context"
	"time"

	"github.com/propera/pdc_backend/internal/core/domain"
)

// ReportingSvcFacade computes read-only derived views over current cheque state.
type ReportingSvcFacade interface {
	// GetDashboardSummary computes the portfolio KPI block as of the given time.
	GetDashboardSummary(ctx context.Context, asOf time.Time) (*domain.DashboardSummary, error)

	// GetTenantStats computes one tenant's counts and bounce rate over an optional
	// window; a nil window means all time. Returns apperrors.ErrInvalidDateRange
	// when the window end precedes its start.
	GetTenantStats(ctx context.Context, tenantID string, window *domain.DateRange) (*domain.TenantPDCStats, error)

	// GetAgingBuckets groups RECEIVED and DUE cheques by days until due.
	GetAgingBuckets(ctx context.Context, asOf time.Time) ([]domain.AgingBucket, error)
}
