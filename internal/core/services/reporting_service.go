package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/propera/pdc_backend/internal/apperrors"
	"github.com/propera/pdc_backend/internal/core/domain"
	portsrepo "github.com/propera/pdc_backend/internal/core/ports/repositories"
	portssvc "github.com/propera/pdc_backend/internal/core/ports/services"
)

// reportingService computes derived read-only views over committed cheque state.
// It re-queries on every call rather than maintaining caches, so the numbers are
// always internally consistent with the store.
type reportingService struct {
	reportingRepo  portsrepo.ReportingRepository
	settlementRepo portsrepo.SettlementReader
	tenantSvc      portssvc.TenantSvcFacade
}

// NewReportingService creates a new ReportingService.
func NewReportingService(reportingRepo portsrepo.ReportingRepository, settlementRepo portsrepo.SettlementReader, tenantSvc portssvc.TenantSvcFacade) portssvc.ReportingSvcFacade {
	return &reportingService{
		reportingRepo:  reportingRepo,
		settlementRepo: settlementRepo,
		tenantSvc:      tenantSvc,
	}
}

// Ensure reportingService implements the portssvc.ReportingSvcFacade interface
var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// GetDashboardSummary computes the portfolio KPI block as of the given time.
func (s *reportingService) GetDashboardSummary(ctx context.Context, asOf time.Time) (*domain.DashboardSummary, error) {
	asOf = asOf.UTC()

	dueWeek, err := s.reportingRepo.GetDueBucket(ctx, asOf, asOf.AddDate(0, 0, 7))
	if err != nil {
		return nil, err
	}
	dueMonth, err := s.reportingRepo.GetDueBucket(ctx, asOf, asOf.AddDate(0, 0, 30))
	if err != nil {
		return nil, err
	}
	deposited, err := s.reportingRepo.GetStatusBucket(ctx, []domain.ChequeStatus{domain.StatusDeposited})
	if err != nil {
		return nil, err
	}
	outstanding, err := s.reportingRepo.GetStatusBucket(ctx, []domain.ChequeStatus{
		domain.StatusReceived, domain.StatusDue, domain.StatusDeposited,
	})
	if err != nil {
		return nil, err
	}
	recentBounces, err := s.reportingRepo.CountBouncedSince(ctx, asOf.AddDate(0, 0, -30))
	if err != nil {
		return nil, err
	}
	pendingLinks, err := s.settlementRepo.ListPendingLinkSettlements(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.DashboardSummary{
		AsOf:             asOf,
		DueThisWeek:      dueWeek,
		DueThisMonth:     dueMonth,
		Deposited:        deposited,
		Outstanding:      outstanding,
		RecentBounces:    recentBounces,
		PendingLinkCount: len(pendingLinks),
	}, nil
}

// GetTenantStats computes one tenant's counts and bounce rate over an optional
// window.
func (s *reportingService) GetTenantStats(ctx context.Context, tenantID string, window *domain.DateRange) (*domain.TenantPDCStats, error) {
	if window != nil && !window.Valid() {
		return nil, apperrors.NewAppError(400, "reporting window end precedes start", apperrors.ErrInvalidDateRange)
	}
	if err := s.tenantSvc.EnsureExists(ctx, tenantID); err != nil {
		return nil, err
	}

	counts, err := s.reportingRepo.GetTenantStatusCounts(ctx, tenantID, window)
	if err != nil {
		return nil, err
	}

	stats := &domain.TenantPDCStats{TenantID: tenantID}
	for status, count := range counts {
		stats.Total += count
		switch status {
		case domain.StatusCleared:
			stats.Cleared += count
		case domain.StatusBounced, domain.StatusReplaced:
			// A REPLACED cheque bounced before it was replaced, so it still counts
			// against the tenant's record.
			stats.Bounced += count
		case domain.StatusReceived, domain.StatusDue, domain.StatusDeposited:
			stats.Pending += count
		}
	}

	if denominator := stats.Cleared + stats.Bounced; denominator > 0 {
		rate := decimal.NewFromInt(int64(stats.Bounced)).
			Div(decimal.NewFromInt(int64(denominator))).
			Round(4)
		stats.BounceRate = &rate
	}

	return stats, nil
}

// agingBucketDefs are the fixed aging bands, ordered as presented.
var agingBucketDefs = []struct {
	label   string
	minDays *int
	maxDays *int
}{
	{label: "OVERDUE", maxDays: intPtr(-1)},
	{label: "0-7", minDays: intPtr(0), maxDays: intPtr(7)},
	{label: "8-30", minDays: intPtr(8), maxDays: intPtr(30)},
	{label: "31+", minDays: intPtr(31)},
}

func intPtr(v int) *int { return &v }

// GetAgingBuckets groups RECEIVED and DUE cheques by days until their cheque
// date. Every band is present in the result, zeroed when empty.
func (s *reportingService) GetAgingBuckets(ctx context.Context, asOf time.Time) ([]domain.AgingBucket, error) {
	rows, err := s.reportingRepo.GetAgingRows(ctx, asOf.UTC())
	if err != nil {
		return nil, err
	}

	buckets := make([]domain.AgingBucket, len(agingBucketDefs))
	for i, def := range agingBucketDefs {
		buckets[i] = domain.AgingBucket{
			Label:   def.label,
			MinDays: def.minDays,
			MaxDays: def.maxDays,
			Amount:  decimal.Zero,
		}
	}

	for _, row := range rows {
		for i, def := range agingBucketDefs {
			if def.minDays != nil && row.DaysUntilDue < *def.minDays {
				continue
			}
			if def.maxDays != nil && row.DaysUntilDue > *def.maxDays {
				continue
			}
			buckets[i].Count++
			buckets[i].Amount = buckets[i].Amount.Add(row.Amount)
			break
		}
	}

	return buckets, nil
}
