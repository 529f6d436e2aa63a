package repositories

import (
	"context"
	"time"

	"github.com/propera/pdc_backend/internal/core/domain"
)

// ReportingRepository defines the read-only aggregate queries behind the
// dashboard and aging views. Implementations never mutate state.
type ReportingRepository interface {
	// GetDueBucket sums count and amount of RECEIVED and DUE cheques whose cheque
	// date falls inside [from, to], both inclusive.
	GetDueBucket(ctx context.Context, from, to time.Time) (domain.BucketTotal, error)

	// GetStatusBucket sums count and amount of cheques currently in the given
	// statuses.
	GetStatusBucket(ctx context.Context, statuses []domain.ChequeStatus) (domain.BucketTotal, error)

	// CountBouncedSince counts cheques whose bounce date is on or after the cutoff.
	CountBouncedSince(ctx context.Context, cutoff time.Time) (int, error)

	// GetTenantStatusCounts returns per-status cheque counts for a tenant whose
	// last transition falls inside the window; a nil window means all time.
	GetTenantStatusCounts(ctx context.Context, tenantID string, window *domain.DateRange) (map[domain.ChequeStatus]int, error)

	// GetAgingRows returns, for every RECEIVED or DUE cheque, its amount and days
	// until its cheque date relative to asOf.
	GetAgingRows(ctx context.Context, asOf time.Time) ([]domain.AgingRow, error)
}
