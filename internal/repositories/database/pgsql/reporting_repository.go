package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/propera/pdc_backend/internal/core/domain"
	portsrepo "github.com/propera/pdc_backend/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// GetDueBucket sums count and amount of RECEIVED and DUE cheques whose cheque
// date falls inside [from, to].
func (r *reportingRepository) GetDueBucket(ctx context.Context, from, to time.Time) (domain.BucketTotal, error) {
	query := `
		SELECT COUNT(*), COALESCE(SUM(amount), 0)
		FROM cheques
		WHERE status IN ('RECEIVED', 'DUE')
		  AND cheque_date >= $1 AND cheque_date <= $2;
	`
	var bucket domain.BucketTotal
	var amount decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, from, to).Scan(&bucket.Count, &amount); err != nil {
		return domain.BucketTotal{Amount: decimal.Zero}, fmt.Errorf("error querying due bucket: %w", err)
	}
	bucket.Amount = amount
	return bucket, nil
}

// GetStatusBucket sums count and amount of cheques currently in the given statuses.
func (r *reportingRepository) GetStatusBucket(ctx context.Context, statuses []domain.ChequeStatus) (domain.BucketTotal, error) {
	if len(statuses) == 0 {
		return domain.BucketTotal{Amount: decimal.Zero}, nil
	}

	statusStrings := make([]string, len(statuses))
	for i, s := range statuses {
		statusStrings[i] = string(s)
	}

	query := `
		SELECT COUNT(*), COALESCE(SUM(amount), 0)
		FROM cheques
		WHERE status = ANY($1);
	`
	var bucket domain.BucketTotal
	var amount decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, statusStrings).Scan(&bucket.Count, &amount); err != nil {
		return domain.BucketTotal{Amount: decimal.Zero}, fmt.Errorf("error querying status bucket: %w", err)
	}
	bucket.Amount = amount
	return bucket, nil
}

// CountBouncedSince counts cheques whose bounce date is on or after the cutoff.
func (r *reportingRepository) CountBouncedSince(ctx context.Context, cutoff time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM cheques WHERE bounced_date IS NOT NULL AND bounced_date >= $1;`
	var count int
	if err := r.Pool.QueryRow(ctx, query, cutoff).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting recent bounces: %w", err)
	}
	return count, nil
}

// GetTenantStatusCounts returns per-status cheque counts for a tenant. A non-nil
// window restricts to cheques whose last update falls inside it.
func (r *reportingRepository) GetTenantStatusCounts(ctx context.Context, tenantID string, window *domain.DateRange) (map[domain.ChequeStatus]int, error) {
	query := `
		SELECT status, COUNT(*)
		FROM cheques
		WHERE tenant_id = $1
	`
	args := []interface{}{tenantID}
	if window != nil {
		query += ` AND last_updated_at >= $2 AND last_updated_at <= $3`
		args = append(args, window.Start, window.End)
	}
	query += ` GROUP BY status;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying tenant status counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.ChequeStatus]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("error scanning tenant status count row: %w", err)
		}
		counts[domain.ChequeStatus(status)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tenant status count rows: %w", err)
	}

	return counts, nil
}

// GetAgingRows returns the amount and days-until-due of every RECEIVED or DUE
// cheque relative to asOf.
func (r *reportingRepository) GetAgingRows(ctx context.Context, asOf time.Time) ([]domain.AgingRow, error) {
	query := `
		SELECT cheque_id, amount, (cheque_date::date - $1::date)
		FROM cheques
		WHERE status IN ('RECEIVED', 'DUE')
		ORDER BY cheque_date;
	`
	rows, err := r.Pool.Query(ctx, query, asOf)
	if err != nil {
		return nil, fmt.Errorf("error querying aging rows: %w", err)
	}
	defer rows.Close()

	result := []domain.AgingRow{}
	for rows.Next() {
		var row domain.AgingRow
		if err := rows.Scan(&row.ChequeID, &row.Amount, &row.DaysUntilDue); err != nil {
			return nil, fmt.Errorf("error scanning aging row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating aging rows: %w", err)
	}

	return result, nil
}
