package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/propera/pdc_backend/internal/apperrors"
	"github.com/propera/pdc_backend/internal/core/domain"
	portsrepo "github.com/propera/pdc_backend/internal/core/ports/repositories"
	"github.com/propera/pdc_backend/internal/models"
	"github.com/propera/pdc_backend/internal/utils/mapping"
)

type PgxSettlementRepository struct {
	BaseRepository
}

// newPgxSettlementRepository creates a new repository for withdrawal settlements.
func newPgxSettlementRepository(pool *pgxpool.Pool) portsrepo.SettlementRepositoryFacade {
	return &PgxSettlementRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxSettlementRepository implements portsrepo.SettlementRepositoryFacade
var _ portsrepo.SettlementRepositoryFacade = (*PgxSettlementRepository)(nil)

const settlementColumns = `
	settlement_id, cheque_id, tenant_id, method, amount, status, txn_reference, new_cheque_id,
	created_at, created_by, last_updated_at, last_updated_by`

// CreateSettlement inserts a new settlement record.
func (r *PgxSettlementRepository) CreateSettlement(ctx context.Context, settlement domain.WithdrawalSettlement) error {
	m := mapping.ToModelSettlement(settlement)

	query := `
		INSERT INTO withdrawal_settlements (
			settlement_id, cheque_id, tenant_id, method, amount, status, txn_reference, new_cheque_id,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.SettlementID,
		m.ChequeID,
		m.TenantID,
		m.Method,
		m.Amount,
		m.Status,
		nullString(m.TxnReference),
		m.NewChequeID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert settlement "+m.SettlementID, err)
	}
	return nil
}

// CompleteSettlementLink sets the new cheque id on a PENDING_LINK settlement and
// marks it SETTLED.
func (r *PgxSettlementRepository) CompleteSettlementLink(ctx context.Context, settlementID, newChequeID, updatedBy string) error {
	query := `
		UPDATE withdrawal_settlements
		SET new_cheque_id = $2,
		    status = 'SETTLED',
		    last_updated_at = $3,
		    last_updated_by = $4
		WHERE settlement_id = $1 AND status = 'PENDING_LINK';
	`
	cmdTag, err := r.Pool.Exec(ctx, query, settlementID, newChequeID, time.Now().UTC(), updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to complete settlement link "+settlementID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("pending settlement " + settlementID + " not found for link")
	}
	return nil
}

// FindSettlementByID retrieves a settlement by its ID.
func (r *PgxSettlementRepository) FindSettlementByID(ctx context.Context, settlementID string) (*domain.WithdrawalSettlement, error) {
	query := `SELECT ` + settlementColumns + ` FROM withdrawal_settlements WHERE settlement_id = $1;`
	return r.findOne(ctx, query, settlementID)
}

// FindSettlementByChequeID retrieves the settlement recorded for a withdrawn cheque.
func (r *PgxSettlementRepository) FindSettlementByChequeID(ctx context.Context, chequeID string) (*domain.WithdrawalSettlement, error) {
	query := `SELECT ` + settlementColumns + ` FROM withdrawal_settlements WHERE cheque_id = $1;`
	return r.findOne(ctx, query, chequeID)
}

func (r *PgxSettlementRepository) findOne(ctx context.Context, query string, arg string) (*domain.WithdrawalSettlement, error) {
	m, err := scanSettlement(r.Pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find settlement", err)
	}
	domainSettlement := mapping.ToDomainSettlement(m)
	return &domainSettlement, nil
}

// CountPendingLinkByTenant counts settlements in PENDING_LINK for a tenant.
func (r *PgxSettlementRepository) CountPendingLinkByTenant(ctx context.Context, tenantID string) (int, error) {
	query := `SELECT COUNT(*) FROM withdrawal_settlements WHERE tenant_id = $1 AND status = 'PENDING_LINK';`
	var count int
	if err := r.Pool.QueryRow(ctx, query, tenantID).Scan(&count); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count pending settlements for tenant "+tenantID, err)
	}
	return count, nil
}

// ListPendingLinkSettlements retrieves all PENDING_LINK settlements.
func (r *PgxSettlementRepository) ListPendingLinkSettlements(ctx context.Context) ([]domain.WithdrawalSettlement, error) {
	query := `SELECT ` + settlementColumns + ` FROM withdrawal_settlements WHERE status = 'PENDING_LINK' ORDER BY created_at;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query pending settlements", err)
	}
	defer rows.Close()

	settlements := []domain.WithdrawalSettlement{}
	for rows.Next() {
		m, scanErr := scanSettlement(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan settlement row", scanErr)
		}
		settlements = append(settlements, mapping.ToDomainSettlement(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating settlement rows", err)
	}

	return settlements, nil
}

func scanSettlement(row pgx.Row) (models.WithdrawalSettlement, error) {
	var m models.WithdrawalSettlement
	var txnRef sql.NullString

	err := row.Scan(
		&m.SettlementID,
		&m.ChequeID,
		&m.TenantID,
		&m.Method,
		&m.Amount,
		&m.Status,
		&txnRef,
		&m.NewChequeID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.WithdrawalSettlement{}, err
	}

	m.TxnReference = txnRef.String
	return m, nil
}
