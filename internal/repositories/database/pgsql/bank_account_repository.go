package pgsql

import (
	"context"
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

type PgxBankAccountRepository struct {
	BaseRepository
}

// newPgxBankAccountRepository creates a new repository for company deposit accounts.
func newPgxBankAccountRepository(pool *pgxpool.Pool) portsrepo.BankAccountRepositoryFacade {
	return &PgxBankAccountRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxBankAccountRepository implements portsrepo.BankAccountRepositoryFacade
var _ portsrepo.BankAccountRepositoryFacade = (*PgxBankAccountRepository)(nil)

// SaveBankAccount inserts a new bank account.
func (r *PgxBankAccountRepository) SaveBankAccount(ctx context.Context, account domain.BankAccount) error {
	m := mapping.ToModelBankAccount(account)

	query := `
		INSERT INTO bank_accounts (bank_account_id, bank_name, account_number, status, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.BankAccountID,
		m.BankName,
		m.AccountNumber,
		m.Status,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert bank account "+m.BankAccountID, err)
	}
	return nil
}

// FindBankAccountByID retrieves a bank account by its ID.
func (r *PgxBankAccountRepository) FindBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error) {
	query := `
		SELECT bank_account_id, bank_name, account_number, status, created_at, created_by, last_updated_at, last_updated_by
		FROM bank_accounts
		WHERE bank_account_id = $1;
	`
	var m models.BankAccount
	err := r.Pool.QueryRow(ctx, query, bankAccountID).Scan(
		&m.BankAccountID,
		&m.BankName,
		&m.AccountNumber,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find bank account by ID "+bankAccountID, err)
	}

	domainAccount := mapping.ToDomainBankAccount(m)
	return &domainAccount, nil
}

// ListBankAccounts retrieves all bank accounts.
func (r *PgxBankAccountRepository) ListBankAccounts(ctx context.Context) ([]domain.BankAccount, error) {
	query := `
		SELECT bank_account_id, bank_name, account_number, status, created_at, created_by, last_updated_at, last_updated_by
		FROM bank_accounts
		ORDER BY bank_name, created_at;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query bank accounts", err)
	}
	defer rows.Close()

	accounts := []domain.BankAccount{}
	for rows.Next() {
		var m models.BankAccount
		if err := rows.Scan(
			&m.BankAccountID,
			&m.BankName,
			&m.AccountNumber,
			&m.Status,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan bank account row", err)
		}
		accounts = append(accounts, mapping.ToDomainBankAccount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating bank account rows", err)
	}

	return accounts, nil
}

// UpdateBankAccountStatus flips an account between ACTIVE and INACTIVE.
func (r *PgxBankAccountRepository) UpdateBankAccountStatus(ctx context.Context, bankAccountID string, status domain.BankAccountStatus, updatedBy string) error {
	query := `
		UPDATE bank_accounts
		SET status = $2,
		    last_updated_at = $3,
		    last_updated_by = $4
		WHERE bank_account_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, bankAccountID, string(status), time.Now().UTC(), updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update bank account status for "+bankAccountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("bank account " + bankAccountID + " not found for update")
	}
	return nil
}
