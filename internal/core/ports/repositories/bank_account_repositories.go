package repositories

import (
	"context"

	"github.com/propera/pdc_backend/internal/core/domain"
)

// BankAccountRepositoryFacade defines persistence operations for company deposit
// accounts.
type BankAccountRepositoryFacade interface {
	// SaveBankAccount inserts a new bank account.
	SaveBankAccount(ctx context.Context, account domain.BankAccount) error

	// FindBankAccountByID retrieves a bank account by its unique identifier.
	FindBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error)

	// ListBankAccounts retrieves all bank accounts.
	ListBankAccounts(ctx context.Context) ([]domain.BankAccount, error)

	// UpdateBankAccountStatus flips an account between ACTIVE and INACTIVE.
	UpdateBankAccountStatus(ctx context.Context, bankAccountID string, status domain.BankAccountStatus, updatedBy string) error
}

// TenantRepositoryFacade defines the read-only tenant lookup consumed from the
// tenant/lease collaborator.
type TenantRepositoryFacade interface {
	// FindTenantByID retrieves a tenant by its unique identifier.
	FindTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error)
}
