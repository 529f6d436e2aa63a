package services

import (
	"context"

	"github.com/propera/pdc_backend/internal/core/domain"
	"github.com/propera/pdc_backend/internal/dto"
)

// BankAccountSvcFacade manages company deposit accounts and resolves them for
// deposit guards.
type BankAccountSvcFacade interface {
	// CreateBankAccount registers a new deposit account in ACTIVE status.
	CreateBankAccount(ctx context.Context, req dto.CreateBankAccountRequest, actorUserID string) (*domain.BankAccount, error)

	// GetBankAccountByID retrieves a bank account by its unique identifier.
	GetBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error)

	// ListBankAccounts retrieves all bank accounts.
	ListBankAccounts(ctx context.Context) ([]domain.BankAccount, error)

	// UpdateStatus flips an account between ACTIVE and INACTIVE.
	UpdateStatus(ctx context.Context, bankAccountID string, status domain.BankAccountStatus, actorUserID string) error

	// ResolveActive resolves an account and verifies it is ACTIVE. Returns
	// apperrors.ErrInvalidBankAccount when it does not resolve or is inactive.
	ResolveActive(ctx context.Context, bankAccountID string) (*domain.BankAccount, error)
}

// TenantSvcFacade is the read-only tenant lookup consumed from the tenant/lease
// collaborator.
type TenantSvcFacade interface {
	// GetTenantByID retrieves a tenant by its unique identifier.
	GetTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error)

	// EnsureExists verifies a tenant id resolves; used at cheque registration.
	EnsureExists(ctx context.Context, tenantID string) error
}
