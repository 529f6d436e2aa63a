package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/propera/pdc_backend/internal/apperrors"
	"github.com/propera/pdc_backend/internal/core/domain"
	portsrepo "github.com/propera/pdc_backend/internal/core/ports/repositories"
	portssvc "github.com/propera/pdc_backend/internal/core/ports/services"
	"github.com/propera/pdc_backend/internal/dto"
	"github.com/propera/pdc_backend/internal/middleware"
)

// bankAccountService manages company deposit accounts.
type bankAccountService struct {
	accountRepo portsrepo.BankAccountRepositoryFacade
}

// NewBankAccountService creates a new BankAccountService.
func NewBankAccountService(accountRepo portsrepo.BankAccountRepositoryFacade) portssvc.BankAccountSvcFacade {
	return &bankAccountService{accountRepo: accountRepo}
}

// Ensure bankAccountService implements the portssvc.BankAccountSvcFacade interface
var _ portssvc.BankAccountSvcFacade = (*bankAccountService)(nil)

// CreateBankAccount registers a new deposit account in ACTIVE status.
func (s *bankAccountService) CreateBankAccount(ctx context.Context, req dto.CreateBankAccountRequest, actorUserID string) (*domain.BankAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	account := domain.BankAccount{
		BankAccountID: uuid.NewString(),
		BankName:      req.BankName,
		AccountNumber: req.AccountNumber,
		Status:        domain.BankAccountActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorUserID,
		},
	}

	if err := s.accountRepo.SaveBankAccount(ctx, account); err != nil {
		return nil, err
	}

	logger.Info("Bank account created",
		slog.String("bank_account_id", account.BankAccountID),
		slog.String("bank_name", account.BankName))
	return &account, nil
}

// GetBankAccountByID retrieves a bank account by its unique identifier.
func (s *bankAccountService) GetBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error) {
	return s.accountRepo.FindBankAccountByID(ctx, bankAccountID)
}

// ListBankAccounts retrieves all bank accounts.
func (s *bankAccountService) ListBankAccounts(ctx context.Context) ([]domain.BankAccount, error) {
	return s.accountRepo.ListBankAccounts(ctx)
}

// UpdateStatus flips an account between ACTIVE and INACTIVE.
func (s *bankAccountService) UpdateStatus(ctx context.Context, bankAccountID string, status domain.BankAccountStatus, actorUserID string) error {
	if status != domain.BankAccountActive && status != domain.BankAccountInactive {
		return apperrors.NewValidationFieldError("status", "unknown bank account status "+string(status))
	}
	return s.accountRepo.UpdateBankAccountStatus(ctx, bankAccountID, status, actorUserID)
}

// ResolveActive resolves an account and verifies it is ACTIVE. Deposits against
// anything else are rejected before the transition is attempted.
func (s *bankAccountService) ResolveActive(ctx context.Context, bankAccountID string) (*domain.BankAccount, error) {
	account, err := s.accountRepo.FindBankAccountByID(ctx, bankAccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewAppError(422, "bank account "+bankAccountID+" does not exist", apperrors.ErrInvalidBankAccount)
		}
		return nil, err
	}
	if account.Status != domain.BankAccountActive {
		return nil, apperrors.NewAppError(422, "bank account "+bankAccountID+" is not active", apperrors.ErrInvalidBankAccount)
	}
	return account, nil
}
