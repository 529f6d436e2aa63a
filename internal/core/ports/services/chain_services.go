package services

import (
	"context"

	"github.com/propera/pdc_backend/internal/core/domain"
)

// ChainSvcFacade tracks replacement and withdrawal linkage and answers
// chain-traversal queries.
type ChainSvcFacade interface {
	// GetReplacementChain walks the chain containing the given cheque and returns
	// it ordered from earliest original to latest instrument. Returns
	// apperrors.ErrBrokenChainReference on dangling or inconsistent links.
	GetReplacementChain(ctx context.Context, chequeID string) ([]domain.Cheque, error)

	// ValidateLinkTarget checks that linking a replacement onto the given cheque
	// would keep the chain linear and acyclic.
	ValidateLinkTarget(ctx context.Context, originalChequeID string) error

	// EnsureCanOpenSettlement validates settlement input before the withdrawal
	// transition is written: method-specific required data and the one-open-
	// settlement-per-tenant rule.
	EnsureCanOpenSettlement(ctx context.Context, tenantID string, method domain.SettlementMethod, txnReference string) error

	// GetSettlementByCheque retrieves the settlement recorded for a withdrawn
	// cheque, if any.
	GetSettlementByCheque(ctx context.Context, chequeID string) (*domain.WithdrawalSettlement, error)

	// RecordWithdrawalSettlement creates the settlement record for a withdrawn
	// cheque. NEW_CHEQUE settlements start in PENDING_LINK.
	RecordWithdrawalSettlement(ctx context.Context, cheque domain.Cheque, method domain.SettlementMethod, txnReference string, actorUserID string) (*domain.WithdrawalSettlement, error)

	// CompleteSettlementLink attaches the separately registered new cheque to a
	// PENDING_LINK settlement and marks it SETTLED.
	CompleteSettlementLink(ctx context.Context, settlementID, newChequeID, actorUserID string) (*domain.WithdrawalSettlement, error)
}
