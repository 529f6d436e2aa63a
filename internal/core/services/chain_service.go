package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/propera/pdc_backend/internal/apperrors"
	"github.com/propera/pdc_backend/internal/core/domain"
	portsrepo "github.com/propera/pdc_backend/internal/core/ports/repositories"
	portssvc "github.com/propera/pdc_backend/internal/core/ports/services"
	"github.com/propera/pdc_backend/internal/middleware"
)

// maxChainLength bounds chain walks. A rent cheque bouncing and being replaced
// more than this many times is operationally implausible and points at corrupt
// links rather than real history.
const maxChainLength = 64

// chainService tracks replacement linkage and withdrawal settlements.
type chainService struct {
	chequeRepo     portsrepo.ChequeReader
	settlementRepo portsrepo.SettlementRepositoryFacade
}

// NewChainService creates a new ChainService.
func NewChainService(chequeRepo portsrepo.ChequeReader, settlementRepo portsrepo.SettlementRepositoryFacade) portssvc.ChainSvcFacade {
	return &chainService{
		chequeRepo:     chequeRepo,
		settlementRepo: settlementRepo,
	}
}

// Ensure chainService implements the portssvc.ChainSvcFacade interface
var _ portssvc.ChainSvcFacade = (*chainService)(nil)

// walkToRoot follows OriginalChequeID links back to the chain's first
// instrument, verifying back-links along the way.
func (s *chainService) walkToRoot(ctx context.Context, start *domain.Cheque) (*domain.Cheque, error) {
	current := start
	seen := map[string]struct{}{current.ChequeID: {}}

	for current.OriginalChequeID != nil {
		if len(seen) > maxChainLength {
			return nil, apperrors.NewAppError(500, "replacement chain exceeds maximum length", apperrors.ErrBrokenChainReference)
		}

		original, err := s.chequeRepo.FindChequeByID(ctx, *current.OriginalChequeID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NewAppError(500,
					fmt.Sprintf("cheque %s references missing original %s", current.ChequeID, *current.OriginalChequeID),
					apperrors.ErrBrokenChainReference)
			}
			return nil, err
		}
		if original.ReplacementChequeID == nil || *original.ReplacementChequeID != current.ChequeID {
			return nil, apperrors.NewAppError(500,
				fmt.Sprintf("cheque %s does not link back to its replacement %s", original.ChequeID, current.ChequeID),
				apperrors.ErrBrokenChainReference)
		}
		if _, dup := seen[original.ChequeID]; dup {
			return nil, apperrors.NewAppError(500,
				fmt.Sprintf("replacement chain cycles at cheque %s", original.ChequeID),
				apperrors.ErrBrokenChainReference)
		}
		seen[original.ChequeID] = struct{}{}
		current = original
	}

	return current, nil
}

// GetReplacementChain walks the chain containing chequeID and returns it ordered
// from earliest original to latest instrument.
func (s *chainService) GetReplacementChain(ctx context.Context, chequeID string) ([]domain.Cheque, error) {
	start, err := s.chequeRepo.FindChequeByID(ctx, chequeID)
	if err != nil {
		return nil, err
	}

	root, err := s.walkToRoot(ctx, start)
	if err != nil {
		return nil, err
	}

	chain := []domain.Cheque{*root}
	seen := map[string]struct{}{root.ChequeID: {}}
	current := root
	for current.ReplacementChequeID != nil {
		if len(chain) > maxChainLength {
			return nil, apperrors.NewAppError(500, "replacement chain exceeds maximum length", apperrors.ErrBrokenChainReference)
		}

		next, err := s.chequeRepo.FindChequeByID(ctx, *current.ReplacementChequeID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NewAppError(500,
					fmt.Sprintf("cheque %s references missing replacement %s", current.ChequeID, *current.ReplacementChequeID),
					apperrors.ErrBrokenChainReference)
			}
			return nil, err
		}
		if next.OriginalChequeID == nil || *next.OriginalChequeID != current.ChequeID {
			return nil, apperrors.NewAppError(500,
				fmt.Sprintf("cheque %s does not link back to its original %s", next.ChequeID, current.ChequeID),
				apperrors.ErrBrokenChainReference)
		}
		if _, dup := seen[next.ChequeID]; dup {
			return nil, apperrors.NewAppError(500,
				fmt.Sprintf("replacement chain cycles at cheque %s", next.ChequeID),
				apperrors.ErrBrokenChainReference)
		}
		seen[next.ChequeID] = struct{}{}
		chain = append(chain, *next)
		current = next
	}

	return chain, nil
}

// ValidateLinkTarget checks that linking a replacement onto originalChequeID
// keeps the chain linear and acyclic.
func (s *chainService) ValidateLinkTarget(ctx context.Context, originalChequeID string) error {
	original, err := s.chequeRepo.FindChequeByID(ctx, originalChequeID)
	if err != nil {
		return err
	}

	if original.ReplacementChequeID != nil {
		return apperrors.NewValidationFieldError("chequeID",
			fmt.Sprintf("cheque %s already has replacement %s", originalChequeID, *original.ReplacementChequeID))
	}
	switch original.Status {
	case domain.StatusCancelled, domain.StatusWithdrawn:
		// A cancelled or withdrawn cheque left the lifecycle without bouncing;
		// grafting a replacement onto it would fabricate history.
		return apperrors.NewIllegalTransitionError(string(original.Status), string(domain.StatusReplaced))
	}

	// Root-ward walk both validates the existing links and catches cycles.
	if _, err := s.walkToRoot(ctx, original); err != nil {
		return err
	}
	return nil
}

// EnsureCanOpenSettlement validates settlement input before the withdrawal
// transition is written.
func (s *chainService) EnsureCanOpenSettlement(ctx context.Context, tenantID string, method domain.SettlementMethod, txnReference string) error {
	switch method {
	case domain.MethodBankTransfer:
		if txnReference == "" {
			return apperrors.NewValidationFieldError("txnReference", "bank transfer settlements require a transaction reference")
		}
	case domain.MethodCash, domain.MethodNewCheque:
		// No extra input needed.
	default:
		return apperrors.NewValidationFieldError("method", "unknown settlement method "+string(method))
	}

	if method == domain.MethodNewCheque {
		pending, err := s.settlementRepo.CountPendingLinkByTenant(ctx, tenantID)
		if err != nil {
			return err
		}
		if pending > 0 {
			return apperrors.NewValidationFieldError("method",
				"tenant already has a settlement awaiting its new cheque; link it before opening another")
		}
	}
	return nil
}

// GetSettlementByCheque retrieves the settlement recorded for a withdrawn cheque.
func (s *chainService) GetSettlementByCheque(ctx context.Context, chequeID string) (*domain.WithdrawalSettlement, error) {
	return s.settlementRepo.FindSettlementByChequeID(ctx, chequeID)
}

// RecordWithdrawalSettlement creates the settlement record for a withdrawn
// cheque. NEW_CHEQUE settlements start in PENDING_LINK until the replacement
// instrument is registered and linked.
func (s *chainService) RecordWithdrawalSettlement(ctx context.Context, cheque domain.Cheque, method domain.SettlementMethod, txnReference string, actorUserID string) (*domain.WithdrawalSettlement, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.EnsureCanOpenSettlement(ctx, cheque.TenantID, method, txnReference); err != nil {
		return nil, err
	}

	status := domain.SettlementSettled
	if method == domain.MethodNewCheque {
		status = domain.SettlementPendingLink
	}

	now := time.Now().UTC()
	settlement := domain.WithdrawalSettlement{
		SettlementID: uuid.NewString(),
		ChequeID:     cheque.ChequeID,
		TenantID:     cheque.TenantID,
		Method:       method,
		Amount:       cheque.Amount,
		Status:       status,
		TxnReference: txnReference,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorUserID,
		},
	}

	if err := s.settlementRepo.CreateSettlement(ctx, settlement); err != nil {
		return nil, err
	}

	logger.Info("Withdrawal settlement created",
		slog.String("settlement_id", settlement.SettlementID),
		slog.String("method", string(method)),
		slog.String("status", string(status)))
	return &settlement, nil
}

// CompleteSettlementLink attaches the separately registered new cheque to a
// PENDING_LINK settlement and marks it SETTLED.
func (s *chainService) CompleteSettlementLink(ctx context.Context, settlementID, newChequeID, actorUserID string) (*domain.WithdrawalSettlement, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	settlement, err := s.settlementRepo.FindSettlementByID(ctx, settlementID)
	if err != nil {
		return nil, err
	}
	if settlement.Status != domain.SettlementPendingLink {
		return nil, apperrors.NewValidationFieldError("settlementID", "settlement is not awaiting a new cheque")
	}

	newCheque, err := s.chequeRepo.FindChequeByID(ctx, newChequeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewValidationFieldError("newChequeID", "new cheque does not exist")
		}
		return nil, err
	}
	if newCheque.TenantID != settlement.TenantID {
		return nil, apperrors.NewValidationFieldError("newChequeID", "new cheque belongs to a different tenant")
	}
	if domain.IsTerminal(newCheque.Status) {
		return nil, apperrors.NewValidationFieldError("newChequeID", "new cheque is already in a terminal status")
	}

	if err := s.settlementRepo.CompleteSettlementLink(ctx, settlementID, newChequeID, actorUserID); err != nil {
		return nil, err
	}

	logger.Info("Settlement linked to new cheque",
		slog.String("settlement_id", settlementID),
		slog.String("new_cheque_id", newChequeID))
	return s.settlementRepo.FindSettlementByID(ctx, settlementID)
}
