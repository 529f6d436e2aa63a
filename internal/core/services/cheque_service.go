package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/propera/pdc_backend/internal/apperrors"
	"github.com/propera/pdc_backend/internal/core/domain"
	portsrepo "github.com/propera/pdc_backend/internal/core/ports/repositories"
	portssvc "github.com/propera/pdc_backend/internal/core/ports/services"
	"github.com/propera/pdc_backend/internal/dto"
	"github.com/propera/pdc_backend/internal/middleware"
)

var (
	ErrChequeDateMissing = errors.New("cheque date is required")
	ErrAmountNotPositive = errors.New("cheque amount must be positive")
)

const sweepPageSize = 500

// chequeService is the state machine engine: the single authority deciding
// whether a requested transition is legal and executing it transactionally.
type chequeService struct {
	chequeRepo       portsrepo.ChequeRepositoryWithTx
	bankAccountSvc   portssvc.BankAccountSvcFacade
	tenantSvc        portssvc.TenantSvcFacade
	chainSvc         portssvc.ChainSvcFacade
	dueWindowDays    int
	depositGraceDays int
}

// NewChequeService creates a new ChequeService.
func NewChequeService(chequeRepo portsrepo.ChequeRepositoryWithTx, bankAccountSvc portssvc.BankAccountSvcFacade, tenantSvc portssvc.TenantSvcFacade, chainSvc portssvc.ChainSvcFacade, dueWindowDays, depositGraceDays int) portssvc.ChequeSvcFacade {
	return &chequeService{
		chequeRepo:       chequeRepo,
		bankAccountSvc:   bankAccountSvc,
		tenantSvc:        tenantSvc,
		chainSvc:         chainSvc,
		dueWindowDays:    dueWindowDays,
		depositGraceDays: depositGraceDays,
	}
}

// Ensure chequeService implements the portssvc.ChequeSvcFacade interface
var _ portssvc.ChequeSvcFacade = (*chequeService)(nil)

// buildCheque validates one registration request and turns it into a domain
// cheque with its creation transition.
func (s *chequeService) buildCheque(req dto.RegisterChequeRequest, actorUserID string, now time.Time) (domain.Cheque, domain.ChequeTransition, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return domain.Cheque{}, domain.ChequeTransition{}, apperrors.NewValidationFieldError("amount", ErrAmountNotPositive.Error())
	}
	if req.ChequeDate.IsZero() {
		return domain.Cheque{}, domain.ChequeTransition{}, apperrors.NewValidationFieldError("chequeDate", ErrChequeDateMissing.Error())
	}

	requestID := req.RequestID
	if requestID == "" {
		requestID = uuid.NewString()
	}

	cheque := domain.Cheque{
		ChequeID:     uuid.NewString(),
		ChequeNumber: req.ChequeNumber,
		BankName:     req.BankName,
		Amount:       req.Amount,
		ChequeDate:   req.ChequeDate,
		TenantID:     req.TenantID,
		LeaseID:      req.LeaseID,
		InvoiceID:    req.InvoiceID,
		Status:       domain.InitialStatus(req.ChequeDate, now, s.dueWindowDays),
		Version:      1,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorUserID,
		},
	}

	transition := domain.ChequeTransition{
		TransitionID: uuid.NewString(),
		ChequeID:     cheque.ChequeID,
		FromStatus:   nil, // creation entry
		ToStatus:     cheque.Status,
		RequestID:    requestID,
		CreatedAt:    now,
		CreatedBy:    actorUserID,
	}

	return cheque, transition, nil
}

// RegisterCheque creates a cheque in RECEIVED, or directly in DUE when its date
// already falls within the due window.
func (s *chequeService) RegisterCheque(ctx context.Context, req dto.RegisterChequeRequest, actorUserID string) (*domain.Cheque, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.tenantSvc.EnsureExists(ctx, req.TenantID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	cheque, transition, err := s.buildCheque(req, actorUserID, now)
	if err != nil {
		return nil, err
	}

	if err := s.chequeRepo.CreateCheque(ctx, cheque, transition); err != nil {
		if errors.Is(err, apperrors.ErrDuplicateInstrument) {
			logger.Warn("Duplicate cheque registration rejected",
				slog.String("tenant_id", req.TenantID),
				slog.String("cheque_number", req.ChequeNumber),
				slog.String("bank_name", req.BankName))
		}
		return nil, err
	}

	logger.Info("Cheque registered",
		slog.String("cheque_id", cheque.ChequeID),
		slog.String("status", string(cheque.Status)))
	return &cheque, nil
}

// RegisterChequesBulk registers several cheques in one transaction, e.g. a year
// of rent cheques handed over at lease signing.
func (s *chequeService) RegisterChequesBulk(ctx context.Context, req dto.RegisterChequesBulkRequest, actorUserID string) ([]domain.Cheque, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(req.Cheques) == 0 {
		return nil, apperrors.NewValidationFieldError("cheques", "at least one cheque is required")
	}

	now := time.Now().UTC()
	cheques := make([]domain.Cheque, 0, len(req.Cheques))
	transitions := make([]domain.ChequeTransition, 0, len(req.Cheques))
	for i, chequeReq := range req.Cheques {
		if err := s.tenantSvc.EnsureExists(ctx, chequeReq.TenantID); err != nil {
			return nil, fmt.Errorf("cheque %d: %w", i, err)
		}
		cheque, transition, err := s.buildCheque(chequeReq, actorUserID, now)
		if err != nil {
			return nil, fmt.Errorf("cheque %d: %w", i, err)
		}
		cheques = append(cheques, cheque)
		transitions = append(transitions, transition)
	}

	if err := s.chequeRepo.CreateChequesBulk(ctx, cheques, transitions); err != nil {
		return nil, err
	}

	logger.Info("Cheques registered in bulk", slog.Int("count", len(cheques)))
	return cheques, nil
}

// GetChequeByID retrieves a specific cheque.
func (s *chequeService) GetChequeByID(ctx context.Context, chequeID string) (*domain.Cheque, error) {
	return s.chequeRepo.FindChequeByID(ctx, chequeID)
}

// GetChequeDetail retrieves a cheque with its full history and resolved chain.
func (s *chequeService) GetChequeDetail(ctx context.Context, chequeID string) (*domain.ChequeWithHistory, error) {
	cheque, err := s.chequeRepo.FindChequeByID(ctx, chequeID)
	if err != nil {
		return nil, err
	}

	transitions, err := s.chequeRepo.FindTransitionsByChequeID(ctx, chequeID)
	if err != nil {
		return nil, err
	}

	detail := &domain.ChequeWithHistory{
		Cheque:      *cheque,
		Transitions: transitions,
	}

	if cheque.OriginalChequeID != nil || cheque.ReplacementChequeID != nil {
		chain, err := s.chainSvc.GetReplacementChain(ctx, chequeID)
		if err != nil {
			return nil, err
		}
		detail.Chain = chain
	}

	return detail, nil
}

// ListCheques retrieves a paginated, filtered cheque listing.
func (s *chequeService) ListCheques(ctx context.Context, filter domain.ChequeFilter, limit int, nextToken *string) ([]domain.Cheque, *string, error) {
	for _, status := range filter.Statuses {
		if !domain.IsValidStatus(status) {
			return nil, nil, apperrors.NewValidationFieldError("status", "unknown status "+string(status))
		}
	}
	return s.chequeRepo.ListCheques(ctx, filter, limit, nextToken)
}

// applyTransition loads the cheque, answers idempotent retries, checks the
// transition table, applies mutate to a copy and writes it conditioned on the
// loaded version.
func (s *chequeService) applyTransition(ctx context.Context, chequeID string, to domain.ChequeStatus, requestID, notes, actorUserID string, mutate func(*domain.Cheque) error) (*domain.Cheque, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	cheque, err := s.chequeRepo.FindChequeByID(ctx, chequeID)
	if err != nil {
		return nil, err
	}

	if requestID == "" {
		requestID = uuid.NewString()
	} else {
		// A replayed request id is answered from the existing history row so the
		// retry observes the same outcome without a second write.
		existing, err := s.chequeRepo.FindTransitionByRequestID(ctx, chequeID, requestID)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		if existing != nil {
			if existing.ToStatus != to {
				return nil, apperrors.NewValidationFieldError("requestID", "request id was already used for a different transition")
			}
			logger.Info("Transition replay answered idempotently",
				slog.String("cheque_id", chequeID),
				slog.String("request_id", requestID))
			return cheque, nil
		}
	}

	if !domain.CanTransition(cheque.Status, to) {
		return nil, apperrors.NewIllegalTransitionError(string(cheque.Status), string(to))
	}

	now := time.Now().UTC()
	updated := *cheque
	updated.Status = to
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = actorUserID
	if mutate != nil {
		if err := mutate(&updated); err != nil {
			return nil, err
		}
	}

	fromStatus := cheque.Status
	transition := domain.ChequeTransition{
		TransitionID: uuid.NewString(),
		ChequeID:     chequeID,
		FromStatus:   &fromStatus,
		ToStatus:     to,
		Notes:        notes,
		RequestID:    requestID,
		CreatedAt:    now,
		CreatedBy:    actorUserID,
	}

	if err := s.chequeRepo.UpdateChequeStatus(ctx, updated, cheque.Version, transition); err != nil {
		if errors.Is(err, apperrors.ErrDuplicateRequest) {
			// Lost a race against our own retry; the transition is in place.
			return s.chequeRepo.FindChequeByID(ctx, chequeID)
		}
		return nil, err
	}
	updated.Version = cheque.Version + 1

	logger.Info("Cheque transitioned",
		slog.String("cheque_id", chequeID),
		slog.String("from", string(fromStatus)),
		slog.String("to", string(to)))
	return &updated, nil
}

// Deposit moves a DUE cheque to DEPOSITED against an ACTIVE bank account.
func (s *chequeService) Deposit(ctx context.Context, chequeID string, req dto.DepositChequeRequest, actorUserID string) (*domain.Cheque, error) {
	if req.BankAccountID == "" {
		return nil, apperrors.NewValidationFieldError("bankAccountID", "bank account is required for deposit")
	}

	account, err := s.bankAccountSvc.ResolveActive(ctx, req.BankAccountID)
	if err != nil {
		return nil, err
	}

	depositDate := time.Now().UTC()
	if req.DepositDate != nil {
		depositDate = req.DepositDate.UTC()
	}

	return s.applyTransition(ctx, chequeID, domain.StatusDeposited, req.RequestID, req.Notes, actorUserID, func(c *domain.Cheque) error {
		earliest := c.ChequeDate.AddDate(0, 0, -s.depositGraceDays)
		if depositDate.Before(earliest) {
			return apperrors.NewValidationFieldError("depositDate", fmt.Sprintf("deposit cannot be recorded more than %d days before the cheque date", s.depositGraceDays))
		}
		c.BankAccountID = account.BankAccountID
		c.DepositDate = &depositDate
		return nil
	})
}

// Clear moves a DEPOSITED cheque to the terminal CLEARED status.
func (s *chequeService) Clear(ctx context.Context, chequeID string, req dto.ClearChequeRequest, actorUserID string) (*domain.Cheque, error) {
	clearedDate := time.Now().UTC()
	if req.ClearedDate != nil {
		clearedDate = req.ClearedDate.UTC()
	}

	return s.applyTransition(ctx, chequeID, domain.StatusCleared, req.RequestID, req.Notes, actorUserID, func(c *domain.Cheque) error {
		c.ClearedDate = &clearedDate
		return nil
	})
}

// Bounce records a bank rejection of a DEPOSITED cheque.
func (s *chequeService) Bounce(ctx context.Context, chequeID string, req dto.BounceChequeRequest, actorUserID string) (*domain.Cheque, error) {
	if req.BounceReason == "" {
		return nil, apperrors.NewValidationFieldError("bounceReason", "bounce reason is required")
	}

	bouncedDate := time.Now().UTC()
	if req.BouncedDate != nil {
		bouncedDate = req.BouncedDate.UTC()
	}

	return s.applyTransition(ctx, chequeID, domain.StatusBounced, req.RequestID, req.BounceReason, actorUserID, func(c *domain.Cheque) error {
		c.BouncedDate = &bouncedDate
		c.BounceReason = req.BounceReason
		return nil
	})
}

// Replace mints a new instrument for a BOUNCED cheque and links both records
// atomically. The bounced original is frozen at REPLACED.
func (s *chequeService) Replace(ctx context.Context, chequeID string, req dto.ReplaceChequeRequest, actorUserID string) (*domain.Cheque, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	original, err := s.chequeRepo.FindChequeByID(ctx, chequeID)
	if err != nil {
		return nil, err
	}

	requestID := req.RequestID
	if requestID == "" {
		requestID = uuid.NewString()
	} else {
		existing, err := s.chequeRepo.FindTransitionByRequestID(ctx, chequeID, requestID)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		if existing != nil && existing.ToStatus == domain.StatusReplaced && original.ReplacementChequeID != nil {
			return s.chequeRepo.FindChequeByID(ctx, *original.ReplacementChequeID)
		}
	}

	if !domain.CanTransition(original.Status, domain.StatusReplaced) {
		return nil, apperrors.NewIllegalTransitionError(string(original.Status), string(domain.StatusReplaced))
	}
	if err := s.chainSvc.ValidateLinkTarget(ctx, chequeID); err != nil {
		return nil, err
	}

	amount := original.Amount
	if req.Amount != nil {
		amount = *req.Amount
	}

	now := time.Now().UTC()
	replacement, replacementTransition, err := s.buildCheque(dto.RegisterChequeRequest{
		ChequeNumber: req.ChequeNumber,
		BankName:     req.BankName,
		Amount:       amount,
		ChequeDate:   req.ChequeDate,
		TenantID:     original.TenantID,
		LeaseID:      original.LeaseID,
		InvoiceID:    original.InvoiceID,
	}, actorUserID, now)
	if err != nil {
		return nil, err
	}
	replacement.OriginalChequeID = &original.ChequeID

	updatedOriginal := *original
	updatedOriginal.Status = domain.StatusReplaced
	updatedOriginal.ReplacementChequeID = &replacement.ChequeID
	updatedOriginal.LastUpdatedAt = now
	updatedOriginal.LastUpdatedBy = actorUserID

	fromStatus := original.Status
	originalTransition := domain.ChequeTransition{
		TransitionID: uuid.NewString(),
		ChequeID:     original.ChequeID,
		FromStatus:   &fromStatus,
		ToStatus:     domain.StatusReplaced,
		Notes:        req.Notes,
		RequestID:    requestID,
		CreatedAt:    now,
		CreatedBy:    actorUserID,
	}

	if err := s.chequeRepo.LinkReplacement(ctx, updatedOriginal, original.Version, replacement, originalTransition, replacementTransition); err != nil {
		return nil, err
	}

	logger.Info("Cheque replaced",
		slog.String("original_cheque_id", original.ChequeID),
		slog.String("replacement_cheque_id", replacement.ChequeID))
	return &replacement, nil
}

// Withdraw returns a RECEIVED or DUE cheque to the tenant, optionally recording
// an alternate-payment settlement.
func (s *chequeService) Withdraw(ctx context.Context, chequeID string, req dto.WithdrawChequeRequest, actorUserID string) (*domain.Cheque, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Reason == "" {
		return nil, apperrors.NewValidationFieldError("reason", "withdrawal reason is required")
	}

	cheque, err := s.chequeRepo.FindChequeByID(ctx, chequeID)
	if err != nil {
		return nil, err
	}

	// Settlement input is validated before the transition so an invalid
	// settlement never leaves the cheque withdrawn without its trail.
	if req.Method != nil {
		if err := s.chainSvc.EnsureCanOpenSettlement(ctx, cheque.TenantID, *req.Method, req.TxnReference); err != nil {
			return nil, err
		}
	}

	withdrawn, err := s.applyTransition(ctx, chequeID, domain.StatusWithdrawn, req.RequestID, req.Reason, actorUserID, func(c *domain.Cheque) error {
		now := time.Now().UTC()
		c.WithdrawalDate = &now
		c.WithdrawReason = req.Reason
		return nil
	})
	if err != nil {
		return nil, err
	}

	if req.Method != nil {
		settlement, err := s.chainSvc.RecordWithdrawalSettlement(ctx, *withdrawn, *req.Method, req.TxnReference, actorUserID)
		if err != nil {
			logger.Error("Cheque withdrawn but settlement record failed",
				slog.String("cheque_id", chequeID),
				slog.String("error", err.Error()))
			return nil, err
		}
		logger.Info("Withdrawal settlement recorded",
			slog.String("cheque_id", chequeID),
			slog.String("settlement_id", settlement.SettlementID),
			slog.String("method", string(settlement.Method)))
	}

	return withdrawn, nil
}

// Cancel voids a RECEIVED cheque. A DUE cheque close to its date must go through
// withdrawal instead.
func (s *chequeService) Cancel(ctx context.Context, chequeID string, req dto.CancelChequeRequest, actorUserID string) (*domain.Cheque, error) {
	return s.applyTransition(ctx, chequeID, domain.StatusCancelled, req.RequestID, req.Notes, actorUserID, nil)
}

// PromoteDueCheques promotes RECEIVED cheques whose cheque date has entered the
// due window to DUE. It re-checks each row's status before writing, so running it
// repeatedly, or resuming after a partial failure, never double-transitions.
func (s *chequeService) PromoteDueCheques(ctx context.Context, asOf time.Time) (int, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	boundary := asOf.UTC().AddDate(0, 0, s.dueWindowDays)
	promoted := 0

	for {
		if err := ctx.Err(); err != nil {
			return promoted, err
		}

		candidates, err := s.chequeRepo.ListSweepCandidates(ctx, boundary, sweepPageSize)
		if err != nil {
			return promoted, err
		}
		if len(candidates) == 0 {
			break
		}

		progressed := 0
		for _, cheque := range candidates {
			if cheque.Status != domain.StatusReceived {
				continue
			}

			fromStatus := cheque.Status
			now := time.Now().UTC()
			updated := cheque
			updated.Status = domain.StatusDue
			updated.LastUpdatedAt = now
			updated.LastUpdatedBy = domain.SweepActorID

			transition := domain.ChequeTransition{
				TransitionID: uuid.NewString(),
				ChequeID:     cheque.ChequeID,
				FromStatus:   &fromStatus,
				ToStatus:     domain.StatusDue,
				// One RECEIVED->DUE ever happens per cheque, so a deterministic
				// request id makes re-runs collide instead of duplicating history.
				RequestID: "due-sweep:" + cheque.ChequeID,
				CreatedAt: now,
				CreatedBy: domain.SweepActorID,
			}

			err := s.chequeRepo.UpdateChequeStatus(ctx, updated, cheque.Version, transition)
			switch {
			case err == nil:
				promoted++
				progressed++
			case errors.Is(err, apperrors.ErrConcurrentModification), errors.Is(err, apperrors.ErrDuplicateRequest):
				// Someone else moved this cheque; the next pass re-evaluates it.
				logger.Debug("Sweep skipped contended cheque", slog.String("cheque_id", cheque.ChequeID))
			default:
				return promoted, err
			}
		}

		if progressed == 0 {
			// Nothing in this page could be promoted; stop rather than spin.
			break
		}
		if len(candidates) < sweepPageSize {
			break
		}
	}

	logger.Info("Due-window sweep finished", slog.Int("promoted", promoted), slog.Time("as_of", asOf))
	return promoted, nil
}
