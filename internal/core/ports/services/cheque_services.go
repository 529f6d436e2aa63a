package services

import (
	"context"
	"time"

	"github.com/propera/pdc_backend/internal/core/domain"
	"github.com/propera/pdc_backend/internal/dto"
)

// ChequeReaderSvc defines read operations for cheque data
type ChequeReaderSvc interface {
	// GetChequeByID retrieves a specific cheque by its unique identifier.
	GetChequeByID(ctx context.Context, chequeID string) (*domain.Cheque, error)

	// GetChequeDetail retrieves a cheque with its full transition history and
	// resolved replacement chain.
	GetChequeDetail(ctx context.Context, chequeID string) (*domain.ChequeWithHistory, error)

	// ListCheques retrieves a paginated, filtered cheque listing.
	ListCheques(ctx context.Context, filter domain.ChequeFilter, limit int, nextToken *string) ([]domain.Cheque, *string, error)
}

// ChequeLifecycleSvc defines the transition operations of the state machine
// engine. Every operation is atomic, guarded by the transition table, and
// idempotent under retry for the same request id.
type ChequeLifecycleSvc interface {
	// RegisterCheque creates a cheque in RECEIVED, or directly in DUE when its
	// cheque date already falls within the due window.
	RegisterCheque(ctx context.Context, req dto.RegisterChequeRequest, actorUserID string) (*domain.Cheque, error)

	// RegisterChequesBulk registers several cheques in one transaction.
	RegisterChequesBulk(ctx context.Context, req dto.RegisterChequesBulkRequest, actorUserID string) ([]domain.Cheque, error)

	// Deposit moves a DUE cheque to DEPOSITED against an ACTIVE bank account.
	Deposit(ctx context.Context, chequeID string, req dto.DepositChequeRequest, actorUserID string) (*domain.Cheque, error)

	// Clear moves a DEPOSITED cheque to the terminal CLEARED status.
	Clear(ctx context.Context, chequeID string, req dto.ClearChequeRequest, actorUserID string) (*domain.Cheque, error)

	// Bounce records a bank rejection of a DEPOSITED cheque.
	Bounce(ctx context.Context, chequeID string, req dto.BounceChequeRequest, actorUserID string) (*domain.Cheque, error)

	// Replace mints a new instrument for a BOUNCED cheque and links both records
	// atomically. Returns the replacement.
	Replace(ctx context.Context, chequeID string, req dto.ReplaceChequeRequest, actorUserID string) (*domain.Cheque, error)

	// Withdraw returns a RECEIVED or DUE cheque to the tenant, optionally
	// recording an alternate-payment settlement.
	Withdraw(ctx context.Context, chequeID string, req dto.WithdrawChequeRequest, actorUserID string) (*domain.Cheque, error)

	// Cancel voids a RECEIVED cheque.
	Cancel(ctx context.Context, chequeID string, req dto.CancelChequeRequest, actorUserID string) (*domain.Cheque, error)

	// PromoteDueCheques is the due-window sweep: it promotes RECEIVED cheques
	// whose cheque date has entered the window to DUE. Safe to run repeatedly.
	// Returns the number of cheques promoted.
	PromoteDueCheques(ctx context.Context, asOf time.Time) (int, error)
}

// ChequeSvcFacade combines all cheque-related service interfaces
type ChequeSvcFacade interface {
	ChequeReaderSvc
	ChequeLifecycleSvc
}
