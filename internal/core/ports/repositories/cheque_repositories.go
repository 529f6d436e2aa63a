package repositories

import (
	"context"
	"time"

	"github.com/propera/pdc_backend/internal/core/domain"
)

// ChequeReader defines read operations for cheque data
type ChequeReader interface {
	// FindChequeByID retrieves a specific cheque by its unique identifier.
	FindChequeByID(ctx context.Context, chequeID string) (*domain.Cheque, error)

	// ListCheques retrieves a paginated, filtered list of cheques using token-based
	// pagination. It returns the cheques, a token for the next page, and an error.
	ListCheques(ctx context.Context, filter domain.ChequeFilter, limit int, nextToken *string) ([]domain.Cheque, *string, error)

	// ListSweepCandidates retrieves RECEIVED cheques whose cheque date falls on or
	// before the given boundary date. Used by the due-window sweep.
	ListSweepCandidates(ctx context.Context, dueOnOrBefore time.Time, limit int) ([]domain.Cheque, error)
}

// ChequeWriter defines write operations for cheque data. Every status write is
// conditioned on the cheque's optimistic-concurrency version and is atomic with
// its history append.
type ChequeWriter interface {
	// CreateCheque inserts a cheque together with its creation transition entry in
	// one transaction. Returns apperrors.ErrDuplicateInstrument when a non-terminal
	// cheque with the same (tenant, number, bank) identity exists.
	CreateCheque(ctx context.Context, cheque domain.Cheque, transition domain.ChequeTransition) error

	// CreateChequesBulk inserts several cheques and their creation transitions in
	// one transaction; all succeed or none do.
	CreateChequesBulk(ctx context.Context, cheques []domain.Cheque, transitions []domain.ChequeTransition) error

	// UpdateChequeStatus writes the cheque's new status and stage fields plus the
	// transition row atomically, conditioned on expectedVersion. Returns
	// apperrors.ErrConcurrentModification on a version mismatch and
	// apperrors.ErrDuplicateRequest when the transition's request id was already
	// applied to this cheque.
	UpdateChequeStatus(ctx context.Context, cheque domain.Cheque, expectedVersion int64, transition domain.ChequeTransition) error

	// LinkReplacement atomically inserts the replacement cheque with its creation
	// transition, marks the original REPLACED with its forward link, and appends
	// the original's transition row.
	LinkReplacement(ctx context.Context, original domain.Cheque, expectedVersion int64, replacement domain.Cheque, originalTransition, replacementTransition domain.ChequeTransition) error
}

// TransitionReader defines read operations for the cheque status history
type TransitionReader interface {
	// FindTransitionsByChequeID retrieves the full ordered history for a cheque.
	FindTransitionsByChequeID(ctx context.Context, chequeID string) ([]domain.ChequeTransition, error)

	// FindTransitionByRequestID retrieves the transition a given request id already
	// produced for a cheque, if any. Used to answer idempotent retries.
	FindTransitionByRequestID(ctx context.Context, chequeID, requestID string) (*domain.ChequeTransition, error)
}

// ChequeRepositoryFacade combines all cheque-related repository interfaces
type ChequeRepositoryFacade interface {
	ChequeReader
	ChequeWriter
	TransitionReader
}

// ChequeRepositoryWithTx extends ChequeRepositoryFacade with transaction capabilities
type ChequeRepositoryWithTx interface {
	ChequeRepositoryFacade
	TransactionManager
}
