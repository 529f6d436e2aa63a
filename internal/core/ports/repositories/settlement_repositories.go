package repositories

import (
	"context"

	"github.com/propera/pdc_backend/internal/core/domain"
)

// SettlementReader defines read operations for withdrawal settlements
type SettlementReader interface {
	// FindSettlementByID retrieves a settlement by its unique identifier.
	FindSettlementByID(ctx context.Context, settlementID string) (*domain.WithdrawalSettlement, error)

	// FindSettlementByChequeID retrieves the settlement recorded for a withdrawn
	// cheque, if any.
	FindSettlementByChequeID(ctx context.Context, chequeID string) (*domain.WithdrawalSettlement, error)

	// CountPendingLinkByTenant counts settlements in PENDING_LINK for a tenant.
	CountPendingLinkByTenant(ctx context.Context, tenantID string) (int, error)

	// ListPendingLinkSettlements retrieves all PENDING_LINK settlements, surfaced
	// to dashboards as open items.
	ListPendingLinkSettlements(ctx context.Context) ([]domain.WithdrawalSettlement, error)
}

// SettlementWriter defines write operations for withdrawal settlements
type SettlementWriter interface {
	// CreateSettlement inserts a new settlement record.
	CreateSettlement(ctx context.Context, settlement domain.WithdrawalSettlement) error

	// CompleteSettlementLink sets the new cheque id on a PENDING_LINK settlement
	// and marks it SETTLED.
	CompleteSettlementLink(ctx context.Context, settlementID, newChequeID, updatedBy string) error
}

// SettlementRepositoryFacade combines settlement repository interfaces
type SettlementRepositoryFacade interface {
	SettlementReader
	SettlementWriter
}
