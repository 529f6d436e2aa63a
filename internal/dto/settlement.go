package dto

import (
	"time"

	"github.com/propera/pdc_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CompleteSettlementLinkRequest finishes a NEW_CHEQUE settlement by supplying the
// id of the separately registered replacement cheque.
type CompleteSettlementLinkRequest struct {
	NewChequeID string `json:"newChequeID" binding:"required"`
}

// SettlementResponse mirrors domain.WithdrawalSettlement for API consumers.
type SettlementResponse struct {
	SettlementID string                  `json:"settlementID"`
	ChequeID     string                  `json:"chequeID"`
	TenantID     string                  `json:"tenantID"`
	Method       domain.SettlementMethod `json:"method"`
	Amount       decimal.Decimal         `json:"amount"`
	Status       domain.SettlementStatus `json:"status"`
	TxnReference string                  `json:"txnReference,omitempty"`
	NewChequeID  *string                 `json:"newChequeID,omitempty"`
	CreatedAt    time.Time               `json:"createdAt"`
	CreatedBy    string                  `json:"createdBy"`
}

// ToSettlementResponse converts a domain settlement to its API representation.
func ToSettlementResponse(s domain.WithdrawalSettlement) SettlementResponse {
	return SettlementResponse{
		SettlementID: s.SettlementID,
		ChequeID:     s.ChequeID,
		TenantID:     s.TenantID,
		Method:       s.Method,
		Amount:       s.Amount,
		Status:       s.Status,
		TxnReference: s.TxnReference,
		NewChequeID:  s.NewChequeID,
		CreatedAt:    s.CreatedAt,
		CreatedBy:    s.CreatedBy,
	}
}
