package domain

import "github.com/shopspring/decimal"

// SettlementMethod is how a tenant is compensated for a withdrawn cheque.
type SettlementMethod string

const (
	MethodBankTransfer SettlementMethod = "BANK_TRANSFER"
	MethodCash         SettlementMethod = "CASH"
	MethodNewCheque    SettlementMethod = "NEW_CHEQUE"
)

// SettlementStatus tracks whether a NEW_CHEQUE settlement has been linked to its
// registered replacement instrument yet.
type SettlementStatus string

const (
	SettlementSettled     SettlementStatus = "SETTLED"
	SettlementPendingLink SettlementStatus = "PENDING_LINK"
)

// WithdrawalSettlement records the alternate payment substituted for a withdrawn
// cheque. Created alongside the WITHDRAWN transition; at most one settlement per
// tenant may sit in PENDING_LINK at a time.
type WithdrawalSettlement struct {
	SettlementID string           `json:"settlementID"` // Primary key (UUID)
	ChequeID     string           `json:"chequeID"`     // The withdrawn cheque
	TenantID     string           `json:"tenantID"`
	Method       SettlementMethod `json:"method"`
	Amount       decimal.Decimal  `json:"amount"`
	Status       SettlementStatus `json:"status"`
	TxnReference string           `json:"txnReference,omitempty"` // Required for BANK_TRANSFER
	NewChequeID  *string          `json:"newChequeID,omitempty"`  // Set once a NEW_CHEQUE link completes
	AuditFields
}
