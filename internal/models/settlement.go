package models

import "github.com/shopspring/decimal"

// WithdrawalSettlement is the DB representation of the alternate payment recorded
// when a cheque is withdrawn.
type WithdrawalSettlement struct {
	SettlementID string          `db:"settlement_id"`
	ChequeID     string          `db:"cheque_id"`
	TenantID     string          `db:"tenant_id"`
	Method       string          `db:"method"`
	Amount       decimal.Decimal `db:"amount"`
	Status       string          `db:"status"`
	TxnReference string          `db:"txn_reference"` // Nullable
	NewChequeID  *string         `db:"new_cheque_id"` // Nullable
	AuditFields
}
