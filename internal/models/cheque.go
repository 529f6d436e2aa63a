package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ChequeStatus mirrors the domain status enum for DB storage.
type ChequeStatus string

const (
	StatusReceived  ChequeStatus = "RECEIVED"
	StatusDue       ChequeStatus = "DUE"
	StatusDeposited ChequeStatus = "DEPOSITED"
	StatusCleared   ChequeStatus = "CLEARED"
	StatusBounced   ChequeStatus = "BOUNCED"
	StatusCancelled ChequeStatus = "CANCELLED"
	StatusReplaced  ChequeStatus = "REPLACED"
	StatusWithdrawn ChequeStatus = "WITHDRAWN"
)

// Cheque is the DB representation of a post-dated cheque instrument.
// Note: link columns use pointers for nullable foreign keys.
type Cheque struct {
	ChequeID     string          `db:"cheque_id"`
	ChequeNumber string          `db:"cheque_number"`
	BankName     string          `db:"bank_name"`
	Amount       decimal.Decimal `db:"amount"`
	ChequeDate   time.Time       `db:"cheque_date"`
	TenantID     string          `db:"tenant_id"`
	LeaseID      string          `db:"lease_id"`   // Nullable
	InvoiceID    string          `db:"invoice_id"` // Nullable

	Status        ChequeStatus `db:"status"`
	BankAccountID string       `db:"bank_account_id"` // Nullable until deposit

	DepositDate    *time.Time `db:"deposit_date"`
	ClearedDate    *time.Time `db:"cleared_date"`
	BouncedDate    *time.Time `db:"bounced_date"`
	BounceReason   string     `db:"bounce_reason"`
	WithdrawalDate *time.Time `db:"withdrawal_date"`
	WithdrawReason string     `db:"withdraw_reason"`

	ReplacementChequeID *string `db:"replacement_cheque_id"` // Nullable
	OriginalChequeID    *string `db:"original_cheque_id"`    // Nullable

	Version int64 `db:"version"` // Optimistic-concurrency stamp

	AuditFields
}
