package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ChequeStatus is the single source of truth for where a post-dated cheque sits in
// its lifecycle. Legal movements between statuses are defined in lifecycle.go.
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

// Cheque represents a post-dated cheque held as a rent payment guarantee.
// Identity fields (number, bank, amount) are immutable after creation; the
// replacement flow mints a new instrument rather than mutating this one.
type Cheque struct {
	ChequeID     string          `json:"chequeID"`     // Primary key (UUID)
	ChequeNumber string          `json:"chequeNumber"` // Human-readable number printed on the cheque
	BankName     string          `json:"bankName"`     // Issuing bank
	Amount       decimal.Decimal `json:"amount"`       // Positive, fixed currency
	ChequeDate   time.Time       `json:"chequeDate"`   // Date the cheque becomes payable
	TenantID     string          `json:"tenantID"`     // FK -> tenants.tenant_id (NON-NULL)
	LeaseID      string          `json:"leaseID"`      // Nullable lease linkage
	InvoiceID    string          `json:"invoiceID"`    // Nullable invoice linkage, display only

	Status        ChequeStatus `json:"status"`
	BankAccountID string       `json:"bankAccountID"` // Deposit destination, set on deposit

	// Stage dates are set exactly once when the corresponding transition happens
	// and never cleared afterwards.
	DepositDate    *time.Time `json:"depositDate,omitempty"`
	ClearedDate    *time.Time `json:"clearedDate,omitempty"`
	BouncedDate    *time.Time `json:"bouncedDate,omitempty"`
	BounceReason   string     `json:"bounceReason,omitempty"`
	WithdrawalDate *time.Time `json:"withdrawalDate,omitempty"`
	WithdrawReason string     `json:"withdrawReason,omitempty"`

	// Replacement linkage. ReplacementChequeID points forward to the instrument
	// that superseded this one; OriginalChequeID points back when this instrument
	// itself is a replacement. A chain is strictly linear.
	ReplacementChequeID *string `json:"replacementChequeID,omitempty"`
	OriginalChequeID    *string `json:"originalChequeID,omitempty"`

	// Version is the optimistic-concurrency stamp. Writes are conditioned on it.
	Version int64 `json:"version"`

	AuditFields
}

// ChequeWithHistory is the per-instrument detail view: the cheque, its full
// transition log and the resolved replacement chain.
type ChequeWithHistory struct {
	Cheque      Cheque             `json:"cheque"`
	Transitions []ChequeTransition `json:"transitions"`
	Chain       []Cheque           `json:"chain,omitempty"`
}
