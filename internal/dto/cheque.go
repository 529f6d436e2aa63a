package dto

import (
	"time"

	"github.com/propera/pdc_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RegisterChequeRequest defines the data needed to register a new post-dated cheque.
type RegisterChequeRequest struct {
	ChequeNumber string          `json:"chequeNumber" binding:"required"`
	BankName     string          `json:"bankName" binding:"required"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	ChequeDate   time.Time       `json:"chequeDate" binding:"required"`
	TenantID     string          `json:"tenantID" binding:"required"`
	LeaseID      string          `json:"leaseID"`   // Optional
	InvoiceID    string          `json:"invoiceID"` // Optional
	RequestID    string          `json:"requestID"` // Optional idempotency key; generated when absent
}

// RegisterChequesBulkRequest registers several cheques at once, e.g. a year of
// rent cheques handed over at lease signing.
type RegisterChequesBulkRequest struct {
	Cheques []RegisterChequeRequest `json:"cheques" binding:"required,min=1,dive"`
}

// DepositChequeRequest defines the data needed to deposit a DUE cheque.
type DepositChequeRequest struct {
	BankAccountID string     `json:"bankAccountID" binding:"required"`
	DepositDate   *time.Time `json:"depositDate"` // Defaults to today
	Notes         string     `json:"notes"`
	RequestID     string     `json:"requestID"`
}

// ClearChequeRequest defines the data needed to mark a deposited cheque cleared.
type ClearChequeRequest struct {
	ClearedDate *time.Time `json:"clearedDate"` // Defaults to today
	Notes       string     `json:"notes"`
	RequestID   string     `json:"requestID"`
}

// BounceChequeRequest defines the data needed to record a bank rejection.
type BounceChequeRequest struct {
	BounceReason string     `json:"bounceReason" binding:"required"`
	BouncedDate  *time.Time `json:"bouncedDate"` // Defaults to today
	RequestID    string     `json:"requestID"`
}

// ReplaceChequeRequest defines the replacement instrument minted for a bounced
// cheque. Amount defaults to the original's when omitted.
type ReplaceChequeRequest struct {
	ChequeNumber string           `json:"chequeNumber" binding:"required"`
	BankName     string           `json:"bankName" binding:"required"`
	ChequeDate   time.Time        `json:"chequeDate" binding:"required"`
	Amount       *decimal.Decimal `json:"amount"`
	Notes        string           `json:"notes"`
	RequestID    string           `json:"requestID"`
}

// WithdrawChequeRequest defines the data needed to withdraw an un-deposited cheque.
type WithdrawChequeRequest struct {
	Reason       string                   `json:"reason" binding:"required"`
	Method       *domain.SettlementMethod `json:"method" binding:"omitempty,oneof=BANK_TRANSFER CASH NEW_CHEQUE"`
	TxnReference string                   `json:"txnReference"` // Required when method is BANK_TRANSFER
	RequestID    string                   `json:"requestID"`
}

// CancelChequeRequest voids a RECEIVED cheque.
type CancelChequeRequest struct {
	Notes     string `json:"notes"`
	RequestID string `json:"requestID"`
}

// ListChequesRequest carries the query-string filters of a cheque listing.
type ListChequesRequest struct {
	TenantID  string     `form:"tenantID"`
	Status    []string   `form:"status"`
	BankName  string     `form:"bankName"`
	LeaseID   string     `form:"leaseID"`
	InvoiceID string     `form:"invoiceID"`
	DateFrom  *time.Time `form:"dateFrom" time_format:"2006-01-02"`
	DateTo    *time.Time `form:"dateTo" time_format:"2006-01-02"`
	SortBy    string     `form:"sortBy" binding:"omitempty,oneof=CHEQUE_DATE AMOUNT"`
	Limit     int        `form:"limit"`
	NextToken string     `form:"nextToken"`
}

// ChequeResponse mirrors domain.Cheque for API consumers.
type ChequeResponse struct {
	ChequeID            string              `json:"chequeID"`
	ChequeNumber        string              `json:"chequeNumber"`
	BankName            string              `json:"bankName"`
	Amount              decimal.Decimal     `json:"amount"`
	ChequeDate          time.Time           `json:"chequeDate"`
	TenantID            string              `json:"tenantID"`
	LeaseID             string              `json:"leaseID,omitempty"`
	InvoiceID           string              `json:"invoiceID,omitempty"`
	Status              domain.ChequeStatus `json:"status"`
	BankAccountID       string              `json:"bankAccountID,omitempty"`
	DepositDate         *time.Time          `json:"depositDate,omitempty"`
	ClearedDate         *time.Time          `json:"clearedDate,omitempty"`
	BouncedDate         *time.Time          `json:"bouncedDate,omitempty"`
	BounceReason        string              `json:"bounceReason,omitempty"`
	WithdrawalDate      *time.Time          `json:"withdrawalDate,omitempty"`
	WithdrawReason      string              `json:"withdrawReason,omitempty"`
	ReplacementChequeID *string             `json:"replacementChequeID,omitempty"`
	OriginalChequeID    *string             `json:"originalChequeID,omitempty"`
	DaysUntilDue        int                 `json:"daysUntilDue"`
	CreatedAt           time.Time           `json:"createdAt"`
	CreatedBy           string              `json:"createdBy"`
	LastUpdatedAt       time.Time           `json:"lastUpdatedAt"`
	LastUpdatedBy       string              `json:"lastUpdatedBy"`
}

// ListChequesResponse is one page of a cheque listing.
type ListChequesResponse struct {
	Cheques   []ChequeResponse `json:"cheques"`
	NextToken *string          `json:"nextToken,omitempty"`
}

// TransitionResponse mirrors one history entry.
type TransitionResponse struct {
	FromStatus *domain.ChequeStatus `json:"fromStatus"`
	ToStatus   domain.ChequeStatus  `json:"toStatus"`
	Notes      string               `json:"notes,omitempty"`
	CreatedAt  time.Time            `json:"createdAt"`
	CreatedBy  string               `json:"createdBy"`
}

// ChequeDetailResponse is the per-instrument view: cheque, history and chain.
type ChequeDetailResponse struct {
	Cheque      ChequeResponse       `json:"cheque"`
	Transitions []TransitionResponse `json:"transitions"`
	Chain       []ChequeResponse     `json:"chain,omitempty"`
}

// ToChequeResponse converts a domain.Cheque to its API representation.
func ToChequeResponse(c domain.Cheque, now time.Time) ChequeResponse {
	return ChequeResponse{
		ChequeID:            c.ChequeID,
		ChequeNumber:        c.ChequeNumber,
		BankName:            c.BankName,
		Amount:              c.Amount,
		ChequeDate:          c.ChequeDate,
		TenantID:            c.TenantID,
		LeaseID:             c.LeaseID,
		InvoiceID:           c.InvoiceID,
		Status:              c.Status,
		BankAccountID:       c.BankAccountID,
		DepositDate:         c.DepositDate,
		ClearedDate:         c.ClearedDate,
		BouncedDate:         c.BouncedDate,
		BounceReason:        c.BounceReason,
		WithdrawalDate:      c.WithdrawalDate,
		WithdrawReason:      c.WithdrawReason,
		ReplacementChequeID: c.ReplacementChequeID,
		OriginalChequeID:    c.OriginalChequeID,
		DaysUntilDue:        domain.DaysUntilDue(c.ChequeDate, now),
		CreatedAt:           c.CreatedAt,
		CreatedBy:           c.CreatedBy,
		LastUpdatedAt:       c.LastUpdatedAt,
		LastUpdatedBy:       c.LastUpdatedBy,
	}
}

// ToChequeResponseSlice converts a slice of domain cheques.
func ToChequeResponseSlice(cs []domain.Cheque, now time.Time) []ChequeResponse {
	out := make([]ChequeResponse, len(cs))
	for i, c := range cs {
		out[i] = ToChequeResponse(c, now)
	}
	return out
}

// ToTransitionResponseSlice converts a slice of domain transitions.
func ToTransitionResponseSlice(ts []domain.ChequeTransition) []TransitionResponse {
	out := make([]TransitionResponse, len(ts))
	for i, t := range ts {
		out[i] = TransitionResponse{
			FromStatus: t.FromStatus,
			ToStatus:   t.ToStatus,
			Notes:      t.Notes,
			CreatedAt:  t.CreatedAt,
			CreatedBy:  t.CreatedBy,
		}
	}
	return out
}
