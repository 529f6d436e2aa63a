package domain

import "time"

// ChequeSort selects the ordering of cheque listings.
type ChequeSort string

const (
	SortByChequeDate ChequeSort = "CHEQUE_DATE"
	SortByAmount     ChequeSort = "AMOUNT"
)

// ChequeFilter narrows cheque listings. Zero-valued fields are ignored.
type ChequeFilter struct {
	TenantID  string
	Statuses  []ChequeStatus
	BankName  string
	LeaseID   string
	InvoiceID string
	DateFrom  *time.Time // Inclusive cheque-date lower bound
	DateTo    *time.Time // Inclusive cheque-date upper bound
	SortBy    ChequeSort // Defaults to SortByChequeDate
}
