package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BucketTotal pairs a count of instruments with their summed amount.
type BucketTotal struct {
	Count  int             `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

// DashboardSummary is the portfolio-wide KPI block for dashboards. Computed from
// current committed state; empty portfolios yield zeroed values, never an error.
type DashboardSummary struct {
	AsOf                time.Time   `json:"asOf"`
	DueThisWeek         BucketTotal `json:"dueThisWeek"`  // RECEIVED+DUE, cheque date within 7 days
	DueThisMonth        BucketTotal `json:"dueThisMonth"` // RECEIVED+DUE, cheque date within 30 days
	Deposited           BucketTotal `json:"deposited"`
	Outstanding         BucketTotal `json:"outstanding"` // RECEIVED+DUE+DEPOSITED
	RecentBounces       int         `json:"recentBounces"` // Bounced in the trailing 30 days
	PendingLinkCount    int         `json:"pendingLinkCount"`
}

// TenantPDCStats summarises one tenant's cheque history. BounceRate is
// bounced/(cleared+bounced); nil when that denominator is zero, so the rate is
// never fabricated from in-flight instruments.
type TenantPDCStats struct {
	TenantID   string           `json:"tenantID"`
	Total      int              `json:"total"`
	Cleared    int              `json:"cleared"`
	Bounced    int              `json:"bounced"`
	Pending    int              `json:"pending"` // RECEIVED+DUE+DEPOSITED
	BounceRate *decimal.Decimal `json:"bounceRate,omitempty"`
}

// AgingBucket groups RECEIVED and DUE instruments by days until their cheque date.
type AgingBucket struct {
	Label   string          `json:"label"` // "OVERDUE", "0-7", "8-30", "31+"
	MinDays *int            `json:"minDays,omitempty"`
	MaxDays *int            `json:"maxDays,omitempty"`
	Count   int             `json:"count"`
	Amount  decimal.Decimal `json:"amount"`
}

// AgingRow is one RECEIVED or DUE instrument's contribution to the aging view.
type AgingRow struct {
	ChequeID     string
	Amount       decimal.Decimal
	DaysUntilDue int
}

// DateRange is a caller-supplied reporting window, inclusive on both ends.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Valid reports whether the window end is not before its start.
func (r DateRange) Valid() bool {
	return !r.End.Before(r.Start)
}
