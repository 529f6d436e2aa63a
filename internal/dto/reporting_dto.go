package dto

import (
	"time"

	"github.com/propera/pdc_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DashboardSummaryResponse mirrors domain.DashboardSummary.
type DashboardSummaryResponse struct {
	AsOf             time.Time          `json:"asOf"`
	DueThisWeek      domain.BucketTotal `json:"dueThisWeek"`
	DueThisMonth     domain.BucketTotal `json:"dueThisMonth"`
	Deposited        domain.BucketTotal `json:"deposited"`
	Outstanding      domain.BucketTotal `json:"outstanding"`
	RecentBounces    int                `json:"recentBounces"`
	PendingLinkCount int                `json:"pendingLinkCount"`
}

// TenantStatsRequest carries the optional reporting window of a tenant stats query.
type TenantStatsRequest struct {
	From *time.Time `form:"from" time_format:"2006-01-02"`
	To   *time.Time `form:"to" time_format:"2006-01-02"`
}

// TenantStatsResponse mirrors domain.TenantPDCStats.
type TenantStatsResponse struct {
	TenantID   string           `json:"tenantID"`
	Total      int              `json:"total"`
	Cleared    int              `json:"cleared"`
	Bounced    int              `json:"bounced"`
	Pending    int              `json:"pending"`
	BounceRate *decimal.Decimal `json:"bounceRate"`
}

// AgingResponse is the bucketed aging view.
type AgingResponse struct {
	AsOf    time.Time            `json:"asOf"`
	Buckets []domain.AgingBucket `json:"buckets"`
}
