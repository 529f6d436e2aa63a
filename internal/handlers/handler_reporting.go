package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/propera/pdc_backend/internal/core/domain"
	portssvc "github.com/propera/pdc_backend/internal/core/ports/services"
	"github.com/propera/pdc_backend/internal/dto"
	"github.com/propera/pdc_backend/internal/middleware"
)

// reportingHandler handles HTTP requests for dashboard and aging views.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(reportingService portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: reportingService}
}

// getDashboard godoc
// @Summary Portfolio dashboard summary
// @Description Computes the portfolio KPI block from current committed state
// @Tags reports
// @Produce  json
// @Success 200 {object} dto.DashboardSummaryResponse
// @Failure 500 {object} map[string]string "Failed to compute summary"
// @Router /reports/dashboard [get]
func (h *reportingHandler) getDashboard(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	summary, err := h.reportingService.GetDashboardSummary(c.Request.Context(), time.Now().UTC())
	if err != nil {
		respondWithError(c, logger, err, "Failed to compute dashboard summary")
		return
	}

	c.JSON(http.StatusOK, dto.DashboardSummaryResponse{
		AsOf:             summary.AsOf,
		DueThisWeek:      summary.DueThisWeek,
		DueThisMonth:     summary.DueThisMonth,
		Deposited:        summary.Deposited,
		Outstanding:      summary.Outstanding,
		RecentBounces:    summary.RecentBounces,
		PendingLinkCount: summary.PendingLinkCount,
	})
}

// getAging godoc
// @Summary Aging view of upcoming cheques
// @Description Groups RECEIVED and DUE cheques by days until their cheque date
// @Tags reports
// @Produce  json
// @Success 200 {object} dto.AgingResponse
// @Failure 500 {object} map[string]string "Failed to compute aging"
// @Router /reports/aging [get]
func (h *reportingHandler) getAging(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	asOf := time.Now().UTC()
	buckets, err := h.reportingService.GetAgingBuckets(c.Request.Context(), asOf)
	if err != nil {
		respondWithError(c, logger, err, "Failed to compute aging buckets")
		return
	}

	c.JSON(http.StatusOK, dto.AgingResponse{AsOf: asOf, Buckets: buckets})
}

// getTenantStats godoc
// @Summary Per-tenant cheque statistics
// @Description Computes one tenant's counts and bounce rate over an optional window
// @Tags reports
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   from query string false "Window start (YYYY-MM-DD)"
// @Param   to query string false "Window end (YYYY-MM-DD)"
// @Success 200 {object} dto.TenantStatsResponse
// @Failure 400 {object} map[string]string "Window end precedes start"
// @Failure 404 {object} map[string]string "Tenant not found"
// @Router /reports/tenants/{tenantID} [get]
func (h *reportingHandler) getTenantStats(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenantID")

	var req dto.TenantStatsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	var window *domain.DateRange
	if req.From != nil || req.To != nil {
		window = &domain.DateRange{}
		if req.From != nil {
			window.Start = *req.From
		}
		if req.To != nil {
			window.End = *req.To
		} else {
			window.End = time.Now().UTC()
		}
	}

	stats, err := h.reportingService.GetTenantStats(c.Request.Context(), tenantID, window)
	if err != nil {
		respondWithError(c, logger, err, "Failed to compute tenant stats")
		return
	}

	c.JSON(http.StatusOK, dto.TenantStatsResponse{
		TenantID:   stats.TenantID,
		Total:      stats.Total,
		Cleared:    stats.Cleared,
		Bounced:    stats.Bounced,
		Pending:    stats.Pending,
		BounceRate: stats.BounceRate,
	})
}

// registerReportingRoutes registers reporting routes
func registerReportingRoutes(group *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reports := group.Group("/reports")
	{
		reports.GET("/dashboard", h.getDashboard)
		reports.GET("/aging", h.getAging)
		reports.GET("/tenants/:tenantID", h.getTenantStats)
	}
}
