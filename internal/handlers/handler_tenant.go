package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/propera/pdc_backend/internal/core/ports/services"
	"github.com/propera/pdc_backend/internal/dto"
	"github.com/propera/pdc_backend/internal/middleware"
)

// tenantHandler exposes the read-only tenant projection.
type tenantHandler struct {
	tenantService portssvc.TenantSvcFacade
}

func newTenantHandler(tenantService portssvc.TenantSvcFacade) *tenantHandler {
	return &tenantHandler{tenantService: tenantService}
}

// getTenant godoc
// @Summary Get a tenant
// @Tags tenants
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Success 200 {object} dto.TenantResponse
// @Failure 404 {object} map[string]string "Tenant not found"
// @Router /tenants/{tenantID} [get]
func (h *tenantHandler) getTenant(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenant, err := h.tenantService.GetTenantByID(c.Request.Context(), c.Param("tenantID"))
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve tenant")
		return
	}

	c.JSON(http.StatusOK, dto.ToTenantResponse(*tenant))
}

// registerTenantRoutes registers tenant routes
func registerTenantRoutes(group *gin.RouterGroup, tenantService portssvc.TenantSvcFacade) {
	h := newTenantHandler(tenantService)

	tenants := group.Group("/tenants")
	{
		tenants.GET("/:tenantID", h.getTenant)
	}
}
