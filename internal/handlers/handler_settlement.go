package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/propera/pdc_backend/internal/core/ports/services"
	"github.com/propera/pdc_backend/internal/dto"
	"github.com/propera/pdc_backend/internal/middleware"
)

// settlementHandler handles HTTP requests for withdrawal settlements.
type settlementHandler struct {
	chainService portssvc.ChainSvcFacade
}

func newSettlementHandler(chainService portssvc.ChainSvcFacade) *settlementHandler {
	return &settlementHandler{chainService: chainService}
}

// completeSettlementLink godoc
// @Summary Link a new cheque to a pending settlement
// @Description Attaches the separately registered new cheque to a PENDING_LINK settlement and marks it SETTLED
// @Tags settlements
// @Accept  json
// @Produce  json
// @Param   settlementID path string true "Settlement ID"
// @Param   link body dto.CompleteSettlementLinkRequest true "New cheque reference"
// @Success 200 {object} dto.SettlementResponse
// @Failure 400 {object} map[string]string "Settlement is not awaiting a cheque or cheque invalid"
// @Failure 404 {object} map[string]string "Settlement not found"
// @Router /settlements/{settlementID}/link [post]
func (h *settlementHandler) completeSettlementLink(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CompleteSettlementLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	settlement, err := h.chainService.CompleteSettlementLink(c.Request.Context(), c.Param("settlementID"), req.NewChequeID, actorUserID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to link settlement")
		return
	}

	c.JSON(http.StatusOK, dto.ToSettlementResponse(*settlement))
}

// registerSettlementRoutes registers settlement routes
func registerSettlementRoutes(group *gin.RouterGroup, chainService portssvc.ChainSvcFacade) {
	h := newSettlementHandler(chainService)

	settlements := group.Group("/settlements")
	{
		settlements.POST("/:settlementID/link", h.completeSettlementLink)
	}
}
