package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/propera/pdc_backend/internal/core/domain"
	portssvc "github.com/propera/pdc_backend/internal/core/ports/services"
	"github.com/propera/pdc_backend/internal/dto"
	"github.com/propera/pdc_backend/internal/middleware"
)

const defaultListLimit = 50

// chequeHandler handles HTTP requests for the cheque lifecycle.
type chequeHandler struct {
	chequeService portssvc.ChequeSvcFacade
	chainService  portssvc.ChainSvcFacade
}

// newChequeHandler creates a new chequeHandler.
func newChequeHandler(chequeService portssvc.ChequeSvcFacade, chainService portssvc.ChainSvcFacade) *chequeHandler {
	return &chequeHandler{
		chequeService: chequeService,
		chainService:  chainService,
	}
}

// registerCheque godoc
// @Summary Register a post-dated cheque
// @Description Creates a cheque in RECEIVED, or DUE when its date is already inside the due window
// @Tags cheques
// @Accept  json
// @Produce  json
// @Param   cheque body dto.RegisterChequeRequest true "Cheque details"
// @Success 201 {object} dto.ChequeResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 409 {object} map[string]string "Duplicate instrument"
// @Router /cheques [post]
func (h *chequeHandler) registerCheque(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RegisterChequeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for RegisterCheque", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Actor user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	cheque, err := h.chequeService.RegisterCheque(c.Request.Context(), req, actorUserID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to register cheque")
		return
	}

	c.JSON(http.StatusCreated, dto.ToChequeResponse(*cheque, time.Now().UTC()))
}

// registerChequesBulk godoc
// @Summary Register several cheques in one transaction
// @Description Registers a batch of cheques atomically, e.g. a year of rent cheques
// @Tags cheques
// @Accept  json
// @Produce  json
// @Param   cheques body dto.RegisterChequesBulkRequest true "Cheques"
// @Success 201 {object} dto.ListChequesResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 409 {object} map[string]string "Duplicate instrument"
// @Router /cheques/bulk [post]
func (h *chequeHandler) registerChequesBulk(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RegisterChequesBulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for RegisterChequesBulk", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	cheques, err := h.chequeService.RegisterChequesBulk(c.Request.Context(), req, actorUserID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to register cheques")
		return
	}

	c.JSON(http.StatusCreated, dto.ListChequesResponse{
		Cheques: dto.ToChequeResponseSlice(cheques, time.Now().UTC()),
	})
}

// listCheques godoc
// @Summary List cheques
// @Description Retrieves a filtered, keyset-paginated cheque listing
// @Tags cheques
// @Produce  json
// @Param   tenantID query string false "Tenant filter"
// @Param   status query []string false "Status filter"
// @Param   bankName query string false "Issuing bank filter"
// @Param   dateFrom query string false "Cheque date lower bound (YYYY-MM-DD)"
// @Param   dateTo query string false "Cheque date upper bound (YYYY-MM-DD)"
// @Param   sortBy query string false "CHEQUE_DATE or AMOUNT"
// @Param   limit query int false "Page size"
// @Param   nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListChequesResponse
// @Failure 400 {object} map[string]string "Invalid filters"
// @Router /cheques [get]
func (h *chequeHandler) listCheques(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ListChequesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		logger.Error("Failed to bind query for ListCheques", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	filter := domain.ChequeFilter{
		TenantID:  req.TenantID,
		BankName:  req.BankName,
		LeaseID:   req.LeaseID,
		InvoiceID: req.InvoiceID,
		DateFrom:  req.DateFrom,
		DateTo:    req.DateTo,
		SortBy:    domain.ChequeSort(req.SortBy),
	}
	for _, s := range req.Status {
		filter.Statuses = append(filter.Statuses, domain.ChequeStatus(s))
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	var nextToken *string
	if req.NextToken != "" {
		nextToken = &req.NextToken
	}

	cheques, newToken, err := h.chequeService.ListCheques(c.Request.Context(), filter, limit, nextToken)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list cheques")
		return
	}

	c.JSON(http.StatusOK, dto.ListChequesResponse{
		Cheques:   dto.ToChequeResponseSlice(cheques, time.Now().UTC()),
		NextToken: newToken,
	})
}

// getCheque godoc
// @Summary Get a cheque with history and chain
// @Description Retrieves a cheque, its transition history and its resolved replacement chain
// @Tags cheques
// @Produce  json
// @Param   chequeID path string true "Cheque ID"
// @Success 200 {object} dto.ChequeDetailResponse
// @Failure 404 {object} map[string]string "Cheque not found"
// @Router /cheques/{chequeID} [get]
func (h *chequeHandler) getCheque(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	chequeID := c.Param("chequeID")

	detail, err := h.chequeService.GetChequeDetail(c.Request.Context(), chequeID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve cheque")
		return
	}

	now := time.Now().UTC()
	c.JSON(http.StatusOK, dto.ChequeDetailResponse{
		Cheque:      dto.ToChequeResponse(detail.Cheque, now),
		Transitions: dto.ToTransitionResponseSlice(detail.Transitions),
		Chain:       dto.ToChequeResponseSlice(detail.Chain, now),
	})
}

// getChequeChain godoc
// @Summary Get a cheque's replacement chain
// @Description Walks the replacement chain containing the cheque, earliest original first
// @Tags cheques
// @Produce  json
// @Param   chequeID path string true "Cheque ID"
// @Success 200 {object} dto.ListChequesResponse
// @Failure 404 {object} map[string]string "Cheque not found"
// @Router /cheques/{chequeID}/chain [get]
func (h *chequeHandler) getChequeChain(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	chequeID := c.Param("chequeID")

	chain, err := h.chainService.GetReplacementChain(c.Request.Context(), chequeID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to resolve replacement chain")
		return
	}

	c.JSON(http.StatusOK, dto.ListChequesResponse{
		Cheques: dto.ToChequeResponseSlice(chain, time.Now().UTC()),
	})
}

// getChequeSettlement godoc
// @Summary Get the settlement recorded for a withdrawn cheque
// @Tags cheques
// @Produce  json
// @Param   chequeID path string true "Cheque ID"
// @Success 200 {object} dto.SettlementResponse
// @Failure 404 {object} map[string]string "No settlement recorded"
// @Router /cheques/{chequeID}/settlement [get]
func (h *chequeHandler) getChequeSettlement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	chequeID := c.Param("chequeID")

	settlement, err := h.chainService.GetSettlementByCheque(c.Request.Context(), chequeID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve settlement")
		return
	}

	c.JSON(http.StatusOK, dto.ToSettlementResponse(*settlement))
}

// transition is the shared shape of the six lifecycle endpoints: bind the
// request, resolve the actor, invoke the service, render the updated cheque.
func (h *chequeHandler) transition(c *gin.Context, bindAndApply func(actorUserID string) (*domain.Cheque, error), internalMsg string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Actor user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	cheque, err := bindAndApply(actorUserID)
	if err != nil {
		respondWithError(c, logger, err, internalMsg)
		return
	}

	c.JSON(http.StatusOK, dto.ToChequeResponse(*cheque, time.Now().UTC()))
}

// depositCheque godoc
// @Summary Deposit a DUE cheque
// @Tags cheques
// @Accept  json
// @Produce  json
// @Param   chequeID path string true "Cheque ID"
// @Param   deposit body dto.DepositChequeRequest true "Deposit details"
// @Success 200 {object} dto.ChequeResponse
// @Failure 409 {object} map[string]string "Illegal transition or version conflict"
// @Failure 422 {object} map[string]string "Invalid bank account"
// @Router /cheques/{chequeID}/deposit [post]
func (h *chequeHandler) depositCheque(c *gin.Context) {
	var req dto.DepositChequeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	h.transition(c, func(actorUserID string) (*domain.Cheque, error) {
		return h.chequeService.Deposit(c.Request.Context(), c.Param("chequeID"), req, actorUserID)
	}, "Failed to deposit cheque")
}

// clearCheque godoc
// @Summary Mark a deposited cheque cleared
// @Tags cheques
// @Accept  json
// @Produce  json
// @Param   chequeID path string true "Cheque ID"
// @Param   clear body dto.ClearChequeRequest true "Clearance details"
// @Success 200 {object} dto.ChequeResponse
// @Failure 409 {object} map[string]string "Illegal transition or version conflict"
// @Router /cheques/{chequeID}/clear [post]
func (h *chequeHandler) clearCheque(c *gin.Context) {
	var req dto.ClearChequeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	h.transition(c, func(actorUserID string) (*domain.Cheque, error) {
		return h.chequeService.Clear(c.Request.Context(), c.Param("chequeID"), req, actorUserID)
	}, "Failed to clear cheque")
}

// bounceCheque godoc
// @Summary Record a bank rejection of a deposited cheque
// @Tags cheques
// @Accept  json
// @Produce  json
// @Param   chequeID path string true "Cheque ID"
// @Param   bounce body dto.BounceChequeRequest true "Bounce details"
// @Success 200 {object} dto.ChequeResponse
// @Failure 400 {object} map[string]string "Missing bounce reason"
// @Failure 409 {object} map[string]string "Illegal transition or version conflict"
// @Router /cheques/{chequeID}/bounce [post]
func (h *chequeHandler) bounceCheque(c *gin.Context) {
	var req dto.BounceChequeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	h.transition(c, func(actorUserID string) (*domain.Cheque, error) {
		return h.chequeService.Bounce(c.Request.Context(), c.Param("chequeID"), req, actorUserID)
	}, "Failed to bounce cheque")
}

// replaceCheque godoc
// @Summary Replace a bounced cheque with a new instrument
// @Description Mints the replacement cheque and links both records atomically; returns the replacement
// @Tags cheques
// @Accept  json
// @Produce  json
// @Param   chequeID path string true "Bounced cheque ID"
// @Param   replacement body dto.ReplaceChequeRequest true "Replacement instrument"
// @Success 201 {object} dto.ChequeResponse
// @Failure 409 {object} map[string]string "Illegal transition, existing replacement or version conflict"
// @Router /cheques/{chequeID}/replace [post]
func (h *chequeHandler) replaceCheque(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ReplaceChequeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	replacement, err := h.chequeService.Replace(c.Request.Context(), c.Param("chequeID"), req, actorUserID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to replace cheque")
		return
	}

	c.JSON(http.StatusCreated, dto.ToChequeResponse(*replacement, time.Now().UTC()))
}

// withdrawCheque godoc
// @Summary Withdraw an un-deposited cheque
// @Tags cheques
// @Accept  json
// @Produce  json
// @Param   chequeID path string true "Cheque ID"
// @Param   withdrawal body dto.WithdrawChequeRequest true "Withdrawal details"
// @Success 200 {object} dto.ChequeResponse
// @Failure 400 {object} map[string]string "Missing reason or invalid settlement"
// @Failure 409 {object} map[string]string "Illegal transition or version conflict"
// @Router /cheques/{chequeID}/withdraw [post]
func (h *chequeHandler) withdrawCheque(c *gin.Context) {
	var req dto.WithdrawChequeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	h.transition(c, func(actorUserID string) (*domain.Cheque, error) {
		return h.chequeService.Withdraw(c.Request.Context(), c.Param("chequeID"), req, actorUserID)
	}, "Failed to withdraw cheque")
}

// cancelCheque godoc
// @Summary Cancel a RECEIVED cheque
// @Tags cheques
// @Accept  json
// @Produce  json
// @Param   chequeID path string true "Cheque ID"
// @Param   cancellation body dto.CancelChequeRequest true "Cancellation details"
// @Success 200 {object} dto.ChequeResponse
// @Failure 409 {object} map[string]string "Illegal transition or version conflict"
// @Router /cheques/{chequeID}/cancel [post]
func (h *chequeHandler) cancelCheque(c *gin.Context) {
	var req dto.CancelChequeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	h.transition(c, func(actorUserID string) (*domain.Cheque, error) {
		return h.chequeService.Cancel(c.Request.Context(), c.Param("chequeID"), req, actorUserID)
	}, "Failed to cancel cheque")
}

// registerChequeRoutes registers cheque lifecycle routes
func registerChequeRoutes(group *gin.RouterGroup, chequeService portssvc.ChequeSvcFacade, chainService portssvc.ChainSvcFacade) {
	h := newChequeHandler(chequeService, chainService)

	cheques := group.Group("/cheques")
	{
		cheques.POST("", h.registerCheque)
		cheques.POST("/bulk", h.registerChequesBulk)
		cheques.GET("", h.listCheques)
		cheques.GET("/:chequeID", h.getCheque)
		cheques.GET("/:chequeID/chain", h.getChequeChain)
		cheques.GET("/:chequeID/settlement", h.getChequeSettlement)
		cheques.POST("/:chequeID/deposit", h.depositCheque)
		cheques.POST("/:chequeID/clear", h.clearCheque)
		cheques.POST("/:chequeID/bounce", h.bounceCheque)
		cheques.POST("/:chequeID/replace", h.replaceCheque)
		cheques.POST("/:chequeID/withdraw", h.withdrawCheque)
		cheques.POST("/:chequeID/cancel", h.cancelCheque)
	}
}
