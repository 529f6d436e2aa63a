package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/propera/pdc_backend/internal/core/ports/services"
	"github.com/propera/pdc_backend/internal/dto"
	"github.com/propera/pdc_backend/internal/middleware"
)

// bankAccountHandler handles HTTP requests for company deposit accounts.
type bankAccountHandler struct {
	bankAccountService portssvc.BankAccountSvcFacade
}

func newBankAccountHandler(bankAccountService portssvc.BankAccountSvcFacade) *bankAccountHandler {
	return &bankAccountHandler{bankAccountService: bankAccountService}
}

// createBankAccount godoc
// @Summary Register a deposit account
// @Tags bank-accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateBankAccountRequest true "Account details"
// @Success 201 {object} dto.BankAccountResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Router /bank-accounts [post]
func (h *bankAccountHandler) createBankAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateBankAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	account, err := h.bankAccountService.CreateBankAccount(c.Request.Context(), req, actorUserID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create bank account")
		return
	}

	c.JSON(http.StatusCreated, dto.ToBankAccountResponse(*account))
}

// listBankAccounts godoc
// @Summary List deposit accounts
// @Tags bank-accounts
// @Produce  json
// @Success 200 {array} dto.BankAccountResponse
// @Router /bank-accounts [get]
func (h *bankAccountHandler) listBankAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	accounts, err := h.bankAccountService.ListBankAccounts(c.Request.Context())
	if err != nil {
		respondWithError(c, logger, err, "Failed to list bank accounts")
		return
	}

	out := make([]dto.BankAccountResponse, len(accounts))
	for i, a := range accounts {
		out[i] = dto.ToBankAccountResponse(a)
	}
	c.JSON(http.StatusOK, out)
}

// getBankAccount godoc
// @Summary Get a deposit account
// @Tags bank-accounts
// @Produce  json
// @Param   bankAccountID path string true "Bank account ID"
// @Success 200 {object} dto.BankAccountResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Router /bank-accounts/{bankAccountID} [get]
func (h *bankAccountHandler) getBankAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	account, err := h.bankAccountService.GetBankAccountByID(c.Request.Context(), c.Param("bankAccountID"))
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve bank account")
		return
	}

	c.JSON(http.StatusOK, dto.ToBankAccountResponse(*account))
}

// updateBankAccountStatus godoc
// @Summary Activate or deactivate a deposit account
// @Tags bank-accounts
// @Accept  json
// @Produce  json
// @Param   bankAccountID path string true "Bank account ID"
// @Param   status body dto.UpdateBankAccountStatusRequest true "New status"
// @Success 204 "Status updated"
// @Failure 404 {object} map[string]string "Account not found"
// @Router /bank-accounts/{bankAccountID}/status [put]
func (h *bankAccountHandler) updateBankAccountStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateBankAccountStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.bankAccountService.UpdateStatus(c.Request.Context(), c.Param("bankAccountID"), req.Status, actorUserID); err != nil {
		respondWithError(c, logger, err, "Failed to update bank account status")
		return
	}

	c.Status(http.StatusNoContent)
}

// registerBankAccountRoutes registers bank account routes
func registerBankAccountRoutes(group *gin.RouterGroup, bankAccountService portssvc.BankAccountSvcFacade) {
	h := newBankAccountHandler(bankAccountService)

	accounts := group.Group("/bank-accounts")
	{
		accounts.POST("", h.createBankAccount)
		accounts.GET("", h.listBankAccounts)
		accounts.GET("/:bankAccountID", h.getBankAccount)
		accounts.PUT("/:bankAccountID/status", h.updateBankAccountStatus)
	}
}
