package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/org_banking/internal/core/ports/services"
	"github.com/SscSPs/org_banking/internal/dto"
	"github.com/SscSPs/org_banking/internal/middleware"
	"github.com/gin-gonic/gin"
)

// transactionHandler serves the transaction lifecycle: initiate, sign,
// bank review and cancel, plus the per-account listings.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
	approvalService    portssvc.ApprovalSvc
}

func newTransactionHandler(ts portssvc.TransactionSvcFacade, as portssvc.ApprovalSvc) *transactionHandler {
	return &transactionHandler{
		transactionService: ts,
		approvalService:    as,
	}
}

// registerTransactionRoutes registers routes related to transactions.
func registerTransactionRoutes(rg *gin.RouterGroup, ts portssvc.TransactionSvcFacade, as portssvc.ApprovalSvc) {
	h := newTransactionHandler(ts, as)

	txns := rg.Group("/transactions")
	{
		txns.POST("/initiate", h.initiateTransaction)
		txns.POST("/:id/sign", h.signTransaction)
		txns.POST("/:id/bank-approve", h.bankApproveTransaction)
		txns.POST("/:id/cancel", h.cancelTransaction)
		txns.GET("/:id", h.listAccountTransactions)
		txns.GET("/:id/pending", h.listPendingTransactions)
	}
}

// initiateTransaction godoc
// @Summary Initiate a transaction
// @Description Opens a transaction on an organization account. The initiator's signature is recorded immediately; a single-signature account goes straight to CLIENT_APPROVED.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transaction body dto.InitiateTransactionRequest true "Transaction details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input, inactive account or insufficient funds"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member or no treasury permission"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to initiate transaction"
// @Security BearerAuth
// @Router /org-banking/transactions/initiate [post]
func (h *transactionHandler) initiateTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.InitiateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for InitiateTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := callerID(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("account_id", req.AccountID))
	logger.Info("Received request to initiate transaction", slog.String("type", string(req.Type)), slog.String("amount", req.Amount.String()))

	txn, err := h.transactionService.InitiateTransaction(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, logger, err, "Failed to initiate transaction")
		return
	}

	logger.Info("Transaction initiated", slog.String("transaction_id", txn.TransactionID), slog.String("status", string(txn.Status)))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// signTransaction godoc
// @Summary Sign a pending transaction
// @Description Adds the caller's signature. The transaction becomes CLIENT_APPROVED once the account's signature quorum is reached.
// @Tags transactions
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Not pending or already signed"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member of the organization"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 500 {object} map[string]string "Failed to sign transaction"
// @Security BearerAuth
// @Router /org-banking/transactions/{id}/sign [post]
func (h *transactionHandler) signTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")

	userID, ok := callerID(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("transaction_id", transactionID))
	logger.Info("Received request to sign transaction")

	txn, err := h.transactionService.SignTransaction(c.Request.Context(), transactionID, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to sign transaction")
		return
	}

	logger.Info("Transaction signed", slog.Int("signatures", len(txn.ClientSignatures)), slog.String("status", string(txn.Status)))
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// bankApproveTransaction godoc
// @Summary Bank officer decision
// @Description Approves (executing the balance change) or rejects a CLIENT_APPROVED transaction. The caller is the bank officer.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Param   decision body dto.BankApproveRequest true "Decision"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Not client-approved or insufficient funds"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Officer seniority too low"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 409 {object} map[string]string "Another decision won the race"
// @Failure 500 {object} map[string]string "Failed to review transaction"
// @Security BearerAuth
// @Router /org-banking/transactions/{id}/bank-approve [post]
func (h *transactionHandler) bankApproveTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")

	var req dto.BankApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for BankApprove", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	officerID, ok := callerID(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("transaction_id", transactionID), slog.Bool("approve", *req.Approve))
	logger.Info("Received bank review")

	txn, err := h.approvalService.BankApproveTransaction(c.Request.Context(), transactionID, officerID, *req.Approve, req.Note)
	if err != nil {
		respondError(c, logger, err, "Failed to review transaction")
		return
	}

	logger.Info("Bank review recorded", slog.String("status", string(txn.Status)))
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// cancelTransaction godoc
// @Summary Cancel a transaction
// @Description Withdraws a PENDING or CLIENT_APPROVED transaction. Only the initiator may cancel.
// @Tags transactions
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Transaction can no longer be cancelled"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Caller is not the initiator"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 409 {object} map[string]string "Another decision won the race"
// @Failure 500 {object} map[string]string "Failed to cancel transaction"
// @Security BearerAuth
// @Router /org-banking/transactions/{id}/cancel [post]
func (h *transactionHandler) cancelTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")

	userID, ok := callerID(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("transaction_id", transactionID))
	logger.Info("Received request to cancel transaction")

	txn, err := h.transactionService.CancelTransaction(c.Request.Context(), transactionID, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to cancel transaction")
		return
	}

	logger.Info("Transaction cancelled")
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// listAccountTransactions godoc
// @Summary List an account's transactions
// @Description Returns one page of the account's transactions, newest first.
// @Tags transactions
// @Produce  json
// @Param   id path string true "Account ID"
// @Param   status query string false "Filter by status" Enums(PENDING, CLIENT_APPROVED, COMPLETED, REJECTED, CANCELLED)
// @Param   page query int false "Page number" default(1)
// @Param   limit query int false "Page size (max 50)" default(20)
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member of the organization"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to list transactions"
// @Security BearerAuth
// @Router /org-banking/transactions/{id} [get]
func (h *transactionHandler) listAccountTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	userID, ok := callerID(c, logger)
	if !ok {
		return
	}

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListTransactions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("account_id", accountID))
	logger.Debug("Received request to list transactions", slog.Int("page", params.Page), slog.Int("limit", params.Limit))

	resp, err := h.transactionService.GetAccountTransactions(c.Request.Context(), accountID, userID, params)
	if err != nil {
		respondError(c, logger, err, "Failed to list transactions")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// listPendingTransactions godoc
// @Summary List an account's open transactions
// @Description Returns PENDING and CLIENT_APPROVED transactions, oldest first.
// @Tags transactions
// @Produce  json
// @Param   id path string true "Account ID"
// @Success 200 {object} dto.ListPendingTransactionsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member of the organization"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to list pending transactions"
// @Security BearerAuth
// @Router /org-banking/transactions/{id}/pending [get]
func (h *transactionHandler) listPendingTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	userID, ok := callerID(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("account_id", accountID))

	txns, err := h.transactionService.GetPendingTransactions(c.Request.Context(), accountID, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to list pending transactions")
		return
	}

	c.JSON(http.StatusOK, dto.ListPendingTransactionsResponse{Transactions: dto.ToTransactionResponses(txns)})
}
