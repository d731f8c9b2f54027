package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/org_banking/internal/core/ports/services"
	"github.com/SscSPs/org_banking/internal/dto"
	"github.com/SscSPs/org_banking/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests related to organization bank accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(as portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{
		accountService: as,
	}
}

// registerAccountRoutes registers routes related to accounts.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := newAccountHandler(accountService)

	accounts := rg.Group("/accounts")
	{
		// POST mirrors the organization module's contract; GET is the REST alias.
		accounts.POST("/:orgId", h.listOrgAccounts)
		accounts.GET("/:orgId", h.listOrgAccounts)
	}
}

// listOrgAccounts godoc
// @Summary List an organization's bank accounts
// @Description Lists the organization's active accounts, oldest first, with their transaction counts. The caller must be a member.
// @Tags accounts
// @Produce  json
// @Param   orgId path string true "Organization ID"
// @Success 200 {object} dto.ListAccountsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member of the organization"
// @Failure 500 {object} map[string]string "Failed to list accounts"
// @Security BearerAuth
// @Router /org-banking/accounts/{orgId} [post]
// @Router /org-banking/accounts/{orgId} [get]
func (h *accountHandler) listOrgAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("orgId")

	userID, ok := callerID(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("organization_id", orgID))
	logger.Info("Received request to list organization accounts")

	accounts, err := h.accountService.GetOrgAccounts(c.Request.Context(), orgID, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to list accounts")
		return
	}

	logger.Info("Accounts listed successfully", slog.Int("count", len(accounts)))
	c.JSON(http.StatusOK, dto.ListAccountsResponse{Accounts: dto.ToListAccountResponse(accounts)})
}
