package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/SscSPs/org_banking/internal/core/ports/services"
	"github.com/SscSPs/org_banking/internal/dto"
	"github.com/SscSPs/org_banking/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportHandler serves the daily reconciliation reports.
type reportHandler struct {
	reportService portssvc.ReportReaderSvc
}

func newReportHandler(rs portssvc.ReportReaderSvc) *reportHandler {
	return &reportHandler{reportService: rs}
}

// registerReportRoutes registers routes related to daily reports.
func registerReportRoutes(rg *gin.RouterGroup, rs portssvc.ReportReaderSvc) {
	h := newReportHandler(rs)

	reports := rg.Group("/reports")
	{
		reports.GET("/:accountId", h.listReports)
		reports.GET("/:accountId/:date", h.getReport)
	}
}

// listReports godoc
// @Summary List daily reports
// @Description Returns one page of the account's daily reports, latest date first.
// @Tags reports
// @Produce  json
// @Param   accountId path string true "Account ID"
// @Param   page query int false "Page number" default(1)
// @Param   limit query int false "Page size (max 50)" default(30)
// @Success 200 {object} dto.ListReportsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member of the organization"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to list reports"
// @Security BearerAuth
// @Router /org-banking/reports/{accountId} [get]
func (h *reportHandler) listReports(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountId")

	userID, ok := callerID(c, logger)
	if !ok {
		return
	}

	var params dto.ListReportsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListReports", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("account_id", accountID))

	resp, err := h.reportService.GetDailyReports(c.Request.Context(), accountID, userID, params)
	if err != nil {
		respondError(c, logger, err, "Failed to list reports")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getReport godoc
// @Summary Get one daily report
// @Description Returns the account's report for a calendar date with the transactions it covers.
// @Tags reports
// @Produce  json
// @Param   accountId path string true "Account ID"
// @Param   date path string true "Report date (YYYY-MM-DD)"
// @Success 200 {object} dto.DailyReportDetailResponse
// @Failure 400 {object} map[string]string "Malformed date"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member of the organization"
// @Failure 404 {object} map[string]string "Account or report not found"
// @Failure 500 {object} map[string]string "Failed to retrieve report"
// @Security BearerAuth
// @Router /org-banking/reports/{accountId}/{date} [get]
func (h *reportHandler) getReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountId")
	rawDate := c.Param("date")

	userID, ok := callerID(c, logger)
	if !ok {
		return
	}

	date, err := time.Parse(dto.ReportDateLayout, rawDate)
	if err != nil {
		logger.Warn("Malformed report date", slog.String("date", rawDate))
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be formatted as YYYY-MM-DD"})
		return
	}

	logger = logger.With(slog.String("account_id", accountID), slog.String("report_date", rawDate))

	report, err := h.reportService.GetDailyReport(c.Request.Context(), accountID, userID, date)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve report")
		return
	}

	c.JSON(http.StatusOK, dto.ToDailyReportDetailResponse(report))
}
