package dto

import (
	"time"

	"github.com/SscSPs/org_banking/internal/core/domain"
	"github.com/SscSPs/org_banking/internal/utils"
	"github.com/shopspring/decimal"
)

// ReportDateLayout is the wire format of a report's calendar date.
const ReportDateLayout = "2006-01-02"

// ListReportsParams defines query parameters for listing daily reports.
type ListReportsParams struct {
	PageParams
}

// DailyReportResponse defines the data returned for a daily report.
type DailyReportResponse struct {
	ReportID              string          `json:"reportId"`
	AccountID             string          `json:"accountId"`
	ReportDate            string          `json:"reportDate" example:"2024-03-09"`
	Currency              string          `json:"currency"`
	OpeningBalance        decimal.Decimal `json:"openingBalance" swaggertype:"string"`
	ClosingBalance        decimal.Decimal `json:"closingBalance" swaggertype:"string"`
	TotalIncoming         decimal.Decimal `json:"totalIncoming" swaggertype:"string"`
	TotalOutgoing         decimal.Decimal `json:"totalOutgoing" swaggertype:"string"`
	OpeningBalanceDisplay string          `json:"openingBalanceDisplay"`
	ClosingBalanceDisplay string          `json:"closingBalanceDisplay"`
	TxCount               int             `json:"txCount"`
	PendingCount          int             `json:"pendingCount"`
	DeliveredAt           time.Time       `json:"deliveredAt"`
	CreatedAt             time.Time       `json:"createdAt"`
}

// DailyReportDetailResponse is a report with the transactions it summarizes.
type DailyReportDetailResponse struct {
	DailyReportResponse
	Transactions []TransactionResponse `json:"transactions"`
}

// ListReportsResponse wraps one page of daily reports.
type ListReportsResponse struct {
	Reports    []DailyReportResponse `json:"reports"`
	Pagination PaginationResponse    `json:"pagination"`
}

// ToDailyReportResponse converts a domain.DailyReport to its DTO.
func ToDailyReportResponse(r *domain.DailyReport) DailyReportResponse {
	return DailyReportResponse{
		ReportID:              r.ReportID,
		AccountID:             r.AccountID,
		ReportDate:            r.ReportDate.Format(ReportDateLayout),
		Currency:              r.CurrencyCode,
		OpeningBalance:        r.OpeningBalance,
		ClosingBalance:        r.ClosingBalance,
		TotalIncoming:         r.TotalIncoming,
		TotalOutgoing:         r.TotalOutgoing,
		OpeningBalanceDisplay: utils.FormatAmount(r.OpeningBalance, r.CurrencyCode),
		ClosingBalanceDisplay: utils.FormatAmount(r.ClosingBalance, r.CurrencyCode),
		TxCount:               r.TxCount,
		PendingCount:          r.PendingCount,
		DeliveredAt:           r.DeliveredAt,
		CreatedAt:             r.CreatedAt,
	}
}

// ToDailyReportDetailResponse includes the linked transactions.
func ToDailyReportDetailResponse(r *domain.DailyReport) DailyReportDetailResponse {
	return DailyReportDetailResponse{
		DailyReportResponse: ToDailyReportResponse(r),
		Transactions:        ToTransactionResponses(r.Transactions),
	}
}

// ToDailyReportResponses converts a slice of reports.
func ToDailyReportResponses(reports []domain.DailyReport) []DailyReportResponse {
	res := make([]DailyReportResponse, len(reports))
	for i := range reports {
		res[i] = ToDailyReportResponse(&reports[i])
	}
	return res
}
