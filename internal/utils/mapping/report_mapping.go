package mapping

import (
	"github.com/SscSPs/org_banking/internal/core/domain"
	"github.com/SscSPs/org_banking/internal/models"
)

// ToModelDailyReport converts a domain DailyReport to a model DailyReport
func ToModelDailyReport(d domain.DailyReport) models.DailyReport {
	return models.DailyReport{
		ReportID:       d.ReportID,
		AccountID:      d.AccountID,
		ReportDate:     domain.CalendarDate(d.ReportDate),
		CurrencyCode:   d.CurrencyCode,
		OpeningBalance: d.OpeningBalance,
		ClosingBalance: d.ClosingBalance,
		TotalIncoming:  d.TotalIncoming,
		TotalOutgoing:  d.TotalOutgoing,
		TxCount:        d.TxCount,
		PendingCount:   d.PendingCount,
		DeliveredAt:    d.DeliveredAt,
		CreatedAt:      d.CreatedAt,
	}
}

// ToDomainDailyReport converts a model DailyReport to a domain DailyReport
func ToDomainDailyReport(m models.DailyReport) domain.DailyReport {
	return domain.DailyReport{
		ReportID:       m.ReportID,
		AccountID:      m.AccountID,
		ReportDate:     domain.CalendarDate(m.ReportDate),
		CurrencyCode:   m.CurrencyCode,
		OpeningBalance: m.OpeningBalance,
		ClosingBalance: m.ClosingBalance,
		TotalIncoming:  m.TotalIncoming,
		TotalOutgoing:  m.TotalOutgoing,
		TxCount:        m.TxCount,
		PendingCount:   m.PendingCount,
		DeliveredAt:    m.DeliveredAt,
		CreatedAt:      m.CreatedAt,
	}
}
