package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyReport is a row of org_bank_daily_reports. ReportDate is a DATE column.
type DailyReport struct {
	ReportID       string          `db:"report_id"`
	AccountID      string          `db:"account_id"`
	ReportDate     time.Time       `db:"report_date"`
	CurrencyCode   string          `db:"currency_code"`
	OpeningBalance decimal.Decimal `db:"opening_balance"`
	ClosingBalance decimal.Decimal `db:"closing_balance"`
	TotalIncoming  decimal.Decimal `db:"total_incoming"`
	TotalOutgoing  decimal.Decimal `db:"total_outgoing"`
	TxCount        int             `db:"tx_count"`
	PendingCount   int             `db:"pending_count"`
	DeliveredAt    time.Time       `db:"delivered_at"`
	CreatedAt      time.Time       `db:"created_at"`
}
