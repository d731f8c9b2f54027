package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/org_banking/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPreviousDayWindow(t *testing.T) {
	now := time.Date(2024, 3, 10, 0, 5, 0, 0, time.UTC)
	w := domain.PreviousDayWindow(now, time.UTC)

	assert.Equal(t, time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), w.End)
	assert.True(t, w.Contains(w.Start))
	assert.False(t, w.Contains(w.End))
	assert.True(t, w.Contains(time.Date(2024, 3, 9, 23, 59, 59, 0, time.UTC)))
}

func TestRecentDayWindows(t *testing.T) {
	now := time.Date(2024, 3, 10, 0, 5, 0, 0, time.UTC)

	windows := domain.RecentDayWindows(now, time.UTC, 3)
	assert.Len(t, windows, 3)
	assert.Equal(t, time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC), windows[0].Date())
	assert.Equal(t, time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC), windows[1].Date())
	assert.Equal(t, time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), windows[2].Date())
	assert.Equal(t, windows[1].Start, windows[0].End)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), windows[2].End)

	assert.Equal(t, []domain.DayWindow{domain.PreviousDayWindow(now, time.UTC)}, domain.RecentDayWindows(now, time.UTC, 0))
}

func TestDayWindowFor_Location(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)
	// 20:00 UTC on the 9th is already the 10th at UTC+8.
	w := domain.DayWindowFor(time.Date(2024, 3, 9, 20, 0, 0, 0, time.UTC), loc)

	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), w.Date())
	assert.True(t, w.Contains(time.Date(2024, 3, 9, 16, 0, 0, 0, time.UTC)))
	assert.False(t, w.Contains(time.Date(2024, 3, 9, 15, 59, 0, 0, time.UTC)))
}

func TestBuildDailyReport(t *testing.T) {
	day := time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC)
	window := domain.DayWindowFor(day, time.UTC)
	now := time.Date(2024, 3, 10, 0, 0, 1, 0, time.UTC)

	account := domain.Account{
		AccountID:    "acc-1",
		Balance:      decimal.NewFromInt(4900),
		CurrencyCode: domain.DefaultCurrency,
	}
	mk := func(id string, txType domain.TransactionType, amount int64, status domain.TransactionStatus) domain.Transaction {
		return domain.Transaction{
			TransactionID: id,
			Type:          txType,
			Amount:        decimal.NewFromInt(amount),
			Status:        status,
			ReportDate:    day,
		}
	}
	txns := []domain.Transaction{
		mk("t1", domain.Outgoing, 100, domain.StatusCompleted),
		mk("t2", domain.Incoming, 40, domain.StatusCompleted),
		mk("t3", domain.TaxPayment, 10, domain.StatusCompleted),
		mk("t4", domain.Outgoing, 999, domain.StatusPending),
		mk("t5", domain.Incoming, 999, domain.StatusClientApproved),
		mk("t6", domain.Outgoing, 999, domain.StatusRejected),
		mk("t7", domain.Outgoing, 999, domain.StatusCancelled),
		mk("t8", domain.Internal, 999, domain.StatusCompleted),
	}

	report := domain.BuildDailyReport("rpt-1", account, window, txns, now)

	assert.Equal(t, "rpt-1", report.ReportID)
	assert.Equal(t, time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), report.ReportDate)
	assert.True(t, decimal.NewFromInt(40).Equal(report.TotalIncoming))
	assert.True(t, decimal.NewFromInt(110).Equal(report.TotalOutgoing))
	assert.True(t, decimal.NewFromInt(4900).Equal(report.ClosingBalance))
	assert.True(t, decimal.NewFromInt(4970).Equal(report.OpeningBalance), "opening = closing + outgoing - incoming")
	assert.Equal(t, 8, report.TxCount)
	assert.Equal(t, 2, report.PendingCount)
	assert.Equal(t, domain.DefaultCurrency, report.CurrencyCode)
	assert.Equal(t, now, report.DeliveredAt)
	assert.Equal(t, []string{"t1", "t2", "t3", "t4", "t5", "t6", "t7", "t8"}, domain.TransactionIDs(txns))
}

func TestBuildDailyReport_Empty(t *testing.T) {
	window := domain.DayWindowFor(time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), time.UTC)
	account := domain.Account{AccountID: "acc-1", Balance: decimal.NewFromInt(5000)}

	report := domain.BuildDailyReport("rpt-1", account, window, nil, time.Now())

	assert.Zero(t, report.TxCount)
	assert.True(t, report.OpeningBalance.Equal(report.ClosingBalance))
	assert.True(t, report.TotalIncoming.IsZero())
	assert.True(t, report.TotalOutgoing.IsZero())
}
