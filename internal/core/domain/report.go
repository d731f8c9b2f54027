package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyReport snapshots one account's activity for one calendar day.
// (AccountID, ReportDate) is unique; a report is never rewritten.
type DailyReport struct {
	ReportID       string          `json:"reportID"`
	AccountID      string          `json:"accountID"`
	ReportDate     time.Time       `json:"reportDate"` // calendar date, UTC midnight
	CurrencyCode   string          `json:"currencyCode"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
	TotalIncoming  decimal.Decimal `json:"totalIncoming"`
	TotalOutgoing  decimal.Decimal `json:"totalOutgoing"`
	TxCount        int             `json:"txCount"`
	PendingCount   int             `json:"pendingCount"`
	DeliveredAt    time.Time       `json:"deliveredAt"`
	CreatedAt      time.Time       `json:"createdAt"`

	// Transactions is filled only when a single report is fetched with its links.
	Transactions []Transaction `json:"transactions,omitempty"`
}

// DayWindow is the half-open interval [Start, End) of one calendar day in a location.
type DayWindow struct {
	Start time.Time
	End   time.Time
}

// DayWindowFor returns the calendar day containing t, evaluated in loc.
func DayWindowFor(t time.Time, loc *time.Location) DayWindow {
	if loc == nil {
		loc = time.UTC
	}
	local := t.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return DayWindow{Start: start, End: start.AddDate(0, 0, 1)}
}

// CalendarDayWindow returns the window of date's Y-M-D in loc, ignoring
// date's own clock and zone.
func CalendarDayWindow(date time.Time, loc *time.Location) DayWindow {
	if loc == nil {
		loc = time.UTC
	}
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	return DayWindow{Start: start, End: start.AddDate(0, 0, 1)}
}

// PreviousDayWindow returns the calendar day before the one containing now.
func PreviousDayWindow(now time.Time, loc *time.Location) DayWindow {
	today := DayWindowFor(now, loc)
	return DayWindow{Start: today.Start.AddDate(0, 0, -1), End: today.Start}
}

// RecentDayWindows returns the days completed calendar days before the one
// containing now, oldest first. days below one is treated as one.
func RecentDayWindows(now time.Time, loc *time.Location, days int) []DayWindow {
	if days < 1 {
		days = 1
	}
	latest := PreviousDayWindow(now, loc)
	windows := make([]DayWindow, 0, days)
	for back := days - 1; back >= 0; back-- {
		start := latest.Start.AddDate(0, 0, -back)
		windows = append(windows, DayWindow{Start: start, End: start.AddDate(0, 0, 1)})
	}
	return windows
}

// Contains reports whether t falls inside the window.
func (w DayWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// Date is the window's calendar date as a UTC midnight value, the form
// reports are keyed by.
func (w DayWindow) Date() time.Time {
	return CalendarDate(w.Start)
}

// CalendarDate strips the clock and zone from t, keeping its local Y-M-D.
func CalendarDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// BuildDailyReport aggregates the window's transactions for account.
// ClosingBalance is the balance at report time and OpeningBalance is derived
// backwards from the day's completed flow.
func BuildDailyReport(id string, account Account, window DayWindow, txns []Transaction, now time.Time) DailyReport {
	incoming := decimal.Zero
	outgoing := decimal.Zero
	pending := 0
	for _, t := range txns {
		switch {
		case t.Status == StatusCompleted && t.Type.IsCredit():
			incoming = incoming.Add(t.Amount)
		case t.Status == StatusCompleted && t.Type.IsDebit():
			outgoing = outgoing.Add(t.Amount)
		case t.Status.IsOpen():
			pending++
		}
	}

	closing := account.Balance
	return DailyReport{
		ReportID:       id,
		AccountID:      account.AccountID,
		ReportDate:     window.Date(),
		CurrencyCode:   account.CurrencyCode,
		OpeningBalance: closing.Add(outgoing).Sub(incoming),
		ClosingBalance: closing,
		TotalIncoming:  incoming,
		TotalOutgoing:  outgoing,
		TxCount:        len(txns),
		PendingCount:   pending,
		DeliveredAt:    now,
		CreatedAt:      now,
	}
}

// TransactionIDs returns the ids of txns in order.
func TransactionIDs(txns []Transaction) []string {
	ids := make([]string, len(txns))
	for i, t := range txns {
		ids[i] = t.TransactionID
	}
	return ids
}
