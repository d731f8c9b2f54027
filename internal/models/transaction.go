package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a row of org_bank_transactions. Nullable columns use the
// database/sql null wrappers.
type Transaction struct {
	TransactionID     string          `db:"transaction_id"`
	AccountID         string          `db:"account_id"`
	TransactionType   string          `db:"type"`
	Amount            decimal.Decimal `db:"amount"`
	CurrencyCode      string          `db:"currency_code"`
	Description       string          `db:"description"`
	RecipientAccount  sql.NullString  `db:"recipient_account"`
	InitiatorID       string          `db:"initiator_id"`
	ClientApproved    bool            `db:"client_approved"`
	Status            string          `db:"status"`
	BankApproverID    sql.NullString  `db:"bank_approver_id"`
	BankApprovalLevel sql.NullString  `db:"bank_approval_level"`
	BankApproved      sql.NullBool    `db:"bank_approved"`
	BankApprovalNote  sql.NullString  `db:"bank_approval_note"`
	CompletedAt       sql.NullTime    `db:"completed_at"`
	CancelledAt       sql.NullTime    `db:"cancelled_at"`
	ReportDate        time.Time       `db:"report_date"`
	ReportID          sql.NullString  `db:"report_id"`
	ReportedAt        sql.NullTime    `db:"reported_at"`
	AuditFields

	Signatures []Signature `db:"-"`
}

// Signature is a row of org_bank_tx_signatures.
type Signature struct {
	TransactionID  string    `db:"transaction_id"`
	Position       int       `db:"position"`
	UserID         string    `db:"user_id"`
	SignatureToken string    `db:"signature_token"`
	SignedAt       time.Time `db:"signed_at"`
}
